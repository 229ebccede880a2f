package dogapi

// Endpoint path templates relative to the API base address.
// Placeholders are bound by the transport and path-escaped.
const (
	PathListAllBreeds        = "/breeds/list/all"
	PathBreedImages          = "/breed/{breed}/images"
	PathSubBreedImages       = "/breed/{breed}/{subBreed}/images"
	PathRandomImage          = "/breeds/image/random"
	PathRandomImages         = "/breeds/image/random/{count}"
	PathRandomBreedImage     = "/breed/{breed}/images/random"
	PathRandomBreedImagesFor = "/breed/{breed}/images/random/{count}"
)

const (
	paramBreed    = "breed"
	paramSubBreed = "subBreed"
	paramCount    = "count"
)
