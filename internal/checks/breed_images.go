package checks

import (
	"context"
	"strings"

	"github.com/samvad-hq/dogceo-checker/internal/domain"
	"github.com/samvad-hq/dogceo-checker/pkg/dogapi"
)

var validBreeds = []string{"labrador", "bulldog", "beagle", "husky"}

const unknownBreed = "racainexistente123"

// BreedImagesSuite checks GET /breed/{breed}/images and its sub-breed variant.
func BreedImagesSuite(th Thresholds) []Check {
	return []Check{
		{
			Order:       1,
			Name:        "ShouldReturnImagesForBeagle",
			Description: "beagle images succeed with a non-empty list",
			Severity:    SeverityCritical,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				resp, err := svc.ImagesForBreed(ctx, "beagle")
				if err != nil {
					return err
				}
				e := expect("beagle images")
				if env, ok := e.successEnvelope(resp); ok {
					urls, err := env.MessageList()
					if e.noError(err, "decode images") {
						e.that(len(urls) > 0, "image list is empty")
					}
				}
				return e.err()
			},
		},
		{
			Order:       2,
			Name:        "ShouldDecodeBreedImagesModel",
			Description: "labrador images decode into the images model",
			Severity:    SeverityNormal,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				images, err := svc.ImagesForBreedAsModel(ctx, "labrador")
				if err != nil {
					return err
				}
				e := expect("labrador images model")
				e.that(images.Status == domain.StatusSuccess, "status = %q", images.Status)
				e.that(len(images.Images) > 0, "image list is empty")
				e.noError(images.Validate(), "validate")
				return e.err()
			},
		},
		{
			Order:       3,
			Name:        "ShouldReturnValidImageURLs",
			Description: "every beagle image URL is https and names the breed",
			Severity:    SeverityNormal,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				images, err := svc.ImagesForBreedAsModel(ctx, "beagle")
				if err != nil {
					return err
				}
				e := expect("beagle image urls")
				e.that(len(images.Images) > 0, "image list is empty")
				for _, url := range images.Images {
					e.that(strings.HasPrefix(url, "https://"), "url %q does not start with https://", url)
					e.that(strings.Contains(url, "beagle"), "url %q does not contain the breed", url)
				}
				return e.err()
			},
		},
		{
			Order:       4,
			Name:        "ShouldReturnImagesForSeveralBreeds",
			Description: "several known breeds all return images",
			Severity:    SeverityNormal,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				e := expect("several breeds")
				for _, breed := range validBreeds {
					resp, err := svc.ImagesForBreed(ctx, breed)
					if !e.noError(err, breed) {
						continue
					}
					e.that(resp.IsSuccess(), "%s: status code = %d", breed, resp.StatusCode())
					e.that(resp.Status() == domain.StatusSuccess, "%s: status = %q", breed, resp.Status())
				}
				return e.err()
			},
		},
		{
			Order:       5,
			Name:        "ShouldRejectUnknownBreed",
			Description: "an unknown breed yields a non-2xx response with status error",
			Severity:    SeverityNormal,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				resp, err := svc.ImagesForBreed(ctx, unknownBreed)
				if err != nil {
					return err
				}
				e := expect("unknown breed")
				e.that(resp.StatusCode() >= 400, "status code = %d, want >= 400", resp.StatusCode())
				e.that(resp.Status() == domain.StatusError, "status = %q, want %q", resp.Status(), domain.StatusError)
				return e.err()
			},
		},
		{
			Order:       6,
			Name:        "ShouldRespondWithinThreshold",
			Description: "breed images answer within the slow response threshold",
			Severity:    SeverityMinor,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				var resp *dogapi.Response
				elapsed, err := timed(func() (err error) {
					resp, err = svc.ImagesForBreed(ctx, "beagle")
					return err
				})
				if err != nil {
					return err
				}
				e := expect("breed images performance")
				e.that(resp.IsSuccess(), "status code = %d", resp.StatusCode())
				e.that(elapsed < th.SlowResponse, "took %s, limit %s", elapsed, th.SlowResponse)
				return e.err()
			},
		},
		{
			Order:       7,
			Name:        "ShouldReturnImagesForSubBreed",
			Description: "sub-breed images name both the breed and the sub-breed",
			Severity:    SeverityNormal,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				images, err := svc.ImagesForSubBreedAsModel(ctx, "hound", "afghan")
				if err != nil {
					return err
				}
				e := expect("hound/afghan images")
				e.noError(images.Validate(), "validate")
				e.that(len(images.Images) > 0, "image list is empty")
				for _, url := range images.Images {
					e.that(strings.Contains(url, "hound") && strings.Contains(url, "afghan"), "url %q does not name hound-afghan", url)
				}
				return e.err()
			},
		},
	}
}
