package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/samvad-hq/dogceo-checker/internal/checks"
	"github.com/samvad-hq/dogceo-checker/internal/domain"
)

var _ = Describe("Breed Images", Ordered, func() {
	Context("When fetching images of a breed", func() {
		describeSuite(checks.SuiteBreedImages)

		It("should return beagle images as a success envelope", func() {
			resp, err := fixture.Service().ImagesForBreed(ctx, "beagle")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode()).To(Equal(http.StatusOK))
			Expect(resp.ContentType()).To(Equal("application/json"))

			images, err := fixture.Service().ImagesForBreedAsModel(ctx, "beagle")
			Expect(err).NotTo(HaveOccurred())
			Expect(images.Status).To(Equal(domain.StatusSuccess))
			Expect(images.Images).To(HaveEach(ContainSubstring("beagle")))
		})
	})
})
