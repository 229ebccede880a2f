package suites

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/samvad-hq/dogceo-checker/internal/checks"
)

var _ = Describe("Random Images", Ordered, func() {
	Context("When asking for random images", func() {
		describeSuite(checks.SuiteRandomImages)

		It("should return exactly the requested number of images", func() {
			images, err := fixture.Service().RandomImagesAsModel(ctx, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(images.Images).To(HaveLen(3))
			Expect(images.Images).To(HaveEach(HavePrefix("https://")))
		})
	})
})
