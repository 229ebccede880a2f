package suites

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/samvad-hq/dogceo-checker/internal/checks"
	"github.com/samvad-hq/dogceo-checker/internal/domain"
)

var _ = Describe("Breed List", Ordered, func() {
	Context("When listing every breed", func() {
		describeSuite(checks.SuiteBreedList)

		It("should map terrier onto its sub-breeds", func() {
			list, err := fixture.Service().ListAllBreedsAsModel(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(list.Status).To(Equal(domain.StatusSuccess))
			Expect(list.Breeds).To(HaveKeyWithValue("terrier", Not(BeEmpty())))
			GinkgoWriter.Printf("Found %d breeds\n", len(list.Breeds))
		})
	})
})
