package suites

import (
	. "github.com/onsi/ginkgo/v2"

	"github.com/samvad-hq/dogceo-checker/internal/checks"
)

var _ = Describe("Integration", Ordered, func() {
	Context("When chaining endpoints", func() {
		describeSuite(checks.SuiteIntegration)
	})
})
