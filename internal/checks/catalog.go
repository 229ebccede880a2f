package checks

import (
	"cmp"
	"slices"
	"strings"
)

// Suites lists every suite name in run order.
var Suites = []string{SuiteBreedList, SuiteBreedImages, SuiteRandomImages, SuiteIntegration}

// Catalog returns every check of every suite, sorted by suite then order.
func Catalog(th Thresholds) []Check {
	builders := map[string]func(Thresholds) []Check{
		SuiteBreedList:    BreedListSuite,
		SuiteBreedImages:  BreedImagesSuite,
		SuiteRandomImages: RandomImagesSuite,
		SuiteIntegration:  IntegrationSuite,
	}

	var all []Check
	for _, suite := range Suites {
		for _, c := range builders[suite](th) {
			c.Suite = suite
			all = append(all, c)
		}
	}
	sortChecks(all)
	return all
}

// Select keeps the checks whose suite is named in suites. An empty selection keeps everything.
func Select(all []Check, suites []string) []Check {
	if len(suites) == 0 {
		return all
	}
	wanted := make(map[string]struct{}, len(suites))
	for _, s := range suites {
		wanted[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	out := make([]Check, 0, len(all))
	for _, c := range all {
		if _, ok := wanted[c.Suite]; ok {
			out = append(out, c)
		}
	}
	return out
}

// UnknownSuites returns the names in suites that match no known suite.
func UnknownSuites(suites []string) []string {
	var unknown []string
	for _, s := range suites {
		name := strings.ToLower(strings.TrimSpace(s))
		if !slices.Contains(Suites, name) {
			unknown = append(unknown, s)
		}
	}
	return unknown
}

func sortChecks(checks []Check) {
	rank := func(suite string) int {
		if i := slices.Index(Suites, suite); i >= 0 {
			return i
		}
		return len(Suites)
	}
	slices.SortStableFunc(checks, func(a, b Check) int {
		if c := cmp.Compare(rank(a.Suite), rank(b.Suite)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Suite, b.Suite); c != 0 {
			return c
		}
		return cmp.Compare(a.Order, b.Order)
	})
}
