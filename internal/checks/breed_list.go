package checks

import (
	"context"
	"maps"
	"slices"

	"github.com/samvad-hq/dogceo-checker/internal/domain"
	"github.com/samvad-hq/dogceo-checker/pkg/dogapi"
)

var (
	knownBreeds        = []string{"labrador", "bulldog", "beagle", "retriever"}
	breedsWithSubBreed = []string{"terrier", "spaniel"}
)

// BreedListSuite checks GET /breeds/list/all.
func BreedListSuite(th Thresholds) []Check {
	return []Check{
		{
			Order:       1,
			Name:        "ShouldReturnFullBreedList",
			Description: "the listing succeeds with a non-empty breed map",
			Severity:    SeverityCritical,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				resp, err := svc.ListAllBreeds(ctx)
				if err != nil {
					return err
				}
				e := expect("breed list response")
				if env, ok := e.successEnvelope(resp); ok {
					breeds, err := env.MessageMap()
					if e.noError(err, "decode breeds") {
						e.that(len(breeds) > 0, "breed map is empty")
					}
				}
				return e.err()
			},
		},
		{
			Order:       2,
			Name:        "ShouldDecodeBreedListModel",
			Description: "the body decodes into the breed list model and satisfies its invariants",
			Severity:    SeverityNormal,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				list, err := svc.ListAllBreedsAsModel(ctx)
				if err != nil {
					return err
				}
				e := expect("breed list model")
				e.that(list.Status == domain.StatusSuccess, "status = %q", list.Status)
				e.that(list.Breeds != nil, "breeds map is nil")
				e.that(len(list.Breeds) > 0, "breeds map is empty")
				e.noError(list.Validate(), "validate")
				return e.err()
			},
		},
		{
			Order:       3,
			Name:        "ShouldContainKnownBreeds",
			Description: "well known breeds are listed",
			Severity:    SeverityNormal,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				list, err := svc.ListAllBreedsAsModel(ctx)
				if err != nil {
					return err
				}
				e := expect("known breeds")
				for _, breed := range knownBreeds {
					_, ok := list.Breeds[breed]
					e.that(ok, "breed %q missing", breed)
				}
				return e.err()
			},
		},
		{
			Order:       4,
			Name:        "ShouldListSubBreedsWhenAvailable",
			Description: "breeds known to have sub-breeds list them",
			Severity:    SeverityNormal,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				list, err := svc.ListAllBreedsAsModel(ctx)
				if err != nil {
					return err
				}
				e := expect("sub-breeds")
				for _, breed := range breedsWithSubBreed {
					if subs, ok := list.Breeds[breed]; ok {
						e.that(len(subs) > 0, "breed %q has no sub-breeds", breed)
					}
				}
				return e.err()
			},
		},
		{
			Order:       5,
			Name:        "ShouldRespondWithinThreshold",
			Description: "the listing answers within the slow response threshold",
			Severity:    SeverityMinor,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				var resp *dogapi.Response
				elapsed, err := timed(func() (err error) {
					resp, err = svc.ListAllBreeds(ctx)
					return err
				})
				if err != nil {
					return err
				}
				e := expect("breed list performance")
				e.that(resp.IsSuccess(), "status code = %d", resp.StatusCode())
				e.that(elapsed < th.SlowResponse, "took %s, limit %s", elapsed, th.SlowResponse)
				return e.err()
			},
		},
		{
			Order:       6,
			Name:        "ShouldReturnJSONContentType",
			Description: "the listing is served as application/json",
			Severity:    SeverityMinor,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				resp, err := svc.ListAllBreeds(ctx)
				if err != nil {
					return err
				}
				e := expect("breed list headers")
				e.that(resp.IsSuccess(), "status code = %d", resp.StatusCode())
				e.jsonContentType(resp)
				return e.err()
			},
		},
		{
			Order:       7,
			Name:        "ShouldBeConsistentAcrossCalls",
			Description: "two consecutive listings return identical breed sets",
			Severity:    SeverityNormal,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				first, err := svc.ListAllBreedsAsModel(ctx)
				if err != nil {
					return err
				}
				second, err := svc.ListAllBreedsAsModel(ctx)
				if err != nil {
					return err
				}
				e := expect("breed list consistency")
				e.that(first.Status == second.Status, "status changed from %q to %q", first.Status, second.Status)
				e.that(len(first.Breeds) == len(second.Breeds), "breed count changed from %d to %d", len(first.Breeds), len(second.Breeds))
				a := slices.Sorted(maps.Keys(first.Breeds))
				b := slices.Sorted(maps.Keys(second.Breeds))
				e.that(slices.Equal(a, b), "breed key sets differ")
				return e.err()
			},
		},
		{
			Order:       8,
			Name:        "ShouldUseValidBreedNames",
			Description: "breed and sub-breed names are lowercase without whitespace",
			Severity:    SeverityMinor,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				list, err := svc.ListAllBreedsAsModel(ctx)
				if err != nil {
					return err
				}
				e := expect("breed names")
				for breed, subs := range list.Breeds {
					e.noError(domain.ValidateBreedName(breed), "breed")
					for _, sub := range subs {
						e.noError(domain.ValidateBreedName(sub), "sub-breed of "+breed)
					}
				}
				return e.err()
			},
		},
	}
}
