package checks

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/samvad-hq/dogceo-checker/internal/domain"
	"github.com/samvad-hq/dogceo-checker/pkg/dogapi"
)

var consistencyBreeds = []string{"labrador", "bulldog", "beagle"}

const sequentialCalls = 5

// IntegrationSuite chains endpoints together and checks they agree.
func IntegrationSuite(th Thresholds) []Check {
	return []Check{
		{
			Order:       1,
			Name:        "ShouldFetchImagesForListedBreed",
			Description: "a breed taken from the listing returns images naming it",
			Severity:    SeverityCritical,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				list, err := svc.ListAllBreedsAsModel(ctx)
				if err != nil {
					return err
				}
				e := expect("listed breed images")
				names := list.BreedNames()
				if !e.that(len(names) > 0, "breed listing is empty") {
					return e.err()
				}
				slices.Sort(names)
				breed := names[0]

				images, err := svc.ImagesForBreedAsModel(ctx, breed)
				if !e.noError(err, breed) {
					return e.err()
				}
				e.that(images.Status == domain.StatusSuccess, "%s: status = %q", breed, images.Status)
				e.that(len(images.Images) > 0, "%s: image list is empty", breed)
				for _, url := range images.Images {
					e.that(strings.Contains(url, breed), "url %q does not contain %s", url, breed)
				}
				return e.err()
			},
		},
		{
			Order:       2,
			Name:        "ShouldServeGeneralAndBreedRandomImages",
			Description: "general and breed specific random images both succeed",
			Severity:    SeverityNormal,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				general, err := svc.RandomImageAsModel(ctx)
				if err != nil {
					return err
				}
				specific, err := svc.RandomImageForBreedAsModel(ctx, randomBreed)
				if err != nil {
					return err
				}
				e := expect("general and %s random images", randomBreed)
				e.that(general.Status == domain.StatusSuccess, "general: status = %q", general.Status)
				e.that(specific.Status == domain.StatusSuccess, "%s: status = %q", randomBreed, specific.Status)
				e.imageURL(general.ImageURL)
				e.imageURL(specific.ImageURL)
				e.that(strings.Contains(specific.ImageURL, randomBreed), "url %q does not contain %s", specific.ImageURL, randomBreed)
				return e.err()
			},
		},
		{
			Order:       3,
			Name:        "ShouldAgreeBetweenListAndBreedImages",
			Description: "sampled breeds are listed and have images",
			Severity:    SeverityNormal,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				list, err := svc.ListAllBreedsAsModel(ctx)
				if err != nil {
					return err
				}
				e := expect("list and images consistency")
				for _, breed := range consistencyBreeds {
					if _, ok := list.Breeds[breed]; !e.that(ok, "breed %q not listed", breed) {
						continue
					}
					images, err := svc.ImagesForBreedAsModel(ctx, breed)
					if !e.noError(err, breed) {
						continue
					}
					e.that(images.Status == domain.StatusSuccess, "%s: status = %q", breed, images.Status)
					e.that(len(images.Images) > 0, "%s: image list is empty", breed)
				}
				return e.err()
			},
		},
		{
			Order:       4,
			Name:        "ShouldHandleSequentialCalls",
			Description: "five sequential calls stay within the aggregate time limits",
			Severity:    SeverityMinor,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				e := expect("sequential calls")
				var total time.Duration
				for i := 0; i < sequentialCalls; i++ {
					var resp *dogapi.Response
					elapsed, err := timed(func() (err error) {
						resp, err = svc.RandomImage(ctx)
						return err
					})
					if err != nil {
						return err
					}
					total += elapsed
					e.that(resp.IsSuccess(), "call %d: status code = %d", i+1, resp.StatusCode())
				}
				avg := total / sequentialCalls
				e.that(total < th.SequentialTotal, "total %s, limit %s", total, th.SequentialTotal)
				e.that(avg < th.SequentialAvg, "average %s, limit %s", avg, th.SequentialAvg)
				return e.err()
			},
		},
		{
			Order:       5,
			Name:        "ShouldStayStableAcrossValidAndInvalidRequests",
			Description: "valid requests succeed and an invalid one fails cleanly in the same session",
			Severity:    SeverityNormal,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				e := expect("mixed request stability")
				valid := []struct {
					name string
					call func() (*dogapi.Response, error)
				}{
					{"list", func() (*dogapi.Response, error) { return svc.ListAllBreeds(ctx) }},
					{"random", func() (*dogapi.Response, error) { return svc.RandomImage(ctx) }},
					{"labrador images", func() (*dogapi.Response, error) { return svc.ImagesForBreed(ctx, "labrador") }},
				}
				for _, v := range valid {
					resp, err := v.call()
					if !e.noError(err, v.name) {
						continue
					}
					e.that(resp.IsSuccess(), "%s: status code = %d", v.name, resp.StatusCode())
				}

				resp, err := svc.ImagesForBreed(ctx, unknownBreed)
				if e.noError(err, "unknown breed") {
					e.that(resp.StatusCode() >= 400, "unknown breed: status code = %d, want >= 400", resp.StatusCode())
					e.that(strings.Contains(string(resp.Body()), domain.StatusError), "unknown breed: body does not mention error")
				}
				return e.err()
			},
		},
		{
			Order:       6,
			Name:        "ShouldUseSameContentFormatEverywhere",
			Description: "list, random and breed images share the JSON envelope format",
			Severity:    SeverityMinor,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				e := expect("content format")
				endpoints := []struct {
					name string
					call func() (*dogapi.Response, error)
				}{
					{"list", func() (*dogapi.Response, error) { return svc.ListAllBreeds(ctx) }},
					{"random", func() (*dogapi.Response, error) { return svc.RandomImage(ctx) }},
					{"beagle images", func() (*dogapi.Response, error) { return svc.ImagesForBreed(ctx, "beagle") }},
				}
				for _, ep := range endpoints {
					resp, err := ep.call()
					if !e.noError(err, ep.name) {
						continue
					}
					sub := expect("%s", ep.name)
					sub.jsonContentType(resp)
					sub.successEnvelope(resp)
					e.noError(sub.err(), "endpoint")
				}
				return e.err()
			},
		},
	}
}
