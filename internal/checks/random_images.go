package checks

import (
	"context"
	"net/http"
	"strings"

	"github.com/samvad-hq/dogceo-checker/internal/domain"
	"github.com/samvad-hq/dogceo-checker/pkg/dogapi"
)

const (
	randomSampleCalls   = 5
	randomCount         = 3
	randomBreed         = "labrador"
	randomCountBreed    = "beagle"
	randomCountForBreed = 5
	excessiveCount      = 100
)

// RandomImagesSuite checks the random image endpoints.
func RandomImagesSuite(th Thresholds) []Check {
	return []Check{
		{
			Order:       1,
			Name:        "ShouldReturnRandomImage",
			Description: "a random image succeeds with a non-empty url",
			Severity:    SeverityCritical,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				resp, err := svc.RandomImage(ctx)
				if err != nil {
					return err
				}
				e := expect("random image")
				if env, ok := e.successEnvelope(resp); ok {
					url, err := env.MessageString()
					if e.noError(err, "decode url") {
						e.that(url != "", "image url is empty")
					}
				}
				return e.err()
			},
		},
		{
			Order:       2,
			Name:        "ShouldDecodeRandomImageModel",
			Description: "a random image decodes into the random image model",
			Severity:    SeverityNormal,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				img, err := svc.RandomImageAsModel(ctx)
				if err != nil {
					return err
				}
				e := expect("random image model")
				e.that(img.Status == domain.StatusSuccess, "status = %q", img.Status)
				e.noError(img.Validate(), "validate")
				return e.err()
			},
		},
		{
			Order:       3,
			Name:        "ShouldReturnValidImageURL",
			Description: "the random image url is an https image on the API host",
			Severity:    SeverityNormal,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				img, err := svc.RandomImageAsModel(ctx)
				if err != nil {
					return err
				}
				e := expect("random image url")
				e.imageURL(img.ImageURL)
				return e.err()
			},
		},
		{
			Order:       4,
			Name:        "ShouldVaryAcrossCalls",
			Description: "consecutive random images are not all identical",
			Severity:    SeverityMinor,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				seen := make(map[string]struct{}, randomSampleCalls)
				for i := 0; i < randomSampleCalls; i++ {
					img, err := svc.RandomImageAsModel(ctx)
					if err != nil {
						return err
					}
					seen[img.ImageURL] = struct{}{}
				}
				e := expect("random image variety")
				e.that(len(seen) > 1, "%d calls returned the same image", randomSampleCalls)
				return e.err()
			},
		},
		{
			Order:       5,
			Name:        "ShouldReturnRequestedCount",
			Description: "asking for three random images returns exactly three",
			Severity:    SeverityNormal,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				images, err := svc.RandomImagesAsModel(ctx, randomCount)
				if err != nil {
					return err
				}
				e := expect("random images count")
				e.that(images.Status == domain.StatusSuccess, "status = %q", images.Status)
				e.that(len(images.Images) == randomCount, "got %d images, want %d", len(images.Images), randomCount)
				for _, url := range images.Images {
					e.imageURL(url)
				}
				return e.err()
			},
		},
		{
			Order:       6,
			Name:        "ShouldRespondWithinThreshold",
			Description: "a random image answers within the slow response threshold",
			Severity:    SeverityMinor,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				var resp *dogapi.Response
				elapsed, err := timed(func() (err error) {
					resp, err = svc.RandomImage(ctx)
					return err
				})
				if err != nil {
					return err
				}
				e := expect("random image performance")
				e.that(resp.IsSuccess(), "status code = %d", resp.StatusCode())
				e.that(elapsed < th.SlowResponse, "took %s, limit %s", elapsed, th.SlowResponse)
				return e.err()
			},
		},
		{
			Order:       7,
			Name:        "ShouldReturnJSONContentType",
			Description: "random images are served as application/json",
			Severity:    SeverityMinor,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				resp, err := svc.RandomImage(ctx)
				if err != nil {
					return err
				}
				e := expect("random image headers")
				e.that(resp.IsSuccess(), "status code = %d", resp.StatusCode())
				e.jsonContentType(resp)
				return e.err()
			},
		},
		{
			Order:       8,
			Name:        "ShouldReturnRandomImageOfBreed",
			Description: "a random labrador image names the breed",
			Severity:    SeverityNormal,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				img, err := svc.RandomImageForBreedAsModel(ctx, randomBreed)
				if err != nil {
					return err
				}
				e := expect("random %s image", randomBreed)
				e.that(img.Status == domain.StatusSuccess, "status = %q", img.Status)
				e.imageURL(img.ImageURL)
				e.that(strings.Contains(img.ImageURL, randomBreed), "url %q does not contain %s", img.ImageURL, randomBreed)
				return e.err()
			},
		},
		{
			Order:       9,
			Name:        "ShouldReturnRandomImagesOfBreed",
			Description: "asking for N random beagle images returns at most N, all beagles",
			Severity:    SeverityNormal,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				images, err := svc.RandomImagesForBreedAsModel(ctx, randomCountBreed, randomCountForBreed)
				if err != nil {
					return err
				}
				e := expect("random %s images", randomCountBreed)
				e.that(images.Status == domain.StatusSuccess, "status = %q", images.Status)
				e.that(len(images.Images) > 0, "image list is empty")
				e.that(len(images.Images) <= randomCountForBreed, "got %d images, want at most %d", len(images.Images), randomCountForBreed)
				for _, url := range images.Images {
					e.that(strings.Contains(url, randomCountBreed), "url %q does not contain %s", url, randomCountBreed)
				}
				return e.err()
			},
		},
		{
			Order:       10,
			Name:        "ShouldCapExcessiveCount",
			Description: "an excessive count is either capped or rejected",
			Severity:    SeverityMinor,
			Run: func(ctx context.Context, svc *dogapi.Service) error {
				resp, err := svc.RandomImages(ctx, excessiveCount)
				if err != nil {
					return err
				}
				e := expect("excessive random count")
				switch {
				case resp.StatusCode() == http.StatusOK:
					env, ok := e.successEnvelope(resp)
					if !ok {
						break
					}
					urls, err := env.MessageList()
					if e.noError(err, "decode images") {
						e.that(len(urls) <= maxCappedImages, "got %d images, want at most %d", len(urls), maxCappedImages)
					}
				case resp.StatusCode() >= 400:
				default:
					e.that(false, "status code = %d, want 200 or >= 400", resp.StatusCode())
				}
				return e.err()
			},
		},
	}
}
