// Package dogapi is a thin client for the dog image API used by the checks.
//
// Every operation issues exactly one GET request. Non-2xx statuses are
// returned as ordinary responses; only transport failures and, for the
// AsModel variants, body shape mismatches are reported as errors. There is
// no retry and no caching.
package dogapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/samvad-hq/dogceo-checker/internal/domain"
	"github.com/samvad-hq/dogceo-checker/pkg/httpclient"
)

const (
	defaultContentType  = "application/json"
	defaultBodyLogLimit = 500
)

// Service maps logical API operations onto HTTP GETs against the configured base address.
type Service struct {
	client       httpclient.Client
	log          Logger
	contentType  string
	bodyLogLimit int
}

// Option customises a Service.
type Option func(*Service)

// WithLogger sets the diagnostic log sink.
func WithLogger(log Logger) Option {
	return func(s *Service) { s.log = ensureLogger(log) }
}

// WithContentType overrides the Content-Type request header.
func WithContentType(ct string) Option {
	return func(s *Service) {
		if ct != "" {
			s.contentType = ct
		}
	}
}

// WithBodyLogLimit sets how many body bytes are logged per call; zero disables body logging.
func WithBodyLogLimit(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.bodyLogLimit = n
		}
	}
}

// New builds a Service on top of client.
func New(client httpclient.Client, opts ...Option) *Service {
	s := &Service{
		client:       client,
		log:          noopLogger{},
		contentType:  defaultContentType,
		bodyLogLimit: defaultBodyLogLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromBaseURL builds a Service with a resty transport against baseURL.
func NewFromBaseURL(baseURL string, timeout time.Duration, opts ...Option) *Service {
	return New(httpclient.NewRestyClient(baseURL, timeout), opts...)
}

// ListAllBreeds fetches the full breed taxonomy.
func (s *Service) ListAllBreeds(ctx context.Context) (*Response, error) {
	return s.get(ctx, PathListAllBreeds, nil)
}

// ListAllBreedsAsModel fetches and decodes the breed taxonomy.
func (s *Service) ListAllBreedsAsModel(ctx context.Context) (domain.BreedListResponse, error) {
	var out domain.BreedListResponse
	if err := s.getModel(ctx, PathListAllBreeds, nil, &out); err != nil {
		return out, err
	}
	return out, nil
}

// ImagesForBreed lists every image of a breed. The breed is passed through unvalidated.
func (s *Service) ImagesForBreed(ctx context.Context, breed string) (*Response, error) {
	return s.get(ctx, PathBreedImages, map[string]string{paramBreed: breed})
}

func (s *Service) ImagesForBreedAsModel(ctx context.Context, breed string) (domain.BreedImagesResponse, error) {
	var out domain.BreedImagesResponse
	if err := s.getModel(ctx, PathBreedImages, map[string]string{paramBreed: breed}, &out); err != nil {
		return out, err
	}
	return out, nil
}

// ImagesForSubBreed lists every image of a sub-breed.
func (s *Service) ImagesForSubBreed(ctx context.Context, breed, subBreed string) (*Response, error) {
	return s.get(ctx, PathSubBreedImages, map[string]string{paramBreed: breed, paramSubBreed: subBreed})
}

func (s *Service) ImagesForSubBreedAsModel(ctx context.Context, breed, subBreed string) (domain.BreedImagesResponse, error) {
	var out domain.BreedImagesResponse
	if err := s.getModel(ctx, PathSubBreedImages, map[string]string{paramBreed: breed, paramSubBreed: subBreed}, &out); err != nil {
		return out, err
	}
	return out, nil
}

// RandomImage fetches one random image of any breed.
func (s *Service) RandomImage(ctx context.Context) (*Response, error) {
	return s.get(ctx, PathRandomImage, nil)
}

func (s *Service) RandomImageAsModel(ctx context.Context) (domain.RandomImageResponse, error) {
	var out domain.RandomImageResponse
	if err := s.getModel(ctx, PathRandomImage, nil, &out); err != nil {
		return out, err
	}
	return out, nil
}

// RandomImages fetches count random images. The server decides how large counts are handled.
func (s *Service) RandomImages(ctx context.Context, count int) (*Response, error) {
	return s.get(ctx, PathRandomImages, map[string]string{paramCount: strconv.Itoa(count)})
}

func (s *Service) RandomImagesAsModel(ctx context.Context, count int) (domain.BreedImagesResponse, error) {
	var out domain.BreedImagesResponse
	if err := s.getModel(ctx, PathRandomImages, map[string]string{paramCount: strconv.Itoa(count)}, &out); err != nil {
		return out, err
	}
	return out, nil
}

// RandomImageForBreed fetches one random image of a breed.
func (s *Service) RandomImageForBreed(ctx context.Context, breed string) (*Response, error) {
	return s.get(ctx, PathRandomBreedImage, map[string]string{paramBreed: breed})
}

func (s *Service) RandomImageForBreedAsModel(ctx context.Context, breed string) (domain.RandomImageResponse, error) {
	var out domain.RandomImageResponse
	if err := s.getModel(ctx, PathRandomBreedImage, map[string]string{paramBreed: breed}, &out); err != nil {
		return out, err
	}
	return out, nil
}

// RandomImagesForBreed fetches count random images of a breed.
func (s *Service) RandomImagesForBreed(ctx context.Context, breed string, count int) (*Response, error) {
	return s.get(ctx, PathRandomBreedImagesFor, map[string]string{paramBreed: breed, paramCount: strconv.Itoa(count)})
}

func (s *Service) RandomImagesForBreedAsModel(ctx context.Context, breed string, count int) (domain.BreedImagesResponse, error) {
	var out domain.BreedImagesResponse
	params := map[string]string{paramBreed: breed, paramCount: strconv.Itoa(count)}
	if err := s.getModel(ctx, PathRandomBreedImagesFor, params, &out); err != nil {
		return out, err
	}
	return out, nil
}

func (s *Service) getModel(ctx context.Context, path string, params map[string]string, dst any) error {
	resp, err := s.get(ctx, path, params)
	if err != nil {
		return err
	}
	return decode(resp, dst)
}

func (s *Service) get(ctx context.Context, path string, params map[string]string) (*Response, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("dog api service is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	target := expandPath(path, params)
	start := time.Now()
	raw, err := s.client.Get(ctx, path, params, map[string]string{"Content-Type": s.contentType})
	if err != nil {
		s.log.ErrorObj("dog api request failed", "dog_api_error", map[string]any{
			"method":     http.MethodGet,
			"path":       target,
			"elapsed_ms": time.Since(start).Milliseconds(),
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("%w: GET %s: %w", ErrTransport, target, err)
	}

	resp := &Response{Path: target, resp: raw}
	s.logResponse(resp)
	return resp, nil
}

func (s *Service) logResponse(resp *Response) {
	fields := map[string]any{
		"method":      http.MethodGet,
		"path":        resp.Path,
		"status_code": resp.StatusCode(),
		"elapsed_ms":  resp.Elapsed().Milliseconds(),
		"headers":     resp.Header(),
	}
	if s.bodyLogLimit > 0 {
		fields["body"] = snippet(resp.Body(), s.bodyLogLimit)
	}
	s.log.InfoObj("dog api response", "dog_api_response", fields)
}
