// Package checks holds the conformance checks run against the dog image API.
package checks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/samvad-hq/dogceo-checker/internal/config"
	"github.com/samvad-hq/dogceo-checker/internal/domain"
	"github.com/samvad-hq/dogceo-checker/pkg/dogapi"
)

// Suite names.
const (
	SuiteBreedList    = "breed-list"
	SuiteBreedImages  = "breed-images"
	SuiteRandomImages = "random-images"
	SuiteIntegration  = "integration"
)

// Severity ranks how important a failing check is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityNormal   Severity = "normal"
	SeverityMinor    Severity = "minor"
)

// Check is one named, ordered expectation against the live API.
type Check struct {
	Suite       string
	Order       int
	Name        string
	Description string
	Severity    Severity
	Run         func(ctx context.Context, svc *dogapi.Service) error
}

// ID returns suite/name.
func (c Check) ID() string { return c.Suite + "/" + c.Name }

// Thresholds bound response times for the performance checks.
type Thresholds struct {
	SlowResponse    time.Duration
	SequentialTotal time.Duration
	SequentialAvg   time.Duration
}

// DefaultThresholds matches the config defaults.
var DefaultThresholds = Thresholds{
	SlowResponse:    3 * time.Second,
	SequentialTotal: 15 * time.Second,
	SequentialAvg:   5 * time.Second,
}

// ThresholdsFromConfig reads thresholds from cfg, falling back to defaults for unset values.
func ThresholdsFromConfig(cfg *config.Config) Thresholds {
	th := DefaultThresholds
	if cfg == nil {
		return th
	}
	if cfg.SlowResponse > 0 {
		th.SlowResponse = cfg.SlowResponse
	}
	if cfg.SequentialTotal > 0 {
		th.SequentialTotal = cfg.SequentialTotal
	}
	if cfg.SequentialAvg > 0 {
		th.SequentialAvg = cfg.SequentialAvg
	}
	return th
}

const (
	imageHost       = "dog.ceo"
	maxCappedImages = 50
)

var imageExtPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png)$`)

// expectations collects every failed expectation of a group instead of stopping at the first.
type expectations struct {
	name string
	errs []error
}

func expect(format string, args ...any) *expectations {
	return &expectations{name: fmt.Sprintf(format, args...)}
}

func (e *expectations) that(ok bool, format string, args ...any) bool {
	if !ok {
		e.errs = append(e.errs, fmt.Errorf(format, args...))
	}
	return ok
}

func (e *expectations) noError(err error, what string) bool {
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", what, err))
		return false
	}
	return true
}

func (e *expectations) err() error {
	if len(e.errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %w", e.name, errors.Join(e.errs...))
}

// successEnvelope records the usual 200 and "success" expectations and returns the envelope.
func (e *expectations) successEnvelope(resp *dogapi.Response) (domain.Envelope, bool) {
	e.that(resp.StatusCode() == http.StatusOK, "status code = %d, want 200", resp.StatusCode())
	env, err := resp.Envelope()
	if !e.noError(err, "decode envelope") {
		return domain.Envelope{}, false
	}
	e.that(env.Status == domain.StatusSuccess, "status = %q, want %q", env.Status, domain.StatusSuccess)
	return env, true
}

func (e *expectations) jsonContentType(resp *dogapi.Response) {
	e.that(resp.Header().Get("Content-Type") != "", "Content-Type header missing")
	e.that(resp.ContentType() == "application/json", "Content-Type = %q, want application/json", resp.Header().Get("Content-Type"))
}

func (e *expectations) imageURL(url string) {
	e.that(url != "", "image url is empty")
	e.that(strings.HasPrefix(url, "https://"), "url %q does not start with https://", url)
	e.that(strings.Contains(url, imageHost), "url %q is not on %s", url, imageHost)
	e.that(imageExtPattern.MatchString(url), "url %q has no image extension", url)
}

// timed measures the wall clock duration of fn.
func timed(fn func() error) (time.Duration, error) {
	start := time.Now()
	err := fn()
	return time.Since(start), err
}
