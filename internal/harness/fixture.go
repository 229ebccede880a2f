// Package harness wraps check execution with a configured API client,
// per-check timing and log flushing. It does not depend on any test framework.
package harness

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/samvad-hq/dogceo-checker/internal/config"
	"github.com/samvad-hq/dogceo-checker/internal/logger"
	"github.com/samvad-hq/dogceo-checker/pkg/dogapi"
)

// Fixture hands out a configured dog API service and brackets each check with timing logs.
type Fixture struct {
	cfg *config.Config
	log logger.Logger

	once sync.Once
	svc  *dogapi.Service
}

// New builds a fixture. A nil log discards output.
func New(cfg *config.Config, log logger.Logger) (*Fixture, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Fixture{cfg: cfg, log: log}, nil
}

// Config returns the configuration the fixture was built with.
func (f *Fixture) Config() *config.Config { return f.cfg }

// Logger returns the fixture's log sink.
func (f *Fixture) Logger() logger.Logger { return f.log }

// Service returns the fixture's service, building it on first use.
func (f *Fixture) Service() *dogapi.Service {
	f.once.Do(func() {
		f.svc = dogapi.NewFromBaseURL(f.cfg.BaseURL, f.cfg.RequestTimeout,
			dogapi.WithLogger(f.log),
			dogapi.WithContentType(f.cfg.ContentType),
			dogapi.WithBodyLogLimit(f.cfg.BodyLogLimit),
		)
	})
	return f.svc
}

// Run executes fn with the fixture's service, logging start, end and duration.
// A panic inside fn is returned as an error.
func (f *Fixture) Run(ctx context.Context, name string, fn func(context.Context, *dogapi.Service) error) (err error) {
	friendly := FriendlyName(name)
	start := time.Now()
	f.log.InfoObj("check started", "check", map[string]any{
		"name":       friendly,
		"started_at": start.UTC(),
	})

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("check %q panicked: %v", name, r)
		}
		fields := map[string]any{
			"name":        friendly,
			"duration_ms": time.Since(start).Milliseconds(),
			"passed":      err == nil,
		}
		if err != nil {
			fields["error"] = err.Error()
			f.log.WarnObj("check finished", "check", fields)
			return
		}
		f.log.InfoObj("check finished", "check", fields)
	}()

	return fn(ctx, f.Service())
}

type syncer interface {
	Sync() error
}

// Close flushes the log sink if it buffers.
func (f *Fixture) Close() error {
	if s, ok := f.log.(syncer); ok {
		return s.Sync()
	}
	return nil
}

var (
	camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	separators    = regexp.MustCompile(`[\s_\-]+`)
)

// FriendlyName turns identifiers like ShouldReturnBreedList or should_return-list
// into lowercase space separated text.
func FriendlyName(name string) string {
	s := camelBoundary.ReplaceAllString(name, "$1 $2")
	s = separators.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}
