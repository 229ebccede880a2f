package harness

import (
	"context"
	"errors"
	"testing"

	"github.com/samvad-hq/dogceo-checker/internal/config"
	"github.com/samvad-hq/dogceo-checker/internal/logger"
	"github.com/samvad-hq/dogceo-checker/pkg/dogapi"
	"github.com/samvad-hq/dogceo-checker/pkg/dogapi/dogapitest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{BaseURL: baseURL, ContentType: config.DefaultContentType, BodyLogLimit: 100}
}

func TestFriendlyName(t *testing.T) {
	cases := map[string]string{
		"ShouldReturnBreedList":  "should return breed list",
		"should_return-json":     "should return json",
		"RespondsWithin3Seconds": "responds within3 seconds",
		"  spaced  ":             "spaced",
	}
	for in, want := range cases {
		if got := FriendlyName(in); got != want {
			t.Errorf("FriendlyName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRunLogsAndReturnsResult(t *testing.T) {
	srv := dogapitest.NewServer()
	defer srv.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	fx, err := New(testConfig(srv.BaseURL), logger.NewZapLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = fx.Run(context.Background(), "ShouldListBreeds", func(ctx context.Context, svc *dogapi.Service) error {
		_, err := svc.ListAllBreeds(ctx)
		return err
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	started := logs.FilterMessage("check started").All()
	finished := logs.FilterMessage("check finished").All()
	if len(started) != 1 || len(finished) != 1 {
		t.Fatalf("expected start and finish entries, got %d/%d", len(started), len(finished))
	}
	if logs.FilterMessage("dog api response").Len() != 1 {
		t.Fatalf("expected the service call to be logged through the fixture logger")
	}
	if err := fx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestRunRecoversPanics(t *testing.T) {
	fx, err := New(testConfig("http://127.0.0.1:1"), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = fx.Run(context.Background(), "boom", func(context.Context, *dogapi.Service) error {
		panic("kaboom")
	})
	if err == nil {
		t.Fatalf("expected panic converted into error")
	}

	sentinel := errors.New("failed expectation")
	if err := fx.Run(context.Background(), "fails", func(context.Context, *dogapi.Service) error {
		return sentinel
	}); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
}

func TestServiceIsBuiltOnce(t *testing.T) {
	fx, _ := New(testConfig("http://127.0.0.1:1"), nil)
	if fx.Service() != fx.Service() {
		t.Fatalf("expected the same service instance")
	}
}

func TestNewRequiresConfig(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
