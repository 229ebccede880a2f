package dogapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/samvad-hq/dogceo-checker/internal/domain"
	"github.com/samvad-hq/dogceo-checker/pkg/dogapi/dogapitest"
	"github.com/samvad-hq/dogceo-checker/pkg/httpclient"
)

type recordedEntry struct {
	level string
	msg   string
	obj   interface{}
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []recordedEntry
}

func (r *recordingLogger) add(level, msg string, obj interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, recordedEntry{level: level, msg: msg, obj: obj})
}

func (r *recordingLogger) InfoObj(msg, _ string, obj interface{})  { r.add("info", msg, obj) }
func (r *recordingLogger) DebugObj(msg, _ string, obj interface{}) { r.add("debug", msg, obj) }
func (r *recordingLogger) WarnObj(msg, _ string, obj interface{})  { r.add("warn", msg, obj) }
func (r *recordingLogger) ErrorObj(msg, _ string, obj interface{}) { r.add("error", msg, obj) }

// stubResponse implements httpclient.Response.
type stubResponse struct {
	body       []byte
	statusCode int
	header     http.Header
}

func (s stubResponse) Body() []byte        { return s.body }
func (s stubResponse) StatusCode() int     { return s.statusCode }
func (s stubResponse) Header() http.Header { return s.header }
func (s stubResponse) Time() time.Duration { return 5 * time.Millisecond }

// stubClient records the last request and returns a canned response.
type stubClient struct {
	resp    httpclient.Response
	err     error
	calls   int
	path    string
	params  map[string]string
	headers map[string]string
}

func (s *stubClient) Get(_ context.Context, path string, params, headers map[string]string) (httpclient.Response, error) {
	s.calls++
	s.path, s.params, s.headers = path, params, headers
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func newFakeService(t *testing.T, log Logger, opts ...dogapitest.Option) (*Service, *dogapitest.Server) {
	t.Helper()
	srv := dogapitest.NewServer(opts...)
	t.Cleanup(srv.Close)
	return NewFromBaseURL(srv.BaseURL, 2*time.Second, WithLogger(log)), srv
}

func TestImagesForBreedBeagleScenario(t *testing.T) {
	svc, _ := newFakeService(t, nil)

	resp, err := svc.ImagesForBreed(context.Background(), "beagle")
	if err != nil {
		t.Fatalf("ImagesForBreed: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode())
	}
	if resp.ContentType() != "application/json" {
		t.Fatalf("content type = %q", resp.ContentType())
	}
	env, err := resp.Envelope()
	if err != nil {
		t.Fatalf("Envelope: %v", err)
	}
	if env.Status != domain.StatusSuccess {
		t.Fatalf("status = %q", env.Status)
	}
	urls, err := env.MessageList()
	if err != nil || len(urls) == 0 {
		t.Fatalf("MessageList = %v, %v", urls, err)
	}
	for _, u := range urls {
		if !strings.HasPrefix(u, "https://") || !strings.Contains(u, "beagle") {
			t.Fatalf("unexpected url %q", u)
		}
	}
}

func TestEveryOperationIssuesExactlyOneRequest(t *testing.T) {
	svc, srv := newFakeService(t, nil)
	ctx := context.Background()

	calls := []func() error{
		func() error { _, err := svc.ListAllBreeds(ctx); return err },
		func() error { _, err := svc.ListAllBreedsAsModel(ctx); return err },
		func() error { _, err := svc.ImagesForBreed(ctx, "labrador"); return err },
		func() error { _, err := svc.ImagesForBreedAsModel(ctx, "labrador"); return err },
		func() error { _, err := svc.ImagesForSubBreed(ctx, "hound", "afghan"); return err },
		func() error { _, err := svc.ImagesForSubBreedAsModel(ctx, "hound", "afghan"); return err },
		func() error { _, err := svc.RandomImage(ctx); return err },
		func() error { _, err := svc.RandomImageAsModel(ctx); return err },
		func() error { _, err := svc.RandomImages(ctx, 3); return err },
		func() error { _, err := svc.RandomImagesAsModel(ctx, 3); return err },
		func() error { _, err := svc.RandomImageForBreed(ctx, "husky"); return err },
		func() error { _, err := svc.RandomImageForBreedAsModel(ctx, "husky"); return err },
		func() error { _, err := svc.RandomImagesForBreed(ctx, "husky", 2); return err },
		func() error { _, err := svc.RandomImagesForBreedAsModel(ctx, "husky", 2); return err },
	}

	for i, call := range calls {
		before := srv.Requests()
		if err := call(); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if got := srv.Requests() - before; got != 1 {
			t.Fatalf("call %d issued %d requests", i, got)
		}
	}
}

func TestModelVariantsDecode(t *testing.T) {
	svc, _ := newFakeService(t, nil)
	ctx := context.Background()

	list, err := svc.ListAllBreedsAsModel(ctx)
	if err != nil {
		t.Fatalf("ListAllBreedsAsModel: %v", err)
	}
	if err := list.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(list.Breeds["terrier"]) == 0 {
		t.Fatalf("expected terrier sub-breeds, got %#v", list.Breeds)
	}

	random, err := svc.RandomImagesAsModel(ctx, 3)
	if err != nil || len(random.Images) != 3 {
		t.Fatalf("RandomImagesAsModel = %#v, %v", random, err)
	}

	sub, err := svc.ImagesForSubBreedAsModel(ctx, "hound", "afghan")
	if err != nil {
		t.Fatalf("ImagesForSubBreedAsModel: %v", err)
	}
	if !strings.Contains(sub.Images[0], "hound-afghan") {
		t.Fatalf("unexpected sub-breed url %q", sub.Images[0])
	}
}

func TestUnknownBreedIsNotAClientError(t *testing.T) {
	svc, _ := newFakeService(t, nil)

	resp, err := svc.ImagesForBreed(context.Background(), "unicorn")
	if err != nil {
		t.Fatalf("non-2xx must not surface as an error: %v", err)
	}
	if resp.IsSuccess() || resp.Status() != domain.StatusError {
		t.Fatalf("expected error envelope, got %d %q", resp.StatusCode(), resp.Status())
	}
}

func TestAsModelFailsOnIncompatibleErrorBody(t *testing.T) {
	svc, _ := newFakeService(t, nil)

	_, err := svc.ImagesForBreedAsModel(context.Background(), "unicorn")
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decErr.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", decErr.StatusCode)
	}
	if !strings.Contains(decErr.Snippet, "Breed not found") {
		t.Fatalf("snippet = %q", decErr.Snippet)
	}
}

func TestTransportErrorsAreWrapped(t *testing.T) {
	log := &recordingLogger{}
	client := &stubClient{err: errors.New("connection refused")}
	svc := New(client, WithLogger(log))

	_, err := svc.RandomImage(context.Background())
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if len(log.entries) != 1 || log.entries[0].level != "error" {
		t.Fatalf("expected one error log entry, got %#v", log.entries)
	}
}

func TestRequestBindsParamsAndContentType(t *testing.T) {
	client := &stubClient{resp: stubResponse{statusCode: 200, body: []byte(`{"message":[],"status":"success"}`)}}
	svc := New(client, WithContentType("application/json; charset=utf-8"))

	if _, err := svc.RandomImagesForBreed(context.Background(), "bull dog", 100); err != nil {
		t.Fatalf("RandomImagesForBreed: %v", err)
	}
	if client.calls != 1 {
		t.Fatalf("calls = %d", client.calls)
	}
	if client.path != PathRandomBreedImagesFor {
		t.Fatalf("path = %q", client.path)
	}
	if client.params["breed"] != "bull dog" || client.params["count"] != "100" {
		t.Fatalf("params = %#v", client.params)
	}
	if client.headers["Content-Type"] != "application/json; charset=utf-8" {
		t.Fatalf("headers = %#v", client.headers)
	}
}

func TestDiagnosticsAreLoggedWithTruncatedBody(t *testing.T) {
	log := &recordingLogger{}
	body := `{"message":"` + strings.Repeat("x", 600) + `","status":"success"}`
	client := &stubClient{resp: stubResponse{
		statusCode: 200,
		body:       []byte(body),
		header:     http.Header{"Content-Type": {"application/json"}},
	}}
	svc := New(client, WithLogger(log))

	resp, err := svc.RandomImageForBreed(context.Background(), "hound")
	if err != nil {
		t.Fatalf("RandomImageForBreed: %v", err)
	}
	if resp.Path != "/breed/hound/images/random" {
		t.Fatalf("path = %q", resp.Path)
	}

	if len(log.entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(log.entries))
	}
	fields := log.entries[0].obj.(map[string]any)
	if fields["status_code"] != 200 || fields["elapsed_ms"] != int64(5) {
		t.Fatalf("unexpected fields %#v", fields)
	}
	logged := fields["body"].(string)
	if len(logged) != defaultBodyLogLimit+len("...") || !strings.HasSuffix(logged, "...") {
		t.Fatalf("body not truncated: %d bytes", len(logged))
	}
	if _, ok := fields["headers"]; !ok {
		t.Fatalf("headers not logged")
	}
}

func TestBodyLoggingCanBeDisabled(t *testing.T) {
	log := &recordingLogger{}
	client := &stubClient{resp: stubResponse{statusCode: 200, body: []byte(`{}`)}}
	svc := New(client, WithLogger(log), WithBodyLogLimit(0))

	if _, err := svc.ListAllBreeds(context.Background()); err != nil {
		t.Fatalf("ListAllBreeds: %v", err)
	}
	fields := log.entries[0].obj.(map[string]any)
	if _, ok := fields["body"]; ok {
		t.Fatalf("body should not be logged")
	}
}

func TestNilServiceFails(t *testing.T) {
	var svc *Service
	if _, err := svc.ListAllBreeds(context.Background()); err == nil {
		t.Fatalf("expected error from nil service")
	}
}
