package checks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/dogceo-checker/pkg/dogapi"
	"github.com/samvad-hq/dogceo-checker/pkg/dogapi/dogapitest"
)

func findCheck(t *testing.T, checks []Check, name string) Check {
	t.Helper()
	for _, c := range checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %s not found", name)
	return Check{}
}

func fakeService(t *testing.T, opts ...dogapitest.Option) *dogapi.Service {
	t.Helper()
	srv := dogapitest.NewServer(opts...)
	t.Cleanup(srv.Close)
	return dogapi.NewFromBaseURL(srv.BaseURL, 2*time.Second)
}

func TestKnownBreedsFailsWhenBreedMissing(t *testing.T) {
	svc := fakeService(t, dogapitest.WithBreeds(map[string][]string{
		"labrador": {},
		"beagle":   {},
	}))
	c := findCheck(t, BreedListSuite(DefaultThresholds), "ShouldContainKnownBreeds")

	err := c.Run(context.Background(), svc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bulldog"`)
	assert.Contains(t, err.Error(), `"retriever"`)
}

func TestSlowResponseFailsThresholdCheck(t *testing.T) {
	svc := fakeService(t, dogapitest.WithLatency(30*time.Millisecond))
	th := Thresholds{SlowResponse: 10 * time.Millisecond, SequentialTotal: time.Minute, SequentialAvg: time.Minute}

	for _, suite := range [][]Check{BreedListSuite(th), BreedImagesSuite(th), RandomImagesSuite(th)} {
		c := findCheck(t, suite, "ShouldRespondWithinThreshold")
		err := c.Run(context.Background(), svc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "limit")
	}
}

func TestSequentialCallsRespectAggregateLimits(t *testing.T) {
	svc := fakeService(t, dogapitest.WithLatency(5*time.Millisecond))
	th := Thresholds{SlowResponse: time.Minute, SequentialTotal: time.Millisecond, SequentialAvg: time.Minute}

	c := findCheck(t, IntegrationSuite(th), "ShouldHandleSequentialCalls")
	err := c.Run(context.Background(), svc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "total")
	assert.NotContains(t, err.Error(), "average")
}

func TestContentTypeCheckFailsOnWrongMediaType(t *testing.T) {
	svc := fakeService(t, dogapitest.WithContentType("text/html; charset=utf-8"))

	c := findCheck(t, BreedListSuite(DefaultThresholds), "ShouldReturnJSONContentType")
	err := c.Run(context.Background(), svc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text/html")
}

func TestJSONContentTypeAcceptsCharset(t *testing.T) {
	svc := fakeService(t, dogapitest.WithContentType("application/json; charset=utf-8"))

	c := findCheck(t, RandomImagesSuite(DefaultThresholds), "ShouldReturnJSONContentType")
	require.NoError(t, c.Run(context.Background(), svc))
}

func TestTransportFailureFailsCheck(t *testing.T) {
	srv := dogapitest.NewServer()
	base := srv.BaseURL
	srv.Close()
	svc := dogapi.NewFromBaseURL(base, time.Second)

	c := findCheck(t, RandomImagesSuite(DefaultThresholds), "ShouldReturnRandomImage")
	err := c.Run(context.Background(), svc)
	require.ErrorIs(t, err, dogapi.ErrTransport)
}

func TestExpectationsCollectEveryFailure(t *testing.T) {
	e := expect("group %d", 1)
	assert.True(t, e.that(true, "unused"))
	assert.False(t, e.that(false, "first"))
	assert.False(t, e.noError(assert.AnError, "second"))
	e.imageURL("http://example.com/dog.gif")

	err := e.err()
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{"group 1", "first", "second", "https://", "dog.ceo", "image extension"} {
		assert.Contains(t, msg, want)
	}
	assert.NoError(t, expect("empty").err())
}

func TestImageExtensionIsCaseInsensitive(t *testing.T) {
	e := expect("ext")
	e.imageURL("https://images.dog.ceo/breeds/pug/IMG_1.JPG")
	assert.NoError(t, e.err())
}
