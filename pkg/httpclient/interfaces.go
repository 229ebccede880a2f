package httpclient

import (
	"context"
	"net/http"
	"time"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
	// Time is the elapsed time between sending the request and reading the response.
	Time() time.Duration
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// path may be absolute or relative to the client's base URL and may contain
// {name} placeholders bound from pathParams.
type Client interface {
	Get(ctx context.Context, path string, pathParams, headers map[string]string) (Response, error)
}
