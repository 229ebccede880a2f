package dogapi

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/samvad-hq/dogceo-checker/internal/domain"
	"github.com/samvad-hq/dogceo-checker/pkg/httpclient"
)

// Response is the raw result of one API call: status, headers, body and timing.
type Response struct {
	Path string
	resp httpclient.Response
}

func (r *Response) StatusCode() int        { return r.resp.StatusCode() }
func (r *Response) Header() http.Header    { return r.resp.Header() }
func (r *Response) Body() []byte           { return r.resp.Body() }
func (r *Response) Elapsed() time.Duration { return r.resp.Time() }

// IsSuccess reports a 2xx status code.
func (r *Response) IsSuccess() bool {
	return r.StatusCode() >= 200 && r.StatusCode() < 300
}

// ContentType returns the media type of the Content-Type header without parameters.
func (r *Response) ContentType() string {
	raw := r.Header().Get("Content-Type")
	if raw == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return strings.TrimSpace(strings.ToLower(raw))
	}
	return mt
}

// Envelope decodes the {message, status} wrapper without interpreting the message.
func (r *Response) Envelope() (domain.Envelope, error) {
	var env domain.Envelope
	if err := decode(r, &env); err != nil {
		return domain.Envelope{}, err
	}
	return env, nil
}

// Status returns the envelope status, or an empty string if the body is not an envelope.
func (r *Response) Status() string {
	env, err := r.Envelope()
	if err != nil {
		return ""
	}
	return env.Status
}

// decode unmarshals the body into dst. Unknown members are ignored, type mismatches fail.
func decode(r *Response, dst any) error {
	body := r.Body()
	if len(body) == 0 {
		return &DecodeError{Path: r.Path, StatusCode: r.StatusCode(), Snippet: "<empty>", Err: fmt.Errorf("empty body")}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &DecodeError{Path: r.Path, StatusCode: r.StatusCode(), Snippet: snippet(body, 256), Err: err}
	}
	return nil
}

// snippet returns body truncated to limit bytes with a trailing marker.
func snippet(body []byte, limit int) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "<empty>"
	}
	if limit > 0 && len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
