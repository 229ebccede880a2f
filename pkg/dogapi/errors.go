package dogapi

import (
	"errors"
	"fmt"
)

// ErrTransport marks failures where no HTTP response was received.
var ErrTransport = errors.New("dog api transport failure")

// DecodeError reports a body that does not match the expected model shape.
type DecodeError struct {
	Path       string
	StatusCode int
	Snippet    string
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response (status %d): %v; body: %s", e.Path, e.StatusCode, e.Err, e.Snippet)
}

func (e *DecodeError) Unwrap() error { return e.Err }
