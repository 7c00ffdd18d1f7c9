package xjdp

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// ErrNoImage is returned when image retrieval is attempted on a feature
// whose detail record carries no gallery imagery.
var ErrNoImage = eris.New("xjdp: feature has no image")

// ErrNotFound is returned when a feature ID matches no marker in the
// catalog index.
var ErrNotFound = eris.New("xjdp: feature not found")

// RequestError reports a failed call against the remote service: either a
// non-success HTTP status or a transport-level failure before any status
// was received. The failing path (or absolute URL, for downloads) is
// always carried; StatusCode is zero for transport failures.
type RequestError struct {
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("xjdp: GET %s: %v", e.Path, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("xjdp: GET %s: HTTP %d: %s", e.Path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("xjdp: GET %s: HTTP %d", e.Path, e.StatusCode)
}

func (e *RequestError) Unwrap() error { return e.Err }

// MalformedResponseError reports a response body that could not be decoded
// as expected, or a detail document missing a field required to construct
// a Feature. Construction of the offending entity is aborted; nothing is
// cached for it.
type MalformedResponseError struct {
	Field string
	Err   error
}

func (e *MalformedResponseError) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("xjdp: malformed response: field %q: %v", e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("xjdp: malformed response: missing field %q", e.Field)
	default:
		return fmt.Sprintf("xjdp: malformed response: %v", e.Err)
	}
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
