package cascade

import (
	"errors"
	"fmt"
	"net/http"
)

// Control signals a handler returns to steer the rest of the dispatch pass.
// The engine consumes them; they never escape Dispatch.
var (
	// SkipThis abandons the current route before it counts as matched and
	// moves on to the next one.
	SkipThis = errors.New("skip this route")

	// SkipRemaining ends the pass as if the route table were exhausted.
	SkipRemaining = errors.New("skip remaining routes")
)

// SkipNext returns the signal that bypasses the next n routes entirely. The
// signaling route itself still counts as matched.
func SkipNext(n int) error { return &skipNextSignal{n: n} }

type skipNextSignal struct{ n int }

func (s *skipNextSignal) Error() string {
	return fmt.Sprintf("skip next %d routes", s.n)
}

// HTTPError is the expected kind of dispatch outcome: no route matched
// (404), only the method failed (405), or a handler aborted with an explicit
// status. It travels the HTTP error chain, never the generic one.
type HTTPError struct {
	Code    int
	Message string
}

// NewHTTPError builds an HTTPError with the standard status text.
func NewHTTPError(code int) *HTTPError {
	return &HTTPError{Code: code, Message: http.StatusText(code)}
}

// Abort stops the pass with an explicit status code:
//
//	return cascade.Abort(http.StatusForbidden)
func Abort(code int) error { return NewHTTPError(code) }

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

// UnhandledError wraps a handler failure that no error callback accepted.
// By the time Dispatch returns it, the response has been forced to 500 and
// locked.
type UnhandledError struct {
	Cause error
}

func (e *UnhandledError) Error() string {
	return "unhandled dispatch error: " + e.Cause.Error()
}

func (e *UnhandledError) Unwrap() error { return e.Cause }

var (
	// ErrRouteNotFound reports reverse generation against an unknown name.
	ErrRouteNotFound = errors.New("route not found")

	// ErrResponseLocked reports a body write to a locked response.
	ErrResponseLocked = errors.New("response is locked")
)

// The dispatch loop classifies handler results through these helpers so the
// signal types stay next to their definitions.

func isSkipThis(err error) bool { return errors.Is(err, SkipThis) }

func isSkipRemaining(err error) bool { return errors.Is(err, SkipRemaining) }

func asSkipNext(err error) (int, bool) {
	var s *skipNextSignal
	if errors.As(err, &s) {
		return s.n, true
	}
	return 0, false
}

func asHTTPError(err error) (*HTTPError, bool) {
	var h *HTTPError
	if errors.As(err, &h) {
		return h, true
	}
	return nil, false
}
