package gateway

import (
	"errors"
	"fmt"
)

// ErrGateway matches every failure returned by the gateway.
var ErrGateway = errors.New("gateway request failed")

// Error is the single error kind returned by Client. The status code and
// cause are kept for logging only; callers must not branch on them.
type Error struct {
	Method     string
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.Endpoint, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports true for ErrGateway so errors.Is works on any wrapped *Error.
func (e *Error) Is(target error) bool { return target == ErrGateway }
