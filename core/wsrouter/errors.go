package wsrouter

import (
	"errors"
	"fmt"
)

var (
	// Dispatch errors
	ErrNoRouteMatch      = errors.New("no websocket route matches the request path")
	ErrMalformedRequest  = errors.New("malformed upgrade request")
	ErrNotUpgrade        = errors.New("not an upgrade request")
	ErrHijackUnsupported = errors.New("response writer does not support hijacking")
	ErrPipelineTimeout   = errors.New("websocket pipeline did not reach the route handler in time")

	// Registration errors
	ErrNilHandler     = errors.New("nil websocket handler")
	ErrNilRouter      = errors.New("nil websocket router")
	ErrInvalidPattern = errors.New("invalid websocket route pattern")
)

// PanicError is the error passed to the failure path when a middleware or handler panics.
// It keeps the original panic value and the stack captured at the panic point.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to see through panics with error values.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
