package jrpc

import (
	"errors"
	"fmt"
)

// ErrAlreadyRegistered is returned when a method name already has a handler
// bound to it. Use Deregister to replace a binding.
var ErrAlreadyRegistered = errors.New("method already registered")

// ErrMethodNotFound is returned when a call arrives for a method name with
// no registered handler. The failure is contained to that single dispatch.
var ErrMethodNotFound = errors.New("method not found")

// ErrInvalidJSON is returned by the JSON composer when the raw parameter
// bytes are not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON")

// DecodeError wraps a composer failure so we can identify it and map it to
// an invalid-params fault on the wire. Dispatch aborts before filters run.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode params: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// FilterError wraps a rejection raised by a filter. Dispatch aborts before
// the handler runs; no handler side effects occur.
type FilterError struct {
	Method string
	Err    error
}

func (e *FilterError) Error() string { return fmt.Sprintf("filter rejected %q: %v", e.Method, e.Err) }
func (e *FilterError) Unwrap() error { return e.Err }

// HandlerError wraps a fault raised by the handler itself, either
// synchronously or through a rejected Future.
type HandlerError struct {
	Err error
}

func (e *HandlerError) Error() string { return fmt.Sprintf("handler: %v", e.Err) }
func (e *HandlerError) Unwrap() error { return e.Err }
