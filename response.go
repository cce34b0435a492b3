package jrpc

import (
	"errors"
	"fmt"
)

// JSON-RPC 2.0 error codes used on fault envelopes.
const (
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Response is the envelope transmitted back to the originating endpoint.
// Exactly one of Result or Error is set. The ID matches the inbound request
// id; notifications never produce a Response.
type Response struct {
	ID     string `json:"id,omitempty"`
	Result any    `json:"result,omitempty"`
	Error  *Error `json:"error,omitempty"`
}

// Error is the fault descriptor carried on the wire. Handlers may return an
// *Error (directly or wrapped) to control the code sent to the caller.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("jrpc error %d: %s", e.Code, e.Message)
}

// NewError builds a wire fault with the given code and message.
func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// wireError maps a dispatch fault to the descriptor sent on the wire.
// A handler-supplied *Error anywhere in the chain wins, keeping custom
// codes intact.
func wireError(err error) *Error {
	var we *Error
	if errors.As(err, &we) {
		return we
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return &Error{Code: CodeInvalidParams, Message: de.Error()}
	}
	var fe *FilterError
	if errors.As(err, &fe) {
		return &Error{Code: CodeInvalidRequest, Message: fe.Error()}
	}
	return &Error{Code: CodeInternalError, Message: err.Error()}
}
