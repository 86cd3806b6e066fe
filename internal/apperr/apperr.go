// Package apperr defines the error taxonomy reported to callers.
// Every denial or guard failure maps to exactly one kind so handlers
// can translate it to a status code without string matching.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// Internal is the fallback for unexpected failures
	Internal Kind = iota
	// Unauthorized means the caller isn't authenticated at all
	Unauthorized
	// Forbidden means the caller's role or ownership doesn't permit the operation
	Forbidden
	// NotFound means the referenced video or account doesn't exist
	NotFound
	// InvalidState means a state-machine guard failed
	InvalidState
	// InvalidInput means the request itself is structurally invalid
	InvalidInput
	// Conflict means a concurrent mutation won the race
	Conflict
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case InvalidState:
		return "invalid_state"
	case InvalidInput:
		return "invalid_input"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

// HTTPStatus maps a kind to the status code handlers respond with
func (k Kind) HTTPStatus() int {
	switch k {
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case InvalidState, Conflict:
		return http.StatusConflict
	case InvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s, %v", e.Kind, e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(k Kind, msg string) *Error {
	return &Error{Kind: k, Msg: msg}
}

func Newf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a taxonomy kind to an underlying error
func Wrap(k Kind, msg string, err error) *Error {
	return &Error{Kind: k, Msg: msg, Err: err}
}

// KindOf extracts the kind from an error chain. Unknown errors
// report as Internal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries kind k
func Is(err error, k Kind) bool {
	return KindOf(err) == k
}
