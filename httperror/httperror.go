package httperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Common sentinel errors.
var (
	ErrNotFound      = errors.New("no matching route")
	ErrInvalidTarget = errors.New("invalid route target")
)

// StatusError is implemented by errors that map to an HTTP status code.
// The router converts a StatusError raised during route dispatch into a
// response with that status and the error message as body.
type StatusError interface {
	error
	StatusCode() int
}

// Error is a StatusError carrying a status code and message.
type Error struct {
	Code    int
	Message string
	Cause   error
}

// New creates a new Error. An empty message defaults to the standard
// status text for the code.
func New(code int, message string) *Error {
	if message == "" {
		message = http.StatusText(code)
	}
	return &Error{Code: code, Message: message}
}

// Wrap creates a new Error wrapping a cause.
func Wrap(code int, message string, cause error) *Error {
	e := New(code, message)
	e.Cause = cause
	return e
}

// NotFound creates a 404 Error.
func NotFound() *Error {
	return New(http.StatusNotFound, "")
}

// MethodNotAllowed creates a 405 Error.
func MethodNotAllowed() *Error {
	return New(http.StatusMethodNotAllowed, "")
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code.
func (e *Error) StatusCode() int {
	return e.Code
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *Error) Is(target error) bool {
	if target == ErrNotFound && e.Code == http.StatusNotFound {
		return true
	}
	other, ok := target.(*Error)
	if ok {
		return other.Code == e.Code
	}
	return errors.Is(e.Cause, target)
}

// TargetError reports a malformed route target at registration time.
type TargetError struct {
	Target string
	Reason string
}

// Error implements the error interface.
func (e *TargetError) Error() string {
	return fmt.Sprintf("invalid route target %q: %s", e.Target, e.Reason)
}

// Is checks if the error matches the target.
func (e *TargetError) Is(target error) bool {
	if target == ErrInvalidTarget {
		return true
	}
	_, ok := target.(*TargetError)
	return ok
}

// NewTargetError creates a new TargetError.
func NewTargetError(target, reason string) *TargetError {
	return &TargetError{Target: target, Reason: reason}
}
