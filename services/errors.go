package services

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these to HTTP status codes.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("service unavailable")
	ErrTooLarge     = errors.New("payload too large")
	ErrInternal     = errors.New("internal error")
)

// Error carries a client-facing message together with its kind
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...interface{}) error {
	return newError(ErrBadRequest, format, args...)
}

func Unauthorized(format string, args ...interface{}) error {
	return newError(ErrUnauthorized, format, args...)
}

func Forbidden(format string, args ...interface{}) error {
	return newError(ErrForbidden, format, args...)
}

func NotFound(format string, args ...interface{}) error {
	return newError(ErrNotFound, format, args...)
}

func Conflict(format string, args ...interface{}) error {
	return newError(ErrConflict, format, args...)
}

func Unavailable(format string, args ...interface{}) error {
	return newError(ErrUnavailable, format, args...)
}

func TooLarge(format string, args ...interface{}) error {
	return newError(ErrTooLarge, format, args...)
}

// Internal is a server-side failure whose message is safe to show the client
func Internal(format string, args ...interface{}) error {
	return newError(ErrInternal, format, args...)
}
