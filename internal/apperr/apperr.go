// Package apperr defines the error kinds shared by services and the HTTP layer.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrConflict      = errors.New("conflict")
	ErrUnimplemented = errors.New("not implemented")
)

// Error carries a client-facing message together with its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func NotFound(msg string) *Error      { return &Error{Kind: ErrNotFound, Message: msg} }
func Validation(msg string) *Error    { return &Error{Kind: ErrValidation, Message: msg} }
func Conflict(msg string) *Error      { return &Error{Kind: ErrConflict, Message: msg} }
func Unimplemented(msg string) *Error { return &Error{Kind: ErrUnimplemented, Message: msg} }

// Status maps an error to the HTTP status code it should be reported with.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnimplemented):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message of err. Errors without a kind
// report their full text.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}

	return err.Error()
}
