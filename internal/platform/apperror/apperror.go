// Package apperror defines the application error taxonomy shared by the
// usecase and transport layers. Every business failure is raised as an
// *Error carrying a stable Kind plus a human-readable message; the wrapped
// detail error is for logging only and is never part of the API contract.
package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	// Validation indicates a structurally or semantically invalid payload,
	// including unrecognized query parameter values.
	Validation Kind = iota
	// Conflict indicates a uniqueness violation or a reference to a record
	// that does not exist at write time.
	Conflict
	// NotFound indicates that the targeted id resolves to no record.
	NotFound
	// Internal indicates an unexpected backend fault.
	Internal
)

// Error is the application error type. It satisfies the standard error
// interface and supports errors.Is/As chains through Unwrap.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to its HTTP status. Conflicts map to 400,
// matching the service's established contract.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case Validation, Conflict:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewValidation creates a Validation error. detail may carry field-level
// information for logging.
func NewValidation(message string, detail error) *Error {
	return &Error{Kind: Validation, Message: message, Err: detail}
}

// NewConflict creates a Conflict error.
func NewConflict(message string) *Error {
	return &Error{Kind: Conflict, Message: message}
}

// NewNotFound creates a NotFound error.
func NewNotFound(message string) *Error {
	return &Error{Kind: NotFound, Message: message}
}

// NewInternal creates an Internal error wrapping the unexpected fault.
func NewInternal(message string, detail error) *Error {
	return &Error{Kind: Internal, Message: message, Err: detail}
}

// From extracts an *Error from an error chain.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
