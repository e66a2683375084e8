package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the store changed underneath an operation (e.g. a flag was
// already flipped by someone else).
var ErrConflict = errors.New("conflicting state")

// ErrForbidden indicates that the caller may not perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected failure in a store adapter.
var ErrInternal = errors.New("internal error")

// ErrSuperseded indicates that a newer request for the same key made this result obsolete.
var ErrSuperseded = errors.New("superseded by a newer request")

// AppError carries an HTTP-style status code along with the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validationf wraps ErrValidation with a formatted description.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Internal wraps an adapter failure so callers can match ErrInternal while still seeing the
// underlying cause.
func Internal(op string, err error) error {
	return NewAppError(500, op, errors.Join(ErrInternal, err))
}
