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

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller does not own the requested resource.
var ErrForbidden = errors.New("forbidden")

// ErrDataIntegrity indicates stored or derived data violates a structural invariant,
// e.g. two open holding intervals for the same account and security.
var ErrDataIntegrity = errors.New("data integrity violation")

// ErrMissingPrice indicates no price could be found for a security on a required day.
var ErrMissingPrice = errors.New("missing price")

// ErrMissingExchangeRate indicates no exchange rate to the reporting currency exists for a required day.
var ErrMissingExchangeRate = errors.New("missing exchange rate")

// ErrUnmappedActivityType indicates an activity type outside the closed enumeration.
var ErrUnmappedActivityType = errors.New("unmapped activity type")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError wraps ErrNotFound with a resource description.
func NewNotFoundError(resource string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, resource)
}

// NewValidationError wraps ErrValidation with a reason.
func NewValidationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}
