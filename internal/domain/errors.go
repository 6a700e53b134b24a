// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrDisallowedField is returned when a partial update names a field
	// outside the entity's allowed set. The whole update is rejected before
	// any field is applied.
	ErrDisallowedField = errors.New("field is not updatable")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError carries the offending field alongside the underlying
// validation failure so the API layer can report which constraint broke.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Field + " " + e.Message
	}
	return e.Field + ": " + e.Err.Error()
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// IsValidationError reports whether err is any of the entity validation
// failures, including the field-specific sentinels.
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrEmptyUserID),
		errors.Is(err, ErrEmptyName),
		errors.Is(err, ErrEmptyEmail),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrEmptyPassword),
		errors.Is(err, ErrPasswordTooShort),
		errors.Is(err, ErrPasswordTooLong),
		errors.Is(err, ErrPasswordForbidden),
		errors.Is(err, ErrNegativeAge),
		errors.Is(err, ErrEmptyTaskID),
		errors.Is(err, ErrEmptyDescription),
		errors.Is(err, ErrEmptyOwner):
		return true
	}
	return false
}
