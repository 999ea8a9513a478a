// Package apperrors defines the sentinel errors and error types shared by
// the service, repository, and client layers. Callers should use errors.Is
// and errors.As to match these values.
package apperrors

import "errors"

var (
	// ErrNotFound indicates the requested user id does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrEmailExists indicates a write would duplicate an email address.
	// The message doubles as the user-facing conflict message.
	ErrEmailExists = errors.New("Email already exists")
)

// ValidationError reports one message per violated field of a candidate
// user record.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError creates a ValidationError with an empty field map.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a violation message for a field.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = message
}

// HasViolations reports whether any field violation was recorded.
func (e *ValidationError) HasViolations() bool {
	return len(e.Fields) > 0
}
