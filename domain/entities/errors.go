package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the targeted record does not exist or belongs
	// to a different user. The two cases are indistinguishable on purpose.
	ErrNotFound = errors.New("record not found")

	// ErrNotAuthenticated indicates no user identity was supplied
	ErrNotAuthenticated = errors.New("not authenticated")
)

// ValidationError reports a client-side input violation, detected before any
// store call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
