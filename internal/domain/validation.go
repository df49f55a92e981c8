package domain

import "fmt"

// ValidationError rejects malformed or missing input. Field-level detail is
// safe to return to clients, unlike authentication failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError for the given field.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
