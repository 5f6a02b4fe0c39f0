package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrNotFound is returned when a receipt does not exist.
var ErrNotFound = stderrors.New("not found")

// ValidationError describes input that was rejected.
type ValidationError struct {
	Field   string
	Kind    string
	Message string
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: map[string]interface{}{"field": field},
	}
}

// WithKind tags the error with a machine-readable reason.
func (e *ValidationError) WithKind(kind string) *ValidationError {
	e.Kind = kind
	e.Details["kind"] = kind
	return e
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if stderrors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
