// Package errors defines the structured error types shared by rainbow packages.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ValidationError describes a rejected argument or field value.
type ValidationError struct {
	Module  string
	Field   string
	Value   interface{}
	Message string
	Hint    string
}

// NewValidationError creates a ValidationError for the given module and field.
func NewValidationError(module, field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Module:  module,
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// WithHint attaches a remediation hint and returns the same error.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s %v: %s", e.Module, e.Field, e.Value, e.Message)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}
