package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
)

// Insight pipeline errors.
var (
	ErrTemplateNotFound = errors.New("query template not found")
	ErrMissingParameter = errors.New("missing template parameter")
	ErrInvalidParameter = errors.New("invalid template parameter")
	ErrEntityNotFound   = errors.New("entity not found")
	ErrInvalidSelector  = errors.New("invalid entity parameters")
	ErrDatabase         = errors.New("database error")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// EntityNotFoundError reports a name that did not resolve to a row.
// Name is kept verbatim so callers can echo it back.
type EntityNotFoundError struct {
	Entity string
	Name   string
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", capitalize(e.Entity), e.Name)
}

func (e *EntityNotFoundError) Unwrap() error { return ErrEntityNotFound }

// TemplateError is returned by template rendering.
type TemplateError struct {
	Template string
	Param    string
	Err      error
}

func (e *TemplateError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("template %q: %v", e.Template, e.Err)
	}
	return fmt.Sprintf("template %q: %v %q", e.Template, e.Err, e.Param)
}

func (e *TemplateError) Unwrap() error { return e.Err }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
