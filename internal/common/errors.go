package common

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrDatabase     = errors.New("database error")
	ErrValidation   = errors.New("validation failed")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// FormatError reports a value that did not match the lexical form a field expects.
type FormatError struct {
	Field   string
	Value   string
	Pattern string
}

func (e *FormatError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("format: %s: %q does not match %s", e.Field, e.Value, e.Pattern)
	}
	return fmt.Sprintf("format: %s: cannot parse %q", e.Field, e.Value)
}

func (e *FormatError) Unwrap() error { return ErrInvalidInput }

// StructureError reports a missing section or a table whose shape differs from the known layout.
type StructureError struct {
	Section string
	Detail  string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("structure: %s: %s", e.Section, e.Detail)
}

func (e *StructureError) Unwrap() error { return ErrInvalidInput }

// MissingDataWarning is a soft condition: a field was absent and a default was used.
type MissingDataWarning struct {
	Field  string
	Record string
}

func (w MissingDataWarning) String() string {
	if w.Record == "" {
		return "missing " + w.Field
	}
	return fmt.Sprintf("missing %s in %s", w.Field, w.Record)
}

// GroupError wraps a failure inside one feature group.
type GroupError struct {
	Group string
	Cause error
}

func (e *GroupError) Error() string {
	return fmt.Sprintf("feature group %s: %v", e.Group, e.Cause)
}

func (e *GroupError) Unwrap() error { return e.Cause }

func NewFormatError(field, value, pattern string) error {
	return &FormatError{Field: field, Value: value, Pattern: pattern}
}

func NewStructureError(section, format string, args ...any) error {
	return &StructureError{Section: section, Detail: fmt.Sprintf(format, args...)}
}

// HTTPStatus maps an error to the response code the API returns for it.
func HTTPStatus(err error) int {
	var fe *FormatError
	var se *StructureError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &fe), errors.As(err, &se):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
