package config

import (
	"errors"
	"fmt"

	"github.com/dshills/inkwell/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrValidationFailed indicates a setting fails validation.
	ErrValidationFailed = errors.New("validation failed")

	// ErrTypeMismatch indicates a value has the wrong type for its setting.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ParseError is returned when a configuration file does not parse.
type ParseError = loader.ParseError

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Path is the setting path that failed validation.
	Path string
	// Message describes the validation error.
	Message string
	// Value is the invalid value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Is implements error matching for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
