package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeFormatMismatch   ErrorType = "FORMAT_MISMATCH"
	ErrTypeDeserialization  ErrorType = "DESERIALIZATION"
	ErrTypeMissingReplicate ErrorType = "MISSING_REPLICATE"
	ErrTypeNotFound         ErrorType = "NOT_FOUND"
	ErrTypeMissingField     ErrorType = "MISSING_FIELD"
	ErrTypeMalformedField   ErrorType = "MALFORMED_FIELD"
	ErrTypeValidation       ErrorType = "VALIDATION"
	ErrTypeStorage          ErrorType = "STORAGE"
	ErrTypeConfig           ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// ErrorCode returns the error type as a plain string
func (e *AppError) ErrorCode() string {
	return string(e.Type)
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// TypeOf returns the type of the outermost AppError in err's chain.
func TypeOf(err error) (ErrorType, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type, true
	}
	return "", false
}

// IsType reports whether the outermost AppError in err's chain has type t.
func IsType(err error, t ErrorType) bool {
	got, ok := TypeOf(err)
	return ok && got == t
}

// NewFormatMismatchError reports an input file the loader does not handle.
func NewFormatMismatchError(path, want string) *AppError {
	return NewAppError(ErrTypeFormatMismatch, fmt.Sprintf("%q is not a %s file", path, want), nil).
		WithContext("path", path).
		WithContext("extension", want)
}

// NewDeserializationError reports content that does not decode to a dump.
func NewDeserializationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeDeserialization, message, cause)
}

// NewMissingReplicateError describes a probe without parallel measurements.
func NewMissingReplicateError(probeName string, position int) *AppError {
	return NewAppError(ErrTypeMissingReplicate, fmt.Sprintf("probe %q has no parallel measurements", probeName), nil).
		WithContext("probe_name", probeName).
		WithContext("probe_position", position)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s is not found", resource), nil)
}

// NewMissingFieldError reports a field absent from a raw dump record.
func NewMissingFieldError(path string) *AppError {
	return NewAppError(ErrTypeMissingField, fmt.Sprintf("field %s is missing", path), nil).
		WithContext("field", path)
}

// NewMalformedFieldError reports a raw dump field holding an unexpected value.
func NewMalformedFieldError(path, want string, got interface{}) *AppError {
	return NewAppError(ErrTypeMalformedField, fmt.Sprintf("field %s: want %s, got %T", path, want, got), nil).
		WithContext("field", path)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
