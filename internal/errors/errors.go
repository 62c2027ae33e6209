package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeMissingSource ErrorType = "MISSING_SOURCE"
	ErrTypeEmptyDataset  ErrorType = "EMPTY_DATASET"
	ErrTypeParsing       ErrorType = "PARSING"
	ErrTypeStorage       ErrorType = "STORAGE"
	ErrTypeValidation    ErrorType = "VALIDATION"
	ErrTypeNotFound      ErrorType = "NOT_FOUND"
	ErrTypeNetwork       ErrorType = "NETWORK"
	ErrTypeConfig        ErrorType = "CONFIG"
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

// Helper functions for common error types

// NewMissingSourceError reports a required source table that could not be
// read. Loading must fail on it rather than continue with empty data.
func NewMissingSourceError(table, path string, cause error) *AppError {
	err := NewAppError(ErrTypeMissingSource, fmt.Sprintf("required source %s not readable", table), cause)
	err.WithContext("table", table)
	err.WithContext("path", path)
	return err
}

// NewEmptyDatasetError reports a derived computation with no candidates,
// such as a top-N selection over an empty filtered window.
func NewEmptyDatasetError(what string) *AppError {
	return NewAppError(ErrTypeEmptyDataset, fmt.Sprintf("no data to compute %s", what), nil)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewNetworkError creates a network-related error
func NewNetworkError(message string, cause error) *AppError {
	return NewAppError(ErrTypeNetwork, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsMissingSource reports whether err is a missing-source error
func IsMissingSource(err error) bool {
	return hasType(err, ErrTypeMissingSource)
}

// IsEmptyDataset reports whether err is an empty-dataset error
func IsEmptyDataset(err error) bool {
	return hasType(err, ErrTypeEmptyDataset)
}

func hasType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}
