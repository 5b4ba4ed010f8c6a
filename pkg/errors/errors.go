// Package errors provides structured error types for kintree.
//
// Genealogical data is expected to be incomplete, so nothing in the tree
// engine returns an error for bad domain data. The codes here cover the
// remaining failure classes:
//   - INVALID_*: option, config or identifier validation failures
//   - *NOT_FOUND: a requested person or resource does not exist
//   - STORE_UNAVAILABLE: the person repository could not be read
//   - EXPORT_FAILED: a surface capture or format conversion failed
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodePersonNotFound, "no person with id %q", id)
//	if errors.Is(err, errors.ErrCodePersonNotFound) {
//	    // respond with 404
//	}
//
//	err := errors.Wrap(errors.ErrCodeStoreUnavailable, origErr, "open %s", dsn)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidMode     Code = "INVALID_MODE"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPersonID Code = "INVALID_PERSON_ID"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodePersonNotFound Code = "PERSON_NOT_FOUND"

	// Backend errors
	ErrCodeStoreUnavailable Code = "STORE_UNAVAILABLE"
	ErrCodeExportFailed     Code = "EXPORT_FAILED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps an error code onto the status the API responds with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidMode, ErrCodeInvalidPersonID:
		return 400
	case ErrCodeNotFound, ErrCodePersonNotFound:
		return 404
	case ErrCodeUnsupported:
		return 501
	case ErrCodeStoreUnavailable:
		return 503
	default:
		return 500
	}
}
