// Package errors provides structured error types for the typst compiler.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP server and the compiler core
//   - Machine-readable codes shared by hard errors and non-fatal diagnostics
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (options, documents, paths)
//   - ARG_*: Argument binding problems reported as diagnostics
//   - ALIGN_*: Alignment resolution conflicts reported as diagnostics
//   - LAYOUT_*: Layout-time problems reported as diagnostics
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidArgument, "unknown alignment: %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidArgument) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidDocument, origErr, "decode %s", path)
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
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidLanguage Code = "INVALID_LANGUAGE"
	ErrCodeInvalidSystem   Code = "INVALID_SYSTEM"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidName     Code = "INVALID_NAME"

	// Argument binding diagnostics
	ErrCodeArgType       Code = "ARG_TYPE"
	ErrCodeArgUnexpected Code = "ARG_UNEXPECTED"

	// Alignment resolution diagnostics
	ErrCodeAxisMismatch  Code = "ALIGN_AXIS_MISMATCH"
	ErrCodeDuplicateAxis Code = "ALIGN_DUPLICATE_AXIS"
	ErrCodeOverSpecified Code = "ALIGN_OVER_SPECIFIED"

	// Layout diagnostics
	ErrCodeUnknownFunction Code = "LAYOUT_UNKNOWN_FUNCTION"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// IsDiagnostic reports whether code belongs to one of the non-fatal
// diagnostic families (ARG_*, ALIGN_*, LAYOUT_*).
func IsDiagnostic(code Code) bool {
	switch code {
	case ErrCodeArgType, ErrCodeArgUnexpected,
		ErrCodeAxisMismatch, ErrCodeDuplicateAxis, ErrCodeOverSpecified,
		ErrCodeUnknownFunction:
		return true
	}
	return false
}
