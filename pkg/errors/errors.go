// Package errors provides structured error types for SmartView.
//
// This package defines error codes and types that enable:
//   - One stable failure surface at the pipeline boundary
//   - Precise, machine-readable causes for tests and callers that unwrap
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes fall into three groups:
//   - Configuration errors (caller bugs): INVALID_*, SHRINK_REFUSED,
//     DIMENSION_OVERFLOW, MISSING_SIZE, INCOMPATIBLE_ALIGNMENT,
//     ALREADY_INITIALIZED, DUPLICATE_CHILD, CYCLE_DETECTED
//   - Capacity errors (data dependent): PAGE_AREA_EXCEEDED
//   - Boundary errors: RENDER_FAILED wraps any of the above
//
// # Usage
//
//	err := errors.New(errors.ErrCodeShrinkRefused, "width %v < %v", w, cur)
//	if errors.Is(err, errors.ErrCodeShrinkRefused) {
//	    // Handle shrink refusal
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRenderFailed, origErr, "unable to render")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input and configuration errors
	ErrCodeInvalidInput          Code = "INVALID_INPUT"
	ErrCodeInvalidConfig         Code = "INVALID_CONFIG"
	ErrCodeInvalidDimension      Code = "INVALID_DIMENSION"
	ErrCodeDimensionOverflow     Code = "DIMENSION_OVERFLOW"
	ErrCodeShrinkRefused         Code = "SHRINK_REFUSED"
	ErrCodeMissingSize           Code = "MISSING_SIZE"
	ErrCodeIncompatibleAlignment Code = "INCOMPATIBLE_ALIGNMENT"
	ErrCodeAlreadyInitialized    Code = "ALREADY_INITIALIZED"
	ErrCodeDuplicateChild        Code = "DUPLICATE_CHILD"
	ErrCodeCycleDetected         Code = "CYCLE_DETECTED"

	// Capacity errors
	ErrCodePageAreaExceeded Code = "PAGE_AREA_EXCEEDED"

	// Boundary errors
	ErrCodeRenderFailed Code = "RENDER_FAILED"

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
// It unwraps the error chain looking for an *Error with a matching code,
// so a RENDER_FAILED error also reports the code of its cause.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// RootCode returns the innermost error code in the chain.
// This is the precise internal cause behind a boundary error.
func RootCode(err error) Code {
	var code Code
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			break
		}
		code = e.Code
		err = e.Cause
	}
	return code
}

// As is errors.As from the standard library, re-exported so callers that
// import this package under the name errors need no alias.
func As(err error, target any) bool {
	return errors.As(err, target)
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
