// Package errors provides structured error types for souper.
//
// Every failure that crosses a package boundary carries a machine-readable
// [Code] so the CLI (and scripts wrapping it) can tell a malformed manifest
// apart from an unreadable file or an undecodable report.
//
// # Error Codes
//
// Codes fall into four groups:
//   - Manifest parse failures: INVALID_STRUCTURE, MISSING_ATTRIBUTE,
//     MISSING_OR_INVALID_VERSION, ATTRIBUTE_ENCODING
//   - Filesystem failures: IO_ERROR, INVALID_PATH
//   - Report and configuration failures: INVALID_REPORT, REPORT_OUTDATED,
//     INVALID_CONFIG
//   - Caller mistakes: INVALID_INPUT
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingAttribute, "missing required attribute: %s", "Version")
//	if errors.Is(err, errors.ErrCodeMissingAttribute) {
//	    // Handle the malformed manifest
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Manifest parse errors
	ErrCodeInvalidStructure  Code = "INVALID_STRUCTURE"
	ErrCodeMissingAttribute  Code = "MISSING_ATTRIBUTE"
	ErrCodeInvalidVersion    Code = "MISSING_OR_INVALID_VERSION"
	ErrCodeAttributeEncoding Code = "ATTRIBUTE_ENCODING"

	// Filesystem errors
	ErrCodeIO          Code = "IO_ERROR"
	ErrCodeInvalidPath Code = "INVALID_PATH"

	// Report and configuration errors
	ErrCodeInvalidReport  Code = "INVALID_REPORT"
	ErrCodeReportOutdated Code = "REPORT_OUTDATED"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
)

// Coder is implemented by error types that expose a [Code] without being an
// [*Error], such as the manifest package's ParseError.
type Coder interface {
	error
	ErrorCode() Code
}

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

// ErrorCode implements [Coder].
func (e *Error) ErrorCode() Code {
	return e.Code
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
// The outermost coded error in the chain decides: a parse failure wrapped
// as an IO_ERROR reports IO_ERROR, not INVALID_STRUCTURE.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// Has reports whether any coded error in the chain of err carries code.
func Has(err error, code Code) bool {
	for err != nil {
		if c, ok := err.(Coder); ok && c.ErrorCode() == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain implements [Coder].
func GetCode(err error) Code {
	var c Coder
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message (and cause) without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}
