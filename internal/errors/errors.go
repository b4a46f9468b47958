// Package errors provides standardized error types for vhostsync.
//
// The errors package defines coded error types that let the scanner, the
// manifest parser and the reconciliation engine decide how a failure is
// handled: fatal, diagnosed and skipped, or skipped silently.
//
// # Error Types
//
// Error is the primary error type, containing:
//   - Code: Categorizes the error (PARSE, DIRECTIVE_MISSING, IO, etc.)
//   - Message: Human-readable error description
//   - File: The file involved (if applicable)
//   - Line: 1-based line number within File (if applicable)
//   - Err: The underlying wrapped error (if any)
//
// # Taxonomy
//
//	PARSE              malformed manifest header or row, invalid vhost text
//	DIRECTIVE_MISSING  vhost text lacks server_name or a proxy port; a PARSE
//	                   error the directory scanner skips without diagnostic
//	IO                 missing directory, unreadable or unwritable file
//	VALIDATION         invalid record or configuration value
//
// # Error Checking
//
// Use errors.Is for category comparison:
//
//	if errors.Is(err, errors.ErrDirectiveMissing) {
//	    // soft skip
//	}
//	if errors.Is(err, errors.ErrParse) {
//	    // also true for DIRECTIVE_MISSING
//	}
//
// Use errors.As for type assertion:
//
//	var e *errors.Error
//	if errors.As(err, &e) {
//	    fmt.Printf("Error code: %s, File: %s\n", e.Code, e.File)
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeParse            ErrorCode = "PARSE"             // Malformed manifest or vhost text
	ErrCodeDirectiveMissing ErrorCode = "DIRECTIVE_MISSING" // Required vhost directive absent
	ErrCodeIO               ErrorCode = "IO"                // Filesystem failure
	ErrCodeValidation       ErrorCode = "VALIDATION"        // Input validation failed
	ErrCodeConfig           ErrorCode = "CONFIG"            // Configuration error
)

// Error represents a structured error with context about the operation.
type Error struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	File    string    // File path (if applicable)
	Line    int       // 1-based line number (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
	}
	switch {
	case e.File != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, msg)
	case e.File != "":
		return fmt.Sprintf("%s: %s", e.File, msg)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

// Unwrap returns the underlying error for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code; a DIRECTIVE_MISSING error also matches
// the PARSE category.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Code == ErrCodeDirectiveMissing && t.Code == ErrCodeParse {
		return true
	}
	return e.Code == t.Code
}

// Sentinel errors for common error scenarios.
// Use these with errors.Is() for error checking.
var (
	// ErrParse matches every parse failure.
	ErrParse = &Error{Code: ErrCodeParse, Message: "parse error"}

	// ErrDirectiveMissing indicates a vhost file lacks a required directive.
	ErrDirectiveMissing = &Error{Code: ErrCodeDirectiveMissing, Message: "directive not found"}

	// ErrIO indicates a filesystem operation failed.
	ErrIO = &Error{Code: ErrCodeIO, Message: "i/o error"}

	// ErrValidation indicates an invalid value.
	ErrValidation = &Error{Code: ErrCodeValidation, Message: "validation failed"}

	// ErrConfigInvalid indicates the configuration is invalid or corrupt.
	ErrConfigInvalid = &Error{Code: ErrCodeConfig, Message: "invalid configuration"}
)

// Parse creates a parse error with a custom message.
func Parse(msg string) error {
	return &Error{
		Code:    ErrCodeParse,
		Message: msg,
	}
}

// ParseLine creates a parse error located at a 1-based line.
func ParseLine(line int, format string, args ...interface{}) error {
	return &Error{
		Code:    ErrCodeParse,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
	}
}

// DirectiveMissing creates an error for a vhost file without the named
// directive, e.g. "server_name not found".
func DirectiveMissing(what, file string) error {
	return &Error{
		Code:    ErrCodeDirectiveMissing,
		Message: what + " not found",
		File:    file,
	}
}

// IO creates an error for a failed filesystem operation on path.
func IO(msg, path string, err error) error {
	return &Error{
		Code:    ErrCodeIO,
		Message: msg,
		File:    path,
		Err:     err,
	}
}

// Validation creates a validation error with a custom message.
func Validation(msg string) error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &Error{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// WithFile returns err with File set when err is an *Error without one.
// Other errors are wrapped as PARSE errors for file.
func WithFile(err error, file string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if As(err, &e) {
		if e.File != "" {
			return err
		}
		c := *e
		c.File = file
		return &c
	}
	return &Error{Code: ErrCodeParse, File: file, Err: err}
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As

// Join is a re-export of errors.Join for convenience.
var Join = errors.Join
