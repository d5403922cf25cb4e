// Package fdwerrors provides standardized error types for the connector.
package fdwerrors

import (
	"errors"
	"fmt"
)

// Error codes used across the connector
const (
	CodeUnknownOption   = "unknown_option"
	CodeDuplicateOption = "duplicate_option"
	CodeMissingRequired = "missing_required_option"
	CodeOpenFailed      = "open_failed"
	CodePrepareFailed   = "prepare_failed"

	CodeServerNotFound      = "server_not_found"
	CodeServerAlreadyExists = "server_already_exists"
	CodeTableNotFound       = "table_not_found"
	CodeTableAlreadyExists  = "table_already_exists"
)

// Error constants for catalog operations
var (
	// ErrServerNotFound is returned when a requested foreign server cannot be found
	ErrServerNotFound = &Error{code: CodeServerNotFound, msg: "foreign server not found"}

	// ErrServerAlreadyExists is returned when trying to create a foreign server that already exists
	ErrServerAlreadyExists = &Error{code: CodeServerAlreadyExists, msg: "foreign server already exists"}

	// ErrTableNotFound is returned when a requested foreign table cannot be found
	ErrTableNotFound = &Error{code: CodeTableNotFound, msg: "foreign table not found"}

	// ErrTableAlreadyExists is returned when trying to create a foreign table that already exists
	ErrTableAlreadyExists = &Error{code: CodeTableAlreadyExists, msg: "foreign table already exists"}
)

// Error represents a connector-specific error
type Error struct {
	code string
	msg  string
	hint string
	err  error // wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Code returns the error code
func (e *Error) Code() string {
	return e.code
}

// Hint returns the user-facing hint, if any
func (e *Error) Hint() string {
	return e.hint
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.err
}

// Is checks if the error matches the target
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.code == t.code
	}
	return false
}

// New creates a new Error with a formatted message
func New(code, format string, args ...interface{}) *Error {
	return &Error{
		code: code,
		msg:  fmt.Sprintf(format, args...),
	}
}

// NewWithHint creates a new Error carrying a user-facing hint
func NewWithHint(code, hint, format string, args ...interface{}) *Error {
	return &Error{
		code: code,
		msg:  fmt.Sprintf(format, args...),
		hint: hint,
	}
}

// Wrap wraps an existing error with a connector error
func Wrap(err error, code, format string, args ...interface{}) *Error {
	return &Error{
		code: code,
		msg:  fmt.Sprintf(format, args...),
		err:  err,
	}
}

// HasCode reports whether err carries an *Error with the given code
func HasCode(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.code == code
	}
	return false
}

// HintOf returns the hint carried by err, or "" when there is none
func HintOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.hint
	}
	return ""
}
