// Package errors provides the coded error type used across droidgen.
//
// Every failure that reaches the command line carries an ErrorCode so tests
// can assert on the kind of failure without matching message text.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Input validation: bad package name, bad app name, existing output directory
	ErrValidation ErrorCode = "VALIDATION"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"

	// Template errors
	ErrTemplateSyntax     ErrorCode = "TEMPLATE_SYNTAX"
	ErrUndefinedVariable  ErrorCode = "UNDEFINED_VARIABLE"
	ErrTemplateEvaluation ErrorCode = "TEMPLATE_EVAL"

	// FileSystem errors
	ErrNotFound ErrorCode = "NOT_FOUND"
	ErrIO       ErrorCode = "IO"

	// Post-generation checks
	ErrIncompleteOutput ErrorCode = "INCOMPLETE_OUTPUT"
	ErrInvalidOutput    ErrorCode = "INVALID_OUTPUT"
)

// DroidgenError represents a structured error with code and details
type DroidgenError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DroidgenError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DroidgenError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DroidgenError) Is(target error) bool {
	var targetErr *DroidgenError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DroidgenError with the given code and message
func New(code ErrorCode, message string) *DroidgenError {
	return &DroidgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DroidgenError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DroidgenError {
	return &DroidgenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DroidgenError
func Wrap(err error, code ErrorCode, message string) *DroidgenError {
	if err == nil {
		return nil
	}
	return &DroidgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DroidgenError {
	if err == nil {
		return nil
	}
	return &DroidgenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DroidgenError) WithDetail(key string, value interface{}) *DroidgenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *DroidgenError) WithDetails(details map[string]interface{}) *DroidgenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// DetailString renders the details as sorted key=value pairs.
func (e *DroidgenError) DetailString() string {
	if len(e.Details) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Details[k]))
	}
	return strings.Join(parts, " ")
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var droidErr *DroidgenError
	if errors.As(err, &droidErr) {
		return droidErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DroidgenError
func GetErrorCode(err error) ErrorCode {
	var droidErr *DroidgenError
	if errors.As(err, &droidErr) {
		return droidErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DroidgenError
func GetErrorDetails(err error) map[string]interface{} {
	var droidErr *DroidgenError
	if errors.As(err, &droidErr) {
		return droidErr.Details
	}
	return nil
}
