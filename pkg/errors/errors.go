// Package errors provides structured error types for the placer.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the solver stages and the CLI
//   - Machine-readable error codes for programmatic handling (retry vs abort)
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes follow the taxonomy from the specification's error-handling design:
//   - INPUT_INVALID: malformed placement DB (unknown cell/net/pin reference,
//     empty netlist where one is required)
//   - INFEASIBLE: legalization LP infeasible, or fewer ring sites than nets.
//     Retryable - the driver may re-run global placement in tough mode once.
//   - NUMERIC_NON_INTEGER: a pin-assignment ILP variable landed outside
//     [<0.001] union [>0.99]. Fatal, never retried.
//   - CONVERGENCE_FAILED: the outer loop hit its iteration cap with
//     violations still above threshold. Not fatal - legalization proceeds
//     anyway and may still succeed.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInputInvalid, "net %d references unknown pin %d", n, p)
//	if errors.Is(err, errors.ErrCodeInfeasible) {
//	    // driver may retry in tough mode
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// ErrCodeInputInvalid marks malformed input: unknown cell/net/pin
	// references, an empty netlist where one is required, or a symmetry
	// group referencing cells outside the DB.
	ErrCodeInputInvalid Code = "INPUT_INVALID"

	// ErrCodeInfeasible marks legalization LP infeasibility or a pin
	// assignment with fewer ring sites than nets to place.
	ErrCodeInfeasible Code = "INFEASIBLE"

	// ErrCodeNumericNonInteger marks a pin-assignment ILP solution with a
	// decision variable outside [<0.001] union [>0.99].
	ErrCodeNumericNonInteger Code = "NUMERIC_NON_INTEGER"

	// ErrCodeConvergenceFailed marks an outer loop that hit the iteration
	// cap with violations still above threshold.
	ErrCodeConvergenceFailed Code = "CONVERGENCE_FAILED"

	// ErrCodeInternal marks an unexpected internal failure, e.g. an LP
	// backend error unrelated to infeasibility.
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// Retryable reports whether the driver may retry the operation that
// produced err - in practice, re-running global placement in tough mode
// once before surfacing final failure.
func Retryable(err error) bool {
	return Is(err, ErrCodeInfeasible)
}
