// Package errors defines the common error types used across the gosync library.
package errors

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrClosed indicates that an operation was attempted on a closed resource
	ErrClosed = errors.New("resource is closed")

	// ErrCanceled indicates that a blocking wait was interrupted before its
	// condition was satisfied
	ErrCanceled = errors.New("wait canceled")

	// ErrTimeout indicates that a blocking wait's deadline elapsed before its
	// condition was satisfied
	ErrTimeout = errors.New("operation timed out")

	// ErrPoolClosed indicates a submission to a pool that has begun shutdown
	ErrPoolClosed = errors.New("worker pool is closed")

	// ErrRejected indicates a submission rejected because the bounded queue
	// is full and the pool is configured to reject rather than block
	ErrRejected = errors.New("task rejected: queue is full")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// FromContext translates a context error into the library's wait conditions:
// deadline expiry becomes ErrTimeout, cancellation becomes ErrCanceled.
// Other errors (including nil) are returned unchanged.
func FromContext(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, context.Canceled):
		return ErrCanceled
	default:
		return err
	}
}

// IsWaitInterrupted returns true if the error indicates a blocking wait that
// ended without its condition being satisfied (timeout or cancellation).
func IsWaitInterrupted(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrCanceled)
}

// IsTemporary returns true if the error indicates a condition that might
// be resolved by retrying the operation later
func IsTemporary(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrRejected)
}

// ValidationError describes a configuration value that failed validation.
type ValidationError struct {
	// Module is the component reporting the error (e.g. "workerpool")
	Module string

	// Field is the configuration field that failed validation
	Field string

	// Value is the offending value
	Value interface{}

	// Reason explains why the value is invalid
	Reason string

	// Hint optionally suggests a fix
	Hint string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap allows errors.Is(err, ErrInvalidConfiguration) to match.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// NewValidationError creates a ValidationError without a hint.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a hint and returns the same error for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

// OperationError wraps a failure of a named operation with its module and
// optional context description.
type OperationError struct {
	// Module is the component in which the operation failed
	Module string

	// Operation is the name of the failed operation (e.g. "Start")
	Operation string

	// Cause is the underlying error
	Cause error

	// Context optionally describes the circumstances of the failure
	Context string
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s.%s failed: %v (%s)", e.Module, e.Operation, e.Cause, e.Context)
	}
	return fmt.Sprintf("%s.%s failed: %v", e.Module, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *OperationError) Unwrap() error {
	return e.Cause
}

// NewOperationError creates an OperationError without context.
func NewOperationError(module, operation string, cause error) *OperationError {
	return &OperationError{
		Module:    module,
		Operation: operation,
		Cause:     cause,
	}
}

// WithContext attaches a context description and returns the same error.
func (e *OperationError) WithContext(context string) *OperationError {
	e.Context = context
	return e
}
