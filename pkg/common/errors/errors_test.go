package errors

import (
	"context"
	"errors"
	"testing"
)

func TestCommonErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrClosed", ErrClosed, "resource is closed"},
		{"ErrCanceled", ErrCanceled, "wait canceled"},
		{"ErrTimeout", ErrTimeout, "operation timed out"},
		{"ErrPoolClosed", ErrPoolClosed, "worker pool is closed"},
		{"ErrRejected", ErrRejected, "task rejected: queue is full"},
		{"ErrInvalidConfiguration", ErrInvalidConfiguration, "invalid configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("error should not be nil")
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"deadline exceeded", context.DeadlineExceeded, ErrTimeout},
		{"canceled", context.Canceled, ErrCanceled},
		{"nil", nil, nil},
		{"other", ErrClosed, ErrClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromContext(tt.in); !errors.Is(got, tt.want) && got != tt.want {
				t.Errorf("FromContext(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsWaitInterrupted(t *testing.T) {
	if !IsWaitInterrupted(ErrTimeout) {
		t.Error("ErrTimeout should be a wait interruption")
	}
	if !IsWaitInterrupted(ErrCanceled) {
		t.Error("ErrCanceled should be a wait interruption")
	}
	if IsWaitInterrupted(ErrPoolClosed) {
		t.Error("ErrPoolClosed should not be a wait interruption")
	}
	if IsWaitInterrupted(nil) {
		t.Error("nil should not be a wait interruption")
	}
}

func TestIsTemporary(t *testing.T) {
	if !IsTemporary(ErrTimeout) {
		t.Error("ErrTimeout should be temporary")
	}
	if !IsTemporary(ErrRejected) {
		t.Error("ErrRejected should be temporary")
	}
	if IsTemporary(ErrClosed) {
		t.Error("ErrClosed should not be temporary")
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "without hint",
			err: &ValidationError{
				Module: "workerpool",
				Field:  "workerCount",
				Value:  -1,
				Reason: "must be positive",
			},
			want: "workerpool: invalid workerCount=-1 (must be positive)",
		},
		{
			name: "with hint",
			err: &ValidationError{
				Module: "workerpool",
				Field:  "queueSize",
				Value:  -5,
				Reason: "cannot be negative",
				Hint:   "use 0 for an unbounded queue",
			},
			want: "workerpool: invalid queueSize=-5 (cannot be negative) - use 0 for an unbounded queue",
		},
		{
			name: "string value",
			err: &ValidationError{
				Module: "handoff",
				Field:  "name",
				Value:  "",
				Reason: "cannot be empty",
			},
			want: "handoff: invalid name= (cannot be empty)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	verr := &ValidationError{
		Module: "test",
		Field:  "field",
		Value:  0,
		Reason: "test",
	}

	if verr.Unwrap() != ErrInvalidConfiguration {
		t.Errorf("Unwrap() = %v, want ErrInvalidConfiguration", verr.Unwrap())
	}

	if !errors.Is(verr, ErrInvalidConfiguration) {
		t.Error("ValidationError should wrap ErrInvalidConfiguration")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("module", "field", 123, "test reason")

	if err.Module != "module" {
		t.Errorf("Module = %q, want %q", err.Module, "module")
	}
	if err.Field != "field" {
		t.Errorf("Field = %q, want %q", err.Field, "field")
	}
	if err.Value != 123 {
		t.Errorf("Value = %v, want %v", err.Value, 123)
	}
	if err.Reason != "test reason" {
		t.Errorf("Reason = %q, want %q", err.Reason, "test reason")
	}
	if err.Hint != "" {
		t.Errorf("Hint = %q, want empty string", err.Hint)
	}
}

func TestValidationError_WithHint(t *testing.T) {
	err := NewValidationError("test", "field", 0, "invalid").
		WithHint("try using a positive value")

	if err.Hint != "try using a positive value" {
		t.Errorf("Hint = %q, want %q", err.Hint, "try using a positive value")
	}

	// Should return same instance for chaining
	if result := err.WithHint("new hint"); result != err {
		t.Error("WithHint should return the same instance")
	}
}

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{
			name: "without context",
			err: &OperationError{
				Module:    "workerpool",
				Operation: "Start",
				Cause:     errors.New("already running"),
			},
			want: "workerpool.Start failed: already running",
		},
		{
			name: "with context",
			err: &OperationError{
				Module:    "handoff",
				Operation: "Put",
				Cause:     ErrClosed,
				Context:   "slot occupied at close",
			},
			want: "handoff.Put failed: resource is closed (slot occupied at close)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewOperationError("mod", "Op", cause)

	if !errors.Is(err, cause) {
		t.Error("OperationError should wrap its cause")
	}

	if result := err.WithContext("ctx"); result != err {
		t.Error("WithContext should return the same instance")
	}
	if err.Context != "ctx" {
		t.Errorf("Context = %q, want %q", err.Context, "ctx")
	}
}
