package common

import (
	"errors"
	"testing"
)

func TestWrapErrorKeepsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("permission denied")
	err := WrapError(cause, "create reports dir")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("wrapped error does not match cause: %v", err)
	}
	if got, want := err.Error(), "create reports dir: permission denied"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
}

func TestWrapErrorNil(t *testing.T) {
	t.Parallel()

	if err := WrapError(nil, "ignored"); err != nil {
		t.Fatalf("WrapError(nil) = %v, want nil", err)
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	t.Parallel()

	err := NewAppError("TASK_TERMINAL", "task is already failed", ErrConflict)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("AppError does not unwrap to its cause: %v", err)
	}
}
