package app

import (
	"errors"
	"testing"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "op only",
			err:      &OperationError{Op: "save"},
			expected: "save",
		},
		{
			name:     "op and target",
			err:      &OperationError{Op: "open", Target: "/path/file.txt"},
			expected: "open /path/file.txt",
		},
		{
			name:     "op, target, and context",
			err:      &OperationError{Op: "open", Target: "/path/file.txt", Context: "permission denied"},
			expected: "open /path/file.txt (permission denied)",
		},
		{
			name:     "full error chain",
			err:      &OperationError{Op: "open", Target: "/path/file.txt", Context: "read failed", Err: errors.New("io error")},
			expected: "open /path/file.txt (read failed): io error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = '%s', expected '%s'", result, tt.expected)
			}
		})
	}
}

func TestOperationError_WithContext(t *testing.T) {
	err := NewOperationError("save", "/path/file.txt", nil).WithContext("disk full")
	if err.Context != "disk full" {
		t.Errorf("expected context 'disk full', got '%s'", err.Context)
	}

	var nilErr *OperationError
	if nilErr.WithContext("x") != nil {
		t.Error("WithContext on nil should return nil")
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	err := NewOperationError("close", "a.txt", ErrUnsavedChanges)
	if !errors.Is(err, ErrUnsavedChanges) {
		t.Error("expected errors.Is to find the wrapped error")
	}
}

func TestErrorList(t *testing.T) {
	var list ErrorList
	if list.AsError() != nil {
		t.Error("empty list should not be an error")
	}

	list.Add(nil)
	list.Add(ErrNoPath)
	if list.Len() != 1 || list.Error() != ErrNoPath.Error() {
		t.Errorf("single error list = %q", list.Error())
	}

	list.Add(NewOperationError("save", "b.txt", ErrDocumentNotFound))
	err := list.AsError()
	if err == nil || err.Error() != "2 errors: first: document has no path" {
		t.Errorf("Error() = %v", err)
	}
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Error("errors.Is should see every collected error")
	}

	errs := list.Errors()
	errs[0] = nil
	if list.Errors()[0] == nil {
		t.Error("Errors() should return a copy")
	}
}
