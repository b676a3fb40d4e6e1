package models

import (
	"testing"
	"time"
)

// validOperation returns an operation that passes validation
func validOperation() *ScanOperation {
	return &ScanOperation{
		ID:         "test-op",
		Roots:      []string{"/tmp"},
		MinSize:    1,
		MaxSize:    0,
		MinCount:   2,
		ScanSize:   1024 * 1024,
		Order:      OrderIdentity,
		BufferSize: 65536,
		CreatedAt:  time.Now(),
	}
}

func TestScanOperationValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		if err := validOperation().Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(op *ScanOperation)
	}{
		{"NoRoots", func(op *ScanOperation) { op.Roots = nil }},
		{"ZeroMinSize", func(op *ScanOperation) { op.MinSize = 0 }},
		{"MaxBelowMin", func(op *ScanOperation) { op.MinSize = 100; op.MaxSize = 50 }},
		{"CountBelowTwo", func(op *ScanOperation) { op.MinCount = 1 }},
		{"ZeroScanSize", func(op *ScanOperation) { op.ScanSize = 0 }},
		{"InvalidOrder", func(op *ScanOperation) { op.Order = "newest" }},
		{"TinyBuffer", func(op *ScanOperation) { op.BufferSize = 16 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := validOperation()
			tt.mutate(op)
			if err := op.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestScanOperationValidate_UnboundedMax(t *testing.T) {
	op := validOperation()
	op.MinSize = 1024
	op.MaxSize = 0
	if err := op.Validate(); err != nil {
		t.Errorf("Validate() error = %v, MaxSize 0 means no cap", err)
	}
}

func TestScanStatusExitCode(t *testing.T) {
	tests := []struct {
		status ScanStatus
		want   int
	}{
		{StatusSuccess, 0},
		{StatusFailed, 2},
		{StatusCancelled, 3},
		{ScanStatus("unknown"), 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.ExitCode(); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "MinCount", Message: "must be at least 2"}
	want := "MinCount: must be at least 2"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
