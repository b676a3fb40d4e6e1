package models

import (
	"time"
)

// ScanOrder defines how candidate files are ordered during traversal.
// The order is observable: the first member of a confirmed duplicate
// group is the one that survives deletion.
type ScanOrder string

const (
	// OrderIdentity orders by filesystem identity (device, then inode)
	OrderIdentity ScanOrder = "identity"
	// OrderName orders by full path, lexically
	OrderName ScanOrder = "name"
	// OrderDepth orders by path depth, shallowest first
	OrderDepth ScanOrder = "depth"
)

// ScanDirection selects which end of a file the partial filter reads
type ScanDirection string

const (
	// ScanFirst hashes the first bytes of a file
	ScanFirst ScanDirection = "first"
	// ScanLast hashes the last bytes of a file
	ScanLast ScanDirection = "last"
)

// FileID identifies the underlying physical file independently of the
// path used to reach it. Two hard links share the same FileID.
type FileID struct {
	Dev uint64
	Ino uint64
}

// ScanOperation represents a duplicate scan configuration
type ScanOperation struct {
	ID             string
	Roots          []string // canonicalized, duplicates collapsed
	MinSize        int64    // bytes, at least 1
	MaxSize        int64    // bytes, 0 = no cap
	MinCount       int      // minimum group cardinality, at least 2
	ScanSize       int64    // partial hash window in bytes, at least 1
	Order          ScanOrder
	Delete         bool  // false = dry run
	BandwidthLimit int64 // read bytes per second, 0 = unlimited
	BufferSize     int
	CreatedAt      time.Time
}

// Validate checks if the operation configuration is valid
func (op *ScanOperation) Validate() error {
	if len(op.Roots) == 0 {
		return &ValidationError{Field: "Roots", Message: "at least one root directory is required"}
	}
	if op.MinSize < 1 {
		return &ValidationError{Field: "MinSize", Message: "minimum size must be at least 1 byte"}
	}
	if op.MaxSize != 0 && op.MaxSize < op.MinSize {
		return &ValidationError{Field: "MaxSize", Message: "maximum size must be 0 (no cap) or at least the minimum size"}
	}
	if op.MinCount < 2 {
		return &ValidationError{Field: "MinCount", Message: "duplicate count must be at least 2"}
	}
	if op.ScanSize < 1 {
		return &ValidationError{Field: "ScanSize", Message: "scan size must be at least 1 byte"}
	}
	switch op.Order {
	case OrderIdentity, OrderName, OrderDepth:
	default:
		return &ValidationError{Field: "Order", Message: "order must be identity, name or depth"}
	}
	if op.BufferSize < 1024 {
		return &ValidationError{Field: "BufferSize", Message: "buffer size must be at least 1024 bytes"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
