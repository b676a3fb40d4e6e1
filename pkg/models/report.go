package models

import (
	"time"
)

// Stage identifies a step of the elimination pipeline
type Stage string

const (
	// StageTraversal is the initial walk and size grouping
	StageTraversal Stage = "traversal"
	// StageLastBytes is the partial filter over the last bytes of files
	StageLastBytes Stage = "last_bytes"
	// StageFirstBytes is the partial filter over the first bytes of files
	StageFirstBytes Stage = "first_bytes"
	// StageFullHash is the whole-content hashing of a size bucket
	StageFullHash Stage = "full_hash"
	// StageDelete is the removal of confirmed duplicates
	StageDelete Stage = "delete"
)

// StageStats holds the candidate population surviving a pipeline stage
type StageStats struct {
	Stage Stage
	Files uint64
	Bytes uint64
}

// Statistics holds scan operation metrics
type Statistics struct {
	// Candidates after initial size grouping
	Candidates     uint64
	CandidateBytes uint64

	// Confirmed duplicate groups
	Groups int

	// Files marked for removal and bytes reclaimed (or reclaimable on
	// a dry run)
	FilesRemoved uint64
	BytesFreed   uint64
}

// ScanStatus represents the overall result
type ScanStatus string

const (
	// StatusSuccess indicates the scan completed
	StatusSuccess ScanStatus = "success"
	// StatusFailed indicates the scan aborted on an error
	StatusFailed ScanStatus = "failed"
	// StatusCancelled indicates the scan was cancelled
	StatusCancelled ScanStatus = "cancelled"
)

// ExitCode returns the appropriate process exit code for the status
func (s ScanStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusFailed:
		return 2
	case StatusCancelled:
		return 3
	default:
		return 2
	}
}

// ScanError represents an error that aborted the scan
type ScanError struct {
	Path      string
	Stage     Stage
	Error     string
	Timestamp time.Time
}

// ScanReport represents the results of a scan operation
type ScanReport struct {
	// Operation details
	OperationID string
	Roots       []string
	DryRun      bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Candidate population after each elimination stage
	Stages []StageStats

	// Confirmed duplicate groups, in processing order
	Groups []DuplicateGroup

	// Statistics
	Stats Statistics

	// Errors encountered; the first error aborts the run
	Errors []ScanError

	// Overall status
	Status ScanStatus
}
