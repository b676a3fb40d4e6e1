package output

import (
	"io"

	"github.com/sdejongh/dedupnorris/pkg/models"
)

// StageUpdate reports the candidate population surviving a pipeline stage
type StageUpdate struct {
	Stage models.Stage
	Files uint64
	Bytes uint64
}

// Formatter defines the interface for output formatting
// Implementations include human-readable, JSON and progress-bar formatters
type Formatter interface {
	// Start initializes the formatter for a new scan operation
	Start(writer io.Writer, op *models.ScanOperation) error

	// Stage reports the surviving candidates after an elimination stage
	Stage(update StageUpdate) error

	// BucketStart announces full-content hashing of one size bucket
	BucketStart(size int64, files int) error

	// HashProgress reports bytes hashed; called from the hashing loop
	HashProgress(path string, n int64) error

	// Group reports a confirmed duplicate group
	Group(group *models.DuplicateGroup) error

	// BucketComplete reports running totals after a size bucket is resolved
	BucketComplete(stats models.Statistics, remainingFiles, remainingBytes uint64) error

	// Complete finalizes output and displays the summary
	Complete(report *models.ScanReport) error

	// Error reports an error that aborts the scan
	Error(err error) error

	// Name returns the formatter name
	Name() string
}
