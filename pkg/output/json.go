package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/sdejongh/dedupnorris/pkg/models"
)

// JSONFormatter formats output as JSON for automation and scripting.
// It stays silent during the run and emits a single report at the end.
type JSONFormatter struct {
	writer io.Writer
}

// JSONReportData represents the final report data
type JSONReportData struct {
	OperationID string           `json:"operation_id"`
	Status      string           `json:"status"`
	DryRun      bool             `json:"dry_run"`
	Roots       []string         `json:"roots"`
	Duration    string           `json:"duration"`
	DurationMs  int64            `json:"duration_ms"`
	Stages      []JSONStageData  `json:"stages"`
	Groups      []JSONGroupData  `json:"groups,omitempty"`
	Stats       JSONStatsData    `json:"stats"`
	Errors      []JSONErrorData  `json:"errors,omitempty"`
}

// JSONStageData represents candidate counts after a pipeline stage
type JSONStageData struct {
	Stage string `json:"stage"`
	Files uint64 `json:"files"`
	Bytes uint64 `json:"bytes"`
}

// JSONGroupData represents a confirmed duplicate group
type JSONGroupData struct {
	Digest   string   `json:"digest"`
	Size     int64    `json:"size"`
	Survivor string   `json:"survivor"`
	Removed  []string `json:"removed"`
	Deleted  bool     `json:"deleted"`
}

// JSONStatsData represents cumulative statistics
type JSONStatsData struct {
	Candidates     uint64 `json:"candidates"`
	CandidateBytes uint64 `json:"candidate_bytes"`
	Groups         int    `json:"groups"`
	FilesRemoved   uint64 `json:"files_removed"`
	BytesFreed     uint64 `json:"bytes_freed"`
}

// JSONErrorData represents an error entry
type JSONErrorData struct {
	Path  string `json:"path,omitempty"`
	Stage string `json:"stage"`
	Error string `json:"error"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, op *models.ScanOperation) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	return nil
}

// Stage is accumulated into the final report by the engine
func (f *JSONFormatter) Stage(update StageUpdate) error {
	return nil
}

// BucketStart produces no streaming output
func (f *JSONFormatter) BucketStart(size int64, files int) error {
	return nil
}

// HashProgress produces no streaming output
func (f *JSONFormatter) HashProgress(path string, n int64) error {
	return nil
}

// Group is accumulated into the final report by the engine
func (f *JSONFormatter) Group(group *models.DuplicateGroup) error {
	return nil
}

// BucketComplete produces no streaming output
func (f *JSONFormatter) BucketComplete(stats models.Statistics, remainingFiles, remainingBytes uint64) error {
	return nil
}

// Complete emits the final report as indented JSON
func (f *JSONFormatter) Complete(report *models.ScanReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	data := JSONReportData{
		OperationID: report.OperationID,
		Status:      string(report.Status),
		DryRun:      report.DryRun,
		Roots:       report.Roots,
		Duration:    report.Duration.Round(time.Millisecond).String(),
		DurationMs:  report.Duration.Milliseconds(),
		Stats: JSONStatsData{
			Candidates:     report.Stats.Candidates,
			CandidateBytes: report.Stats.CandidateBytes,
			Groups:         report.Stats.Groups,
			FilesRemoved:   report.Stats.FilesRemoved,
			BytesFreed:     report.Stats.BytesFreed,
		},
	}

	for _, stage := range report.Stages {
		data.Stages = append(data.Stages, JSONStageData{
			Stage: string(stage.Stage),
			Files: stage.Files,
			Bytes: stage.Bytes,
		})
	}

	for _, group := range report.Groups {
		data.Groups = append(data.Groups, JSONGroupData{
			Digest:   group.Digest,
			Size:     group.Size,
			Survivor: group.Survivor,
			Removed:  group.Removed,
			Deleted:  group.Deleted,
		})
	}

	for _, scanErr := range report.Errors {
		data.Errors = append(data.Errors, JSONErrorData{
			Path:  scanErr.Path,
			Stage: string(scanErr.Stage),
			Error: scanErr.Error,
		})
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Error reporting is deferred to the final report
func (f *JSONFormatter) Error(err error) error {
	return nil
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
