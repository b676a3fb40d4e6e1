package output

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/sdejongh/dedupnorris/pkg/models"
)

// HumanFormatter formats output in human-readable format
type HumanFormatter struct {
	writer    io.Writer
	op        *models.ScanOperation
	startTime time.Time
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// Start initializes the formatter and echoes the scan parameters
func (f *HumanFormatter) Start(writer io.Writer, op *models.ScanOperation) error {
	if writer == nil {
		writer = io.Discard
	}
	f.writer = writer
	f.op = op
	f.startTime = time.Now()

	if op.Delete {
		fmt.Fprintf(f.writer, "WARNING: deleting files!\n")
	} else {
		fmt.Fprintf(f.writer, "Not deleting files (dry run), add --delete to actually delete files.\n")
	}
	fmt.Fprintf(f.writer, "\n")

	if op.MaxSize == 0 {
		fmt.Fprintf(f.writer, "File sizes to scan: %s - no limit\n", humanSize(uint64(op.MinSize)))
	} else {
		fmt.Fprintf(f.writer, "File sizes to scan: %s - %s\n",
			humanSize(uint64(op.MinSize)), humanSize(uint64(op.MaxSize)))
	}
	fmt.Fprintf(f.writer, "Scan size for last and first bytes of files: %s\n", humanSize(uint64(op.ScanSize)))

	fmt.Fprintf(f.writer, "Directories to scan:\n")
	for _, root := range op.Roots {
		fmt.Fprintf(f.writer, " * %s\n", root)
	}
	fmt.Fprintf(f.writer, "\n")

	return nil
}

// Stage reports the surviving candidates after an elimination stage
func (f *HumanFormatter) Stage(update StageUpdate) error {
	if f.writer == nil {
		return nil
	}

	switch update.Stage {
	case models.StageTraversal:
		fmt.Fprintf(f.writer, "(1 / 6) Generating file list based on file sizes...\n")
	case models.StageLastBytes:
		fmt.Fprintf(f.writer, "(2 / 6) Eliminating candidates based on last %d bytes of files...\n", f.op.ScanSize)
	case models.StageFirstBytes:
		fmt.Fprintf(f.writer, "(3 / 6) Eliminating candidates based on first %d bytes of files...\n", f.op.ScanSize)
	}

	fmt.Fprintf(f.writer, "  File candidates: %d  Total size: %s\n", update.Files, humanSize(update.Bytes))
	return nil
}

// BucketStart announces full-content hashing of one size bucket
func (f *HumanFormatter) BucketStart(size int64, files int) error {
	if f.writer == nil {
		return nil
	}
	fmt.Fprintf(f.writer, "(4 / 6) Hashing %d files with size %s...\n", files, humanSize(uint64(size)))
	return nil
}

// HashProgress is a no-op for plain human output
func (f *HumanFormatter) HashProgress(path string, n int64) error {
	return nil
}

// Group reports a confirmed duplicate group with keep/delete markers
func (f *HumanFormatter) Group(group *models.DuplicateGroup) error {
	if f.writer == nil {
		return nil
	}

	fmt.Fprintf(f.writer, "(5 / 6) Duplicate files with checksum: %s\n", group.Digest)
	fmt.Fprintf(f.writer, "   +keeping: %s\n", group.Survivor)
	for _, path := range group.Removed {
		fmt.Fprintf(f.writer, "  -deleting: %s\n", path)
	}
	return nil
}

// BucketComplete reports running totals after a size bucket is resolved
func (f *HumanFormatter) BucketComplete(stats models.Statistics, remainingFiles, remainingBytes uint64) error {
	if f.writer == nil {
		return nil
	}
	fmt.Fprintf(f.writer, "Currently removed %d files totaling %s  Remaining: %d files, %s\n",
		stats.FilesRemoved, humanSize(stats.BytesFreed), remainingFiles, humanSize(remainingBytes))
	return nil
}

// Complete finalizes output and displays the summary
func (f *HumanFormatter) Complete(report *models.ScanReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "(6 / 6) Removed %d files totaling %s\n",
		report.Stats.FilesRemoved, humanSize(report.Stats.BytesFreed))
	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Scan completed in %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(f.writer, "  Duplicate groups: %d\n", report.Stats.Groups)
	if report.DryRun {
		fmt.Fprintf(f.writer, "  Dry run: no files were touched\n")
	}
	fmt.Fprintf(f.writer, "Status: %s\n", report.Status)

	return nil
}

// Error reports an error
func (f *HumanFormatter) Error(err error) error {
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// humanSize renders a byte count with its SI and IEC equivalents,
// e.g. "1536000 B (1.54 MB, 1.46 MiB)"
func humanSize(bytes uint64) string {
	if bytes < 1000 {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%d B (%s, %s)", bytes, formatSI(bytes), formatIEC(bytes))
}

// formatSI formats bytes with decimal (1000-based) units
func formatSI(bytes uint64) string {
	return formatUnits(bytes, 1000, []string{"B", "kB", "MB", "GB", "TB", "PB", "EB"})
}

// formatIEC formats bytes with binary (1024-based) units
func formatIEC(bytes uint64) string {
	return formatUnits(bytes, 1024, []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"})
}

func formatUnits(bytes uint64, base float64, units []string) string {
	num := float64(bytes)
	if num < base {
		return fmt.Sprintf("%d %s", bytes, units[0])
	}

	exp := int(math.Log(num) / math.Log(base))
	if exp > len(units)-1 {
		exp = len(units) - 1
	}

	return fmt.Sprintf("%.2f %s", num/math.Pow(base, float64(exp)), units[exp])
}
