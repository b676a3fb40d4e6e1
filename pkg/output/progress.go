package output

import (
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"

	"github.com/sdejongh/dedupnorris/pkg/models"
)

// ProgressFormatter renders the human output with a byte progress bar
// while a size bucket is being hashed
type ProgressFormatter struct {
	human     *HumanFormatter
	writer    io.Writer
	termWidth int
	bar       *pb.ProgressBar
}

// NewProgressFormatter creates a new progress bar formatter
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{human: NewHumanFormatter()}
}

// Start initializes the formatter
func (f *ProgressFormatter) Start(writer io.Writer, op *models.ScanOperation) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer

	// Detect terminal width to keep the bar on one line; default to
	// 80 when output is piped or redirected
	if file, ok := writer.(*os.File); ok {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
			f.termWidth = width
		}
	}
	if f.termWidth == 0 {
		f.termWidth = 80
	}

	return f.human.Start(writer, op)
}

// Stage reports the surviving candidates after an elimination stage
func (f *ProgressFormatter) Stage(update StageUpdate) error {
	f.finishBar()
	return f.human.Stage(update)
}

// BucketStart opens a progress bar sized to the bucket's total bytes
func (f *ProgressFormatter) BucketStart(size int64, files int) error {
	if err := f.human.BucketStart(size, files); err != nil {
		return err
	}

	f.finishBar()
	bar := pb.Full.Start64(size * int64(files))
	bar.Set(pb.Bytes, true)
	bar.SetWriter(f.writer)
	bar.SetWidth(f.termWidth)
	f.bar = bar
	return nil
}

// HashProgress advances the active bar
func (f *ProgressFormatter) HashProgress(path string, n int64) error {
	if f.bar != nil {
		f.bar.Add64(n)
	}
	return nil
}

// Group reports a confirmed duplicate group
func (f *ProgressFormatter) Group(group *models.DuplicateGroup) error {
	f.finishBar()
	return f.human.Group(group)
}

// BucketComplete reports running totals after a size bucket is resolved
func (f *ProgressFormatter) BucketComplete(stats models.Statistics, remainingFiles, remainingBytes uint64) error {
	f.finishBar()
	return f.human.BucketComplete(stats, remainingFiles, remainingBytes)
}

// Complete finalizes output and displays the summary
func (f *ProgressFormatter) Complete(report *models.ScanReport) error {
	f.finishBar()
	return f.human.Complete(report)
}

// Error reports an error
func (f *ProgressFormatter) Error(err error) error {
	f.finishBar()
	return f.human.Error(err)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}

func (f *ProgressFormatter) finishBar() {
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
}
