package dedupe

import (
	"context"
	"io"
	"os"
	"sort"
	"time"

	"github.com/sdejongh/dedupnorris/pkg/logging"
	"github.com/sdejongh/dedupnorris/pkg/models"
	"github.com/sdejongh/dedupnorris/pkg/output"
	"github.com/sdejongh/dedupnorris/pkg/ratelimit"
	"github.com/sdejongh/dedupnorris/pkg/scanner"
)

// Engine orchestrates the elimination pipeline: traversal and size
// grouping, the two partial-content passes, then per-bucket full
// hashing with survivor selection and optional deletion.
type Engine struct {
	op        *models.ScanOperation
	formatter output.Formatter
	logger    logging.Logger
	hasher    *Hasher
	writer    io.Writer
}

// NewEngine creates a new scan engine
func NewEngine(op *models.ScanOperation, formatter output.Formatter, logger logging.Logger) *Engine {
	return &Engine{
		op:        op,
		formatter: formatter,
		logger:    logger,
		hasher:    NewHasher(op.BufferSize),
		writer:    os.Stdout,
	}
}

// SetWriter overrides the output destination (stdout by default)
func (e *Engine) SetWriter(w io.Writer) {
	e.writer = w
}

// Run executes the scan operation. Stages run strictly in sequence;
// the first I/O failure aborts the run. The returned report is valid
// even on failure and records everything done up to that point.
func (e *Engine) Run(ctx context.Context) (*models.ScanReport, error) {
	report := &models.ScanReport{
		OperationID: e.op.ID,
		Roots:       e.op.Roots,
		DryRun:      !e.op.Delete,
		StartTime:   time.Now(),
		Status:      models.StatusSuccess,
	}

	if limiter := ratelimit.NewLimiter(e.op.BandwidthLimit); limiter != nil {
		e.hasher.SetReaderWrapper(func(r io.Reader) io.Reader {
			return ratelimit.NewReader(ctx, r, limiter)
		})
	}
	e.hasher.SetProgressHook(func(path string, n int64) {
		e.formatter.HashProgress(path, n)
	})

	e.formatter.Start(e.writer, e.op)
	e.logger.Info(ctx, "scan started", logging.Fields{
		"operation_id": e.op.ID,
		"roots":        e.op.Roots,
		"dry_run":      !e.op.Delete,
	})

	// Stage 1: traversal and size grouping
	buckets, err := scanner.Walk(e.op)
	if err != nil {
		return report, e.fail(ctx, report, models.StageTraversal, "", err)
	}
	e.recordStage(ctx, report, models.StageTraversal, buckets)
	report.Stats.Candidates, report.Stats.CandidateBytes = Stats(buckets)

	// Stage 2: partial filter over the last bytes
	buckets, err = PartialFilter(ctx, buckets, models.ScanLast, e.op.ScanSize, e.op.MinCount, e.hasher)
	if err != nil {
		return report, e.fail(ctx, report, models.StageLastBytes, "", err)
	}
	e.recordStage(ctx, report, models.StageLastBytes, buckets)

	// Stage 3: partial filter over the first bytes
	buckets, err = PartialFilter(ctx, buckets, models.ScanFirst, e.op.ScanSize, e.op.MinCount, e.hasher)
	if err != nil {
		return report, e.fail(ctx, report, models.StageFirstBytes, "", err)
	}
	e.recordStage(ctx, report, models.StageFirstBytes, buckets)

	// Stages 4-5: full hashing and deletion, bucket by bucket
	if err := e.resolveBuckets(ctx, report, buckets); err != nil {
		return report, err
	}

	e.finish(ctx, report)
	return report, nil
}

// resolveBuckets fully hashes each surviving bucket, designates
// survivors and removes the rest, largest sizes first
func (e *Engine) resolveBuckets(ctx context.Context, report *models.ScanReport, buckets models.SizeBuckets) error {
	remainingFiles, remainingBytes := Stats(buckets)

	sizes := make([]int64, 0, len(buckets))
	for size := range buckets {
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] > sizes[j] })

	for _, size := range sizes {
		if err := ctx.Err(); err != nil {
			return e.fail(ctx, report, models.StageFullHash, "", err)
		}

		files := buckets[size]
		remainingFiles -= uint64(len(files))
		remainingBytes -= uint64(size) * uint64(len(files))

		e.formatter.BucketStart(size, len(files))

		groups, err := FullFilter(ctx, files, e.hasher)
		if err != nil {
			return e.fail(ctx, report, models.StageFullHash, "", err)
		}

		digests := make([]string, 0, len(groups))
		for digest := range groups {
			digests = append(digests, digest)
		}
		sort.Strings(digests)

		for _, digest := range digests {
			members := groups[digest]
			if len(members) < e.op.MinCount {
				continue
			}

			group := models.DuplicateGroup{
				Digest:   digest,
				Size:     size,
				Survivor: members[0],
				Removed:  members[1:],
				Deleted:  e.op.Delete,
			}

			for i, path := range group.Removed {
				if e.op.Delete {
					if err := os.Remove(path); err != nil {
						// Record what was actually removed before the
						// failure; deletions are not rolled back
						group.Removed = group.Removed[:i]
						report.Groups = append(report.Groups, group)
						report.Stats.Groups++
						return e.fail(ctx, report, models.StageDelete, path, err)
					}
				}
				report.Stats.FilesRemoved++
				report.Stats.BytesFreed += uint64(size)
			}

			report.Groups = append(report.Groups, group)
			report.Stats.Groups++
			e.formatter.Group(&group)
			e.logger.Debug(ctx, "duplicate group resolved", logging.Fields{
				"digest":   digest,
				"size":     size,
				"survivor": group.Survivor,
				"removed":  len(group.Removed),
			})
		}

		e.formatter.BucketComplete(report.Stats, remainingFiles, remainingBytes)
	}

	return nil
}

// recordStage appends the stage statistics and reports them
func (e *Engine) recordStage(ctx context.Context, report *models.ScanReport, stage models.Stage, buckets models.SizeBuckets) {
	files, bytes := Stats(buckets)
	stats := models.StageStats{Stage: stage, Files: files, Bytes: bytes}
	report.Stages = append(report.Stages, stats)

	e.formatter.Stage(output.StageUpdate{Stage: stage, Files: files, Bytes: bytes})
	e.logger.Info(ctx, "stage completed", logging.Fields{
		"stage": string(stage),
		"files": files,
		"bytes": bytes,
	})
}

// finish closes out a successful run
func (e *Engine) finish(ctx context.Context, report *models.ScanReport) {
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	report.Status = models.StatusSuccess

	e.formatter.Complete(report)
	e.logger.Info(ctx, "scan completed", logging.Fields{
		"groups":        report.Stats.Groups,
		"files_removed": report.Stats.FilesRemoved,
		"bytes_freed":   report.Stats.BytesFreed,
	})
}

// fail records the aborting error and closes out the report
func (e *Engine) fail(ctx context.Context, report *models.ScanReport, stage models.Stage, path string, err error) error {
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)

	if ctx.Err() != nil {
		report.Status = models.StatusCancelled
	} else {
		report.Status = models.StatusFailed
	}
	report.Errors = append(report.Errors, models.ScanError{
		Path:      path,
		Stage:     stage,
		Error:     err.Error(),
		Timestamp: time.Now(),
	})

	e.formatter.Error(err)
	e.formatter.Complete(report)
	e.logger.Error(ctx, "scan aborted", err, logging.Fields{"stage": string(stage), "path": path})
	return err
}
