package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/dedupnorris/pkg/dedupe"
	"github.com/sdejongh/dedupnorris/pkg/logging"
	"github.com/sdejongh/dedupnorris/pkg/output"
)

// ScanFlags holds scan command flags
type ScanFlags struct {
	MinSize   string
	MaxSize   string
	Count     int
	ScanSize  string
	Order     string
	Delete    bool
	Bandwidth string
	Output    string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var scanFlags ScanFlags

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [flags] path...",
		Short: "Find and optionally delete duplicate files",
		Long: `Scan one or more directories for groups of byte-identical files.
Candidates are narrowed by size, then by partial-content hashing of the
last and first bytes, and confirmed by full-content hashing. The first
file of each group (in traversal order) is kept; the rest are reported
and, with --delete, removed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScan,
	}

	cmd.Flags().StringVarP(&scanFlags.MinSize, "min-size", "m", "1", "minimum file size to scan (e.g. \"512\", \"4K\")")
	cmd.Flags().StringVarP(&scanFlags.MaxSize, "max-size", "M", "0", "maximum file size to scan (0 = no limit)")
	cmd.Flags().IntVarP(&scanFlags.Count, "count", "c", 2, "minimum count of files considered duplicate (min. 2)")
	cmd.Flags().StringVarP(&scanFlags.ScanSize, "scan-size", "s", "1M", "window size for partial hashing of first and last bytes")
	cmd.Flags().StringVar(&scanFlags.Order, "order", "identity", "traversal order: identity, name, depth")
	cmd.Flags().BoolVar(&scanFlags.Delete, "delete", false, "actually delete duplicate files (default: dry run)")
	cmd.Flags().StringVarP(&scanFlags.Bandwidth, "bandwidth", "b", "", "read bandwidth limit (e.g., \"10M\", \"1G\")")
	cmd.Flags().StringVarP(&scanFlags.Output, "output", "o", "human", "output format: human, json")

	// Logging flags
	cmd.Flags().StringVar(&scanFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&scanFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&scanFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Validate flags
	if err := validateScanFlags(args); err != nil {
		return err
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with flags the user actually passed
	if err := applyFlagsToConfig(cmd, cfg); err != nil {
		return err
	}

	// Create scan operation
	operation, err := createScanOperation(cfg, args)
	if err != nil {
		return fmt.Errorf("failed to create scan operation: %w", err)
	}

	// Create output formatter
	var formatter output.Formatter
	switch cfg.Output.Format {
	case "json":
		formatter = output.NewJSONFormatter()
	default:
		if cfg.Output.Progress {
			formatter = output.NewProgressFormatter()
		} else {
			formatter = output.NewHumanFormatter()
		}
	}

	// Create logger
	logger, err := createLogger(scanFlags.LogFile, scanFlags.LogFormat, scanFlags.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// Create scan engine
	engine := dedupe.NewEngine(operation, formatter, logger)

	// Run scan
	report, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	// Flush the log before exiting; os.Exit skips deferred calls
	logger.Close()
	os.Exit(report.Status.ExitCode())
	return nil
}

// createLogger creates a logger based on configuration
func createLogger(logFile, logFormat, logLevel string) (logging.Logger, error) {
	// If no log file specified, return null logger
	if logFile == "" {
		return logging.NewNullLogger(), nil
	}

	var format logging.Format
	switch logFormat {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	config := logging.FileLoggerConfig{
		Path:    logFile,
		Format:  format,
		Level:   logging.ParseLevel(logLevel),
		MaxSize: 10 * 1024 * 1024, // 10 MB
	}

	return logging.NewFileLogger(config)
}
