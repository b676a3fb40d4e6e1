package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sdejongh/dedupnorris/internal/platform"
	"github.com/sdejongh/dedupnorris/pkg/config"
	"github.com/sdejongh/dedupnorris/pkg/models"
)

// validateScanFlags validates the scan command flags
func validateScanFlags(paths []string) error {
	for _, path := range paths {
		if err := platform.ValidatePath(path); err != nil {
			return err
		}

		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", path)
		}
		if err != nil {
			return fmt.Errorf("failed to access path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("path is not a directory: %s", path)
		}
	}

	if scanFlags.Count < 2 {
		return fmt.Errorf("invalid count: %d (must be at least 2)", scanFlags.Count)
	}

	validOrders := map[string]bool{
		"identity": true,
		"name":     true,
		"depth":    true,
	}
	if !validOrders[scanFlags.Order] {
		return fmt.Errorf("invalid traversal order: %s (valid: identity, name, depth)", scanFlags.Order)
	}

	validOutputs := map[string]bool{
		"human": true,
		"json":  true,
	}
	if !validOutputs[scanFlags.Output] {
		return fmt.Errorf("invalid output format: %s (valid: human, json)", scanFlags.Output)
	}

	minSize, err := parseSize(scanFlags.MinSize)
	if err != nil {
		return fmt.Errorf("invalid minimum size: %w", err)
	}
	maxSize, err := parseSize(scanFlags.MaxSize)
	if err != nil {
		return fmt.Errorf("invalid maximum size: %w", err)
	}
	if maxSize != 0 && minSize > maxSize {
		return fmt.Errorf("minimum size (%d) is larger than maximum size (%d)", minSize, maxSize)
	}

	scanSize, err := parseSize(scanFlags.ScanSize)
	if err != nil {
		return fmt.Errorf("invalid scan size: %w", err)
	}
	if scanSize < 1 {
		return fmt.Errorf("scan size must be at least 1 byte")
	}

	if scanFlags.Bandwidth != "" {
		if _, err := parseSize(scanFlags.Bandwidth); err != nil {
			return fmt.Errorf("invalid bandwidth limit: %w", err)
		}
	}

	return nil
}

// parseSize parses a byte count with an optional K/M/G/T suffix
// (binary multiples, e.g. "4K" = 4096)
func parseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(s, "K"), strings.HasSuffix(s, "k"):
		multiplier = 1024
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "M"), strings.HasSuffix(s, "m"):
		multiplier = 1024 * 1024
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "G"), strings.HasSuffix(s, "g"):
		multiplier = 1024 * 1024 * 1024
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "T"), strings.HasSuffix(s, "t"):
		multiplier = 1024 * 1024 * 1024 * 1024
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a valid size: %q", s)
	}
	if value < 0 {
		return 0, fmt.Errorf("size cannot be negative: %q", s)
	}

	return value * multiplier, nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags.
// Only flags the user actually passed take precedence; defaults never
// mask values loaded from the config file.
func applyFlagsToConfig(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	// Sizes were validated already; errors here cannot happen
	if flags.Changed("min-size") {
		cfg.Scan.MinSize, _ = parseSize(scanFlags.MinSize)
	}
	if flags.Changed("max-size") {
		cfg.Scan.MaxSize, _ = parseSize(scanFlags.MaxSize)
	}
	if flags.Changed("scan-size") {
		cfg.Scan.ScanSize, _ = parseSize(scanFlags.ScanSize)
	}
	if flags.Changed("count") {
		cfg.Scan.MinCount = scanFlags.Count
	}
	if flags.Changed("order") {
		cfg.Scan.Order = models.ScanOrder(scanFlags.Order)
	}
	if flags.Changed("bandwidth") {
		limit, err := parseSize(scanFlags.Bandwidth)
		if err != nil {
			return err
		}
		cfg.Performance.BandwidthLimit = limit
	}

	// Output format
	if flags.Changed("output") {
		cfg.Output.Format = scanFlags.Output
	}

	// Disable progress in quiet mode or when asked explicitly
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}
	if globalFlags.NoProgress {
		cfg.Output.Progress = false
	}

	// Enable progress in verbose mode
	if globalFlags.Verbose {
		cfg.Output.Progress = true
	}

	return nil
}

// createScanOperation creates a scan operation from configuration
func createScanOperation(cfg *config.Config, paths []string) (*models.ScanOperation, error) {
	roots, err := platform.CanonicalizeRoots(paths)
	if err != nil {
		return nil, err
	}

	operation := &models.ScanOperation{
		ID:             uuid.New().String(),
		Roots:          roots,
		MinSize:        cfg.Scan.MinSize,
		MaxSize:        cfg.Scan.MaxSize,
		MinCount:       cfg.Scan.MinCount,
		ScanSize:       cfg.Scan.ScanSize,
		Order:          cfg.Scan.Order,
		Delete:         scanFlags.Delete,
		BandwidthLimit: cfg.Performance.BandwidthLimit,
		BufferSize:     cfg.Performance.BufferSize,
		CreatedAt:      time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}
