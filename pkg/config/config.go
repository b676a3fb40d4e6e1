package config

import (
	"github.com/sdejongh/dedupnorris/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Scan        ScanConfig        `yaml:"scan"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ScanConfig holds scan-related settings
type ScanConfig struct {
	MinSize  int64            `yaml:"min_size"`  // bytes, at least 1
	MaxSize  int64            `yaml:"max_size"`  // bytes, 0 = no cap
	MinCount int              `yaml:"min_count"` // minimum duplicate group size
	ScanSize int64            `yaml:"scan_size"` // partial hash window in bytes
	Order    models.ScanOrder `yaml:"order"`     // identity, name or depth
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	BufferSize     int   `yaml:"buffer_size"`
	BandwidthLimit int64 `yaml:"bandwidth_limit"` // read bytes per second, 0 = unlimited
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show progress bars
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = disabled)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			MinSize:  1,
			MaxSize:  0,
			MinCount: 2,
			ScanSize: 1024 * 1024,
			Order:    models.OrderIdentity,
		},
		Performance: PerformanceConfig{
			BufferSize:     65536,
			BandwidthLimit: 0,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Format:  "json",
			Level:   "info",
			File:    "",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Scan.MinSize < 1 {
		return &models.ValidationError{
			Field:   "scan.min_size",
			Message: "must be at least 1 byte",
		}
	}

	if c.Scan.MaxSize != 0 && c.Scan.MaxSize < c.Scan.MinSize {
		return &models.ValidationError{
			Field:   "scan.max_size",
			Message: "must be 0 (no cap) or at least min_size",
		}
	}

	if c.Scan.MinCount < 2 {
		return &models.ValidationError{
			Field:   "scan.min_count",
			Message: "must be at least 2",
		}
	}

	if c.Scan.ScanSize < 1 {
		return &models.ValidationError{
			Field:   "scan.scan_size",
			Message: "must be at least 1 byte",
		}
	}

	switch c.Scan.Order {
	case models.OrderIdentity, models.OrderName, models.OrderDepth:
	default:
		return &models.ValidationError{
			Field:   "scan.order",
			Message: "must be 'identity', 'name' or 'depth'",
		}
	}

	if c.Performance.BufferSize < 1024 {
		return &models.ValidationError{
			Field:   "performance.buffer_size",
			Message: "must be at least 1024 bytes",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
