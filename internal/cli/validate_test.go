package cli

import (
	"testing"

	"github.com/sdejongh/dedupnorris/pkg/config"
	"github.com/sdejongh/dedupnorris/pkg/models"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"512", 512},
		{"4K", 4096},
		{"4k", 4096},
		{"1M", 1024 * 1024},
		{"2G", 2 * 1024 * 1024 * 1024},
		{"1T", 1024 * 1024 * 1024 * 1024},
		{"0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseSize(tt.input)
			if err != nil {
				t.Fatalf("parseSize(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseSize(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}

	for _, input := range []string{"", "abc", "-5", "1X"} {
		t.Run("Invalid_"+input, func(t *testing.T) {
			if _, err := parseSize(input); err == nil {
				t.Errorf("parseSize(%q) should fail", input)
			}
		})
	}
}

func TestApplyFlagsToConfig_ConfigValuesSurvive(t *testing.T) {
	cmd := NewScanCommand()

	// Values loaded from a config file must not be clobbered by flag
	// defaults the user never passed
	cfg := config.Default()
	cfg.Scan.MinCount = 5
	cfg.Scan.ScanSize = 4096
	cfg.Scan.Order = models.OrderDepth
	cfg.Output.Format = "json"

	if err := applyFlagsToConfig(cmd, cfg); err != nil {
		t.Fatalf("applyFlagsToConfig() error = %v", err)
	}

	if cfg.Scan.MinCount != 5 {
		t.Errorf("MinCount = %d, want 5 from config", cfg.Scan.MinCount)
	}
	if cfg.Scan.ScanSize != 4096 {
		t.Errorf("ScanSize = %d, want 4096 from config", cfg.Scan.ScanSize)
	}
	if cfg.Scan.Order != models.OrderDepth {
		t.Errorf("Order = %s, want depth from config", cfg.Scan.Order)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Format = %s, want json from config", cfg.Output.Format)
	}
}

func TestApplyFlagsToConfig_PassedFlagsWin(t *testing.T) {
	cmd := NewScanCommand()
	for flag, value := range map[string]string{
		"count":    "4",
		"min-size": "2K",
		"order":    "name",
	} {
		if err := cmd.Flags().Set(flag, value); err != nil {
			t.Fatalf("failed to set --%s: %v", flag, err)
		}
	}

	cfg := config.Default()
	cfg.Scan.MinCount = 5
	cfg.Scan.MinSize = 10

	if err := applyFlagsToConfig(cmd, cfg); err != nil {
		t.Fatalf("applyFlagsToConfig() error = %v", err)
	}

	if cfg.Scan.MinCount != 4 {
		t.Errorf("MinCount = %d, want 4 from flag", cfg.Scan.MinCount)
	}
	if cfg.Scan.MinSize != 2048 {
		t.Errorf("MinSize = %d, want 2048 from flag", cfg.Scan.MinSize)
	}
	if cfg.Scan.Order != models.OrderName {
		t.Errorf("Order = %s, want name from flag", cfg.Scan.Order)
	}
}
