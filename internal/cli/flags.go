package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds flags shared by every command
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
	NoProgress bool
}

var globalFlags GlobalFlags

// AddGlobalFlags registers the shared flags on the root command
func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&globalFlags.ConfigFile, "config", "",
		"config file (default is $HOME/.config/dedupnorris/config.yaml)")
	flags.BoolVarP(&globalFlags.Verbose, "verbose", "v", false,
		"verbose output")
	flags.BoolVarP(&globalFlags.Quiet, "quiet", "q", false,
		"suppress non-error output")
	flags.BoolVar(&globalFlags.NoProgress, "no-progress", false,
		"disable progress bars even on a terminal")
}

// GetGlobalFlags returns the global flags
func GetGlobalFlags() *GlobalFlags {
	return &globalFlags
}
