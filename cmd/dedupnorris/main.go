package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/dedupnorris/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "dedupnorris",
		Short: "Duplicate file finder and remover",
		Long: `dedupnorris locates groups of byte-identical files beneath one or
more directories and optionally deletes all but one file of each group.
Candidates are eliminated in stages: grouping by file size, hashing the
last and first bytes, and finally hashing the entire content.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(cli.NewScanCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
