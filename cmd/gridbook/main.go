// Gridbook is a terminal workbench for editable data grids.
//
// It loads a story fixture (YAML or HCL) describing columns and rows, and
// opens it as an interactive grid with row selection, inline cell editing and
// validation. Non-interactive commands print the grid or its validation
// report for scripting and CI.
//
// Usage:
//
//	gridbook [command] [flags]
//
// Running without arguments opens the grid for the configured story, or the
// built-in sample when none is set.
// See 'gridbook --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/gridbook/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridbook",
	Short: "Editable data grid workbench",
	Long: `A terminal workbench for editable data grids.

Stories describe the columns (text, select or checkbox) and the initial rows
of a grid. Gridbook opens them in an interactive table where rows can be
selected one at a time or as a range, cells edited in place and validated.

If no command is specified, the interactive grid opens automatically.`,
	Version: version.Version,
	Example: `  # Open the built-in sample grid
  gridbook

  # Open a story fixture
  gridbook run --story stories/orders.hcl

  # Print only the invalid rows
  gridbook show --errors-only

  # Check a fixture in CI
  gridbook validate --story stories/orders.yaml`,
	PersistentPreRunE: loadSettings,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: open the grid when no subcommand provided
		return runGrid(cmd, args)
	},
	SilenceErrors: true,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// Runs without loading settings
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		fmt.Fprintf(cmd.OutOrStdout(), "gridbook %s (commit: %s, %s)\n", info.Version, info.Commit, info.GoVersion)
	},
}
