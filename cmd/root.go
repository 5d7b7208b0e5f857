// =============================================================================
// Spectrum Parts List - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Run with no
// subcommand, it builds the parts list exactly like 'process' with default
// flags, so the tool still works when started by double-clicking.
//
// COBRA CLI STRUCTURE:
//   rootCmd (parts-list)
//   ├── processCmd (parts-list process)
//   └── versionCmd (parts-list version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "parts-list",
	Short: "Spectrum Parts List - Build purchasing parts list workbooks from a CSV export",

	Long: `Spectrum Parts List reads a purchasing data export, removes duplicate
lines and writes three workbooks:

  1. Every distinct purchase line, sorted by item code
  2. Totals by item code, cost code and description
  3. Totals by item code

Rows that cannot be read are written to the row-error log and skipped.

Example Usage:
  parts-list                           # Build the workbooks using config.yaml
  parts-list process --input data.csv  # Use a different export
  parts-list process --dry-run         # Check the export without writing`,

	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd.OutOrStdout(), cmd.InOrStdin(), processOptions{})
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the global flags.
func init() {
	// --config flag: the YAML configuration file. A missing file means the
	// built-in defaults are used.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
