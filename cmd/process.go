// =============================================================================
// Spectrum Parts List - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs the parts list
// pipeline once.
//
// COMMAND USAGE:
//   parts-list process [flags]
//
// FLAGS:
//   --dry-run     : Load, aggregate and reconcile without writing workbooks
//   --input       : Path to the export (overrides input_file)
//   --no-pause    : Never wait for Enter, even if pause_on_exit is set
//
// =============================================================================

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/spectrum-parts-list/internal/config"
	"github.com/ginjaninja78/spectrum-parts-list/internal/converter"
	"github.com/ginjaninja78/spectrum-parts-list/internal/logging"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// processOptions holds the flags of one invocation.
type processOptions struct {
	// dryRun skips every report write.
	dryRun bool

	// inputFile overrides the configured export path.
	inputFile string

	// noPause suppresses the pause after the completion message.
	noPause bool
}

var processFlags processOptions

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Build the parts list workbooks",
	Long: `The process command loads the purchasing export, drops rows it cannot
read (logging each one), removes duplicate lines and writes the three
parts list workbooks.

Exit status is 1 when the configuration is invalid, the export cannot be
read, or a workbook cannot be written. Skipped rows do not fail the run.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd.OutOrStdout(), cmd.InOrStdin(), processFlags)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&processFlags.dryRun,
		"dry-run",
		false,
		"Load, aggregate and reconcile without writing workbooks",
	)

	processCmd.Flags().StringVar(
		&processFlags.inputFile,
		"input",
		"",
		"Path to the export (overrides input_file in the configuration)",
	)

	processCmd.Flags().BoolVar(
		&processFlags.noPause,
		"no-pause",
		false,
		"Do not wait for Enter before exiting",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess loads the configuration, runs the pipeline and prints the
// summary to out. When the configuration asks for it, it then waits for a
// line on in.
func runProcess(out io.Writer, in io.Reader, opts processOptions) error {
	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.inputFile != "" {
		cfg.InputFile = opts.inputFile
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.New(level, nil)

	// =========================================================================
	// STEP 2: RUN THE PIPELINE
	// =========================================================================

	conv := converter.New(cfg, logger, converter.Options{DryRun: opts.dryRun})
	result, err := conv.Run()
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 3: PRINT SUMMARY
	// =========================================================================

	printSummary(out, result, cfg.LogFile, opts.dryRun)

	fmt.Fprintf(out, "\nProcess complete. There are %d distinct parts.\n", result.Stats.DistinctParts)

	if cfg.PauseOnExit && !opts.noPause {
		fmt.Fprint(out, "Press Enter to quit.")
		_, _ = bufio.NewReader(in).ReadString('\n')
	}

	return nil
}

func printSummary(out io.Writer, result *converter.Result, logFile string, dryRun bool) {
	stats := result.Stats

	fmt.Fprintln(out, "=== Spectrum Parts List ===")
	fmt.Fprintf(out, "Input file:        %s\n", result.InputFile)
	fmt.Fprintf(out, "Rows read:         %d\n", stats.RowsRead)
	fmt.Fprintf(out, "Rows skipped:      %d\n", stats.RowsRejected)
	fmt.Fprintf(out, "Duplicates:        %d\n", stats.DuplicatesRemoved)
	fmt.Fprintf(out, "Distinct lines:    %d\n", stats.DistinctLines)
	fmt.Fprintf(out, "Cost code groups:  %d\n", stats.CostCodeGroups)
	fmt.Fprintf(out, "Time elapsed:      %s\n", stats.ProcessingTime)

	if dryRun {
		fmt.Fprintln(out, "\nDry run: no workbooks written.")
	} else {
		fmt.Fprintln(out, "\nWorkbooks:")
		for _, path := range []string{result.Outputs.Lines, result.Outputs.ByCostCode, result.Outputs.ByItem, result.Outputs.CSV} {
			if path != "" {
				fmt.Fprintf(out, "  ✓ %s\n", path)
			}
		}
	}

	if stats.RowsRejected > 0 {
		fmt.Fprintf(out, "\n%d row(s) skipped. See %s for details.\n", stats.RowsRejected, logFile)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(out, "  ! %s\n", w.Error())
	}
}
