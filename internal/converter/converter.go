// =============================================================================
// Spectrum Parts List - Converter Module
// =============================================================================
//
// This module orchestrates one run of the parts list pipeline, from the CSV
// export to the three workbooks.
//
// PIPELINE:
//   1. Load the export (bad rows are logged and dropped)
//   2. Remove duplicate lines and sort by item code
//   3. Write report 1 (and the optional CSV copy)
//   4. Group by item code, cost code and description; write report 2
//   5. Group report 2 by item code; write report 3
//   6. Reconcile the totals across the three reports
//
// The run is sequential. Every step finishes before the next starts.
//
// =============================================================================

package converter

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ginjaninja78/spectrum-parts-list/internal/config"
	"github.com/ginjaninja78/spectrum-parts-list/internal/csvparser"
	"github.com/ginjaninja78/spectrum-parts-list/internal/types"
	"github.com/ginjaninja78/spectrum-parts-list/internal/validation"
	"github.com/ginjaninja78/spectrum-parts-list/internal/xlsxwriter"
	"github.com/ginjaninja78/spectrum-parts-list/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one run.
type Result struct {
	// InputFile is the export that was loaded.
	InputFile string

	// Outputs lists the files written. Empty on a dry run.
	Outputs Outputs

	// Rejected holds one entry per dropped input row.
	Rejected []*csvparser.RowError

	// Warnings holds reconciliation problems. The reports are still written.
	Warnings []*validation.ValidationError

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// Outputs holds the paths of the written reports.
type Outputs struct {
	Lines      string
	ByCostCode string
	ByItem     string

	// CSV is empty unless a CSV report is configured.
	CSV string
}

// ProcessingStats contains statistics about the run.
type ProcessingStats struct {
	// RowsRead is the number of data rows in the export.
	RowsRead int

	// RowsRejected is the number of rows dropped for format or parse errors.
	RowsRejected int

	// DuplicatesRemoved is the number of loaded lines equal to an earlier one.
	DuplicatesRemoved int

	// DistinctLines is the number of rows in report 1.
	DistinctLines int

	// CostCodeGroups is the number of rows in report 2.
	CostCodeGroups int

	// DistinctParts is the number of rows in report 3.
	DistinctParts int

	// ProcessingTime is the wall time of the run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Options adjusts a single run without changing the configuration.
type Options struct {
	// DryRun loads, aggregates and reconciles but writes no report.
	DryRun bool
}

// Converter runs the pipeline for one configuration.
type Converter struct {
	cfg     *config.Config
	logger  *slog.Logger
	options Options

	// now stamps row-error log entries.
	now func() time.Time
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - cfg: The run configuration.
//   - logger: The console logger. A nil logger discards output.
//   - options: Per-run switches.
func New(cfg *config.Config, logger *slog.Logger, options Options) *Converter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{
		cfg:     cfg,
		logger:  logger,
		options: options,
		now:     time.Now,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline.
//
// RETURNS:
//   - The Result of the run. It is non-nil whenever the error is nil.
//   - An error if the export cannot be read or a report cannot be written.
//     Rejected rows and reconciliation warnings are not errors.
func (c *Converter) Run() (*Result, error) {
	startTime := time.Now()
	result := &Result{InputFile: c.cfg.InputFile}

	// =========================================================================
	// STEP 1: LOAD THE EXPORT
	// =========================================================================

	c.logger.Info("loading export", "file", c.cfg.InputFile)

	loaded, err := csvparser.Load(c.cfg.InputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load input: %w", err)
	}

	result.Rejected = loaded.Rejected
	result.Stats.RowsRead = loaded.RowsRead
	result.Stats.RowsRejected = len(loaded.Rejected)

	for _, rowErr := range loaded.Rejected {
		c.recordRowError(rowErr)
	}

	c.logger.Debug("export loaded",
		"rows", loaded.RowsRead,
		"loaded", len(loaded.Lines),
		"rejected", len(loaded.Rejected))

	// =========================================================================
	// STEP 2: DEDUPLICATE AND SORT
	// =========================================================================

	lines := DistinctSorted(loaded.Lines)
	result.Stats.DistinctLines = len(lines)
	result.Stats.DuplicatesRemoved = len(loaded.Lines) - len(lines)

	// =========================================================================
	// STEP 3: REPORT 1 - DISTINCT LINES
	// =========================================================================

	result.Outputs.Lines, err = c.writeReport("lines", c.cfg.Reports.Lines, lines)
	if err != nil {
		return nil, err
	}

	if c.cfg.Reports.CSV != "" {
		result.Outputs.CSV, err = c.writeCSV(lines)
		if err != nil {
			return nil, err
		}
	}

	// =========================================================================
	// STEP 4: REPORT 2 - BY ITEM CODE, COST CODE AND DESCRIPTION
	// =========================================================================

	byCostCode := ByItemCostCodeDescription(lines)
	result.Stats.CostCodeGroups = len(byCostCode)

	result.Outputs.ByCostCode, err = c.writeReport("by_cost_code", c.cfg.Reports.ByCostCode, types.Lines(byCostCode))
	if err != nil {
		return nil, err
	}

	// =========================================================================
	// STEP 5: REPORT 3 - BY ITEM CODE
	// =========================================================================

	byItem := ByItemCode(byCostCode)
	result.Stats.DistinctParts = len(byItem)

	result.Outputs.ByItem, err = c.writeReport("by_item", c.cfg.Reports.ByItem, types.Lines(byItem))
	if err != nil {
		return nil, err
	}

	// =========================================================================
	// STEP 6: RECONCILE
	// =========================================================================

	result.Warnings = validation.CheckTotals(lines, byCostCode, byItem)
	for _, w := range result.Warnings {
		c.logger.Warn("reconciliation", "stage", w.Stage, "rule", w.Rule, "detail", w.Message)
	}

	// =========================================================================
	// COMPLETE
	// =========================================================================

	result.Stats.ProcessingTime = time.Since(startTime)

	c.logger.Info("run complete",
		"distinct_lines", result.Stats.DistinctLines,
		"cost_code_groups", result.Stats.CostCodeGroups,
		"distinct_parts", result.Stats.DistinctParts,
		"rejected", result.Stats.RowsRejected,
		"duration", result.Stats.ProcessingTime)

	return result, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// recordRowError appends a dropped row to the row-error log and the console
// log. A failure to write the log file is itself logged but does not stop
// the run.
func (c *Converter) recordRowError(rowErr *csvparser.RowError) {
	c.logger.Warn("row dropped", "op", rowErr.Op, "row", rowErr.Row, "error", rowErr.Err)

	entry := utils.ErrorLogEntry{
		Timestamp: c.now(),
		Method:    rowErr.Op,
		RowNumber: rowErr.Row,
		Message:   rowErr.Err.Error(),
	}
	if err := utils.AppendErrorLog(c.cfg.LogFile, entry); err != nil {
		c.logger.Error("failed to record dropped row", "file", c.cfg.LogFile, "error", err)
	}
}

// writeReport writes one workbook and returns its path. On a dry run the
// path is not resolved and nothing is written.
func (c *Converter) writeReport(report, name string, lines []types.PurchaseLine) (string, error) {
	if c.options.DryRun {
		c.logger.Info("dry run: report skipped", "report", report, "rows", len(lines))
		return "", nil
	}

	path := c.cfg.ReportPath(name)
	options := xlsxwriter.DefaultOptions()
	options.SheetName = c.cfg.SheetName

	if err := xlsxwriter.WriteXLSXWithOptions(path, lines, options); err != nil {
		return "", fmt.Errorf("failed to write %s report: %w", report, err)
	}

	c.logger.Info("report written", "report", report, "file", path, "rows", len(lines))
	return path, nil
}

func (c *Converter) writeCSV(lines []types.PurchaseLine) (string, error) {
	if c.options.DryRun {
		return "", nil
	}

	path := c.cfg.ReportPath(c.cfg.Reports.CSV)
	if err := xlsxwriter.WriteCSV(path, lines); err != nil {
		return "", fmt.Errorf("failed to write csv report: %w", err)
	}

	c.logger.Info("report written", "report", "csv", "file", path, "rows", len(lines))
	return path, nil
}
