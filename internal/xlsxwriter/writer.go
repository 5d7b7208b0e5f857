// =============================================================================
// Spectrum Parts List - Report Writer
// =============================================================================
//
// This module renders a list of purchase lines as a spreadsheet. All three
// reports go through the same code path:
//
//   Report 1: every distinct purchase line
//   Report 2: pass 1 summaries (item code + cost code + description)
//   Report 3: pass 2 summaries (item code)
//
// The summaries are projected onto types.PurchaseLine before they get here,
// so every report has the same header row. Fields a projection does not
// carry are written as empty text, zero numbers, or empty dates.
//
// LAYOUT:
//   | company_code | po_number | PONumber | PODate | ... | AECostCodeCategory |
//   | 01           | PO-100    | PO-100   | 3/14/23| ... | Material           |
//
// Columns come from an explicit list (see Columns), never from reflection,
// so the order is fixed and reviewable.
//
// =============================================================================

package xlsxwriter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/spectrum-parts-list/internal/types"
	"github.com/ginjaninja78/spectrum-parts-list/pkg/utils"
)

// DefaultSheetName matches the sheet name the workbooks have always used.
const DefaultSheetName = "Part"

// =============================================================================
// WRITE OPTIONS
// =============================================================================

// Options controls how a report is rendered.
type Options struct {
	// SheetName is the name of the single worksheet.
	// Default: "Part"
	SheetName string

	// Columns is the column list, in output order.
	// Default: Columns (every PurchaseLine field)
	Columns []Column

	// DateNumFmt is the Excel built-in number format applied to date columns.
	// Default: 14 (short date)
	DateNumFmt int

	// CSVDateLayout is the Go time layout used for dates in CSV output.
	// Default: "2006-01-02"
	CSVDateLayout string
}

// DefaultOptions returns the default write options.
func DefaultOptions() Options {
	return Options{
		SheetName:     DefaultSheetName,
		Columns:       Columns,
		DateNumFmt:    14,
		CSVDateLayout: "2006-01-02",
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.SheetName == "" {
		o.SheetName = def.SheetName
	}
	if len(o.Columns) == 0 {
		o.Columns = def.Columns
	}
	if o.DateNumFmt == 0 {
		o.DateNumFmt = def.DateNumFmt
	}
	if o.CSVDateLayout == "" {
		o.CSVDateLayout = def.CSVDateLayout
	}
	return o
}

// =============================================================================
// XLSX OUTPUT
// =============================================================================

// WriteXLSX writes lines to a new workbook at path using DefaultOptions.
func WriteXLSX(path string, lines []types.PurchaseLine) error {
	return WriteXLSXWithOptions(path, lines, DefaultOptions())
}

// WriteXLSXWithOptions writes lines to a new workbook at path.
//
// The parent directory is created if needed and an existing file at path is
// replaced. Decimals are written as numbers (as text when a float64 would
// round them), dates as Excel dates, and a zero date as an empty cell.
func WriteXLSXWithOptions(path string, lines []types.PurchaseLine, options Options) error {
	options = options.withDefaults()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := options.SheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet %q: %w", sheet, err)
	}

	if err := styleDateColumns(f, sheet, options); err != nil {
		return err
	}

	// Header row.
	header := make([]interface{}, len(options.Columns))
	for i, h := range Headers(options.Columns) {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	// Data rows start on row 2.
	for i, line := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}

		row := make([]interface{}, len(options.Columns))
		for j, col := range options.Columns {
			row[j] = cellValue(col.Value(line))
		}

		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}

	return nil
}

// styleDateColumns applies the date number format to every column whose
// accessor yields a time.Time.
func styleDateColumns(f *excelize.File, sheet string, options Options) error {
	var probe types.PurchaseLine
	styleID := -1

	for i, col := range options.Columns {
		if _, ok := col.Value(probe).(time.Time); !ok {
			continue
		}

		if styleID < 0 {
			id, err := f.NewStyle(&excelize.Style{NumFmt: options.DateNumFmt})
			if err != nil {
				return fmt.Errorf("failed to create date style: %w", err)
			}
			styleID = id
		}

		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColStyle(sheet, name, styleID); err != nil {
			return fmt.Errorf("failed to style column %s: %w", name, err)
		}
	}

	return nil
}

// cellValue converts a column value into something excelize stores natively.
// A decimal that a float64 cannot hold exactly is written as its text so the
// total is not rounded.
func cellValue(v any) any {
	switch val := v.(type) {
	case decimal.Decimal:
		f := val.InexactFloat64()
		if !decimal.NewFromFloat(f).Equal(val) {
			return val.String()
		}
		return f
	case time.Time:
		if val.IsZero() {
			return nil
		}
		return val
	default:
		return v
	}
}

// =============================================================================
// CSV OUTPUT
// =============================================================================

// WriteCSV writes lines as a comma-separated file using DefaultOptions.
func WriteCSV(path string, lines []types.PurchaseLine) error {
	return WriteCSVWithOptions(path, lines, DefaultOptions())
}

// WriteCSVWithOptions writes lines as a comma-separated file with a header
// row. Unlike the export it was loaded from, fields are quoted where needed.
// Decimals keep their exact text form.
func WriteCSVWithOptions(path string, lines []types.PurchaseLine, options Options) error {
	options = options.withDefaults()

	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)

	if err := w.Write(Headers(options.Columns)); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	record := make([]string, len(options.Columns))
	for i, line := range lines {
		for j, col := range options.Columns {
			record[j] = textValue(col.Value(line), options.CSVDateLayout)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}

	return file.Close()
}

// textValue renders a column value for CSV output.
func textValue(v any, dateLayout string) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case decimal.Decimal:
		return val.String()
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format(dateLayout)
	default:
		return fmt.Sprint(v)
	}
}
