// =============================================================================
// Spectrum Parts List - Export Loader
// =============================================================================
//
// This module reads the purchasing export produced by the accounting system
// and turns every data line into a types.PurchaseLine.
//
// FILE FORMAT:
//   - Line 1 is a header and is always skipped.
//   - Every following line holds exactly 28 comma-separated fields.
//   - There is NO quoting or escaping. A description that contains a comma
//     produces too many fields and the row is rejected. This matches what the
//     export actually emits, so the parser deliberately uses strings.Split
//     rather than encoding/csv.
//
// ROW FAILURES:
//   A bad row never stops the load. Each failure is returned as a *RowError
//   alongside the good lines so the caller can log it and move on.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/spectrum-parts-list/internal/types"
)

// Operation names recorded on RowError.Op and in the row-error log.
const (
	OpLoad      = "Load"
	OpParseLine = "ParseLine"
)

// maxLineSize bounds a single export line. The default bufio.Scanner limit
// of 64KB is too small for exports with long free-text descriptions.
const maxLineSize = 1024 * 1024

var (
	// ErrColumnCount is wrapped by row errors for lines that do not split
	// into exactly types.FieldCount fields.
	ErrColumnCount = errors.New("incorrect column count")

	// ErrEmptyInput is returned when the input has no header line.
	ErrEmptyInput = errors.New("input is empty")
)

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// RowError describes a data line that was dropped.
type RowError struct {
	// Op is the step that rejected the row (OpLoad or OpParseLine).
	Op string

	// Row is the 1-indexed line number in the file. The header is row 1.
	Row int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return fmt.Sprintf("%s: row %d: %v", e.Op, e.Row, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RowError) Unwrap() error {
	return e.Err
}

// Result is the outcome of loading one export.
type Result struct {
	// SourceFile is the path the lines were read from. Empty for Parse.
	SourceFile string

	// Lines holds every row that parsed, in file order.
	Lines []types.PurchaseLine

	// Rejected holds one entry per dropped row, in file order.
	Rejected []*RowError

	// RowsRead is the number of data lines seen (header excluded).
	RowsRead int
}

// =============================================================================
// LOADER FUNCTIONS
// =============================================================================

// Load reads the export at filePath and parses every data line.
//
// The file is opened, read to the end and closed before any line is parsed.
// A missing file yields an error that wraps os.ErrNotExist.
func Load(filePath string) (*Result, error) {
	lines, err := readFile(filePath)
	if err != nil {
		return nil, err
	}

	result, err := parseLines(lines)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	result.SourceFile = filePath

	return result, nil
}

// Parse reads an export from r. See Load.
func Parse(r io.Reader) (*Result, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return parseLines(lines)
}

func readFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	lines, err := readLines(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", filePath, err)
	}
	return lines, nil
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// parseLines skips the header and converts each remaining line.
func parseLines(lines []string) (*Result, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}

	result := &Result{
		Lines: make([]types.PurchaseLine, 0, len(lines)-1),
	}

	for i := 1; i < len(lines); i++ {
		rowNum := i + 1
		result.RowsRead++

		fields := strings.Split(lines[i], ",")
		if len(fields) != types.FieldCount {
			result.Rejected = append(result.Rejected, &RowError{
				Op:  OpLoad,
				Row: rowNum,
				Err: fmt.Errorf("%w: got %d, want %d", ErrColumnCount, len(fields), types.FieldCount),
			})
			continue
		}

		line, err := ParseLine(fields)
		if err != nil {
			result.Rejected = append(result.Rejected, &RowError{
				Op:  OpParseLine,
				Row: rowNum,
				Err: err,
			})
			continue
		}

		result.Lines = append(result.Lines, line)
	}

	return result, nil
}
