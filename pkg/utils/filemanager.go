// =============================================================================
// Spectrum Parts List - File Utilities
// =============================================================================
//
// This module provides the small set of file helpers the pipeline needs:
//   - Directory creation for report output
//   - Output file naming with placeholders
//   - The append-only row-error log
//
// =============================================================================

package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDir creates dir and any missing parents. An empty dir or "." is a
// no-op.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a regular file or directory exists at path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// =============================================================================
// FILE NAMING
// =============================================================================

// GenerateOutputFileName expands placeholders in a file name.
//
// Placeholders:
//
//	{uuid}      - A random UUID
//	{timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//	{date}      - Current date (YYYYMMDD)
//	{time}      - Current time (HHMMSS)
//	{<key>}     - Any key from params
//
// A name without placeholders is returned unchanged.
//
// EXAMPLE:
//
//	format: "parts_{date}_{run}.xlsx"
//	params: {"run": "nightly"}
//	output: "parts_20240115_nightly.xlsx"
func GenerateOutputFileName(format string, params map[string]string) string {
	return generateOutputFileName(format, params, time.Now())
}

func generateOutputFileName(format string, params map[string]string, now time.Time) string {
	if !strings.Contains(format, "{") {
		return format
	}

	replacements := map[string]string{
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	// Each {uuid} gets its own value.
	for strings.Contains(result, "{uuid}") {
		result = strings.Replace(result, "{uuid}", uuid.New().String(), 1)
	}

	return result
}

// =============================================================================
// ROW-ERROR LOG
// =============================================================================

// ErrorLogEntry is one line of the row-error log.
type ErrorLogEntry struct {
	Timestamp time.Time
	Method    string
	RowNumber int
	Message   string
}

// String renders the entry in the log's line format.
func (e ErrorLogEntry) String() string {
	return fmt.Sprintf("Date: %s | Method: %s | Row #: %d | Message %s",
		e.Timestamp.Format("2006-01-02 15:04:05"),
		e.Method,
		e.RowNumber,
		e.Message)
}

// AppendErrorLog appends one entry to the log at path. The file is opened in
// append mode, written and closed on every call, and created if missing.
func AppendErrorLog(path string, entry ErrorLogEntry) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open error log: %w", err)
	}

	if _, err := fmt.Fprintln(file, entry.String()); err != nil {
		file.Close()
		return fmt.Errorf("failed to write error log: %w", err)
	}

	return file.Close()
}
