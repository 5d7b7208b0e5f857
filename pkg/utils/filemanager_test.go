package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGenerateOutputFileName(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)

	tests := []struct {
		name   string
		format string
		params map[string]string
		want   string
	}{
		{"no placeholders", "FormattedPurchasingData1.xlsx", nil, "FormattedPurchasingData1.xlsx"},
		{"date", "parts_{date}.xlsx", nil, "parts_20240115.xlsx"},
		{"timestamp", "parts_{timestamp}.xlsx", nil, "parts_20240115_143022.xlsx"},
		{"time", "{time}.csv", nil, "143022.csv"},
		{"custom param", "{report}_{date}.xlsx", map[string]string{"report": "by_item"}, "by_item_20240115.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := generateOutputFileName(tt.format, tt.params, now); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateOutputFileName_UUID(t *testing.T) {
	got := GenerateOutputFileName("{uuid}_{uuid}.xlsx", nil)
	if strings.Contains(got, "{uuid}") {
		t.Fatalf("placeholder not replaced: %q", got)
	}
	parts := strings.SplitN(strings.TrimSuffix(got, ".xlsx"), "_", 2)
	if len(parts) != 2 || len(parts[0]) != 36 || parts[0] == parts[1] {
		t.Errorf("expected two distinct UUIDs, got %q", got)
	}
}

func TestAppendErrorLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Log.txt")
	ts := time.Date(2024, 1, 15, 9, 5, 1, 0, time.Local)

	entries := []ErrorLogEntry{
		{Timestamp: ts, Method: "Load", RowNumber: 3, Message: "incorrect column count: got 29, want 28"},
		{Timestamp: ts, Method: "ParseLine", RowNumber: 7, Message: `field PODate: value "x": invalid date`},
	}
	for _, e := range entries {
		if err := AppendErrorLog(path, e); err != nil {
			t.Fatalf("AppendErrorLog() error = %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("log has %d lines, want 2", len(lines))
	}

	want := "Date: 2024-01-15 09:05:01 | Method: Load | Row #: 3 | Message incorrect column count: got 29, want 28"
	if lines[0] != want {
		t.Errorf("line 0 = %q, want %q", lines[0], want)
	}
	if !strings.Contains(lines[1], "Method: ParseLine | Row #: 7") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestEnsureDirAndFileExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if FileExists(dir) {
		t.Fatalf("%s should not exist yet", dir)
	}
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if !FileExists(dir) {
		t.Errorf("%s should exist", dir)
	}
	if err := EnsureDir(""); err != nil {
		t.Errorf("EnsureDir(\"\") error = %v", err)
	}
}
