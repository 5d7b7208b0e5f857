package converter

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/spectrum-parts-list/internal/config"
	"github.com/ginjaninja78/spectrum-parts-list/internal/logging"
	"github.com/ginjaninja78/spectrum-parts-list/internal/xlsxwriter"
)

const exportHeader = "company_code,po_number,PONumber,PODate,line_number,po_quantity_list1,po_quantity_list2," +
	"item_code,PartNumber,item_description,unit_of_measure,item_price,line_extension_list1," +
	"line_extension_list2,delivery_date,gl_account,job_number,phase_code,cost_type," +
	"received_extension,OpenAmount,Job,JobName,vendor_code,VendorName,CostCode,AECostCode,AECostCodeCategory"

// exportRow builds a well-formed export line for one item.
func exportRow(line, item, costCode, desc, qty, price string) string {
	return strings.Join([]string{
		"01", "PO-100", "PO-100", "3/14/2023", line, qty, qty,
		item, item, desc, "EA", price, price,
		price, "", "5000", "J1", "P1", "M",
		"0", price, "J1", "Main St", "V1", "Acme", costCode, "AE1", "Material",
	}, ",")
}

func writeExport(t *testing.T, dir string) string {
	t.Helper()

	badDate := strings.Replace(exportRow("9", "QQQ", "CC9", "Nut", "1", "1.00"), "3/14/2023", "not-a-date", 1)

	// Row 4 repeats row 2, row 5 has 29 fields and row 6 a bad PO date.
	rows := []string{
		exportHeader,
		exportRow("1", "ABC123", "CC1", "Widget", "2", "10.00"),
		exportRow("2", "ABC123", "CC1", "Widget", "3", "15.00"),
		exportRow("1", "ABC123", "CC1", "Widget", "2", "10.00"),
		exportRow("3", "ABC123", "CC1", "Widget, large", "1", "1"),
		badDate,
		exportRow("1", "XYZ", "CC2", "Bolt", "1", "1.00"),
		exportRow("2", "#XYZ", "CC3", "Bolt", "4", "2.00"),
	}

	path := filepath.Join(dir, "PurchasingData.csv")
	if err := os.WriteFile(path, []byte(strings.Join(rows, "\r\n")+"\r\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.InputFile = writeExport(t, dir)
	cfg.OutputDir = filepath.Join(dir, "out")
	cfg.LogFile = filepath.Join(dir, "Log.txt")
	cfg.Reports.CSV = "lines.csv"
	return cfg
}

func readReport(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile(%s) error = %v", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(xlsxwriter.DefaultSheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	return rows
}

func col(header string) int {
	for i, c := range xlsxwriter.Columns {
		if c.Header == header {
			return i
		}
	}
	return -1
}

func TestConverter_Run(t *testing.T) {
	cfg := testConfig(t)
	var logBuf bytes.Buffer

	conv := New(cfg, logging.New(slog.LevelDebug, &logBuf), Options{})
	result, err := conv.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Statistics.
	stats := result.Stats
	if stats.RowsRead != 7 {
		t.Errorf("RowsRead = %d, want 7", stats.RowsRead)
	}
	if stats.RowsRejected != 2 {
		t.Errorf("RowsRejected = %d, want 2", stats.RowsRejected)
	}
	if stats.DuplicatesRemoved != 1 {
		t.Errorf("DuplicatesRemoved = %d, want 1", stats.DuplicatesRemoved)
	}
	if stats.DistinctLines != 4 {
		t.Errorf("DistinctLines = %d, want 4", stats.DistinctLines)
	}
	if stats.CostCodeGroups != 3 {
		t.Errorf("CostCodeGroups = %d, want 3", stats.CostCodeGroups)
	}
	if stats.DistinctParts != 2 {
		t.Errorf("DistinctParts = %d, want 2", stats.DistinctParts)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}

	// Row-error log: one line per dropped row.
	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("reading row-error log: %v", err)
	}
	logLines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(logLines) != 2 {
		t.Fatalf("row-error log has %d lines, want 2:\n%s", len(logLines), data)
	}
	if !strings.Contains(logLines[0], "| Method: Load | Row #: 5 | Message incorrect column count") {
		t.Errorf("log line 0 = %q", logLines[0])
	}
	if !strings.Contains(logLines[1], "| Method: ParseLine | Row #: 6 |") {
		t.Errorf("log line 1 = %q", logLines[1])
	}
	if !strings.Contains(logBuf.String(), "row dropped") {
		t.Errorf("console log missing dropped rows: %s", logBuf.String())
	}

	// Report 1: distinct lines sorted by item code.
	lines := readReport(t, result.Outputs.Lines)
	if len(lines) != 5 {
		t.Fatalf("lines report rows = %d, want 5", len(lines))
	}
	wantItems := []string{"ABC123", "ABC123", "XYZ", "XYZ"}
	for i, want := range wantItems {
		if got := lines[i+1][col("item_code")]; got != want {
			t.Errorf("lines row %d item_code = %q, want %q", i+1, got, want)
		}
	}

	// Report 2: by item code, cost code and description.
	byCostCode := readReport(t, result.Outputs.ByCostCode)
	if len(byCostCode) != 4 {
		t.Fatalf("by_cost_code rows = %d, want 4", len(byCostCode))
	}
	first := byCostCode[1]
	if first[col("item_code")] != "ABC123" || first[col("CostCode")] != "CC1" || first[col("item_description")] != "Widget" {
		t.Errorf("by_cost_code row 1 = %v", first)
	}
	if first[col("po_quantity_list1")] != "5" || first[col("item_price")] != "25" {
		t.Errorf("by_cost_code ABC123 totals = %s / %s, want 5 / 25",
			first[col("po_quantity_list1")], first[col("item_price")])
	}

	// Report 3: by item code.
	byItem := readReport(t, result.Outputs.ByItem)
	if len(byItem) != 3 {
		t.Fatalf("by_item rows = %d, want 3", len(byItem))
	}
	want := []struct{ item, qty, price string }{
		{"ABC123", "5", "25"},
		{"XYZ", "5", "3"},
	}
	for i, w := range want {
		r := byItem[i+1]
		if r[col("item_code")] != w.item || r[col("po_quantity_list1")] != w.qty || r[col("item_price")] != w.price {
			t.Errorf("by_item row %d = %s %s %s, want %s %s %s", i+1,
				r[col("item_code")], r[col("po_quantity_list1")], r[col("item_price")],
				w.item, w.qty, w.price)
		}
	}

	// Optional CSV copy.
	if result.Outputs.CSV == "" {
		t.Fatal("CSV output not written")
	}
	csvData, err := os.ReadFile(result.Outputs.CSV)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(strings.TrimSpace(string(csvData)), "\n"); got != 4 {
		t.Errorf("csv has %d data rows, want 4", got)
	}
}

func TestConverter_RunAppendsToExistingLog(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.LogFile, []byte("earlier run\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := New(cfg, nil, Options{}).Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "earlier run\n") {
		t.Errorf("existing log content was not preserved: %q", data)
	}
	if got := strings.Count(string(data), "\n"); got != 3 {
		t.Errorf("log has %d lines, want 3", got)
	}
}

func TestConverter_DryRun(t *testing.T) {
	cfg := testConfig(t)

	result, err := New(cfg, nil, Options{DryRun: true}).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Outputs != (Outputs{}) {
		t.Errorf("Outputs = %+v, want none on dry run", result.Outputs)
	}
	if _, err := os.Stat(cfg.OutputDir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output directory created on dry run: %v", err)
	}
	if result.Stats.DistinctParts != 2 {
		t.Errorf("DistinctParts = %d, want 2", result.Stats.DistinctParts)
	}
}

func TestConverter_MissingInput(t *testing.T) {
	cfg := testConfig(t)
	cfg.InputFile = filepath.Join(t.TempDir(), "missing.csv")

	result, err := New(cfg, nil, Options{}).Run()
	if err == nil {
		t.Fatal("Run() error = nil, want error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Run() error = %v, want os.ErrNotExist", err)
	}
	if result != nil {
		t.Errorf("Run() result = %+v, want nil", result)
	}
}

func TestConverter_OutputWriteFailure(t *testing.T) {
	cfg := testConfig(t)

	// A regular file where the output directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg.OutputDir = blocker

	if _, err := New(cfg, nil, Options{}).Run(); err == nil || !strings.Contains(err.Error(), "lines report") {
		t.Errorf("Run() error = %v, want lines report failure", err)
	}
}
