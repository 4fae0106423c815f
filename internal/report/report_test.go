// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/statement-engine/internal/organize"
	"github.com/pdiddy/statement-engine/internal/reader"
	"github.com/pdiddy/statement-engine/pkg/types"
)

func sampleTable() *types.Table {
	t := types.NewTable("date", "description", "amount")
	t.Append(types.Record{
		"date":        types.Date(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
		"description": types.Text("PIX RECEBIDO"),
		"amount":      types.Number(1500),
	})
	t.Append(types.Record{
		"date":        types.Date(time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)),
		"description": types.Text("TARIFA"),
		"amount":      types.Number(-25.5),
	})
	return t
}

func TestOutputPath(t *testing.T) {
	cfg := types.ReportConfig{OutputDir: "outputs", Format: types.ReportExcel}

	got := OutputPath("inbox/extrato_jan.pdf", cfg, "")
	want := filepath.Join("outputs", "extrato_jan_processed.xlsx")
	if got != want {
		t.Errorf("OutputPath = %q, want %q", got, want)
	}

	got = OutputPath("inbox/extrato_jan.pdf", cfg, "custom.xlsx")
	want = filepath.Join("outputs", "custom.xlsx")
	if got != want {
		t.Errorf("explicit OutputPath = %q, want %q", got, want)
	}
}

// A written Excel report must read back as an equivalent table.
func TestExcelRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := types.ReportConfig{OutputDir: dir, Format: types.ReportExcel}
	path := filepath.Join(dir, "report.xlsx")

	table := sampleTable()
	if err := Write(table, path, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := reader.Read(path, types.ReaderConfig{Sheet: DefaultSheetName})
	if err != nil {
		t.Fatal(err)
	}

	if !table.Equal(got) {
		t.Errorf("round-trip mismatch:\nwrote: %+v\nread:  %+v", table, got)
	}
}

// Decimal values that happen to render like thousands-grouped integers
// ("1.234") must survive the Excel round trip unchanged.
func TestExcelRoundTripDecimal(t *testing.T) {
	dir := t.TempDir()
	cfg := types.ReportConfig{OutputDir: dir, Format: types.ReportExcel}
	path := filepath.Join(dir, "report.xlsx")

	table := types.NewTable("amount")
	table.Append(types.Record{"amount": types.Number(1.234)})
	if err := Write(table, path, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := reader.Read(path, types.ReaderConfig{Sheet: DefaultSheetName})
	if err != nil {
		t.Fatal(err)
	}
	if v := got.Rows[0]["amount"]; v.Kind != types.KindNumber || v.Number != 1.234 {
		t.Errorf("round-trip value = %+v, want Number 1.234", v)
	}
}

// Full pipeline: read a CSV, filter it, write the report, and read the
// report back. Only the record passing the filter survives.
func TestPipelineEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "people.csv")
	if err := os.WriteFile(input, []byte("name,amount\nAlice,10\nBob,20\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := reader.Read(input, types.ReaderConfig{})
	if err != nil {
		t.Fatal(err)
	}

	filter, err := organize.ParseFilter("amount > 15")
	if err != nil {
		t.Fatal(err)
	}
	organized, err := organize.Apply(table, []organize.Step{filter})
	if err != nil {
		t.Fatal(err)
	}

	cfg := types.ReportConfig{OutputDir: dir, Format: types.ReportExcel}
	out := OutputPath(input, cfg, "")
	if want := filepath.Join(dir, "people_processed.xlsx"); out != want {
		t.Fatalf("output path = %q, want %q", out, want)
	}
	if err := Write(organized, out, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := reader.Read(out, types.ReaderConfig{Sheet: DefaultSheetName})
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 1 {
		t.Fatalf("report rows = %d, want exactly 1", got.Len())
	}
	row := got.Rows[0]
	if row["name"].Text != "Bob" || row["amount"].Number != 20 {
		t.Errorf("report row = %+v, want Bob/20", row)
	}
}

func TestCSVWrite(t *testing.T) {
	dir := t.TempDir()
	cfg := types.ReportConfig{OutputDir: dir, Format: types.ReportCSV}
	path := filepath.Join(dir, "report.csv")

	if err := Write(sampleTable(), path, cfg); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "\xef\xbb\xbf") {
		t.Error("missing UTF-8 BOM")
	}
	if !strings.Contains(content, "date,description,amount") {
		t.Errorf("missing header: %q", content)
	}
	// Numbers render with the statement comma decimal, so the cell is quoted.
	if !strings.Contains(content, `"-25,5"`) {
		t.Errorf("missing quoted amount: %q", content)
	}
	if !strings.Contains(content, "01/02/2024") {
		t.Errorf("missing formatted date: %q", content)
	}
}

func TestWriteCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "outputs", "nested")
	cfg := types.ReportConfig{OutputDir: dir, Format: types.ReportCSV}
	path := filepath.Join(dir, "report.csv")

	if err := Write(sampleTable(), path, cfg); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("report not written: %v", err)
	}
}

func TestWriteUnwritableDir(t *testing.T) {
	// A regular file where the output directory should be makes
	// MkdirAll fail on any platform, root included.
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "outputs")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := types.ReportConfig{OutputDir: blocker, Format: types.ReportCSV}
	path := filepath.Join(blocker, "report.csv")

	err := Write(sampleTable(), path, cfg)
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("error %T = %v, want WriteError", err, err)
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Error("partial output file left behind")
	}
}

func TestWriteUnsupportedFormat(t *testing.T) {
	cfg := types.ReportConfig{OutputDir: t.TempDir(), Format: "parquet"}
	err := Write(sampleTable(), filepath.Join(cfg.OutputDir, "r.parquet"), cfg)
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("error %T = %v, want WriteError", err, err)
	}
}
