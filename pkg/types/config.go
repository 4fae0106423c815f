// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Format identifies an input file format.
type Format string

const (
	FormatText  Format = "text"
	FormatCSV   Format = "csv"
	FormatExcel Format = "xlsx"
	FormatPDF   Format = "pdf"
)

// PDFBackend identifies the PDF text extraction tool.
type PDFBackend string

const (
	// BackendNative extracts text in-process with the ledongthuc/pdf library.
	BackendNative PDFBackend = "native"
	// BackendPdftotext pipes the file through the poppler pdftotext binary.
	BackendPdftotext PDFBackend = "pdftotext"
)

// ReportFormat identifies an output report format.
type ReportFormat string

const (
	ReportExcel ReportFormat = "xlsx"
	ReportCSV   ReportFormat = "csv"
)

// ReaderConfig holds settings for the input reader stage.
type ReaderConfig struct {
	// Format declares the input format. Empty means detect from the
	// file extension.
	Format Format `json:"format,omitempty" yaml:"format,omitempty" mapstructure:"format"`

	// Column names the CSV column holding statement text. When set,
	// statement extraction runs on that column instead of reading the
	// CSV as a plain table.
	Column string `json:"column,omitempty" yaml:"column,omitempty" mapstructure:"column"`

	// Sheet names the Excel sheet to read. Empty means the first sheet.
	Sheet string `json:"sheet,omitempty" yaml:"sheet,omitempty" mapstructure:"sheet"`

	// KeepAllLines disables the transaction-line heuristics for PDF
	// input and keeps every extracted line.
	KeepAllLines bool `json:"keep_all_lines" yaml:"keep_all_lines" mapstructure:"keep_all_lines"`

	// RequireDate requires a leading dd/mm/yyyy date on PDF lines.
	RequireDate bool `json:"require_date" yaml:"require_date" mapstructure:"require_date"`

	// MinNumbers is the minimum count of statement numbers a PDF line
	// must contain (default 2).
	MinNumbers int `json:"min_numbers" yaml:"min_numbers" mapstructure:"min_numbers"`

	// Contains keeps only lines containing any of these keywords
	// (case-insensitive). Empty means no keyword filter.
	Contains []string `json:"contains,omitempty" yaml:"contains,omitempty" mapstructure:"contains"`

	// PDFBackend selects the extraction tool: native or pdftotext.
	PDFBackend PDFBackend `json:"pdf_backend,omitempty" yaml:"pdf_backend,omitempty" mapstructure:"pdf_backend"`
}

// ReportConfig holds settings for the report writer stage.
type ReportConfig struct {
	// OutputDir is the directory reports are written into (default
	// "outputs"). Created if absent.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Format selects the report format: xlsx or csv.
	Format ReportFormat `json:"format" yaml:"format" mapstructure:"format"`

	// SheetName is the Excel sheet name for xlsx reports (default
	// "statement").
	SheetName string `json:"sheet_name,omitempty" yaml:"sheet_name,omitempty" mapstructure:"sheet_name"`
}

// LedgerConfig holds settings for the run ledger.
type LedgerConfig struct {
	// LedgerDir is the base directory for the ledger database
	// (contains runs.db).
	LedgerDir string `json:"ledger_dir" yaml:"ledger_dir" mapstructure:"ledger_dir"`

	// MaxResults is the default maximum number of listed runs (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Reader ReaderConfig `json:"reader" yaml:"reader" mapstructure:"reader"`
	Report ReportConfig `json:"report" yaml:"report" mapstructure:"report"`
	Ledger LedgerConfig `json:"ledger" yaml:"ledger" mapstructure:"ledger"`
}
