// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reader turns input files (.txt, .csv, .xlsx, .pdf) into
// record tables. A failure to open or parse an input is terminal for
// the run and surfaces as a ReadError; there are no retries.
package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdiddy/statement-engine/internal/statement"
	"github.com/pdiddy/statement-engine/pkg/types"
)

// ReadError reports a missing, unreadable, or structurally unexpected
// input file.
type ReadError struct {
	Path   string
	Format types.Format
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s (%s): %v", e.Path, e.Format, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

func readErr(path string, format types.Format, err error) *ReadError {
	return &ReadError{Path: path, Format: format, Err: err}
}

// DetectFormat infers the input format from the file extension.
func DetectFormat(path string) (types.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return types.FormatText, nil
	case ".csv":
		return types.FormatCSV, nil
	case ".xlsx":
		return types.FormatExcel, nil
	case ".pdf":
		return types.FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported input extension %q: use .txt, .csv, .xlsx or .pdf", filepath.Ext(path))
	}
}

// Read parses the file at path into a table using the declared format,
// or the format detected from the extension when cfg.Format is empty.
func Read(path string, cfg types.ReaderConfig) (*types.Table, error) {
	format := cfg.Format
	if format == "" {
		f, err := DetectFormat(path)
		if err != nil {
			return nil, readErr(path, "auto", err)
		}
		format = f
	}

	switch format {
	case types.FormatText:
		return readText(path)
	case types.FormatCSV:
		return readCSV(path, cfg)
	case types.FormatExcel:
		return readExcel(path, cfg)
	case types.FormatPDF:
		return readPDF(path, cfg)
	default:
		return nil, readErr(path, format, fmt.Errorf("unknown format %q", format))
	}
}

// inferValue types a raw cell: dd/mm/yyyy dates and numbers (Brazilian
// or plain decimal) are promoted, everything else stays text.
func inferValue(s string) types.Value {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return types.Text("")
	}
	if t, ok := types.ParseDate(trimmed); ok {
		return types.Date(t)
	}
	if f, ok := statement.ParseNumber(trimmed); ok {
		return types.Number(f)
	}
	return types.Text(s)
}
