// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report serializes record tables to Excel or CSV files under
// a fixed output directory. A filesystem failure surfaces as a
// WriteError; there is no partial-write recovery, the caller re-runs.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/statement-engine/pkg/types"
)

// DefaultSheetName is the Excel sheet reports are written to.
const DefaultSheetName = "statement"

// WriteError reports a failure to create the output directory or to
// write the report file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

func writeErr(path string, err error) *WriteError {
	return &WriteError{Path: path, Err: err}
}

// OutputPath resolves where the report for inputPath goes: the
// explicit name when given, otherwise "<input base>_processed.<ext>",
// always inside cfg.OutputDir.
func OutputPath(inputPath string, cfg types.ReportConfig, explicit string) string {
	name := explicit
	if name == "" {
		base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		name = fmt.Sprintf("%s_processed.%s", base, cfg.Format)
	}
	return filepath.Join(cfg.OutputDir, name)
}

// Write serializes the table to path in the configured format,
// creating the parent directory if absent.
func Write(table *types.Table, path string, cfg types.ReportConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return writeErr(path, fmt.Errorf("creating output directory: %w", err))
	}

	switch cfg.Format {
	case types.ReportExcel, "":
		return writeExcel(table, path, cfg)
	case types.ReportCSV:
		return writeCSV(table, path)
	default:
		return writeErr(path, fmt.Errorf("unsupported report format %q: use xlsx or csv", cfg.Format))
	}
}
