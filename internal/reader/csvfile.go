// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/statement-engine/internal/statement"
	"github.com/pdiddy/statement-engine/pkg/types"
)

// readCSV parses a CSV file. The first row is the header. With
// cfg.Column set, statement extraction runs on that column's text
// (the remaining columns are ignored); otherwise each row becomes a
// record under the header's column names with typed cell inference.
func readCSV(path string, cfg types.ReaderConfig) (*types.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, readErr(path, types.FormatCSV, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, readErr(path, types.FormatCSV, fmt.Errorf("empty file: missing header row"))
		}
		return nil, readErr(path, types.FormatCSV, fmt.Errorf("reading header: %w", err))
	}
	stripBOM(header)

	if cfg.Column != "" {
		return csvStatementColumn(path, r, header, cfg.Column)
	}

	table := types.NewTable(header...)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readErr(path, types.FormatCSV, fmt.Errorf("reading row: %w", err))
		}
		rec := make(types.Record, len(header))
		for i, col := range header {
			rec[col] = inferValue(row[i])
		}
		table.Append(rec)
	}
	return table, nil
}

// csvStatementColumn runs statement extraction over one named column.
func csvStatementColumn(path string, r *csv.Reader, header []string, column string) (*types.Table, error) {
	idx := -1
	for i, col := range header {
		if col == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, readErr(path, types.FormatCSV,
			fmt.Errorf("column %q not found; available: %s", column, strings.Join(header, ", ")))
	}

	table := types.NewTable(statement.EntryColumns...)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readErr(path, types.FormatCSV, fmt.Errorf("reading row: %w", err))
		}
		line := strings.TrimSpace(row[idx])
		if line == "" {
			continue
		}
		table.Append(statement.ParseLine(line).Record())
	}
	return table, nil
}

// stripBOM removes a UTF-8 byte order mark from the first header cell.
// Spreadsheet tools commonly prefix exported CSVs with one.
func stripBOM(header []string) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
}
