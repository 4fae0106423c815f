// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/statement-engine/pkg/types"
)

// readExcel parses an .xlsx workbook: the named sheet (or the first
// one), first row as header, typed cell inference for data rows.
// Rows with no non-empty cell are skipped.
func readExcel(path string, cfg types.ReaderConfig) (*types.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, readErr(path, types.FormatExcel, err)
	}
	defer f.Close()

	sheet := cfg.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, readErr(path, types.FormatExcel, fmt.Errorf("workbook has no sheets"))
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, readErr(path, types.FormatExcel, fmt.Errorf("reading sheet %q: %w", sheet, err))
	}
	if len(rows) == 0 {
		return nil, readErr(path, types.FormatExcel, fmt.Errorf("sheet %q is empty: missing header row", sheet))
	}

	header := rows[0]
	table := types.NewTable(header...)

	for _, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}
		rec := make(types.Record, len(header))
		for i, col := range header {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			rec[col] = excelCellValue(cell)
		}
		table.Append(rec)
	}

	return table, nil
}

// excelCellValue types an xlsx cell. Numeric cells render with a '.'
// decimal separator, so plain float parsing applies here; the
// Brazilian thousands inference is for text and CSV statement sources,
// where "1.234" is an integer.
func excelCellValue(s string) types.Value {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return types.Text("")
	}
	if t, ok := types.ParseDate(trimmed); ok {
		return types.Date(t)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return types.Number(f)
	}
	return types.Text(s)
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
