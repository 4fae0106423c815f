// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/statement-engine/pkg/types"
)

// writeExcel serializes the table to an .xlsx workbook with a header
// row. Numbers are written as numeric cells; dates keep the
// dd/mm/yyyy statement rendering so a written report reads back as
// the same table.
func writeExcel(table *types.Table, path string, cfg types.ReportConfig) error {
	sheet := cfg.SheetName
	if sheet == "" {
		sheet = DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return writeErr(path, fmt.Errorf("naming sheet %q: %w", sheet, err))
	}

	for col, name := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return writeErr(path, err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return writeErr(path, err)
		}
	}

	for row, rec := range table.Rows {
		for col, name := range table.Columns {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return writeErr(path, err)
			}
			v := rec[name]
			var payload any
			if v.Kind == types.KindNumber {
				payload = v.Number
			} else {
				payload = v.String()
			}
			if err := f.SetCellValue(sheet, cell, payload); err != nil {
				return writeErr(path, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return writeErr(path, err)
	}
	return nil
}
