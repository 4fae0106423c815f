// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/pdiddy/statement-engine/pkg/types"
)

// utf8BOM helps Excel recognize UTF-8 encoded CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// writeCSV serializes the table to a CSV file with a header row and a
// UTF-8 BOM prefix for Excel compatibility.
func writeCSV(table *types.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return writeErr(path, err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return writeErr(path, fmt.Errorf("writing BOM: %w", err))
	}

	w := csv.NewWriter(f)
	if err := w.Write(table.Columns); err != nil {
		return writeErr(path, fmt.Errorf("writing header: %w", err))
	}

	row := make([]string, len(table.Columns))
	for i, rec := range table.Rows {
		for j, col := range table.Columns {
			row[j] = rec[col].String()
		}
		if err := w.Write(row); err != nil {
			return writeErr(path, fmt.Errorf("writing row %d: %w", i+1, err))
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return writeErr(path, err)
	}
	if err := f.Close(); err != nil {
		return writeErr(path, err)
	}
	return nil
}
