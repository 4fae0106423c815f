// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/statement-engine/internal/statement"
	"github.com/pdiddy/statement-engine/pkg/types"
)

// readText parses a plain-text statement: one entry per non-blank line.
func readText(path string) (*types.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, readErr(path, types.FormatText, err)
	}
	defer f.Close()

	table := types.NewTable(statement.EntryColumns...)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		table.Append(statement.ParseLine(line).Record())
	}
	if err := scanner.Err(); err != nil {
		return nil, readErr(path, types.FormatText, fmt.Errorf("scanning lines: %w", err))
	}

	return table, nil
}
