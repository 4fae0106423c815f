// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/statement-engine/internal/statement"
	"github.com/pdiddy/statement-engine/pkg/types"
)

// Extractor pulls plain text out of a PDF file. Different backends
// (in-process parsing, the poppler pdftotext binary) implement this
// interface.
type Extractor interface {
	// ExtractText reads the PDF at path and returns its text content,
	// one statement line per text line.
	ExtractText(path string) (string, error)
}

// newExtractor selects the extraction backend. The native backend is
// the default; pdftotext requires the binary on PATH.
func newExtractor(backend types.PDFBackend) (Extractor, error) {
	switch backend {
	case "", types.BackendNative:
		return &nativeExtractor{}, nil
	case types.BackendPdftotext:
		return NewPdftotextExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown pdf backend %q: use native or pdftotext", backend)
	}
}

// readPDF extracts text from a PDF and parses the surviving lines as
// statement entries. Unless cfg.KeepAllLines is set, the transaction
// heuristics drop header/footer noise.
func readPDF(path string, cfg types.ReaderConfig) (*types.Table, error) {
	ex, err := newExtractor(cfg.PDFBackend)
	if err != nil {
		return nil, readErr(path, types.FormatPDF, err)
	}

	text, err := ex.ExtractText(path)
	if err != nil {
		return nil, readErr(path, types.FormatPDF, err)
	}

	return tableFromText(text, cfg), nil
}

// tableFromText normalizes extracted PDF text and applies the
// transaction heuristics line by line.
func tableFromText(text string, cfg types.ReaderConfig) *types.Table {
	h := statement.Heuristics{
		RequireDate: cfg.RequireDate,
		MinNumbers:  cfg.MinNumbers,
		Contains:    cfg.Contains,
	}

	table := types.NewTable(statement.EntryColumns...)
	for _, raw := range strings.Split(text, "\n") {
		line := statement.CollapseSpaces(raw)
		if line == "" {
			continue
		}
		if !cfg.KeepAllLines && !h.IsTransaction(line) {
			continue
		}
		table.Append(statement.ParseLine(line).Record())
	}
	return table
}

// nativeExtractor parses the PDF in-process with ledongthuc/pdf,
// reconstructing lines from row-grouped text fragments.
type nativeExtractor struct{}

func (nativeExtractor) ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("extracting text from page %d: %w", i, err)
		}
		for _, row := range rows {
			buf.WriteString(joinRow(row.Content))
			buf.WriteByte('\n')
		}
	}

	return buf.String(), nil
}

// joinRow concatenates the text fragments of one row, inserting a
// space wherever the horizontal gap between fragments is wider than a
// fraction of the font size. PDF text runs carry no separators of
// their own.
func joinRow(fragments []pdf.Text) string {
	var line strings.Builder
	var prev pdf.Text
	for i, frag := range fragments {
		if i > 0 {
			threshold := prev.FontSize * 0.2
			if threshold <= 0 {
				threshold = 1
			}
			if frag.X-(prev.X+prev.W) > threshold {
				line.WriteByte(' ')
			}
		}
		line.WriteString(frag.S)
		prev = frag
	}
	return line.String()
}
