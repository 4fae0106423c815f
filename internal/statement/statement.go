// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package statement extracts transaction fields from bank statement
// lines: a leading dd/mm/yyyy date, a free-text description, and the
// trailing amount/balance pair written in Brazilian number format
// (thousands '.', decimal ',').
package statement

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/statement-engine/pkg/types"
)

// Canonical column names for extracted entries.
const (
	ColDate        = "date"
	ColDescription = "description"
	ColAmount      = "amount"
	ColBalance     = "balance"
	ColRaw         = "raw_line"
)

// EntryColumns is the column order for tables built from entries.
var EntryColumns = []string{ColDate, ColDescription, ColAmount, ColBalance, ColRaw}

// leadingDateRe matches a dd/mm/yyyy date at the start of a line.
var leadingDateRe = regexp.MustCompile(`^\s*(\d{2}/\d{2}/\d{4})\s+`)

// numberRe matches Brazilian number candidates: a decimal-comma run, or
// up to three digits followed by '.'-separated thousands groups with an
// optional decimal part. Candidates touching adjacent digits or a
// trailing comma are rejected afterwards; RE2 has no lookarounds.
var numberRe = regexp.MustCompile(`[+-]?\d+,\d+|[+-]?\d{1,3}(?:\.\d{3})*(?:,\d+)?`)

var spaceRe = regexp.MustCompile(`\s+`)

// stopwords mark statement header and footer lines that never carry
// transactions (page counters, branch/account banners, running-balance
// captions). Matched case-insensitively against the upper-cased line.
var stopwords = []string{
	"PÁGINA", "PAGINA", "PÁG", "PAG", "AGÊNCIA", "AGENCIA", "CONTA", "CNPJ", "BANCO",
	"WWW", "SITE", "CENTRAL DE ATENDIMENTO", "OUVIDORIA", "ATENDIMENTO", "SAC",
	"SALDO ANTERIOR", "SALDO DO DIA", "EXTRATO", "DEMONSTRATIVO", "ENDEREÇO", "ENDERECO",
	"CPF/CNPJ", "HORÁRIO", "HORARIO",
}

// Span is a half-open [Start, End) byte range within a line.
type Span struct {
	Start, End int
}

// FindNumbers returns the spans of Brazilian-format numbers in s,
// left to right. A candidate directly preceded by a digit, or followed
// by a digit or comma while carrying no decimal part itself, is not a
// number (it would be a fragment of a longer digit run).
func FindNumbers(s string) []Span {
	var spans []Span
	for _, m := range numberRe.FindAllStringIndex(s, -1) {
		start, end := m[0], m[1]
		if start > 0 && isDigit(s[start-1]) {
			continue
		}
		if end < len(s) && (isDigit(s[end]) || s[end] == ',') && !strings.Contains(s[start:end], ",") {
			continue
		}
		spans = append(spans, Span{Start: start, End: end})
	}
	return spans
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// CountNumbers returns how many Brazilian-format numbers s contains.
func CountNumbers(s string) int {
	return len(FindNumbers(s))
}

// thousandsRe matches a comma-less Brazilian integer with '.' group
// separators, e.g. "1.234" or "-12.345.678".
var thousandsRe = regexp.MustCompile(`^[+-]?\d{1,3}(?:\.\d{3})+$`)

// ParseNumber converts a Brazilian-format number ("1.234,56", "1.234",
// "-10,00") or a plain decimal ("10", "20.5") to a float64.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") {
		norm := strings.ReplaceAll(s, ".", "")
		norm = strings.Replace(norm, ",", ".", 1)
		f, err := strconv.ParseFloat(norm, 64)
		return f, err == nil
	}
	if thousandsRe.MatchString(s) {
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ".", ""), 64)
		return f, err == nil
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// CollapseSpaces trims s and folds internal whitespace runs to single spaces.
func CollapseSpaces(s string) string {
	return spaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// Heuristics selects which extracted lines count as transactions.
// The zero value keeps everything; DefaultHeuristics matches real
// statement PDFs.
type Heuristics struct {
	// RequireDate rejects lines without a leading dd/mm/yyyy date.
	RequireDate bool

	// MinNumbers rejects lines with fewer Brazilian-format numbers.
	MinNumbers int

	// Contains, when non-empty, keeps only lines containing any of the
	// keywords (case-insensitive).
	Contains []string
}

// DefaultHeuristics returns the standard PDF filtering: leading date
// required and at least two numbers per line.
func DefaultHeuristics() Heuristics {
	return Heuristics{RequireDate: true, MinNumbers: 2}
}

// IsTransaction reports whether line passes the heuristics: no
// header/footer stopword, the required leading date, the minimum
// number count, and at least one of the Contains keywords.
func (h Heuristics) IsTransaction(line string) bool {
	upper := strings.ToUpper(line)
	for _, w := range stopwords {
		if strings.Contains(upper, w) {
			return false
		}
	}
	if h.RequireDate && !leadingDateRe.MatchString(line) {
		return false
	}
	if h.MinNumbers > 0 && CountNumbers(line) < h.MinNumbers {
		return false
	}
	if len(h.Contains) > 0 {
		found := false
		for _, k := range h.Contains {
			k = strings.TrimSpace(k)
			if k != "" && strings.Contains(upper, strings.ToUpper(k)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Entry holds the raw extracted fields of one statement line. Fields
// keep their source text; Record converts them to typed values.
type Entry struct {
	Date        string
	Description string
	Amount      string
	Balance     string
	Raw         string
}

// ParseLine splits a statement line into its fields. With two or more
// numbers the penultimate is the amount and the last the balance, and
// the description is everything before the penultimate number. With a
// single number only the balance is set; with none, only the description.
func ParseLine(line string) Entry {
	original := strings.TrimSpace(line)
	entry := Entry{Raw: line}

	rest := original
	if m := leadingDateRe.FindStringSubmatchIndex(original); m != nil {
		entry.Date = original[m[2]:m[3]]
		rest = original[m[1]:]
	}

	nums := FindNumbers(rest)
	switch {
	case len(nums) >= 2:
		penult := nums[len(nums)-2]
		last := nums[len(nums)-1]
		entry.Amount = rest[penult.Start:penult.End]
		entry.Balance = rest[last.Start:last.End]
		entry.Description = CollapseSpaces(rest[:penult.Start])
	case len(nums) == 1:
		last := nums[0]
		entry.Balance = rest[last.Start:last.End]
		entry.Description = CollapseSpaces(rest)
	default:
		entry.Description = CollapseSpaces(rest)
	}

	return entry
}

// Record converts the entry to a typed record: the date becomes a date
// value, amount and balance become numbers, and missing fields stay
// empty text so every record carries the full column set.
func (e Entry) Record() types.Record {
	rec := types.Record{
		ColDescription: types.Text(e.Description),
		ColRaw:         types.Text(e.Raw),
	}

	rec[ColDate] = types.Text("")
	if e.Date != "" {
		if t, ok := types.ParseDate(e.Date); ok {
			rec[ColDate] = types.Date(t)
		} else {
			rec[ColDate] = types.Text(e.Date)
		}
	}

	rec[ColAmount] = numberValue(e.Amount)
	rec[ColBalance] = numberValue(e.Balance)
	return rec
}

func numberValue(s string) types.Value {
	if s == "" {
		return types.Text("")
	}
	if f, ok := ParseNumber(s); ok {
		return types.Number(f)
	}
	return types.Text(s)
}
