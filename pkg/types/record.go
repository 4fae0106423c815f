// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data model shared across pipeline stages:
// scalar cell values, records, tables, and stage configuration.
package types

import (
	"strconv"
	"strings"
	"time"
)

// ValueKind identifies the scalar type held by a Value.
type ValueKind string

const (
	KindText   ValueKind = "text"
	KindNumber ValueKind = "number"
	KindDate   ValueKind = "date"
)

// dateLayout is the statement date format (dd/mm/yyyy) used throughout
// the pipeline, matching the bank statement sources.
const dateLayout = "02/01/2006"

// Value is one scalar cell: text, number, or date. Exactly one of the
// payload fields is meaningful, selected by Kind.
type Value struct {
	Kind   ValueKind `json:"kind" yaml:"kind"`
	Text   string    `json:"text,omitempty" yaml:"text,omitempty"`
	Number float64   `json:"number,omitempty" yaml:"number,omitempty"`
	Date   time.Time `json:"date,omitempty" yaml:"date,omitempty"`
}

// Text builds a text Value.
func Text(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// Number builds a numeric Value.
func Number(f float64) Value {
	return Value{Kind: KindNumber, Number: f}
}

// Date builds a date Value truncated to day precision.
func Date(t time.Time) Value {
	return Value{Kind: KindDate, Date: t}
}

// String renders the value for report output. Numbers use a comma
// decimal separator (statement convention) and dates render as
// dd/mm/yyyy. Text is returned verbatim.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		s := strconv.FormatFloat(v.Number, 'f', -1, 64)
		return strings.Replace(s, ".", ",", 1)
	case KindDate:
		if v.Date.IsZero() {
			return ""
		}
		return v.Date.Format(dateLayout)
	default:
		return v.Text
	}
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNumber:
		return v.Number == o.Number
	case KindDate:
		return v.Date.Equal(o.Date)
	default:
		return v.Text == o.Text
	}
}

// ParseDate parses a statement date in dd/mm/yyyy form.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Record is one logical row: a mapping from column name to scalar value.
type Record map[string]Value

// Clone returns a shallow copy of the record. Values are immutable, so
// a key-level copy is sufficient.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Equal reports whether two records hold the same columns and values.
func (r Record) Equal(o Record) bool {
	if len(r) != len(o) {
		return false
	}
	for k, v := range r {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Table is an ordered sequence of records with a declared column order.
// Row order preserves the input order unless an explicit sort or
// aggregate step is applied downstream.
type Table struct {
	Columns []string `json:"columns" yaml:"columns"`
	Rows    []Record `json:"rows" yaml:"rows"`
}

// NewTable builds an empty table with the given column order.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Append adds a row to the table.
func (t *Table) Append(r Record) {
	t.Rows = append(t.Rows, r)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Equal reports whether two tables have the same column order and the
// same rows in the same order.
func (t *Table) Equal(o *Table) bool {
	if len(t.Columns) != len(o.Columns) || len(t.Rows) != len(o.Rows) {
		return false
	}
	for i, c := range t.Columns {
		if o.Columns[i] != c {
			return false
		}
	}
	for i, r := range t.Rows {
		if !r.Equal(o.Rows[i]) {
			return false
		}
	}
	return true
}
