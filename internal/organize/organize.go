// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package organize reshapes record tables with pure, deterministic
// transformations: filtering, column renames, stable sorting, and
// group-by aggregation. Steps never mutate their input table.
package organize

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/statement-engine/internal/statement"
	"github.com/pdiddy/statement-engine/pkg/types"
)

// Step is one transformation over a table. Implementations are pure
// functions of their input; applying a step to its own output yields
// an equal table.
type Step interface {
	Apply(t *types.Table) (*types.Table, error)
}

// Apply chains steps left to right. With no steps the input table is
// returned as a copy, never aliased.
func Apply(t *types.Table, steps []Step) (*types.Table, error) {
	out := cloneTable(t)
	for _, s := range steps {
		next, err := s.Apply(out)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

func cloneTable(t *types.Table) *types.Table {
	out := types.NewTable(append([]string(nil), t.Columns...)...)
	out.Rows = make([]types.Record, len(t.Rows))
	for i, r := range t.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}

// filterExprRe splits "column op literal": a space-free column name,
// a comparison operator, and the rest of the expression as the literal.
var filterExprRe = regexp.MustCompile(`^\s*(\S+)\s*(>=|<=|==|!=|>|<|contains)\s*(.*\S)\s*$`)

// Filter keeps rows whose column satisfies a comparison against a
// literal. Numbers compare numerically, dates chronologically, text
// lexically; "contains" is a case-insensitive substring match.
type Filter struct {
	Column string
	Op     string
	Value  string
}

// ParseFilter parses an expression like "amount > 15" or
// "description contains PIX".
func ParseFilter(expr string) (Filter, error) {
	m := filterExprRe.FindStringSubmatch(expr)
	if m == nil {
		return Filter{}, fmt.Errorf("invalid filter %q: expected \"column op value\" with op one of ==, !=, >, >=, <, <=, contains", expr)
	}
	value := strings.Trim(m[3], `"'`)
	return Filter{Column: m[1], Op: m[2], Value: value}, nil
}

func (f Filter) Apply(t *types.Table) (*types.Table, error) {
	if !t.HasColumn(f.Column) {
		return nil, fmt.Errorf("filter column %q not in table (columns: %s)", f.Column, strings.Join(t.Columns, ", "))
	}

	out := types.NewTable(append([]string(nil), t.Columns...)...)
	for _, r := range t.Rows {
		keep, err := f.match(r[f.Column])
		if err != nil {
			return nil, err
		}
		if keep {
			out.Append(r.Clone())
		}
	}
	return out, nil
}

func (f Filter) match(v types.Value) (bool, error) {
	if f.Op == "contains" {
		return strings.Contains(strings.ToUpper(v.String()), strings.ToUpper(f.Value)), nil
	}

	cmp := compareToLiteral(v, f.Value)
	switch f.Op {
	case "==":
		return cmp == 0, nil
	case "!=":
		return cmp != 0, nil
	case ">":
		return cmp > 0, nil
	case ">=":
		return cmp >= 0, nil
	case "<":
		return cmp < 0, nil
	case "<=":
		return cmp <= 0, nil
	default:
		return false, fmt.Errorf("unknown filter operator %q", f.Op)
	}
}

// compareToLiteral orders a cell against a literal: numeric when the
// cell is a number and the literal parses as one, chronological for
// dates in dd/mm/yyyy form, lexical otherwise.
func compareToLiteral(v types.Value, literal string) int {
	if v.Kind == types.KindNumber {
		if f, ok := statement.ParseNumber(literal); ok {
			switch {
			case v.Number < f:
				return -1
			case v.Number > f:
				return 1
			default:
				return 0
			}
		}
	}
	if v.Kind == types.KindDate {
		if t, ok := types.ParseDate(literal); ok {
			switch {
			case v.Date.Before(t):
				return -1
			case v.Date.After(t):
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(v.String(), literal)
}

// Rename maps old column names to new ones. Unknown old names are
// ignored, which keeps the step idempotent.
type Rename struct {
	Mapping map[string]string
}

func (r Rename) Apply(t *types.Table) (*types.Table, error) {
	columns := make([]string, len(t.Columns))
	seen := make(map[string]bool, len(t.Columns))
	for i, c := range t.Columns {
		name := c
		if to, ok := r.Mapping[c]; ok {
			name = to
		}
		if seen[name] {
			return nil, fmt.Errorf("rename collides on column %q", name)
		}
		seen[name] = true
		columns[i] = name
	}

	out := types.NewTable(columns...)
	for _, rec := range t.Rows {
		nr := make(types.Record, len(rec))
		for k, v := range rec {
			name := k
			if to, ok := r.Mapping[k]; ok {
				name = to
			}
			nr[name] = v
		}
		out.Append(nr)
	}
	return out, nil
}

// Sort orders rows by one column. The sort is stable, so rows equal on
// the key keep their input order.
type Sort struct {
	Column     string
	Descending bool
}

func (s Sort) Apply(t *types.Table) (*types.Table, error) {
	if !t.HasColumn(s.Column) {
		return nil, fmt.Errorf("sort column %q not in table (columns: %s)", s.Column, strings.Join(t.Columns, ", "))
	}

	out := cloneTable(t)
	sort.SliceStable(out.Rows, func(i, j int) bool {
		if s.Descending {
			i, j = j, i
		}
		return compareValues(out.Rows[i][s.Column], out.Rows[j][s.Column]) < 0
	})
	return out, nil
}

// compareValues orders two cells: numerically when both are numbers,
// chronologically when both are dates, lexically otherwise.
func compareValues(a, b types.Value) int {
	if a.Kind == types.KindNumber && b.Kind == types.KindNumber {
		switch {
		case a.Number < b.Number:
			return -1
		case a.Number > b.Number:
			return 1
		default:
			return 0
		}
	}
	if a.Kind == types.KindDate && b.Kind == types.KindDate {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a.String(), b.String())
}

// Aggregate groups rows by one column and sums the named numeric
// columns per group. Group order follows first appearance, and the
// output carries only the key and sum columns, so aggregating an
// already-aggregated table is a no-op.
type Aggregate struct {
	GroupBy string
	Sum     []string
}

func (a Aggregate) Apply(t *types.Table) (*types.Table, error) {
	if !t.HasColumn(a.GroupBy) {
		return nil, fmt.Errorf("group-by column %q not in table (columns: %s)", a.GroupBy, strings.Join(t.Columns, ", "))
	}
	for _, c := range a.Sum {
		if !t.HasColumn(c) {
			return nil, fmt.Errorf("sum column %q not in table (columns: %s)", c, strings.Join(t.Columns, ", "))
		}
		if c == a.GroupBy {
			return nil, fmt.Errorf("sum column %q is the group-by key", c)
		}
	}

	out := types.NewTable(append([]string{a.GroupBy}, a.Sum...)...)
	index := make(map[string]int)

	for _, rec := range t.Rows {
		key := rec[a.GroupBy].String()
		i, ok := index[key]
		if !ok {
			nr := types.Record{a.GroupBy: rec[a.GroupBy]}
			for _, c := range a.Sum {
				nr[c] = types.Number(0)
			}
			out.Append(nr)
			i = out.Len() - 1
			index[key] = i
		}
		for _, c := range a.Sum {
			if v := rec[c]; v.Kind == types.KindNumber {
				sum := out.Rows[i][c].Number + v.Number
				out.Rows[i][c] = types.Number(sum)
			}
		}
	}

	return out, nil
}
