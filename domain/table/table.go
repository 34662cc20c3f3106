// Package table holds the in-memory tabular model consumed by the profiling
// core. Tables are fully materialized by a loader before profiling starts and
// are never mutated by any analyzer.
package table

import (
	"fmt"
)

// Column is an ordered sequence of typed cells under a unique name
type Column struct {
	Name   string
	Values []Value
}

// NonMissing returns the count of cells that carry a value
func (c Column) NonMissing() int {
	n := 0
	for _, v := range c.Values {
		if !v.IsMissing() {
			n++
		}
	}
	return n
}

// MissingCount returns the count of missing cells
func (c Column) MissingCount() int {
	return len(c.Values) - c.NonMissing()
}

// Floats returns the numeric interpretation of all non-missing cells, in
// order. Booleans coerce to 0/1; cells that do not coerce are skipped.
func (c Column) Floats() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if f, ok := v.AsFloat(); ok {
			out = append(out, f)
		}
	}
	return out
}

// DistinctCount returns the number of distinct non-missing display values
func (c Column) DistinctCount() int {
	seen := make(map[string]struct{}, len(c.Values))
	for _, v := range c.Values {
		if v.IsMissing() {
			continue
		}
		seen[v.Display()] = struct{}{}
	}
	return len(seen)
}

// Table is an ordered sequence of equally sized named columns.
// Rows are positionally aligned across columns.
type Table struct {
	cols  []Column
	index map[string]int
	rows  int
}

// New validates and builds a table. Column names must be unique and all
// columns must have equal length.
func New(cols []Column) (*Table, error) {
	t := &Table{
		cols:  cols,
		index: make(map[string]int, len(cols)),
	}
	for i, col := range cols {
		if col.Name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, exists := t.index[col.Name]; exists {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		t.index[col.Name] = i
		if i == 0 {
			t.rows = len(col.Values)
		} else if len(col.Values) != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, len(col.Values), t.rows)
		}
	}
	return t, nil
}

// NumRows returns the row count
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the column count
func (t *Table) NumCols() int { return len(t.cols) }

// Columns returns the ordered columns
func (t *Table) Columns() []Column { return t.cols }

// ColumnNames returns the ordered column names
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.cols[i], true
}

// HasColumn reports whether a column exists
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Row returns the cells of row i across all columns
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.cols))
	for c, col := range t.cols {
		row[c] = col.Values[i]
	}
	return row
}

// RowDisplay returns the canonical string form of row i
func (t *Table) RowDisplay(i int) []string {
	row := make([]string, len(t.cols))
	for c, col := range t.cols {
		row[c] = col.Values[i].Display()
	}
	return row
}
