// Package testkit builds small synthetic tables for tests. Every builder
// is deterministic; generators take an explicit seed.
package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"tabprof/domain/table"
)

// NumericColumn builds a numeric column from literal values.
// NaN entries become missing cells.
func NumericColumn(name string, values ...float64) table.Column {
	vals := make([]table.Value, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			vals[i] = table.NewMissingValue()
			continue
		}
		vals[i] = table.NewNumericValue(v)
	}
	return table.Column{Name: name, Values: vals}
}

// StringColumn builds a column of raw strings; empty strings become missing
func StringColumn(name string, values ...string) table.Column {
	vals := make([]table.Value, len(values))
	for i, v := range values {
		vals[i] = table.NewStringValue(v)
	}
	return table.Column{Name: name, Values: vals}
}

// BooleanColumn builds a boolean column from literal values
func BooleanColumn(name string, values ...bool) table.Column {
	vals := make([]table.Value, len(values))
	for i, v := range values {
		vals[i] = table.NewBooleanValue(v)
	}
	return table.Column{Name: name, Values: vals}
}

// DateColumn builds a timestamp column from day offsets relative to a
// fixed epoch so tests never depend on the wall clock.
func DateColumn(name string, dayOffsets ...int) table.Column {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	vals := make([]table.Value, len(dayOffsets))
	for i, d := range dayOffsets {
		vals[i] = table.NewTimestampValue(base.AddDate(0, 0, d))
	}
	return table.Column{Name: name, Values: vals}
}

// MissingColumn builds a column with all cells missing
func MissingColumn(name string, n int) table.Column {
	vals := make([]table.Value, n)
	for i := range vals {
		vals[i] = table.NewMissingValue()
	}
	return table.Column{Name: name, Values: vals}
}

// MustTable builds a table from columns and panics on invalid shape.
// Test-only; production code goes through table.New.
func MustTable(cols ...table.Column) *table.Table {
	t, err := table.New(cols)
	if err != nil {
		panic(fmt.Sprintf("testkit: invalid table: %v", err))
	}
	return t
}

// RandomTable generates a mixed-type table with a deterministic seed:
// one numeric, one categorical, one boolean and one date column.
func RandomTable(seed int64, rows int) *table.Table {
	rng := rand.New(rand.NewSource(seed))
	labels := []string{"alpha", "beta", "gamma"}

	num := make([]table.Value, rows)
	cat := make([]table.Value, rows)
	boo := make([]table.Value, rows)
	dat := make([]table.Value, rows)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < rows; i++ {
		num[i] = table.NewNumericValue(rng.NormFloat64()*10 + 50)
		cat[i] = table.NewStringValue(labels[rng.Intn(len(labels))])
		boo[i] = table.NewBooleanValue(rng.Intn(2) == 1)
		dat[i] = table.NewTimestampValue(base.AddDate(0, 0, rng.Intn(365)))
	}
	return MustTable(
		table.Column{Name: "amount", Values: num},
		table.Column{Name: "segment", Values: cat},
		table.Column{Name: "active", Values: boo},
		table.Column{Name: "signup", Values: dat},
	)
}
