// Package classify assigns exactly one variable type to each column.
// Storage type decides first; string storage falls through to a
// distinct-value ratio check that separates categorical from free text.
package classify

import (
	"tabprof/domain/report"
	"tabprof/domain/table"
)

// DefaultCategoricalThreshold is the distinct/non-missing ratio below which
// string columns are treated as categorical rather than text.
const DefaultCategoricalThreshold = 0.5

// Classifier infers a report.VarType for a column
type Classifier struct {
	categoricalThreshold float64
}

// New creates a classifier. A threshold outside (0, 1] falls back to the
// default.
func New(categoricalThreshold float64) *Classifier {
	if categoricalThreshold <= 0 || categoricalThreshold > 1 {
		categoricalThreshold = DefaultCategoricalThreshold
	}
	return &Classifier{categoricalThreshold: categoricalThreshold}
}

// Classify assigns exactly one type variant to the column. A column with
// zero non-missing values still receives a type: the dominant storage type
// when one exists, otherwise text. Classification never fails.
func (c *Classifier) Classify(col table.Column) report.VarType {
	storage := storageType(col)

	switch storage {
	case table.ValueTypeNumeric:
		return report.TypeNumeric
	case table.ValueTypeBoolean:
		return report.TypeBoolean
	case table.ValueTypeTimestamp:
		return report.TypeDate
	}

	// String or mixed storage: decide categorical vs text by cardinality.
	nonMissing := col.NonMissing()
	if nonMissing == 0 {
		return report.TypeText
	}
	ratio := float64(col.DistinctCount()) / float64(nonMissing)
	if ratio < c.categoricalThreshold {
		return report.TypeCategorical
	}
	return report.TypeText
}

// storageType returns the unanimous storage type of the non-missing cells,
// or ValueTypeString when the column is empty, all-missing or mixed.
func storageType(col table.Column) table.ValueType {
	found := table.ValueTypeMissing
	for _, v := range col.Values {
		if v.IsMissing() {
			continue
		}
		if found == table.ValueTypeMissing {
			found = v.Type
			continue
		}
		if v.Type != found {
			return table.ValueTypeString
		}
	}
	if found == table.ValueTypeMissing {
		return table.ValueTypeString
	}
	return found
}
