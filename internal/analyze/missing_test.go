package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabprof/domain/table"
	"tabprof/internal/testkit"
)

func TestAnalyzeMissing_PerColumn(t *testing.T) {
	tbl := testkit.MustTable(
		table.Column{Name: "a", Values: []table.Value{
			table.NewNumericValue(1),
			table.NewMissingValue(),
			table.NewMissingValue(),
			table.NewNumericValue(4),
		}},
		testkit.NumericColumn("b", 1, 2, 3, 4),
	)

	sec := AnalyzeMissing(tbl)
	assert.Equal(t, 2, sec.TotalMissing)
	assert.Equal(t, 1, sec.ColumnsWithMissing)
	assert.InDelta(t, 25.0, sec.MissingPct, 1e-9) // 2 of 8 cells

	require.Len(t, sec.PerColumn, 2)
	assert.Equal(t, "a", sec.PerColumn[0].Name)
	assert.Equal(t, 2, sec.PerColumn[0].Count)
	assert.InDelta(t, 50.0, sec.PerColumn[0].Pct, 1e-9)
	assert.Equal(t, 0, sec.PerColumn[1].Count)
}

func TestAnalyzeMissing_CoMissingMatrix(t *testing.T) {
	// Row 0: both missing. Row 1: only a. Row 2: complete.
	tbl := testkit.MustTable(
		table.Column{Name: "a", Values: []table.Value{
			table.NewMissingValue(),
			table.NewMissingValue(),
			table.NewNumericValue(3),
		}},
		table.Column{Name: "b", Values: []table.Value{
			table.NewMissingValue(),
			table.NewNumericValue(2),
			table.NewNumericValue(3),
		}},
	)

	sec := AnalyzeMissing(tbl)
	require.Equal(t, []string{"a", "b"}, sec.CoMissingColumns)
	// Diagonal carries the per-column counts.
	assert.Equal(t, 2, sec.CoMissingCounts[0][0])
	assert.Equal(t, 1, sec.CoMissingCounts[1][1])
	// Off-diagonal counts rows where both are missing, symmetric.
	assert.Equal(t, 1, sec.CoMissingCounts[0][1])
	assert.Equal(t, 1, sec.CoMissingCounts[1][0])
}

func TestAnalyzeMissing_NoMissingData(t *testing.T) {
	tbl := testkit.MustTable(testkit.NumericColumn("a", 1, 2))

	sec := AnalyzeMissing(tbl)
	assert.Equal(t, 0, sec.TotalMissing)
	assert.Equal(t, 0, sec.ColumnsWithMissing)
	assert.Equal(t, 0.0, sec.MissingPct)
}

func TestAnalyzeMissing_EmptyTable(t *testing.T) {
	sec := AnalyzeMissing(testkit.MustTable())
	assert.Equal(t, 0, sec.TotalMissing)
	assert.Equal(t, 0.0, sec.MissingPct)
	assert.Empty(t, sec.PerColumn)
}
