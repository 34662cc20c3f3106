package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabprof/domain/report"
	"tabprof/domain/table"
	"tabprof/internal/testkit"
)

func kindsOf(tbl *table.Table, kinds ...report.VarType) map[string]report.VarType {
	out := make(map[string]report.VarType)
	for i, name := range tbl.ColumnNames() {
		out[name] = kinds[i]
	}
	return out
}

func TestCorrelate_PerfectLinear(t *testing.T) {
	tbl := testkit.MustTable(
		testkit.NumericColumn("x", 1, 2, 3),
		testkit.NumericColumn("y", 2, 4, 6),
	)
	kinds := kindsOf(tbl, report.TypeNumeric, report.TypeNumeric)

	sec := Correlate(tbl, kinds, MethodPearson, "")
	require.Equal(t, []string{"x", "y"}, sec.Columns)

	r, ok := sec.Coefficient("x", "y")
	require.True(t, ok)
	assert.InDelta(t, 1.0, r, 1e-9)
}

func TestCorrelate_NegativeAndSymmetric(t *testing.T) {
	tbl := testkit.MustTable(
		testkit.NumericColumn("x", 1, 2, 3),
		testkit.NumericColumn("y", 6, 4, 2),
	)
	kinds := kindsOf(tbl, report.TypeNumeric, report.TypeNumeric)

	sec := Correlate(tbl, kinds, MethodPearson, "")
	assert.InDelta(t, -1.0, sec.Coefficients[0][1], 1e-9)
	assert.Equal(t, sec.Coefficients[0][1], sec.Coefficients[1][0])
	assert.InDelta(t, 1.0, sec.Coefficients[0][0], 1e-9)
}

func TestCorrelate_ZeroVarianceUndefined(t *testing.T) {
	tbl := testkit.MustTable(
		testkit.NumericColumn("const", 5, 5, 5),
		testkit.NumericColumn("x", 1, 2, 3),
	)
	kinds := kindsOf(tbl, report.TypeNumeric, report.TypeNumeric)

	sec := Correlate(tbl, kinds, MethodPearson, "")
	_, ok := sec.Coefficient("const", "x")
	assert.False(t, ok, "zero variance pair must stay undefined, not zero")
}

func TestCorrelate_TooFewPairwiseSamples(t *testing.T) {
	tbl := testkit.MustTable(
		table.Column{Name: "a", Values: []table.Value{
			table.NewNumericValue(1),
			table.NewMissingValue(),
			table.NewMissingValue(),
		}},
		table.Column{Name: "b", Values: []table.Value{
			table.NewNumericValue(2),
			table.NewNumericValue(3),
			table.NewNumericValue(4),
		}},
	)
	kinds := kindsOf(tbl, report.TypeNumeric, report.TypeNumeric)

	sec := Correlate(tbl, kinds, MethodPearson, "")
	_, ok := sec.Coefficient("a", "b")
	assert.False(t, ok)
}

func TestCorrelate_PairwiseCompleteRows(t *testing.T) {
	// Row 2 is incomplete and must be dropped from the pair, leaving a
	// perfectly linear remainder.
	tbl := testkit.MustTable(
		table.Column{Name: "a", Values: []table.Value{
			table.NewNumericValue(1),
			table.NewNumericValue(2),
			table.NewMissingValue(),
			table.NewNumericValue(3),
		}},
		testkit.NumericColumn("b", 10, 20, 999, 30),
	)
	kinds := kindsOf(tbl, report.TypeNumeric, report.TypeNumeric)

	sec := Correlate(tbl, kinds, MethodPearson, "")
	r, ok := sec.Coefficient("a", "b")
	require.True(t, ok)
	assert.InDelta(t, 1.0, r, 1e-9)
}

func TestCorrelate_BooleansCoerced(t *testing.T) {
	tbl := testkit.MustTable(
		testkit.BooleanColumn("flag", true, false, true),
		testkit.NumericColumn("x", 1, 0, 1),
	)
	kinds := kindsOf(tbl, report.TypeBoolean, report.TypeNumeric)

	sec := Correlate(tbl, kinds, MethodPearson, "")
	require.Equal(t, []string{"flag", "x"}, sec.Columns)
	r, ok := sec.Coefficient("flag", "x")
	require.True(t, ok)
	assert.InDelta(t, 1.0, r, 1e-9)
}

func TestCorrelate_ExcludesNonNumeric(t *testing.T) {
	tbl := testkit.MustTable(
		testkit.NumericColumn("x", 1, 2, 3),
		testkit.StringColumn("s", "a", "b", "a"),
		testkit.DateColumn("d", 0, 1, 2),
	)
	kinds := kindsOf(tbl, report.TypeNumeric, report.TypeCategorical, report.TypeDate)

	sec := Correlate(tbl, kinds, MethodPearson, "")
	assert.Equal(t, []string{"x"}, sec.Columns)
}

func TestCorrelate_SpearmanMonotonic(t *testing.T) {
	// Nonlinear but strictly monotone: Spearman sees a perfect
	// association where Pearson would not.
	tbl := testkit.MustTable(
		testkit.NumericColumn("x", 1, 2, 3, 4),
		testkit.NumericColumn("y", 1, 4, 9, 16),
	)
	kinds := kindsOf(tbl, report.TypeNumeric, report.TypeNumeric)

	sec := Correlate(tbl, kinds, MethodSpearman, "")
	r, ok := sec.Coefficient("x", "y")
	require.True(t, ok)
	assert.InDelta(t, 1.0, r, 1e-9)
}

func TestRank_AveragesTies(t *testing.T) {
	ranks := rank([]float64{10, 20, 20, 30})
	assert.Equal(t, []float64{1, 2.5, 2.5, 4}, ranks)
}

func TestCorrelate_TargetImportance(t *testing.T) {
	tbl := testkit.MustTable(
		testkit.NumericColumn("target", 1, 2, 3, 4),
		testkit.NumericColumn("strong", 2, 4, 6, 8),
		testkit.NumericColumn("weak", 5, 1, 4, 2),
	)
	kinds := kindsOf(tbl, report.TypeNumeric, report.TypeNumeric, report.TypeNumeric)

	sec := Correlate(tbl, kinds, MethodPearson, "target")
	require.NotEmpty(t, sec.Importance)
	assert.Equal(t, "strong", sec.Importance[0].Column)
	assert.InDelta(t, 1.0, sec.Importance[0].Score, 1e-9)
	for _, fi := range sec.Importance {
		assert.NotEqual(t, "target", fi.Column)
		assert.GreaterOrEqual(t, fi.Score, 0.0)
	}
}

func TestCorrelate_NoEligibleColumns(t *testing.T) {
	tbl := testkit.MustTable(testkit.StringColumn("s", "a", "b"))
	kinds := kindsOf(tbl, report.TypeText)

	sec := Correlate(tbl, kinds, MethodPearson, "")
	assert.Empty(t, sec.Columns)
	assert.Empty(t, sec.Coefficients)
}
