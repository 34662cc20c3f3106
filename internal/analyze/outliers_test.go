package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabprof/domain/report"
	"tabprof/internal/testkit"
)

func TestAnalyzeOutliers_IQRFlagsExtreme(t *testing.T) {
	tbl := testkit.MustTable(
		testkit.NumericColumn("x", 1, 2, 3, 4, 100),
	)
	kinds := kindsOf(tbl, report.TypeNumeric)

	sec := AnalyzeOutliers(tbl, kinds, OutlierIQR, 3)
	assert.Equal(t, OutlierIQR, sec.Method)
	require.Len(t, sec.PerColumn, 1)

	co := sec.PerColumn[0]
	assert.False(t, co.Undefined)
	assert.Equal(t, 1, co.Count)
	assert.InDelta(t, 20.0, co.Pct, 1e-9)
	assert.Less(t, co.Lower, co.Upper)
	assert.Less(t, co.Upper, 100.0)
}

func TestAnalyzeOutliers_StdDevMethod(t *testing.T) {
	tbl := testkit.MustTable(
		testkit.NumericColumn("x", 10, 10, 10, 10, 100),
	)
	kinds := kindsOf(tbl, report.TypeNumeric)

	sec := AnalyzeOutliers(tbl, kinds, OutlierStdDev, 1)
	require.Len(t, sec.PerColumn, 1)
	assert.Equal(t, 1, sec.PerColumn[0].Count)

	// A wide multiplier pulls everything inside the fences.
	wide := AnalyzeOutliers(tbl, kinds, OutlierStdDev, 3)
	assert.Equal(t, 0, wide.PerColumn[0].Count)
}

func TestAnalyzeOutliers_TooFewValuesUndefined(t *testing.T) {
	tbl := testkit.MustTable(testkit.NumericColumn("x", 42))
	kinds := kindsOf(tbl, report.TypeNumeric)

	sec := AnalyzeOutliers(tbl, kinds, OutlierIQR, 3)
	require.Len(t, sec.PerColumn, 1)
	assert.True(t, sec.PerColumn[0].Undefined)
	assert.Equal(t, 0, sec.PerColumn[0].Count)
}

func TestAnalyzeOutliers_SkipsNonNumericColumns(t *testing.T) {
	tbl := testkit.MustTable(
		testkit.NumericColumn("x", 1, 2, 3),
		testkit.StringColumn("s", "a", "b", "c"),
		testkit.BooleanColumn("f", true, false, true),
	)
	kinds := kindsOf(tbl, report.TypeNumeric, report.TypeText, report.TypeBoolean)

	sec := AnalyzeOutliers(tbl, kinds, OutlierIQR, 3)
	require.Len(t, sec.PerColumn, 1)
	assert.Equal(t, "x", sec.PerColumn[0].Name)
}

func TestAnalyzeOutliers_NoOutliers(t *testing.T) {
	tbl := testkit.MustTable(testkit.NumericColumn("x", 1, 2, 3, 4, 5))
	kinds := kindsOf(tbl, report.TypeNumeric)

	sec := AnalyzeOutliers(tbl, kinds, OutlierIQR, 3)
	assert.Equal(t, 0, sec.PerColumn[0].Count)
	assert.Equal(t, 0.0, sec.PerColumn[0].Pct)
}
