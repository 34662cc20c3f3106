package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabprof/domain/report"
	"tabprof/domain/table"
	"tabprof/internal/testkit"
)

func TestCompute_NumericBundle(t *testing.T) {
	e := NewEngine(DefaultTopK)
	col := testkit.NumericColumn("n", 1, 2, 3, 4, 5)

	bundle := e.Compute(col, report.TypeNumeric)
	require.NotNil(t, bundle.Numeric)
	assert.Nil(t, bundle.Categorical)
	assert.Nil(t, bundle.Boolean)
	assert.Nil(t, bundle.Date)

	ns := bundle.Numeric
	assert.False(t, ns.Undefined)
	assert.InDelta(t, 3.0, ns.Mean, 1e-9)
	assert.InDelta(t, 3.0, ns.Median, 1e-9)
	assert.InDelta(t, 1.0, ns.Min, 1e-9)
	assert.InDelta(t, 5.0, ns.Max, 1e-9)
	// Sample standard deviation, n-1 denominator.
	assert.InDelta(t, 1.5811, ns.StdDev, 1e-3)
	assert.LessOrEqual(t, ns.Q1, ns.Median)
	assert.GreaterOrEqual(t, ns.Q3, ns.Median)

	assert.Equal(t, 5, bundle.Common.Count)
	assert.Equal(t, 0, bundle.Common.Missing)
	assert.Equal(t, 5, bundle.Common.Distinct)
}

func TestCompute_NumericAllMissing(t *testing.T) {
	e := NewEngine(DefaultTopK)
	bundle := e.Compute(testkit.MissingColumn("m", 3), report.TypeNumeric)

	require.NotNil(t, bundle.Numeric)
	assert.True(t, bundle.Numeric.Undefined)
	assert.Equal(t, 0, bundle.Common.Count)
	assert.Equal(t, 3, bundle.Common.Missing)
	assert.InDelta(t, 100.0, bundle.Common.MissingPct, 1e-9)
}

func TestCompute_SingleValue(t *testing.T) {
	e := NewEngine(DefaultTopK)
	bundle := e.Compute(testkit.NumericColumn("n", 7), report.TypeNumeric)

	ns := bundle.Numeric
	require.NotNil(t, ns)
	assert.False(t, ns.Undefined)
	assert.InDelta(t, 7.0, ns.Mean, 1e-9)
	assert.InDelta(t, 7.0, ns.Min, 1e-9)
	assert.InDelta(t, 7.0, ns.Max, 1e-9)
	assert.InDelta(t, 7.0, ns.Median, 1e-9)
	// One value has no spread.
	assert.InDelta(t, 0.0, ns.StdDev, 1e-9)
	assert.InDelta(t, 7.0, ns.Q1, 1e-9)
	assert.InDelta(t, 7.0, ns.Q3, 1e-9)
}

func TestCompute_ZeroRows(t *testing.T) {
	e := NewEngine(DefaultTopK)
	bundle := e.Compute(table.Column{Name: "empty"}, report.TypeNumeric)

	assert.True(t, bundle.Numeric.Undefined)
	assert.Equal(t, 0, bundle.Common.Count)
	// Zero rows report 0%, not NaN.
	assert.Equal(t, 0.0, bundle.Common.MissingPct)
}

func TestCompute_CategoricalTopK(t *testing.T) {
	e := NewEngine(2)
	col := testkit.StringColumn("s", "a", "b", "a", "c", "a", "b", "")

	bundle := e.Compute(col, report.TypeCategorical)
	cs := bundle.Categorical
	require.NotNil(t, cs)

	require.Len(t, cs.Top, 2)
	assert.Equal(t, report.CategoryCount{Value: "a", Count: 3, Pct: 50}, cs.Top[0])
	assert.Equal(t, "b", cs.Top[1].Value)
	assert.Equal(t, 2, cs.Top[1].Count)
	assert.Equal(t, "a", cs.Mode)
	// "c" fell off the table but its mass is accounted for.
	assert.Equal(t, 1, cs.OtherCount)
}

func TestCompute_CategoricalTiesKeepFirstSeenOrder(t *testing.T) {
	e := NewEngine(DefaultTopK)
	col := testkit.StringColumn("s", "x", "y", "x", "y")

	cs := e.Compute(col, report.TypeCategorical).Categorical
	require.Len(t, cs.Top, 2)
	assert.Equal(t, "x", cs.Top[0].Value)
	assert.Equal(t, "y", cs.Top[1].Value)
}

func TestCompute_BooleanCounts(t *testing.T) {
	e := NewEngine(DefaultTopK)
	col := table.Column{Name: "b", Values: []table.Value{
		table.NewBooleanValue(true),
		table.NewBooleanValue(true),
		table.NewBooleanValue(false),
		table.NewMissingValue(),
	}}

	bs := e.Compute(col, report.TypeBoolean).Boolean
	require.NotNil(t, bs)
	assert.Equal(t, 2, bs.True)
	assert.Equal(t, 1, bs.False)
	assert.Equal(t, 1, bs.Missing)
}

func TestCompute_DateRange(t *testing.T) {
	e := NewEngine(DefaultTopK)
	col := testkit.DateColumn("d", 10, 0, 5)

	ds := e.Compute(col, report.TypeDate).Date
	require.NotNil(t, ds)
	assert.False(t, ds.Undefined)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ds.Min)
	assert.Equal(t, time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), ds.Max)
	assert.Equal(t, 10*24*time.Hour, ds.Range)
}

func TestCompute_DateAllMissing(t *testing.T) {
	e := NewEngine(DefaultTopK)
	ds := e.Compute(testkit.MissingColumn("d", 2), report.TypeDate).Date
	require.NotNil(t, ds)
	assert.True(t, ds.Undefined)
}

func TestNewEngine_InvalidTopKFallsBack(t *testing.T) {
	assert.Equal(t, DefaultTopK, NewEngine(0).topK)
	assert.Equal(t, DefaultTopK, NewEngine(-5).topK)
	assert.Equal(t, 3, NewEngine(3).topK)
}
