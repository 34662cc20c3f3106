package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabprof/domain/report"
	"tabprof/domain/table"
	"tabprof/internal/config"
	"tabprof/internal/errors"
	"tabprof/internal/testkit"
)

func mixedTable() *table.Table {
	return testkit.MustTable(
		testkit.NumericColumn("amount", 10, 20, 30, 40, 50),
		testkit.StringColumn("segment", "a", "b", "a", "a", "b"),
		testkit.BooleanColumn("active", true, false, true, true, false),
		testkit.DateColumn("signup", 0, 30, 60, 90, 120),
	)
}

func TestBuildReport_FullRun(t *testing.T) {
	svc, err := NewProfileService(config.Default(), nil)
	require.NoError(t, err)

	rep, err := svc.BuildReport(mixedTable())
	require.NoError(t, err)

	assert.False(t, rep.ID.String() == "")
	assert.Equal(t, "Data Profile Report", rep.Title)
	assert.WithinDuration(t, time.Now(), rep.GeneratedAt, 5*time.Second)

	require.NotNil(t, rep.Overview)
	assert.Equal(t, 5, rep.Overview.Rows)
	assert.Equal(t, 4, rep.Overview.Columns)
	assert.Equal(t, 1, rep.Overview.NumericCols)
	assert.Equal(t, 1, rep.Overview.CategoricalCols)
	assert.Equal(t, 1, rep.Overview.BooleanCols)
	assert.Equal(t, 1, rep.Overview.DateCols)

	require.Len(t, rep.Variables, 4)
	for _, v := range rep.Variables {
		assert.False(t, v.Failed, "column %s should profile cleanly", v.Name)
	}

	require.NotNil(t, rep.Correlations)
	assert.Equal(t, []string{"amount", "active"}, rep.Correlations.Columns)
	require.NotNil(t, rep.Missing)
	require.NotNil(t, rep.Duplicates)
	require.NotNil(t, rep.Outliers)
	require.NotNil(t, rep.Sample)
	assert.Empty(t, rep.Diagnostics)
}

func TestBuildReport_Deterministic(t *testing.T) {
	svc, err := NewProfileService(config.Default(), nil)
	require.NoError(t, err)

	tbl := mixedTable()
	a, err := svc.BuildReport(tbl)
	require.NoError(t, err)
	b, err := svc.BuildReport(tbl)
	require.NoError(t, err)

	// Identity fields differ per run; everything computed must not.
	a.ID, b.ID = "", ""
	a.GeneratedAt, b.GeneratedAt = time.Time{}, time.Time{}
	assert.Equal(t, a, b)
}

func TestBuildReport_ExcludedSectionsAbsent(t *testing.T) {
	opts := config.Default()
	opts.ExcludeSections = []string{"correlations", "sample", "outliers"}
	svc, err := NewProfileService(opts, nil)
	require.NoError(t, err)

	rep, err := svc.BuildReport(mixedTable())
	require.NoError(t, err)
	assert.Nil(t, rep.Correlations)
	assert.Nil(t, rep.Sample)
	assert.Nil(t, rep.Outliers)
	assert.NotNil(t, rep.Overview)
	assert.NotNil(t, rep.Missing)
}

func TestBuildReport_TargetNotFound(t *testing.T) {
	opts := config.Default()
	opts.Target = "nonexistent"
	svc, err := NewProfileService(opts, nil)
	require.NoError(t, err)

	_, err = svc.BuildReport(mixedTable())
	require.Error(t, err)
	assert.True(t, errors.IsConfigInvalid(err))
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestBuildReport_TargetExcludedFromVariables(t *testing.T) {
	opts := config.Default()
	opts.Target = "amount"
	svc, err := NewProfileService(opts, nil)
	require.NoError(t, err)

	rep, err := svc.BuildReport(mixedTable())
	require.NoError(t, err)

	require.Len(t, rep.Variables, 3)
	for _, v := range rep.Variables {
		assert.NotEqual(t, "amount", v.Name)
		require.NotNil(t, v.TargetPlot)
	}
	assert.NotEmpty(t, rep.Correlations.Importance)
}

func TestBuildReport_DegenerateTables(t *testing.T) {
	svc, err := NewProfileService(config.Default(), nil)
	require.NoError(t, err)

	tests := []struct {
		name string
		tbl  *table.Table
	}{
		{"zero rows", testkit.MustTable(table.Column{Name: "a"})},
		{"one row", testkit.MustTable(testkit.NumericColumn("a", 1))},
		{"all missing", testkit.MustTable(testkit.MissingColumn("a", 3))},
		{"no columns", testkit.MustTable()},
		{"constant column", testkit.MustTable(testkit.NumericColumn("a", 5, 5, 5))},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rep, err := svc.BuildReport(tc.tbl)
			require.NoError(t, err)
			assert.NotNil(t, rep.Overview)
			assert.Empty(t, rep.Diagnostics)
		})
	}
}

func TestBuildReport_AllMissingColumnStats(t *testing.T) {
	svc, err := NewProfileService(config.Default(), nil)
	require.NoError(t, err)

	rep, err := svc.BuildReport(testkit.MustTable(testkit.MissingColumn("m", 4)))
	require.NoError(t, err)

	require.Len(t, rep.Variables, 1)
	v := rep.Variables[0]
	assert.Equal(t, report.TypeText, v.Type)
	assert.InDelta(t, 100.0, v.Stats.Common.MissingPct, 1e-9)
	assert.True(t, v.Plot.IsOmitted())
}

func TestBuildReport_OnColumnHook(t *testing.T) {
	svc, err := NewProfileService(config.Default(), nil)
	require.NoError(t, err)

	var seen []string
	svc.OnColumn = func(name string, index, total int) {
		seen = append(seen, name)
		assert.Equal(t, 4, total)
	}

	_, err = svc.BuildReport(mixedTable())
	require.NoError(t, err)
	assert.Equal(t, []string{"amount", "segment", "active", "signup"}, seen)
}

func TestNewProfileService_InvalidOptions(t *testing.T) {
	opts := config.Default()
	opts.Theme = "sepia"
	_, err := NewProfileService(opts, nil)
	require.Error(t, err)
	assert.True(t, errors.IsConfigInvalid(err))
}

func TestBuildReport_StaticModeOmitsHeatmaps(t *testing.T) {
	opts := config.Default()
	opts.OutputMode = report.ModeStatic
	svc, err := NewProfileService(opts, nil)
	require.NoError(t, err)

	rep, err := svc.BuildReport(mixedTable())
	require.NoError(t, err)
	assert.True(t, rep.Correlations.Plot.IsOmitted())
	assert.True(t, rep.Missing.PatternPlot.IsOmitted())
	// Bar charts still render statically.
	assert.False(t, rep.Missing.Plot.IsOmitted())
}
