// Package plot translates analyzer output into renderable chart
// specifications. Interactive mode always attempts a live chart; static
// mode emits the Omitted sentinel for chart kinds the static renderer
// cannot draw, so the report still completes with a visible placeholder.
package plot

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"tabprof/domain/report"
	"tabprof/domain/table"
)

const (
	minHistogramBins = 5
	maxHistogramBins = 20
)

// Builder produces plot specs for one output mode
type Builder struct {
	mode report.OutputMode
}

// NewBuilder creates a builder for the given output mode
func NewBuilder(mode report.OutputMode) *Builder {
	return &Builder{mode: mode}
}

func (b *Builder) static() bool {
	return b.mode == report.ModeStatic
}

// VariablePlot builds the per-column distribution chart. Exhaustive over
// the variable type set; undefined numeric stats yield the Omitted
// sentinel rather than an empty chart.
func (b *Builder) VariablePlot(col table.Column, kind report.VarType, bundle report.StatBundle) report.PlotSpec {
	title := fmt.Sprintf("%s distribution", col.Name)
	switch kind {
	case report.TypeNumeric:
		if bundle.Numeric == nil || bundle.Numeric.Undefined {
			return report.OmittedPlot(title, "no non-missing values to plot")
		}
		return b.histogram(title, col.Floats(), false)
	case report.TypeDate:
		if bundle.Date == nil || bundle.Date.Undefined {
			return report.OmittedPlot(title, "no non-missing values to plot")
		}
		return b.histogram(title, unixSeconds(col), true)
	case report.TypeCategorical, report.TypeText:
		if bundle.Categorical == nil || len(bundle.Categorical.Top) == 0 {
			return report.OmittedPlot(title, "no non-missing values to plot")
		}
		return b.categoryBar(title, bundle.Categorical)
	case report.TypeBoolean:
		if bundle.Boolean == nil {
			return report.OmittedPlot(title, "no non-missing values to plot")
		}
		return b.booleanBar(title, bundle.Boolean)
	}
	return report.OmittedPlot(title, fmt.Sprintf("no chart for type %s", kind))
}

// TargetPlot relates a column to the target. Both numeric yields a scatter;
// other combinations are not supported by the chart set and omit with a
// notice. Static output cannot draw scatters either.
func (b *Builder) TargetPlot(col, target table.Column, colKind, targetKind report.VarType) report.PlotSpec {
	title := fmt.Sprintf("%s vs %s", col.Name, target.Name)
	if colKind != report.TypeNumeric || targetKind != report.TypeNumeric {
		return report.OmittedPlot(title,
			fmt.Sprintf("%s/%s target charts are not supported", colKind, targetKind))
	}
	if b.static() {
		return report.OmittedPlot(title, "scatter charts are not available in static output")
	}

	sd := &report.ScatterData{XLabel: col.Name, YLabel: target.Name}
	for i := range col.Values {
		x, okX := col.Values[i].AsFloat()
		y, okY := target.Values[i].AsFloat()
		if okX && okY {
			sd.X = append(sd.X, x)
			sd.Y = append(sd.Y, y)
		}
	}
	if len(sd.X) == 0 {
		return report.OmittedPlot(title, "no pairwise-complete values to plot")
	}
	return report.PlotSpec{Kind: report.PlotScatter, Title: title, Scatter: sd}
}

// CorrelationPlot draws the coefficient matrix as a heatmap
func (b *Builder) CorrelationPlot(sec *report.CorrelationSection) report.PlotSpec {
	title := "Correlation matrix"
	if len(sec.Columns) < 2 {
		return report.OmittedPlot(title, "fewer than two numeric-compatible columns")
	}
	if b.static() {
		return report.OmittedPlot(title, "heatmap charts are not available in static output")
	}
	return report.PlotSpec{
		Kind:  report.PlotHeatmap,
		Title: title,
		Heatmap: &report.HeatmapData{
			XLabels: sec.Columns,
			YLabels: sec.Columns,
			Values:  sec.Coefficients,
			Defined: sec.Defined,
		},
	}
}

// MissingPlot draws per-column missing counts as a bar chart
func (b *Builder) MissingPlot(sec *report.MissingSection) report.PlotSpec {
	title := "Missing values per column"
	if len(sec.PerColumn) == 0 {
		return report.OmittedPlot(title, "table has no columns")
	}
	bd := &report.BarData{}
	for _, cm := range sec.PerColumn {
		bd.Labels = append(bd.Labels, cm.Name)
		bd.Values = append(bd.Values, float64(cm.Count))
	}
	return report.PlotSpec{Kind: report.PlotBar, Title: title, Static: b.static(), Bar: bd}
}

// MissingPatternPlot draws the pairwise co-missing matrix as a heatmap
func (b *Builder) MissingPatternPlot(sec *report.MissingSection) report.PlotSpec {
	title := "Co-missing pattern"
	if len(sec.CoMissingColumns) == 0 {
		return report.OmittedPlot(title, "table has no columns")
	}
	if b.static() {
		return report.OmittedPlot(title, "heatmap charts are not available in static output")
	}
	n := len(sec.CoMissingColumns)
	values := make([][]float64, n)
	defined := make([][]bool, n)
	for i := 0; i < n; i++ {
		values[i] = make([]float64, n)
		defined[i] = make([]bool, n)
		for j := 0; j < n; j++ {
			values[i][j] = float64(sec.CoMissingCounts[i][j])
			defined[i][j] = true
		}
	}
	return report.PlotSpec{
		Kind:  report.PlotHeatmap,
		Title: title,
		Heatmap: &report.HeatmapData{
			XLabels: sec.CoMissingColumns,
			YLabels: sec.CoMissingColumns,
			Values:  values,
			Defined: defined,
		},
	}
}

// DuplicatePlot draws the preview group counts as a bar chart
func (b *Builder) DuplicatePlot(sec *report.DuplicateSection) report.PlotSpec {
	title := "Duplicate row patterns"
	if len(sec.Groups) == 0 {
		return report.OmittedPlot(title, "no duplicate rows detected")
	}
	bd := &report.BarData{}
	for _, g := range sec.Groups {
		bd.Labels = append(bd.Labels, fmt.Sprintf("row %d pattern", g.FirstRow))
		bd.Values = append(bd.Values, float64(g.Count))
	}
	return report.PlotSpec{Kind: report.PlotBar, Title: title, Static: b.static(), Bar: bd}
}

// histogram builds equal-width bins sized by sqrt(n), clamped to a sane
// range. Constant series get one unit-width bin around the value.
func (b *Builder) histogram(title string, values []float64, timeAxis bool) report.PlotSpec {
	if len(values) == 0 {
		return report.OmittedPlot(title, "no non-missing values to plot")
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	nBins := int(math.Sqrt(float64(len(values))))
	if nBins < minHistogramBins {
		nBins = minHistogramBins
	}
	if nBins > maxHistogramBins {
		nBins = maxHistogramBins
	}
	if min == max {
		min -= 0.5
		max += 0.5
		nBins = 1
	}

	bins := floats.Span(make([]float64, nBins+1), min, max)
	counts := make([]int, nBins)
	width := (max - min) / float64(nBins)
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= nBins {
			idx = nBins - 1 // max value belongs to the last bin
		}
		counts[idx]++
	}

	return report.PlotSpec{
		Kind:   report.PlotHistogram,
		Title:  title,
		Static: b.static(),
		Histogram: &report.HistogramData{
			Bins:     bins,
			Counts:   counts,
			TimeAxis: timeAxis,
		},
	}
}

func (b *Builder) categoryBar(title string, cs *report.CategoricalStats) report.PlotSpec {
	bd := &report.BarData{}
	for _, cc := range cs.Top {
		bd.Labels = append(bd.Labels, cc.Value)
		bd.Values = append(bd.Values, float64(cc.Count))
	}
	return report.PlotSpec{Kind: report.PlotBar, Title: title, Static: b.static(), Bar: bd}
}

func (b *Builder) booleanBar(title string, bs *report.BooleanStats) report.PlotSpec {
	bd := &report.BarData{
		Labels: []string{"true", "false", "missing"},
		Values: []float64{float64(bs.True), float64(bs.False), float64(bs.Missing)},
	}
	return report.PlotSpec{Kind: report.PlotBar, Title: title, Static: b.static(), Bar: bd}
}

func unixSeconds(col table.Column) []float64 {
	out := make([]float64, 0, len(col.Values))
	for _, v := range col.Values {
		if t, ok := v.AsTime(); ok {
			out = append(out, float64(t.Unix()))
		}
	}
	return out
}
