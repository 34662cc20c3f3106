// Package analyze holds the whole-table analyzers: correlation,
// missingness, duplicates and outliers. Every analyzer reads the table
// without mutating it and produces explicit empty/undefined results for
// degenerate input instead of failing.
package analyze

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"tabprof/domain/report"
	"tabprof/domain/table"
)

// Correlation method identifiers, matching the configuration enum
const (
	MethodPearson  = "pearson"
	MethodSpearman = "spearman"
)

// minCorrelationSamples is the smallest pairwise-complete sample that
// produces a defined coefficient.
const minCorrelationSamples = 2

// Correlate computes the pairwise association matrix over numeric-compatible
// columns. Boolean columns are coerced to 0/1 and included. Pairs are
// evaluated over pairwise-complete observations; pairs with too few samples
// or zero variance stay undefined and are omitted downstream, never zeroed.
// A non-empty target adds per-feature importance when the target is among
// the eligible columns.
func Correlate(tbl *table.Table, kinds map[string]report.VarType, method, target string) *report.CorrelationSection {
	eligible := make([]string, 0, tbl.NumCols())
	for _, name := range tbl.ColumnNames() {
		switch kinds[name] {
		case report.TypeNumeric, report.TypeBoolean:
			eligible = append(eligible, name)
		}
	}

	n := len(eligible)
	sec := &report.CorrelationSection{
		Method:       method,
		Columns:      eligible,
		Coefficients: make([][]float64, n),
		Defined:      make([][]bool, n),
		Target:       target,
	}
	for i := range sec.Coefficients {
		sec.Coefficients[i] = make([]float64, n)
		sec.Defined[i] = make([]bool, n)
	}
	if n == 0 {
		return sec
	}

	cols := make([]table.Column, n)
	for i, name := range eligible {
		col, _ := tbl.Column(name)
		cols[i] = col
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r, ok := pairCoefficient(cols[i], cols[j], method)
			if !ok {
				continue
			}
			sec.Coefficients[i][j] = r
			sec.Coefficients[j][i] = r
			sec.Defined[i][j] = true
			sec.Defined[j][i] = true
		}
	}

	if target != "" {
		sec.Importance = targetImportance(sec, target)
	}
	return sec
}

// pairCoefficient computes the coefficient over pairwise-complete rows
func pairCoefficient(a, b table.Column, method string) (float64, bool) {
	x := make([]float64, 0, len(a.Values))
	y := make([]float64, 0, len(b.Values))
	for i := range a.Values {
		fa, oka := a.Values[i].AsFloat()
		fb, okb := b.Values[i].AsFloat()
		if oka && okb {
			x = append(x, fa)
			y = append(y, fb)
		}
	}
	if len(x) < minCorrelationSamples {
		return 0, false
	}
	if method == MethodSpearman {
		x = rank(x)
		y = rank(y)
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		// Zero variance in either series: coefficient is undefined.
		return 0, false
	}
	return r, true
}

// rank converts values to fractional ranks with ties averaged
func rank(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	ranks := make([]float64, len(values))
	i := 0
	for i < len(idx) {
		j := i
		for j+1 < len(idx) && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		// Average rank across the tie run (ranks are 1-based).
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}
	return ranks
}

// targetImportance scores each eligible column by |r| against the target
func targetImportance(sec *report.CorrelationSection, target string) []report.FeatureImportance {
	var out []report.FeatureImportance
	for _, name := range sec.Columns {
		if name == target {
			continue
		}
		if r, ok := sec.Coefficient(name, target); ok {
			out = append(out, report.FeatureImportance{Column: name, Score: math.Abs(r)})
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	return out
}
