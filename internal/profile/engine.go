// Package profile computes the type-appropriate statistic set of one
// column. Degenerate input (empty, all-missing, zero-variance) never fails;
// numeric and date bundles carry an explicit undefined sentinel instead.
package profile

import (
	"time"

	"github.com/montanaflynn/stats"

	"tabprof/domain/report"
	"tabprof/domain/table"
)

// DefaultTopK bounds the categorical frequency table
const DefaultTopK = 10

// Engine computes statistic bundles
type Engine struct {
	topK int
}

// NewEngine creates an engine; non-positive topK falls back to the default
func NewEngine(topK int) *Engine {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Engine{topK: topK}
}

// Compute builds the statistic bundle for a column of the given type. The
// bundle's key set is fully determined by the type; common stats are always
// present and use the identical formula for every type.
func (e *Engine) Compute(col table.Column, kind report.VarType) report.StatBundle {
	bundle := report.StatBundle{
		Kind:   kind,
		Common: commonStats(col),
	}

	switch kind {
	case report.TypeNumeric:
		bundle.Numeric = numericStats(col.Floats())
	case report.TypeCategorical, report.TypeText:
		bundle.Categorical = e.categoricalStats(col)
	case report.TypeBoolean:
		bundle.Boolean = booleanStats(col)
	case report.TypeDate:
		bundle.Date = dateStats(col)
	}
	return bundle
}

// commonStats uses one formula across all types; zero rows report 0%.
func commonStats(col table.Column) report.CommonStats {
	total := len(col.Values)
	missing := col.MissingCount()
	distinct := col.DistinctCount()

	cs := report.CommonStats{
		Count:    total - missing,
		Missing:  missing,
		Distinct: distinct,
	}
	if total > 0 {
		cs.MissingPct = float64(missing) / float64(total) * 100
		cs.DistinctPct = float64(distinct) / float64(total) * 100
	}
	return cs
}

// numericStats computes descriptive statistics over non-missing values.
// StdDev uses the sample formula (n-1), matching conventional describe
// output. Zero values yields the undefined sentinel, never NaN.
func numericStats(values []float64) *report.NumericStats {
	if len(values) == 0 {
		return &report.NumericStats{Undefined: true}
	}

	ns := &report.NumericStats{}
	var err error
	if ns.Mean, err = stats.Mean(values); err != nil {
		return &report.NumericStats{Undefined: true}
	}
	if len(values) > 1 {
		if ns.StdDev, err = stats.StandardDeviationSample(values); err != nil {
			return &report.NumericStats{Undefined: true}
		}
	}
	if ns.Min, err = stats.Min(values); err != nil {
		return &report.NumericStats{Undefined: true}
	}
	if ns.Max, err = stats.Max(values); err != nil {
		return &report.NumericStats{Undefined: true}
	}
	if ns.Median, err = stats.Median(values); err != nil {
		return &report.NumericStats{Undefined: true}
	}
	// Percentile errors only on empty input, already handled above; a
	// single value is its own quartile.
	if q1, err := stats.Percentile(values, 25); err == nil {
		ns.Q1 = q1
	} else {
		ns.Q1 = ns.Median
	}
	if q3, err := stats.Percentile(values, 75); err == nil {
		ns.Q3 = q3
	} else {
		ns.Q3 = ns.Median
	}
	return ns
}

// categoricalStats builds the top-K frequency table. Ties break by
// first-seen order; mass beyond the top-K is summarized, not enumerated.
func (e *Engine) categoricalStats(col table.Column) *report.CategoricalStats {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := make([]string, 0)
	nonMissing := 0

	for i, v := range col.Values {
		if v.IsMissing() {
			continue
		}
		nonMissing++
		key := v.Display()
		if _, ok := counts[key]; !ok {
			firstSeen[key] = i
			order = append(order, key)
		}
		counts[key]++
	}

	// Stable selection sort on count desc keeps first-seen order for ties.
	sorted := make([]string, len(order))
	copy(sorted, order)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && counts[sorted[j]] > counts[sorted[j-1]]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	cs := &report.CategoricalStats{}
	top := sorted
	if len(top) > e.topK {
		top = top[:e.topK]
	}
	enumerated := 0
	for _, key := range top {
		pct := 0.0
		if nonMissing > 0 {
			pct = float64(counts[key]) / float64(nonMissing) * 100
		}
		cs.Top = append(cs.Top, report.CategoryCount{
			Value: key,
			Count: counts[key],
			Pct:   pct,
		})
		enumerated += counts[key]
	}
	cs.OtherCount = nonMissing - enumerated
	if len(cs.Top) > 0 {
		cs.Mode = cs.Top[0].Value
	}
	return cs
}

func booleanStats(col table.Column) *report.BooleanStats {
	bs := &report.BooleanStats{}
	for _, v := range col.Values {
		switch {
		case v.IsMissing():
			bs.Missing++
		case v.BooleanVal != nil && *v.BooleanVal:
			bs.True++
		default:
			bs.False++
		}
	}
	return bs
}

func dateStats(col table.Column) *report.DateStats {
	var min, max time.Time
	seen := false
	for _, v := range col.Values {
		t, ok := v.AsTime()
		if !ok {
			continue
		}
		if !seen {
			min, max = t, t
			seen = true
			continue
		}
		if t.Before(min) {
			min = t
		}
		if t.After(max) {
			max = t
		}
	}
	if !seen {
		return &report.DateStats{Undefined: true}
	}
	return &report.DateStats{
		Min:   min,
		Max:   max,
		Range: max.Sub(min),
	}
}
