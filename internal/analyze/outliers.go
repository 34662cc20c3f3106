package analyze

import (
	"github.com/montanaflynn/stats"

	"tabprof/domain/report"
	"tabprof/domain/table"
)

// Outlier method identifiers, matching the configuration enum
const (
	OutlierIQR    = "iqr"
	OutlierStdDev = "stddev"
)

// iqrFenceMult is the Tukey fence multiplier for the IQR method
const iqrFenceMult = 1.5

// AnalyzeOutliers flags values outside the method's bounds per numeric
// column. IQR uses [Q1 - 1.5*IQR, Q3 + 1.5*IQR]; stddev uses mean +/- mult
// standard deviations. Data is never removed or altered. Columns with too
// few values for bounds carry the undefined sentinel.
func AnalyzeOutliers(tbl *table.Table, kinds map[string]report.VarType, method string, stdDevMult float64) *report.OutlierSection {
	sec := &report.OutlierSection{Method: method}
	for _, name := range tbl.ColumnNames() {
		if kinds[name] != report.TypeNumeric {
			continue
		}
		col, _ := tbl.Column(name)
		sec.PerColumn = append(sec.PerColumn, columnOutliers(col, method, stdDevMult))
	}
	return sec
}

func columnOutliers(col table.Column, method string, stdDevMult float64) report.ColumnOutliers {
	out := report.ColumnOutliers{Name: col.Name}
	values := col.Floats()
	if len(values) < 2 {
		out.Undefined = true
		return out
	}

	var lower, upper float64
	switch method {
	case OutlierStdDev:
		mean, err := stats.Mean(values)
		if err != nil {
			out.Undefined = true
			return out
		}
		sd, err := stats.StandardDeviationSample(values)
		if err != nil {
			out.Undefined = true
			return out
		}
		lower = mean - stdDevMult*sd
		upper = mean + stdDevMult*sd
	default: // iqr
		q1, err := stats.Percentile(values, 25)
		if err != nil {
			out.Undefined = true
			return out
		}
		q3, err := stats.Percentile(values, 75)
		if err != nil {
			out.Undefined = true
			return out
		}
		iqr := q3 - q1
		lower = q1 - iqrFenceMult*iqr
		upper = q3 + iqrFenceMult*iqr
	}

	out.Lower = lower
	out.Upper = upper
	for _, v := range values {
		if v < lower || v > upper {
			out.Count++
		}
	}
	out.Pct = float64(out.Count) / float64(len(values)) * 100
	return out
}
