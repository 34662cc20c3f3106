package analyze

import (
	"tabprof/domain/report"
	"tabprof/domain/table"
)

// AnalyzeMissing summarizes missing data per column together with the
// pairwise co-missing pattern used for the heatmap. A zero-row or zero-cell
// table produces an explicit empty result.
func AnalyzeMissing(tbl *table.Table) *report.MissingSection {
	sec := &report.MissingSection{}

	cols := tbl.Columns()
	totalCells := tbl.NumRows() * tbl.NumCols()

	for _, col := range cols {
		missing := col.MissingCount()
		pct := 0.0
		if tbl.NumRows() > 0 {
			pct = float64(missing) / float64(tbl.NumRows()) * 100
		}
		sec.PerColumn = append(sec.PerColumn, report.ColumnMissing{
			Name:  col.Name,
			Count: missing,
			Pct:   pct,
		})
		sec.TotalMissing += missing
		if missing > 0 {
			sec.ColumnsWithMissing++
		}
	}
	if totalCells > 0 {
		sec.MissingPct = float64(sec.TotalMissing) / float64(totalCells) * 100
	}

	sec.CoMissingColumns = tbl.ColumnNames()
	sec.CoMissingCounts = coMissingCounts(tbl)
	return sec
}

// coMissingCounts counts rows where both columns of a pair are missing;
// the diagonal is the plain per-column missing count.
func coMissingCounts(tbl *table.Table) [][]int {
	cols := tbl.Columns()
	n := len(cols)
	counts := make([][]int, n)
	for i := range counts {
		counts[i] = make([]int, n)
	}
	for r := 0; r < tbl.NumRows(); r++ {
		for i := 0; i < n; i++ {
			if !cols[i].Values[r].IsMissing() {
				continue
			}
			for j := i; j < n; j++ {
				if cols[j].Values[r].IsMissing() {
					counts[i][j]++
					if i != j {
						counts[j][i]++
					}
				}
			}
		}
	}
	return counts
}
