package analyze

import (
	"sort"

	"tabprof/domain/core"
	"tabprof/domain/report"
	"tabprof/domain/table"
)

// MaxDuplicateGroups bounds the preview shown in the report; the full set
// of duplicates is never dumped.
const MaxDuplicateGroups = 10

// AnalyzeDuplicates detects exact row duplicates across all columns
// jointly. Counting follows the keep-first convention: the first occurrence
// of a pattern is not a duplicate, so k identical rows contribute k-1 to
// Count. Percentages are against the total row count.
func AnalyzeDuplicates(tbl *table.Table) *report.DuplicateSection {
	sec := &report.DuplicateSection{}
	rows := tbl.NumRows()
	if rows == 0 || tbl.NumCols() == 0 {
		return sec
	}

	type group struct {
		cells    []string
		count    int
		firstRow int
		hash     core.RowHash
	}

	groups := make(map[core.RowHash]*group, rows)
	order := make([]core.RowHash, 0, rows)
	for r := 0; r < rows; r++ {
		cells := tbl.RowDisplay(r)
		h := core.ComputeRowHash(cells)
		g, ok := groups[h]
		if !ok {
			g = &group{cells: cells, firstRow: r, hash: h}
			groups[h] = g
			order = append(order, h)
		}
		g.count++
	}

	dups := make([]*group, 0)
	for _, h := range order {
		g := groups[h]
		if g.count > 1 {
			dups = append(dups, g)
			sec.Count += g.count - 1
		}
	}
	sec.Pct = float64(sec.Count) / float64(rows) * 100

	sort.SliceStable(dups, func(a, b int) bool { return dups[a].count > dups[b].count })
	for i, g := range dups {
		if i == MaxDuplicateGroups {
			sec.Truncated = true
			break
		}
		sec.Groups = append(sec.Groups, report.DuplicateGroup{
			Cells:    g.cells,
			Count:    g.count,
			FirstRow: g.firstRow,
			Hash:     g.hash,
		})
	}
	return sec
}
