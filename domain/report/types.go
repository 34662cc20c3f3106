// Package report defines the immutable aggregate produced by one profiling
// run and consumed exactly once by a rendering layer. Nothing in this
// package computes statistics; it is the shared vocabulary between the
// profiling core and renderers.
package report

import (
	"time"

	"tabprof/domain/core"
)

// Overview holds dataset-level counts and type tallies
type Overview struct {
	Rows             int     `json:"rows"`
	Columns          int     `json:"columns"`
	MissingCells     int     `json:"missing_cells"`
	MissingCellsPct  float64 `json:"missing_cells_pct"`
	DuplicateRows    int     `json:"duplicate_rows"`
	DuplicateRowsPct float64 `json:"duplicate_rows_pct"`
	NumericCols      int     `json:"numeric_cols"`
	CategoricalCols  int     `json:"categorical_cols"`
	BooleanCols      int     `json:"boolean_cols"`
	DateCols         int     `json:"date_cols"`
	TextCols         int     `json:"text_cols"`
}

// VariableProfile is the per-column report entry. A computation failure in
// one column marks only that entry as failed; the run continues.
type VariableProfile struct {
	Name       string   `json:"name"`
	Type       VarType  `json:"type"`
	Stats      StatBundle `json:"stats"`
	Plot       PlotSpec `json:"plot"`
	TargetPlot *PlotSpec `json:"target_plot,omitempty"`
	Failed     bool     `json:"failed,omitempty"`
	FailureMsg string   `json:"failure_msg,omitempty"`
}

// FeatureImportance scores one column against the target
type FeatureImportance struct {
	Column string  `json:"column"`
	Score  float64 `json:"score"`
}

// CorrelationSection holds the square, symmetric association matrix over
// numeric-compatible columns. Undefined pairs carry Defined=false and are
// omitted downstream, never fabricated as zero.
type CorrelationSection struct {
	Method       string              `json:"method"`
	Columns      []string            `json:"columns"`
	Coefficients [][]float64         `json:"coefficients"`
	Defined      [][]bool            `json:"defined"`
	Target       string              `json:"target,omitempty"`
	Importance   []FeatureImportance `json:"importance,omitempty"`
	Plot         PlotSpec            `json:"plot"`
}

// Coefficient returns the association of two columns by name
func (c *CorrelationSection) Coefficient(a, b string) (float64, bool) {
	ai, bi := -1, -1
	for i, name := range c.Columns {
		if name == a {
			ai = i
		}
		if name == b {
			bi = i
		}
	}
	if ai < 0 || bi < 0 || !c.Defined[ai][bi] {
		return 0, false
	}
	return c.Coefficients[ai][bi], true
}

// ColumnMissing is the per-column missingness entry
type ColumnMissing struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

// MissingSection summarizes missing data per column and as a pairwise
// co-missing pattern across columns.
type MissingSection struct {
	TotalMissing       int             `json:"total_missing"`
	MissingPct         float64         `json:"missing_pct"`
	ColumnsWithMissing int             `json:"columns_with_missing"`
	PerColumn          []ColumnMissing `json:"per_column"`
	CoMissingColumns   []string        `json:"co_missing_columns"`
	CoMissingCounts    [][]int         `json:"co_missing_counts"`
	Plot               PlotSpec        `json:"plot"`
	PatternPlot        PlotSpec        `json:"pattern_plot"`
}

// DuplicateGroup is one duplicated row pattern, bounded for display
type DuplicateGroup struct {
	Cells    []string     `json:"cells"`
	Count    int          `json:"count"`
	FirstRow int          `json:"first_row"`
	Hash     core.RowHash `json:"-"`
}

// DuplicateSection reports exact row duplicates. Count follows the
// keep-first convention: the first occurrence of a pattern is not counted
// as a duplicate. Groups is a bounded preview, never the full dump.
type DuplicateSection struct {
	Count     int              `json:"count"`
	Pct       float64          `json:"pct"`
	Groups    []DuplicateGroup `json:"groups"`
	Truncated bool             `json:"truncated"`
	Plot      PlotSpec         `json:"plot"`
}

// ColumnOutliers is the per-numeric-column outlier flagging result.
// Undefined marks columns with too few values for fences.
type ColumnOutliers struct {
	Name      string  `json:"name"`
	Undefined bool    `json:"undefined"`
	Count     int     `json:"count"`
	Pct       float64 `json:"pct"`
	Lower     float64 `json:"lower"`
	Upper     float64 `json:"upper"`
}

// OutlierSection reports bound-based flags; data is never removed or altered
type OutlierSection struct {
	Method    string           `json:"method"`
	PerColumn []ColumnOutliers `json:"per_column"`
}

// SampleSection carries bounded head/tail previews of the raw rows
type SampleSection struct {
	Columns []string   `json:"columns"`
	Head    [][]string `json:"head"`
	Tail    [][]string `json:"tail"`
}

// Diagnostic records a section-level failure that behaved like exclusion
type Diagnostic struct {
	Section Section `json:"section"`
	Message string  `json:"message"`
}

// Report is the terminal aggregate of one profiling run. It is built once,
// immutable after assembly, and owned by the assembler until handed to
// rendering. Optional sections are nil when inactive or failed; failures
// additionally leave a Diagnostic.
type Report struct {
	ID          core.ReportID `json:"id"`
	Title       string        `json:"title"`
	Theme       string        `json:"theme"`
	Mode        OutputMode    `json:"output_mode"`
	GeneratedAt time.Time     `json:"generated_at"`

	Sections SectionSet `json:"sections"`

	Overview     *Overview           `json:"overview,omitempty"`
	Variables    []VariableProfile   `json:"variables,omitempty"`
	Correlations *CorrelationSection `json:"correlations,omitempty"`
	Missing      *MissingSection     `json:"missing,omitempty"`
	Duplicates   *DuplicateSection   `json:"duplicates,omitempty"`
	Outliers     *OutlierSection     `json:"outliers,omitempty"`
	Sample       *SampleSection      `json:"sample,omitempty"`

	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}
