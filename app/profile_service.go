// Package app wires the profiling core into services consumed by the CLI
// and the preview server. ProfileService is the report assembler: it owns
// the Report Data from first computation until handoff to rendering.
package app

import (
	"fmt"
	"time"

	"tabprof/domain/core"
	"tabprof/domain/report"
	"tabprof/domain/table"
	"tabprof/internal"
	"tabprof/internal/analyze"
	"tabprof/internal/classify"
	"tabprof/internal/config"
	"tabprof/internal/errors"
	"tabprof/internal/plot"
	"tabprof/internal/profile"
)

// ProfileService assembles a Report from a table and validated options
type ProfileService struct {
	opts       config.Options
	log        *internal.Logger
	classifier *classify.Classifier
	engine     *profile.Engine
	plots      *plot.Builder

	// OnColumn, when set, is called before each column is profiled.
	// The CLI uses it to drive a progress bar.
	OnColumn func(name string, index, total int)
}

// NewProfileService validates options and builds the service. Option
// errors (bad enums, unknown section names) fail here, before any
// computation.
func NewProfileService(opts config.Options, logger *internal.Logger) (*ProfileService, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ProfileService{
		opts:       opts,
		log:        logger,
		classifier: classify.New(opts.CategoricalThreshold),
		engine:     profile.NewEngine(opts.TopKCategories),
		plots:      plot.NewBuilder(opts.OutputMode),
	}, nil
}

// BuildReport runs one profiling pass: classify every column, compute
// per-column statistics and plots, run the cross-cutting analyzers for
// retained sections, and assemble the immutable report. The table is read
// only; all results live in newly allocated structures. A per-column
// failure marks only that entry; a section failure behaves like exclusion
// and leaves a diagnostic.
func (s *ProfileService) BuildReport(tbl *table.Table) (*report.Report, error) {
	if s.opts.Target != "" && !tbl.HasColumn(s.opts.Target) {
		return nil, errors.ConfigInvalid("target",
			fmt.Sprintf("target column %q not found in table", s.opts.Target))
	}
	sections, err := s.opts.Sections()
	if err != nil {
		return nil, err
	}

	s.log.Info("profiling table: %d rows, %d columns", tbl.NumRows(), tbl.NumCols())

	rep := &report.Report{
		ID:          core.NewReportID(),
		Title:       s.opts.Title,
		Theme:       string(s.opts.Theme),
		Mode:        s.opts.OutputMode,
		GeneratedAt: time.Now(),
		Sections:    sections,
	}

	// Classification feeds every later stage; it never fails.
	kinds := make(map[string]report.VarType, tbl.NumCols())
	for _, col := range tbl.Columns() {
		kinds[col.Name] = s.classifier.Classify(col)
	}

	if sections.Has(report.SectionOverview) {
		rep.Overview = s.buildOverview(tbl, kinds)
	}

	if sections.Has(report.SectionVariables) {
		rep.Variables = s.buildVariables(tbl, kinds)
	}

	if sections.Has(report.SectionCorrelations) {
		s.runSection(rep, report.SectionCorrelations, func() {
			sec := analyze.Correlate(tbl, kinds, string(s.opts.CorrelationMethod), s.opts.Target)
			sec.Plot = s.plots.CorrelationPlot(sec)
			rep.Correlations = sec
		})
	}

	if sections.Has(report.SectionMissing) {
		s.runSection(rep, report.SectionMissing, func() {
			sec := analyze.AnalyzeMissing(tbl)
			sec.Plot = s.plots.MissingPlot(sec)
			sec.PatternPlot = s.plots.MissingPatternPlot(sec)
			rep.Missing = sec
		})
	}

	if sections.Has(report.SectionDuplicates) {
		s.runSection(rep, report.SectionDuplicates, func() {
			sec := analyze.AnalyzeDuplicates(tbl)
			sec.Plot = s.plots.DuplicatePlot(sec)
			rep.Duplicates = sec
		})
	}

	if sections.Has(report.SectionOutliers) {
		s.runSection(rep, report.SectionOutliers, func() {
			rep.Outliers = analyze.AnalyzeOutliers(tbl, kinds,
				string(s.opts.OutlierMethod), s.opts.OutlierStdDevMult)
		})
	}

	if sections.Has(report.SectionSample) {
		s.runSection(rep, report.SectionSample, func() {
			rep.Sample = buildSample(tbl, s.opts.SampleRows)
		})
	}

	return rep, nil
}

// buildOverview computes dataset-level counts. Missing and duplicate
// tallies appear here regardless of which sections are active; the section
// toggles control the detailed views only.
func (s *ProfileService) buildOverview(tbl *table.Table, kinds map[string]report.VarType) *report.Overview {
	ov := &report.Overview{
		Rows:    tbl.NumRows(),
		Columns: tbl.NumCols(),
	}
	for _, col := range tbl.Columns() {
		ov.MissingCells += col.MissingCount()
		switch kinds[col.Name] {
		case report.TypeNumeric:
			ov.NumericCols++
		case report.TypeCategorical:
			ov.CategoricalCols++
		case report.TypeBoolean:
			ov.BooleanCols++
		case report.TypeDate:
			ov.DateCols++
		case report.TypeText:
			ov.TextCols++
		}
	}
	if cells := ov.Rows * ov.Columns; cells > 0 {
		ov.MissingCellsPct = float64(ov.MissingCells) / float64(cells) * 100
	}

	dups := analyze.AnalyzeDuplicates(tbl)
	ov.DuplicateRows = dups.Count
	ov.DuplicateRowsPct = dups.Pct
	return ov
}

// buildVariables profiles every column except the target, in table order
func (s *ProfileService) buildVariables(tbl *table.Table, kinds map[string]report.VarType) []report.VariableProfile {
	cols := tbl.Columns()
	var targetCol *table.Column
	if s.opts.Target != "" {
		if tc, ok := tbl.Column(s.opts.Target); ok {
			targetCol = &tc
		}
	}

	vars := make([]report.VariableProfile, 0, len(cols))
	for i, col := range cols {
		if col.Name == s.opts.Target {
			continue
		}
		if s.OnColumn != nil {
			s.OnColumn(col.Name, i, len(cols))
		}
		vars = append(vars, s.profileVariable(col, kinds[col.Name], targetCol, kinds))
	}
	return vars
}

// profileVariable isolates a single column's computation: a panic marks
// only this entry as failed and the run continues.
func (s *ProfileService) profileVariable(col table.Column, kind report.VarType, target *table.Column, kinds map[string]report.VarType) (vp report.VariableProfile) {
	vp = report.VariableProfile{Name: col.Name, Type: kind}
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("profiling column %q failed: %v", col.Name, r)
			vp.Failed = true
			vp.FailureMsg = fmt.Sprintf("%v", r)
		}
	}()

	vp.Stats = s.engine.Compute(col, kind)
	vp.Plot = s.plots.VariablePlot(col, kind, vp.Stats)
	if target != nil {
		tp := s.plots.TargetPlot(col, *target, kind, kinds[target.Name])
		vp.TargetPlot = &tp
	}
	return vp
}

// runSection isolates a section-level failure: the section stays nil,
// which downstream treats like exclusion, and a diagnostic records why.
func (s *ProfileService) runSection(rep *report.Report, sec report.Section, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("section %s failed: %v", sec, r)
			rep.Diagnostics = append(rep.Diagnostics, report.Diagnostic{
				Section: sec,
				Message: fmt.Sprintf("section skipped: %v", r),
			})
		}
	}()
	fn()
}

func buildSample(tbl *table.Table, n int) *report.SampleSection {
	sec := &report.SampleSection{Columns: tbl.ColumnNames()}
	rows := tbl.NumRows()
	if n > rows {
		n = rows
	}
	for i := 0; i < n; i++ {
		sec.Head = append(sec.Head, tbl.RowDisplay(i))
	}
	for i := rows - n; i < rows; i++ {
		sec.Tail = append(sec.Tail, tbl.RowDisplay(i))
	}
	return sec
}
