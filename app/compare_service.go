package app

import (
	"math"
	"sort"
	"time"

	"tabprof/domain/report"
	"tabprof/domain/table"
	"tabprof/internal"
	"tabprof/internal/classify"
	"tabprof/internal/config"
	"tabprof/internal/profile"
)

// compareHistogramBins is the shared bin count for numeric drift overlays
const compareHistogramBins = 30

// CompareService builds a drift report over two tables
type CompareService struct {
	opts       config.Options
	log        *internal.Logger
	classifier *classify.Classifier
	engine     *profile.Engine
}

// NewCompareService validates options and builds the service
func NewCompareService(opts config.Options, logger *internal.Logger) (*CompareService, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &CompareService{
		opts:       opts,
		log:        logger,
		classifier: classify.New(opts.CategoricalThreshold),
		engine:     profile.NewEngine(opts.TopKCategories),
	}, nil
}

// Compare analyzes the differences between two tables: column set diff,
// type mismatches, per-common-column statistics and distribution overlays
// on shared bins so both series are directly comparable.
func (s *CompareService) Compare(left, right *table.Table, leftName, rightName string) *report.Comparison {
	cmp := &report.Comparison{
		LeftName:    leftName,
		RightName:   rightName,
		LeftRows:    left.NumRows(),
		RightRows:   right.NumRows(),
		Theme:       string(s.opts.Theme),
		GeneratedAt: time.Now(),
	}

	rightSet := make(map[string]bool)
	for _, name := range right.ColumnNames() {
		rightSet[name] = true
	}
	leftSet := make(map[string]bool)
	for _, name := range left.ColumnNames() {
		leftSet[name] = true
		if rightSet[name] {
			cmp.Common = append(cmp.Common, name)
		} else {
			cmp.OnlyLeft = append(cmp.OnlyLeft, name)
		}
	}
	for _, name := range right.ColumnNames() {
		if !leftSet[name] {
			cmp.OnlyRight = append(cmp.OnlyRight, name)
		}
	}
	sort.Strings(cmp.OnlyLeft)
	sort.Strings(cmp.OnlyRight)
	sort.Strings(cmp.Common)

	for _, name := range cmp.Common {
		lc, _ := left.Column(name)
		rc, _ := right.Column(name)
		cmp.Columns = append(cmp.Columns, s.compareColumn(name, lc, rc))
	}
	return cmp
}

func (s *CompareService) compareColumn(name string, left, right table.Column) report.ColumnComparison {
	lk := s.classifier.Classify(left)
	rk := s.classifier.Classify(right)
	cc := report.ColumnComparison{
		Name:         name,
		LeftType:     lk,
		RightType:    rk,
		TypeMismatch: lk != rk,
		Left:         s.engine.Compute(left, lk),
		Right:        s.engine.Compute(right, rk),
	}

	if lk == report.TypeNumeric && rk == report.TypeNumeric {
		cc.Histogram = sharedHistogram(left.Floats(), right.Floats())
	} else if cc.Left.Categorical != nil && cc.Right.Categorical != nil {
		cc.Categories = sharedCategories(cc.Left.Categorical, cc.Right.Categorical, s.opts.TopKCategories)
	}
	return cc
}

// sharedHistogram bins both series over their combined range
func sharedHistogram(left, right []float64) *report.HistogramComparison {
	if len(left) == 0 && len(right) == 0 {
		return nil
	}
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range left {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	for _, v := range right {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	if min == max {
		min -= 0.5
		max += 0.5
	}

	hc := &report.HistogramComparison{
		Bins:        make([]float64, compareHistogramBins+1),
		LeftCounts:  make([]int, compareHistogramBins),
		RightCounts: make([]int, compareHistogramBins),
	}
	width := (max - min) / compareHistogramBins
	for i := range hc.Bins {
		hc.Bins[i] = min + width*float64(i)
	}
	fill := func(values []float64, counts []int) {
		for _, v := range values {
			idx := int((v - min) / width)
			if idx >= compareHistogramBins {
				idx = compareHistogramBins - 1
			}
			counts[idx]++
		}
	}
	fill(left, hc.LeftCounts)
	fill(right, hc.RightCounts)
	return hc
}

// sharedCategories overlays the two frequency tables on the union of their
// top labels ordered by combined count, bounded by topK.
func sharedCategories(left, right *report.CategoricalStats, topK int) *report.CategoryComparison {
	leftCounts := make(map[string]int, len(left.Top))
	rightCounts := make(map[string]int, len(right.Top))
	combined := make(map[string]int)
	var order []string

	for _, cc := range left.Top {
		leftCounts[cc.Value] = cc.Count
		if _, ok := combined[cc.Value]; !ok {
			order = append(order, cc.Value)
		}
		combined[cc.Value] += cc.Count
	}
	for _, cc := range right.Top {
		rightCounts[cc.Value] = cc.Count
		if _, ok := combined[cc.Value]; !ok {
			order = append(order, cc.Value)
		}
		combined[cc.Value] += cc.Count
	}

	sort.SliceStable(order, func(a, b int) bool { return combined[order[a]] > combined[order[b]] })
	if len(order) > topK {
		order = order[:topK]
	}

	out := &report.CategoryComparison{}
	for _, label := range order {
		out.Labels = append(out.Labels, label)
		out.LeftCounts = append(out.LeftCounts, leftCounts[label])
		out.RightCounts = append(out.RightCounts, rightCounts[label])
	}
	return out
}
