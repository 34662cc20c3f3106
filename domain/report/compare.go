package report

import "time"

// HistogramComparison overlays two numeric distributions on shared bins so
// the two series are directly comparable.
type HistogramComparison struct {
	Bins        []float64 `json:"bins"`
	LeftCounts  []int     `json:"left_counts"`
	RightCounts []int     `json:"right_counts"`
}

// CategoryComparison overlays two frequency tables on a shared label set
type CategoryComparison struct {
	Labels      []string `json:"labels"`
	LeftCounts  []int    `json:"left_counts"`
	RightCounts []int    `json:"right_counts"`
}

// ColumnComparison compares one column common to both tables
type ColumnComparison struct {
	Name         string               `json:"name"`
	LeftType     VarType              `json:"left_type"`
	RightType    VarType              `json:"right_type"`
	TypeMismatch bool                 `json:"type_mismatch"`
	Left         StatBundle           `json:"left"`
	Right        StatBundle           `json:"right"`
	Histogram    *HistogramComparison `json:"histogram,omitempty"`
	Categories   *CategoryComparison  `json:"categories,omitempty"`
}

// Comparison is the drift report over two tables
type Comparison struct {
	LeftName    string             `json:"left_name"`
	RightName   string             `json:"right_name"`
	LeftRows    int                `json:"left_rows"`
	RightRows   int                `json:"right_rows"`
	OnlyLeft    []string           `json:"only_left"`
	OnlyRight   []string           `json:"only_right"`
	Common      []string           `json:"common"`
	Columns     []ColumnComparison `json:"columns"`
	Theme       string             `json:"theme"`
	GeneratedAt time.Time          `json:"generated_at"`
}
