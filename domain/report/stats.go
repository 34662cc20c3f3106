package report

import "time"

// CommonStats is computed identically for every variable type
type CommonStats struct {
	Count       int     `json:"count"`
	Missing     int     `json:"missing_count"`
	MissingPct  float64 `json:"missing_pct"`
	Distinct    int     `json:"distinct_count"`
	DistinctPct float64 `json:"distinct_pct"`
}

// NumericStats summarizes a numeric column over its non-missing values.
// Standard deviation is the sample formula (n-1 denominator).
// Undefined is the explicit sentinel for a column with zero non-missing
// values; when set, none of the other fields are meaningful and the
// rendering layer shows N/A markers rather than numbers.
type NumericStats struct {
	Undefined bool    `json:"undefined"`
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"std"`
	Min       float64 `json:"min"`
	Q1        float64 `json:"q1"`
	Median    float64 `json:"median"`
	Q3        float64 `json:"q3"`
	Max       float64 `json:"max"`
}

// CategoryCount is one entry of a frequency table
type CategoryCount struct {
	Value string  `json:"value"`
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

// CategoricalStats holds the top-K frequency table of a categorical or text
// column. Ties are broken by first-seen order. OtherCount is the non-missing
// mass not covered by the enumerated entries.
type CategoricalStats struct {
	Top        []CategoryCount `json:"top"`
	Mode       string          `json:"mode"`
	OtherCount int             `json:"other_count"`
}

// BooleanStats holds true/false/missing counts
type BooleanStats struct {
	True    int `json:"true_count"`
	False   int `json:"false_count"`
	Missing int `json:"missing_count"`
}

// DateStats summarizes a date column. Undefined is the sentinel for a
// column with zero non-missing values.
type DateStats struct {
	Undefined bool          `json:"undefined"`
	Min       time.Time     `json:"min"`
	Max       time.Time     `json:"max"`
	Range     time.Duration `json:"range"`
}

// StatBundle is the type-dependent statistic set of one column. Exactly the
// field matching Kind is populated; CommonStats is always present. The key
// set is fully determined by Kind, never partial.
type StatBundle struct {
	Kind        VarType           `json:"kind"`
	Common      CommonStats       `json:"common"`
	Numeric     *NumericStats     `json:"numeric,omitempty"`
	Categorical *CategoricalStats `json:"categorical,omitempty"`
	Boolean     *BooleanStats     `json:"boolean,omitempty"`
	Date        *DateStats        `json:"date,omitempty"`
}
