package report

// OutputMode selects how charts are produced for the report target
type OutputMode string

const (
	// ModeInteractive produces live chart objects rendered client-side
	ModeInteractive OutputMode = "interactive"
	// ModeStatic produces pre-rendered images suitable for print/PDF
	ModeStatic OutputMode = "static"
)

// PlotKind is the closed set of chart variants
type PlotKind string

const (
	PlotHistogram PlotKind = "histogram"
	PlotBar       PlotKind = "bar"
	PlotHeatmap   PlotKind = "heatmap"
	PlotScatter   PlotKind = "scatter"
	// PlotOmitted is the explicit sentinel for a chart that cannot be
	// rendered for the requested output mode. It always carries a note and
	// surfaces as a visible placeholder, never an empty region.
	PlotOmitted PlotKind = "omitted"
)

// HistogramData has len(Bins) == len(Counts)+1; Bins are the bucket edges
type HistogramData struct {
	Bins   []float64 `json:"bins"`
	Counts []int     `json:"counts"`
	// TimeAxis marks bins as unix seconds so renderers format them as dates
	TimeAxis bool `json:"time_axis,omitempty"`
}

// BarData is a labeled value series
type BarData struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// HeatmapData is a labeled matrix. Defined mirrors Values cell-for-cell;
// undefined cells are omitted from rendering, never drawn as zero.
type HeatmapData struct {
	XLabels []string    `json:"x_labels"`
	YLabels []string    `json:"y_labels"`
	Values  [][]float64 `json:"values"`
	Defined [][]bool    `json:"defined"`
}

// ScatterData is a paired point series
type ScatterData struct {
	XLabel string    `json:"x_label"`
	YLabel string    `json:"y_label"`
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
}

// PlotSpec is an abstract chart description decoupled from rendering
// technology. Exactly the field matching Kind is populated. Static reports
// whether the chart should be rendered as a pre-built image rather than a
// live chart object.
type PlotSpec struct {
	Kind      PlotKind       `json:"kind"`
	Title     string         `json:"title"`
	Static    bool           `json:"static"`
	Histogram *HistogramData `json:"histogram,omitempty"`
	Bar       *BarData       `json:"bar,omitempty"`
	Heatmap   *HeatmapData   `json:"heatmap,omitempty"`
	Scatter   *ScatterData   `json:"scatter,omitempty"`
	// Note explains an omission; always set when Kind is PlotOmitted
	Note string `json:"note,omitempty"`
}

// OmittedPlot builds the terminal fallback spec for an unrenderable chart
func OmittedPlot(title, note string) PlotSpec {
	return PlotSpec{Kind: PlotOmitted, Title: title, Note: note}
}

// IsOmitted reports whether the spec is the omission sentinel
func (p PlotSpec) IsOmitted() bool {
	return p.Kind == PlotOmitted
}
