package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"tabprof/domain/report"
)

const (
	svgWidth  = 640
	svgHeight = 240
	svgPad    = 4
)

// renderPlot maps a plot spec into markup by direct substitution: live
// plotly charts for interactive specs, inline SVG for static ones, and a
// visible placeholder for the Omitted sentinel. No statistics are
// re-derived here.
func renderPlot(p report.PlotSpec) template.HTML {
	switch p.Kind {
	case report.PlotOmitted:
		return template.HTML(fmt.Sprintf(
			`<div class="plot-omitted" role="note">Chart omitted: %s</div>`,
			template.HTMLEscapeString(p.Note)))
	case report.PlotHistogram:
		if p.Static {
			return svgBars(p.Title, histogramLabels(p.Histogram), intsToFloats(p.Histogram.Counts))
		}
		return plotlyBar(p.Title, histogramLabels(p.Histogram), intsToFloats(p.Histogram.Counts))
	case report.PlotBar:
		if p.Static {
			return svgBars(p.Title, p.Bar.Labels, p.Bar.Values)
		}
		return plotlyBar(p.Title, p.Bar.Labels, p.Bar.Values)
	case report.PlotHeatmap:
		return plotlyHeatmap(p.Title, p.Heatmap)
	case report.PlotScatter:
		return plotlyScatter(p.Title, p.Scatter)
	}
	return template.HTML(`<div class="plot-omitted" role="note">Chart omitted: unknown chart kind</div>`)
}

// histogramLabels renders bin ranges as category labels
func histogramLabels(h *report.HistogramData) []string {
	labels := make([]string, len(h.Counts))
	for i := range h.Counts {
		lo, hi := h.Bins[i], h.Bins[i+1]
		if h.TimeAxis {
			labels[i] = fmt.Sprintf("%s – %s",
				time.Unix(int64(lo), 0).UTC().Format("2006-01-02"),
				time.Unix(int64(hi), 0).UTC().Format("2006-01-02"))
		} else {
			labels[i] = fmt.Sprintf("%.4g – %.4g", lo, hi)
		}
	}
	return labels
}

func intsToFloats(in []int) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

// plotDiv emits the container plus the plotly call for one trace set
func plotDiv(title string, traces interface{}, layout map[string]interface{}) template.HTML {
	id := "plot-" + slug(title)
	data, err := json.Marshal(traces)
	if err != nil {
		return template.HTML(fmt.Sprintf(
			`<div class="plot-omitted" role="note">Chart omitted: %s</div>`,
			template.HTMLEscapeString(err.Error())))
	}
	if layout == nil {
		layout = map[string]interface{}{}
	}
	layout["title"] = title
	layout["margin"] = map[string]int{"t": 40, "b": 60, "l": 50, "r": 20}
	lay, _ := json.Marshal(layout)
	return template.HTML(fmt.Sprintf(
		`<div id="%s" class="plot"></div><script>Plotly.newPlot(%q, %s, %s, {displayModeBar: false});</script>`,
		id, id, data, lay))
}

func plotlyBar(title string, labels []string, values []float64) template.HTML {
	return plotDiv(title, []map[string]interface{}{{
		"type": "bar",
		"x":    labels,
		"y":    values,
	}}, nil)
}

func plotlyHeatmap(title string, h *report.HeatmapData) template.HTML {
	// Undefined cells become nulls so plotly leaves them blank.
	z := make([][]interface{}, len(h.Values))
	for i, row := range h.Values {
		z[i] = make([]interface{}, len(row))
		for j, v := range row {
			if h.Defined[i][j] {
				z[i][j] = v
			}
		}
	}
	return plotDiv(title, []map[string]interface{}{{
		"type":       "heatmap",
		"x":          h.XLabels,
		"y":          h.YLabels,
		"z":          z,
		"colorscale": "RdBu",
	}}, nil)
}

func plotlyScatter(title string, s *report.ScatterData) template.HTML {
	return plotDiv(title, []map[string]interface{}{{
		"type": "scatter",
		"mode": "markers",
		"x":    s.X,
		"y":    s.Y,
	}}, map[string]interface{}{
		"xaxis": map[string]string{"title": s.XLabel},
		"yaxis": map[string]string{"title": s.YLabel},
	})
}

// svgBars draws a pre-rendered bar chart for static/PDF output
func svgBars(title string, labels []string, values []float64) template.HTML {
	if len(values) == 0 {
		return template.HTML(`<div class="plot-omitted" role="note">Chart omitted: no data</div>`)
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		max = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<figure class="plot-static"><figcaption>%s</figcaption>`,
		template.HTMLEscapeString(title))
	fmt.Fprintf(&b, `<svg viewBox="0 0 %d %d" width="%d" height="%d" role="img">`,
		svgWidth, svgHeight, svgWidth, svgHeight)

	barSpace := float64(svgWidth) / float64(len(values))
	barWidth := barSpace - 2*svgPad
	if barWidth < 1 {
		barWidth = 1
	}
	for i, v := range values {
		h := v / max * float64(svgHeight-2*svgPad)
		x := float64(i)*barSpace + svgPad
		y := float64(svgHeight) - svgPad - h
		fmt.Fprintf(&b,
			`<rect class="bar" x="%.1f" y="%.1f" width="%.1f" height="%.1f"><title>%s: %g</title></rect>`,
			x, y, barWidth, h, template.HTMLEscapeString(labels[i]), v)
	}
	b.WriteString(`</svg></figure>`)
	return template.HTML(b.String())
}

// slug builds a stable element id from a plot title
func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
