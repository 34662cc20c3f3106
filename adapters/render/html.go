// Package render maps assembled report data into output documents. The
// profiling core never emits markup; everything here is direct
// substitution over already-computed results.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"tabprof/domain/report"
	"tabprof/internal/errors"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// HTMLRenderer renders reports and comparisons to HTML
type HTMLRenderer struct {
	templates *template.Template
}

// NewHTMLRenderer parses the embedded templates
func NewHTMLRenderer() (*HTMLRenderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"plot": renderPlot,
		"pct":  formatPct,
		"num":  formatNum,
		"add":  func(a, b int) int { return a + b },
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.RenderFailed("failed to parse templates", err)
	}
	return &HTMLRenderer{templates: t}, nil
}

// RenderReport writes the report as a full HTML document. Rendering goes
// through a buffer first so a template error never leaves a truncated
// document behind.
func (r *HTMLRenderer) RenderReport(w io.Writer, rep *report.Report) error {
	return r.render(w, "report.html.tmpl", rep)
}

// RenderComparison writes the two-table drift report
func (r *HTMLRenderer) RenderComparison(w io.Writer, cmp *report.Comparison) error {
	return r.render(w, "compare.html.tmpl", cmp)
}

func (r *HTMLRenderer) render(w io.Writer, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return errors.RenderFailed(fmt.Sprintf("template %s failed", name), err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return errors.RenderFailed("failed to write document", err)
	}
	return nil
}

func formatPct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func formatNum(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
