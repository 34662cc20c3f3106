package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"tabprof/domain/report"
	"tabprof/internal/errors"
)

// WritePDF renders the report through the static HTML path and hands the
// document to an external HTML-to-PDF engine. The report must have been
// assembled in static mode; live charts cannot survive the conversion.
func WritePDF(ctx context.Context, r *HTMLRenderer, rep *report.Report, engine, outPath string) error {
	if rep.Mode != report.ModeStatic {
		return errors.New(errors.CodeInvalidInput, "pdf export requires static output mode")
	}
	if engine == "" {
		return errors.ConfigInvalid("pdf_engine", "no HTML-to-PDF engine configured")
	}
	if _, err := exec.LookPath(engine); err != nil {
		return errors.ConfigInvalid("pdf_engine", fmt.Sprintf("converter %q not found on PATH", engine))
	}

	tmp, err := os.CreateTemp("", "tabprof-*.html")
	if err != nil {
		return errors.RenderFailed("failed to create intermediate file", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := r.RenderReport(tmp, rep); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.RenderFailed("failed to flush intermediate file", err)
	}

	cmd := exec.CommandContext(ctx, engine, tmpPath, filepath.Clean(outPath))
	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.RenderFailed(fmt.Sprintf("%s failed: %s", engine, string(out)), err)
	}
	return nil
}
