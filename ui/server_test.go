package ui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabprof/adapters/render"
	"tabprof/app"
	"tabprof/internal"
	"tabprof/internal/config"
	"tabprof/internal/testkit"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	svc, err := app.NewProfileService(config.Default(), nil)
	require.NoError(t, err)

	rep, err := svc.BuildReport(testkit.MustTable(
		testkit.NumericColumn("x", 1, 2, 3),
	))
	require.NoError(t, err)

	renderer, err := render.NewHTMLRenderer()
	require.NoError(t, err)

	return NewApp(rep, renderer, internal.NewDefaultLogger())
}

func TestHandleReport(t *testing.T) {
	a := newTestApp(t)

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Data Profile Report")
}

func TestHandleReportJSON(t *testing.T) {
	a := newTestApp(t)

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, rec.Body.String(), `"schema_version"`)
}

func TestHandleHealth(t *testing.T) {
	a := newTestApp(t)

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
