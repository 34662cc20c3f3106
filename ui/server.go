// Package ui serves a generated report for browser preview. The server
// holds one immutable report; regeneration means restarting the process.
package ui

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tabprof/adapters/render"
	"tabprof/domain/report"
	"tabprof/internal"
)

// App is the preview web application
type App struct {
	router   chi.Router
	renderer *render.HTMLRenderer
	report   *report.Report
	log      *internal.Logger
}

// NewApp wires the preview routes around one assembled report
func NewApp(rep *report.Report, renderer *render.HTMLRenderer, log *internal.Logger) *App {
	a := &App{
		router:   chi.NewRouter(),
		renderer: renderer,
		report:   rep,
		log:      log,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleReport)
	a.router.Get("/report.json", a.handleReportJSON)
	a.router.Get("/healthz", a.handleHealth)
}

func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.renderer.RenderReport(w, a.report); err != nil {
		a.log.Error("report render failed: %v", err)
		http.Error(w, "failed to render report", http.StatusInternalServerError)
	}
}

func (a *App) handleReportJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := render.WriteJSON(w, a.report); err != nil {
		a.log.Error("report JSON export failed: %v", err)
		http.Error(w, "failed to encode report", http.StatusInternalServerError)
	}
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// Serve blocks on the HTTP listener until the context is cancelled
func (a *App) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("preview server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
