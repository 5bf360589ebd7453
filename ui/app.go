// Package ui serves the interactive EDA dashboard: upload a dataset,
// inspect column-type groups, render quick charts for selected columns, and
// generate the profiling report on demand. One current table per server
// process; every action is synchronous request/response.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"goeda/domain/table"
	"goeda/internal"
	"goeda/internal/classify"
	"goeda/internal/config"
	"goeda/internal/loader"
	"goeda/internal/profile"
	"goeda/internal/report"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// session is the currently uploaded table and its classification. There is
// no persistence beyond it.
type session struct {
	Table          *table.Table
	Classification *classify.Classification
	Filename       string
}

// App is the dashboard application.
type App struct {
	router          *chi.Mux
	log             *internal.Logger
	cfg             *config.Config
	loader          *loader.Loader
	classifier      *classify.Classifier
	profiler        *profile.Profiler
	templates       *template.Template
	reportTemplates *template.Template

	mu      sync.RWMutex
	current *session
}

// NewApp creates the dashboard application.
func NewApp(log *internal.Logger, cfg *config.Config) (*App, error) {
	if log == nil {
		log = internal.NewDefaultLogger()
	}

	funcMap := template.FuncMap{
		"pct": func(f float64) string { return fmt.Sprintf("%.1f%%", f*100) },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard templates: %w", err)
	}
	reportTemplates, err := report.Templates()
	if err != nil {
		return nil, err
	}

	app := &App{
		router:          chi.NewRouter(),
		log:             log,
		cfg:             cfg,
		loader:          loader.NewLoader(log),
		classifier:      classify.NewClassifier(log),
		profiler:        profile.NewProfiler(log, cfg.Analysis.HistogramBins, cfg.Analysis.TopValues),
		templates:       templates,
		reportTemplates: reportTemplates,
	}
	app.setupRoutes()
	return app, nil
}

func (a *App) setupRoutes() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	a.router.Get("/", a.handleIndex)
	a.router.Post("/upload", a.handleUpload)
	a.router.Post("/report", a.handleGenerateReport)
}

// Start runs the HTTP server on the configured port.
func (a *App) Start() error {
	addr := ":" + a.cfg.Server.Port
	a.log.Info("[Dashboard] Listening on http://localhost%s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Handler exposes the router, used by tests.
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) setSession(s *session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = s
}

func (a *App) getSession() *session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}
