package ui

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"goeda/domain/table"
	"goeda/internal/classify"
	"goeda/internal/profile"
	"goeda/internal/report"
)

// chartBar is one bar of a dashboard chart, scaled to a percentage width or
// height.
type chartBar struct {
	Label string
	Count int
	Pct   float64
}

type chartView struct {
	Title string
	Bars  []chartBar
}

// pageView is the single-page view model. Zero values render the bare
// upload form.
type pageView struct {
	Error       string
	HasData     bool
	Filename    string
	Rows        int
	Header      []string
	Preview     [][]string
	Numeric     []string
	Categorical []string
	DateTime    []string
	SelectedCat string
	SelectedNum string
	CatChart    *chartView
	CatError    string
	NumChart    *chartView
	NumError    string
	ReportPath  string
	ReportHTML  string
}

const previewRows = 5

// handleIndex renders the dashboard. Column selections arrive as query
// parameters so chart choices are plain GET form submissions.
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := a.buildPageView("")
	if view.HasData {
		a.applyChartSelections(&view, r.URL.Query().Get("cat"), r.URL.Query().Get("num"))
	}
	a.render(w, view)
}

// handleUpload parses the uploaded file into a new session table. A failed
// upload keeps the previous table untouched.
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("dataset")
	if err != nil {
		a.render(w, a.buildPageView("No file provided"))
		return
	}
	defer file.Close()

	t, err := a.parseUpload(file, header.Filename)
	if err != nil {
		a.log.Warn("[Dashboard] Upload of %s failed: %v", header.Filename, err)
		a.render(w, a.buildPageView(fmt.Sprintf("Failed to read %s: %v", header.Filename, err)))
		return
	}

	cl := a.classifier.Classify(t)
	a.setSession(&session{Table: t, Classification: cl, Filename: header.Filename})
	a.log.Info("[Dashboard] Loaded %s (%d rows, %d columns)", header.Filename, t.Rows, len(t.Columns))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleGenerateReport writes the profiling report to disk and embeds it
// into the page. Failures surface inline; the session continues.
func (a *App) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	s := a.getSession()
	if s == nil {
		a.render(w, a.buildPageView("Upload a dataset first"))
		return
	}

	path, err := a.generateReport(s)
	view := a.buildPageView("")
	if err != nil {
		a.log.Error("[Dashboard] Report generation failed: %v", err)
		view.Error = fmt.Sprintf("Failed to generate report: %v", err)
		a.render(w, view)
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		view.Error = fmt.Sprintf("Report written to %s but could not be read back: %v", path, err)
		a.render(w, view)
		return
	}
	view.ReportPath = path
	view.ReportHTML = string(content)
	a.render(w, view)
}

// parseUpload dispatches on the uploaded filename extension. Only CSV and
// xlsx are accepted.
func (a *App) parseUpload(file io.Reader, filename string) (*table.Table, error) {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return a.loader.LoadCSVReader(file, name)
	case ".xlsx", ".xls":
		// excelize needs a real file; spool the upload to a temp path.
		tempFile, err := os.CreateTemp("", "dashboard_upload_*"+filepath.Ext(filename))
		if err != nil {
			return nil, fmt.Errorf("failed to create temp file: %w", err)
		}
		defer os.Remove(tempFile.Name())
		defer tempFile.Close()
		if _, err := io.Copy(tempFile, file); err != nil {
			return nil, fmt.Errorf("failed to spool upload: %w", err)
		}
		t, err := a.loader.Load(tempFile.Name())
		if err != nil {
			return nil, err
		}
		t.Name = name
		return t, nil
	default:
		return nil, fmt.Errorf("unsupported file type %q (CSV or xlsx expected)", filepath.Ext(filename))
	}
}

// generateReport runs the same profiling generator the CLI uses, into
// reports/<filename>/.
func (a *App) generateReport(s *session) (string, error) {
	baseName := strings.TrimSuffix(s.Filename, filepath.Ext(s.Filename))
	outputDir := filepath.Join(a.cfg.Paths.ReportsDir, baseName)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", outputDir, err)
	}

	tableProfile := a.profiler.Profile(s.Table, s.Classification)
	flagged := classify.AuditMissing(s.Table).Flagged(a.cfg.Analysis.MissingThreshold)
	path := filepath.Join(outputDir, fmt.Sprintf("%s_report_%s.html", baseName, time.Now().Format("20060102_150405")))
	return report.GenerateProfiling(a.reportTemplates, s.Table, s.Classification, tableProfile, flagged, path)
}

// buildPageView assembles the view for the current session.
func (a *App) buildPageView(errMsg string) pageView {
	view := pageView{Error: errMsg}
	s := a.getSession()
	if s == nil {
		return view
	}

	view.HasData = true
	view.Filename = s.Filename
	view.Rows = s.Table.Rows
	view.Header = s.Table.ColumnNames()
	for i := 0; i < s.Table.Rows && i < previewRows; i++ {
		view.Preview = append(view.Preview, s.Table.Row(i))
	}
	view.Numeric = s.Classification.Numeric
	view.Categorical = append(append([]string{}, s.Classification.Categorical...), s.Classification.TextLike...)
	view.DateTime = s.Classification.DateTime
	return view
}

// applyChartSelections renders the selected categorical and numeric charts
// into the view. Chart failures become inline messages.
func (a *App) applyChartSelections(view *pageView, catName, numName string) {
	s := a.getSession()
	if s == nil {
		return
	}

	if catName != "" {
		view.SelectedCat = catName
		chart, err := a.categoricalChart(s.Table, catName)
		if err != nil {
			view.CatError = err.Error()
		} else {
			view.CatChart = chart
		}
	}
	if numName != "" {
		view.SelectedNum = numName
		chart, err := a.numericChart(s.Table, numName)
		if err != nil {
			view.NumError = err.Error()
		} else {
			view.NumChart = chart
		}
	}
}

// categoricalChart builds a top-N frequency chart for a categorical column.
func (a *App) categoricalChart(t *table.Table, name string) (*chartView, error) {
	column := t.Column(name)
	if column == nil {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	counts := column.ValueCounts()
	if len(counts) == 0 {
		return nil, fmt.Errorf("column %q has no non-null values", name)
	}
	if len(counts) > a.cfg.Analysis.TopValues {
		counts = counts[:a.cfg.Analysis.TopValues]
	}

	maxCount := counts[0].Count
	chart := &chartView{Title: fmt.Sprintf("Top %d values in %q", len(counts), name)}
	for _, vc := range counts {
		chart.Bars = append(chart.Bars, chartBar{
			Label: vc.Value,
			Count: vc.Count,
			Pct:   float64(vc.Count) / float64(maxCount) * 100,
		})
	}
	return chart, nil
}

// numericChart builds a histogram chart for a numeric column.
func (a *App) numericChart(t *table.Table, name string) (*chartView, error) {
	column := t.Column(name)
	if column == nil {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	if column.Kind != table.KindNumeric {
		return nil, fmt.Errorf("column %q is not numeric", name)
	}
	hist := profile.NewHistogram(column.NonNullFloats(), a.cfg.Analysis.HistogramBins)
	if hist == nil {
		return nil, fmt.Errorf("column %q has no non-null values", name)
	}

	maxCount := hist.MaxCount()
	chart := &chartView{Title: fmt.Sprintf("Distribution of %q", name)}
	for i, count := range hist.Counts {
		chart.Bars = append(chart.Bars, chartBar{
			Label: fmt.Sprintf("%.4g - %.4g", hist.Edges[i], hist.Edges[i+1]),
			Count: count,
			Pct:   float64(count) / float64(maxCount) * 100,
		})
	}
	return chart, nil
}

// render executes the page template, buffering first so template errors
// never produce a half-written response.
func (a *App) render(w http.ResponseWriter, view pageView) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, "page.html", view); err != nil {
		a.log.Error("[Dashboard] Template error: %v", err)
		http.Error(w, "template rendering failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
