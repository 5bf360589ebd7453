// Package report renders the HTML report bundle for a dataset and sequences
// the full pipeline: load, classify, audit, then the independent report
// stages. Every stage returns an explicit result; a failed stage is logged
// and the remaining stages still run.
package report

import (
	"context"
	"fmt"
	"html/template"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"goeda/domain/table"
	"goeda/internal"
	"goeda/internal/classify"
	"goeda/internal/config"
	"goeda/internal/history"
	"goeda/internal/loader"
	"goeda/internal/profile"
)

// Options toggles the optional report stages of a run.
type Options struct {
	SkipProfile    bool
	SkipComparison bool
	SkipSample     bool
	// Seed fixes the sampling RNG; 0 means time-based.
	Seed int64
}

// StageStatus is the outcome of one report stage.
type StageStatus string

const (
	StageOK      StageStatus = "ok"
	StageFailed  StageStatus = "failed"
	StageSkipped StageStatus = "skipped"
)

// StageOutcome records what happened to one stage of a run.
type StageOutcome struct {
	Name     string
	Status   StageStatus
	Artifact string
	Err      error
}

// RunResult summarizes one dataset run.
type RunResult struct {
	Dataset    string
	OutputDir  string
	Stages     []StageOutcome
	StartedAt  time.Time
	FinishedAt time.Time
}

// Failed returns the stages that ended in failure.
func (r *RunResult) Failed() []StageOutcome {
	var failed []StageOutcome
	for _, stage := range r.Stages {
		if stage.Status == StageFailed {
			failed = append(failed, stage)
		}
	}
	return failed
}

// Orchestrator wires the loader, classifier, auditor, and report generators
// into the per-dataset pipeline.
type Orchestrator struct {
	log        *internal.Logger
	cfg        *config.Config
	loader     *loader.Loader
	classifier *classify.Classifier
	profiler   *profile.Profiler
	templates  *template.Template
	ledger     *history.Ledger
}

// NewOrchestrator creates an orchestrator. The ledger may be nil, in which
// case runs are not recorded.
func NewOrchestrator(log *internal.Logger, cfg *config.Config, ledger *history.Ledger) (*Orchestrator, error) {
	if log == nil {
		log = internal.NewDefaultLogger()
	}
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Orchestrator{
		log:        log,
		cfg:        cfg,
		loader:     loader.NewLoader(log),
		classifier: classify.NewClassifier(log),
		profiler:   profile.NewProfiler(log, cfg.Analysis.HistogramBins, cfg.Analysis.TopValues),
		templates:  templates,
		ledger:     ledger,
	}, nil
}

// Run executes the full pipeline for one dataset file. A load failure
// aborts the run; stage failures are recorded and the run continues.
func (o *Orchestrator) Run(ctx context.Context, path string, opts Options) (*RunResult, error) {
	startedAt := time.Now()

	t, err := o.loader.Load(path)
	if err != nil {
		o.log.Error("[Orchestrator] Failed to load %s: %v", path, err)
		o.record(ctx, filepath.Base(path), "", "load_failed", nil, startedAt)
		return nil, err
	}

	// Classification, audit, and every report stage below operate on this
	// single Table instance.
	cl := o.classifier.Classify(t)
	o.log.Println(classify.FormatSummary(cl))

	missing := classify.AuditMissing(t)
	flagged := missing.Flagged(o.cfg.Analysis.MissingThreshold)
	if len(flagged) > 0 {
		o.log.Println(classify.FormatFlagged(flagged, o.cfg.Analysis.MissingThreshold))
	}

	outputDir, err := o.createOutputDir(t.Name, startedAt)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	tableProfile := o.profiler.Profile(t, cl)
	result := &RunResult{Dataset: t.Name, OutputDir: outputDir, StartedAt: startedAt}

	o.runStage(result, "profiling", opts.SkipProfile, func() (string, error) {
		path := filepath.Join(outputDir, fmt.Sprintf("%s_profiling.html", t.Name))
		return GenerateProfiling(o.templates, t, cl, tableProfile, flagged, path)
	})
	o.runStage(result, "comparison", opts.SkipComparison, func() (string, error) {
		return GenerateComparison(o.templates, o.profiler, t, cl, tableProfile, o.cfg.Analysis.SampleSize, rng, outputDir)
	})
	o.runStage(result, "sample", opts.SkipSample, func() (string, error) {
		return GenerateSample(t, o.cfg.Analysis.SampleSize, rng, outputDir)
	})
	o.runHeatmapStage(result, t, cl, outputDir)
	o.runBarChartStage(result, t, cl, outputDir)

	result.FinishedAt = time.Now()
	status := "ok"
	if len(result.Failed()) > 0 {
		status = "partial"
	}
	o.record(ctx, t.Name, outputDir, status, result.Stages, startedAt)

	o.log.Info("[Orchestrator] All EDA complete for %s (%s)", t.Name, outputDir)
	return result, nil
}

// RunAll executes the pipeline for every CSV in the raw-data directory,
// sequentially and independently: one dataset's failure never affects the
// others.
func (o *Orchestrator) RunAll(ctx context.Context, opts Options) error {
	pattern := filepath.Join(o.cfg.Paths.RawDataDir, "*.csv")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", pattern, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no CSV files found in %s", o.cfg.Paths.RawDataDir)
	}
	sort.Strings(files)

	for _, file := range files {
		if _, err := o.Run(ctx, file, opts); err != nil {
			o.log.Error("[Orchestrator] Skipping %s: %v", file, err)
		}
	}
	return nil
}

// runStage executes one optional report stage and records its outcome.
func (o *Orchestrator) runStage(result *RunResult, name string, skip bool, generate func() (string, error)) {
	if skip {
		o.log.Info("[Orchestrator] Stage %s skipped", name)
		result.Stages = append(result.Stages, StageOutcome{Name: name, Status: StageSkipped})
		return
	}

	artifact, err := generate()
	if err != nil {
		o.log.Error("[Orchestrator] Stage %s failed: %v", name, err)
		result.Stages = append(result.Stages, StageOutcome{Name: name, Status: StageFailed, Err: err})
		return
	}
	o.log.Info("[Orchestrator] Stage %s wrote %s", name, artifact)
	result.Stages = append(result.Stages, StageOutcome{Name: name, Status: StageOK, Artifact: artifact})
}

// runHeatmapStage renders the correlation heatmap, skipping with a warning
// when the table has no numeric columns.
func (o *Orchestrator) runHeatmapStage(result *RunResult, t *table.Table, cl *classify.Classification, outputDir string) {
	matrix := profile.Correlations(t, cl.Numeric)
	if matrix == nil {
		o.log.Warn("[Orchestrator] No numeric columns to plot correlation heatmap")
		result.Stages = append(result.Stages, StageOutcome{Name: "heatmap", Status: StageSkipped})
		return
	}
	o.runStage(result, "heatmap", false, func() (string, error) {
		return GenerateHeatmap(o.templates, t, matrix, outputDir)
	})
}

// runBarChartStage renders one bar chart per low-cardinality categorical
// column. A single chart failing does not stop the remaining charts.
func (o *Orchestrator) runBarChartStage(result *RunResult, t *table.Table, cl *classify.Classification, outputDir string) {
	written := 0
	var firstErr error
	for _, name := range cl.Categorical {
		column := t.Column(name)
		if column == nil || column.UniqueCount() > o.cfg.Analysis.MaxBarCardinality {
			continue
		}
		if _, err := GenerateBarChart(o.templates, t, column, outputDir); err != nil {
			o.log.Error("[Orchestrator] Bar chart for %s failed: %v", name, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		written++
	}

	outcome := StageOutcome{Name: "bar_charts", Status: StageOK, Artifact: fmt.Sprintf("%d charts", written)}
	if firstErr != nil {
		outcome.Status = StageFailed
		outcome.Err = firstErr
	}
	result.Stages = append(result.Stages, outcome)
	o.log.Info("[Orchestrator] Categorical bar charts saved (%d)", written)
}

// createOutputDir creates the timestamped bundle directory plus its viz
// subdirectory.
func (o *Orchestrator) createOutputDir(dataset string, startedAt time.Time) (string, error) {
	outputDir := filepath.Join(o.cfg.Paths.ReportsDir,
		fmt.Sprintf("%s_%s", dataset, startedAt.Format("2006-01-02_15-04-05")))
	if err := os.MkdirAll(filepath.Join(outputDir, "viz"), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	return outputDir, nil
}

// record appends the run to the history ledger, best-effort.
func (o *Orchestrator) record(ctx context.Context, dataset, outputDir, status string,
	stages []StageOutcome, startedAt time.Time) {

	if o.ledger == nil {
		return
	}
	records := make([]history.StageRecord, len(stages))
	for i, stage := range stages {
		records[i] = history.StageRecord{
			Name:     stage.Name,
			Status:   string(stage.Status),
			Artifact: stage.Artifact,
		}
		if stage.Err != nil {
			records[i].Error = stage.Err.Error()
		}
	}
	if _, err := o.ledger.Record(ctx, dataset, outputDir, status, records, startedAt, time.Now()); err != nil {
		o.log.Warn("[Orchestrator] Failed to record run history: %v", err)
	}
}
