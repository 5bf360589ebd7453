// Package profile computes the per-column and whole-table statistics behind
// the profiling and comparison reports. Computation only; HTML rendering
// lives in the report package.
package profile

import (
	"time"

	"goeda/domain/table"
	"goeda/internal"
	"goeda/internal/classify"

	"github.com/montanaflynn/stats"
)

// TableProfile is the full statistical profile of one table.
type TableProfile struct {
	DatasetName    string
	Rows           int
	Columns        int
	OverallMissing float64
	DuplicateRows  int
	GeneratedAt    time.Time
	ColumnProfiles []ColumnProfile
}

// ColumnProfile summarizes a single column. Numeric and Histogram are set
// for numeric columns; TopValues for categorical and text-like columns.
type ColumnProfile struct {
	Name            string
	Type            classify.ColumnType
	Count           int
	Missing         int
	MissingFraction float64
	Unique          int
	Numeric         *NumericSummary
	TopValues       []table.ValueCount
	Histogram       *Histogram
}

// NumericSummary holds descriptive statistics for a numeric column.
type NumericSummary struct {
	Mean       float64
	Median     float64
	StdDev     float64
	Min        float64
	Max        float64
	Q25        float64
	Q75        float64
	Skewness   float64
	Kurtosis   float64
	NormalityP float64
	IsNormal   bool
	Outliers   int
}

// Profiler computes table profiles.
type Profiler struct {
	log       *internal.Logger
	bins      int
	topValues int
}

// NewProfiler creates a profiler with the given histogram bin count and
// top-value limit.
func NewProfiler(log *internal.Logger, bins, topValues int) *Profiler {
	if log == nil {
		log = internal.NewDefaultLogger()
	}
	if bins <= 0 {
		bins = 30
	}
	if topValues <= 0 {
		topValues = 20
	}
	return &Profiler{log: log, bins: bins, topValues: topValues}
}

// Profile computes the full profile of a classified table.
func (p *Profiler) Profile(t *table.Table, cl *classify.Classification) *TableProfile {
	result := &TableProfile{
		DatasetName:   t.Name,
		Rows:          t.Rows,
		Columns:       len(t.Columns),
		DuplicateRows: t.DuplicateRowCount(),
		GeneratedAt:   time.Now(),
	}

	totalCells := t.Rows * len(t.Columns)
	missingCells := 0
	for _, column := range t.Columns {
		missing := column.Len() - column.NonNullCount()
		missingCells += missing
		result.ColumnProfiles = append(result.ColumnProfiles, p.profileColumn(column, cl.TypeOf(column.Name)))
	}
	if totalCells > 0 {
		result.OverallMissing = float64(missingCells) / float64(totalCells)
	}

	p.log.Debug("[Profiler] Profiled %s: %d columns, %d rows, %.1f%% missing",
		t.Name, result.Columns, result.Rows, result.OverallMissing*100)
	return result
}

func (p *Profiler) profileColumn(column *table.Column, columnType classify.ColumnType) ColumnProfile {
	cp := ColumnProfile{
		Name:            column.Name,
		Type:            columnType,
		Count:           column.NonNullCount(),
		Missing:         column.Len() - column.NonNullCount(),
		MissingFraction: column.MissingFraction(),
		Unique:          column.UniqueCount(),
	}

	if column.Kind == table.KindNumeric {
		values := column.NonNullFloats()
		cp.Numeric = summarizeNumeric(values)
		cp.Histogram = NewHistogram(values, p.bins)
	} else {
		topValues := column.ValueCounts()
		if len(topValues) > p.topValues {
			topValues = topValues[:p.topValues]
		}
		cp.TopValues = topValues
	}
	return cp
}

// summarizeNumeric computes descriptive statistics over non-null values.
// Returns nil when there is nothing to summarize.
func summarizeNumeric(values []float64) *NumericSummary {
	if len(values) == 0 {
		return nil
	}

	summary := &NumericSummary{}
	summary.Mean, _ = stats.Mean(values)
	summary.Median, _ = stats.Median(values)
	summary.StdDev, _ = stats.StandardDeviation(values)
	summary.Min, _ = stats.Min(values)
	summary.Max, _ = stats.Max(values)
	summary.Q25, _ = stats.Percentile(values, 25)
	summary.Q75, _ = stats.Percentile(values, 75)
	summary.Skewness = calculateSkewness(values, summary.Mean, summary.StdDev)
	summary.Kurtosis = calculateKurtosis(values, summary.Mean, summary.StdDev)
	summary.IsNormal, summary.NormalityP = testNormality(summary.Skewness, summary.Kurtosis, len(values))
	summary.Outliers = countOutliers(values, summary.Q25, summary.Q75)
	return summary
}

// countOutliers identifies outliers using the IQR method.
func countOutliers(values []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lower := q25 - 1.5*iqr
	upper := q75 + 1.5*iqr

	count := 0
	for _, v := range values {
		if v < lower || v > upper {
			count++
		}
	}
	return count
}
