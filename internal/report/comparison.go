package report

import (
	"fmt"
	"html/template"
	"math/rand"
	"path/filepath"
	"time"

	"goeda/domain/table"
	"goeda/internal/classify"
	"goeda/internal/profile"
)

// GenerateComparison renders a side-by-side comparison of the full dataset
// against a fresh random sample, per column, and returns the written path.
// Distributional drift between the two sides points at sampling artifacts.
func GenerateComparison(templates *template.Template, profiler *profile.Profiler, t *table.Table,
	cl *classify.Classification, fullProfile *profile.TableProfile, sampleSize int, rng *rand.Rand,
	outputDir string) (string, error) {

	sample := SampleTable(t, SampleRows(t, sampleSize, rng))
	sampleProfile := profiler.Profile(sample, cl)

	view := comparisonView{
		Title:       fmt.Sprintf("%s Comparison Report", t.Name),
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		BaseLabel:   "Full dataset",
		OtherLabel:  "Random sample",
		BaseRows:    t.Rows,
		OtherRows:   sample.Rows,
	}

	sampleByName := make(map[string]profile.ColumnProfile, len(sampleProfile.ColumnProfiles))
	for _, cp := range sampleProfile.ColumnProfiles {
		sampleByName[cp.Name] = cp
	}
	for _, base := range fullProfile.ColumnProfiles {
		view.Columns = append(view.Columns, compareColumn(base, sampleByName[base.Name]))
	}

	path := filepath.Join(outputDir, fmt.Sprintf("%s_comparison.html", t.Name))
	if err := renderToFile(templates, "comparison.html", path, view); err != nil {
		return "", err
	}
	return path, nil
}

// compareColumn builds the side-by-side rows for one column.
func compareColumn(base, other profile.ColumnProfile) comparisonColumn {
	column := comparisonColumn{Name: base.Name, Type: string(base.Type)}
	add := func(label, baseValue, otherValue string) {
		column.Rows = append(column.Rows, comparisonRow{Label: label, Base: baseValue, Other: otherValue})
	}

	add("Non-null", fmt.Sprintf("%d", base.Count), fmt.Sprintf("%d", other.Count))
	add("Missing", fmt.Sprintf("%.1f%%", base.MissingFraction*100), fmt.Sprintf("%.1f%%", other.MissingFraction*100))
	add("Unique", fmt.Sprintf("%d", base.Unique), fmt.Sprintf("%d", other.Unique))

	if base.Numeric != nil && other.Numeric != nil {
		add("Mean", formatStat(base.Numeric.Mean), formatStat(other.Numeric.Mean))
		add("Median", formatStat(base.Numeric.Median), formatStat(other.Numeric.Median))
		add("Std dev", formatStat(base.Numeric.StdDev), formatStat(other.Numeric.StdDev))
		add("Min", formatStat(base.Numeric.Min), formatStat(other.Numeric.Min))
		add("Max", formatStat(base.Numeric.Max), formatStat(other.Numeric.Max))
	}
	if len(base.TopValues) > 0 {
		add("Top value", topValueDisplay(base.TopValues), topValueDisplay(other.TopValues))
	}
	return column
}

func topValueDisplay(counts []table.ValueCount) string {
	if len(counts) == 0 {
		return "-"
	}
	return fmt.Sprintf("%s (%d)", counts[0].Value, counts[0].Count)
}
