package report

import (
	"fmt"
	"html/template"

	"goeda/domain/table"
	"goeda/internal/profile"
)

// View models handed to the report templates. All scaling and formatting is
// done here so the templates stay declarative.

type barView struct {
	Label string
	Count int
	Pct   float64
}

type statRow struct {
	Label string
	Value string
}

type overviewView struct {
	Rows             int
	Columns          int
	MissingPct       string
	DuplicateRows    int
	NumericCount     int
	CategoricalCount int
	TextLikeCount    int
	DateTimeCount    int
}

type columnView struct {
	Name       string
	Type       string
	Count      int
	Missing    int
	MissingPct string
	Unique     int
	Stats      []statRow
	Histogram  []barView
	Bars       []barView
}

type profilingView struct {
	Title       string
	GeneratedAt string
	Overview    overviewView
	SummaryHTML template.HTML
	Columns     []columnView
}

type heatCell struct {
	Display   string
	Color     string
	TextColor string
}

type heatRow struct {
	Name  string
	Cells []heatCell
}

type heatmapView struct {
	Title   string
	Columns []string
	Rows    []heatRow
}

type barChartView struct {
	Title string
	Bars  []barView
}

type comparisonRow struct {
	Label string
	Base  string
	Other string
}

type comparisonColumn struct {
	Name string
	Type string
	Rows []comparisonRow
}

type comparisonView struct {
	Title       string
	GeneratedAt string
	BaseLabel   string
	OtherLabel  string
	BaseRows    int
	OtherRows   int
	Columns     []comparisonColumn
}

// buildColumnView converts one column profile into its template form.
func buildColumnView(cp profile.ColumnProfile) columnView {
	view := columnView{
		Name:       cp.Name,
		Type:       string(cp.Type),
		Count:      cp.Count,
		Missing:    cp.Missing,
		MissingPct: fmt.Sprintf("%.1f%%", cp.MissingFraction*100),
		Unique:     cp.Unique,
	}

	if cp.Numeric != nil {
		s := cp.Numeric
		view.Stats = []statRow{
			{Label: "Mean", Value: formatStat(s.Mean)},
			{Label: "Median", Value: formatStat(s.Median)},
			{Label: "Std dev", Value: formatStat(s.StdDev)},
			{Label: "Min", Value: formatStat(s.Min)},
			{Label: "Max", Value: formatStat(s.Max)},
			{Label: "Q25 / Q75", Value: formatStat(s.Q25) + " / " + formatStat(s.Q75)},
			{Label: "Skewness", Value: formatStat(s.Skewness)},
			{Label: "Kurtosis", Value: formatStat(s.Kurtosis)},
			{Label: "Outliers (IQR)", Value: fmt.Sprintf("%d", s.Outliers)},
		}
	}
	if cp.Histogram != nil {
		view.Histogram = buildHistogramBars(cp.Histogram)
	}
	if len(cp.TopValues) > 0 {
		view.Bars = buildBars(cp.TopValues)
	}
	return view
}

// buildHistogramBars scales bin counts to percentage heights.
func buildHistogramBars(h *profile.Histogram) []barView {
	maxCount := h.MaxCount()
	if maxCount == 0 {
		return nil
	}
	bars := make([]barView, len(h.Counts))
	for i, count := range h.Counts {
		bars[i] = barView{
			Label: fmt.Sprintf("%s - %s", formatStat(h.Edges[i]), formatStat(h.Edges[i+1])),
			Count: count,
			Pct:   float64(count) / float64(maxCount) * 100,
		}
	}
	return bars
}

// buildBars scales value counts to percentage widths against the top value.
func buildBars(counts []table.ValueCount) []barView {
	if len(counts) == 0 {
		return nil
	}
	maxCount := counts[0].Count
	for _, vc := range counts {
		if vc.Count > maxCount {
			maxCount = vc.Count
		}
	}
	bars := make([]barView, len(counts))
	for i, vc := range counts {
		bars[i] = barView{
			Label: vc.Value,
			Count: vc.Count,
			Pct:   float64(vc.Count) / float64(maxCount) * 100,
		}
	}
	return bars
}

// heatColor maps a correlation coefficient in [-1,1] onto a diverging
// blue-white-red scale. Hex form: functional CSS values get rejected by the
// template sanitizer.
func heatColor(r float64) (background, text string) {
	if r > 1 {
		r = 1
	}
	if r < -1 {
		r = -1
	}
	var red, green, blue int
	if r >= 0 {
		// white -> red
		red = 255
		green = int(255 * (1 - r))
		blue = int(255 * (1 - r))
	} else {
		// white -> blue
		red = int(255 * (1 + r))
		green = int(255 * (1 + r))
		blue = 255
	}
	text = "#2d3436"
	if r > 0.6 || r < -0.6 {
		text = "#ffffff"
	}
	return fmt.Sprintf("#%02x%02x%02x", red, green, blue), text
}

func formatStat(f float64) string {
	return fmt.Sprintf("%.4g", f)
}
