package report

import (
	"fmt"
	"html/template"
	"path/filepath"

	"goeda/domain/table"
	"goeda/internal/profile"
)

// GenerateHeatmap renders the correlation heatmap over the numeric columns
// into the viz subdirectory and returns the written path. Callers are
// expected to skip the stage when no numeric columns exist.
func GenerateHeatmap(templates *template.Template, t *table.Table, matrix *profile.CorrelationMatrix,
	outputDir string) (string, error) {

	view := heatmapView{
		Title:   "Correlation Heatmap",
		Columns: matrix.Columns,
	}
	for i, name := range matrix.Columns {
		row := heatRow{Name: name, Cells: make([]heatCell, len(matrix.Columns))}
		for j, r := range matrix.Values[i] {
			background, text := heatColor(r)
			row.Cells[j] = heatCell{
				Display:   fmt.Sprintf("%.2f", r),
				Color:     background,
				TextColor: text,
			}
		}
		view.Rows = append(view.Rows, row)
	}

	path := filepath.Join(outputDir, "viz", fmt.Sprintf("%s_correlation_heatmap.html", t.Name))
	if err := renderToFile(templates, "heatmap.html", path, view); err != nil {
		return "", err
	}
	return path, nil
}

// GenerateBarChart renders a frequency bar chart for one categorical column
// and returns the written path.
func GenerateBarChart(templates *template.Template, t *table.Table, column *table.Column,
	outputDir string) (string, error) {

	view := barChartView{
		Title: fmt.Sprintf("Distribution of %s", column.Name),
		Bars:  buildBars(column.ValueCounts()),
	}

	path := filepath.Join(outputDir, "viz", fmt.Sprintf("%s_%s_bar.html", t.Name, column.Name))
	if err := renderToFile(templates, "barchart.html", path, view); err != nil {
		return "", err
	}
	return path, nil
}
