package report

import (
	"fmt"
	"html/template"

	"goeda/domain/table"
	"goeda/internal/classify"
	"goeda/internal/profile"
)

// GenerateProfiling renders the per-column profiling report to path and
// returns it. Both the CLI bundle and the dashboard's on-demand report go
// through here.
func GenerateProfiling(templates *template.Template, t *table.Table, cl *classify.Classification,
	p *profile.TableProfile, flagged []classify.FlaggedColumn, path string) (string, error) {

	view := profilingView{
		Title:       fmt.Sprintf("%s Profiling Report", t.Name),
		GeneratedAt: p.GeneratedAt.Format("2006-01-02 15:04:05"),
		SummaryHTML: renderMarkdown(buildSummaryMarkdown(p, cl, flagged)),
		Overview: overviewView{
			Rows:             p.Rows,
			Columns:          p.Columns,
			MissingPct:       fmt.Sprintf("%.1f%%", p.OverallMissing*100),
			DuplicateRows:    p.DuplicateRows,
			NumericCount:     len(cl.Numeric),
			CategoricalCount: len(cl.Categorical),
			TextLikeCount:    len(cl.TextLike),
			DateTimeCount:    len(cl.DateTime),
		},
	}
	for _, cp := range p.ColumnProfiles {
		view.Columns = append(view.Columns, buildColumnView(cp))
	}

	if err := renderToFile(templates, "profiling.html", path, view); err != nil {
		return "", err
	}
	return path, nil
}
