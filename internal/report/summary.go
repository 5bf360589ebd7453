package report

import (
	"fmt"
	"html/template"
	"strings"

	"goeda/internal/classify"
	"goeda/internal/profile"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// buildSummaryMarkdown writes a short narrative about the dataset in
// markdown. It gets rendered to HTML and embedded at the top of the
// profiling report.
func buildSummaryMarkdown(p *profile.TableProfile, cl *classify.Classification, flagged []classify.FlaggedColumn) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "The dataset **%s** holds %d rows across %d columns: ", p.DatasetName, p.Rows, p.Columns)
	var groups []string
	if len(cl.Numeric) > 0 {
		groups = append(groups, fmt.Sprintf("%d numeric", len(cl.Numeric)))
	}
	if len(cl.Categorical) > 0 {
		groups = append(groups, fmt.Sprintf("%d categorical", len(cl.Categorical)))
	}
	if len(cl.TextLike) > 0 {
		groups = append(groups, fmt.Sprintf("%d text-like", len(cl.TextLike)))
	}
	if len(cl.DateTime) > 0 {
		groups = append(groups, fmt.Sprintf("%d date/time", len(cl.DateTime)))
	}
	if len(groups) == 0 {
		groups = append(groups, "no classified columns")
	}
	fmt.Fprintf(&sb, "%s.\n\n", strings.Join(groups, ", "))

	fmt.Fprintf(&sb, "Overall, %.1f%% of cells are missing", p.OverallMissing*100)
	if p.DuplicateRows > 0 {
		fmt.Fprintf(&sb, " and %d rows are exact duplicates", p.DuplicateRows)
	}
	sb.WriteString(".\n")

	if len(flagged) > 0 {
		sb.WriteString("\nColumns with high missing rates:\n\n")
		for _, column := range flagged {
			fmt.Fprintf(&sb, "- `%s` (%.1f%% missing)\n", column.Name, column.Fraction*100)
		}
	}
	return sb.String()
}

// renderMarkdown converts a markdown narrative into embeddable HTML.
func renderMarkdown(source string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	rendered := markdown.ToHTML([]byte(source), p, renderer)
	return template.HTML(rendered)
}
