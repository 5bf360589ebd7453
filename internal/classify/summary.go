package classify

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// FormatSummary renders the column-type groups as an aligned text table.
// Presentation only; callers decide where the string goes.
func FormatSummary(cl *Classification) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Type\tColumns")
	fmt.Fprintf(w, "Numerical\t%s\n", joinOrDash(cl.Numeric))
	fmt.Fprintf(w, "Categorical\t%s\n", joinOrDash(cl.Categorical))
	fmt.Fprintf(w, "Text-like\t%s\n", joinOrDash(cl.TextLike))
	fmt.Fprintf(w, "Date/Time\t%s\n", joinOrDash(cl.DateTime))
	w.Flush()
	return strings.TrimRight(sb.String(), "\n")
}

// FormatFlagged renders the missing-value audit result for console output.
func FormatFlagged(flagged []FlaggedColumn, threshold float64) string {
	if len(flagged) == 0 {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "High missing value columns (> %.0f%%):\n", threshold*100)
	for _, column := range flagged {
		fmt.Fprintf(&sb, "  - %s: %.1f%%\n", column.Name, column.Fraction*100)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func joinOrDash(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
