package classify

import (
	"sort"

	"goeda/domain/table"
)

// MissingReport holds per-column null fractions for one table. Purely
// diagnostic; computing it never alters the table.
type MissingReport struct {
	Fractions map[string]float64
}

// FlaggedColumn is a column whose missing fraction exceeded the threshold.
type FlaggedColumn struct {
	Name     string
	Fraction float64
}

// AuditMissing computes the fraction of null entries per column.
func AuditMissing(t *table.Table) MissingReport {
	fractions := make(map[string]float64, len(t.Columns))
	for _, column := range t.Columns {
		fractions[column.Name] = column.MissingFraction()
	}
	return MissingReport{Fractions: fractions}
}

// Flagged returns the columns whose fraction strictly exceeds the threshold,
// sorted descending by fraction with name as tiebreaker.
func (r MissingReport) Flagged(threshold float64) []FlaggedColumn {
	var flagged []FlaggedColumn
	for name, fraction := range r.Fractions {
		if fraction > threshold {
			flagged = append(flagged, FlaggedColumn{Name: name, Fraction: fraction})
		}
	}
	sort.Slice(flagged, func(i, j int) bool {
		if flagged[i].Fraction != flagged[j].Fraction {
			return flagged[i].Fraction > flagged[j].Fraction
		}
		return flagged[i].Name < flagged[j].Name
	})
	return flagged
}
