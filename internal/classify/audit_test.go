package classify

import (
	"testing"

	"goeda/domain/table"
)

// columnWithMissing builds a 20-row string column with the given number of
// null cells.
func columnWithMissing(name string, nulls int) *table.Column {
	const rows = 20
	column := &table.Column{
		Name:    name,
		Kind:    table.KindString,
		Strings: make([]string, rows),
		Null:    make([]bool, rows),
	}
	for i := 0; i < rows; i++ {
		if i < nulls {
			column.Null[i] = true
		} else {
			column.Strings[i] = "v"
		}
	}
	return column
}

func TestAuditMissing(t *testing.T) {
	tbl := tableOf(
		columnWithMissing("half", 10),    // 0.50
		columnWithMissing("clean", 2),    // 0.10
		columnWithMissing("partial", 7),  // 0.35
		columnWithMissing("boundary", 6), // 0.30 exactly
	)

	report := AuditMissing(tbl)
	if got := report.Fractions["half"]; got != 0.5 {
		t.Errorf("fraction(half) = %v, want 0.5", got)
	}
	if got := report.Fractions["boundary"]; got != 0.3 {
		t.Errorf("fraction(boundary) = %v, want 0.3", got)
	}

	flagged := report.Flagged(0.3)
	if len(flagged) != 2 {
		t.Fatalf("flagged %d columns, want 2: %v", len(flagged), flagged)
	}
	// Sorted by fraction descending; exactly-at-threshold is not flagged.
	if flagged[0].Name != "half" || flagged[1].Name != "partial" {
		t.Errorf("flagged order = [%s %s], want [half partial]", flagged[0].Name, flagged[1].Name)
	}
}

func TestFlagged_TieBreaksByName(t *testing.T) {
	tbl := tableOf(
		columnWithMissing("zeta", 10),
		columnWithMissing("alpha", 10),
	)

	flagged := AuditMissing(tbl).Flagged(0.3)
	if len(flagged) != 2 {
		t.Fatalf("flagged %d columns, want 2", len(flagged))
	}
	if flagged[0].Name != "alpha" {
		t.Errorf("tie should break alphabetically, got %s first", flagged[0].Name)
	}
}

func TestFlagged_NoneOverThreshold(t *testing.T) {
	tbl := tableOf(columnWithMissing("clean", 0))

	if flagged := AuditMissing(tbl).Flagged(0.3); len(flagged) != 0 {
		t.Errorf("expected no flagged columns, got %v", flagged)
	}
}
