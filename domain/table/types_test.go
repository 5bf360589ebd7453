package table

import (
	"testing"
	"time"
)

func TestColumnMissingFraction(t *testing.T) {
	column := &Column{
		Name:    "c",
		Kind:    KindString,
		Strings: []string{"a", "", "b", ""},
		Null:    []bool{false, true, false, true},
	}
	if got := column.MissingFraction(); got != 0.5 {
		t.Errorf("MissingFraction = %v, want 0.5", got)
	}

	empty := &Column{Name: "e", Kind: KindString}
	if got := empty.MissingFraction(); got != 0 {
		t.Errorf("empty column MissingFraction = %v, want 0", got)
	}
}

func TestColumnValueCounts_Ordering(t *testing.T) {
	column := &Column{
		Name:    "c",
		Kind:    KindString,
		Strings: []string{"b", "a", "b", "a", "c", ""},
		Null:    []bool{false, false, false, false, false, true},
	}

	counts := column.ValueCounts()
	if len(counts) != 3 {
		t.Fatalf("distinct values = %d, want 3 (null excluded)", len(counts))
	}
	// Count descending, then value ascending for ties.
	if counts[0].Value != "a" || counts[0].Count != 2 {
		t.Errorf("first = %+v, want {a 2}", counts[0])
	}
	if counts[1].Value != "b" || counts[1].Count != 2 {
		t.Errorf("second = %+v, want {b 2}", counts[1])
	}
	if counts[2].Value != "c" || counts[2].Count != 1 {
		t.Errorf("third = %+v, want {c 1}", counts[2])
	}
}

func TestColumnCellString(t *testing.T) {
	numeric := &Column{Name: "n", Kind: KindNumeric, Floats: []float64{1.5, 0}, Null: []bool{false, true}}
	if got := numeric.CellString(0); got != "1.5" {
		t.Errorf("numeric cell = %q, want 1.5", got)
	}
	if got := numeric.CellString(1); got != "" {
		t.Errorf("null cell = %q, want empty", got)
	}

	date := &Column{
		Name:  "d",
		Kind:  KindDateTime,
		Times: []time.Time{time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)},
		Null:  []bool{false},
	}
	if got := date.CellString(0); got != "2024-03-09" {
		t.Errorf("date cell = %q, want 2024-03-09", got)
	}

	if got := numeric.CellString(99); got != "" {
		t.Errorf("out-of-range cell = %q, want empty", got)
	}
}

func TestColumnMeanLength(t *testing.T) {
	column := &Column{
		Name:    "c",
		Kind:    KindString,
		Strings: []string{"ab", "abcd", ""},
		Null:    []bool{false, false, true},
	}
	if got := column.MeanLength(); got != 3 {
		t.Errorf("MeanLength = %v, want 3", got)
	}
}

func TestTableRowAndDuplicates(t *testing.T) {
	tbl := &Table{
		Name: "t",
		Columns: []*Column{
			{Name: "a", Kind: KindString, Strings: []string{"x", "y", "x"}, Null: []bool{false, false, false}},
			{Name: "b", Kind: KindString, Strings: []string{"1", "2", "1"}, Null: []bool{false, false, false}},
		},
		Rows: 3,
	}

	row := tbl.Row(1)
	if row[0] != "y" || row[1] != "2" {
		t.Errorf("Row(1) = %v, want [y 2]", row)
	}
	if got := tbl.DuplicateRowCount(); got != 1 {
		t.Errorf("DuplicateRowCount = %d, want 1", got)
	}
	if tbl.Column("missing") != nil {
		t.Error("unknown column should return nil")
	}
}

func TestColumnUniqueCount(t *testing.T) {
	column := &Column{
		Name:    "c",
		Kind:    KindString,
		Strings: []string{"a", "a", "b", ""},
		Null:    []bool{false, false, false, true},
	}
	if got := column.UniqueCount(); got != 2 {
		t.Errorf("UniqueCount = %d, want 2", got)
	}
}
