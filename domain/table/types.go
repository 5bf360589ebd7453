// Package table defines the in-memory tabular model shared by the loader,
// the classifier, and every report generator. A Table is column-major:
// ordered named columns over a fixed row count, with a per-row null mask.
package table

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind represents the storage type of a column after classification.
type Kind string

const (
	// KindString is the kind every column starts with after loading.
	KindString Kind = "string"
	// KindNumeric marks columns stored as float64 values.
	KindNumeric Kind = "numeric"
	// KindDateTime marks columns stored as time.Time values.
	KindDateTime Kind = "datetime"
)

// Column is a single named column. Exactly one of Strings, Floats, Times is
// populated depending on Kind; Null always has one entry per row.
type Column struct {
	Name    string
	Kind    Kind
	Strings []string
	Floats  []float64
	Times   []time.Time
	Null    []bool
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	return len(c.Null)
}

// NonNullCount returns the number of rows that are not null.
func (c *Column) NonNullCount() int {
	count := 0
	for _, isNull := range c.Null {
		if !isNull {
			count++
		}
	}
	return count
}

// MissingFraction returns the proportion of null rows in [0,1].
// An empty column reports 0.
func (c *Column) MissingFraction() float64 {
	if c.Len() == 0 {
		return 0
	}
	return float64(c.Len()-c.NonNullCount()) / float64(c.Len())
}

// NonNullStrings returns the non-null raw string values in row order.
// Only meaningful for KindString columns.
func (c *Column) NonNullStrings() []string {
	values := make([]string, 0, c.Len())
	for i, isNull := range c.Null {
		if !isNull && i < len(c.Strings) {
			values = append(values, c.Strings[i])
		}
	}
	return values
}

// NonNullFloats returns the non-null numeric values in row order.
// Only meaningful for KindNumeric columns.
func (c *Column) NonNullFloats() []float64 {
	values := make([]float64, 0, c.Len())
	for i, isNull := range c.Null {
		if !isNull && i < len(c.Floats) {
			values = append(values, c.Floats[i])
		}
	}
	return values
}

// UniqueCount returns the cardinality of the column over non-null values.
func (c *Column) UniqueCount() int {
	seen := make(map[string]bool)
	for i, isNull := range c.Null {
		if isNull {
			continue
		}
		seen[c.CellString(i)] = true
	}
	return len(seen)
}

// MeanLength returns the mean character length of non-null string values.
func (c *Column) MeanLength() float64 {
	total := 0
	count := 0
	for i, isNull := range c.Null {
		if isNull || i >= len(c.Strings) {
			continue
		}
		total += len([]rune(c.Strings[i]))
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

// ValueCount pairs a distinct value with its occurrence count.
type ValueCount struct {
	Value string
	Count int
}

// ValueCounts returns distinct non-null values with counts, sorted by count
// descending then value ascending for a stable order.
func (c *Column) ValueCounts() []ValueCount {
	counts := make(map[string]int)
	for i, isNull := range c.Null {
		if isNull {
			continue
		}
		counts[c.CellString(i)]++
	}
	result := make([]ValueCount, 0, len(counts))
	for value, count := range counts {
		result = append(result, ValueCount{Value: value, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Value < result[j].Value
	})
	return result
}

// CellString renders the value at row i as a string; null cells render as "".
func (c *Column) CellString(i int) string {
	if i < 0 || i >= c.Len() || c.Null[i] {
		return ""
	}
	switch c.Kind {
	case KindNumeric:
		return strconv.FormatFloat(c.Floats[i], 'f', -1, 64)
	case KindDateTime:
		return c.Times[i].Format("2006-01-02")
	default:
		return c.Strings[i]
	}
}

// Table is an ordered collection of named columns over a fixed row count.
// Row order is preserved from the source file; column order from the header.
type Table struct {
	Name    string
	Columns []*Column
	Rows    int
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Row renders row i as strings in column order; null cells render as "".
func (t *Table) Row(i int) []string {
	row := make([]string, len(t.Columns))
	for j, c := range t.Columns {
		row[j] = c.CellString(i)
	}
	return row
}

// DuplicateRowCount returns the number of rows that are exact duplicates of
// an earlier row.
func (t *Table) DuplicateRowCount() int {
	seen := make(map[string]bool)
	duplicates := 0
	for i := 0; i < t.Rows; i++ {
		key := strings.Join(t.Row(i), "\x1f")
		if seen[key] {
			duplicates++
		}
		seen[key] = true
	}
	return duplicates
}
