// Package classify implements column-type inference over a loaded table:
// string columns are coerced to date/time or numeric storage where the data
// supports it, then every column is assigned to exactly one of four
// disjoint groups (numeric, categorical, text-like, date/time).
package classify

import (
	"regexp"
	"strconv"
	"time"

	"goeda/domain/table"
	"goeda/internal"
)

// ColumnType is the final semantic group of a column.
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
	TypeTextLike    ColumnType = "text_like"
	TypeDateTime    ColumnType = "datetime"
)

const (
	// dateThreshold is the minimum share of non-null values that must look
	// like an ISO date before a column is reclassified as date/time.
	dateThreshold = 0.70
	// digitThreshold is the minimum share of pure-digit values at which a
	// column is kept string-typed, preserving zero-padded codes.
	digitThreshold = 0.90
	// textLengthCutoff separates free text from coded categories by mean
	// value length.
	textLengthCutoff = 40.0

	dateLayout = "2006-01-02"
)

var (
	// isoDatePattern is a prefix match so timestamps like
	// "2024-01-02 10:30" also count as dates.
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	digitPattern   = regexp.MustCompile(`^\d+$`)
)

// Classification maps every column of a table to exactly one type group.
// The four slices preserve table column order; their union covers all
// columns and they are pairwise disjoint.
type Classification struct {
	Numeric     []string
	Categorical []string
	TextLike    []string
	DateTime    []string
	Types       map[string]ColumnType
}

// TypeOf returns the final type of the named column, or "" when unknown.
func (cl *Classification) TypeOf(name string) ColumnType {
	return cl.Types[name]
}

// Classifier performs type coercion and partitioning.
type Classifier struct {
	log *internal.Logger
}

// NewClassifier creates a classifier reporting through the given logger.
func NewClassifier(log *internal.Logger) *Classifier {
	if log == nil {
		log = internal.NewDefaultLogger()
	}
	return &Classifier{log: log}
}

// Classify coerces string columns in place and partitions all columns into
// the four type groups. The table passed in is the one downstream stages
// must keep using; no reload happens after this point.
func (c *Classifier) Classify(t *table.Table) *Classification {
	for _, column := range t.Columns {
		if column.Kind != table.KindString {
			continue
		}
		c.convertColumn(column)
	}

	cl := &Classification{Types: make(map[string]ColumnType, len(t.Columns))}
	for _, column := range t.Columns {
		columnType := finalType(column)
		cl.Types[column.Name] = columnType
		switch columnType {
		case TypeNumeric:
			cl.Numeric = append(cl.Numeric, column.Name)
		case TypeDateTime:
			cl.DateTime = append(cl.DateTime, column.Name)
		case TypeTextLike:
			cl.TextLike = append(cl.TextLike, column.Name)
		default:
			cl.Categorical = append(cl.Categorical, column.Name)
		}
	}

	c.log.Debug("[Classifier] %d numeric, %d categorical, %d text-like, %d datetime",
		len(cl.Numeric), len(cl.Categorical), len(cl.TextLike), len(cl.DateTime))
	return cl
}

// convertColumn applies the coercion rules to one string column, in order:
// date reclassification, digit-code preservation, numeric coercion.
func (c *Classifier) convertColumn(column *table.Column) {
	nonNull := column.NonNullStrings()
	if len(nonNull) == 0 {
		return
	}

	dateMatches := 0
	digitMatches := 0
	numericMatches := 0
	for _, value := range nonNull {
		if isoDatePattern.MatchString(value) {
			dateMatches++
		}
		if digitPattern.MatchString(value) {
			digitMatches++
		}
		if _, err := strconv.ParseFloat(value, 64); err == nil {
			numericMatches++
		}
	}

	total := float64(len(nonNull))
	switch {
	case float64(dateMatches)/total >= dateThreshold:
		c.coerceDates(column)
	case float64(digitMatches)/total >= digitThreshold:
		// Stays string-typed: these are codes, and coercion would strip
		// leading zeros.
	case numericMatches == len(nonNull):
		coerceNumeric(column)
	}
}

// coerceDates converts a string column to date/time storage. Values that
// fail to parse become null cells; the column keeps its date/time type
// regardless of how many values fail.
func (c *Classifier) coerceDates(column *table.Column) {
	times := make([]time.Time, column.Len())
	failed := 0
	for i, isNull := range column.Null {
		if isNull {
			continue
		}
		value := column.Strings[i]
		if len(value) > len(dateLayout) {
			value = value[:len(dateLayout)]
		}
		parsed, err := time.Parse(dateLayout, value)
		if err != nil {
			column.Null[i] = true
			failed++
			continue
		}
		times[i] = parsed
	}
	if failed > 0 {
		c.log.Warn("[Classifier] Column %s: %d values failed date parsing and were nulled", column.Name, failed)
	}
	column.Kind = table.KindDateTime
	column.Times = times
	column.Strings = nil
}

// coerceNumeric converts a string column to float64 storage. Callers ensure
// every non-null value parses.
func coerceNumeric(column *table.Column) {
	floats := make([]float64, column.Len())
	for i, isNull := range column.Null {
		if isNull {
			continue
		}
		parsed, err := strconv.ParseFloat(column.Strings[i], 64)
		if err != nil {
			column.Null[i] = true
			continue
		}
		floats[i] = parsed
	}
	column.Kind = table.KindNumeric
	column.Floats = floats
	column.Strings = nil
}

// finalType assigns the disjoint group for a column after coercion.
// Text-like is carved out of categorical by mean value length.
func finalType(column *table.Column) ColumnType {
	switch column.Kind {
	case table.KindNumeric:
		return TypeNumeric
	case table.KindDateTime:
		return TypeDateTime
	}
	if column.MeanLength() > textLengthCutoff {
		return TypeTextLike
	}
	return TypeCategorical
}
