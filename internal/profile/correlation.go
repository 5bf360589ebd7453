package profile

import (
	"goeda/domain/table"

	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix holds pairwise Pearson coefficients over the numeric
// columns of a table, in table column order.
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64
}

// Correlations computes the Pearson correlation matrix over the named
// numeric columns, using pairwise-complete observations. Returns nil when
// fewer than one numeric column exists.
func Correlations(t *table.Table, numeric []string) *CorrelationMatrix {
	if len(numeric) == 0 {
		return nil
	}

	columns := make([]*table.Column, 0, len(numeric))
	for _, name := range numeric {
		if column := t.Column(name); column != nil && column.Kind == table.KindNumeric {
			columns = append(columns, column)
		}
	}
	if len(columns) == 0 {
		return nil
	}

	matrix := &CorrelationMatrix{
		Columns: make([]string, len(columns)),
		Values:  make([][]float64, len(columns)),
	}
	for i, column := range columns {
		matrix.Columns[i] = column.Name
		matrix.Values[i] = make([]float64, len(columns))
	}

	for i := range columns {
		matrix.Values[i][i] = 1
		for j := i + 1; j < len(columns); j++ {
			r := pairwiseCorrelation(columns[i], columns[j])
			matrix.Values[i][j] = r
			matrix.Values[j][i] = r
		}
	}
	return matrix
}

// pairwiseCorrelation computes Pearson's r over rows where both columns are
// non-null. Degenerate pairs (under two shared rows, zero variance) report 0.
func pairwiseCorrelation(a, b *table.Column) float64 {
	var x, y []float64
	for i := 0; i < a.Len() && i < b.Len(); i++ {
		if a.Null[i] || b.Null[i] {
			continue
		}
		x = append(x, a.Floats[i])
		y = append(y, b.Floats[i])
	}
	if len(x) < 2 {
		return 0
	}

	r := stat.Correlation(x, y, nil)
	if r != r { // NaN from zero variance
		return 0
	}
	return r
}
