package report

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"goeda/domain/table"
	"goeda/internal/errors"
)

// SampleRows picks min(n, rows) distinct row indices uniformly at random,
// returned in original row order.
func SampleRows(t *table.Table, n int, rng *rand.Rand) []int {
	if n >= t.Rows {
		indices := make([]int, t.Rows)
		for i := range indices {
			indices[i] = i
		}
		return indices
	}

	perm := rng.Perm(t.Rows)[:n]
	selected := make(map[int]bool, n)
	for _, idx := range perm {
		selected[idx] = true
	}
	indices := make([]int, 0, n)
	for i := 0; i < t.Rows; i++ {
		if selected[i] {
			indices = append(indices, i)
		}
	}
	return indices
}

// SampleTable materializes the selected rows as a new table with the same
// columns and kinds.
func SampleTable(t *table.Table, indices []int) *table.Table {
	columns := make([]*table.Column, len(t.Columns))
	for j, source := range t.Columns {
		column := &table.Column{
			Name: source.Name,
			Kind: source.Kind,
			Null: make([]bool, len(indices)),
		}
		switch source.Kind {
		case table.KindNumeric:
			column.Floats = make([]float64, len(indices))
		case table.KindDateTime:
			column.Times = make([]time.Time, len(indices))
		default:
			column.Strings = make([]string, len(indices))
		}
		for i, idx := range indices {
			column.Null[i] = source.Null[idx]
			switch source.Kind {
			case table.KindNumeric:
				column.Floats[i] = source.Floats[idx]
			case table.KindDateTime:
				column.Times[i] = source.Times[idx]
			default:
				column.Strings[i] = source.Strings[idx]
			}
		}
		columns[j] = column
	}
	return &table.Table{
		Name:    t.Name + "_sample",
		Columns: columns,
		Rows:    len(indices),
	}
}

// GenerateSample exports a random sample of up to sampleSize rows as CSV
// and returns the written file path.
func GenerateSample(t *table.Table, sampleSize int, rng *rand.Rand, outputDir string) (string, error) {
	path := filepath.Join(outputDir, fmt.Sprintf("%s_sample.csv", t.Name))
	file, err := os.Create(path)
	if err != nil {
		return "", errors.WithCode(errors.CodeStageFailed, errors.Wrapf(err, "failed to create %s", path))
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(t.ColumnNames()); err != nil {
		return "", errors.WithCode(errors.CodeStageFailed, errors.Wrap(err, "failed to write sample header"))
	}
	for _, idx := range SampleRows(t, sampleSize, rng) {
		if err := writer.Write(t.Row(idx)); err != nil {
			return "", errors.WithCode(errors.CodeStageFailed, errors.Wrap(err, "failed to write sample row"))
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", errors.WithCode(errors.CodeStageFailed, errors.Wrap(err, "failed to flush sample"))
	}
	return path, nil
}
