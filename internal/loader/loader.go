// Package loader reads delimited text files and Excel workbooks into the
// shared table model. CSV inputs go through delimiter sniffing first; every
// column starts out string-typed with empty cells recorded as null.
package loader

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"goeda/domain/table"
	"goeda/internal"
	"goeda/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Loader reads CSV and xlsx files into Tables.
type Loader struct {
	log *internal.Logger
}

// NewLoader creates a loader reporting through the given logger.
func NewLoader(log *internal.Logger) *Loader {
	if log == nil {
		log = internal.NewDefaultLogger()
	}
	return &Loader{log: log}
}

// Load reads the file at path into a Table, dispatching on extension.
// Callers must not proceed to downstream stages when an error is returned.
func (l *Loader) Load(path string) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return l.loadExcel(path)
	default:
		return l.loadCSV(path)
	}
}

// LoadCSVReader parses already-opened CSV content, sniffing the delimiter
// from its prefix. Used by the dashboard upload path.
func (l *Loader) LoadCSVReader(r io.Reader, name string) (*table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WithCode(errors.CodeLoadFailed, errors.Wrap(err, "failed to read input"))
	}
	return l.parseCSV(data, name)
}

func (l *Loader) loadCSV(path string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithCode(errors.CodeLoadFailed, errors.Wrapf(err, "failed to read %s", path))
	}
	return l.parseCSV(data, datasetName(path))
}

func (l *Loader) parseCSV(data []byte, name string) (*table.Table, error) {
	sample := data
	if len(sample) > sniffBytes {
		sample = sample[:sniffBytes]
	}
	delimiter := DetectDelimiter(string(sample))

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = delimiter
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WithCode(errors.CodeLoadFailed, errors.Wrapf(err, "failed to parse %s", name))
	}
	if len(records) < 2 {
		return nil, errors.EmptyDataset("dataset must have a header row and at least one data row")
	}

	l.log.Info("[Loader] Loaded %s with delimiter %q (%d columns, %d rows)",
		name, string(delimiter), len(records[0]), len(records)-1)
	return buildTable(name, records[0], records[1:]), nil
}

func (l *Loader) loadExcel(path string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WithCode(errors.CodeLoadFailed, errors.Wrapf(err, "failed to open %s", path))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.EmptyDataset("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.WithCode(errors.CodeLoadFailed, errors.Wrapf(err, "failed to read sheet %s", sheets[0]))
	}
	if len(rows) < 2 {
		return nil, errors.EmptyDataset("dataset must have a header row and at least one data row")
	}

	name := datasetName(path)
	l.log.Info("[Loader] Loaded %s from sheet %s (%d columns, %d rows)",
		name, sheets[0], len(rows[0]), len(rows)-1)
	return buildTable(name, rows[0], rows[1:]), nil
}

// buildTable assembles string columns from a header and raw rows. Cells are
// trimmed; short rows (xlsx drops trailing empties) pad out as null.
func buildTable(name string, header []string, rows [][]string) *table.Table {
	columns := make([]*table.Column, len(header))
	for j, columnName := range header {
		column := &table.Column{
			Name:    strings.TrimSpace(columnName),
			Kind:    table.KindString,
			Strings: make([]string, len(rows)),
			Null:    make([]bool, len(rows)),
		}
		for i, row := range rows {
			value := ""
			if j < len(row) {
				value = strings.TrimSpace(row[j])
			}
			column.Strings[i] = value
			column.Null[i] = value == ""
		}
		columns[j] = column
	}

	return &table.Table{
		Name:    name,
		Columns: columns,
		Rows:    len(rows),
	}
}

// datasetName derives the dataset name from a file path by stripping the
// directory and extension.
func datasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
