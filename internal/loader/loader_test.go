package loader

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"goeda/domain/table"
	"goeda/internal"
	"goeda/internal/errors"

	"github.com/xuri/excelize/v2"
)

func newTestLoader() *Loader {
	return NewLoader(internal.NewLogger(internal.LogLevelError, io.Discard))
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoad_CSVWithSniffedDelimiter(t *testing.T) {
	path := writeTempFile(t, "orders.csv", "id;region;price\n1;north;9.50\n2;south;12.00\n")

	got, err := newTestLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got.Name != "orders" {
		t.Errorf("dataset name = %q, want %q", got.Name, "orders")
	}
	if got.Rows != 2 {
		t.Errorf("rows = %d, want 2", got.Rows)
	}
	wantHeader := []string{"id", "region", "price"}
	for i, name := range got.ColumnNames() {
		if name != wantHeader[i] {
			t.Errorf("column %d = %q, want %q", i, name, wantHeader[i])
		}
	}
	for _, column := range got.Columns {
		if column.Kind != table.KindString {
			t.Errorf("column %s kind = %q, want string before classification", column.Name, column.Kind)
		}
	}
	if got.Column("region").Strings[1] != "south" {
		t.Errorf("cell (1, region) = %q, want %q", got.Column("region").Strings[1], "south")
	}
}

func TestLoad_EmptyCellsBecomeNull(t *testing.T) {
	path := writeTempFile(t, "gaps.csv", "a,b\n1,\n ,2\n")

	got, err := newTestLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !got.Column("b").Null[0] {
		t.Error("empty cell (0, b) should be null")
	}
	if !got.Column("a").Null[1] {
		t.Error("whitespace-only cell (1, a) should be null after trimming")
	}
	if got.Column("a").Null[0] {
		t.Error("populated cell (0, a) should not be null")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := newTestLoader().Load(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if code := errors.GetCode(err); code != errors.CodeLoadFailed {
		t.Errorf("error code = %q, want %q", code, errors.CodeLoadFailed)
	}
}

func TestLoad_HeaderOnlyIsEmptyDataset(t *testing.T) {
	path := writeTempFile(t, "header_only.csv", "a,b,c\n")

	_, err := newTestLoader().Load(path)
	if err == nil {
		t.Fatal("expected error for header-only file")
	}
	if code := errors.GetCode(err); code != errors.CodeEmptyDataset {
		t.Errorf("error code = %q, want %q", code, errors.CodeEmptyDataset)
	}
}

func TestLoadCSVReader(t *testing.T) {
	content := "name,score\nalice,10\nbob,20\n"

	got, err := newTestLoader().LoadCSVReader(strings.NewReader(content), "upload")
	if err != nil {
		t.Fatalf("LoadCSVReader failed: %v", err)
	}
	if got.Name != "upload" {
		t.Errorf("dataset name = %q, want %q", got.Name, "upload")
	}
	if got.Rows != 2 {
		t.Errorf("rows = %d, want 2", got.Rows)
	}
}

func TestLoad_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"id", "region"},
		{"1", "north"},
		{"2", "south"},
		{"3", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}

	got, err := newTestLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Rows != 3 {
		t.Errorf("rows = %d, want 3", got.Rows)
	}
	// xlsx readers drop trailing empty cells; the short row pads out null.
	if !got.Column("region").Null[2] {
		t.Error("missing trailing cell should be null")
	}
}
