package preview_test

import (
	"strings"
	"testing"

	"docpane/internal/preview"
)

func grid(rows int) [][]any {
	data := make([][]any, rows)
	for i := range data {
		data[i] = []any{float64(i), "cell"}
	}
	return data
}

func TestSheetRowsCapsAndAppendsNotice(t *testing.T) {
	rows, truncated := preview.SheetRows(grid(60))

	if !truncated {
		t.Fatal("60 rows must report truncation")
	}
	if len(rows) != preview.MaxSheetRows+1 {
		t.Fatalf("got %d display rows, want %d data rows plus one notice", len(rows), preview.MaxSheetRows)
	}
	notice := rows[len(rows)-1][0]
	if !strings.Contains(notice, "9 more rows") {
		t.Errorf("notice = %q", notice)
	}
	// Last data row is the 51st of the original grid.
	if rows[preview.MaxSheetRows-1][0] != "50" {
		t.Errorf("last data row = %v", rows[preview.MaxSheetRows-1])
	}
}

func TestSheetRowsAtCapHasNoNotice(t *testing.T) {
	rows, truncated := preview.SheetRows(grid(preview.MaxSheetRows))
	if truncated || len(rows) != preview.MaxSheetRows {
		t.Fatalf("truncated=%v rows=%d", truncated, len(rows))
	}
}

func TestSheetRowsPadRaggedGrids(t *testing.T) {
	rows, _ := preview.SheetRows([][]any{
		{"a"},
		{"b", "c", "d"},
	})
	for i, row := range rows {
		if len(row) != 3 {
			t.Errorf("row %d has %d cells, want 3", i, len(row))
		}
	}
	if rows[0][1] != "" || rows[0][2] != "" {
		t.Errorf("padding cells must be empty, got %v", rows[0])
	}
}

func TestSheetRowsEmptyGrid(t *testing.T) {
	rows, truncated := preview.SheetRows(nil)
	if len(rows) != 0 || truncated {
		t.Fatalf("rows=%v truncated=%v", rows, truncated)
	}
}

func TestCellString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{float64(12), "12"},
		{12.5, "12.5"},
		{true, "true"},
		{3, "3"},
	}
	for _, tc := range tests {
		if got := preview.CellString(tc.in); got != tc.want {
			t.Errorf("CellString(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
