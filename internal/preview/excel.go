package preview

import (
	"fmt"
	"strconv"
)

// MaxSheetRows caps how many data rows render per sheet. The cap is a
// rendering safeguard; the raw download still carries the full grid.
const MaxSheetRows = 51

// SheetRows converts a sheet grid into display rows, padded to a
// uniform column count and capped at MaxSheetRows. When the cap is
// exceeded, exactly one trailing truncation-notice row is appended and
// truncated reports true; rows past the cap are never processed.
func SheetRows(data [][]any) (rows [][]string, truncated bool) {
	limit := len(data)
	omitted := 0
	if limit > MaxSheetRows {
		omitted = limit - MaxSheetRows
		limit = MaxSheetRows
	}

	cols := 0
	for _, raw := range data[:limit] {
		if len(raw) > cols {
			cols = len(raw)
		}
	}
	if cols == 0 {
		cols = 1
	}

	rows = make([][]string, 0, limit+1)
	for _, raw := range data[:limit] {
		row := make([]string, cols)
		for i, cell := range raw {
			row[i] = CellString(cell)
		}
		rows = append(rows, row)
	}

	if omitted > 0 {
		notice := make([]string, cols)
		notice[0] = fmt.Sprintf("… %d more rows not shown", omitted)
		rows = append(rows, notice)
		truncated = true
	}
	return rows, truncated
}

// CellString renders one extracted cell value. JSON numbers arrive as
// float64; integral values print without a fraction.
func CellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}
