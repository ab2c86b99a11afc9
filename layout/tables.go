package layout

import (
	"fmt"
	"strings"

	"github.com/tsawler/pdf2md/model"
)

// MalformedTableError reports a table region whose structure could not be
// reconciled during merging. It aborts the whole conversion: partial
// structural output is worse than a clear failure for a downstream
// consumer.
type MalformedTableError struct {
	Page int
	BBox model.BBox
}

func (e *MalformedTableError) Error() string {
	return fmt.Sprintf("malformed table on page %d at (%.1f, %.1f, %.1f, %.1f)",
		e.Page, e.BBox.X, e.BBox.Y, e.BBox.Width, e.BBox.Height)
}

// SanitizeCell collapses all whitespace runs in a cell to single spaces
// and trims the result.
func SanitizeCell(cell string) string {
	return strings.Join(strings.Fields(cell), " ")
}

// PadRows normalizes a cell grid: every cell is sanitized and short rows
// are padded with empty cells to the widest row's column count. It
// returns false when the grid cannot be reconciled (no rows, or no row
// has any columns).
func PadRows(rows [][]string) ([][]string, bool) {
	if len(rows) == 0 {
		return nil, false
	}

	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return nil, false
	}

	padded := make([][]string, len(rows))
	for i, row := range rows {
		out := make([]string, cols)
		for j, cell := range row {
			out[j] = SanitizeCell(cell)
		}
		padded[i] = out
	}
	return padded, true
}

// IsEmptyTable reports whether every cell, after trimming whitespace, is
// the empty string.
func IsEmptyTable(rows [][]string) bool {
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				return false
			}
		}
	}
	return true
}
