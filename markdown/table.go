package markdown

import (
	"strings"

	"github.com/tsawler/pdf2md/model"
)

// escapeCell makes literal pipes unambiguous inside a pipe-delimited row.
func escapeCell(cell string) string {
	return strings.ReplaceAll(cell, "|", `\|`)
}

// renderTable emits a table block: the configured header label, a
// pipe-delimited header row, a centered separator row, then one row per
// remaining data row. Empty tables follow the skip policy.
func (r *Renderer) renderTable(sb *strings.Builder, t model.Table) {
	if t.IsEmpty && r.config.SkipEmptyTables {
		if r.config.KeepEmptyTableHeader {
			sb.WriteString(r.config.TableHeaderLabel)
			sb.WriteString("\n\n")
		}
		return
	}
	if len(t.Rows) == 0 {
		return
	}

	sb.WriteString(r.config.TableHeaderLabel)
	sb.WriteString("\n\n")

	writeRow := func(row []string) {
		sb.WriteString("| ")
		for j, cell := range row {
			if j > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(escapeCell(cell))
		}
		sb.WriteString(" |\n")
	}

	writeRow(t.Rows[0])

	sb.WriteString("|")
	for range t.Rows[0] {
		sb.WriteString(":---:|")
	}
	sb.WriteString("\n")

	for _, row := range t.Rows[1:] {
		writeRow(row)
	}
	sb.WriteString("\n")
}
