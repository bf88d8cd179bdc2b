package ui

import (
	"fmt"

	"github.com/nconklindev/zempic/internal/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const maxCellWidth = 24

// renderPreview draws head as a bordered table. total is the row count of
// the whole table head was cut from.
func renderPreview(head *types.Table, total int) string {
	footer := SubtitleStyle.Render(fmt.Sprintf("Showing %d of %d rows", len(head.Rows), total))

	if len(head.Headers) == 0 {
		return SubtitleStyle.Render("No columns selected") + "\n" + footer
	}

	headers := make([]string, len(head.Headers))
	for i, h := range head.Headers {
		headers[i] = truncate(h)
	}

	rows := make([][]string, len(head.Rows))
	for i, row := range head.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = truncate(cell)
		}
		rows[i] = cells
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(PreviewBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return PreviewHeaderStyle
			}
			return PreviewCellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	return t.String() + "\n" + footer
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxCellWidth {
		return s
	}
	return string(r[:maxCellWidth-1]) + "…"
}
