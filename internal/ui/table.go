package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/types"
)

// RecordsTable renders records as a bordered table. Without color the
// border and header styling fall back to plain text.
func RecordsTable(recs []types.Record) string {
	rows := make([][]string, len(recs))
	for i, r := range recs {
		rows[i] = []string{
			strconv.FormatInt(r.ID, 10),
			r.Subject,
			strconv.FormatInt(r.Grade1, 10),
			r.DateAdded,
		}
	}
	headers := make([]string, 0, 4)
	for _, c := range types.Columns() {
		headers = append(headers, string(c))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	if ShouldUseColor() {
		t = t.BorderStyle(MutedStyle).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return AccentStyle.Bold(true).Padding(0, 1)
				}
				return lipgloss.NewStyle().Padding(0, 1)
			})
	} else {
		t = t.StyleFunc(func(int, int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
	}
	return t.String()
}
