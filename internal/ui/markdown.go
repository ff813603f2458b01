package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/types"
)

// RecordsMarkdown renders records as a GitHub-flavored markdown table.
func RecordsMarkdown(recs []types.Record) string {
	var sb strings.Builder
	cols := types.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = string(c)
	}
	sb.WriteString("| " + strings.Join(names, " | ") + " |\n")
	sb.WriteString(strings.Repeat("|---", len(cols)) + "|\n")
	for _, r := range recs {
		fmt.Fprintf(&sb, "| %d | %s | %d | %s |\n",
			r.ID, escapeCell(r.Subject), r.Grade1, escapeCell(r.DateAdded))
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderMarkdown renders markdown text using glamour.
// Returns the rendered markdown or the original text if rendering fails.
// Word wraps at terminal width (or 80 columns if width can't be detected).
func RenderMarkdown(markdown string) string {
	if !ShouldUseColor() {
		return markdown
	}

	const maxReadableWidth = 100
	wrapWidth := TerminalWidth(80)
	if wrapWidth > maxReadableWidth {
		wrapWidth = maxReadableWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return markdown
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}

	return rendered
}
