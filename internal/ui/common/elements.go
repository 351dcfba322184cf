package common

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/taigrr/picklist/internal/ui/styles"
)

// StatusField is one key/value pair of the status line.
type StatusField struct {
	Key   string
	Value string
	Alert bool
}

// StatusLine renders fields separated by a dot, truncated to width.
func StatusLine(t *styles.Styles, fields []StatusField, width int) string {
	parts := make([]string, 0, len(fields))
	sep := t.Status.Key.Render(" · ")
	for _, f := range fields {
		value := t.Status.Value
		if f.Alert {
			value = t.Status.Alert
		}
		parts = append(parts, t.Status.Key.Render(f.Key+" ")+value.Render(f.Value))
	}
	line := strings.Join(parts, sep)
	inner := max(0, width-t.Status.Bar.GetHorizontalFrameSize())
	line = ansi.Truncate(line, inner, "…")
	return t.Status.Bar.Width(width).Render(line)
}

// Range formats a window range for display.
func Range(lo, hi int) string {
	if lo < 0 {
		return "empty"
	}
	return fmt.Sprintf("%d-%d", lo, hi)
}

// Header renders the title with a trailing rule filling width.
func Header(t *styles.Styles, title string, width int) string {
	title = t.Header.Render(title)
	rest := width - lipgloss.Width(title) - 1
	if rest <= 0 {
		return ansi.Truncate(title, width, "…")
	}
	return title + " " + t.Subtle.Render(strings.Repeat(styles.SectionSeparator, rest))
}
