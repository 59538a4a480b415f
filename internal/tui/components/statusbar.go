package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/pablasso/kanban/internal/tui/styles"
)

const statusBarSeparator = "  |  "

// StatusBar renders a bottom help bar showing contextual key hints, with an
// optional right-aligned note (for example the API address).
type StatusBar struct {
	Note string
}

// NewStatusBar creates a new StatusBar instance.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// WithNote returns a copy of the bar with a right-aligned note.
func (s StatusBar) WithNote(note string) StatusBar {
	s.Note = note
	return s
}

// Render returns the status bar string for the given width and items.
// Items are joined with a "|" separator and always fit on one line: trailing
// items that do not fit are dropped, so callers list the important ones
// first. The note is dropped when it does not fit next to them.
func (s StatusBar) Render(width int, items []string) string {
	style := styles.StatusBarStyle
	avail := max(width-style.GetHorizontalFrameSize(), 0)

	content := ""
	for i, item := range items {
		next := item
		if i > 0 {
			next = content + statusBarSeparator + item
		}
		if lipgloss.Width(next) > avail {
			break
		}
		content = next
	}
	if content == "" && len(items) > 0 {
		content = ansi.Truncate(items[0], avail, "…")
	}

	if s.Note != "" {
		gap := avail - lipgloss.Width(content) - lipgloss.Width(s.Note)
		if gap >= 2 {
			content += strings.Repeat(" ", gap) + s.Note
		}
	}

	return style.Width(width).MaxHeight(1).Render(content)
}
