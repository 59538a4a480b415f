// Package styles defines shared lipgloss styles for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/kanban/internal/task"
)

var (
	// Colors
	primaryColor   = lipgloss.Color("#5FAFAF") // Teal accent
	secondaryColor = lipgloss.Color("#666666") // Gray for secondary text
	successColor   = lipgloss.Color("#87AF87") // Muted sage for success
	errorColor     = lipgloss.Color("#AF5F5F") // Muted terracotta for errors
	heldColor      = lipgloss.Color("#D7AF5F") // Amber for a picked-up card

	// TitleStyle for headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// SubtleStyle for hints/help text
	SubtleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// SelectedStyle for the card under the cursor
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// HeldStyle for a card being dragged
	HeldStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(heldColor)

	// CardTitleStyle for card titles
	CardTitleStyle = lipgloss.NewStyle().
			Bold(true)

	// StatusBarStyle for bottom status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// BoxStyle for dialogs
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(secondaryColor).
			Padding(1, 2)

	// SuccessStyle for success messages
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)

// ColumnColor returns the accent color of a board column.
func ColumnColor(status task.Status) lipgloss.Color {
	for _, c := range task.Columns() {
		if c.Status == status {
			return lipgloss.Color(c.Color)
		}
	}
	return secondaryColor
}

// ColumnStyle returns the bordered container for a column. Focused columns get
// their accent color on the border.
func ColumnStyle(status task.Status, focused bool) lipgloss.Style {
	border := secondaryColor
	if focused {
		border = ColumnColor(status)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

// ColumnTitleStyle renders a column heading in its accent color.
func ColumnTitleStyle(status task.Status) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(ColumnColor(status))
}
