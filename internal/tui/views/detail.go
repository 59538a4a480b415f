package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/kanban/internal/task"
	"github.com/pablasso/kanban/internal/tui/components"
	"github.com/pablasso/kanban/internal/tui/msgs"
	"github.com/pablasso/kanban/internal/tui/styles"
)

// DetailModel shows one task with its full, scrollable description.
type DetailModel struct {
	task     task.Task
	viewport viewport.Model
	width    int
	height   int
}

// NewDetailModel creates a detail view for t.
func NewDetailModel(t task.Task) DetailModel {
	m := DetailModel{
		task:     t,
		viewport: viewport.New(0, 0),
	}
	m.viewport.SetContent(m.body())
	return m
}

// Init implements tea.Model.
func (m DetailModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "q", "enter":
			return m, func() tea.Msg { return msgs.GoToBoardMsg{} }
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m DetailModel) body() string {
	if m.task.Description == "" {
		return styles.SubtleStyle.Render("No description.")
	}
	width := m.viewport.Width
	if width <= 0 {
		return m.task.Description
	}
	return lipgloss.NewStyle().Width(width).Render(m.task.Description)
}

// View implements tea.Model.
func (m DetailModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(m.task.Title))
	b.WriteString("\n")
	meta := fmt.Sprintf("#%d  ·  %s  ·  position %d", m.task.ID, m.task.Status.Title(), m.task.Index+1)
	b.WriteString(styles.ColumnTitleStyle(m.task.Status).Render(meta))
	b.WriteString("\n\n")

	scrollbar := components.RenderScrollbar(m.viewport.Height, m.viewport.TotalLineCount(), m.viewport.YOffset)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), " ", scrollbar))
	b.WriteString("\n")

	statusItems := []string{"↑↓ Scroll", "Esc Back"}
	b.WriteString(components.NewStatusBar().Render(m.width, statusItems))
	return b.String()
}

// SetSize updates the model dimensions.
func (m *DetailModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	// title + meta + blank + status bar + trailing newline
	m.viewport.Width = max(width-2, 1)
	m.viewport.Height = max(height-5, 1)
	m.viewport.SetContent(m.body())
}

// Task returns the task being shown.
func (m DetailModel) Task() task.Task {
	return m.task
}
