package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/kanban/internal/task"
	"github.com/pablasso/kanban/internal/tui/components"
	"github.com/pablasso/kanban/internal/tui/msgs"
	"github.com/pablasso/kanban/internal/tui/styles"
)

// formField identifies the focused input of the task form.
type formField int

const (
	fieldTitle formField = iota
	fieldDescription
)

// TaskFormModel is the "Create New Task" form.
type TaskFormModel struct {
	title       textinput.Model
	description textarea.Model
	focus       formField
	errorMsg    string
	submitting  bool // a create request is in flight

	width  int
	height int
}

// NewTaskFormModel creates an empty form with the title focused.
func NewTaskFormModel() TaskFormModel {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = task.MaxTitleLength
	ti.Width = 50
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Description (optional)"
	ta.CharLimit = task.MaxDescriptionLength
	ta.ShowLineNumbers = false
	ta.SetWidth(52)
	ta.SetHeight(5)
	ta.Blur()

	return TaskFormModel{
		title:       ti,
		description: ta,
		focus:       fieldTitle,
	}
}

// Init implements tea.Model.
func (m TaskFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m TaskFormModel) Update(msg tea.Msg) (TaskFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m, func() tea.Msg { return msgs.GoToBoardMsg{} }
		case "ctrl+s":
			return m.submit()
		case "tab", "shift+tab":
			return m.toggleFocus()
		case "enter":
			// Enter in the title moves on; in the description it is a newline.
			if m.focus == fieldTitle {
				return m.toggleFocus()
			}
		}
	}

	var cmd tea.Cmd
	if m.focus == fieldTitle {
		m.title, cmd = m.title.Update(msg)
		if strings.TrimSpace(m.title.Value()) != "" {
			m.errorMsg = ""
		}
	} else {
		m.description, cmd = m.description.Update(msg)
	}
	return m, cmd
}

func (m TaskFormModel) toggleFocus() (TaskFormModel, tea.Cmd) {
	if m.focus == fieldTitle {
		m.focus = fieldDescription
		m.title.Blur()
		cmd := m.description.Focus()
		return m, cmd
	}
	m.focus = fieldTitle
	m.description.Blur()
	cmd := m.title.Focus()
	return m, cmd
}

func (m TaskFormModel) submit() (TaskFormModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	create := task.NewCreate(m.title.Value(), m.description.Value())
	if err := create.Validate(); err != nil {
		m.errorMsg = err.Error()
		return m, nil
	}
	m.errorMsg = ""
	m.submitting = true
	return m, func() tea.Msg { return msgs.CreateSubmittedMsg{Create: create} }
}

// View implements tea.Model.
func (m TaskFormModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Create New Task"))
	b.WriteString("\n\n")
	b.WriteString(m.label("Title", fieldTitle))
	b.WriteString("\n")
	b.WriteString(m.title.View())
	b.WriteString("\n\n")
	b.WriteString(m.label("Description", fieldDescription))
	b.WriteString("\n")
	b.WriteString(m.description.View())
	switch {
	case m.submitting:
		b.WriteString("\n\n")
		b.WriteString(styles.SubtleStyle.Render("Creating task..."))
	case m.errorMsg != "":
		b.WriteString("\n\n")
		b.WriteString(styles.ErrorStyle.Render(m.errorMsg))
	}

	box := styles.BoxStyle.Render(b.String())
	placed := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, box)

	statusItems := []string{"Tab Next field", "Ctrl+S Create", "Esc Cancel"}
	return placed + "\n" + components.NewStatusBar().Render(m.width, statusItems)
}

func (m TaskFormModel) label(text string, field formField) string {
	if m.focus == field {
		return styles.SelectedStyle.Render(text)
	}
	return styles.SubtleStyle.Render(text)
}

// SetSize updates the model dimensions.
func (m *TaskFormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	w := min(max(width-12, 20), 72)
	m.title.Width = w - 2
	m.description.SetWidth(w)
}

// SubmitFailed keeps the entered values and shows why the create failed, so
// the user can retry with ctrl+s.
func (m TaskFormModel) SubmitFailed(reason string) TaskFormModel {
	m.submitting = false
	m.errorMsg = reason
	return m
}

// Submitting reports whether the form is waiting for the server.
func (m TaskFormModel) Submitting() bool {
	return m.submitting
}

// Values returns the current title and description.
func (m TaskFormModel) Values() (string, string) {
	return m.title.Value(), m.description.Value()
}

// Error returns the current validation message.
func (m TaskFormModel) Error() string {
	return m.errorMsg
}

// Focused returns which input has focus: "title" or "description".
func (m TaskFormModel) Focused() string {
	if m.focus == fieldTitle {
		return "title"
	}
	return "description"
}
