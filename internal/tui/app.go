package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/kanban/internal/task"
	"github.com/pablasso/kanban/internal/tui/msgs"
	"github.com/pablasso/kanban/internal/tui/styles"
	"github.com/pablasso/kanban/internal/tui/views"
)

// Minimum terminal size for three readable columns.
const (
	MinTerminalWidth  = 60
	MinTerminalHeight = 15
)

// Shown in the form when the server rejects or never answers a create.
const createFailedText = "Failed to create task. Press ctrl+s to retry."

// View represents the different screens in the TUI.
type View int

const (
	ViewBoard View = iota
	ViewCreate
	ViewDetail
)

// Model is the main Bubble Tea model that orchestrates all views.
type Model struct {
	currentView View
	width       int
	height      int

	board  views.BoardModel
	form   views.TaskFormModel
	detail views.DetailModel
}

// Run starts the TUI application.
func Run(opts Options) error {
	p := tea.NewProgram(
		initialModel(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

func initialModel(opts Options) Model {
	return Model{
		currentView: ViewBoard,
		board: views.NewBoardModel(views.BoardConfig{
			Service: opts.Service,
			Logger:  opts.Logger,
			Note:    opts.APIURL,
		}),
		form:   views.NewTaskFormModel(),
		detail: views.NewDetailModel(task.Task{}),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.board.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.board.SetSize(msg.Width, msg.Height)
		m.form.SetSize(msg.Width, msg.Height)
		m.detail.SetSize(msg.Width, msg.Height)
		return m, nil

	case msgs.GoToCreateMsg:
		m.form = views.NewTaskFormModel()
		m.form.SetSize(m.width, m.height)
		m.currentView = ViewCreate
		return m, m.form.Init()

	case msgs.GoToDetailMsg:
		m.detail = views.NewDetailModel(msg.Task)
		m.detail.SetSize(m.width, m.height)
		m.currentView = ViewDetail
		return m, m.detail.Init()

	case msgs.GoToBoardMsg:
		m.currentView = ViewBoard
		return m, nil

	case msgs.CreateSubmittedMsg:
		// The form stays up until the server answers.
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(msg)
		return m, cmd

	case msgs.TaskCreatedMsg:
		if m.currentView == ViewCreate {
			m.currentView = ViewBoard
		}
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(msg)
		return m, cmd

	case msgs.RequestFailedMsg:
		if msg.Op == msgs.OpCreate && m.currentView == ViewCreate {
			m.form = m.form.SubmitFailed(createFailedText)
		}
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// Keys go to the active view only.
		var cmd tea.Cmd
		switch m.currentView {
		case ViewCreate:
			m.form, cmd = m.form.Update(msg)
		case ViewDetail:
			m.detail, cmd = m.detail.Update(msg)
		default:
			m.board, cmd = m.board.Update(msg)
		}
		return m, cmd
	}

	// Everything else (API results, ticks) belongs to the board, which keeps
	// running while another view is on screen. Form and detail get cursor
	// blink and scroll messages when active.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.board, cmd = m.board.Update(msg)
	cmds = append(cmds, cmd)
	switch m.currentView {
	case ViewCreate:
		m.form, cmd = m.form.Update(msg)
		cmds = append(cmds, cmd)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width > 0 && m.height > 0 && (m.width < MinTerminalWidth || m.height < MinTerminalHeight) {
		return m.renderTooSmall()
	}

	switch m.currentView {
	case ViewCreate:
		return m.form.View()
	case ViewDetail:
		return m.detail.View()
	default:
		return m.board.View()
	}
}

func (m Model) renderTooSmall() string {
	var b strings.Builder
	b.WriteString(styles.ErrorStyle.Render("Terminal too small"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Minimum: %dx%d\n", MinTerminalWidth, MinTerminalHeight))
	b.WriteString(fmt.Sprintf("Current: %dx%d", m.width, m.height))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

// CurrentView returns the active screen.
func (m Model) CurrentView() View {
	return m.currentView
}

// Board returns the board view model.
func (m Model) Board() views.BoardModel {
	return m.board
}
