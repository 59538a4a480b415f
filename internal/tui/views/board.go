package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/pablasso/kanban/internal/board"
	"github.com/pablasso/kanban/internal/logging"
	"github.com/pablasso/kanban/internal/task"
	"github.com/pablasso/kanban/internal/tui/components"
	"github.com/pablasso/kanban/internal/tui/msgs"
	"github.com/pablasso/kanban/internal/tui/styles"
	log "github.com/sirupsen/logrus"
)

// Toast messages shown after API calls.
const (
	toastLoadFailed   = "Failed to connect to backend"
	toastCreated      = "Task created"
	toastCreateFailed = "Failed to create task"
	toastMoveFailed   = "Failed to move task"
	toastDeleted      = "Task deleted"
	toastDeleteFailed = "Failed to delete task"
)

// Lines taken by one card: title, description, spacer.
const cardHeight = 3

// TaskService is the part of the API client the board needs.
type TaskService interface {
	ListTasks(ctx context.Context) ([]task.Task, error)
	CreateTask(ctx context.Context, create task.Create) (task.Task, error)
	UpdateTask(ctx context.Context, id int, update task.Update) (task.Task, error)
	DeleteTask(ctx context.Context, id int) error
}

// heldCard tracks a card picked up for dragging and where it would land.
type heldCard struct {
	id     int
	from   task.Status
	fromAt int
	status task.Status
	index  int
}

// BoardModel is the three-column board view.
type BoardModel struct {
	service TaskService
	logger  log.FieldLogger
	board   *board.Board
	note    string

	col int
	row int

	held          *heldCard
	confirmDelete *int // task ID awaiting confirmation
	focusID       *int // task to select after the next reload

	// mutations counts optimistic changes. A failed request only rolls back
	// its own change when nothing newer has been applied on top of it.
	mutations int

	loaded   bool
	inflight int
	spinner  spinner.Model
	toast    components.Toast

	width  int
	height int
}

// BoardConfig holds initialization parameters.
type BoardConfig struct {
	Service TaskService
	Logger  log.FieldLogger
	Note    string // shown on the right of the status bar
}

// NewBoardModel creates a new BoardModel. Tasks are fetched by Init.
func NewBoardModel(cfg BoardConfig) BoardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return BoardModel{
		service: cfg.Service,
		logger:  logger,
		board:   board.New(nil),
		note:    cfg.Note,
		spinner: s,

		inflight: 1,
	}
}

// Init implements tea.Model. NewBoardModel already counts this first load
// as in flight.
func (m BoardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

// Reload marks a load as in flight and returns the command that fetches the
// full task list.
func (m *BoardModel) Reload() tea.Cmd {
	m.inflight++
	return m.loadCmd()
}

func (m BoardModel) loadCmd() tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		tasks, err := svc.ListTasks(context.Background())
		if err != nil {
			return msgs.RequestFailedMsg{Op: msgs.OpLoad, Err: err}
		}
		return msgs.TasksLoadedMsg{Tasks: tasks}
	}
}

func (m *BoardModel) createCmd(create task.Create) tea.Cmd {
	m.inflight++
	svc := m.service
	return func() tea.Msg {
		created, err := svc.CreateTask(context.Background(), create)
		if err != nil {
			return msgs.RequestFailedMsg{Op: msgs.OpCreate, Err: err}
		}
		return msgs.TaskCreatedMsg{Task: created}
	}
}

func (m *BoardModel) moveCmd(mv board.Move) tea.Cmd {
	m.inflight++
	m.mutations++
	svc, gen := m.service, m.mutations
	return func() tea.Msg {
		if err := mv.Apply(context.Background(), svc); err != nil {
			return msgs.RequestFailedMsg{Op: msgs.OpMove, Err: err, Move: mv, Gen: gen}
		}
		return msgs.TaskMovedMsg{Move: mv}
	}
}

func (m *BoardModel) deleteCmd(id int, snapshot []task.Task) tea.Cmd {
	m.inflight++
	m.mutations++
	svc, gen := m.service, m.mutations
	return func() tea.Msg {
		if err := svc.DeleteTask(context.Background(), id); err != nil {
			return msgs.RequestFailedMsg{Op: msgs.OpDelete, Err: err, Snapshot: snapshot, Gen: gen}
		}
		return msgs.TaskDeletedMsg{ID: id}
	}
}

func (m *BoardModel) finishRequest() {
	if m.inflight > 0 {
		m.inflight--
	}
}

func (m *BoardModel) notify(text string, kind components.ToastKind) tea.Cmd {
	var cmd tea.Cmd
	m.toast, cmd = m.toast.Show(text, kind)
	return cmd
}

// Update implements tea.Model.
func (m BoardModel) Update(msg tea.Msg) (BoardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case components.ToastExpiredMsg:
		m.toast = m.toast.Update(msg)
		return m, nil

	case msgs.TasksLoadedMsg:
		m.finishRequest()
		m.loaded = true
		m.board.Replace(msg.Tasks)
		if m.held != nil {
			if _, ok := m.board.Find(m.held.id); !ok {
				m.held = nil
			}
		}
		if m.focusID != nil {
			m.selectTask(*m.focusID)
			m.focusID = nil
		}
		m.clampCursor()
		return m, nil

	case msgs.CreateSubmittedMsg:
		cmd := m.createCmd(msg.Create)
		return m, cmd

	case msgs.TaskCreatedMsg:
		m.finishRequest()
		m.logger.WithField("task_id", msg.Task.ID).Info("task created")
		id := msg.Task.ID
		m.focusID = &id
		cmd := tea.Batch(m.notify(toastCreated, components.ToastSuccess), m.Reload())
		return m, cmd

	case msgs.TaskMovedMsg:
		m.finishRequest()
		m.logger.WithFields(log.Fields{
			"task_id": msg.Move.TaskID,
			"to":      msg.Move.To,
			"index":   msg.Move.ToIndex,
		}).Info("task moved")
		cmd := m.Reload()
		return m, cmd

	case msgs.TaskDeletedMsg:
		m.finishRequest()
		m.logger.WithField("task_id", msg.ID).Info("task deleted")
		cmd := tea.Batch(m.notify(toastDeleted, components.ToastSuccess), m.Reload())
		return m, cmd

	case msgs.RequestFailedMsg:
		m.finishRequest()
		return m.handleFailure(msg)

	case tea.KeyMsg:
		if m.held != nil {
			return m.handleHeldKey(msg)
		}
		if m.confirmDelete != nil {
			return m.handleConfirmKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

// handleFailure surfaces a failed call and falls back to a full reload. The
// optimistic change is undone first unless a newer one sits on top of it, in
// which case the reload alone settles the board.
func (m BoardModel) handleFailure(msg msgs.RequestFailedMsg) (BoardModel, tea.Cmd) {
	entry := m.logger.WithError(msg.Err)

	switch msg.Op {
	case msgs.OpLoad:
		entry.Error("failed to load tasks")
		cmd := m.notify(toastLoadFailed, components.ToastError)
		return m, cmd
	case msgs.OpCreate:
		entry.Error("failed to create task")
		cmd := tea.Batch(m.notify(toastCreateFailed, components.ToastError), m.Reload())
		return m, cmd
	case msgs.OpMove:
		entry.WithField("task_id", msg.Move.TaskID).Error("failed to move task")
		if msg.Gen == m.mutations {
			m.board.Revert(msg.Move)
			m.clampCursor()
		}
		cmd := tea.Batch(m.notify(toastMoveFailed, components.ToastError), m.Reload())
		return m, cmd
	case msgs.OpDelete:
		entry.Error("failed to delete task")
		if msg.Snapshot != nil && msg.Gen == m.mutations {
			m.board.Restore(msg.Snapshot)
			m.clampCursor()
		}
		cmd := tea.Batch(m.notify(toastDeleteFailed, components.ToastError), m.Reload())
		return m, cmd
	}
	return m, nil
}

func (m BoardModel) handleKey(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		if m.col > 0 {
			m.col--
			m.clampCursor()
		}
	case "right", "l":
		if m.col < len(task.Columns())-1 {
			m.col++
			m.clampCursor()
		}
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
	case "down", "j":
		if m.row < len(m.board.Column(m.currentStatus()))-1 {
			m.row++
		}
	case " ", "space":
		if t, ok := m.selected(); ok {
			m.held = &heldCard{
				id:     t.ID,
				from:   t.Status,
				fromAt: m.row,
				status: t.Status,
				index:  m.row,
			}
		}
	case ">", "<":
		return m.shiftSelected(msg.String() == ">")
	case "enter":
		if t, ok := m.selected(); ok {
			return m, func() tea.Msg { return msgs.GoToDetailMsg{Task: t} }
		}
	case "n":
		return m, func() tea.Msg { return msgs.GoToCreateMsg{} }
	case "d", "delete":
		if t, ok := m.selected(); ok {
			id := t.ID
			m.confirmDelete = &id
		}
	case "r":
		cmd := m.Reload()
		return m, cmd
	}
	return m, nil
}

func (m BoardModel) handleHeldKey(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	h := m.held
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.held = nil
		m.col = h.from.Position()
		m.row = h.fromAt
		m.clampCursor()
	case "left", "h":
		if prev := h.status.Prev(); prev != h.status {
			h.status = prev
			h.index = min(h.index, m.dropSlots(prev))
		}
	case "right", "l":
		if next := h.status.Next(); next != h.status {
			h.status = next
			h.index = min(h.index, m.dropSlots(next))
		}
	case "up", "k":
		if h.index > 0 {
			h.index--
		}
	case "down", "j":
		if h.index < m.dropSlots(h.status) {
			h.index++
		}
	case " ", "space", "enter":
		return m.drop()
	}
	if m.held != nil {
		m.col = h.status.Position()
		m.row = h.index
	}
	return m, nil
}

func (m BoardModel) handleConfirmKey(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	id := *m.confirmDelete
	m.confirmDelete = nil

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "y", "Y":
		snapshot, err := m.board.Remove(id)
		if err != nil {
			cmd := m.notify(toastDeleteFailed, components.ToastError)
			return m, cmd
		}
		m.clampCursor()
		cmd := m.deleteCmd(id, snapshot)
		return m, cmd
	}
	return m, nil
}

// drop commits the held card at its target position.
func (m BoardModel) drop() (BoardModel, tea.Cmd) {
	h := m.held
	m.held = nil

	mv, err := m.board.Move(h.id, h.status, h.index)
	if errors.Is(err, board.ErrNoop) {
		return m, nil
	}
	if err != nil {
		m.logger.WithError(err).WithField("task_id", h.id).Warn("drop rejected")
		cmd := m.notify(toastMoveFailed, components.ToastError)
		return m, cmd
	}

	m.col = mv.To.Position()
	m.row = mv.ToIndex
	cmd := m.moveCmd(mv)
	return m, cmd
}

// shiftSelected moves the selected card to the end of the neighbouring column.
func (m BoardModel) shiftSelected(right bool) (BoardModel, tea.Cmd) {
	t, ok := m.selected()
	if !ok {
		return m, nil
	}
	dest := t.Status.Prev()
	if right {
		dest = t.Status.Next()
	}
	if dest == t.Status {
		return m, nil
	}

	mv, err := m.board.Move(t.ID, dest, len(m.board.Column(dest)))
	if err != nil {
		cmd := m.notify(toastMoveFailed, components.ToastError)
		return m, cmd
	}
	m.col = mv.To.Position()
	m.row = mv.ToIndex
	cmd := m.moveCmd(mv)
	return m, cmd
}

// dropSlots is the highest index a held card can take in status.
func (m BoardModel) dropSlots(status task.Status) int {
	n := 0
	for _, t := range m.board.Column(status) {
		if m.held == nil || t.ID != m.held.id {
			n++
		}
	}
	return n
}

func (m BoardModel) currentStatus() task.Status {
	return task.Columns()[m.col].Status
}

func (m BoardModel) selected() (task.Task, bool) {
	column := m.board.Column(m.currentStatus())
	if m.row < 0 || m.row >= len(column) {
		return task.Task{}, false
	}
	return column[m.row], true
}

func (m *BoardModel) selectTask(id int) {
	status, idx, ok := m.board.Position(id)
	if !ok {
		return
	}
	m.col = status.Position()
	m.row = idx
}

func (m *BoardModel) clampCursor() {
	n := len(m.board.Column(m.currentStatus()))
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// displayColumn returns the cards of a column as drawn, with a held card shown
// at its prospective position.
func (m BoardModel) displayColumn(status task.Status) []task.Task {
	column := m.board.Column(status)
	if m.held == nil {
		return column
	}

	held, _ := m.board.Find(m.held.id)
	var out []task.Task
	for _, t := range column {
		if t.ID != m.held.id {
			out = append(out, t)
		}
	}
	if status == m.held.status {
		i := min(m.held.index, len(out))
		out = append(out[:i], append([]task.Task{held}, out[i:]...)...)
	}
	return out
}

// View implements tea.Model.
func (m BoardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	// header + blank + toast + status bar
	columnsHeight := max(m.height-4, 6)
	b.WriteString(m.renderColumns(columnsHeight))
	b.WriteString("\n")

	b.WriteString(m.renderMessageLine())
	b.WriteString("\n")

	b.WriteString(components.NewStatusBar().WithNote(m.note).Render(m.width, m.statusItems()))
	return b.String()
}

func (m BoardModel) renderHeader() string {
	counts := m.board.Counts()
	progress := components.NewProgress(counts[task.StatusDone], m.board.Len(), 10).View()

	header := styles.TitleStyle.Render("Kanban Board") + "  " + styles.SubtleStyle.Render(progress)
	if m.inflight > 0 {
		header += "  " + m.spinner.View()
	}
	return header
}

func (m BoardModel) renderMessageLine() string {
	if m.confirmDelete != nil {
		if t, ok := m.board.Find(*m.confirmDelete); ok {
			return styles.ErrorStyle.Render(fmt.Sprintf("Delete %q? y/N", ansi.Truncate(t.Title, 40, "…")))
		}
	}
	if v := m.toast.View(); v != "" {
		return v
	}
	if !m.loaded && m.inflight > 0 {
		return styles.SubtleStyle.Render("Loading tasks...")
	}
	return ""
}

func (m BoardModel) renderColumns(height int) string {
	const gap = 1
	columns := task.Columns()
	colWidth := max((m.width-gap*(len(columns)-1))/len(columns), 12)

	rendered := make([]string, 0, len(columns)*2)
	for i, c := range columns {
		if i > 0 {
			rendered = append(rendered, strings.Repeat(" ", gap))
		}
		rendered = append(rendered, m.renderColumn(c, colWidth, height, i == m.col))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m BoardModel) renderColumn(c task.Column, width, height int, focused bool) string {
	// border (2) + padding (2)
	inner := width - 4
	// border (2) + title + blank
	cardArea := max(height-4, cardHeight)
	visible := max(cardArea/cardHeight, 1)

	cards := m.displayColumn(c.Status)

	offset := 0
	if focused && m.row >= visible {
		offset = m.row - visible + 1
	}
	end := min(offset+visible, len(cards))

	var lines []string
	for i := offset; i < end; i++ {
		lines = append(lines, m.renderCard(cards[i], inner-2, focused && i == m.row)...)
	}
	if len(cards) == 0 {
		lines = append(lines, styles.SubtleStyle.Render("  No tasks"))
	}
	for len(lines) < cardArea {
		lines = append(lines, "")
	}
	lines = lines[:cardArea]

	gutter := components.ScrollbarLines(cardArea, len(cards)*cardHeight, offset*cardHeight)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(inner-2).MaxWidth(inner-2).Render(strings.Join(lines, "\n")),
		" ",
		strings.Join(gutter, "\n"),
	)

	heading := fmt.Sprintf("%s (%d)", c.Title, len(m.board.Column(c.Status)))
	title := styles.ColumnTitleStyle(c.Status).Render(ansi.Truncate(heading, inner, "…"))
	content := title + "\n\n" + body

	return styles.ColumnStyle(c.Status, focused).
		Width(width - 2).
		Height(height - 2).
		Render(content)
}

func (m BoardModel) renderCard(t task.Task, width int, selected bool) []string {
	width = max(width, 4)
	held := m.held != nil && t.ID == m.held.id

	prefix := "  "
	titleStyle := styles.CardTitleStyle
	switch {
	case held:
		prefix = "✥ "
		titleStyle = styles.HeldStyle
	case selected:
		prefix = "▌ "
		titleStyle = styles.SelectedStyle
	}

	title := titleStyle.Render(prefix + ansi.Truncate(t.Title, width-2, "…"))
	desc := ""
	if t.Description != "" {
		firstLine := strings.SplitN(t.Description, "\n", 2)[0]
		desc = styles.SubtleStyle.Render("  " + ansi.Truncate(firstLine, width-2, "…"))
	}
	return []string{title, desc, ""}
}

func (m BoardModel) statusItems() []string {
	switch {
	case m.held != nil:
		return []string{"←→↑↓ Move", "Space/Enter Drop", "Esc Cancel"}
	case m.confirmDelete != nil:
		return []string{"y Delete", "any key Cancel"}
	default:
		// Most important first; the bar drops what does not fit.
		return []string{"←→↑↓ Move", "Space Grab", "n New", "d Delete", "q Quit", "Enter Open", "<> Shift", "r Reload"}
	}
}

// SetSize updates the model dimensions.
func (m *BoardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Board returns the local board state.
func (m BoardModel) Board() *board.Board {
	return m.board
}

// Cursor returns the selected column and row.
func (m BoardModel) Cursor() (int, int) {
	return m.col, m.row
}

// Holding reports whether a card is picked up, and which.
func (m BoardModel) Holding() (int, bool) {
	if m.held == nil {
		return 0, false
	}
	return m.held.id, true
}

// Busy reports whether any request is in flight.
func (m BoardModel) Busy() bool {
	return m.inflight > 0
}

// Toast returns the current notification text.
func (m BoardModel) Toast() string {
	return m.toast.Text()
}
