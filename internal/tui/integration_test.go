package tui

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/pablasso/kanban/internal/api"
	"github.com/pablasso/kanban/internal/task"
	"github.com/pablasso/kanban/internal/testutil"
	"github.com/pablasso/kanban/internal/tui/components"
	"github.com/pablasso/kanban/internal/tui/msgs"
)

// createTestModel wires the TUI to a fake task API and runs the first load.
func createTestModel(t *testing.T, seed ...task.Task) (Model, *testutil.TaskServer) {
	t.Helper()

	srv := testutil.NewTaskServer(t, seed...)
	client, err := api.New(srv.URL, api.WithTimeout(2*time.Second))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	m := initialModel(Options{Service: client, APIURL: srv.URL})
	sendWindowSize(t, &m, 120, 40)
	processAll(t, &m, m.Init())
	return m, srv
}

// sendKey simulates sending a key press to the model and settles the result.
func sendKey(t *testing.T, m *Model, key string) {
	t.Helper()

	var keyMsg tea.KeyMsg
	switch key {
	case "up":
		keyMsg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		keyMsg = tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		keyMsg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		keyMsg = tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		keyMsg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		keyMsg = tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		keyMsg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		keyMsg = tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		keyMsg = tea.KeyMsg{Type: tea.KeyCtrlS}
	default:
		if len(key) == 1 {
			keyMsg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		} else {
			t.Fatalf("unknown key: %s", key)
		}
	}

	newModel, cmd := m.Update(keyMsg)
	*m = newModel.(Model)
	processAll(t, m, cmd)
}

func typeText(t *testing.T, m *Model, text string) {
	t.Helper()
	for _, r := range text {
		sendKey(t, m, string(r))
	}
}

// sendWindowSize simulates a window resize event.
func sendWindowSize(t *testing.T, m *Model, width, height int) {
	t.Helper()

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	*m = newModel.(Model)
}

// processAll runs cmd and feeds its messages back into the model until no
// work is left. Timer-driven commands are skipped.
func processAll(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()

	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("commands did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}

		done := make(chan tea.Msg, 1)
		go func() { done <- c() }()
		var msg tea.Msg
		select {
		case msg = <-done:
		case <-time.After(250 * time.Millisecond):
			continue
		}

		switch msg := msg.(type) {
		case nil, spinner.TickMsg, components.ToastExpiredMsg, tea.QuitMsg:
			continue
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		}

		newModel, next := m.Update(msg)
		*m = newModel.(Model)
		queue = append(queue, next)
	}
}

// TestCreateTaskFlow covers Board → Create → Board with the new task loaded.
func TestCreateTaskFlow(t *testing.T) {
	m, srv := createTestModel(t, task.Task{ID: 1, Title: "Existing", Status: task.StatusTodo})

	sendKey(t, &m, "n")
	if m.CurrentView() != ViewCreate {
		t.Fatalf("expected create view, got %d", m.CurrentView())
	}
	if !strings.Contains(ansi.Strip(m.View()), "Create New Task") {
		t.Error("expected create form on screen")
	}

	typeText(t, &m, "Write docs")
	sendKey(t, &m, "tab")
	typeText(t, &m, "for the CLI")
	sendKey(t, &m, "ctrl+s")

	if m.CurrentView() != ViewBoard {
		t.Fatalf("expected board view after submit, got %d", m.CurrentView())
	}
	tasks := srv.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks on server, got %d", len(tasks))
	}
	if tasks[1].Title != "Write docs" || tasks[1].Description != "for the CLI" {
		t.Errorf("unexpected created task: %+v", tasks[1])
	}

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "Write docs") {
		t.Error("expected new task on the board")
	}
	if !strings.Contains(view, "Task created") {
		t.Error("expected success toast")
	}
}

// TestCreateCancel covers Board → Create → Esc → Board without requests.
func TestCreateCancel(t *testing.T) {
	m, srv := createTestModel(t)

	sendKey(t, &m, "n")
	typeText(t, &m, "abandoned")
	sendKey(t, &m, "esc")

	if m.CurrentView() != ViewBoard {
		t.Errorf("expected board view, got %d", m.CurrentView())
	}
	for _, r := range srv.Requests() {
		if r.Method == http.MethodPost {
			t.Error("expected no create request")
		}
	}
}

// TestCreateTaskFailureKeepsForm checks that a rejected create leaves the
// form on screen with the typed values, and that ctrl+s retries it.
func TestCreateTaskFailureKeepsForm(t *testing.T) {
	m, srv := createTestModel(t)
	srv.FailNext(http.MethodPost, http.StatusInternalServerError)

	sendKey(t, &m, "n")
	typeText(t, &m, "Write docs")
	sendKey(t, &m, "tab")
	typeText(t, &m, "for the CLI")
	sendKey(t, &m, "ctrl+s")

	if m.CurrentView() != ViewCreate {
		t.Fatalf("expected create view after failed submit, got %d", m.CurrentView())
	}
	if len(srv.Tasks()) != 0 {
		t.Fatalf("expected no tasks on server, got %d", len(srv.Tasks()))
	}
	title, desc := m.form.Values()
	if title != "Write docs" || desc != "for the CLI" {
		t.Errorf("expected form values kept, got %q / %q", title, desc)
	}
	if m.form.Submitting() {
		t.Error("expected form to accept another submit")
	}
	if !strings.Contains(ansi.Strip(m.View()), "Failed to create task") {
		t.Error("expected failure message in the form")
	}

	sendKey(t, &m, "ctrl+s")

	if m.CurrentView() != ViewBoard {
		t.Fatalf("expected board view after retry, got %d", m.CurrentView())
	}
	tasks := srv.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Write docs" {
		t.Fatalf("expected the retried task on server, got %+v", tasks)
	}
}

// TestCreateSubmitWaitsForServer checks the form stays up while the create
// request is in flight.
func TestCreateSubmitWaitsForServer(t *testing.T) {
	m, _ := createTestModel(t)

	sendKey(t, &m, "n")
	typeText(t, &m, "Pending")

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = newModel.(Model)
	// The form only emits CreateSubmittedMsg; deliver it without running the
	// request.
	newModel, _ = m.Update(msgs.CreateSubmittedMsg{Create: task.NewCreate("Pending", "")})
	m = newModel.(Model)

	if m.CurrentView() != ViewCreate {
		t.Fatalf("expected create view while request is in flight, got %d", m.CurrentView())
	}
	if !m.form.Submitting() {
		t.Error("expected form to be submitting")
	}
	if !strings.Contains(ansi.Strip(m.View()), "Creating task...") {
		t.Error("expected in-flight note in the form")
	}
}

// TestDragAcrossColumns moves a card from To Do to Done through the top-level
// model.
func TestDragAcrossColumns(t *testing.T) {
	m, srv := createTestModel(t,
		task.Task{ID: 1, Title: "Ship it", Status: task.StatusTodo},
		task.Task{ID: 2, Title: "Shipped", Status: task.StatusDone},
	)

	sendKey(t, &m, "space")
	sendKey(t, &m, "right")
	sendKey(t, &m, "right")
	sendKey(t, &m, "down")
	sendKey(t, &m, "enter")

	var moved task.Task
	for _, tk := range srv.Tasks() {
		if tk.ID == 1 {
			moved = tk
		}
	}
	if moved.Status != task.StatusDone || moved.Index != 1 {
		t.Errorf("expected task 1 at done/1, got %s/%d", moved.Status, moved.Index)
	}
	if !strings.Contains(ansi.Strip(m.View()), "Done (2)") {
		t.Error("expected Done column to show 2 tasks")
	}
}

// TestDetailFlow covers Board → Detail → Board.
func TestDetailFlow(t *testing.T) {
	m, _ := createTestModel(t, task.Task{ID: 1, Title: "Read me", Description: "all of it", Status: task.StatusTodo})

	sendKey(t, &m, "enter")
	if m.CurrentView() != ViewDetail {
		t.Fatalf("expected detail view, got %d", m.CurrentView())
	}
	if !strings.Contains(ansi.Strip(m.View()), "all of it") {
		t.Error("expected description in detail view")
	}

	sendKey(t, &m, "esc")
	if m.CurrentView() != ViewBoard {
		t.Errorf("expected board view, got %d", m.CurrentView())
	}
}

// TestBackendDown shows the connection toast when the API is unreachable.
func TestBackendDown(t *testing.T) {
	srv := testutil.NewTaskServer(t)
	url := srv.URL
	srv.Close()

	client, err := api.New(url, api.WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	m := initialModel(Options{Service: client, APIURL: url})
	sendWindowSize(t, &m, 100, 30)
	processAll(t, &m, m.Init())

	if !strings.Contains(ansi.Strip(m.View()), "Failed to connect to backend") {
		t.Error("expected connection failure toast")
	}
}

// TestWindowResize checks the layout follows the terminal size.
func TestWindowResize(t *testing.T) {
	m, _ := createTestModel(t, task.Task{ID: 1, Title: "Resize", Status: task.StatusTodo})

	view1 := m.View()
	sendWindowSize(t, &m, 80, 24)
	view2 := m.View()
	if view1 == view2 {
		t.Error("expected views to differ for different sizes")
	}

	sendWindowSize(t, &m, 40, 10)
	if !strings.Contains(m.View(), "Terminal too small") {
		t.Error("expected minimum size warning")
	}
}
