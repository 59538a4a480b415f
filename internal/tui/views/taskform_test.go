package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/pablasso/kanban/internal/task"
	"github.com/pablasso/kanban/internal/tui/msgs"
)

func typeInto(m TaskFormModel, text string) TaskFormModel {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestTaskFormModel_Submit(t *testing.T) {
	m := NewTaskFormModel()
	m.SetSize(80, 24)

	m = typeInto(m, "  Plan sprint  ")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.Focused() != "description" {
		t.Fatalf("expected description focused after tab, got %s", m.Focused())
	}
	m = typeInto(m, "pick stories")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	submitted, ok := cmd().(msgs.CreateSubmittedMsg)
	if !ok {
		t.Fatalf("expected CreateSubmittedMsg, got %T", cmd())
	}
	if submitted.Create.Title != "Plan sprint" {
		t.Errorf("expected trimmed title, got %q", submitted.Create.Title)
	}
	if submitted.Create.Description != "pick stories" {
		t.Errorf("expected description, got %q", submitted.Create.Description)
	}
	if submitted.Create.Status != task.StatusTodo {
		t.Errorf("expected todo status, got %s", submitted.Create.Status)
	}
}

func TestTaskFormModel_EmptyTitle(t *testing.T) {
	m := NewTaskFormModel()
	m.SetSize(80, 24)

	m = typeInto(m, "   ")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Error("expected no submit for a blank title")
	}
	if m.Error() == "" {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(ansi.Strip(m.View()), m.Error()) {
		t.Error("expected error shown in view")
	}

	// Typing a title clears the error.
	m = typeInto(m, "x")
	if m.Error() != "" {
		t.Errorf("expected error cleared, got %q", m.Error())
	}
}

func TestTaskFormModel_EnterMovesToDescription(t *testing.T) {
	m := NewTaskFormModel()
	m.SetSize(80, 24)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Focused() != "description" {
		t.Errorf("expected enter in title to focus description, got %s", m.Focused())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Focused() != "title" {
		t.Errorf("expected shift+tab to go back to title, got %s", m.Focused())
	}
}

func TestTaskFormModel_Cancel(t *testing.T) {
	m := NewTaskFormModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected command from esc")
	}
	if _, ok := cmd().(msgs.GoToBoardMsg); !ok {
		t.Error("expected GoToBoardMsg")
	}
}

func TestTaskFormModel_View(t *testing.T) {
	m := NewTaskFormModel()
	if m.View() != "" {
		t.Error("expected empty view before sizing")
	}

	m.SetSize(80, 24)
	view := ansi.Strip(m.View())
	for _, want := range []string{"Create New Task", "Title", "Description", "Ctrl+S Create", "Esc Cancel"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestTaskFormModel_SubmitFailed(t *testing.T) {
	m := NewTaskFormModel()
	m.SetSize(80, 24)
	m = typeInto(m, "Plan sprint")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	if !m.Submitting() {
		t.Fatal("expected form to be submitting")
	}

	// A second ctrl+s while the request is out does nothing.
	if _, again := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS}); again != nil {
		t.Error("expected no second submit while in flight")
	}

	m = m.SubmitFailed("Failed to create task")
	if m.Submitting() {
		t.Error("expected submitting cleared")
	}
	if title, _ := m.Values(); title != "Plan sprint" {
		t.Errorf("expected title kept, got %q", title)
	}
	if !strings.Contains(ansi.Strip(m.View()), "Failed to create task") {
		t.Error("expected failure shown in view")
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS}); cmd == nil {
		t.Error("expected retry to submit again")
	}
}
