package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pablasso/kanban/internal/tui/styles"
)

// ToastDuration is how long a notification stays on screen.
const ToastDuration = 3 * time.Second

// ToastKind selects the toast color.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastError
)

// ToastExpiredMsg clears the toast with the matching sequence number.
type ToastExpiredMsg struct {
	Seq int
}

// Toast is a transient one-line notification. Each Show bumps a sequence
// number so an older expiry tick cannot clear a newer message.
type Toast struct {
	text string
	kind ToastKind
	seq  int
}

// Show replaces the current message and returns the command that will expire it.
func (t Toast) Show(text string, kind ToastKind) (Toast, tea.Cmd) {
	t.seq++
	t.text = text
	t.kind = kind
	seq := t.seq
	return t, tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{Seq: seq}
	})
}

// Update handles expiry messages.
func (t Toast) Update(msg tea.Msg) Toast {
	if m, ok := msg.(ToastExpiredMsg); ok && m.Seq == t.seq {
		t.text = ""
	}
	return t
}

// Text returns the visible message, empty when nothing is shown.
func (t Toast) Text() string {
	return t.text
}

// Kind returns the kind of the visible message.
func (t Toast) Kind() ToastKind {
	return t.kind
}

// View renders the toast, or an empty string.
func (t Toast) View() string {
	if t.text == "" {
		return ""
	}
	switch t.kind {
	case ToastSuccess:
		return styles.SuccessStyle.Render("✓ " + t.text)
	case ToastError:
		return styles.ErrorStyle.Render("✗ " + t.text)
	default:
		return styles.SubtleStyle.Render(t.text)
	}
}
