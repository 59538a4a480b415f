// Package msgs defines shared message types for TUI view transitions and
// task API results.
package msgs

import (
	"github.com/pablasso/kanban/internal/board"
	"github.com/pablasso/kanban/internal/task"
)

// View transition messages

// GoToBoardMsg signals transition back to the board view.
type GoToBoardMsg struct{}

// GoToCreateMsg signals transition to the new task form.
type GoToCreateMsg struct{}

// GoToDetailMsg opens the detail view for a task.
type GoToDetailMsg struct {
	Task task.Task
}

// CreateSubmittedMsg is sent when the new task form is submitted.
type CreateSubmittedMsg struct {
	Create task.Create
}

// API results

// TasksLoadedMsg carries a full task list from the server.
type TasksLoadedMsg struct {
	Tasks []task.Task
}

// TaskCreatedMsg is sent when the server has stored a new task.
type TaskCreatedMsg struct {
	Task task.Task
}

// TaskMovedMsg is sent when every change of a move was accepted.
type TaskMovedMsg struct {
	Move board.Move
}

// TaskDeletedMsg is sent when the server has removed a task.
type TaskDeletedMsg struct {
	ID int
}

// Op names the operation a RequestFailedMsg refers to.
type Op int

const (
	OpLoad Op = iota
	OpCreate
	OpMove
	OpDelete
)

// RequestFailedMsg reports a failed API call. Move is set for OpMove and
// Snapshot for OpDelete so the optimistic change can be undone. Gen is the
// board's mutation count right after that change was applied.
type RequestFailedMsg struct {
	Op       Op
	Err      error
	Move     board.Move
	Snapshot []task.Task
	Gen      int
}
