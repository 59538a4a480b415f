// Package board holds the client-side copy of the task list and the
// optimistic move logic used by drag and drop.
package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/pablasso/kanban/internal/task"
)

var (
	// ErrNotFound is returned when a task ID is not on the board.
	ErrNotFound = errors.New("task not found on board")
	// ErrNoop is returned when a move would leave the task where it is.
	ErrNoop = errors.New("task is already at that position")
)

// Board is a snapshot of the server's tasks. It is not safe for concurrent
// use; the UI owns it from a single goroutine.
type Board struct {
	tasks []task.Task
}

// New creates a board from a task list.
func New(tasks []task.Task) *Board {
	b := &Board{}
	b.Replace(tasks)
	return b
}

// Replace installs a freshly loaded task list.
func (b *Board) Replace(tasks []task.Task) {
	b.tasks = make([]task.Task, len(tasks))
	copy(b.tasks, tasks)
	task.SortByIndex(b.tasks)
}

// Tasks returns a copy of every task, sorted by index.
func (b *Board) Tasks() []task.Task {
	out := make([]task.Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// Len returns the number of tasks on the board.
func (b *Board) Len() int {
	return len(b.tasks)
}

// Column returns the tasks with the given status in display order.
func (b *Board) Column(status task.Status) []task.Task {
	return task.ByStatus(b.tasks, status)
}

// Counts returns the number of tasks per status.
func (b *Board) Counts() map[task.Status]int {
	counts := make(map[task.Status]int, 3)
	for _, s := range task.Statuses() {
		counts[s] = 0
	}
	for _, t := range b.tasks {
		counts[t.Status]++
	}
	return counts
}

// Find returns the task with the given ID.
func (b *Board) Find(id int) (task.Task, bool) {
	for _, t := range b.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

// Position returns the status and column position of a task.
func (b *Board) Position(id int) (task.Status, int, bool) {
	t, ok := b.Find(id)
	if !ok {
		return "", 0, false
	}
	for i, c := range b.Column(t.Status) {
		if c.ID == id {
			return t.Status, i, true
		}
	}
	return "", 0, false
}

// Remove drops a task locally, renumbering its column. It returns the
// snapshot needed to undo the removal.
func (b *Board) Remove(id int) ([]task.Task, error) {
	t, ok := b.Find(id)
	if !ok {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	snapshot := b.Tasks()

	b.rebuild(map[task.Status][]task.Task{t.Status: removeID(b.Column(t.Status), id)})
	return snapshot, nil
}

// Restore puts back a snapshot taken by Move or Remove.
func (b *Board) Restore(snapshot []task.Task) {
	b.Replace(snapshot)
}

// Move is the result of an optimistic move: the local board already shows
// the new order, Changes lists what the server must be told, and Revert undoes
// the local change.
type Move struct {
	TaskID    int
	From      task.Status
	FromIndex int
	To        task.Status
	ToIndex   int

	// Changes starts with the moved task (status and index) followed by the
	// siblings whose index shifted.
	Changes []Change

	snapshot []task.Task
}

// Change is one task update to send to the server.
type Change struct {
	ID     int
	Update task.Update
}

// Move relocates a task to position destIndex in the dest column and
// renumbers both columns 0..n-1. destIndex is clamped to the column bounds.
func (b *Board) Move(id int, dest task.Status, destIndex int) (Move, error) {
	if !dest.Valid() {
		return Move{}, fmt.Errorf("invalid status %q", dest)
	}
	moving, ok := b.Find(id)
	if !ok {
		return Move{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	_, fromIndex, _ := b.Position(id)

	source := b.Column(moving.Status)
	source = removeID(source, id)

	target := source
	if dest != moving.Status {
		target = b.Column(dest)
	}
	if destIndex < 0 {
		destIndex = 0
	}
	if destIndex > len(target) {
		destIndex = len(target)
	}
	if dest == moving.Status && destIndex == fromIndex {
		return Move{}, ErrNoop
	}

	before := make(map[int]task.Task, len(b.tasks))
	for _, t := range b.tasks {
		before[t.ID] = t
	}
	snapshot := b.Tasks()

	moving.Status = dest
	target = insertAt(target, destIndex, moving)

	columns := map[task.Status][]task.Task{dest: target}
	if from := before[id].Status; from != dest {
		columns[from] = source
	}
	b.rebuild(columns)

	m := Move{
		TaskID:    id,
		From:      before[id].Status,
		FromIndex: fromIndex,
		To:        dest,
		ToIndex:   destIndex,
		snapshot:  snapshot,
	}
	m.Changes = b.diff(before, id)
	return m, nil
}

// Revert restores the board to its state before the move.
func (b *Board) Revert(m Move) {
	if m.snapshot != nil {
		b.Restore(m.snapshot)
	}
}

// Updater is the subset of the API client a move needs.
type Updater interface {
	UpdateTask(ctx context.Context, id int, update task.Update) (task.Task, error)
}

// Apply sends the move's changes in order, stopping at the first failure.
func (m Move) Apply(ctx context.Context, u Updater) error {
	for _, c := range m.Changes {
		if _, err := u.UpdateTask(ctx, c.ID, c.Update); err != nil {
			return err
		}
	}
	return nil
}

// rebuild replaces whole columns and renumbers them from zero.
func (b *Board) rebuild(columns map[task.Status][]task.Task) {
	var out []task.Task
	for _, t := range b.tasks {
		if _, replaced := columns[t.Status]; !replaced {
			out = append(out, t)
		}
	}
	for _, status := range task.Statuses() {
		column, ok := columns[status]
		if !ok {
			continue
		}
		for i, t := range column {
			t.Status = status
			t.Index = i
			out = append(out, t)
		}
	}
	task.SortByIndex(out)
	b.tasks = out
}

// diff lists server updates needed to reach the current local state. The
// moved task always comes first and carries its status.
func (b *Board) diff(before map[int]task.Task, movedID int) []Change {
	moved, _ := b.Find(movedID)
	status := moved.Status
	index := moved.Index
	changes := []Change{{ID: movedID, Update: task.Update{Status: &status, Index: &index}}}

	for _, status := range task.Statuses() {
		for _, t := range b.Column(status) {
			if t.ID == movedID {
				continue
			}
			if prev, ok := before[t.ID]; ok && prev.Index != t.Index {
				idx := t.Index
				changes = append(changes, Change{ID: t.ID, Update: task.Update{Index: &idx}})
			}
		}
	}
	return changes
}

func removeID(tasks []task.Task, id int) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func insertAt(tasks []task.Task, i int, t task.Task) []task.Task {
	out := make([]task.Task, 0, len(tasks)+1)
	out = append(out, tasks[:i]...)
	out = append(out, t)
	out = append(out, tasks[i:]...)
	return out
}
