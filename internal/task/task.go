package task

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Field limits enforced by the task API.
const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 1000
)

// Task represents a single card on the board. The server owns tasks; the
// client only ever holds a reloaded copy.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	Index       int    `json:"index"`
}

// Create is the payload for creating a task.
type Create struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      Status `json:"status"`
	Index       int    `json:"index"`
}

// Update is a partial update. Nil fields are left untouched by the server.
type Update struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *Status `json:"status,omitempty"`
	Index       *int    `json:"index,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil && u.Index == nil
}

// NewCreate builds a create payload for the todo column.
func NewCreate(title, description string) Create {
	return Create{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Status:      StatusTodo,
	}
}

// Validate checks a create payload before it is sent.
func (c Create) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(c.Title) > MaxTitleLength {
		return fmt.Errorf("title must be at most %d characters", MaxTitleLength)
	}
	if utf8.RuneCountInString(c.Description) > MaxDescriptionLength {
		return fmt.Errorf("description must be at most %d characters", MaxDescriptionLength)
	}
	if c.Status != "" && !c.Status.Valid() {
		return fmt.Errorf("invalid status %q", c.Status)
	}
	if c.Index < 0 {
		return fmt.Errorf("index must not be negative")
	}
	return nil
}

// SortByIndex sorts tasks by index, breaking ties by ID so the order is stable
// across reloads.
func SortByIndex(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Index != tasks[j].Index {
			return tasks[i].Index < tasks[j].Index
		}
		return tasks[i].ID < tasks[j].ID
	})
}

// ByStatus returns the tasks in the given column, sorted by index.
func ByStatus(tasks []Task, status Status) []Task {
	var column []Task
	for _, t := range tasks {
		if t.Status == status {
			column = append(column, t)
		}
	}
	SortByIndex(column)
	return column
}
