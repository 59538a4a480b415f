package task

import (
	"fmt"
	"strings"
)

// Status is the column a task lives in.
type Status string

// Task status constants
const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// Column describes how a status is presented on the board.
type Column struct {
	Status Status
	Title  string
	Color  string
}

var columns = []Column{
	{Status: StatusTodo, Title: "To Do", Color: "#FFE7BA"},
	{Status: StatusDoing, Title: "In Progress", Color: "#BAE7FF"},
	{Status: StatusDone, Title: "Done", Color: "#D9F7BE"},
}

// Columns returns the board columns in display order.
func Columns() []Column {
	out := make([]Column, len(columns))
	copy(out, columns)
	return out
}

// Statuses returns every valid status in display order.
func Statuses() []Status {
	out := make([]Status, len(columns))
	for i, c := range columns {
		out[i] = c.Status
	}
	return out
}

// Valid reports whether s is one of the three board statuses.
func (s Status) Valid() bool {
	return s.Position() >= 0
}

// Position returns the column position of s, or -1 for unknown statuses.
func (s Status) Position() int {
	for i, c := range columns {
		if c.Status == s {
			return i
		}
	}
	return -1
}

// Title returns the human-readable column title.
func (s Status) Title() string {
	if i := s.Position(); i >= 0 {
		return columns[i].Title
	}
	return string(s)
}

// Next returns the status of the column to the right, or s if it is the last.
func (s Status) Next() Status {
	i := s.Position()
	if i < 0 || i == len(columns)-1 {
		return s
	}
	return columns[i+1].Status
}

// Prev returns the status of the column to the left, or s if it is the first.
func (s Status) Prev() Status {
	i := s.Position()
	if i <= 0 {
		return s
	}
	return columns[i-1].Status
}

// ParseStatus accepts wire names ("doing") and column titles ("In Progress"),
// case-insensitively.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, c := range columns {
		if normalized == string(c.Status) || normalized == strings.ToLower(c.Title) {
			return c.Status, nil
		}
	}
	switch normalized {
	case "in-progress", "in_progress", "inprogress":
		return StatusDoing, nil
	case "to-do", "to_do":
		return StatusTodo, nil
	}
	return "", fmt.Errorf("invalid status %q: must be one of todo, doing, done", s)
}
