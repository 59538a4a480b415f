package components

import (
	"fmt"
	"strings"
)

const (
	filledChar = "■"
	emptyChar  = "□"
)

// Progress renders board completion like: ■■■■□□□□ 2/4 done
type Progress struct {
	Done  int
	Total int
	Width int // character width of the bar portion
}

// NewProgress creates a new Progress instance.
func NewProgress(done, total, width int) Progress {
	return Progress{
		Done:  done,
		Total: total,
		Width: width,
	}
}

// View returns the rendered progress bar string. An empty board renders as
// "no tasks" instead of a bar.
func (p Progress) View() string {
	if p.Width <= 0 {
		return ""
	}
	if p.Total <= 0 {
		return "no tasks"
	}

	done := min(max(p.Done, 0), p.Total)
	filled := (done * p.Width) / p.Total

	bar := strings.Repeat(filledChar, filled) + strings.Repeat(emptyChar, p.Width-filled)
	return fmt.Sprintf("%s %d/%d done", bar, done, p.Total)
}
