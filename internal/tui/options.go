package tui

import (
	"github.com/pablasso/kanban/internal/tui/views"
	log "github.com/sirupsen/logrus"
)

// Options configures TUI startup behavior.
type Options struct {
	Service views.TaskService
	Logger  log.FieldLogger

	// APIURL is shown in the status bar.
	APIURL string
}
