// Package logging builds the logrus logger shared by the CLI, the TUI and the
// API client.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// New returns a logger at the given level. When file is set, entries are
// appended to it; otherwise they go to fallback. The returned close function
// is always safe to call.
func New(level, file string, fallback io.Writer) (*log.Logger, func() error, error) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := log.New()
	logger.SetLevel(lvl)
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		DisableColors:   file != "",
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	closeFn := func() error { return nil }
	switch {
	case file != "":
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger.SetOutput(f)
		closeFn = f.Close
	case fallback != nil:
		logger.SetOutput(fallback)
	default:
		logger.SetOutput(io.Discard)
	}

	return logger, closeFn, nil
}

// Discard returns a logger that drops everything. Used by tests and by the TUI
// when no log file is configured, since the terminal belongs to the UI.
func Discard() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}
