package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Defaults
const (
	DefaultAPIURL   = "http://localhost:8000"
	DefaultTimeout  = 10 * time.Second
	DefaultLogLevel = "warn"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		APIURL:  DefaultAPIURL,
		Timeout: DefaultTimeout,
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

const defaultContent = `# Kanban client configuration
# Values here are overridden by KANBAN_* environment variables and flags.

# Task API base URL
api_url: http://localhost:8000

# Per-request timeout
timeout: 10s

log:
  # panic, fatal, error, warn, info, debug, trace
  level: warn
  # Log file; the board UI only logs when this is set
  # file: ~/.kanban/kanban.log
`

// WriteDefault writes the default configuration to path. It refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultContent), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
