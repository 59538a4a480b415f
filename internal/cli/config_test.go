package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInit(t *testing.T) {
	home, work := isolate(t)

	t.Run("project", func(t *testing.T) {
		out, err := runCLI(t, "config", "init")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		path := filepath.Join(work, ".kanban", "config.yaml")
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s to exist: %v", path, err)
		}
		if !strings.Contains(out, path) {
			t.Errorf("expected path in output, got %q", out)
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		_, err := runCLI(t, "config", "init")
		if err == nil || !strings.Contains(err.Error(), "already exists") {
			t.Errorf("expected already exists error, got %v", err)
		}
	})

	t.Run("global", func(t *testing.T) {
		if _, err := runCLI(t, "config", "init", "--global"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(filepath.Join(home, ".kanban", "config.yaml")); err != nil {
			t.Errorf("expected global config: %v", err)
		}
	})

	t.Run("written file loads", func(t *testing.T) {
		out, err := runCLI(t, "config", "show")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "api_url: http://localhost:8000") {
			t.Errorf("expected default api_url, got:\n%s", out)
		}
	})
}

func TestConfigPath(t *testing.T) {
	_, work := isolate(t)

	// An invalid config must not stop path from printing.
	t.Setenv("KANBAN_API_URL", "not a url")

	out, err := runCLI(t, "config", "path")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "global") || !strings.Contains(out, "project") {
		t.Errorf("expected both locations, got:\n%s", out)
	}
	if !strings.Contains(out, filepath.Join(work, ".kanban", "config.yaml")+" (missing)") {
		t.Errorf("expected missing project config, got:\n%s", out)
	}
}
