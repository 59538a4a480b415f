package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, dirName, fileName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.APIURL != "http://localhost:8000" {
		t.Errorf("Expected default api_url, got '%s'", cfg.APIURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Expected 10s timeout, got %s", cfg.Timeout)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Expected warn log level, got '%s'", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_NoFiles(t *testing.T) {
	cfg, err := Load(LoadOptions{HomeDir: t.TempDir(), WorkDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL || cfg.Timeout != DefaultTimeout {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()

	writeConfig(t, home, "api_url: http://global:8000\ntimeout: 3s\nlog:\n  level: info\n")
	writeConfig(t, work, "api_url: http://project:9000\n")

	cfg, err := Load(LoadOptions{HomeDir: home, WorkDir: work})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.APIURL != "http://project:9000" {
		t.Errorf("expected project api_url, got %s", cfg.APIURL)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("expected global timeout to survive, got %s", cfg.Timeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected global log level to survive, got %s", cfg.Log.Level)
	}
}

func TestLoad_ExplicitFileAndEnv(t *testing.T) {
	home := t.TempDir()
	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(explicit, []byte("api_url: http://explicit:1\nlog:\n  file: ~/logs/kanban.log\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv("KANBAN_TIMEOUT", "250ms")
	t.Setenv("KANBAN_LOG_LEVEL", "debug")

	cfg, err := Load(LoadOptions{HomeDir: home, WorkDir: t.TempDir(), File: explicit})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.APIURL != "http://explicit:1" {
		t.Errorf("expected explicit api_url, got %s", cfg.APIURL)
	}
	if cfg.Timeout != 250*time.Millisecond {
		t.Errorf("expected env timeout, got %s", cfg.Timeout)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected env log level, got %s", cfg.Log.Level)
	}
	if want := filepath.Join(home, "logs", "kanban.log"); cfg.Log.File != want {
		t.Errorf("expected expanded log file %s, got %s", want, cfg.Log.File)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(LoadOptions{HomeDir: t.TempDir(), WorkDir: t.TempDir(), File: "/nonexistent/kanban.yaml"})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	work := t.TempDir()
	writeConfig(t, work, "api_url: [unterminated\n")

	if _, err := Load(LoadOptions{HomeDir: t.TempDir(), WorkDir: work}); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "https ok", mutate: func(c *Config) { c.APIURL = "https://tasks.example.com" }},
		{name: "bad scheme", mutate: func(c *Config) { c.APIURL = "ftp://tasks" }, wantErr: "scheme"},
		{name: "missing host", mutate: func(c *Config) { c.APIURL = "http://" }, wantErr: "missing host"},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, dirName, fileName)

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	cfg, err := Load(LoadOptions{HomeDir: t.TempDir(), WorkDir: tmpDir})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL || cfg.Timeout != DefaultTimeout {
		t.Errorf("written default should load as defaults, got %+v", cfg)
	}

	if err := WriteDefault(path); err == nil {
		t.Error("expected WriteDefault to refuse overwriting")
	}
}

func TestConfig_MarshalYAML(t *testing.T) {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "timeout: 10s") {
		t.Errorf("expected duration string in yaml, got:\n%s", out)
	}
	if !strings.Contains(out, "api_url: http://localhost:8000") {
		t.Errorf("expected api_url in yaml, got:\n%s", out)
	}
}
