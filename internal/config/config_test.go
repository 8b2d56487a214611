package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
)

// useConfigHome points XDG_CONFIG_HOME at a fresh directory.
func useConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvConfigPath, "")
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, AppName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestPath(t *testing.T) {
	home := useConfigHome(t)

	want := filepath.Join(home, "litmerge", "config.yml")
	if got := Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}

	t.Setenv(EnvConfigPath, "/custom/litmerge.yml")
	if got := Path(); got != "/custom/litmerge.yml" {
		t.Errorf("Path() with %s = %q", EnvConfigPath, got)
	}
}

func TestLoad_NotFound(t *testing.T) {
	useConfigHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OutputDir != "" || cfg.JSONL || cfg.SQLite {
		t.Errorf("expected empty config, got %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default info", cfg.LogLevel)
	}
}

func TestLoad_File(t *testing.T) {
	home := useConfigHome(t)
	writeConfig(t, home, "output_dir: /data/out\njsonl: true\nlog_level: debug\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OutputDir != "/data/out" || !cfg.JSONL || cfg.SQLite {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Level() != logrus.DebugLevel {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := useConfigHome(t)
	writeConfig(t, home, "output_dir: /data/out\nsqlite: false\n")
	t.Setenv("LITMERGE_OUTPUT_DIR", "/env/out")
	t.Setenv("LITMERGE_SQLITE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OutputDir != "/env/out" {
		t.Errorf("OutputDir = %q, want /env/out", cfg.OutputDir)
	}
	if !cfg.SQLite {
		t.Error("SQLite should be enabled from environment")
	}
}

func TestLoad_EnvWithoutFile(t *testing.T) {
	useConfigHome(t)
	t.Setenv("LITMERGE_BIBTEX", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.BibTeX {
		t.Error("BibTeX should be enabled from environment")
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	useConfigHome(t)
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "nope.yml"))

	if _, err := Load(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	home := useConfigHome(t)
	writeConfig(t, home, "log_level: chatty\n")

	if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestResolveOutputDir(t *testing.T) {
	cfg := &Config{}
	if got := cfg.ResolveOutputDir("/work"); got != filepath.Join("/work", "output_format") {
		t.Errorf("ResolveOutputDir() = %q", got)
	}
	cfg.OutputDir = "/elsewhere"
	if got := cfg.ResolveOutputDir("/work"); got != "/elsewhere" {
		t.Errorf("ResolveOutputDir() = %q", got)
	}
}

func TestYAML(t *testing.T) {
	cfg := &Config{OutputDir: "/out", JSONL: true, LogLevel: "warn"}
	data, err := cfg.YAML()
	if err != nil {
		t.Fatalf("YAML() error = %v", err)
	}
	got := string(data)
	for _, want := range []string{"output_dir: /out", "jsonl: true", "log_level: warn"} {
		if !strings.Contains(got, want) {
			t.Errorf("YAML() missing %q:\n%s", want, got)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"~/out", filepath.Join(home, "out")},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.input); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
