package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lhaig/burn/internal/logger"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
log:
  level: debug
  format: json
output: source
lint:
  disabled: [empty-block, self-assignment]
watch:
  debounce: 1s
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log section %+v", cfg.Log)
	}
	if cfg.Output != OutputSource {
		t.Errorf("expected output %q, got %q", OutputSource, cfg.Output)
	}
	if len(cfg.Lint.Disabled) != 2 {
		t.Errorf("expected 2 disabled rules, got %v", cfg.Lint.Disabled)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("expected debounce 1s, got %s", cfg.Watch.Debounce)
	}
	if cfg.Repl.History != "~/.burn_history" {
		t.Errorf("expected default history to survive, got %q", cfg.Repl.History)
	}
	if lc := cfg.Logger(); lc.Level != logger.LevelDebug || lc.Format != "json" {
		t.Errorf("unexpected logger config %+v", lc)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Output != OutputTree {
		t.Errorf("expected default output, got %q", cfg.Output)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		message string
	}{
		{"unknown key", "colour: red\n", "field colour not found"},
		{"bad level", "log:\n  level: loud\n", "log.level"},
		{"bad format", "log:\n  format: xml\n", "log.format"},
		{"bad output", "output: json\n", "output"},
		{"unknown rule", "lint:\n  disabled: [no-such-rule]\n", "lint.disabled"},
		{"zero debounce", "watch:\n  debounce: 0s\n", "watch.debounce"},
		{"bad duration", "watch:\n  debounce: soon\n", "parsing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("expected error containing %q, got %q", tt.message, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("output: source\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output != OutputSource {
		t.Errorf("expected output %q, got %q", OutputSource, cfg.Output)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for a missing explicit config file")
	}
}

func TestLoadDefaultFileMissing(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Watch.Debounce != 200*time.Millisecond {
		t.Errorf("expected default debounce, got %s", cfg.Watch.Debounce)
	}
}

func TestHistoryPath(t *testing.T) {
	cfg := Default()
	cfg.Repl.History = "/tmp/history"
	if got := cfg.HistoryPath(); got != "/tmp/history" {
		t.Errorf("expected absolute path unchanged, got %q", got)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg.Repl.History = "~/.burn_history"
	if got, want := cfg.HistoryPath(), filepath.Join(home, ".burn_history"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
