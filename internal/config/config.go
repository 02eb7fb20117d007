// Package config loads the optional burn.yaml settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lhaig/burn/internal/linter"
	"github.com/lhaig/burn/internal/logger"
)

// DefaultFile is looked up in the working directory when no path is given
const DefaultFile = "burn.yaml"

// Output modes for `burn parse`
const (
	OutputTree   = "tree"
	OutputSource = "source"
)

// Config is the decoded settings file
type Config struct {
	Log    LogConfig   `yaml:"log"`
	Output string      `yaml:"output"`
	Lint   LintConfig  `yaml:"lint"`
	Repl   ReplConfig  `yaml:"repl"`
	Watch  WatchConfig `yaml:"watch"`
}

// LogConfig mirrors logger.Config in file form
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// LintConfig lists rules to skip
type LintConfig struct {
	Disabled []string `yaml:"disabled"`
}

// ReplConfig holds REPL settings
type ReplConfig struct {
	History string `yaml:"history"`
}

// WatchConfig holds `burn watch` settings
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns the settings used when no file is present
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutputTree,
		Repl:   ReplConfig{History: "~/.burn_history"},
		Watch:  WatchConfig{Debounce: 200 * time.Millisecond},
	}
}

// Load reads the settings at path. An empty path means DefaultFile in the
// working directory, and a missing DefaultFile yields the defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	logger.Debug("config loaded", "path", path)
	return cfg, nil
}

// Parse decodes YAML settings over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	switch c.Output {
	case OutputTree, OutputSource:
	default:
		return fmt.Errorf("output: unknown mode %q", c.Output)
	}
	for _, rule := range c.Lint.Disabled {
		if !linter.IsRule(rule) {
			return fmt.Errorf("lint.disabled: unknown rule %q", rule)
		}
	}
	if c.Watch.Debounce <= 0 {
		return fmt.Errorf("watch.debounce: must be positive, got %s", c.Watch.Debounce)
	}
	return nil
}

// Logger converts the log section into a logger configuration
func (c *Config) Logger() logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Level, _ = logger.ParseLevel(c.Log.Level)
	cfg.Format = c.Log.Format
	cfg.LogFile = expandHome(c.Log.File)
	return cfg
}

// HistoryPath returns the REPL history file with `~` expanded
func (c *Config) HistoryPath() string {
	return expandHome(c.Repl.History)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
