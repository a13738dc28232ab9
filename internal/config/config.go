package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/multiwin/internal/theme"
	"github.com/1broseidon/multiwin/internal/window"
)

// HostKind selects the backend that owns native windows.
type HostKind string

const (
	HostTerm     HostKind = "term"     // Tabs in a bubbletea program.
	HostX11      HostKind = "x11"      // Top-level X11 windows.
	HostHeadless HostKind = "headless" // In-memory, for scripting and tests.
)

// ErrUnknownKind is returned when the config names a window kind the
// application does not declare.
var ErrUnknownKind = errors.New("unknown window kind")

// LoggingConfig configures the structured log.
type LoggingConfig struct {
	// Level controls verbosity: debug, info, warn, error
	Level string `yaml:"level"`
	// File is the log file path; empty logs to stderr.
	File string `yaml:"file,omitempty"`
}

// IPCConfig configures the control socket.
type IPCConfig struct {
	Enabled bool `yaml:"enabled"`
	// Socket overrides the default $XDG_RUNTIME_DIR/multiwin.sock.
	Socket string `yaml:"socket,omitempty"`
}

// Config holds the application configuration.
type Config struct {
	Host    HostKind                  `yaml:"host"`
	Theme   string                    `yaml:"theme"`
	Display string                    `yaml:"display,omitempty"`
	Open    []string                  `yaml:"open,omitempty"`
	Logging LoggingConfig             `yaml:"logging"`
	IPC     IPCConfig                 `yaml:"ipc"`
	Windows map[string]WindowOverride `yaml:"windows,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Host:    HostTerm,
		Theme:   "dark",
		Logging: LoggingConfig{Level: "info"},
		IPC:     IPCConfig{Enabled: true},
		Windows: map[string]WindowOverride{},
	}
}

// Hosts lists the valid host kinds.
func Hosts() []HostKind {
	return []HostKind{HostTerm, HostX11, HostHeadless}
}

// ResolvedTheme returns the configured theme.
func (c *Config) ResolvedTheme() theme.Theme {
	th, err := theme.ByName(c.Theme)
	if err != nil {
		return theme.Dark()
	}
	return th
}

// SettingsFor applies the override configured for kind, if any, to base.
func (c *Config) SettingsFor(kind string, base window.Settings) window.Settings {
	override, ok := c.Windows[kind]
	if !ok {
		return base
	}
	return override.Apply(base)
}

// ValidateKinds reports config entries that name window kinds outside known.
func (c *Config) ValidateKinds(known []string) error {
	for _, kind := range sortedKeys(c.Windows) {
		if !slices.Contains(known, kind) {
			return &ValidationError{Path: "windows." + kind, Err: fmt.Errorf("%w %q", ErrUnknownKind, kind)}
		}
	}
	for _, kind := range c.Open {
		if !slices.Contains(known, kind) {
			return &ValidationError{Path: "open", Err: fmt.Errorf("%w %q", ErrUnknownKind, kind)}
		}
	}
	return nil
}

// SlogLevel parses the logging level.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log level must be one of: debug, info, warn, error")
}

// NewLogger builds the application logger. Output goes to the configured
// file, or to fallback when none is set. The returned closer releases the
// file and is never nil.
func (l LoggingConfig) NewLogger(fallback io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := l.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	var out io.Writer = fallback
	var closer io.Closer = io.NopCloser(nil)
	if l.File != "" {
		if err := os.MkdirAll(filepath.Dir(l.File), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(l.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	return logger, closer, nil
}

// Save writes the configuration to path.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(Hosts(), c.Host) {
		return &ValidationError{Path: "host", Err: fmt.Errorf("host must be one of: term, x11, headless")}
	}
	if _, err := theme.ByName(c.Theme); err != nil {
		return &ValidationError{Path: "theme", Err: err}
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		return &ValidationError{Path: "logging.level", Err: err}
	}
	for i, kind := range c.Open {
		if strings.TrimSpace(kind) == "" {
			return &ValidationError{Path: "open", Err: fmt.Errorf("entry %d is empty", i)}
		}
	}
	for _, kind := range sortedKeys(c.Windows) {
		if strings.TrimSpace(kind) == "" {
			return &ValidationError{Path: "windows", Err: fmt.Errorf("windows contains an empty kind name")}
		}
		s := c.Windows[kind].Apply(window.DefaultSettings())
		if err := s.Validate(); err != nil {
			return &ValidationError{Path: "windows." + kind, Err: err}
		}
	}
	return nil
}
