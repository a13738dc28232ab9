package config

import (
	"errors"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/multiwin/internal/window"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Host != HostTerm {
		t.Fatalf("expected default host %q, got %q", HostTerm, cfg.Host)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Theme != "dark" || !res.Config.IPC.Enabled {
		t.Fatalf("expected defaults, got %+v", res.Config)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no loaded files, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Logging.Level != "info" {
		t.Fatalf("expected default log level, got %q", res.Config.Logging.Level)
	}
}

func TestLoadFromPath_Values(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"host: headless",
		"theme: light",
		"open: [settings, log]",
		"logging:",
		"  level: debug",
		"ipc:",
		"  enabled: false",
		"windows:",
		"  log:",
		"    size: {width: 640}",
		"    level: always-on-top",
		"    resizable: false",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Host != HostHeadless || cfg.Theme != "light" || cfg.Logging.Level != "debug" || cfg.IPC.Enabled {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if got := strings.Join(cfg.Open, ","); got != "settings,log" {
		t.Fatalf("expected open settings,log, got %q", got)
	}

	s := cfg.SettingsFor("log", window.DefaultSettings())
	if s.Size.Width != 640 || s.Size.Height != 768 {
		t.Fatalf("expected size 640x768, got %dx%d", s.Size.Width, s.Size.Height)
	}
	if s.Level != window.LevelAlwaysOnTop || s.Resizable {
		t.Fatalf("expected override applied, got %+v", s)
	}
	if !s.Decorations {
		t.Fatalf("expected unset fields to keep base value")
	}

	base := window.DefaultSettings()
	if got := cfg.SettingsFor("about", base); got != base {
		t.Fatalf("expected no override for about, got %+v", got)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "unknown_key: 1\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorHasSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "theme: dark\nhost: wayland\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Path != "host" || verr.Source.Line != 2 {
		t.Fatalf("expected host at line 2, got %q line %d", verr.Path, verr.Source.Line)
	}
	if !strings.HasPrefix(err.Error(), path+":2:") {
		t.Fatalf("expected file:line prefix, got %v", err)
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()

	// config.d loaded first, in sorted order.
	writeFile(t, filepath.Join(dir, "config.d", "10-base.yaml"), "theme: light\nwindows:\n  log:\n    size: {width: 100, height: 50}\n")
	writeFile(t, filepath.Join(dir, "config.d", "20-override.yaml"), "theme: dark\nwindows:\n  log:\n    size: {height: 60}\n")

	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "include:\n  - config.d\nhost: headless\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Theme != "dark" {
		t.Fatalf("expected later include to win, got %q", res.Config.Theme)
	}
	s := res.Config.SettingsFor("log", window.DefaultSettings())
	if s.Size != (window.Size{Width: 100, Height: 60}) {
		t.Fatalf("expected merged size 100x60, got %+v", s.Size)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 loaded files, got %v", res.Files)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	writeFile(t, a, "include: b.yaml\n")
	writeFile(t, filepath.Join(dir, "b.yaml"), "include: a.yaml\n")

	_, err := LoadFromPath(a)
	if err == nil || !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestLoadFromPath_IncludeMissingPathHasContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "include:\n  - missing.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "missing.yaml") || !strings.Contains(err.Error(), path+":") {
		t.Fatalf("expected include error with location, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"bad host", func(c *Config) { c.Host = "wayland" }, "host"},
		{"bad theme", func(c *Config) { c.Theme = "neon" }, "theme"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"empty open entry", func(c *Config) { c.Open = []string{"log", " "} }, "open"},
		{"bad window settings", func(c *Config) {
			w := -1
			c.Windows["log"] = WindowOverride{Size: &RawSize{Width: &w}}
		}, "windows.log"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
		})
	}
}

func TestValidateKinds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Open = []string{"log"}
	cfg.Windows["settings"] = WindowOverride{}
	if err := cfg.ValidateKinds([]string{"settings", "log"}); err != nil {
		t.Fatalf("expected known kinds to pass, got %v", err)
	}

	cfg.Windows["clock"] = WindowOverride{}
	err := cfg.ValidateKinds([]string{"settings", "log"})
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	if !strings.Contains(err.Error(), `windows.clock`) {
		t.Fatalf("expected path in error, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := DefaultConfig()
	cfg.Host = HostX11
	cfg.Open = []string{"about"}
	top := window.LevelAlwaysOnTop
	cfg.Windows["about"] = WindowOverride{Level: &top}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Host != HostX11 {
		t.Fatalf("expected host x11, got %q", res.Config.Host)
	}
	if got := res.Config.SettingsFor("about", window.DefaultSettings()).Level; got != top {
		t.Fatalf("expected level %q, got %q", top, got)
	}
}

func TestSave_RejectsInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Theme = "neon"
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.Save(path); err == nil {
		t.Fatalf("expected invalid config to be rejected")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file written, got %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "multiwin.log")
	logger, closer, err := LoggingConfig{Level: "warn", File: path}.NewLogger(os.Stderr)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	logger.Info("dropped")
	logger.Warn("kept", "handle", 3)
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(data), "dropped") || !strings.Contains(string(data), "handle=3") {
		t.Fatalf("unexpected log output %q", data)
	}

	if _, _, err := (LoggingConfig{Level: "loud"}).NewLogger(os.Stderr); err == nil {
		t.Fatalf("expected bad level error")
	}
}

func TestInitAnswers_Apply(t *testing.T) {
	cfg := DefaultConfig()
	a := AnswersFrom(cfg)
	if a.Host != "term" || a.Theme != "dark" || !a.IPCEnabled {
		t.Fatalf("unexpected seed answers: %+v", a)
	}
	if form := NewInitForm(a, []string{"settings", "log"}); form == nil {
		t.Fatalf("expected form")
	}

	a.Host = "headless"
	a.Open = []string{"log"}
	out := a.Apply(cfg)
	if out.Host != HostHeadless || len(out.Open) != 1 {
		t.Fatalf("expected answers applied, got %+v", out)
	}
	if cfg.Host != HostTerm {
		t.Fatalf("expected original config untouched")
	}
	if err := out.Validate(); err != nil {
		t.Fatalf("expected applied config valid, got %v", err)
	}
}

func TestLoadFromPath_SharedIncludeLoadsOnce(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "shared.yaml"), "theme: light\n")
	writeFile(t, filepath.Join(dir, "a.yaml"), "include: shared.yaml\n")
	writeFile(t, filepath.Join(dir, "b.yaml"), "include: shared.yaml\n")
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "include: [a.yaml, b.yaml]\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Files) != 4 {
		t.Fatalf("expected shared.yaml to load once (4 files), got %v", res.Files)
	}
	src, ok := res.Sources["theme"]
	if !ok || !strings.HasSuffix(src.String(), "shared.yaml:1:8") {
		t.Fatalf("expected theme sourced from shared.yaml:1:8, got %v", src)
	}
}

// Module-local imports sit in their own last group, after third-party ones.
func TestSourceFiles_ImportGrouping(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	for _, name := range files {
		fset := token.NewFileSet()
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		localLine := 0
		for _, imp := range f.Imports {
			line := fset.Position(imp.Pos()).Line
			if strings.Contains(imp.Path.Value, "github.com/1broseidon/multiwin/") {
				if localLine == 0 {
					localLine = line
				}
				continue
			}
			if localLine != 0 && line > localLine {
				t.Errorf("%s: %s imported after module-local imports", name, imp.Path.Value)
			}
		}
	}
}
