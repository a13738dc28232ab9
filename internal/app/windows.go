package app

import (
	"fmt"
	"strings"

	"github.com/1broseidon/multiwin/internal/dynamic"
	"github.com/1broseidon/multiwin/internal/theme"
	"github.com/1broseidon/multiwin/internal/window"
)

// Kind names as used on the command line, in config and over IPC.
const (
	KindSettings = "settings"
	KindLog      = "log"
	KindAbout    = "about"
)

// SettingsWindow shows the effective run settings.
type SettingsWindow struct{}

var _ dynamic.Window[*State, string, theme.Theme] = SettingsWindow{}

func (SettingsWindow) Content(app *State, h window.Handle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "host:      %s\n", app.Host)
	fmt.Fprintf(&b, "strategy:  %s\n", app.Strategy)
	fmt.Fprintf(&b, "theme:     %s\n", app.Theme.Name)
	fmt.Fprintf(&b, "window:    #%d\n", h)
	b.WriteString("\nopened:\n")
	for _, k := range Kinds() {
		fmt.Fprintf(&b, "  %-9s %d\n", k, app.Opened[k])
	}
	return b.String()
}

func (SettingsWindow) Title(*State, window.Handle) string {
	return "Settings"
}

func (SettingsWindow) Theme(app *State, _ window.Handle) theme.Theme {
	return app.Theme
}

func (SettingsWindow) Settings() window.Settings {
	s := window.DefaultSettings()
	s.Size = window.Size{Width: 640, Height: 480}
	return s
}

func (SettingsWindow) Identity() string { return KindSettings }

func (w SettingsWindow) Duplicate() dynamic.Window[*State, string, theme.Theme] { return w }

// LogWindow lists log entries whose level contains Filter. An empty filter
// shows everything.
type LogWindow struct {
	Filter string
}

var _ dynamic.Window[*State, string, theme.Theme] = LogWindow{}

func (w LogWindow) Content(app *State, _ window.Handle) string {
	var b strings.Builder
	for _, e := range app.Entries {
		if w.Filter != "" && !strings.Contains(e.Level, w.Filter) {
			continue
		}
		fmt.Fprintf(&b, "%s %-5s %s\n", e.Time.Format("15:04:05"), strings.ToUpper(e.Level), e.Message)
	}
	if b.Len() == 0 {
		return "(no entries)\n"
	}
	return b.String()
}

func (w LogWindow) Title(_ *State, h window.Handle) string {
	if w.Filter == "" {
		return fmt.Sprintf("Log #%d", h)
	}
	return fmt.Sprintf("Log #%d [%s]", h, w.Filter)
}

func (LogWindow) Theme(app *State, _ window.Handle) theme.Theme {
	return app.Theme
}

func (LogWindow) Settings() window.Settings {
	s := window.DefaultSettings()
	s.Size = window.Size{Width: 800, Height: 600}
	s.MinSize = window.Size{Width: 320, Height: 200}
	return s
}

func (LogWindow) Identity() string { return KindLog }

func (w LogWindow) Duplicate() dynamic.Window[*State, string, theme.Theme] { return w }

// AboutWindow is a small fixed-size dialog. It always uses the accent of
// the opposite theme so it stands out.
type AboutWindow struct{}

var _ dynamic.Window[*State, string, theme.Theme] = AboutWindow{}

func (AboutWindow) Content(app *State, _ window.Handle) string {
	return fmt.Sprintf("multiwin\n\nmany windows, one registry\nrunning since %s\n", app.Started.Format("15:04:05"))
}

func (AboutWindow) Title(*State, window.Handle) string {
	return "About multiwin"
}

func (AboutWindow) Theme(app *State, _ window.Handle) theme.Theme {
	th := app.Theme
	if th.Name == theme.Dark().Name {
		th.Accent = theme.Light().Accent
	} else {
		th.Accent = theme.Dark().Accent
	}
	return th
}

func (AboutWindow) Settings() window.Settings {
	s := window.DefaultSettings()
	s.Size = window.Size{Width: 360, Height: 200}
	s.Position.Mode = window.PositionCentered
	s.Resizable = false
	s.Level = window.LevelAlwaysOnTop
	return s
}

func (AboutWindow) Identity() string { return KindAbout }

func (w AboutWindow) Duplicate() dynamic.Window[*State, string, theme.Theme] { return w }
