package config

import (
	"github.com/charmbracelet/huh"

	"github.com/1broseidon/multiwin/internal/theme"
)

// InitAnswers holds the values collected by the init form.
type InitAnswers struct {
	Host       string
	Theme      string
	LogLevel   string
	IPCEnabled bool
	Open       []string
}

// AnswersFrom seeds the form with the values in cfg.
func AnswersFrom(cfg *Config) *InitAnswers {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &InitAnswers{
		Host:       string(cfg.Host),
		Theme:      cfg.Theme,
		LogLevel:   cfg.Logging.Level,
		IPCEnabled: cfg.IPC.Enabled,
		Open:       append([]string(nil), cfg.Open...),
	}
}

// Apply writes the answers into a copy of cfg.
func (a *InitAnswers) Apply(cfg *Config) *Config {
	out := DefaultConfig()
	if cfg != nil {
		c := *cfg
		out = &c
	}
	out.Host = HostKind(a.Host)
	out.Theme = a.Theme
	out.Logging.Level = a.LogLevel
	out.IPC.Enabled = a.IPCEnabled
	out.Open = append([]string(nil), a.Open...)
	return out
}

// NewInitForm builds the interactive form behind "config init". kinds are
// the window kinds offered for opening at startup.
func NewInitForm(a *InitAnswers, kinds []string) *huh.Form {
	hostOpts := make([]huh.Option[string], 0, len(Hosts()))
	for _, h := range Hosts() {
		hostOpts = append(hostOpts, huh.NewOption(string(h), string(h)))
	}
	themeOpts := make([]huh.Option[string], 0, len(theme.Names()))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}
	kindOpts := make([]huh.Option[string], 0, len(kinds))
	for _, k := range kinds {
		kindOpts = append(kindOpts, huh.NewOption(k, k))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("host").
				Title("Host").
				Description("Backend that owns the windows").
				Options(hostOpts...).
				Value(&a.Host),

			huh.NewSelect[string]().
				Key("theme").
				Title("Theme").
				Options(themeOpts...).
				Value(&a.Theme),

			huh.NewMultiSelect[string]().
				Key("open").
				Title("Open at startup").
				Description("Window kinds spawned when multiwin starts").
				Options(kindOpts...).
				Value(&a.Open),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("log_level").
				Title("Log Level").
				Options(
					huh.NewOption("debug", "debug"),
					huh.NewOption("info", "info"),
					huh.NewOption("warn", "warn"),
					huh.NewOption("error", "error"),
				).
				Value(&a.LogLevel),

			huh.NewConfirm().
				Key("ipc").
				Title("Enable control socket").
				Description("Lets `multiwin spawn`, `close-all` and the MCP server reach a running instance").
				Value(&a.IPCEnabled),
		),
	).WithShowHelp(true).WithShowErrors(true)
}
