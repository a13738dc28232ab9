package app

import (
	"io"
	"log/slog"
	"time"

	"github.com/1broseidon/multiwin/internal/config"
	"github.com/1broseidon/multiwin/internal/ipc"
	"github.com/1broseidon/multiwin/internal/theme"
	"github.com/1broseidon/multiwin/internal/window"
)

// SessionConfig configures a Session.
type SessionConfig struct {
	// Config supplies per-kind settings overrides. Nil means defaults.
	Config *config.Config
	// Handles issues handles for spawned windows; usually the host.
	Handles window.HandleSource
	// Dynamic selects the dynamic registry instead of the union.
	Dynamic bool
	State   *State
	Logger  *slog.Logger
}

// Session owns the application state and its window registry. It is not
// safe for concurrent use; Runner and the terminal model each call it from
// their single loop.
type Session struct {
	state  *State
	cfg    *config.Config
	reg    registry
	logger *slog.Logger
}

// NewSession creates a session whose registry holds the main window.
func NewSession(cfg SessionConfig) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := cfg.Config
	if c == nil {
		c = config.DefaultConfig()
	}
	strategy := StrategyUnion
	var reg registry
	if cfg.Dynamic {
		strategy = StrategyDynamic
		reg = dynamicRegistry{
			m:       NewDynamicManager(cfg.Handles, logger),
			catalog: NewCatalog(),
		}
	} else {
		reg = unionRegistry{m: NewUnionManager(cfg.Handles, logger)}
	}
	state := cfg.State
	if state == nil {
		state = NewState(c.ResolvedTheme(), string(c.Host), strategy)
	}
	state.Strategy = strategy
	state.Opened[KindSettings]++
	return &Session{state: state, cfg: c, reg: reg, logger: logger}
}

// State returns the application state.
func (s *Session) State() *State { return s.state }

// Kinds returns the kind names that can be spawned.
func (s *Session) Kinds() []string { return Kinds() }

// Spawn registers a new window of kind and returns the request opening it,
// with the configured settings overrides applied.
func (s *Session) Spawn(kind string) (window.Handle, window.Request, error) {
	h, req, err := s.reg.spawn(kind)
	if err != nil {
		return 0, req, err
	}
	s.state.Opened[kind]++
	s.state.Record("info", "opened %s #%d", kind, h)
	s.logger.Info("window spawned", "kind", kind, "handle", h)
	return h, window.Open(h, s.cfg.SettingsFor(kind, req.Settings)), nil
}

// Close returns the request closing h. Unknown handles yield a no-op.
func (s *Session) Close(h window.Handle) window.Request {
	return s.reg.close(h)
}

// CloseAll returns the request closing every registered window.
func (s *Session) CloseAll() window.Request {
	return s.reg.closeAll()
}

// Closed forgets h after the host reported it closed.
func (s *Session) Closed(h window.Handle) {
	if s.Has(h) {
		s.state.Record("info", "closed %s #%d", s.reg.kind(h), h)
	}
	s.reg.closed(h)
}

// Has reports whether h is registered.
func (s *Session) Has(h window.Handle) bool {
	return s.reg.contains(h)
}

func (s *Session) IsEmpty() bool { return s.reg.isEmpty() }

func (s *Session) Handles() []window.Handle { return s.reg.handles() }

// Count returns how many windows of kind are open.
func (s *Session) Count(kind string) int { return s.reg.count(kind) }

// Kind returns the kind name of h. It panics if h is not registered.
func (s *Session) Kind(h window.Handle) string { return s.reg.kind(h) }

// Settings returns the effective settings of h. It panics if h is not
// registered.
func (s *Session) Settings(h window.Handle) window.Settings {
	return s.cfg.SettingsFor(s.reg.kind(h), s.reg.settings(h))
}

// View returns what the host should show for h. It panics if h is not
// registered.
func (s *Session) View(h window.Handle) (title, content string, th theme.Theme) {
	return s.reg.view(s.state, h)
}

// Status summarizes the session for IPC.
func (s *Session) Status() ipc.StatusData {
	return ipc.StatusData{
		Host:          s.state.Host,
		Strategy:      s.state.Strategy,
		WindowCount:   len(s.reg.handles()),
		Kinds:         s.Kinds(),
		UptimeSeconds: int64(time.Since(s.state.Started).Seconds()),
	}
}

// Windows lists the open windows for IPC.
func (s *Session) Windows() []ipc.WindowInfo {
	hs := s.reg.handles()
	out := make([]ipc.WindowInfo, 0, len(hs))
	for _, h := range hs {
		out = append(out, s.info(h))
	}
	return out
}

func (s *Session) info(h window.Handle) ipc.WindowInfo {
	title, _, _ := s.View(h)
	return ipc.WindowInfo{Handle: uint32(h), Kind: s.reg.kind(h), Title: title}
}

// MainSettings returns the settings hosts use for the main window, which
// they create before any session exists.
func MainSettings(cfg *config.Config) window.Settings {
	return cfg.SettingsFor(KindSettings, SettingsWindow{}.Settings())
}
