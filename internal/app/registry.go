package app

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/multiwin/internal/config"
	"github.com/1broseidon/multiwin/internal/dynamic"
	"github.com/1broseidon/multiwin/internal/manager"
	"github.com/1broseidon/multiwin/internal/theme"
	"github.com/1broseidon/multiwin/internal/union"
	"github.com/1broseidon/multiwin/internal/window"
)

// Strategy names.
const (
	StrategyUnion   = "union"
	StrategyDynamic = "dynamic"
)

// Kinds returns the kind names the application knows, sorted.
func Kinds() []string {
	return []string{KindAbout, KindLog, KindSettings}
}

// NewUnionWindow returns a fresh window of the named kind as a union value.
func NewUnionWindow(kind string) (AppWindow, error) {
	switch kind {
	case KindSettings:
		return WrapAppWindow(SettingsWindow{}), nil
	case KindLog:
		return WrapAppWindow(LogWindow{}), nil
	case KindAbout:
		return WrapAppWindow(AboutWindow{}), nil
	}
	return AppWindow{}, fmt.Errorf("%w: %q", config.ErrUnknownKind, kind)
}

// kindName returns the kind name of a union value.
func kindName(u AppWindow) string {
	switch u.Kind() {
	case AppWindowSettingsWindow:
		return KindSettings
	case AppWindowLogWindow:
		return KindLog
	case AppWindowAboutWindow:
		return KindAbout
	}
	panic(u.invalid())
}

// NewCatalog registers every application window kind as a dynamic window.
func NewCatalog() *dynamic.Catalog[*State, string, theme.Theme] {
	c := dynamic.NewCatalog[*State, string, theme.Theme]()
	c.Register(func() dynamic.Window[*State, string, theme.Theme] { return SettingsWindow{} })
	c.Register(func() dynamic.Window[*State, string, theme.Theme] { return LogWindow{} })
	c.Register(func() dynamic.Window[*State, string, theme.Theme] { return AboutWindow{} })
	return c
}

// NewUnionManager returns a union registry whose main window is Settings.
func NewUnionManager(handles window.HandleSource, logger *slog.Logger) *manager.Manager[*State, string, theme.Theme, AppWindow] {
	return union.NewManagerWithMain[*State, string, theme.Theme](handles, logger, WrapAppWindow(SettingsWindow{}))
}

// NewDynamicManager returns a dynamic registry whose main window is
// Settings.
func NewDynamicManager(handles window.HandleSource, logger *slog.Logger) *dynamic.Manager[*State, string, theme.Theme] {
	return dynamic.NewManagerWithMain[*State, string, theme.Theme](handles, logger, SettingsWindow{})
}

// registry is the kind-name view of either manager that Session drives.
type registry interface {
	spawn(kind string) (window.Handle, window.Request, error)
	close(h window.Handle) window.Request
	closeAll() window.Request
	closed(h window.Handle)
	isEmpty() bool
	contains(h window.Handle) bool
	handles() []window.Handle
	kind(h window.Handle) string
	count(kind string) int
	settings(h window.Handle) window.Settings
	view(app *State, h window.Handle) (title, content string, th theme.Theme)
}

type unionRegistry struct {
	m *manager.Manager[*State, string, theme.Theme, AppWindow]
}

func (r unionRegistry) spawn(kind string) (window.Handle, window.Request, error) {
	w, err := NewUnionWindow(kind)
	if err != nil {
		return 0, window.None(), err
	}
	h, req := r.m.Spawn(w)
	return h, req, nil
}

func (r unionRegistry) close(h window.Handle) window.Request { return r.m.Close(h) }
func (r unionRegistry) closeAll() window.Request             { return r.m.CloseAll() }
func (r unionRegistry) closed(h window.Handle)               { r.m.Closed(h) }
func (r unionRegistry) isEmpty() bool                        { return r.m.IsEmpty() }
func (r unionRegistry) contains(h window.Handle) bool        { return r.m.Contains(h) }
func (r unionRegistry) handles() []window.Handle             { return r.m.Handles() }

func (r unionRegistry) kind(h window.Handle) string {
	w, ok := r.m.Lookup(h)
	if !ok {
		panic(&manager.UnknownHandleError{Handle: h})
	}
	return kindName(w)
}

func (r unionRegistry) count(kind string) int {
	probe, err := NewUnionWindow(kind)
	if err != nil {
		return 0
	}
	return len(r.m.InstancesOf(probe))
}

func (r unionRegistry) settings(h window.Handle) window.Settings { return r.m.Settings(h) }

func (r unionRegistry) view(app *State, h window.Handle) (string, string, theme.Theme) {
	return r.m.Title(app, h), r.m.Content(app, h), r.m.Theme(app, h)
}

type dynamicRegistry struct {
	m       *dynamic.Manager[*State, string, theme.Theme]
	catalog *dynamic.Catalog[*State, string, theme.Theme]
}

func (r dynamicRegistry) spawn(kind string) (window.Handle, window.Request, error) {
	w, err := r.catalog.New(kind)
	if err != nil {
		return 0, window.None(), fmt.Errorf("%w: %q", config.ErrUnknownKind, kind)
	}
	h, req := r.m.Spawn(w)
	return h, req, nil
}

func (r dynamicRegistry) close(h window.Handle) window.Request { return r.m.Close(h) }
func (r dynamicRegistry) closeAll() window.Request             { return r.m.CloseAll() }
func (r dynamicRegistry) closed(h window.Handle)               { r.m.Closed(h) }
func (r dynamicRegistry) isEmpty() bool                        { return r.m.IsEmpty() }
func (r dynamicRegistry) contains(h window.Handle) bool        { return r.m.Contains(h) }
func (r dynamicRegistry) handles() []window.Handle             { return r.m.Handles() }

func (r dynamicRegistry) kind(h window.Handle) string {
	w, ok := r.m.Lookup(h)
	if !ok {
		panic(&manager.UnknownHandleError{Handle: h})
	}
	return w.Identity()
}

func (r dynamicRegistry) count(kind string) int {
	return len(r.m.InstancesFunc(dynamic.HasIdentity[*State, string, theme.Theme](kind)))
}

func (r dynamicRegistry) settings(h window.Handle) window.Settings { return r.m.Settings(h) }

func (r dynamicRegistry) view(app *State, h window.Handle) (string, string, theme.Theme) {
	return r.m.Title(app, h), r.m.Content(app, h), r.m.Theme(app, h)
}
