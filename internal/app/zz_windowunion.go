// Code generated by "windowgen -type AppWindow -app *State -content string -theme theme.Theme -kinds SettingsWindow,LogWindow,AboutWindow -imports github.com/1broseidon/multiwin/internal/theme"; DO NOT EDIT.

package app

import (
	"fmt"

	"github.com/1broseidon/multiwin/internal/theme"
	"github.com/1broseidon/multiwin/internal/union"
	"github.com/1broseidon/multiwin/internal/window"
)

// AppWindowKind identifies the window kind wrapped by a AppWindow.
type AppWindowKind uint8

const (
	AppWindowSettingsWindow AppWindowKind = iota + 1
	AppWindowLogWindow
	AppWindowAboutWindow
)

var _AppWindowKindNames = [...]string{
	"SettingsWindow",
	"LogWindow",
	"AboutWindow",
}

// String returns the name of the wrapped window kind.
func (k AppWindowKind) String() string {
	if k == 0 || int(k) > len(_AppWindowKindNames) {
		return fmt.Sprintf("AppWindowKind(%d)", uint8(k))
	}
	return _AppWindowKindNames[k-1]
}

// AppWindowKinds returns every declared kind in declaration order.
func AppWindowKinds() []AppWindowKind {
	return []AppWindowKind{
		AppWindowSettingsWindow,
		AppWindowLogWindow,
		AppWindowAboutWindow,
	}
}

// ParseAppWindowKind returns the kind with the given name.
func ParseAppWindowKind(name string) (AppWindowKind, error) {
	for i, n := range _AppWindowKindNames {
		if n == name {
			return AppWindowKind(i + 1), nil
		}
	}
	return 0, fmt.Errorf("%q is not a AppWindow kind", name)
}

// AppWindow holds exactly one of the declared window kinds by value.
// Build values with WrapAppWindow or NewAppWindow; the zero value is invalid.
type AppWindow struct {
	kind            AppWindowKind
	vSettingsWindow SettingsWindow
	vLogWindow      LogWindow
	vAboutWindow    AboutWindow
}

var (
	_ window.Window[*State, string, theme.Theme]            = AppWindow{}
	_ union.Variant[*State, string, theme.Theme, AppWindow] = AppWindow{}
)

// WrapAppWindow wraps a window kind in the union.
func WrapAppWindow[K SettingsWindow | LogWindow | AboutWindow](k K) AppWindow {
	switch v := any(k).(type) {
	case SettingsWindow:
		return AppWindow{kind: AppWindowSettingsWindow, vSettingsWindow: v}
	case LogWindow:
		return AppWindow{kind: AppWindowLogWindow, vLogWindow: v}
	case AboutWindow:
		return AppWindow{kind: AppWindowAboutWindow, vAboutWindow: v}
	}
	panic("unreachable")
}

// NewAppWindow returns the union wrapping the zero value of kind k.
func NewAppWindow(k AppWindowKind) (AppWindow, bool) {
	switch k {
	case AppWindowSettingsWindow:
		return AppWindow{kind: k}, true
	case AppWindowLogWindow:
		return AppWindow{kind: k}, true
	case AppWindowAboutWindow:
		return AppWindow{kind: k}, true
	}
	return AppWindow{}, false
}

// Kind returns the wrapped window kind.
func (u AppWindow) Kind() AppWindowKind {
	return u.kind
}

// SameKind reports whether other wraps the same kind, ignoring content.
func (u AppWindow) SameKind(other AppWindow) bool {
	return u.kind == other.kind
}

// Equal reports whether other wraps the same kind with equal content.
func (u AppWindow) Equal(other AppWindow) bool {
	return u == other
}

func (u AppWindow) String() string {
	return u.kind.String()
}

// AsSettingsWindow returns the wrapped SettingsWindow, if that is the kind held.
func (u AppWindow) AsSettingsWindow() (SettingsWindow, bool) {
	return u.vSettingsWindow, u.kind == AppWindowSettingsWindow
}

// AsLogWindow returns the wrapped LogWindow, if that is the kind held.
func (u AppWindow) AsLogWindow() (LogWindow, bool) {
	return u.vLogWindow, u.kind == AppWindowLogWindow
}

// AsAboutWindow returns the wrapped AboutWindow, if that is the kind held.
func (u AppWindow) AsAboutWindow() (AboutWindow, bool) {
	return u.vAboutWindow, u.kind == AppWindowAboutWindow
}

// Content dispatches to the wrapped kind.
func (u AppWindow) Content(app *State, h window.Handle) string {
	switch u.kind {
	case AppWindowSettingsWindow:
		return u.vSettingsWindow.Content(app, h)
	case AppWindowLogWindow:
		return u.vLogWindow.Content(app, h)
	case AppWindowAboutWindow:
		return u.vAboutWindow.Content(app, h)
	}
	panic(u.invalid())
}

// Title dispatches to the wrapped kind.
func (u AppWindow) Title(app *State, h window.Handle) string {
	switch u.kind {
	case AppWindowSettingsWindow:
		return u.vSettingsWindow.Title(app, h)
	case AppWindowLogWindow:
		return u.vLogWindow.Title(app, h)
	case AppWindowAboutWindow:
		return u.vAboutWindow.Title(app, h)
	}
	panic(u.invalid())
}

// Theme dispatches to the wrapped kind.
func (u AppWindow) Theme(app *State, h window.Handle) theme.Theme {
	switch u.kind {
	case AppWindowSettingsWindow:
		return u.vSettingsWindow.Theme(app, h)
	case AppWindowLogWindow:
		return u.vLogWindow.Theme(app, h)
	case AppWindowAboutWindow:
		return u.vAboutWindow.Theme(app, h)
	}
	panic(u.invalid())
}

// Settings dispatches to the wrapped kind.
func (u AppWindow) Settings() window.Settings {
	switch u.kind {
	case AppWindowSettingsWindow:
		return u.vSettingsWindow.Settings()
	case AppWindowLogWindow:
		return u.vLogWindow.Settings()
	case AppWindowAboutWindow:
		return u.vAboutWindow.Settings()
	}
	panic(u.invalid())
}

func (u AppWindow) invalid() string {
	return fmt.Sprintf("programmer error: invalid AppWindow kind %d", uint8(u.kind))
}
