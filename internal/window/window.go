// Package window defines the contract every window kind satisfies, the
// opaque handles hosts issue for live windows, and the inert open/close
// requests a registry hands back to its host for execution.
package window

// Handle is an opaque identifier for a live window. Handles are issued by
// the host windowing subsystem; registries only store copies.
type Handle uint32

// MainHandle identifies the application's initial window, which the host
// creates before any registry exists.
const MainHandle Handle = 0

// HandleSource issues handles for windows that are about to be opened.
type HandleSource interface {
	NextHandle() Handle
}

// Window is the behavior every window kind provides. App is the shared
// application state, Content the renderable output and Theme the host's
// theme value.
//
// Content, Title and Theme must be pure functions of the receiver and app:
// they are called on every redraw and must not mutate either. Settings is
// consulted once, when the window is spawned.
type Window[App, Content, Theme any] interface {
	Content(app App, h Handle) Content
	Title(app App, h Handle) string
	Theme(app App, h Handle) Theme
	Settings() Settings
}
