// Package manager keeps track of the windows an application has open.
//
// A Manager maps host-issued handles to window instances and routes the
// per-frame content, title and theme queries to the right instance. It never
// talks to the host itself: Spawn and CloseAll return requests that the
// caller forwards to the host, and the caller reports host-confirmed
// closures back through Closed.
//
// How "a window of some kind" is stored is decided by the Strategy: the
// union package stores a generated closed sum type by value, the dynamic
// package stores open-ended behavior objects compared by identity.
//
// A Manager is not safe for concurrent use. It belongs to the single loop
// that runs the application's update cycle.
package manager

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/1broseidon/multiwin/internal/window"
)

// Strategy defines kind equality and copying for the stored window type.
type Strategy[W any] interface {
	// SameKind reports whether a and b are windows of the same kind,
	// regardless of their content.
	SameKind(a, b W) bool
	// Clone returns an independent copy of w.
	Clone(w W) W
}

// Config holds the collaborators of a Manager.
type Config[W any] struct {
	Strategy Strategy[W]
	Handles  window.HandleSource
	Logger   *slog.Logger
}

// Instance pairs a registered window with its handle.
type Instance[W any] struct {
	Handle window.Handle
	Window W
}

// UnknownHandleError is the panic value raised when a window is queried
// through a handle the manager does not hold.
type UnknownHandleError struct {
	Handle window.Handle
}

func (e *UnknownHandleError) Error() string {
	return fmt.Sprintf("programmer error: no window registered for handle %d (never spawned or already closed)", e.Handle)
}

// Manager owns the handle -> window mapping.
type Manager[A, C, T any, W window.Window[A, C, T]] struct {
	windows  map[window.Handle]W
	strategy Strategy[W]
	handles  window.HandleSource
	logger   *slog.Logger
}

// New creates an empty manager.
func New[A, C, T any, W window.Window[A, C, T]](cfg Config[W]) *Manager[A, C, T, W] {
	if cfg.Strategy == nil {
		panic("manager: Config.Strategy is required")
	}
	if cfg.Handles == nil {
		panic("manager: Config.Handles is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager[A, C, T, W]{
		windows:  make(map[window.Handle]W),
		strategy: cfg.Strategy,
		handles:  cfg.Handles,
		logger:   logger,
	}
}

// NewWithMain creates a manager that already tracks a copy of initial under
// window.MainHandle.
func NewWithMain[A, C, T any, W window.Window[A, C, T]](cfg Config[W], initial W) *Manager[A, C, T, W] {
	m := New[A, C, T](cfg)
	m.windows[window.MainHandle] = m.strategy.Clone(initial)
	return m
}

// Spawn registers a copy of w under a fresh handle and returns the handle
// together with the request that opens it. Spawn never fails; if the host
// cannot open the window it reports the handle as closed later.
func (m *Manager[A, C, T, W]) Spawn(w W) (window.Handle, window.Request) {
	h := m.handles.NextHandle()
	if _, exists := m.windows[h]; exists {
		panic(fmt.Sprintf("programmer error: handle source reissued live handle %d", h))
	}
	owned := m.strategy.Clone(w)
	m.windows[h] = owned
	m.logger.Debug("window spawned", "handle", h, "open", m.Len())
	return h, window.Open(h, owned.Settings())
}

// Close returns the request that closes h. The entry stays registered until
// Closed is called.
func (m *Manager[A, C, T, W]) Close(h window.Handle) window.Request {
	if _, ok := m.windows[h]; !ok {
		return window.None()
	}
	return window.Close(h)
}

// CloseAll returns one batched request closing every registered window.
// Entries stay registered until the host confirms each closure.
func (m *Manager[A, C, T, W]) CloseAll() window.Request {
	handles := m.Handles()
	reqs := make([]window.Request, 0, len(handles))
	for _, h := range handles {
		reqs = append(reqs, window.Close(h))
	}
	return window.Batch(reqs...)
}

// Closed records that the host closed h. Unknown handles are ignored, since
// hosts may report a closure more than once.
func (m *Manager[A, C, T, W]) Closed(h window.Handle) {
	if _, ok := m.windows[h]; !ok {
		m.logger.Debug("ignoring closure of unknown window", "handle", h)
		return
	}
	delete(m.windows, h)
	m.logger.Debug("window closed", "handle", h, "open", m.Len())
}

// Content returns the content of window h. It panics with
// *UnknownHandleError if h is not registered.
func (m *Manager[A, C, T, W]) Content(app A, h window.Handle) C {
	return m.get(h).Content(app, h)
}

// Title returns the title of window h. It panics with *UnknownHandleError
// if h is not registered.
func (m *Manager[A, C, T, W]) Title(app A, h window.Handle) string {
	return m.get(h).Title(app, h)
}

// Theme returns the theme of window h. It panics with *UnknownHandleError
// if h is not registered.
func (m *Manager[A, C, T, W]) Theme(app A, h window.Handle) T {
	return m.get(h).Theme(app, h)
}

// Settings returns the spawn settings of window h. It panics with
// *UnknownHandleError if h is not registered.
func (m *Manager[A, C, T, W]) Settings(h window.Handle) window.Settings {
	return m.get(h).Settings()
}

// AnyOf reports whether a window of the same kind as w is registered.
func (m *Manager[A, C, T, W]) AnyOf(w W) bool {
	return m.AnyFunc(func(other W) bool { return m.strategy.SameKind(other, w) })
}

// AnyFunc reports whether some registered window satisfies match.
func (m *Manager[A, C, T, W]) AnyFunc(match func(W) bool) bool {
	for _, w := range m.windows {
		if match(w) {
			return true
		}
	}
	return false
}

// InstancesOf returns copies of every registered window of the same kind
// as w, ordered by handle.
func (m *Manager[A, C, T, W]) InstancesOf(w W) []Instance[W] {
	return m.InstancesFunc(func(other W) bool { return m.strategy.SameKind(other, w) })
}

// InstancesFunc returns copies of every registered window satisfying match,
// ordered by handle.
func (m *Manager[A, C, T, W]) InstancesFunc(match func(W) bool) []Instance[W] {
	var out []Instance[W]
	for h, w := range m.windows {
		if match(w) {
			out = append(out, Instance[W]{Handle: h, Window: m.strategy.Clone(w)})
		}
	}
	slices.SortFunc(out, func(a, b Instance[W]) int {
		return cmp.Compare(a.Handle, b.Handle)
	})
	return out
}

// Lookup returns a copy of the window registered under h.
func (m *Manager[A, C, T, W]) Lookup(h window.Handle) (W, bool) {
	w, ok := m.windows[h]
	if !ok {
		var zero W
		return zero, false
	}
	return m.strategy.Clone(w), true
}

// Contains reports whether h is registered.
func (m *Manager[A, C, T, W]) Contains(h window.Handle) bool {
	_, ok := m.windows[h]
	return ok
}

// IsEmpty reports whether no windows are registered.
func (m *Manager[A, C, T, W]) IsEmpty() bool {
	return len(m.windows) == 0
}

// Len returns the number of registered windows.
func (m *Manager[A, C, T, W]) Len() int {
	return len(m.windows)
}

// Handles returns the registered handles in ascending order.
func (m *Manager[A, C, T, W]) Handles() []window.Handle {
	out := make([]window.Handle, 0, len(m.windows))
	for h := range m.windows {
		out = append(out, h)
	}
	slices.Sort(out)
	return out
}

func (m *Manager[A, C, T, W]) get(h window.Handle) W {
	w, ok := m.windows[h]
	if !ok {
		panic(&UnknownHandleError{Handle: h})
	}
	return w
}
