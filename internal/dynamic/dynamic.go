// Package dynamic stores windows as open-ended behavior objects.
//
// Any type implementing Window can be registered, so new window kinds can be
// added without touching the registry. The price is that kinds are no longer
// checked exhaustively by the compiler, and every kind must supply a stable
// identity string and a Duplicate method.
//
// Equality is identity equality: two windows are equal when their Identity
// strings match, whatever their content. A Log window filtered on "error" and
// one filtered on "warn" are the same kind of window. Use the union package
// when deep equality or exhaustive dispatch is needed.
package dynamic

import (
	"log/slog"

	"github.com/1broseidon/multiwin/internal/manager"
	"github.com/1broseidon/multiwin/internal/window"
)

// Window is a window kind that can live in a dynamic registry.
type Window[A, C, T any] interface {
	window.Window[A, C, T]

	// Identity returns a string that is the same for every instance of a
	// kind and different across kinds.
	Identity() string
	// Duplicate returns an independent copy with equivalent behavior.
	Duplicate() Window[A, C, T]
}

// Kind can be embedded in a window kind to provide its Identity method.
type Kind string

// Identity returns the kind as an identity string.
func (k Kind) Identity() string {
	return string(k)
}

// Equal reports whether a and b are windows of the same kind. Content is
// ignored. Two nil windows are equal.
func Equal[A, C, T any](a, b Window[A, C, T]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Identity() == b.Identity()
}

// HasIdentity returns a predicate matching windows whose identity is id, for
// use with Manager.AnyFunc and Manager.InstancesFunc.
func HasIdentity[A, C, T any](id string) func(Window[A, C, T]) bool {
	return func(w Window[A, C, T]) bool {
		return w != nil && w.Identity() == id
	}
}

// Strategy is the manager.Strategy for dynamic windows.
type Strategy[A, C, T any] struct{}

var _ manager.Strategy[Window[int, int, int]] = Strategy[int, int, int]{}

// SameKind compares identities.
func (Strategy[A, C, T]) SameKind(a, b Window[A, C, T]) bool {
	return Equal(a, b)
}

// Clone duplicates w.
func (Strategy[A, C, T]) Clone(w Window[A, C, T]) Window[A, C, T] {
	if w == nil {
		return nil
	}
	return w.Duplicate()
}

// Manager is a registry of dynamic windows.
type Manager[A, C, T any] = manager.Manager[A, C, T, Window[A, C, T]]

// NewManager creates an empty registry of dynamic windows.
func NewManager[A, C, T any](handles window.HandleSource, logger *slog.Logger) *Manager[A, C, T] {
	return manager.New[A, C, T](config[A, C, T](handles, logger))
}

// NewManagerWithMain creates a registry that already tracks initial under
// window.MainHandle.
func NewManagerWithMain[A, C, T any](handles window.HandleSource, logger *slog.Logger, initial Window[A, C, T]) *Manager[A, C, T] {
	return manager.NewWithMain[A, C, T](config[A, C, T](handles, logger), initial)
}

func config[A, C, T any](handles window.HandleSource, logger *slog.Logger) manager.Config[Window[A, C, T]] {
	return manager.Config[Window[A, C, T]]{
		Strategy: Strategy[A, C, T]{},
		Handles:  handles,
		Logger:   logger,
	}
}
