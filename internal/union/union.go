// Package union stores windows as a closed tagged union.
//
// The union type itself is generated per application by windowgen from the
// list of window kinds the application declares. The generated type holds
// every kind by value, dispatches with one switch over its kind tag, and
// compares structurally: two values are equal when they wrap the same kind
// with equal content. Because the set of kinds is fixed at build time this
// costs no indirection and no cloning, but adding a kind means regenerating
// the union. Use the dynamic package for an open set of kinds.
package union

import (
	"log/slog"

	"github.com/1broseidon/multiwin/internal/manager"
	"github.com/1broseidon/multiwin/internal/window"
)

// Variant is satisfied by generated union types.
type Variant[A, C, T, U any] interface {
	window.Window[A, C, T]

	// SameKind reports whether other wraps the same kind, ignoring content.
	SameKind(other U) bool
	// Equal reports whether other wraps the same kind with equal content.
	Equal(other U) bool
}

// Strategy is the manager.Strategy for generated unions.
type Strategy[A, C, T any, U Variant[A, C, T, U]] struct{}

// SameKind compares kind tags.
func (Strategy[A, C, T, U]) SameKind(a, b U) bool {
	return a.SameKind(b)
}

// Clone returns u; union values are copied on assignment.
func (Strategy[A, C, T, U]) Clone(u U) U {
	return u
}

// NewManager creates an empty registry of union windows.
func NewManager[A, C, T any, U Variant[A, C, T, U]](handles window.HandleSource, logger *slog.Logger) *manager.Manager[A, C, T, U] {
	return manager.New[A, C, T](config[A, C, T, U](handles, logger))
}

// NewManagerWithMain creates a registry that already tracks initial under
// window.MainHandle.
func NewManagerWithMain[A, C, T any, U Variant[A, C, T, U]](handles window.HandleSource, logger *slog.Logger, initial U) *manager.Manager[A, C, T, U] {
	return manager.NewWithMain[A, C, T](config[A, C, T, U](handles, logger), initial)
}

// OfKind returns a predicate matching union values of the same kind as
// probe, for use with Manager.AnyFunc and Manager.InstancesFunc.
func OfKind[A, C, T any, U Variant[A, C, T, U]](probe U) func(U) bool {
	return func(u U) bool { return u.SameKind(probe) }
}

func config[A, C, T any, U Variant[A, C, T, U]](handles window.HandleSource, logger *slog.Logger) manager.Config[U] {
	return manager.Config[U]{
		Strategy: Strategy[A, C, T, U]{},
		Handles:  handles,
		Logger:   logger,
	}
}
