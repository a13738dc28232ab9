package dynamic

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a fresh instance of one window kind.
type Factory[A, C, T any] func() Window[A, C, T]

// Catalog maps identity strings to factories so window kinds can be
// registered independently, for example by plugins at init time.
type Catalog[A, C, T any] struct {
	mu        sync.RWMutex
	factories map[string]Factory[A, C, T]
}

// NewCatalog creates an empty catalog.
func NewCatalog[A, C, T any]() *Catalog[A, C, T] {
	return &Catalog[A, C, T]{factories: make(map[string]Factory[A, C, T])}
}

// Register associates a factory with the identity of the windows it builds.
// It panics on a duplicate identity or when the factory's product reports a
// different identity.
func (c *Catalog[A, C, T]) Register(factory Factory[A, C, T]) {
	sample := factory()
	if sample == nil {
		panic("dynamic: factory returned nil window")
	}
	id := sample.Identity()
	if id == "" {
		panic("dynamic: window kind has empty identity")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.factories[id]; exists {
		panic("dynamic: duplicate registration for " + id)
	}
	c.factories[id] = factory
}

// New builds a fresh window of the kind registered under id.
func (c *Catalog[A, C, T]) New(id string) (Window[A, C, T], error) {
	c.mu.RLock()
	factory, ok := c.factories[id]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown window kind %q", id)
	}
	return factory(), nil
}

// Identities returns the registered identities, sorted.
func (c *Catalog[A, C, T]) Identities() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.factories))
	for id := range c.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
