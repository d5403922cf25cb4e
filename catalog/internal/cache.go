package internal

import (
	"sync"
)

// DefinitionCache holds decoded catalog definitions in memory, in front of
// the persistent store. Keys are definition names within one kind.
type DefinitionCache[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

func NewDefinitionCache[T any]() *DefinitionCache[T] {
	return &DefinitionCache[T]{
		items: make(map[string]T),
	}
}

func (c *DefinitionCache[T]) Get(name string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[name]
	return item, ok
}

func (c *DefinitionCache[T]) Set(name string, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[name] = item
}

func (c *DefinitionCache[T]) Delete(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, name)
}

func (c *DefinitionCache[T]) Exists(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.items[name]
	return ok
}

// Range calls fn for every cached definition until fn returns false.
func (c *DefinitionCache[T]) Range(fn func(name string, item T) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for name, item := range c.items {
		if !fn(name, item) {
			return
		}
	}
}
