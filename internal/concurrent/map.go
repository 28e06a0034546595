// Package concurrent provides a generic, mutex-guarded map, adapted from a
// work-in-progress sharded-map sketch into a single fully implemented
// concurrent map. It backs the in-process storage backend's top-level
// experiment registry (the memory backend then adds its own per-experiment
// lock for the fields inside each entry).
package concurrent

import "sync"

// Map is a concurrency-safe map[K]V. The zero value is ready to use.
type Map[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

// New returns an empty Map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{data: make(map[K]V)}
}

// Get returns the value for k and whether it was present.
func (m *Map[K, V]) Get(k K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[k]
	return v, ok
}

// Set unconditionally stores v under k.
func (m *Map[K, V]) Set(k K, v V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[K]V)
	}
	m.data[k] = v
}

// SetNX stores v under k only if k is absent, returning the value now
// present (either the existing one or v) and whether it inserted.
func (m *Map[K, V]) SetNX(k K, v V) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[K]V)
	}
	if existing, ok := m.data[k]; ok {
		return existing, false
	}
	m.data[k] = v
	return v, true
}

// Delete removes k, if present.
func (m *Map[K, V]) Delete(k K) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, k)
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Keys returns a snapshot of the map's current keys.
func (m *Map[K, V]) Keys() []K {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]K, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}
