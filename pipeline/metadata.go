package pipeline

import (
	"maps"
	"sync"
)

// Metadata holds global values shared between plugins and merged into
// render contexts. It is safe for concurrent use.
type Metadata struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewMetadata returns Metadata seeded with a copy of values.
func NewMetadata(values map[string]any) *Metadata {
	m := &Metadata{values: make(map[string]any, len(values))}
	maps.Copy(m.values, values)
	return m
}

// Get returns the value stored under key.
func (m *Metadata) Get(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores v under key.
func (m *Metadata) Set(key string, v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = v
}

// Snapshot returns a shallow copy of all values.
func (m *Metadata) Snapshot() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.values)
}
