package cache

import (
	"context"
	"sync"
)

// Memory is an in-process Store backed by a mutex-guarded map.
// Entries live until the process exits; there is no TTL and no eviction.
type Memory struct {
	table   string
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemory creates an empty in-memory store. The table name is only
// used to label metrics.
func NewMemory(table string) *Memory {
	return &Memory{
		table:   table,
		entries: make(map[string]string),
	}
}

// Get returns the value for key and whether it was present.
func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	value, ok := m.entries[key]
	m.mu.RUnlock()

	if ok {
		Hits.WithLabelValues(m.table, "memory").Inc()
	} else {
		Misses.WithLabelValues(m.table, "memory").Inc()
	}
	return value, ok
}

// Put stores value under key, overwriting any previous value.
func (m *Memory) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.entries[key] = value
	size := len(m.entries)
	m.mu.Unlock()

	Entries.WithLabelValues(m.table, "memory").Set(float64(size))
	return nil
}

// Len returns the number of cached entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

var _ Store = (*Memory)(nil)
