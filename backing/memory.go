// ABOUTME: In-memory backing store used by tests and the memory backend
// ABOUTME: Supports injected failures and records write counts per key
package backing

import (
	"context"
	"sync"
)

// Memory is a map-backed Store. It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	data    map[string]string
	writes  map[string]int
	failSet error
	failGet error
}

func NewMemory() *Memory {
	return &Memory{
		data:   make(map[string]string),
		writes: make(map[string]int),
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failGet != nil {
		return "", m.failGet
	}
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet != nil {
		return m.failSet
	}
	m.data[key] = value
	m.writes[key]++
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet != nil {
		return m.failSet
	}
	delete(m.data, key)
	return nil
}

// Raw returns the stored value without going through Get failure injection.
func (m *Memory) Raw(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

// Put stores a value without counting it as a write.
func (m *Memory) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Writes reports how many successful Set calls were made for key.
func (m *Memory) Writes(key string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes[key]
}

// FailWrites makes every Set and Remove return err until cleared with nil.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failSet = err
}

// FailReads makes every Get return err until cleared with nil.
func (m *Memory) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failGet = err
}
