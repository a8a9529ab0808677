// Package sessiontest provides an in-memory session.Store for tests that run
// without an HTTP request.
package sessiontest

import (
	"sync"

	"vidtrack/internal/session"
)

var _ session.Store = (*Memory)(nil)

// Memory counts Renew and Save calls so tests can assert on persistence.
type Memory struct {
	mu      sync.Mutex
	values  map[string]string
	Renewed int
	Saved   int
}

func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (m *Memory) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = map[string]string{}
}

func (m *Memory) Renew() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Renewed++
}

func (m *Memory) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saved++
	return nil
}
