package connection

import "sync"

// Manager tracks the active executor and falls back to a default one.
type Manager struct {
	mu       sync.Mutex
	fallback Executor
	current  Executor
}

// NewManager creates a manager whose default executor is fallback.
func NewManager(fallback Executor) *Manager {
	return &Manager{fallback: fallback}
}

// Use switches to exec, closing the previously active non-default executor.
func (m *Manager) Use(exec Executor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	if m.current != nil {
		err = m.current.Close()
	}
	m.current = exec
	return err
}

// Reset returns to the default executor.
func (m *Manager) Reset() error {
	return m.Use(nil)
}

// Current returns the active executor.
func (m *Manager) Current() Executor {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil {
		return m.current
	}
	return m.fallback
}

// IsConnected reports whether a non-default executor is active.
func (m *Manager) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil
}

// Close closes every executor the manager holds.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	if m.current != nil {
		err = m.current.Close()
		m.current = nil
	}
	if m.fallback != nil {
		if ferr := m.fallback.Close(); err == nil {
			err = ferr
		}
	}
	return err
}
