// Package hotkey binds global start/stop hotkeys through a system-wide
// keyboard hook.
package hotkey

import (
	"strings"
	"sync"

	hook "github.com/robotn/gohook"
)

// Manager registers a start and a stop hotkey (single keys like "F6") and
// dispatches to the registered callbacks. Callbacks fire on the hook's
// event goroutine.
type Manager struct {
	mu       sync.Mutex
	startKey string
	stopKey  string
	onStart  func()
	onStop   func()
	enabled  bool
}

// New creates a manager with the given key bindings.
func New(startKey, stopKey string) *Manager {
	return &Manager{startKey: startKey, stopKey: stopKey}
}

// OnStart registers the callback for the start hotkey. Register before
// Enable.
func (m *Manager) OnStart(fn func()) { m.onStart = fn }

// OnStop registers the callback for the stop hotkey. Register before
// Enable.
func (m *Manager) OnStop(fn func()) { m.onStop = fn }

// StartKey returns the current start binding.
func (m *Manager) StartKey() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startKey
}

// StopKey returns the current stop binding.
func (m *Manager) StopKey() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopKey
}

// Enable installs the global hook. Idempotent while enabled.
func (m *Manager) Enable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.enabled {
		return
	}

	if m.onStart != nil {
		hook.Register(hook.KeyDown, []string{strings.ToLower(m.startKey)}, func(hook.Event) {
			m.onStart()
		})
	}
	if m.onStop != nil {
		hook.Register(hook.KeyDown, []string{strings.ToLower(m.stopKey)}, func(hook.Event) {
			m.onStop()
		})
	}

	events := hook.Start()
	go func() { <-hook.Process(events) }()
	m.enabled = true
}

// Disable removes the global hook. Idempotent while disabled.
func (m *Manager) Disable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.enabled {
		return
	}
	hook.End()
	m.enabled = false
}

// Rebind swaps the key bindings, re-installing the hook when it was
// enabled.
func (m *Manager) Rebind(startKey, stopKey string) {
	m.mu.Lock()
	wasEnabled := m.enabled
	m.mu.Unlock()

	if wasEnabled {
		m.Disable()
	}

	m.mu.Lock()
	m.startKey = startKey
	m.stopKey = stopKey
	m.mu.Unlock()

	if wasEnabled {
		m.Enable()
	}
}
