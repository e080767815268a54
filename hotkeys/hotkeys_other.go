//go:build !windows

package hotkeys

import "context"

// Manager is a no-op outside Windows.
type Manager struct{}

// New creates a new hotkey manager.
func New() *Manager {
	return &Manager{}
}

// Start returns ErrUnsupported.
func (m *Manager) Start(ctx context.Context) error {
	return ErrUnsupported
}

// Stop does nothing.
func (m *Manager) Stop() {}

// RegisterBindings does nothing.
func (m *Manager) RegisterBindings(bindings []Binding, handlers map[HotkeyID]HotkeyHandler) {}
