//go:build !windows

package autostart

// Manager is a no-op outside Windows.
type Manager struct{}

// New creates a new autostart manager.
func New(args ...string) *Manager {
	return &Manager{}
}

// IsEnabled always reports false.
func (m *Manager) IsEnabled() (bool, error) {
	return false, nil
}

// Toggle returns ErrUnsupported.
func (m *Manager) Toggle() (bool, error) {
	return false, ErrUnsupported
}
