//go:build windows

package autostart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows/registry"

	"github.com/NaveLIL/erez-mdi/logger"
)

// Registry key for current user autostart
const registryPath = `Software\Microsoft\Windows\CurrentVersion\Run`

// Manager manages Windows autostart functionality.
type Manager struct {
	log  *logrus.Entry
	args []string
}

// New creates a new autostart manager. args are passed to the workspace
// when it starts with Windows.
func New(args ...string) *Manager {
	return &Manager{
		log:  logger.Get().Component("autostart"),
		args: args,
	}
}

func executable() (string, error) {
	exePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	exePath, err = filepath.Abs(exePath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return exePath, nil
}

// IsEnabled reports whether a startup entry for this executable exists.
func (m *Manager) IsEnabled() (bool, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, registryPath, registry.QUERY_VALUE)
	if err != nil {
		return false, fmt.Errorf("failed to open registry key: %w", err)
	}
	defer key.Close()

	value, _, err := key.GetStringValue(AppName)
	if err == registry.ErrNotExist {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read registry value: %w", err)
	}

	exe, err := executable()
	if err != nil {
		return false, err
	}
	return IsOurs(value, exe), nil
}

// Enable adds the registry entry.
func (m *Manager) Enable() error {
	exe, err := executable()
	if err != nil {
		return err
	}

	key, err := registry.OpenKey(registry.CURRENT_USER, registryPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open registry key: %w", err)
	}
	defer key.Close()

	value := CommandLine(exe, m.args...)
	if err := key.SetStringValue(AppName, value); err != nil {
		return fmt.Errorf("failed to set registry value: %w", err)
	}

	m.log.Infof("Autostart enabled: %s", value)
	return nil
}

// Disable removes the registry entry.
func (m *Manager) Disable() error {
	key, err := registry.OpenKey(registry.CURRENT_USER, registryPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open registry key: %w", err)
	}
	defer key.Close()

	if err := key.DeleteValue(AppName); err != nil && err != registry.ErrNotExist {
		return fmt.Errorf("failed to delete registry value: %w", err)
	}

	m.log.Info("Autostart disabled")
	return nil
}

// Toggle flips the setting and returns the new state.
func (m *Manager) Toggle() (bool, error) {
	enabled, err := m.IsEnabled()
	if err != nil {
		return false, err
	}

	if enabled {
		return false, m.Disable()
	}
	return true, m.Enable()
}
