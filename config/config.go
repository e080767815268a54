// Package config provides configuration management for the EREZ MDI workspace.
package config

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/NaveLIL/erez-mdi/models"
	"github.com/NaveLIL/erez-mdi/utils"
)

//go:embed config.yaml
var defaultConfig embed.FS

// Config holds all application configuration.
type Config struct {
	Chrome      ChromeConfig      `mapstructure:"chrome"`
	Workspace   WorkspaceConfig   `mapstructure:"workspace"`
	UI          UIConfig          `mapstructure:"ui"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
}

// ChromeConfig holds settings for the custom document-window chrome.
type ChromeConfig struct {
	// Theme is the base palette ("light" or "dark").
	Theme string `mapstructure:"theme"`
	// Colors override individual palette entries. Empty values keep the base.
	Colors ColorsConfig `mapstructure:"colors"`
	// GlyphFont is the symbol font used for the button glyphs.
	GlyphFont string `mapstructure:"glyph_font"`
	// TitleFont is the caption text face.
	TitleFont string `mapstructure:"title_font"`
	// TitleSize is the caption text size in points.
	TitleSize int `mapstructure:"title_size"`
}

// ColorsConfig holds "#RRGGBB" or "#RRGGBBAA" colour overrides.
type ColorsConfig struct {
	CaptionBackground string `mapstructure:"caption_background"`
	ActiveBorder      string `mapstructure:"active_border"`
	InactiveBorder    string `mapstructure:"inactive_border"`
	ActiveTitle       string `mapstructure:"active_title"`
	InactiveTitle     string `mapstructure:"inactive_title"`
	ButtonHover       string `mapstructure:"button_hover"`
	ButtonPressed     string `mapstructure:"button_pressed"`
	Glyph             string `mapstructure:"glyph"`
}

// WorkspaceConfig holds settings for the MDI frame.
type WorkspaceConfig struct {
	// Title is the frame window title.
	Title string `mapstructure:"title"`
	// InitialDocuments is how many documents to open at startup.
	InitialDocuments int `mapstructure:"initial_documents"`
	// WindowWidth is the initial frame width.
	WindowWidth int `mapstructure:"window_width"`
	// WindowHeight is the initial frame height.
	WindowHeight int `mapstructure:"window_height"`
	// DocumentTitle is the title template for new documents; %d is the number.
	DocumentTitle string `mapstructure:"document_title"`
}

// UIConfig holds tray and hotkey settings.
type UIConfig struct {
	// TrayEnabled enables the system tray icon.
	TrayEnabled bool `mapstructure:"tray_enabled"`
	// HotkeysEnabled enables global workspace hotkeys.
	HotkeysEnabled bool `mapstructure:"hotkeys_enabled"`
	// NewDocumentHotkey opens a new document.
	NewDocumentHotkey string `mapstructure:"new_document_hotkey"`
	// NextDocumentHotkey activates the next document.
	NextDocumentHotkey string `mapstructure:"next_document_hotkey"`
	// CascadeHotkey cascades the documents.
	CascadeHotkey string `mapstructure:"cascade_hotkey"`
	// TileHotkey tiles the documents.
	TileHotkey string `mapstructure:"tile_hotkey"`
}

// LoggingConfig holds logging-related settings.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `mapstructure:"level"`
	// ToFile enables logging to a file.
	ToFile bool `mapstructure:"to_file"`
	// FilePath is the path to the log file (relative to config dir if not absolute).
	FilePath string `mapstructure:"file_path"`
	// GestureCSVPath is where "Export Gesture Log" writes.
	GestureCSVPath string `mapstructure:"gesture_csv_path"`
	// MaxFileSize is the maximum log file size before rotation.
	MaxFileSize string `mapstructure:"max_file_size"`
	// MaxAge is the maximum age of log files in days.
	MaxAge int `mapstructure:"max_age"`
	// MaxBackups is the maximum number of old log files to retain.
	MaxBackups int `mapstructure:"max_backups"`
	// Compress gzips rotated files.
	Compress bool `mapstructure:"compress"`
}

// DiagnosticsConfig holds gesture history settings.
type DiagnosticsConfig struct {
	// HistoryCapacity is how many press gestures to remember.
	HistoryCapacity int `mapstructure:"history_capacity"`
	// LogGestures logs every finished gesture at info level.
	LogGestures bool `mapstructure:"log_gestures"`
}

// Manager handles configuration loading and saving.
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	viper    *viper.Viper
	filePath string
}

var (
	instance *Manager
	once     sync.Once
)

// GetManager returns the singleton configuration manager instance.
func GetManager() *Manager {
	once.Do(func() {
		instance = NewManager()
	})
	return instance
}

// NewManager creates an independent manager. Most callers want GetManager.
func NewManager() *Manager {
	return &Manager{
		viper: viper.New(),
	}
}

// Load loads the configuration from the specified file path.
// If the file doesn't exist, it creates a default configuration.
func (m *Manager) Load(configPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.filePath = configPath

	m.viper.SetConfigType("yaml")
	m.setDefaults()

	if configPath != "" {
		m.viper.SetConfigFile(configPath)
		if err := m.viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("failed to read config: %w", err)
			}
			if err := m.createDefaultConfig(configPath); err != nil {
				return fmt.Errorf("failed to create default config: %w", err)
			}
			if err := m.viper.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}
		}
	} else {
		data, err := defaultConfig.ReadFile("config.yaml")
		if err != nil {
			return fmt.Errorf("failed to read embedded config: %w", err)
		}
		if err := m.viper.ReadConfig(bytes.NewReader(data)); err != nil {
			return fmt.Errorf("failed to parse embedded config: %w", err)
		}
	}

	m.config = &Config{}
	if err := m.viper.Unmarshal(m.config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// Save saves the current configuration to the file.
func (m *Manager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.filePath == "" {
		return fmt.Errorf("no config file path set")
	}

	return m.viper.WriteConfig()
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Update updates the configuration with a modifier function.
func (m *Manager) Update(modifier func(*Config)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return fmt.Errorf("config not loaded")
	}
	modifier(m.config)

	m.viper.Set("chrome", m.config.Chrome)
	m.viper.Set("workspace", m.config.Workspace)
	m.viper.Set("ui", m.config.UI)
	m.viper.Set("logging", m.config.Logging)
	m.viper.Set("diagnostics", m.config.Diagnostics)

	return nil
}

// GetConfigDir returns the configuration directory path.
func GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "EREZMDI"), nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// setDefaults sets default configuration values.
func (m *Manager) setDefaults() {
	// Chrome defaults
	m.viper.SetDefault("chrome.theme", "light")
	m.viper.SetDefault("chrome.glyph_font", "Segoe MDL2 Assets")
	m.viper.SetDefault("chrome.title_font", "Segoe UI")
	m.viper.SetDefault("chrome.title_size", 9)

	// Workspace defaults
	m.viper.SetDefault("workspace.title", "EREZ Workspace")
	m.viper.SetDefault("workspace.initial_documents", 2)
	m.viper.SetDefault("workspace.window_width", 1024)
	m.viper.SetDefault("workspace.window_height", 720)
	m.viper.SetDefault("workspace.document_title", "Document %d")

	// UI defaults
	m.viper.SetDefault("ui.tray_enabled", true)
	m.viper.SetDefault("ui.hotkeys_enabled", true)
	m.viper.SetDefault("ui.new_document_hotkey", "Ctrl+Shift+N")
	m.viper.SetDefault("ui.next_document_hotkey", "Ctrl+Shift+Tab")
	m.viper.SetDefault("ui.cascade_hotkey", "Ctrl+Shift+C")
	m.viper.SetDefault("ui.tile_hotkey", "Ctrl+Shift+T")

	// Logging defaults
	m.viper.SetDefault("logging.level", "info")
	m.viper.SetDefault("logging.to_file", true)
	m.viper.SetDefault("logging.file_path", "logs/erez-mdi.log")
	m.viper.SetDefault("logging.gesture_csv_path", "logs/gestures.csv")
	m.viper.SetDefault("logging.max_file_size", "10MB")
	m.viper.SetDefault("logging.max_age", 7)
	m.viper.SetDefault("logging.max_backups", 5)
	m.viper.SetDefault("logging.compress", true)

	// Diagnostics defaults
	m.viper.SetDefault("diagnostics.history_capacity", 256)
	m.viper.SetDefault("diagnostics.log_gestures", true)
}

// createDefaultConfig creates a default configuration file.
func (m *Manager) createDefaultConfig(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := defaultConfig.ReadFile("config.yaml")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Palette resolves the configured theme and colour overrides.
func (c ChromeConfig) Palette() (models.Theme, error) {
	var t models.Theme
	switch strings.ToLower(c.Theme) {
	case "", "light":
		t = models.LightTheme
	case "dark":
		t = models.DarkTheme
	default:
		return t, fmt.Errorf("invalid chrome theme: %s", c.Theme)
	}

	overrides := []struct {
		value string
		dst   *models.Color
	}{
		{c.Colors.CaptionBackground, &t.CaptionBackground},
		{c.Colors.ActiveBorder, &t.ActiveBorder},
		{c.Colors.InactiveBorder, &t.InactiveBorder},
		{c.Colors.ActiveTitle, &t.ActiveTitle},
		{c.Colors.InactiveTitle, &t.InactiveTitle},
		{c.Colors.ButtonHover, &t.ButtonHover},
		{c.Colors.ButtonPressed, &t.ButtonPressed},
		{c.Colors.Glyph, &t.Glyph},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		col, err := utils.ParseHexColor(o.value)
		if err != nil {
			return t, err
		}
		*o.dst = col
	}
	return t, nil
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() []error {
	var errs []error

	// Validate chrome config
	if _, err := c.Chrome.Palette(); err != nil {
		errs = append(errs, err)
	}
	if c.Chrome.TitleSize < 6 || c.Chrome.TitleSize > 36 {
		errs = append(errs, fmt.Errorf("title_size must be between 6 and 36"))
	}
	if c.Chrome.GlyphFont == "" {
		errs = append(errs, fmt.Errorf("glyph_font must not be empty"))
	}

	// Validate workspace config
	if c.Workspace.InitialDocuments < 0 || c.Workspace.InitialDocuments > 32 {
		errs = append(errs, fmt.Errorf("initial_documents must be between 0 and 32"))
	}
	if c.Workspace.WindowWidth < 320 || c.Workspace.WindowHeight < 240 {
		errs = append(errs, fmt.Errorf("workspace window must be at least 320x240"))
	}

	// Validate hotkeys
	if c.UI.HotkeysEnabled {
		for name, hk := range map[string]string{
			"new_document_hotkey":  c.UI.NewDocumentHotkey,
			"next_document_hotkey": c.UI.NextDocumentHotkey,
			"cascade_hotkey":       c.UI.CascadeHotkey,
			"tile_hotkey":          c.UI.TileHotkey,
		} {
			if hk == "" {
				continue
			}
			if _, _, ok := utils.ParseHotkey(hk); !ok {
				errs = append(errs, fmt.Errorf("invalid %s: %s", name, hk))
			}
		}
	}

	// Validate logging config
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, fmt.Errorf("invalid log level: %s", c.Logging.Level))
	}

	// Validate diagnostics config
	if c.Diagnostics.HistoryCapacity < 1 || c.Diagnostics.HistoryCapacity > 10000 {
		errs = append(errs, fmt.Errorf("history_capacity must be between 1 and 10000"))
	}

	return errs
}
