// EREZ MDI - multi-document workspace with custom document-window chrome
//
// A Windows MDI frame whose document windows draw their own caption,
// borders and caption buttons, with system tray integration, global
// hotkeys and a gesture log of every caption-button press.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/NaveLIL/erez-mdi/autostart"
	"github.com/NaveLIL/erez-mdi/config"
	"github.com/NaveLIL/erez-mdi/hotkeys"
	"github.com/NaveLIL/erez-mdi/logger"
	"github.com/NaveLIL/erez-mdi/storage"
	"github.com/NaveLIL/erez-mdi/ui"
)

const (
	appName    = "EREZ MDI"
	appVersion = "1.0.0"
)

// Application holds all application components.
type Application struct {
	config    *config.Config
	configMgr *config.Manager
	configDir string
	log       *logger.Logger
	logBuffer *logger.LogBuffer
	history   *storage.RingBuffer
	workspace *ui.Workspace
	tray      *ui.TrayUI
	hotkeys   *hotkeys.Manager
	autostart *autostart.Manager

	ctx          context.Context
	cancel       context.CancelFunc
	shutdownOnce sync.Once
}

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	dark := flag.Bool("dark", false, "Start with the dark chrome palette")
	version := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", appName, appVersion)
		os.Exit(0)
	}

	app := &Application{}

	if err := app.init(*configPath, *debug, *dark); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	if err := app.run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// init initializes all application components.
func (app *Application) init(configPath string, debug, dark bool) error {
	var err error

	app.ctx, app.cancel = context.WithCancel(context.Background())

	// Initialize logger first
	app.log = logger.Get()

	app.configMgr = config.GetManager()
	if configPath == "" {
		configPath, err = config.GetDefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}
	if err := app.configMgr.Load(configPath); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.config = app.configMgr.Get()

	if debug {
		app.config.Logging.Level = "debug"
	}
	if dark {
		app.config.Chrome.Theme = "dark"
	}

	app.configDir = filepath.Dir(configPath)
	if err := app.log.Init(&app.config.Logging, app.configDir); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.log.SetGestureLogging(app.config.Diagnostics.LogGestures)
	app.logBuffer = app.log.AttachBuffer(500)

	app.log.Infof("Starting %s v%s", appName, appVersion)
	app.log.Infof("Config loaded from: %s", configPath)

	if errs := app.config.Validate(); len(errs) > 0 {
		for _, err := range errs {
			app.log.Warnf("Config validation warning: %v", err)
		}
	}

	app.history = storage.NewRingBuffer(app.config.Diagnostics.HistoryCapacity)
	app.workspace = ui.NewWorkspace(app.config, app.history)
	app.autostart = autostart.New()
	app.hotkeys = hotkeys.New()
	if app.config.UI.TrayEnabled {
		app.tray = ui.NewTrayUI(app.config, app.history)
	}

	return nil
}

// run starts all components and blocks until the workspace or the tray
// closes.
func (app *Application) run() error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	wsErr := make(chan error, 1)
	go func() {
		err := app.workspace.Run(app.ctx)
		if err != nil {
			app.log.Errorf("Workspace stopped: %v", err)
		}
		wsErr <- err
		app.shutdown()
	}()

	select {
	case <-app.workspace.Ready():
	case err := <-wsErr:
		app.shutdown()
		return err
	}

	if app.config.UI.HotkeysEnabled {
		app.startHotkeys()
	}

	go func() {
		<-sigCh
		app.log.Info("Received shutdown signal")
		app.shutdown()
	}()

	app.log.Info("Application started")

	if app.tray == nil {
		<-app.workspace.Done()
		app.shutdown()
		return nil
	}

	if enabled, err := app.autostart.IsEnabled(); err == nil {
		app.tray.SetAutostartChecked(enabled)
	}
	app.tray.SetCallbacks(ui.TrayCallbacks{
		OnAction:         app.workspace.Do,
		OnDarkTheme:      app.onDarkTheme,
		OnExportGestures: app.onExportGestures,
		OnAutostart:      app.onAutostart,
		OnQuit:           app.onQuit,
	})

	// Run the system tray (this blocks until tray is closed)
	app.tray.Run()
	return nil
}

func (app *Application) startHotkeys() {
	if err := app.hotkeys.Start(app.ctx); err != nil {
		app.log.Warnf("Failed to start hotkey manager: %v", err)
		return
	}
	app.hotkeys.RegisterBindings(hotkeys.Bindings(&app.config.UI), map[hotkeys.HotkeyID]hotkeys.HotkeyHandler{
		hotkeys.HotkeyNewDocument:  func() { app.workspace.Do(ui.ActionNewDocument) },
		hotkeys.HotkeyNextDocument: func() { app.workspace.Do(ui.ActionNextDocument) },
		hotkeys.HotkeyCascade:      func() { app.workspace.Do(ui.ActionCascade) },
		hotkeys.HotkeyTile:         func() { app.workspace.Do(ui.ActionTile) },
	})
}

// shutdown gracefully shuts down all components.
func (app *Application) shutdown() {
	app.shutdownOnce.Do(func() {
		app.log.Info("Shutting down...")

		// Cancel context; the workspace closes its frame in response
		app.cancel()

		done := make(chan struct{})
		go func() {
			if app.hotkeys != nil {
				app.hotkeys.Stop()
			}
			<-app.workspace.Done()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			app.log.Warn("Shutdown timeout, forcing exit")
		}

		s := app.history.Summarize()
		app.log.Infof("Gestures this session: %d (committed %d, cancelled %d, aborted %d, dropped %d)",
			s.Total, s.Committed, s.Cancelled, s.Aborted, s.Dropped)

		if app.configMgr != nil {
			if err := app.configMgr.Save(); err != nil {
				app.log.Warnf("Failed to save config: %v", err)
			}
		}

		// Quit tray (this will cause systray.Run to return)
		if app.tray != nil {
			app.tray.Quit()
		}

		if app.log != nil {
			app.log.Close()
		}
	})
}

// onDarkTheme is called when "Dark Chrome" is toggled.
func (app *Application) onDarkTheme(dark bool) {
	theme := "light"
	if dark {
		theme = "dark"
	}
	if err := app.configMgr.Update(func(c *config.Config) { c.Chrome.Theme = theme }); err != nil {
		app.log.Warnf("Failed to store theme: %v", err)
	}
	app.workspace.SetDarkTheme(dark)
}

// onExportGestures is called when "Export Gesture Log" is clicked.
func (app *Application) onExportGestures() {
	path := app.config.Logging.GestureCSVPath
	if path == "" {
		path = "gestures.csv"
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(app.configDir, path)
	}
	if ext := filepath.Ext(path); ext != "" {
		stamp := time.Now().Format("2006-01-02_15-04-05")
		path = path[:len(path)-len(ext)] + "-" + stamp + ext
	}

	if err := app.log.ExportGesturesCSV(path, app.history.GetAll()); err != nil {
		app.log.Errorf("Failed to export gestures: %v", err)
		return
	}

	app.log.Infof("Gestures exported to: %s", path)

	logPath := strings.TrimSuffix(path, filepath.Ext(path)) + "-log.txt"
	if err := app.log.ExportLogs(logPath, app.logBuffer.GetAll()); err != nil {
		app.log.Warnf("Failed to export recent log entries: %v", err)
	}
	if app.tray != nil {
		app.tray.ShowNotification("Export Complete", fmt.Sprintf("Gestures exported to %s", path))
	}
}

// onQuit is called when "Exit" is clicked.
func (app *Application) onQuit() {
	app.log.Debug("Quit clicked")
	app.shutdown()
}

// onAutostart is called when "Start with Windows" is clicked.
func (app *Application) onAutostart() bool {
	enabled, err := app.autostart.Toggle()
	if err != nil {
		app.log.Errorf("Failed to toggle autostart: %v", err)
		return false
	}

	if enabled {
		app.log.Info("Autostart enabled")
	} else {
		app.log.Info("Autostart disabled")
	}

	return enabled
}
