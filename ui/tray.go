package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/getlantern/systray"

	"github.com/NaveLIL/erez-mdi/config"
	"github.com/NaveLIL/erez-mdi/logger"
	"github.com/NaveLIL/erez-mdi/models"
	"github.com/NaveLIL/erez-mdi/raster"
	"github.com/NaveLIL/erez-mdi/storage"
	"github.com/NaveLIL/erez-mdi/utils"
)

// TrayCallbacks are invoked from the tray's goroutine.
type TrayCallbacks struct {
	OnAction         func(a Action)
	OnDarkTheme      func(dark bool)
	OnExportGestures func()
	OnAutostart      func() bool // returns new state
	OnQuit           func()
}

// TrayUI manages the system tray icon and menu.
type TrayUI struct {
	config  *config.Config
	history *storage.RingBuffer
	log     *logger.Logger

	// Menu items
	mNewDocument  *systray.MenuItem
	mNextDocument *systray.MenuItem
	mCascade      *systray.MenuItem
	mTile         *systray.MenuItem
	mDarkTheme    *systray.MenuItem
	mExport       *systray.MenuItem
	mAutostart    *systray.MenuItem
	mQuit         *systray.MenuItem

	callbacks TrayCallbacks

	// State
	mu        sync.Mutex
	running   bool
	quitting  bool
	stopCh    chan struct{}
	icon      []byte
	autostart bool
}

// NewTrayUI creates a new TrayUI. history feeds the tooltip summary.
func NewTrayUI(cfg *config.Config, history *storage.RingBuffer) *TrayUI {
	return &TrayUI{
		config:  cfg,
		history: history,
		log:     logger.Get(),
		stopCh:  make(chan struct{}),
	}
}

// SetCallbacks sets the callback functions for menu actions.
func (t *TrayUI) SetCallbacks(cb TrayCallbacks) {
	t.callbacks = cb
}

// Run starts the system tray. This function blocks until the tray is closed.
func (t *TrayUI) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the systray is ready.
func (t *TrayUI) onReady() {
	t.mu.Lock()
	t.running = true
	t.mu.Unlock()

	if t.icon == nil {
		t.icon = EncodeICO(raster.DocumentIcon(16, models.LightTheme.ActiveBorder))
	}
	systray.SetIcon(t.icon)
	systray.SetTitle(t.config.Workspace.Title)
	systray.SetTooltip(t.config.Workspace.Title)

	t.mNewDocument = systray.AddMenuItem("New Document", "Open a new document window")
	t.mNextDocument = systray.AddMenuItem("Next Document", "Activate the next document")
	t.mCascade = systray.AddMenuItem("Cascade", "Cascade the document windows")
	t.mTile = systray.AddMenuItem("Tile", "Tile the document windows")
	systray.AddSeparator()
	t.mDarkTheme = systray.AddMenuItemCheckbox("Dark Chrome", "Use the dark caption palette", t.config.Chrome.Theme == "dark")
	t.mExport = systray.AddMenuItem("Export Gesture Log", "Write recent button presses to CSV")
	t.mAutostart = systray.AddMenuItemCheckbox("Start with Windows", "Start automatically when Windows starts", t.autostartState())
	systray.AddSeparator()
	t.mQuit = systray.AddMenuItem("Exit", "Close the workspace")

	go t.handleMenuEvents()
	go t.updateLoop()

	t.log.Info("System tray initialized")
}

// onExit is called when the systray is being closed.
func (t *TrayUI) onExit() {
	t.mu.Lock()
	t.running = false
	t.mu.Unlock()
	t.log.Info("System tray closed")
}

func (t *TrayUI) action(a Action) {
	if t.callbacks.OnAction != nil {
		t.callbacks.OnAction(a)
	}
}

// handleMenuEvents handles menu item clicks.
func (t *TrayUI) handleMenuEvents() {
	for {
		select {
		case <-t.stopCh:
			return

		case <-t.mNewDocument.ClickedCh:
			t.action(ActionNewDocument)

		case <-t.mNextDocument.ClickedCh:
			t.action(ActionNextDocument)

		case <-t.mCascade.ClickedCh:
			t.action(ActionCascade)

		case <-t.mTile.ClickedCh:
			t.action(ActionTile)

		case <-t.mDarkTheme.ClickedCh:
			dark := !t.mDarkTheme.Checked()
			if dark {
				t.mDarkTheme.Check()
			} else {
				t.mDarkTheme.Uncheck()
			}
			if t.callbacks.OnDarkTheme != nil {
				t.callbacks.OnDarkTheme(dark)
			}

		case <-t.mExport.ClickedCh:
			if t.callbacks.OnExportGestures != nil {
				t.callbacks.OnExportGestures()
			}

		case <-t.mAutostart.ClickedCh:
			if t.callbacks.OnAutostart != nil {
				if t.callbacks.OnAutostart() {
					t.mAutostart.Check()
				} else {
					t.mAutostart.Uncheck()
				}
			}

		case <-t.mQuit.ClickedCh:
			if t.callbacks.OnQuit != nil {
				t.callbacks.OnQuit()
			}
			return
		}
	}
}

// updateLoop periodically refreshes the tooltip from the gesture history.
func (t *TrayUI) updateLoop() {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopCh:
			return
		case <-ticker.C:
			if t.history != nil {
				systray.SetTooltip(FormatTooltip(t.config.Workspace.Title, t.history.Summarize()))
			}
		}
	}
}

// FormatTooltip renders the gesture summary shown on the tray icon.
// Windows limits tray tooltips to 127 characters, so long titles are cut.
func FormatTooltip(title string, s storage.Summary) string {
	title = utils.TruncateString(title, 48)
	if s.Total == 0 {
		return title + "\nNo button presses yet"
	}
	return fmt.Sprintf("%s\nPresses: %d\nCommitted: %d | Cancelled: %d\nAborted: %d | Dropped: %d",
		title, s.Total, s.Committed, s.Cancelled, s.Aborted, s.Dropped)
}

func (t *TrayUI) autostartState() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.autostart
}

// SetAutostartChecked reflects the current autostart state in the menu.
func (t *TrayUI) SetAutostartChecked(on bool) {
	t.mu.Lock()
	t.autostart = on
	item := t.mAutostart
	t.mu.Unlock()
	if item == nil {
		return
	}
	if on {
		item.Check()
	} else {
		item.Uncheck()
	}
}

// ShowNotification logs a notification; systray has no balloon support.
func (t *TrayUI) ShowNotification(title, message string) {
	t.log.Infof("Notification: %s - %s", title, message)
}

// Quit closes the system tray.
func (t *TrayUI) Quit() {
	t.mu.Lock()
	if t.quitting {
		t.mu.Unlock()
		return
	}
	t.quitting = true
	t.running = false
	close(t.stopCh)
	t.mu.Unlock()

	systray.Quit()
}

// IsRunning returns whether the tray is running.
func (t *TrayUI) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}
