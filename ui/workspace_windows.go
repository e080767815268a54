//go:build windows

package ui

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"
	"unsafe"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"

	"github.com/NaveLIL/erez-mdi/chrome"
	"github.com/NaveLIL/erez-mdi/config"
	"github.com/NaveLIL/erez-mdi/logger"
	"github.com/NaveLIL/erez-mdi/models"
	"github.com/NaveLIL/erez-mdi/utils"
)

const (
	frameClassName    = "EREZMDIFrame"
	documentClassName = "EREZMDIDocument"
)

var (
	registerOnce sync.Once
	registerErr  error

	// Global workspace instance for the window procedure callbacks
	globalWorkspace *Workspace
)

// Workspace is the MDI frame with its client and document windows. Run
// owns the windows; every other method may be called from any goroutine.
type Workspace struct {
	cfg     *config.Config
	history chrome.Recorder
	log     *logrus.Entry

	host *winHost
	ctl  *chrome.Controller
	bar  *chrome.MenuBar

	mu         sync.Mutex
	frame      uintptr
	windowMenu uintptr
	documents  int

	ready chan struct{}
	done  chan struct{}
}

// NewWorkspace creates a workspace. history receives every press gesture
// and may be nil.
func NewWorkspace(cfg *config.Config, history chrome.Recorder) *Workspace {
	return &Workspace{
		cfg:     cfg,
		history: history,
		log:     logger.Get().Component("workspace"),
		ready:   make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Ready is closed once the frame exists.
func (w *Workspace) Ready() <-chan struct{} {
	return w.ready
}

// Done is closed when Run returns.
func (w *Workspace) Done() <-chan struct{} {
	return w.done
}

// Run creates the windows and pumps messages until the frame is destroyed
// or ctx is cancelled. It locks the calling goroutine to its OS thread.
func (w *Workspace) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(w.done)

	theme, err := w.cfg.Chrome.Palette()
	if err != nil {
		w.log.WithError(err).Warn("Invalid chrome palette, using the light theme")
		theme = models.LightTheme
	}

	w.host = newWinHost(&w.cfg.Chrome, w.log)
	defer w.host.closeFonts()
	w.ctl = chrome.NewController(w.host, theme, w.history)
	w.bar = chrome.NewMenuBar(w.host, w.ctl.Renderer(), w.history)
	globalWorkspace = w

	if err := registerClasses(); err != nil {
		return err
	}
	if err := w.createFrame(); err != nil {
		return err
	}
	n := utils.ClampInt(w.cfg.Workspace.InitialDocuments, 0, maxInitialDocuments)
	for i := 0; i < n; i++ {
		w.newDocument()
	}
	close(w.ready)

	go func() {
		select {
		case <-ctx.Done():
			w.Do(ActionExit)
		case <-w.done:
		}
	}()

	w.log.Info("Workspace started")
	var msg utils.MSG
	for {
		got, err := utils.GetMessage(&msg, 0, 0, 0)
		if err != nil {
			return fmt.Errorf("message loop: %w", err)
		}
		if !got {
			w.log.Info("Workspace closed")
			return nil
		}
		if ret, _, _ := procTranslateMDISysAccel.Call(w.host.client, uintptr(unsafe.Pointer(&msg))); ret != 0 {
			continue
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&msg)))
	}
}

// Do queues action a for the workspace thread.
func (w *Workspace) Do(a Action) {
	w.mu.Lock()
	frame := w.frame
	w.mu.Unlock()
	if frame == 0 || a.commandID() == 0 {
		w.log.WithField("action", a).Debug("Workspace not ready, action ignored")
		return
	}
	postMessage(frame, WM_COMMAND, uintptr(a.commandID()), 0)
}

// SetDarkTheme switches the document chrome between the dark and light
// base palettes.
func (w *Workspace) SetDarkTheme(dark bool) {
	w.mu.Lock()
	frame := w.frame
	w.mu.Unlock()
	if frame == 0 {
		return
	}
	var flag uintptr
	if dark {
		flag = 1
	}
	postMessage(frame, WM_APP_THEME, flag, 0)
}

func registerClasses() error {
	registerOnce.Do(func() {
		hInstance, _, _ := procGetModuleHandleW.Call(0)
		cursor, _, _ := procLoadCursorW.Call(0, IDC_ARROW)
		icon, _, _ := procLoadIconW.Call(0, IDI_APPLICATION)

		classes := []struct {
			name       string
			proc       uintptr
			background uintptr
		}{
			{frameClassName, windows.NewCallback(frameWndProc), COLOR_APPWORKSPACE + 1},
			{documentClassName, windows.NewCallback(documentWndProc), COLOR_WINDOW + 1},
		}
		for _, c := range classes {
			wc := WNDCLASSEXW{
				Style:         CS_HREDRAW | CS_VREDRAW,
				LpfnWndProc:   c.proc,
				HInstance:     hInstance,
				HIcon:         icon,
				HCursor:       cursor,
				HbrBackground: c.background,
				LpszClassName: utf16Ptr(c.name),
				HIconSm:       icon,
			}
			wc.CbSize = uint32(unsafe.Sizeof(wc))
			if atom, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc))); atom == 0 {
				registerErr = fmt.Errorf("register %s: %w", c.name, err)
				return
			}
		}
	})
	return registerErr
}

func (w *Workspace) buildMenu() uintptr {
	bar, _, _ := procCreateMenu.Call()
	win, _, _ := procCreatePopupMenu.Call()
	items := []struct {
		id    uint16
		label string
	}{
		{cmdNewDocument, "&New Document"},
		{cmdNextDocument, "Ne&xt Document"},
		{cmdCascade, "&Cascade"},
		{cmdTile, "&Tile"},
		{0, ""},
		{cmdExit, "E&xit"},
	}
	for _, it := range items {
		if it.id == 0 {
			procAppendMenuW.Call(win, MF_SEPARATOR, 0, 0)
			continue
		}
		procAppendMenuW.Call(win, MF_STRING, uintptr(it.id), uintptr(unsafe.Pointer(utf16Ptr(it.label))))
	}
	procAppendMenuW.Call(bar, MF_POPUP, win, uintptr(unsafe.Pointer(utf16Ptr("&Window"))))
	w.windowMenu = win
	return bar
}

func (w *Workspace) createFrame() error {
	hInstance, _, _ := procGetModuleHandleW.Call(0)
	menu := w.buildMenu()
	hwnd, _, err := procCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(utf16Ptr(frameClassName))),
		uintptr(unsafe.Pointer(utf16Ptr(w.cfg.Workspace.Title))),
		WS_OVERLAPPEDWINDOW|WS_CLIPCHILDREN,
		CW_USEDEFAULT, CW_USEDEFAULT,
		uintptr(w.cfg.Workspace.WindowWidth), uintptr(w.cfg.Workspace.WindowHeight),
		0, menu, hInstance, 0,
	)
	if hwnd == 0 {
		return fmt.Errorf("create frame: %w", err)
	}
	procShowWindow.Call(hwnd, SW_SHOW)
	procUpdateWindow.Call(hwnd)
	return nil
}

// createClient runs from the frame's WM_CREATE.
func (w *Workspace) createClient(frame uintptr) {
	hInstance, _, _ := procGetModuleHandleW.Call(0)
	ccs := CLIENTCREATESTRUCT{HWindowMenu: w.windowMenu, IdFirstChild: mdiFirstChild}
	client, _, err := procCreateWindowExW.Call(
		WS_EX_CLIENTEDGE,
		uintptr(unsafe.Pointer(utf16Ptr("MDICLIENT"))),
		0,
		WS_CHILD|WS_CLIPCHILDREN|WS_VSCROLL|WS_HSCROLL|WS_VISIBLE,
		0, 0, 0, 0,
		frame, 0, hInstance, uintptr(unsafe.Pointer(&ccs)),
	)
	if client == 0 {
		w.log.WithError(err).Error("Failed to create MDI client")
		return
	}
	w.mu.Lock()
	w.frame = frame
	w.mu.Unlock()
	w.host.frame = frame
	w.host.client = client
}

func (w *Workspace) newDocument() {
	if w.host.client == 0 {
		return
	}
	w.documents++
	title := DocumentTitle(w.cfg.Workspace.DocumentTitle, w.documents)
	mcs := MDICREATESTRUCTW{
		SzClass: utf16Ptr(documentClassName),
		SzTitle: utf16Ptr(title),
		X:       int32(-0x80000000),
		Y:       int32(-0x80000000),
		CX:      int32(-0x80000000),
		CY:      int32(-0x80000000),
	}
	mcs.HOwner, _, _ = procGetModuleHandleW.Call(0)
	doc := sendMessage(w.host.client, WM_MDICREATE, 0, uintptr(unsafe.Pointer(&mcs)))
	if doc == 0 {
		w.log.WithField("title", title).Warn("Failed to create document")
		return
	}
	logger.Get().Workspace("Opened %s (%s)", title, utils.FormatHandle(models.Handle(doc)))
}

func (w *Workspace) run(a Action) {
	switch a {
	case ActionNewDocument:
		w.newDocument()
	case ActionNextDocument:
		sendMessage(w.host.client, WM_MDINEXT, 0, 0)
	case ActionCascade:
		sendMessage(w.host.client, WM_MDICASCADE, 0, 0)
	case ActionTile:
		sendMessage(w.host.client, WM_MDITILE, MDITILE_HORIZONTAL, 0)
	case ActionExit:
		postMessage(w.host.frame, WM_CLOSE, 0, 0)
	}
}

func (w *Workspace) setDark(dark bool) {
	base := "light"
	if dark {
		base = "dark"
	}
	cc := w.cfg.Chrome
	cc.Theme = base
	theme, err := cc.Palette()
	if err != nil {
		w.log.WithError(err).Warn("Theme switch ignored")
		return
	}
	w.ctl.SetTheme(theme)
	w.bar.Repaint(chrome.Handle(w.host.frame))
	logger.Get().Workspace("Chrome theme set to %s", base)
}

// recoverWndProc logs a panic in a window procedure and falls back to
// default processing.
func recoverWndProc(kind string, hwnd, msg, wParam, lParam uintptr, ret *uintptr) {
	if r := recover(); r != nil {
		logger.Get().Errorf("Panic in %s window procedure (msg 0x%04X): %v", kind, msg, r)
		if globalWorkspace != nil && globalWorkspace.host != nil {
			*ret = globalWorkspace.host.defProc(hwnd, uint32(msg), wParam, lParam)
			return
		}
		*ret, _, _ = procDefWindowProcW.Call(hwnd, msg, wParam, lParam)
	}
}

func frameWndProc(hwnd, msg, wParam, lParam uintptr) (ret uintptr) {
	w := globalWorkspace
	if w == nil {
		ret, _, _ = procDefWindowProcW.Call(hwnd, msg, wParam, lParam)
		return ret
	}
	defer recoverWndProc("frame", hwnd, msg, wParam, lParam, &ret)
	if w.host.frame == 0 {
		w.host.frame = hwnd
	}

	m := chrome.Message{Raw: winMsg{hwnd: hwnd, msg: uint32(msg), wParam: wParam, lParam: lParam}}
	switch msg {
	case WM_CREATE:
		w.createClient(hwnd)
	case WM_NCPAINT:
		m.Kind = chrome.MessagePaint
		if handled, res := w.bar.Handle(chrome.Handle(hwnd), m); handled {
			return res
		}
	case WM_NCACTIVATE:
		ret = w.host.defProc(hwnd, uint32(msg), wParam, lParam)
		w.bar.Repaint(chrome.Handle(hwnd))
		return ret
	case WM_NCLBUTTONDOWN:
		m.Kind = chrome.MessageButtonDown
		x, y := pointFromLParam(lParam)
		m.Point = image.Pt(x, y)
		if handled, res := w.bar.Handle(chrome.Handle(hwnd), m); handled {
			return res
		}
	case WM_CAPTURECHANGED:
		w.host.captureLost = true
	case WM_COMMAND:
		if a := actionFor(loword(wParam)); a != ActionNone {
			w.run(a)
			return 0
		}
	case WM_APP_THEME:
		w.setDark(wParam != 0)
		return 0
	case WM_DESTROY:
		w.mu.Lock()
		w.frame = 0
		w.mu.Unlock()
		procPostQuitMessage.Call(0)
		return 0
	}
	return w.host.defProc(hwnd, uint32(msg), wParam, lParam)
}

// documentMessage decodes a document window message for the controller.
func documentMessage(hwnd, msg, wParam, lParam uintptr) chrome.Message {
	m := chrome.Message{Raw: winMsg{hwnd: hwnd, msg: uint32(msg), wParam: wParam, lParam: lParam}}
	switch msg {
	case WM_NCPAINT:
		m.Kind = chrome.MessagePaint
	case WM_NCACTIVATE:
		m.Kind = chrome.MessageActivate
		m.Active = wParam != 0
	case WM_NCHITTEST, WM_NCLBUTTONDOWN, WM_NCMOUSEMOVE:
		x, y := pointFromLParam(lParam)
		m.Point = image.Pt(x, y)
		switch msg {
		case WM_NCHITTEST:
			m.Kind = chrome.MessageHitTest
		case WM_NCLBUTTONDOWN:
			m.Kind = chrome.MessageButtonDown
		default:
			m.Kind = chrome.MessageMouseMove
		}
	case WM_NCMOUSELEAVE:
		m.Kind = chrome.MessageMouseLeave
	case WM_SETTEXT:
		m.Kind = chrome.MessageSetText
		if lParam != 0 {
			m.Text = windows.UTF16PtrToString((*uint16)(unsafe.Pointer(lParam)))
		}
	case WM_MDIACTIVATE:
		m.Kind = chrome.MessageDocumentActivate
		m.Activated = chrome.Handle(lParam)
	case WM_DESTROY:
		m.Kind = chrome.MessageDestroy
	}
	return m
}

func documentWndProc(hwnd, msg, wParam, lParam uintptr) (ret uintptr) {
	w := globalWorkspace
	if w == nil || w.ctl == nil {
		ret, _, _ = procDefMDIChildProcW.Call(hwnd, msg, wParam, lParam)
		return ret
	}
	defer recoverWndProc("document", hwnd, msg, wParam, lParam, &ret)

	if msg == WM_CAPTURECHANGED {
		w.host.captureLost = true
	}
	m := documentMessage(hwnd, msg, wParam, lParam)
	if m.Kind != chrome.MessageOther {
		if handled, res := w.ctl.Handle(chrome.Handle(hwnd), m); handled {
			return res
		}
	}
	ret, _, _ = procDefMDIChildProcW.Call(hwnd, msg, wParam, lParam)
	if m.Kind == chrome.MessageDocumentActivate || msg == WM_SETTEXT {
		// The frame's menu bar cells follow the maximized document.
		w.bar.Repaint(chrome.Handle(w.host.frame))
	}
	return ret
}
