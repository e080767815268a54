//go:build windows

package ui

import (
	"image"
	"unsafe"

	"github.com/sirupsen/logrus"

	"github.com/NaveLIL/erez-mdi/chrome"
	"github.com/NaveLIL/erez-mdi/config"
	"github.com/NaveLIL/erez-mdi/models"
	"github.com/NaveLIL/erez-mdi/utils"
)

// Win32 system metric indices for each chrome.Metric.
var systemMetrics = map[chrome.Metric]uintptr{
	chrome.MetricSizeFrameX:         32, // SM_CXSIZEFRAME
	chrome.MetricSizeFrameY:         33, // SM_CYSIZEFRAME
	chrome.MetricPaddedBorder:       92, // SM_CXPADDEDBORDER
	chrome.MetricCaptionHeight:      4,  // SM_CYCAPTION
	chrome.MetricCaptionButtonWidth: 30, // SM_CXSIZE
	chrome.MetricSmallIconX:         49, // SM_CXSMICON
	chrome.MetricSmallIconY:         50, // SM_CYSMICON
	chrome.MetricMenuButtonWidth:    54, // SM_CXMENUSIZE
}

// winMsg is the raw message carried in chrome.Message.Raw.
type winMsg struct {
	hwnd   uintptr
	msg    uint32
	wParam uintptr
	lParam uintptr
}

// winHost is the Win32 implementation of chrome.MenuHost. All methods run
// on the thread that owns the workspace windows.
type winHost struct {
	cfg    *config.ChromeConfig
	log    *logrus.Entry
	frame  uintptr
	client uintptr
	fonts  map[int]fontPair

	// captureLost is set when WM_CAPTURECHANGED reaches one of our windows.
	captureLost bool
}

func newWinHost(cfg *config.ChromeConfig, log *logrus.Entry) *winHost {
	return &winHost{cfg: cfg, log: log, fonts: make(map[int]fontPair)}
}

func (h *winHost) WindowRect(w chrome.Handle) image.Rectangle {
	r := getWindowRect(uintptr(w))
	return image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom))
}

func (h *winHost) DPI(w chrome.Handle) int {
	if procGetDpiForWindow.Find() != nil {
		return 96
	}
	dpi, _, _ := procGetDpiForWindow.Call(uintptr(w))
	if dpi == 0 {
		return 96
	}
	return int(dpi)
}

func (h *winHost) SystemMetric(m chrome.Metric, dpi int) int {
	idx, ok := systemMetrics[m]
	if !ok {
		return 0
	}
	if procGetSystemMetricsForDpi.Find() == nil {
		v, _, _ := procGetSystemMetricsForDpi.Call(idx, uintptr(dpi))
		return int(int32(v))
	}
	v, _, _ := procGetSystemMetrics.Call(idx)
	return utils.ScaleForDPI(int(int32(v)), dpi)
}

func (h *winHost) IsMaximized(w chrome.Handle) bool {
	ret, _, _ := procIsZoomed.Call(uintptr(w))
	return ret != 0
}

func (h *winHost) IsForeground(w chrome.Handle) bool {
	return utils.IsForegroundChain(uintptr(w))
}

func (h *winHost) Title(w chrome.Handle) string {
	return utils.GetWindowText(uintptr(w))
}

func (h *winHost) Icon(w chrome.Handle) models.Icon {
	for _, kind := range []uintptr{ICON_SMALL, ICON_SMALL2} {
		if ic := sendMessage(uintptr(w), WM_GETICON, kind, 0); ic != 0 {
			return models.Icon(ic)
		}
	}
	idx := int32(GCLP_HICONSM)
	ic, _, _ := procGetClassLongPtrW.Call(uintptr(w), uintptr(idx))
	return models.Icon(ic)
}

// fontsFor returns the fonts for dpi, creating them on first use.
func (h *winHost) fontsFor(dpi int) fontPair {
	if f, ok := h.fonts[dpi]; ok {
		return f
	}
	f := fontPair{
		title: createFont(h.cfg.TitleFont, -utils.MulDiv(h.cfg.TitleSize, dpi, 72)),
		glyph: createFont(h.cfg.GlyphFont, -utils.MulDiv(10, dpi, 72)),
	}
	if f.glyph == 0 {
		h.log.WithField("font", h.cfg.GlyphFont).Warn("Glyph font unavailable, buttons will have no symbols")
	}
	h.fonts[dpi] = f
	return f
}

func createFont(face string, height int) uintptr {
	name := utf16Ptr(face)
	f, _, _ := procCreateFontW.Call(
		uintptr(height), 0, 0, 0, FW_NORMAL, 0, 0, 0,
		DEFAULT_CHARSET, 0, 0, CLEARTYPE_QUALITY, 0,
		uintptr(unsafe.Pointer(name)),
	)
	return f
}

// closeFonts deletes every cached font.
func (h *winHost) closeFonts() {
	for dpi, f := range h.fonts {
		if f.title != 0 {
			procDeleteObject.Call(f.title)
		}
		if f.glyph != 0 {
			procDeleteObject.Call(f.glyph)
		}
		delete(h.fonts, dpi)
	}
}

func (h *winHost) WindowSurface(w chrome.Handle) (chrome.Surface, error) {
	hdc, _, _ := procGetWindowDC.Call(uintptr(w))
	if hdc == 0 {
		return nil, chrome.ErrNoSurface
	}
	r := h.WindowRect(w)
	return &gdiSurface{
		hdc:    hdc,
		hwnd:   uintptr(w),
		bounds: image.Rectangle{Max: r.Size()},
		fonts:  h.fontsFor(h.DPI(w)),
	}, nil
}

func (h *winHost) Offscreen(w chrome.Handle, size image.Point) (chrome.Offscreen, error) {
	return newOffscreen(uintptr(w), size, h.fontsFor(h.DPI(w)))
}

func (h *winHost) SetCapture(w chrome.Handle) error {
	h.captureLost = false
	procSetCapture.Call(uintptr(w))
	if !h.HasCapture(w) {
		return chrome.ErrNoCapture
	}
	return nil
}

func (h *winHost) ReleaseCapture() {
	procReleaseCapture.Call()
}

func (h *winHost) HasCapture(w chrome.Handle) bool {
	cur, _, _ := procGetCapture.Call()
	return w != 0 && cur == uintptr(w)
}

// NextEvent pulls the next queued message. WM_QUIT is reposted so the outer
// loop still sees it.
func (h *winHost) NextEvent() (chrome.Event, bool) {
	if h.captureLost {
		h.captureLost = false
		return chrome.Event{Kind: chrome.EventCaptureLost}, true
	}
	var msg utils.MSG
	got, err := utils.GetMessage(&msg, 0, 0, 0)
	if err != nil {
		h.log.WithError(err).Warn("GetMessage failed during press")
		return chrome.Event{}, false
	}
	if !got {
		procPostQuitMessage.Call(msg.WParam)
		return chrome.Event{}, false
	}
	ev := chrome.Event{Raw: msg, Point: image.Pt(int(msg.Pt.X), int(msg.Pt.Y))}
	switch msg.Message {
	case WM_MOUSEMOVE, WM_NCMOUSEMOVE:
		ev.Kind = chrome.EventPointerMove
	case WM_LBUTTONUP:
		ev.Kind = chrome.EventPointerUp
	case WM_KEYDOWN, WM_SYSKEYDOWN:
		ev.Kind = chrome.EventKeyDown
		ev.Key = int(msg.WParam)
	}
	return ev, true
}

func (h *winHost) Dispatch(ev chrome.Event) {
	msg, ok := ev.Raw.(utils.MSG)
	if !ok {
		return
	}
	if h.client != 0 {
		if ret, _, _ := procTranslateMDISysAccel.Call(h.client, uintptr(unsafe.Pointer(&msg))); ret != 0 {
			return
		}
	}
	procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
	procDispatchMessageW.Call(uintptr(unsafe.Pointer(&msg)))
}

func (h *winHost) TrackLeave(w chrome.Handle) {
	tme := TRACKMOUSEEVENT{
		DwFlags:   TME_LEAVE | TME_NONCLIENT,
		HwndTrack: uintptr(w),
	}
	tme.CbSize = uint32(unsafe.Sizeof(tme))
	procTrackMouseEvent.Call(uintptr(unsafe.Pointer(&tme)))
}

func (h *winHost) PostCommand(w chrome.Handle, cmd models.Command) {
	postMessage(uintptr(w), WM_SYSCOMMAND, uintptr(cmd), 0)
}

// DefaultProc runs frame or child default processing. An activation with
// SuppressPaint passes lParam -1, which keeps the default handler from
// drawing the non-client area.
func (h *winHost) DefaultProc(w chrome.Handle, m chrome.Message) uintptr {
	raw, ok := m.Raw.(winMsg)
	if !ok {
		return 0
	}
	lParam := raw.lParam
	if m.Kind == chrome.MessageActivate && m.SuppressPaint {
		lParam = ^uintptr(0)
	}
	return h.defProc(raw.hwnd, raw.msg, raw.wParam, lParam)
}

func (h *winHost) defProc(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	if hwnd == h.frame && h.client == 0 {
		ret, _, _ := procDefWindowProcW.Call(hwnd, uintptr(msg), wParam, lParam)
		return ret
	}
	if hwnd == h.frame {
		ret, _, _ := procDefFrameProcW.Call(hwnd, h.client, uintptr(msg), wParam, lParam)
		return ret
	}
	ret, _, _ := procDefMDIChildProcW.Call(hwnd, uintptr(msg), wParam, lParam)
	return ret
}

// StoreText lets default processing store the title with WS_VISIBLE
// briefly cleared so it does not paint the caption itself.
func (h *winHost) StoreText(w chrome.Handle, text string) {
	hwnd := uintptr(w)
	idx := int32(GWL_STYLE)
	style, _, _ := procGetWindowLongPtrW.Call(hwnd, uintptr(idx))
	visible := style&WS_VISIBLE != 0
	if visible {
		procSetWindowLongPtrW.Call(hwnd, uintptr(idx), style&^WS_VISIBLE)
	}
	p := utf16Ptr(text)
	procDefMDIChildProcW.Call(hwnd, WM_SETTEXT, 0, uintptr(unsafe.Pointer(p)))
	if visible {
		procSetWindowLongPtrW.Call(hwnd, uintptr(idx), style)
	}
}

func (h *winHost) MenuBarRect(frame chrome.Handle) image.Rectangle {
	mbi := MENUBARINFO{}
	mbi.CbSize = uint32(unsafe.Sizeof(mbi))
	ok, _, _ := procGetMenuBarInfo.Call(uintptr(frame), OBJID_MENU, 0, uintptr(unsafe.Pointer(&mbi)))
	if ok == 0 {
		return image.Rectangle{}
	}
	return image.Rect(int(mbi.RcBar.Left), int(mbi.RcBar.Top), int(mbi.RcBar.Right), int(mbi.RcBar.Bottom))
}

func (h *winHost) MaximizedChild(frame chrome.Handle) chrome.Handle {
	if h.client == 0 || uintptr(frame) != h.frame {
		return 0
	}
	var maximized int32
	active := sendMessage(h.client, WM_MDIGETACTIVE, 0, uintptr(unsafe.Pointer(&maximized)))
	if active == 0 || maximized == 0 {
		return 0
	}
	return chrome.Handle(active)
}
