//go:build windows

package ui

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procAppendMenuW            = user32.NewProc("AppendMenuW")
	procCreateMenu             = user32.NewProc("CreateMenu")
	procCreatePopupMenu        = user32.NewProc("CreatePopupMenu")
	procCreateWindowExW        = user32.NewProc("CreateWindowExW")
	procDefFrameProcW          = user32.NewProc("DefFrameProcW")
	procDefMDIChildProcW       = user32.NewProc("DefMDIChildProcW")
	procDefWindowProcW         = user32.NewProc("DefWindowProcW")
	procDispatchMessageW       = user32.NewProc("DispatchMessageW")
	procDrawIconEx             = user32.NewProc("DrawIconEx")
	procDrawMenuBar            = user32.NewProc("DrawMenuBar")
	procFillRect               = user32.NewProc("FillRect")
	procFrameRect              = user32.NewProc("FrameRect")
	procGetCapture             = user32.NewProc("GetCapture")
	procGetClassLongPtrW       = user32.NewProc("GetClassLongPtrW")
	procGetDpiForWindow        = user32.NewProc("GetDpiForWindow")
	procGetMenuBarInfo         = user32.NewProc("GetMenuBarInfo")
	procGetMessageW            = user32.NewProc("GetMessageW")
	procGetSystemMetrics       = user32.NewProc("GetSystemMetrics")
	procGetSystemMetricsForDpi = user32.NewProc("GetSystemMetricsForDpi")
	procGetWindowDC            = user32.NewProc("GetWindowDC")
	procGetWindowLongPtrW      = user32.NewProc("GetWindowLongPtrW")
	procGetWindowRect          = user32.NewProc("GetWindowRect")
	procIsWindow               = user32.NewProc("IsWindow")
	procIsZoomed               = user32.NewProc("IsZoomed")
	procLoadCursorW            = user32.NewProc("LoadCursorW")
	procLoadIconW              = user32.NewProc("LoadIconW")
	procPostMessageW           = user32.NewProc("PostMessageW")
	procPostQuitMessage        = user32.NewProc("PostQuitMessage")
	procRegisterClassExW       = user32.NewProc("RegisterClassExW")
	procReleaseCapture         = user32.NewProc("ReleaseCapture")
	procReleaseDC              = user32.NewProc("ReleaseDC")
	procSendMessageW           = user32.NewProc("SendMessageW")
	procSetCapture             = user32.NewProc("SetCapture")
	procSetWindowLongPtrW      = user32.NewProc("SetWindowLongPtrW")
	procShowWindow             = user32.NewProc("ShowWindow")
	procTrackMouseEvent        = user32.NewProc("TrackMouseEvent")
	procTranslateMDISysAccel   = user32.NewProc("TranslateMDISysAccel")
	procTranslateMessage       = user32.NewProc("TranslateMessage")
	procUpdateWindow           = user32.NewProc("UpdateWindow")
	procBitBlt                 = gdi32.NewProc("BitBlt")
	procCreateCompatibleBitmap = gdi32.NewProc("CreateCompatibleBitmap")
	procCreateCompatibleDC     = gdi32.NewProc("CreateCompatibleDC")
	procCreateFontW            = gdi32.NewProc("CreateFontW")
	procCreateSolidBrush       = gdi32.NewProc("CreateSolidBrush")
	procDeleteDC               = gdi32.NewProc("DeleteDC")
	procDeleteObject           = gdi32.NewProc("DeleteObject")
	procExcludeClipRect        = gdi32.NewProc("ExcludeClipRect")
	procGetTextExtentPoint32W  = gdi32.NewProc("GetTextExtentPoint32W")
	procSelectClipRgn          = gdi32.NewProc("SelectClipRgn")
	procSelectObject           = gdi32.NewProc("SelectObject")
	procSetBkMode              = gdi32.NewProc("SetBkMode")
	procSetTextColor           = gdi32.NewProc("SetTextColor")
	procTextOutW               = gdi32.NewProc("TextOutW")
	procGetModuleHandleW       = kernel32.NewProc("GetModuleHandleW")
)

// Window styles
const (
	WS_CHILD            = 0x40000000
	WS_VISIBLE          = 0x10000000
	WS_CLIPCHILDREN     = 0x02000000
	WS_CLIPSIBLINGS     = 0x04000000
	WS_VSCROLL          = 0x00200000
	WS_HSCROLL          = 0x00100000
	WS_OVERLAPPEDWINDOW = 0x00CF0000

	WS_EX_CLIENTEDGE = 0x00000200
	WS_EX_MDICHILD   = 0x00000040

	CW_USEDEFAULT = 0x80000000

	CS_HREDRAW = 0x0002
	CS_VREDRAW = 0x0001

	GWL_STYLE    = -16
	GCLP_HICONSM = -34

	SW_SHOW = 5
)

// Messages
const (
	WM_CREATE          = 0x0001
	WM_DESTROY         = 0x0002
	WM_SETTEXT         = 0x000C
	WM_CLOSE           = 0x0010
	WM_QUIT            = 0x0012
	WM_GETICON         = 0x007F
	WM_NCHITTEST       = 0x0084
	WM_NCPAINT         = 0x0085
	WM_NCACTIVATE      = 0x0086
	WM_NCMOUSEMOVE     = 0x00A0
	WM_NCLBUTTONDOWN   = 0x00A1
	WM_KEYDOWN         = 0x0100
	WM_SYSKEYDOWN      = 0x0104
	WM_COMMAND         = 0x0111
	WM_SYSCOMMAND      = 0x0112
	WM_MOUSEMOVE       = 0x0200
	WM_LBUTTONUP       = 0x0202
	WM_MDICREATE       = 0x0220
	WM_MDIACTIVATE     = 0x0222
	WM_MDINEXT         = 0x0224
	WM_MDITILE         = 0x0226
	WM_MDICASCADE      = 0x0227
	WM_MDIGETACTIVE    = 0x0229
	WM_CAPTURECHANGED  = 0x0215
	WM_NCMOUSELEAVE    = 0x02A2
	WM_APP             = 0x8000
	WM_APP_THEME       = WM_APP + 1
	MDITILE_HORIZONTAL = 0x0001
)

// Misc
const (
	ICON_SMALL  = 0
	ICON_SMALL2 = 2

	TME_LEAVE     = 0x00000002
	TME_NONCLIENT = 0x00000010

	OBJID_MENU = 0xFFFFFFFD

	MF_STRING    = 0x0000
	MF_POPUP     = 0x0010
	MF_SEPARATOR = 0x0800

	DI_NORMAL = 0x0003
	SRCCOPY   = 0x00CC0020

	TRANSPARENT       = 1
	FW_NORMAL         = 400
	DEFAULT_CHARSET   = 1
	CLEARTYPE_QUALITY = 5

	COLOR_APPWORKSPACE = 12
	COLOR_WINDOW       = 5

	IDC_ARROW       = 32512
	IDI_APPLICATION = 32512

	mdiFirstChild = 0xFF00
)

// WNDCLASSEXW represents the WNDCLASSEXW structure.
type WNDCLASSEXW struct {
	CbSize        uint32
	Style         uint32
	LpfnWndProc   uintptr
	CbClsExtra    int32
	CbWndExtra    int32
	HInstance     uintptr
	HIcon         uintptr
	HCursor       uintptr
	HbrBackground uintptr
	LpszMenuName  *uint16
	LpszClassName *uint16
	HIconSm       uintptr
}

// RECT represents a rectangle.
type RECT struct {
	Left, Top, Right, Bottom int32
}

// SIZE is a text extent.
type SIZE struct {
	CX, CY int32
}

// TRACKMOUSEEVENT represents the TRACKMOUSEEVENT structure.
type TRACKMOUSEEVENT struct {
	CbSize      uint32
	DwFlags     uint32
	HwndTrack   uintptr
	DwHoverTime uint32
}

// MENUBARINFO represents the MENUBARINFO structure.
type MENUBARINFO struct {
	CbSize   uint32
	RcBar    RECT
	HMenu    uintptr
	HwndMenu uintptr
	Flags    int32
}

// CLIENTCREATESTRUCT is passed to the MDI client on creation.
type CLIENTCREATESTRUCT struct {
	HWindowMenu  uintptr
	IdFirstChild uint32
}

// MDICREATESTRUCTW describes a new MDI child.
type MDICREATESTRUCTW struct {
	SzClass *uint16
	SzTitle *uint16
	HOwner  uintptr
	X, Y    int32
	CX, CY  int32
	Style   uint32
	LParam  uintptr
}

// CREATESTRUCTW is what WM_CREATE points at.
type CREATESTRUCTW struct {
	LpCreateParams uintptr
	HInstance      uintptr
	HMenu          uintptr
	HwndParent     uintptr
	CY, CX         int32
	Y, X           int32
	Style          int32
	LpszName       *uint16
	LpszClass      *uint16
	DwExStyle      uint32
}

func loword(v uintptr) uint16 { return uint16(v & 0xFFFF) }

// pointFromLParam decodes the signed screen coordinates packed in lParam.
func pointFromLParam(lp uintptr) (int, int) {
	return int(int16(lp & 0xFFFF)), int(int16((lp >> 16) & 0xFFFF))
}

func utf16Ptr(s string) *uint16 {
	p, err := windows.UTF16PtrFromString(s)
	if err != nil {
		p, _ = windows.UTF16PtrFromString("")
	}
	return p
}

// utf16Text returns s without its terminator. Empty means nothing to draw.
func utf16Text(s string) []uint16 {
	u, err := windows.UTF16FromString(s)
	if err != nil || len(u) <= 1 {
		return nil
	}
	return u[:len(u)-1]
}

func getWindowRect(hwnd uintptr) RECT {
	var r RECT
	procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	return r
}

func sendMessage(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	ret, _, _ := procSendMessageW.Call(hwnd, uintptr(msg), wParam, lParam)
	return ret
}

func postMessage(hwnd uintptr, msg uint32, wParam, lParam uintptr) {
	procPostMessageW.Call(hwnd, uintptr(msg), wParam, lParam)
}
