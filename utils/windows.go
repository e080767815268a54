//go:build windows

package utils

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow  = user32.NewProc("GetForegroundWindow")
	procGetAncestor          = user32.NewProc("GetAncestor")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procRegisterHotKey       = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey     = user32.NewProc("UnregisterHotKey")
	procGetMessageW          = user32.NewProc("GetMessageW")
	procPeekMessageW         = user32.NewProc("PeekMessageW")
)

const (
	GA_ROOT = 2

	PM_REMOVE = 0x0001

	// Window messages
	WM_HOTKEY = 0x0312
)

// MSG represents a Windows message.
type MSG struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// GetForegroundWindow returns the handle of the foreground window.
func GetForegroundWindow() uintptr {
	ret, _, _ := procGetForegroundWindow.Call()
	return ret
}

// GetRootWindow returns the top-level ancestor of hwnd.
func GetRootWindow(hwnd uintptr) uintptr {
	ret, _, _ := procGetAncestor.Call(hwnd, GA_ROOT)
	return ret
}

// IsForegroundChain reports whether hwnd's top-level ancestor is the
// foreground window.
func IsForegroundChain(hwnd uintptr) bool {
	fg := GetForegroundWindow()
	return fg != 0 && GetRootWindow(hwnd) == fg
}

// GetWindowText returns the full text of a window, however long.
func GetWindowText(hwnd uintptr) string {
	n, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if n == 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf)
}

// RegisterHotKey registers a thread hotkey; WM_HOTKEY arrives with id in
// wParam.
func RegisterHotKey(hwnd uintptr, id int, modifiers uint32, vk uint32) error {
	ret, _, err := procRegisterHotKey.Call(hwnd, uintptr(id), uintptr(modifiers), uintptr(vk))
	if ret == 0 {
		return fmt.Errorf("RegisterHotKey %d: %w", id, err)
	}
	return nil
}

// UnregisterHotKey releases a hotkey registered with the same id.
func UnregisterHotKey(hwnd uintptr, id int) error {
	ret, _, err := procUnregisterHotKey.Call(hwnd, uintptr(id))
	if ret == 0 {
		return fmt.Errorf("UnregisterHotKey %d: %w", id, err)
	}
	return nil
}

// GetMessage retrieves a message from the message queue.
func GetMessage(msg *MSG, hwnd uintptr, msgFilterMin, msgFilterMax uint32) (bool, error) {
	ret, _, err := procGetMessageW.Call(
		uintptr(unsafe.Pointer(msg)),
		hwnd,
		uintptr(msgFilterMin),
		uintptr(msgFilterMax),
	)
	if int32(ret) == -1 {
		return false, err
	}
	return ret != 0, nil
}

// PeekMessage checks the thread's queue without blocking.
func PeekMessage(msg *MSG, hwnd uintptr, msgFilterMin, msgFilterMax, removeMsg uint32) bool {
	ret, _, _ := procPeekMessageW.Call(
		uintptr(unsafe.Pointer(msg)),
		hwnd,
		uintptr(msgFilterMin),
		uintptr(msgFilterMax),
		uintptr(removeMsg),
	)
	return ret != 0
}
