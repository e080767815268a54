// Package chrome draws, hit-tests and tracks presses on the non-client
// area (caption, borders and the minimize, maximize/restore and close
// buttons) of MDI document windows, and on the three buttons the frame's
// menu bar shows while a document is maximized.
//
// The package never talks to a windowing system directly. A host supplies
// geometry, drawing surfaces, pointer capture and an event pump through
// the interfaces in this file; package ui provides the Win32 host and
// package chrometest a scripted one.
package chrome

import (
	"errors"
	"image"

	"github.com/NaveLIL/erez-mdi/models"
)

// Handle is an alias so callers need not import models for window handles.
type Handle = models.Handle

var (
	// ErrNoSurface is returned when a drawing surface cannot be obtained.
	ErrNoSurface = errors.New("chrome: no drawing surface")
	// ErrNoCapture is returned when pointer capture cannot be acquired.
	ErrNoCapture = errors.New("chrome: pointer capture refused")
)

// Geometry reports where a window is and how the platform sizes chrome.
type Geometry interface {
	// WindowRect returns the window's outer rectangle in screen pixels.
	WindowRect(w Handle) image.Rectangle
	// DPI returns the window's current DPI.
	DPI(w Handle) int
	// SystemMetric returns a platform metric already scaled for dpi.
	SystemMetric(m Metric, dpi int) int
}

// Windows answers per-window questions the controller needs while
// painting and committing.
type Windows interface {
	IsMaximized(w Handle) bool
	// IsForeground reports whether w's top-level ancestor is the
	// foreground window.
	IsForeground(w Handle) bool
	Title(w Handle) string
	Icon(w Handle) models.Icon
}

// Canvas hands out drawing surfaces. Callers release what they get.
type Canvas interface {
	// WindowSurface returns the visible surface of the whole window in
	// window-relative coordinates.
	WindowSurface(w Handle) (Surface, error)
	// Offscreen returns a buffer compatible with w's surface.
	Offscreen(w Handle, size image.Point) (Offscreen, error)
}

// Pump is the input side of the host. NextEvent blocks until an event is
// available and returns false when the application is quitting.
type Pump interface {
	SetCapture(w Handle) error
	ReleaseCapture()
	HasCapture(w Handle) bool
	NextEvent() (Event, bool)
	// Dispatch forwards an event the tracker does not consume to normal
	// processing.
	Dispatch(ev Event)
	// TrackLeave asks for a MessageMouseLeave once the pointer leaves w's
	// non-client area.
	TrackLeave(w Handle)
}

// Commands is how the controller reaches back into the platform.
type Commands interface {
	// PostCommand queues cmd for w; it must not run it synchronously.
	PostCommand(w Handle, cmd models.Command)
	// DefaultProc runs the platform's default processing for m.
	DefaultProc(w Handle, m Message) uintptr
	// StoreText sets w's title without letting the platform repaint.
	StoreText(w Handle, text string)
}

// Host is everything a Controller needs.
type Host interface {
	Geometry
	Windows
	Canvas
	Pump
	Commands
}

// MenuHost adds the frame-level queries used by MenuBar.
type MenuHost interface {
	Host
	// MenuBarRect returns the frame's menu bar band in screen pixels.
	MenuBarRect(frame Handle) image.Rectangle
	// MaximizedChild returns the maximized document window, or 0.
	MaximizedChild(frame Handle) Handle
}

// MessageKind classifies an incoming window message.
type MessageKind int

const (
	MessageOther MessageKind = iota
	MessagePaint
	MessageActivate
	MessageHitTest
	MessageButtonDown
	MessageMouseMove
	MessageMouseLeave
	MessageSetText
	MessageDocumentActivate
	MessageDestroy
)

var messageNames = [...]string{
	MessageOther:            "other",
	MessagePaint:            "paint",
	MessageActivate:         "activate",
	MessageHitTest:          "hittest",
	MessageButtonDown:       "buttondown",
	MessageMouseMove:        "mousemove",
	MessageMouseLeave:       "mouseleave",
	MessageSetText:          "settext",
	MessageDocumentActivate: "documentactivate",
	MessageDestroy:          "destroy",
}

func (k MessageKind) String() string {
	if k >= 0 && int(k) < len(messageNames) {
		return messageNames[k]
	}
	return "unknown"
}

// Message is a host message already decoded for the controller.
type Message struct {
	Kind MessageKind
	// Point is the pointer position in screen pixels.
	Point image.Point
	// Active is the new activation state for MessageActivate.
	Active bool
	// Activated is the newly activated document for
	// MessageDocumentActivate.
	Activated Handle
	// Text is the new title for MessageSetText.
	Text string
	// SuppressPaint asks DefaultProc not to draw the non-client area.
	SuppressPaint bool
	// Raw carries the host's own representation for DefaultProc.
	Raw any
}

// EventKind classifies an event seen by the press tracker.
type EventKind int

const (
	EventOther EventKind = iota
	EventPointerMove
	EventPointerUp
	EventKeyDown
	EventCaptureLost
)

// KeyEscape is the virtual key that cancels a press.
const KeyEscape = 0x1B

// Event is one input event pulled from the pump while tracking.
type Event struct {
	Kind EventKind
	// Point is in screen pixels for pointer events.
	Point image.Point
	// Key is the virtual key for EventKeyDown.
	Key int
	// Raw carries the host's own representation for Dispatch.
	Raw any
}
