// Package models defines the value types shared by the chrome controller,
// its hosts and its diagnostics.
package models

import (
	"fmt"
	"time"
)

// Handle identifies a window. On Windows it is the HWND.
type Handle uintptr

// Icon identifies a small window icon. Zero means no icon.
type Icon uintptr

// ButtonID names one of the three caption buttons.
type ButtonID int

const (
	ButtonNone ButtonID = iota
	ButtonMinimize
	ButtonMaxRestore
	ButtonClose
)

// Buttons lists the caption buttons in layout order, rightmost first.
var Buttons = [3]ButtonID{ButtonClose, ButtonMaxRestore, ButtonMinimize}

// Index returns the button's slot counted from the right edge, or -1 for
// ButtonNone.
func (b ButtonID) Index() int {
	switch b {
	case ButtonClose:
		return 0
	case ButtonMaxRestore:
		return 1
	case ButtonMinimize:
		return 2
	}
	return -1
}

func (b ButtonID) String() string {
	switch b {
	case ButtonNone:
		return "none"
	case ButtonMinimize:
		return "minimize"
	case ButtonMaxRestore:
		return "maxrestore"
	case ButtonClose:
		return "close"
	}
	return fmt.Sprintf("ButtonID(%d)", int(b))
}

// ButtonVisual is the resting, hovered or pressed look of a button.
type ButtonVisual int

const (
	VisualNormal ButtonVisual = iota
	VisualHover
	VisualPressed
)

func (v ButtonVisual) String() string {
	switch v {
	case VisualNormal:
		return "normal"
	case VisualHover:
		return "hover"
	case VisualPressed:
		return "pressed"
	}
	return fmt.Sprintf("ButtonVisual(%d)", int(v))
}

// VisualFor derives a button's visual from the window's hovered button and
// the button held by an in-progress press, if any. Pressed wins.
func VisualFor(b, hover, pressed ButtonID) ButtonVisual {
	switch {
	case pressed != ButtonNone && b == pressed:
		return VisualPressed
	case hover != ButtonNone && b == hover:
		return VisualHover
	}
	return VisualNormal
}

// HitRegion is the answer to a hit-test query. The values are the Win32
// HT* codes so hosts can return them unchanged.
type HitRegion int

const (
	HitNowhere     HitRegion = 0
	HitClient      HitRegion = 1
	HitCaption     HitRegion = 2
	HitSysMenu     HitRegion = 3
	HitMinButton   HitRegion = 8
	HitMaxButton   HitRegion = 9
	HitLeft        HitRegion = 10
	HitRight       HitRegion = 11
	HitTop         HitRegion = 12
	HitTopLeft     HitRegion = 13
	HitTopRight    HitRegion = 14
	HitBottom      HitRegion = 15
	HitBottomLeft  HitRegion = 16
	HitBottomRight HitRegion = 17
	HitClose       HitRegion = 20
)

var hitNames = map[HitRegion]string{
	HitNowhere:     "nowhere",
	HitClient:      "client",
	HitCaption:     "caption",
	HitSysMenu:     "sysmenu",
	HitMinButton:   "minbutton",
	HitMaxButton:   "maxbutton",
	HitLeft:        "left",
	HitRight:       "right",
	HitTop:         "top",
	HitTopLeft:     "topleft",
	HitTopRight:    "topright",
	HitBottom:      "bottom",
	HitBottomLeft:  "bottomleft",
	HitBottomRight: "bottomright",
	HitClose:       "close",
}

func (h HitRegion) String() string {
	if s, ok := hitNames[h]; ok {
		return s
	}
	return fmt.Sprintf("HitRegion(%d)", int(h))
}

// Button returns the caption button a region refers to, or ButtonNone.
func (h HitRegion) Button() ButtonID {
	switch h {
	case HitMinButton:
		return ButtonMinimize
	case HitMaxButton:
		return ButtonMaxRestore
	case HitClose:
		return ButtonClose
	}
	return ButtonNone
}

// RegionFor is the inverse of HitRegion.Button.
func RegionFor(b ButtonID) HitRegion {
	switch b {
	case ButtonMinimize:
		return HitMinButton
	case ButtonMaxRestore:
		return HitMaxButton
	case ButtonClose:
		return HitClose
	}
	return HitNowhere
}

// Command is a window system command. Values are the Win32 SC_* codes.
type Command uint32

const (
	CommandNone     Command = 0
	CommandMinimize Command = 0xF020
	CommandMaximize Command = 0xF030
	CommandClose    Command = 0xF060
	CommandRestore  Command = 0xF120
)

func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandMinimize:
		return "minimize"
	case CommandMaximize:
		return "maximize"
	case CommandClose:
		return "close"
	case CommandRestore:
		return "restore"
	}
	return fmt.Sprintf("Command(%#x)", uint32(c))
}

// CommandFor returns the command a button commits. The max/restore button
// restores a maximized window and maximizes any other.
func CommandFor(b ButtonID, maximized bool) Command {
	switch b {
	case ButtonMinimize:
		return CommandMinimize
	case ButtonMaxRestore:
		if maximized {
			return CommandRestore
		}
		return CommandMaximize
	case ButtonClose:
		return CommandClose
	}
	return CommandNone
}

// Outcome classifies how a press gesture ended.
type Outcome string

const (
	// OutcomeCommitted means a command was posted.
	OutcomeCommitted Outcome = "committed"
	// OutcomeCancelled covers release outside the button, escape and
	// capture loss.
	OutcomeCancelled Outcome = "cancelled"
	// OutcomeAborted means capture or the pressed redraw failed.
	OutcomeAborted Outcome = "aborted"
	// OutcomeDropped means the command target no longer existed on release.
	OutcomeDropped Outcome = "dropped"
)

// Source names which chrome produced a gesture.
type Source string

const (
	SourceChild   Source = "child"
	SourceMenuBar Source = "menubar"
)

// GestureRecord describes one finished press gesture.
type GestureRecord struct {
	// Timestamp is when the gesture ended.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	// Window is the window whose chrome was pressed.
	Window Handle `json:"window" yaml:"window"`
	// Target is the window the command was posted to, if any.
	Target Handle `json:"target" yaml:"target"`
	// Source is the chrome that handled the press.
	Source Source `json:"source" yaml:"source"`
	// Button is the pressed button.
	Button ButtonID `json:"button" yaml:"button"`
	// Outcome is how the gesture ended.
	Outcome Outcome `json:"outcome" yaml:"outcome"`
	// Command is the posted command, CommandNone unless committed.
	Command Command `json:"command" yaml:"command"`
	// Reason explains a cancel, abort or drop.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Clone creates a copy of the record.
func (g *GestureRecord) Clone() *GestureRecord {
	c := *g
	return &c
}
