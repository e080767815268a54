// Package hotkeys provides global workspace hotkeys.
package hotkeys

import (
	"errors"

	"github.com/NaveLIL/erez-mdi/config"
	"github.com/NaveLIL/erez-mdi/utils"
)

// ErrUnsupported is returned by Start where global hotkeys are unavailable.
var ErrUnsupported = errors.New("hotkeys: not supported on this platform")

// HotkeyID represents a unique hotkey identifier.
type HotkeyID int

const (
	HotkeyNewDocument HotkeyID = iota + 1
	HotkeyNextDocument
	HotkeyCascade
	HotkeyTile
)

func (id HotkeyID) String() string {
	switch id {
	case HotkeyNewDocument:
		return "new-document"
	case HotkeyNextDocument:
		return "next-document"
	case HotkeyCascade:
		return "cascade"
	case HotkeyTile:
		return "tile"
	}
	return "unknown"
}

// HotkeyHandler is a function that handles a hotkey press.
type HotkeyHandler func()

// Binding ties a configured key combination to a hotkey.
type Binding struct {
	ID     HotkeyID
	Hotkey string
}

// Bindings returns the hotkeys configured in cfg, skipping empty and
// unparsable entries.
func Bindings(cfg *config.UIConfig) []Binding {
	all := []Binding{
		{HotkeyNewDocument, cfg.NewDocumentHotkey},
		{HotkeyNextDocument, cfg.NextDocumentHotkey},
		{HotkeyCascade, cfg.CascadeHotkey},
		{HotkeyTile, cfg.TileHotkey},
	}
	out := all[:0]
	for _, b := range all {
		if b.Hotkey == "" {
			continue
		}
		if _, _, ok := utils.ParseHotkey(b.Hotkey); !ok {
			continue
		}
		out = append(out, b)
	}
	return out
}
