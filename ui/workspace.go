// Package ui provides the MDI workspace windows, the Win32 chrome host and
// the system tray for EREZ MDI.
package ui

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupported is returned by Run on platforms without a workspace.
var ErrUnsupported = errors.New("ui: workspace requires windows")

// maxInitialDocuments bounds how many documents open at startup.
const maxInitialDocuments = 32

// Action is a workspace command that can be requested from any goroutine.
type Action int

const (
	ActionNone Action = iota
	ActionNewDocument
	ActionNextDocument
	ActionCascade
	ActionTile
	ActionExit
)

// Menu command identifiers. The MDI client numbers documents from
// mdiFirstChild, well above these.
const (
	cmdNewDocument  = 100 + uint16(ActionNewDocument)
	cmdNextDocument = 100 + uint16(ActionNextDocument)
	cmdCascade      = 100 + uint16(ActionCascade)
	cmdTile         = 100 + uint16(ActionTile)
	cmdExit         = 100 + uint16(ActionExit)
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionNewDocument:
		return "new-document"
	case ActionNextDocument:
		return "next-document"
	case ActionCascade:
		return "cascade"
	case ActionTile:
		return "tile"
	case ActionExit:
		return "exit"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// commandID is the menu identifier that triggers a.
func (a Action) commandID() uint16 {
	if a <= ActionNone || a > ActionExit {
		return 0
	}
	return 100 + uint16(a)
}

// actionFor maps a menu identifier back to its action.
func actionFor(id uint16) Action {
	a := Action(int(id) - 100)
	if a <= ActionNone || a > ActionExit {
		return ActionNone
	}
	return a
}

// DocumentTitle formats the title of the n-th document. Templates without
// a %d verb get the number appended.
func DocumentTitle(template string, n int) string {
	if template == "" {
		template = "Document %d"
	}
	if !strings.Contains(template, "%d") {
		return fmt.Sprintf("%s %d", template, n)
	}
	return fmt.Sprintf(template, n)
}
