package chrome

import "github.com/NaveLIL/erez-mdi/models"

// InteractionState is what the controller remembers about one window
// between messages. The pressed button is never stored here; it lives only
// for the duration of a press.
type InteractionState struct {
	Active bool
	Hover  models.ButtonID
}

// StateTable owns the interaction state of every chrome-bearing window of
// one controller.
type StateTable struct {
	states map[Handle]*InteractionState
}

// NewStateTable creates an empty table.
func NewStateTable() *StateTable {
	return &StateTable{states: make(map[Handle]*InteractionState)}
}

// Lookup returns w's state without creating it.
func (t *StateTable) Lookup(w Handle) (*InteractionState, bool) {
	s, ok := t.states[w]
	return s, ok
}

// Ensure returns w's state, creating it with Active set from w's
// foreground status if absent.
func (t *StateTable) Ensure(w Handle, win Windows) *InteractionState {
	if s, ok := t.states[w]; ok {
		return s
	}
	s := &InteractionState{Active: win.IsForeground(w), Hover: models.ButtonNone}
	t.states[w] = s
	return s
}

// Release forgets w. It reports whether state existed.
func (t *StateTable) Release(w Handle) bool {
	if _, ok := t.states[w]; !ok {
		return false
	}
	delete(t.states, w)
	return true
}

// Len returns the number of tracked windows.
func (t *StateTable) Len() int {
	return len(t.states)
}
