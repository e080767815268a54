package chrome

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/NaveLIL/erez-mdi/models"
)

type trackPhase int

const (
	phaseIdle trackPhase = iota
	phaseTracking
	phaseDone
)

// Reasons recorded for gestures that do not commit.
const (
	ReasonReleasedOutside = "released outside"
	ReasonEscape          = "escape"
	ReasonCaptureLost     = "capture lost"
	ReasonQuit            = "quit"
	ReasonNoMaximized     = "no maximized document"
	ReasonDestroyed       = "window destroyed"
)

// tracker is the press state machine. It starts Tracking with the
// pointer over the button and ends Done with commit decided.
type tracker struct {
	button   models.ButtonID
	contains func(image.Point) bool
	phase    trackPhase
	over     bool
	commit   bool
	aborted  bool
	reason   string

	// last is the most recent pointer position; seen is false until a
	// pointer event arrives.
	last image.Point
	seen bool
}

func newTracker(b models.ButtonID, contains func(image.Point) bool) *tracker {
	return &tracker{
		button:   b,
		contains: contains,
		phase:    phaseTracking,
		over:     true,
	}
}

// advance feeds one event. It reports whether the button's look changed
// and whether the event was consumed; unconsumed events belong to normal
// dispatch.
func (t *tracker) advance(ev Event) (changed, consumed bool) {
	if t.phase != phaseTracking {
		return false, false
	}
	switch ev.Kind {
	case EventPointerMove:
		t.last, t.seen = ev.Point, true
		over := t.contains(ev.Point)
		changed = over != t.over
		t.over = over
		return changed, true
	case EventPointerUp:
		t.last, t.seen = ev.Point, true
		t.over = t.contains(ev.Point)
		t.phase = phaseDone
		t.commit = t.over
		if !t.commit {
			t.reason = ReasonReleasedOutside
		}
		return false, true
	case EventKeyDown:
		if ev.Key == KeyEscape {
			t.cancel(ReasonEscape)
			return false, true
		}
	case EventCaptureLost:
		t.cancel(ReasonCaptureLost)
		return false, true
	}
	return false, false
}

func (t *tracker) cancel(reason string) {
	if t.phase != phaseTracking {
		return
	}
	t.phase = phaseDone
	t.commit = false
	t.reason = reason
}

// abort ends tracking without commit because the press could not be shown.
func (t *tracker) abort(reason string) {
	if t.phase != phaseTracking {
		return
	}
	t.phase = phaseDone
	t.commit = false
	t.aborted = true
	t.reason = reason
}

// pressed returns the button to draw pressed, ButtonNone while the pointer
// is away.
func (t *tracker) pressed() models.ButtonID {
	if t.phase == phaseTracking && t.over {
		return t.button
	}
	return models.ButtonNone
}

// pressTarget describes one press to track: the window that holds capture,
// the button, how to test containment and how to draw the buttons.
// settle, if set, runs before the resting redraw with the last pointer
// position (known is false if the pointer never reported one).
type pressTarget struct {
	owner    Handle
	button   models.ButtonID
	contains func(image.Point) bool
	draw     func(pressed models.ButtonID) error
	settle   func(last image.Point, known bool)
}

type trackResult struct {
	outcome models.Outcome
	reason  string
}

// track runs the modal press loop for t. Capture is released and the
// buttons are redrawn at rest on every exit path.
func track(p Pump, t pressTarget, log logrus.FieldLogger) trackResult {
	if err := t.draw(t.button); err != nil {
		return trackResult{models.OutcomeAborted, fmt.Sprintf("pressed redraw: %v", err)}
	}
	if err := p.SetCapture(t.owner); err != nil {
		redraw(t, models.ButtonNone, log)
		return trackResult{models.OutcomeAborted, fmt.Sprintf("%v", err)}
	}

	tr := newTracker(t.button, t.contains)
	for tr.phase == phaseTracking {
		ev, ok := p.NextEvent()
		if !ok {
			tr.cancel(ReasonQuit)
			break
		}
		changed, consumed := tr.advance(ev)
		if !consumed {
			p.Dispatch(ev)
		}
		if changed {
			pressed := tr.pressed()
			if err := t.draw(pressed); err != nil {
				if pressed != models.ButtonNone {
					tr.abort(fmt.Sprintf("pressed redraw: %v", err))
				} else {
					log.WithError(err).WithField("button", t.button).Debug("Button redraw skipped")
				}
			}
		}
		if tr.phase == phaseTracking && !p.HasCapture(t.owner) {
			tr.cancel(ReasonCaptureLost)
		}
	}

	if p.HasCapture(t.owner) {
		p.ReleaseCapture()
	}
	if t.settle != nil {
		t.settle(tr.last, tr.seen)
	}
	redraw(t, models.ButtonNone, log)

	if tr.commit {
		return trackResult{outcome: models.OutcomeCommitted}
	}
	if tr.aborted {
		return trackResult{models.OutcomeAborted, tr.reason}
	}
	return trackResult{models.OutcomeCancelled, tr.reason}
}

func redraw(t pressTarget, pressed models.ButtonID, log logrus.FieldLogger) {
	if err := t.draw(pressed); err != nil {
		log.WithError(err).WithField("button", t.button).Debug("Button redraw skipped")
	}
}
