package chrome

import (
	"image"
	"testing"

	"github.com/NaveLIL/erez-mdi/models"
)

func TestTrackerTransitions(t *testing.T) {
	inside := image.Rect(0, 0, 10, 10)
	contains := func(pt image.Point) bool { return pt.In(inside) }

	tests := []struct {
		name       string
		events     []Event
		wantCommit bool
		wantReason string
		wantDone   bool
	}{
		{
			name:       "release inside",
			events:     []Event{{Kind: EventPointerUp, Point: image.Pt(5, 5)}},
			wantCommit: true,
			wantDone:   true,
		},
		{
			name: "out and back in",
			events: []Event{
				{Kind: EventPointerMove, Point: image.Pt(20, 5)},
				{Kind: EventPointerMove, Point: image.Pt(5, 5)},
				{Kind: EventPointerUp, Point: image.Pt(5, 5)},
			},
			wantCommit: true,
			wantDone:   true,
		},
		{
			name:       "release outside",
			events:     []Event{{Kind: EventPointerUp, Point: image.Pt(20, 5)}},
			wantReason: ReasonReleasedOutside,
			wantDone:   true,
		},
		{
			name:       "escape",
			events:     []Event{{Kind: EventKeyDown, Key: KeyEscape}},
			wantReason: ReasonEscape,
			wantDone:   true,
		},
		{
			name:       "capture lost",
			events:     []Event{{Kind: EventCaptureLost}},
			wantReason: ReasonCaptureLost,
			wantDone:   true,
		},
		{
			name:   "other key keeps tracking",
			events: []Event{{Kind: EventKeyDown, Key: 'Q'}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTracker(models.ButtonClose, contains)
			for _, ev := range tt.events {
				tr.advance(ev)
			}
			if done := tr.phase == phaseDone; done != tt.wantDone {
				t.Fatalf("Expected done=%v, got %v", tt.wantDone, done)
			}
			if tr.commit != tt.wantCommit {
				t.Errorf("Expected commit=%v, got %v", tt.wantCommit, tr.commit)
			}
			if tr.reason != tt.wantReason {
				t.Errorf("Expected reason %q, got %q", tt.wantReason, tr.reason)
			}
		})
	}
}

func TestTrackerReportsChangesAndConsumption(t *testing.T) {
	tr := newTracker(models.ButtonMinimize, func(pt image.Point) bool { return pt.X < 10 })

	if changed, consumed := tr.advance(Event{Kind: EventPointerMove, Point: image.Pt(5, 0)}); changed || !consumed {
		t.Errorf("Expected unchanged consumed move, got changed=%v consumed=%v", changed, consumed)
	}
	if tr.pressed() != models.ButtonMinimize {
		t.Errorf("Expected pressed minimize, got %s", tr.pressed())
	}
	if changed, _ := tr.advance(Event{Kind: EventPointerMove, Point: image.Pt(50, 0)}); !changed {
		t.Error("Expected leaving the button to change the visual")
	}
	if tr.pressed() != models.ButtonNone {
		t.Errorf("Expected no pressed button while away, got %s", tr.pressed())
	}
	if _, consumed := tr.advance(Event{Kind: EventOther}); consumed {
		t.Error("Expected unrelated event to be left for dispatch")
	}

	tr.advance(Event{Kind: EventKeyDown, Key: KeyEscape})
	tr.cancel("ignored")
	if tr.reason != ReasonEscape {
		t.Errorf("Expected the first exit reason to stick, got %q", tr.reason)
	}
	if changed, consumed := tr.advance(Event{Kind: EventPointerUp}); changed || consumed {
		t.Error("Expected a finished tracker to ignore events")
	}
}

func TestTrackerAbortAndLastPoint(t *testing.T) {
	tr := newTracker(models.ButtonClose, func(pt image.Point) bool { return pt.X < 10 })
	if tr.seen {
		t.Error("Expected no pointer position before any event")
	}
	tr.advance(Event{Kind: EventPointerMove, Point: image.Pt(40, 2)})
	if !tr.seen || tr.last != image.Pt(40, 2) {
		t.Errorf("Expected last point (40,2), got %v seen=%v", tr.last, tr.seen)
	}

	tr.abort("pressed redraw: boom")
	if tr.phase != phaseDone || tr.commit || !tr.aborted {
		t.Errorf("Expected aborted without commit, got phase=%d commit=%v aborted=%v", tr.phase, tr.commit, tr.aborted)
	}
	tr.cancel(ReasonEscape)
	if tr.reason != "pressed redraw: boom" {
		t.Errorf("Expected the abort reason to stick, got %q", tr.reason)
	}
}
