package chrome_test

import (
	"image"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/NaveLIL/erez-mdi/chrome"
	"github.com/NaveLIL/erez-mdi/chrometest"
	"github.com/NaveLIL/erez-mdi/models"
	"github.com/NaveLIL/erez-mdi/storage"
)

// newFrame returns a frame at (50,50) sized 800×600 whose menu band spans
// screen x [58,842), y [81,100), with one maximized document.
func newFrame(t *testing.T) (*chrometest.Host, *chrome.MenuBar, *storage.RingBuffer) {
	t.Helper()
	h := chrometest.New()
	f := h.AddWindow(frame, image.Rect(50, 50, 850, 650), clientFill)
	f.MenuBar = image.Rect(58, 81, 842, 100)
	d := h.AddWindow(doc, image.Rect(58, 100, 842, 642), clientFill)
	d.Parent = frame
	d.Maximized = true

	hist := storage.NewRingBuffer(8)
	r := chrome.NewRenderer(theme, nil)
	return h, chrome.NewMenuBar(h, r, hist), hist
}

func cellCenter(h *chrometest.Host, b models.ButtonID) image.Point {
	return center(chrome.ComputeMenuLayout(h, frame).CellRect(b))
}

func TestMenuLayoutCells(t *testing.T) {
	h, _, _ := newFrame(t)
	ml := chrome.ComputeMenuLayout(h, frame)

	want := map[models.ButtonID]image.Rectangle{
		models.ButtonClose:      image.Rect(823, 81, 842, 100),
		models.ButtonMaxRestore: image.Rect(804, 81, 823, 100),
		models.ButtonMinimize:   image.Rect(785, 81, 804, 100),
	}
	for b, r := range want {
		if got := ml.CellRect(b); got != r {
			t.Errorf("%s: Expected %v, got %v", b, r, got)
		}
	}
	if got := ml.WindowCellRect(models.ButtonClose); got != image.Rect(773, 31, 792, 50) {
		t.Errorf("Expected window-relative close (773,31)-(792,50), got %v", got)
	}
	if got := ml.ButtonAt(image.Pt(700, 90)); got != models.ButtonNone {
		t.Errorf("Expected none left of the cells, got %s", got)
	}
}

func TestMenuBarPaintAfterDefault(t *testing.T) {
	h, mb, _ := newFrame(t)
	h.DefaultResult = 7

	handled, res := mb.Handle(frame, chrome.Message{Kind: chrome.MessagePaint})
	if !handled || res != 7 {
		t.Errorf("Expected handled with default result 7, got %v, %d", handled, res)
	}
	if len(h.Ops) == 0 || h.Ops[0] != "default 0x00000010 paint" {
		t.Fatalf("Expected default processing first, ops: %v", h.Ops)
	}
	var glyphs []string
	for _, op := range h.Ops {
		if strings.HasPrefix(op, "screen glyph ") {
			glyphs = append(glyphs, strings.Fields(op)[2])
		}
	}
	want := []string{"U+E8BB", "U+E923", "U+E921"}
	if diff := cmp.Diff(want, glyphs); diff != "" {
		t.Errorf("glyph mismatch (-want +got):\n%s", diff)
	}
}

func TestMenuBarIdleWithoutMaximizedDocument(t *testing.T) {
	h, mb, _ := newFrame(t)
	h.Windows[doc].Maximized = false

	handled, _ := mb.Handle(frame, chrome.Message{Kind: chrome.MessagePaint})
	if !handled {
		t.Error("Expected paint to be handled through default processing")
	}
	for _, op := range h.Ops {
		if strings.Contains(op, "glyph") {
			t.Errorf("Expected no cells drawn, got %q", op)
		}
	}

	if handled, _ := mb.Handle(frame, chrome.Message{Kind: chrome.MessageButtonDown, Point: cellCenter(h, models.ButtonClose)}); handled {
		t.Error("Expected button-down to decline")
	}
	if handled, _ := mb.Handle(frame, chrome.Message{Kind: chrome.MessageHitTest}); handled {
		t.Error("Expected hit test to decline")
	}
}

func TestMenuBarCommitTargetsMaximizedDocument(t *testing.T) {
	tests := []struct {
		button models.ButtonID
		want   models.Command
	}{
		{models.ButtonClose, models.CommandClose},
		{models.ButtonMaxRestore, models.CommandRestore},
		{models.ButtonMinimize, models.CommandMinimize},
	}
	for _, tt := range tests {
		t.Run(tt.button.String(), func(t *testing.T) {
			h, mb, hist := newFrame(t)
			pt := cellCenter(h, tt.button)
			h.Queue(up(pt))

			handled, _ := mb.Handle(frame, chrome.Message{Kind: chrome.MessageButtonDown, Point: pt})
			if !handled {
				t.Fatal("Expected press to be handled")
			}
			want := []chrometest.Posted{{Window: doc, Command: tt.want}}
			if diff := cmp.Diff(want, h.Posted); diff != "" {
				t.Errorf("posted mismatch (-want +got):\n%s", diff)
			}
			if !hasOp(h, "capture 0x00000010") {
				t.Error("Expected the frame to hold capture")
			}
			rec := hist.GetLatest()
			if rec.Source != models.SourceMenuBar || rec.Target != doc || rec.Window != frame {
				t.Errorf("Expected menubar gesture targeting doc, got %+v", rec)
			}
		})
	}
}

func TestMenuBarDropsWhenNoLongerMaximized(t *testing.T) {
	h, mb, hist := newFrame(t)
	pt := cellCenter(h, models.ButtonClose)
	h.Script = []chrometest.Step{
		{Event: up(pt), Do: func(h *chrometest.Host) { h.Windows[doc].Maximized = false }},
	}

	mb.Handle(frame, chrome.Message{Kind: chrome.MessageButtonDown, Point: pt})

	if len(h.Posted) != 0 {
		t.Errorf("Expected the command to be dropped, got %v", h.Posted)
	}
	rec := hist.GetLatest()
	if rec.Outcome != models.OutcomeDropped || rec.Reason != chrome.ReasonNoMaximized {
		t.Errorf("Expected dropped/no maximized document, got %s/%s", rec.Outcome, rec.Reason)
	}
}

func TestMenuBarResolvesTargetAtRelease(t *testing.T) {
	h, mb, _ := newFrame(t)
	d2 := h.AddWindow(doc2, image.Rect(58, 100, 842, 642), clientFill)
	d2.Parent = frame
	pt := cellCenter(h, models.ButtonMinimize)
	h.Script = []chrometest.Step{
		{Event: up(pt), Do: func(h *chrometest.Host) {
			h.Windows[doc].Maximized = false
			h.Windows[doc2].Maximized = true
		}},
	}

	mb.Handle(frame, chrome.Message{Kind: chrome.MessageButtonDown, Point: pt})

	want := []chrometest.Posted{{Window: doc2, Command: models.CommandMinimize}}
	if diff := cmp.Diff(want, h.Posted); diff != "" {
		t.Errorf("posted mismatch (-want +got):\n%s", diff)
	}
}

func TestMenuBarEscapeCancels(t *testing.T) {
	h, mb, hist := newFrame(t)
	pt := cellCenter(h, models.ButtonClose)
	h.Queue(chrome.Event{Kind: chrome.EventKeyDown, Key: chrome.KeyEscape})

	mb.Handle(frame, chrome.Message{Kind: chrome.MessageButtonDown, Point: pt})

	if len(h.Posted) != 0 {
		t.Errorf("Expected no command, got %v", h.Posted)
	}
	if rec := hist.GetLatest(); rec.Outcome != models.OutcomeCancelled {
		t.Errorf("Expected cancelled, got %s", rec.Outcome)
	}
	cell := chrome.ComputeMenuLayout(h, frame).WindowCellRect(models.ButtonClose)
	if got := screenPixel(h, frame, cell.Min); got != theme.CaptionBackground {
		t.Errorf("Expected resting cell, got %s", got)
	}
}

func TestMenuBarPressOutsideCellsDeclines(t *testing.T) {
	h, mb, _ := newFrame(t)

	handled, _ := mb.Handle(frame, chrome.Message{Kind: chrome.MessageButtonDown, Point: image.Pt(100, 90)})
	if handled {
		t.Error("Expected press on a menu item to decline")
	}
	if h.Capture() != 0 {
		t.Error("Expected no capture")
	}
}
