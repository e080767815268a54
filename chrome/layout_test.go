package chrome_test

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/NaveLIL/erez-mdi/chrome"
	"github.com/NaveLIL/erez-mdi/chrometest"
	"github.com/NaveLIL/erez-mdi/models"
)

func TestComputeLayout(t *testing.T) {
	h, _, _ := newDoc(t)
	l := chrome.ComputeLayout(h, doc)

	want := chrome.Layout{
		DPI:           96,
		BorderX:       8,
		BorderY:       8,
		CaptionHeight: 22,
		ButtonWidth:   45,
		IconWidth:     16,
		IconHeight:    16,
		Window:        image.Rect(100, 100, 400, 300),
		Width:         300,
		Height:        200,
	}
	if diff := cmp.Diff(want, l); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}

	if got := l.Client(); got != image.Rect(8, 30, 292, 192) {
		t.Errorf("Expected client (8,30)-(292,192), got %v", got)
	}
	if got := l.IconRect(); got != image.Rect(12, 11, 28, 27) {
		t.Errorf("Expected icon (12,11)-(28,27), got %v", got)
	}
	if got := l.SystemMenuRect(); got != image.Rect(8, 8, 32, 30) {
		t.Errorf("Expected system menu (8,8)-(32,30), got %v", got)
	}
	if got := l.TitleRect(); got != image.Rect(34, 8, 153, 30) {
		t.Errorf("Expected title (34,8)-(153,30), got %v", got)
	}
	if got := l.ScreenButtonRect(models.ButtonClose); got != image.Rect(347, 108, 392, 130) {
		t.Errorf("Expected close at (347,108)-(392,130), got %v", got)
	}
}

func TestButtonsContiguousAtEveryDPI(t *testing.T) {
	for _, dpi := range []int{96, 120, 144, 168, 192, 240, 288} {
		h, _, _ := newDoc(t)
		h.Windows[doc].DPI = dpi
		h.Resize(doc, image.Pt(900, 400), clientFill)
		l := chrome.ComputeLayout(h, doc)

		closeR := l.ButtonRect(models.ButtonClose)
		maxR := l.ButtonRect(models.ButtonMaxRestore)
		minR := l.ButtonRect(models.ButtonMinimize)

		if closeR.Max.X != l.Width-l.BorderX {
			t.Errorf("dpi %d: Expected close right edge %d, got %d", dpi, l.Width-l.BorderX, closeR.Max.X)
		}
		if maxR.Max.X != closeR.Min.X || minR.Max.X != maxR.Min.X {
			t.Errorf("dpi %d: Expected contiguous buttons, got %v %v %v", dpi, minR, maxR, closeR)
		}
		if !(minR.Min.X < maxR.Min.X && maxR.Min.X < closeR.Min.X) {
			t.Errorf("dpi %d: Expected right-to-left order close > max > min", dpi)
		}
		for _, r := range []image.Rectangle{closeR, maxR, minR} {
			if r.Dx() != l.ButtonWidth {
				t.Errorf("dpi %d: Expected width %d, got %d", dpi, l.ButtonWidth, r.Dx())
			}
			if r.Min.Y != l.BorderY || r.Max.Y != l.BorderY+l.CaptionHeight {
				t.Errorf("dpi %d: Expected caption span, got %v", dpi, r)
			}
		}
		if closeR.Overlaps(maxR) || maxR.Overlaps(minR) || closeR.Overlaps(minR) {
			t.Errorf("dpi %d: Expected no overlap", dpi)
		}
	}
}

func TestLayoutScalesWithDPI(t *testing.T) {
	h, _, _ := newDoc(t)
	h.Windows[doc].DPI = 144
	l := chrome.ComputeLayout(h, doc)

	if l.BorderX != 12 || l.CaptionHeight != 33 || l.ButtonWidth != 68 {
		t.Errorf("Expected border 12, caption 33, button 68; got %d, %d, %d", l.BorderX, l.CaptionHeight, l.ButtonWidth)
	}
}

func TestTitleRectEmptyWhenNarrow(t *testing.T) {
	h := chrometest.New()
	h.AddWindow(doc, image.Rect(0, 0, 150, 100), clientFill)
	l := chrome.ComputeLayout(h, doc)

	if got := l.TitleRect(); !got.Empty() {
		t.Errorf("Expected empty title rect, got %v", got)
	}
	if l.MinWidth() != 151 {
		t.Errorf("Expected min width 151, got %d", l.MinWidth())
	}
}

// A 100 pixel wide window at 96 DPI with an 8 pixel border and 45 pixel
// buttons: close spans [47,92) and max/restore sits directly left of it.
func TestNarrowWindowScenario(t *testing.T) {
	h := chrometest.New()
	h.Metrics[chrome.MetricCaptionHeight] = 14
	h.AddWindow(doc, image.Rect(0, 0, 100, 30), clientFill)
	c := chrome.NewController(h, theme, nil)

	l := chrome.ComputeLayout(h, doc)
	closeR := l.ButtonRect(models.ButtonClose)
	if closeR.Max.X != 92 || closeR.Min.X != 47 {
		t.Errorf("Expected close [47,92), got [%d,%d)", closeR.Min.X, closeR.Max.X)
	}
	if maxR := l.ButtonRect(models.ButtonMaxRestore); maxR.Min.X != 2 || maxR.Max.X != 47 {
		t.Errorf("Expected max/restore [2,47), got [%d,%d)", maxR.Min.X, maxR.Max.X)
	}

	pt := center(l.ScreenButtonRect(models.ButtonClose))
	h.Queue(chrome.Event{Kind: chrome.EventPointerUp, Point: pt})
	handled, _ := c.Handle(doc, chrome.Message{Kind: chrome.MessageButtonDown, Point: pt})
	if !handled {
		t.Fatal("Expected press on close to be handled")
	}
	want := []chrometest.Posted{{Window: doc, Command: models.CommandClose}}
	if diff := cmp.Diff(want, h.Posted); diff != "" {
		t.Errorf("posted mismatch (-want +got):\n%s", diff)
	}
}
