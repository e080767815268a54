package chrome

import (
	"fmt"
	"image"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/NaveLIL/erez-mdi/logger"
	"github.com/NaveLIL/erez-mdi/models"
)

// MenuLayout places the three buttons at the right end of the frame's
// menu bar. All rectangles are in screen pixels.
type MenuLayout struct {
	Band      image.Rectangle
	Frame     image.Rectangle
	CellWidth int
}

// ComputeMenuLayout queries h for the current menu bar geometry.
func ComputeMenuLayout(h MenuHost, frame Handle) MenuLayout {
	dpi := h.DPI(frame)
	return MenuLayout{
		Band:      h.MenuBarRect(frame).Canon(),
		Frame:     h.WindowRect(frame).Canon(),
		CellWidth: h.SystemMetric(MetricMenuButtonWidth, dpi),
	}
}

// CellRect returns b's cell, close rightmost.
func (ml MenuLayout) CellRect(b models.ButtonID) image.Rectangle {
	i := b.Index()
	if i < 0 || ml.Band.Empty() {
		return image.Rectangle{}
	}
	right := ml.Band.Max.X - i*ml.CellWidth
	r := image.Rect(right-ml.CellWidth, ml.Band.Min.Y, right, ml.Band.Max.Y)
	return r.Intersect(ml.Band)
}

// WindowCellRect returns b's cell relative to the frame window origin.
func (ml MenuLayout) WindowCellRect(b models.ButtonID) image.Rectangle {
	r := ml.CellRect(b)
	if r.Empty() {
		return r
	}
	return r.Sub(ml.Frame.Min)
}

// ButtonAt returns the cell under a screen point, or ButtonNone.
func (ml MenuLayout) ButtonAt(pt image.Point) models.ButtonID {
	for _, b := range models.Buttons {
		if pt.In(ml.CellRect(b)) {
			return b
		}
	}
	return models.ButtonNone
}

// MenuBar draws and tracks the buttons of a maximized document on the
// frame's menu bar. It keeps no state between messages.
type MenuBar struct {
	host     MenuHost
	renderer *Renderer
	history  Recorder
	log      *logrus.Entry
}

// NewMenuBar creates a menu bar variant sharing r's colours.
func NewMenuBar(host MenuHost, r *Renderer, history Recorder) *MenuBar {
	return &MenuBar{
		host:     host,
		renderer: r,
		history:  history,
		log:      logger.Get().Component("menubar"),
	}
}

// Handle processes m for the frame window. Only paint and button-down over
// a cell are handled, and only while a document is maximized.
func (mb *MenuBar) Handle(frame Handle, m Message) (handled bool, result uintptr) {
	switch m.Kind {
	case MessagePaint:
		result = mb.host.DefaultProc(frame, m)
		if mb.host.MaximizedChild(frame) != 0 {
			mb.paint(frame)
		}
		return true, result

	case MessageButtonDown:
		if mb.host.MaximizedChild(frame) == 0 {
			return false, 0
		}
		b := ComputeMenuLayout(mb.host, frame).ButtonAt(m.Point)
		if b == models.ButtonNone {
			return false, 0
		}
		mb.press(frame, b)
		return true, 0
	}
	return false, 0
}

// Repaint redraws the cells if a document is maximized.
func (mb *MenuBar) Repaint(frame Handle) {
	if mb.host.MaximizedChild(frame) != 0 {
		mb.paint(frame)
	}
}

func (mb *MenuBar) paint(frame Handle) {
	if err := mb.draw(frame, models.ButtonNone); err != nil {
		mb.log.WithError(err).Debug("Menu bar buttons skipped")
	}
}

func (mb *MenuBar) draw(frame Handle, pressed models.ButtonID) error {
	s, err := mb.host.WindowSurface(frame)
	if err != nil {
		return fmt.Errorf("window surface: %w", err)
	}
	defer s.Release()

	ml := ComputeMenuLayout(mb.host, frame)
	v := View{Maximized: true, Pressed: pressed}
	for _, b := range models.Buttons {
		mb.renderer.drawButton(s, ml.WindowCellRect(b), b, v)
	}
	return nil
}

// press tracks a press on cell b. The command goes to whichever document
// is maximized at release, and is dropped if none is.
func (mb *MenuBar) press(frame Handle, b models.ButtonID) models.Outcome {
	res := track(mb.host, pressTarget{
		owner:  frame,
		button: b,
		contains: func(pt image.Point) bool {
			return pt.In(ComputeMenuLayout(mb.host, frame).CellRect(b))
		},
		draw: func(pressed models.ButtonID) error {
			return mb.draw(frame, pressed)
		},
	}, mb.log)

	rec := &models.GestureRecord{
		Timestamp: time.Now(),
		Window:    frame,
		Source:    models.SourceMenuBar,
		Button:    b,
		Outcome:   res.outcome,
		Reason:    res.reason,
	}
	if res.outcome == models.OutcomeCommitted {
		child := mb.host.MaximizedChild(frame)
		if child == 0 {
			rec.Outcome = models.OutcomeDropped
			rec.Reason = ReasonNoMaximized
		} else {
			rec.Target = child
			rec.Command = models.CommandFor(b, mb.host.IsMaximized(child))
			mb.host.PostCommand(child, rec.Command)
		}
	}
	if mb.history != nil {
		mb.history.Add(rec)
	}
	logger.Get().Gesture(rec)
	return rec.Outcome
}
