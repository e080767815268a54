package chrome

import (
	"fmt"
	"image"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/NaveLIL/erez-mdi/logger"
	"github.com/NaveLIL/erez-mdi/models"
	"github.com/NaveLIL/erez-mdi/utils"
)

// Recorder receives every finished press gesture.
type Recorder interface {
	Add(rec *models.GestureRecord)
}

// Controller handles the non-client messages of MDI document windows.
// It must only be called from the thread that owns those windows.
type Controller struct {
	host     Host
	renderer *Renderer
	states   *StateTable
	history  Recorder
	log      *logrus.Entry
}

// NewController creates a controller drawing with theme. history may be
// nil.
func NewController(host Host, theme models.Theme, history Recorder) *Controller {
	log := logger.Get().Component("chrome")
	return &Controller{
		host:     host,
		renderer: NewRenderer(theme, log),
		states:   NewStateTable(),
		history:  history,
		log:      log,
	}
}

// Renderer returns the controller's renderer.
func (c *Controller) Renderer() *Renderer {
	return c.renderer
}

// States exposes the interaction state table.
func (c *Controller) States() *StateTable {
	return c.states
}

// SetTheme switches colours and repaints every known window.
func (c *Controller) SetTheme(theme models.Theme) {
	c.renderer.Theme = theme
	for w, st := range c.states.states {
		if !c.host.IsMaximized(w) {
			c.paint(w, st)
		}
	}
	logger.Get().Chrome("Palette applied to %d windows", c.states.Len())
}

// Handle processes m for w. When handled is false the caller must run
// default processing; otherwise result is the message's answer.
func (c *Controller) Handle(w Handle, m Message) (handled bool, result uintptr) {
	switch m.Kind {
	case MessageDestroy:
		c.states.Release(w)
		return false, 0
	case MessageDocumentActivate:
		st := c.states.Ensure(w, c.host)
		st.Active = m.Activated == w
		if !c.host.IsMaximized(w) {
			c.paint(w, st)
		}
		return false, 0
	}

	// The frame's menu bar draws the buttons of a maximized document.
	if c.host.IsMaximized(w) {
		return false, 0
	}

	switch m.Kind {
	case MessagePaint:
		c.paint(w, c.states.Ensure(w, c.host))
		return true, 0

	case MessageActivate:
		st := c.states.Ensure(w, c.host)
		st.Active = m.Active
		m.SuppressPaint = true
		result = c.host.DefaultProc(w, m)
		c.paint(w, st)
		return true, result

	case MessageHitTest:
		c.states.Ensure(w, c.host)
		return true, uintptr(HitTest(ComputeLayout(c.host, w), m.Point))

	case MessageButtonDown:
		st := c.states.Ensure(w, c.host)
		b := ButtonAt(ComputeLayout(c.host, w), m.Point)
		if b == models.ButtonNone {
			return false, 0
		}
		c.press(w, st, b)
		return true, 0

	case MessageMouseMove:
		st := c.states.Ensure(w, c.host)
		b := ButtonAt(ComputeLayout(c.host, w), m.Point)
		if b != st.Hover {
			st.Hover = b
			c.paintButtons(w, st)
		}
		c.host.TrackLeave(w)
		return true, 0

	case MessageMouseLeave:
		if st, ok := c.states.Lookup(w); ok && st.Hover != models.ButtonNone {
			st.Hover = models.ButtonNone
			c.paintButtons(w, st)
		}
		return true, 0

	case MessageSetText:
		c.host.StoreText(w, m.Text)
		c.paint(w, c.states.Ensure(w, c.host))
		return true, 1
	}
	return false, 0
}

// Repaint redraws w's whole chrome unless w is maximized.
func (c *Controller) Repaint(w Handle) {
	if c.host.IsMaximized(w) {
		return
	}
	c.paint(w, c.states.Ensure(w, c.host))
}

// RepaintButtons redraws only w's buttons unless w is maximized.
func (c *Controller) RepaintButtons(w Handle) {
	if c.host.IsMaximized(w) {
		return
	}
	c.paintButtons(w, c.states.Ensure(w, c.host))
}

func (c *Controller) view(w Handle, st *InteractionState, pressed models.ButtonID) View {
	return View{
		Title:     c.host.Title(w),
		Icon:      c.host.Icon(w),
		Active:    st.Active,
		Maximized: c.host.IsMaximized(w),
		Hover:     st.Hover,
		Pressed:   pressed,
	}
}

func (c *Controller) paint(w Handle, st *InteractionState) {
	if err := c.repaint(w, st); err != nil {
		c.log.WithError(err).WithField("window", utils.FormatHandle(w)).Debug("Chrome repaint abandoned")
	}
}

// repaint composes the chrome offscreen and presents it around the client
// area.
func (c *Controller) repaint(w Handle, st *InteractionState) error {
	l := ComputeLayout(c.host, w)
	if l.Width <= 0 || l.Height <= 0 {
		return nil
	}
	if l.Width < l.MinWidth() {
		logger.Get().Layout("Window %s is %dpx wide, buttons need %dpx", utils.FormatHandle(w), l.Width, l.MinWidth())
	}
	dst, err := c.host.WindowSurface(w)
	if err != nil {
		return fmt.Errorf("window surface: %w", err)
	}
	defer dst.Release()

	buf, err := c.host.Offscreen(w, image.Pt(l.Width, l.Height))
	if err != nil {
		return fmt.Errorf("offscreen: %w", err)
	}
	defer buf.Release()

	c.renderer.Compose(buf, l, c.view(w, st, models.ButtonNone))
	if err := buf.Present(dst, l.Client()); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

func (c *Controller) paintButtons(w Handle, st *InteractionState) {
	if err := c.drawButtons(w, st, models.ButtonNone); err != nil {
		c.log.WithError(err).Debug("Button repaint abandoned")
	}
}

// drawButtons redraws the three buttons straight to the window surface.
func (c *Controller) drawButtons(w Handle, st *InteractionState, pressed models.ButtonID) error {
	s, err := c.host.WindowSurface(w)
	if err != nil {
		return fmt.Errorf("window surface: %w", err)
	}
	defer s.Release()
	c.renderer.DrawButtons(s, ComputeLayout(c.host, w), c.view(w, st, pressed))
	return nil
}

// press tracks a press on b and posts its command if it commits.
func (c *Controller) press(w Handle, st *InteractionState, b models.ButtonID) models.Outcome {
	res := track(c.host, pressTarget{
		owner:  w,
		button: b,
		contains: func(pt image.Point) bool {
			return pt.In(ComputeLayout(c.host, w).ScreenButtonRect(b))
		},
		draw: func(pressed models.ButtonID) error {
			return c.drawButtons(w, st, pressed)
		},
		settle: func(last image.Point, known bool) {
			st.Hover = models.ButtonNone
			if known {
				st.Hover = ButtonAt(ComputeLayout(c.host, w), last)
			}
			if st.Hover != models.ButtonNone {
				c.host.TrackLeave(w)
			}
		},
	}, c.log)

	rec := &models.GestureRecord{
		Timestamp: time.Now(),
		Window:    w,
		Source:    models.SourceChild,
		Button:    b,
		Outcome:   res.outcome,
		Reason:    res.reason,
	}
	if res.outcome == models.OutcomeCommitted {
		if _, alive := c.states.Lookup(w); !alive {
			rec.Outcome = models.OutcomeDropped
			rec.Reason = ReasonDestroyed
		} else {
			rec.Command = models.CommandFor(b, c.host.IsMaximized(w))
			rec.Target = w
			c.host.PostCommand(w, rec.Command)
		}
	}
	c.record(rec)
	return rec.Outcome
}

func (c *Controller) record(rec *models.GestureRecord) {
	if c.history != nil {
		c.history.Add(rec)
	}
	logger.Get().Gesture(rec)
}
