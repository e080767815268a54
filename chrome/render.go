package chrome

import (
	"image"

	"github.com/sirupsen/logrus"

	"github.com/NaveLIL/erez-mdi/models"
)

// Ellipsis terminates a truncated title.
const Ellipsis = "…"

// View is everything about a window the renderer draws besides geometry.
type View struct {
	Title     string
	Icon      models.Icon
	Active    bool
	Maximized bool
	Hover     models.ButtonID
	// Pressed is the button held by an in-progress press, if any.
	Pressed models.ButtonID
}

// Visual returns b's look in this view.
func (v View) Visual(b models.ButtonID) models.ButtonVisual {
	return models.VisualFor(b, v.Hover, v.Pressed)
}

// Renderer draws chrome onto a Surface. It holds no per-window state.
type Renderer struct {
	Theme models.Theme
	log   logrus.FieldLogger
}

// NewRenderer creates a renderer that reports degraded steps to log.
func NewRenderer(theme models.Theme, log logrus.FieldLogger) *Renderer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Renderer{Theme: theme, log: log}
}

// Compose draws the complete non-client area. It paints over the client
// rectangle too; callers exclude it when presenting.
func (r *Renderer) Compose(s Surface, l Layout, v View) {
	bounds := l.Bounds()
	border := r.Theme.Border(v.Active)

	s.Fill(bounds, r.Theme.CaptionBackground)
	// Both strokes stay one pixel wide at every DPI.
	s.Frame(bounds, border)
	s.Frame(l.Client().Inset(-1), border)

	if v.Icon != 0 {
		if err := s.DrawIcon(v.Icon, l.IconRect()); err != nil {
			r.log.WithError(err).Debug("Caption icon skipped")
		}
	}

	r.drawTitle(s, l, v)
	r.DrawButtons(s, l, v)
}

func (r *Renderer) drawTitle(s Surface, l Layout, v View) {
	tr := l.TitleRect()
	if tr.Empty() || v.Title == "" {
		return
	}
	text := FitTitle(s, v.Title, tr.Dx())
	if text == "" {
		return
	}
	h := s.MeasureText(text).Y
	pt := image.Pt(tr.Min.X, tr.Min.Y+(tr.Dy()-h)/2)
	if err := s.DrawText(pt, text, r.Theme.Title(v.Active)); err != nil {
		r.log.WithError(err).Debug("Caption title skipped")
	}
}

// DrawButtons draws only the three caption buttons.
func (r *Renderer) DrawButtons(s Surface, l Layout, v View) {
	for _, b := range models.Buttons {
		r.drawButton(s, l.ButtonRect(b), b, v)
	}
}

func (r *Renderer) drawButton(s Surface, rect image.Rectangle, b models.ButtonID, v View) {
	if rect.Empty() {
		return
	}
	s.Fill(rect, r.Theme.ButtonBackground(v.Visual(b)))
	if err := s.DrawGlyph(GlyphFor(b, v.Maximized), rect, r.Theme.Glyph); err != nil {
		r.log.WithError(err).WithField("button", b).Debug("Button glyph skipped")
	}
}

// FitTitle shortens title with a trailing ellipsis until it fits in width
// pixels. It returns "" when not even the ellipsis fits.
func FitTitle(s Surface, title string, width int) string {
	if width <= 0 {
		return ""
	}
	if s.MeasureText(title).X <= width {
		return title
	}
	runes := []rune(title)
	lo, hi := 0, len(runes)
	// Largest prefix whose ellipsized form fits.
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.MeasureText(string(runes[:mid])+Ellipsis).X <= width {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if lo == 0 && s.MeasureText(Ellipsis).X > width {
		return ""
	}
	return string(runes[:lo]) + Ellipsis
}
