package chrome

import (
	"image"

	"github.com/NaveLIL/erez-mdi/models"
	"github.com/NaveLIL/erez-mdi/utils"
)

// Metric names a platform sizing metric. Hosts return it already scaled
// for the requested DPI.
type Metric int

const (
	MetricSizeFrameX Metric = iota
	MetricSizeFrameY
	MetricPaddedBorder
	MetricCaptionHeight
	MetricCaptionButtonWidth
	MetricSmallIconX
	MetricSmallIconY
	MetricMenuButtonWidth
)

// Offsets inside the caption, specified at 96 DPI.
const (
	iconInset    = 4
	sysMenuSlack = 4
	titleGap     = 6
	buttonGap    = 4
)

// Layout is the chrome geometry of one window at one moment. It is never
// cached: callers recompute it for every paint, hit test and tracking step.
type Layout struct {
	DPI           int
	BorderX       int
	BorderY       int
	CaptionHeight int
	ButtonWidth   int
	IconWidth     int
	IconHeight    int
	// Window is the window's outer rectangle in screen pixels.
	Window image.Rectangle
	Width  int
	Height int
}

// ComputeLayout queries g for w's current rectangle, DPI and metrics.
func ComputeLayout(g Geometry, w Handle) Layout {
	dpi := g.DPI(w)
	if dpi <= 0 {
		dpi = utils.BaseDPI
	}
	pad := g.SystemMetric(MetricPaddedBorder, dpi)
	r := g.WindowRect(w).Canon()
	return Layout{
		DPI:           dpi,
		BorderX:       g.SystemMetric(MetricSizeFrameX, dpi) + pad,
		BorderY:       g.SystemMetric(MetricSizeFrameY, dpi) + pad,
		CaptionHeight: g.SystemMetric(MetricCaptionHeight, dpi),
		ButtonWidth:   g.SystemMetric(MetricCaptionButtonWidth, dpi),
		IconWidth:     g.SystemMetric(MetricSmallIconX, dpi),
		IconHeight:    g.SystemMetric(MetricSmallIconY, dpi),
		Window:        r,
		Width:         r.Dx(),
		Height:        r.Dy(),
	}
}

// Scale converts a 96-DPI length to the layout's DPI.
func (l Layout) Scale(v int) int {
	return utils.ScaleForDPI(v, l.DPI)
}

// Bounds is the whole window in window-relative coordinates.
func (l Layout) Bounds() image.Rectangle {
	return image.Rect(0, 0, l.Width, l.Height)
}

// ButtonRect returns b's rectangle relative to the window origin, or the
// empty rectangle for ButtonNone.
func (l Layout) ButtonRect(b models.ButtonID) image.Rectangle {
	i := b.Index()
	if i < 0 {
		return image.Rectangle{}
	}
	right := l.Width - l.BorderX - i*l.ButtonWidth
	return image.Rect(right-l.ButtonWidth, l.BorderY, right, l.BorderY+l.CaptionHeight)
}

// ScreenButtonRect returns b's rectangle in screen pixels.
func (l Layout) ScreenButtonRect(b models.ButtonID) image.Rectangle {
	return l.ButtonRect(b).Add(l.Window.Min)
}

// Caption is the caption strip inside the side and top borders.
func (l Layout) Caption() image.Rectangle {
	return image.Rect(l.BorderX, l.BorderY, l.Width-l.BorderX, l.BorderY+l.CaptionHeight)
}

// Client is the client area relative to the window origin.
func (l Layout) Client() image.Rectangle {
	return image.Rect(l.BorderX, l.BorderY+l.CaptionHeight, l.Width-l.BorderX, l.Height-l.BorderY).Canon()
}

// IconRect is where the small icon is drawn.
func (l Layout) IconRect() image.Rectangle {
	x := l.BorderX + l.Scale(iconInset)
	y := l.BorderY + (l.CaptionHeight-l.IconHeight)/2
	return image.Rect(x, y, x+l.IconWidth, y+l.IconHeight)
}

// SystemMenuRect is the zone left of and around the icon that opens the
// system menu.
func (l Layout) SystemMenuRect() image.Rectangle {
	return image.Rect(l.BorderX, l.BorderY, l.IconRect().Max.X+l.Scale(sysMenuSlack), l.BorderY+l.CaptionHeight)
}

// TitleRect is the span the title may occupy, between the icon and the
// leftmost button. It is empty when the window is too narrow.
func (l Layout) TitleRect() image.Rectangle {
	left := l.IconRect().Max.X + l.Scale(titleGap)
	right := l.ButtonRect(models.ButtonMinimize).Min.X - l.Scale(buttonGap)
	if right <= left {
		return image.Rectangle{}
	}
	return image.Rect(left, l.BorderY, right, l.BorderY+l.CaptionHeight)
}

// ToWindow converts a screen point to window-relative coordinates.
func (l Layout) ToWindow(pt image.Point) image.Point {
	return pt.Sub(l.Window.Min)
}

// MinWidth is the narrowest window whose buttons fit inside the borders.
func (l Layout) MinWidth() int {
	return 2*l.BorderX + len(models.Buttons)*l.ButtonWidth
}
