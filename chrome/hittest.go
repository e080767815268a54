package chrome

import (
	"image"

	"github.com/NaveLIL/erez-mdi/models"
)

// HitTest resolves a screen point against l. Corners are tested before
// edges and buttons before the caption so the wider bands never swallow
// the narrower ones.
func HitTest(l Layout, screen image.Point) models.HitRegion {
	p := l.ToWindow(screen)
	if !p.In(l.Bounds()) {
		return models.HitNowhere
	}

	left := p.X < l.BorderX
	right := p.X >= l.Width-l.BorderX
	top := p.Y < l.BorderY
	bottom := p.Y >= l.Height-l.BorderY

	// A corner zone reaches 2×border along each edge that meets there.
	cx, cy := 2*l.BorderX, 2*l.BorderY
	nearLeft := p.X < cx
	nearRight := p.X >= l.Width-cx
	nearTop := p.Y < cy
	nearBottom := p.Y >= l.Height-cy

	switch {
	case (top && nearLeft) || (left && nearTop):
		return models.HitTopLeft
	case (top && nearRight) || (right && nearTop):
		return models.HitTopRight
	case (bottom && nearLeft) || (left && nearBottom):
		return models.HitBottomLeft
	case (bottom && nearRight) || (right && nearBottom):
		return models.HitBottomRight
	}

	switch {
	case left:
		return models.HitLeft
	case right:
		return models.HitRight
	case top:
		return models.HitTop
	case bottom:
		return models.HitBottom
	}

	if p.Y < l.BorderY+l.CaptionHeight {
		for _, b := range models.Buttons {
			if p.In(l.ButtonRect(b)) {
				return models.RegionFor(b)
			}
		}
		if p.In(l.SystemMenuRect()) {
			return models.HitSysMenu
		}
		return models.HitCaption
	}
	return models.HitClient
}

// ButtonAt returns the button under a screen point, or ButtonNone.
func ButtonAt(l Layout, screen image.Point) models.ButtonID {
	return HitTest(l, screen).Button()
}
