package chrome

import (
	"image"

	"github.com/NaveLIL/erez-mdi/models"
)

// Surface is a drawing target in window-relative pixels. Every method
// clips to Bounds.
type Surface interface {
	Bounds() image.Rectangle
	Fill(r image.Rectangle, c models.Color)
	// Frame strokes a one pixel outline just inside r.
	Frame(r image.Rectangle, c models.Color)
	// DrawIcon draws icon scaled into r.
	DrawIcon(icon models.Icon, r image.Rectangle) error
	// MeasureText returns the advance and line height of s in the title
	// font.
	MeasureText(s string) image.Point
	// DrawText draws s in the title font with its top-left at pt.
	DrawText(pt image.Point, s string, c models.Color) error
	// DrawGlyph draws a symbol-font glyph centred in r.
	DrawGlyph(g rune, r image.Rectangle, c models.Color) error
	Release()
}

// Offscreen is a Surface that can be copied onto another one.
type Offscreen interface {
	Surface
	// Present copies the buffer onto dst at the same coordinates, leaving
	// the pixels of dst inside exclude untouched.
	Present(dst Surface, exclude image.Rectangle) error
}

// Symbol-font code points for the caption buttons.
const (
	GlyphMinimize rune = ''
	GlyphMaximize rune = ''
	GlyphRestore  rune = ''
	GlyphClose    rune = ''
)

// GlyphFor returns the glyph drawn on b.
func GlyphFor(b models.ButtonID, maximized bool) rune {
	switch b {
	case models.ButtonMinimize:
		return GlyphMinimize
	case models.ButtonMaxRestore:
		if maximized {
			return GlyphRestore
		}
		return GlyphMaximize
	case models.ButtonClose:
		return GlyphClose
	}
	return 0
}
