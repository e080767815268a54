package raster

import (
	"image"

	"github.com/NaveLIL/erez-mdi/chrome"
	"github.com/NaveLIL/erez-mdi/models"
)

// glyphShapes draws the caption glyphs as hairline shapes sized like the
// symbol font renders them at 10pt.
var glyphShapes = map[rune]func(c *Canvas, box image.Rectangle, col models.Color){
	chrome.GlyphMinimize: func(c *Canvas, box image.Rectangle, col models.Color) {
		y := box.Min.Y + box.Dy()/2
		c.Fill(image.Rect(box.Min.X, y, box.Max.X, y+1), col)
	},
	chrome.GlyphMaximize: func(c *Canvas, box image.Rectangle, col models.Color) {
		c.Frame(box, col)
	},
	chrome.GlyphRestore: func(c *Canvas, box image.Rectangle, col models.Color) {
		off := box.Dx() / 5
		if off < 2 {
			off = 2
		}
		front := image.Rect(box.Min.X, box.Min.Y+off, box.Max.X-off, box.Max.Y)
		c.Frame(front, col)
		// Only the top and right edges of the back window show.
		c.Fill(image.Rect(box.Min.X+off, box.Min.Y, box.Max.X, box.Min.Y+1), col)
		c.Fill(image.Rect(box.Max.X-1, box.Min.Y, box.Max.X, box.Max.Y-off), col)
	},
	chrome.GlyphClose: func(c *Canvas, box image.Rectangle, col models.Color) {
		n := box.Dx()
		if box.Dy() < n {
			n = box.Dy()
		}
		for i := 0; i < n; i++ {
			c.Fill(image.Rect(box.Min.X+i, box.Min.Y+i, box.Min.X+i+1, box.Min.Y+i+1), col)
			c.Fill(image.Rect(box.Min.X+n-1-i, box.Min.Y+i, box.Min.X+n-i, box.Min.Y+i+1), col)
		}
	},
}

// glyphBox is the square, centred in r, that a glyph occupies.
func glyphBox(r image.Rectangle) image.Rectangle {
	side := r.Dy() / 3
	if w := r.Dx() / 3; w < side {
		side = w
	}
	if side < 5 {
		side = 5
	}
	x := r.Min.X + (r.Dx()-side)/2
	y := r.Min.Y + (r.Dy()-side)/2
	return image.Rect(x, y, x+side, y+side)
}
