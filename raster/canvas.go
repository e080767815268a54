// Package raster implements the chrome drawing surface on an in-memory
// image.RGBA. It backs headless rendering and the test host.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/NaveLIL/erez-mdi/chrome"
	"github.com/NaveLIL/erez-mdi/models"
)

var (
	// ErrNoIcon is returned by DrawIcon for icons missing from the set.
	ErrNoIcon = errors.New("raster: unknown icon")
	// ErrNoGlyph is returned by DrawGlyph for runes it cannot draw.
	ErrNoGlyph = errors.New("raster: unknown glyph")
	// ErrReleased is returned when drawing on or presenting a released
	// canvas. Fill and Frame have no error and draw nothing instead.
	ErrReleased = errors.New("raster: canvas released")
)

// Canvas is a chrome.Offscreen over an image.RGBA.
type Canvas struct {
	img      *image.RGBA
	face     font.Face
	icons    *IconSet
	released bool
}

var _ chrome.Offscreen = (*Canvas)(nil)

// NewCanvas allocates a transparent canvas covering r. icons may be nil.
func NewCanvas(r image.Rectangle, icons *IconSet) *Canvas {
	return Wrap(image.NewRGBA(r), icons)
}

// Wrap draws onto an existing image.
func Wrap(img *image.RGBA, icons *IconSet) *Canvas {
	return &Canvas{
		img:   img,
		face:  basicfont.Face7x13,
		icons: icons,
	}
}

// SetFace replaces the title font.
func (c *Canvas) SetFace(f font.Face) {
	if f != nil {
		c.face = f
	}
}

// RGBA returns the backing image.
func (c *Canvas) RGBA() *image.RGBA {
	return c.img
}

// Released reports whether Release was called.
func (c *Canvas) Released() bool {
	return c.released
}

func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// ToRGBA converts a chrome colour to a Go colour.
func ToRGBA(col models.Color) color.RGBA {
	r, g, b, a := col.RGBA8()
	return color.RGBA{R: r, G: g, B: b, A: a}
}

func (c *Canvas) Fill(r image.Rectangle, col models.Color) {
	r = r.Intersect(c.img.Bounds())
	if c.released || r.Empty() {
		return
	}
	draw.Draw(c.img, r, image.NewUniform(ToRGBA(col)), image.Point{}, draw.Src)
}

func (c *Canvas) Frame(r image.Rectangle, col models.Color) {
	r = r.Canon()
	if c.released || r.Empty() {
		return
	}
	c.Fill(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), col)
	c.Fill(image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), col)
	c.Fill(image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), col)
	c.Fill(image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), col)
}

func (c *Canvas) DrawIcon(icon models.Icon, r image.Rectangle) error {
	if c.released {
		return ErrReleased
	}
	src, ok := c.icons.Lookup(icon)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoIcon, icon)
	}
	draw.ApproxBiLinear.Scale(c.img, r, src, src.Bounds(), draw.Over, nil)
	return nil
}

func (c *Canvas) MeasureText(s string) image.Point {
	adv := font.MeasureString(c.face, s)
	return image.Pt(adv.Ceil(), c.face.Metrics().Height.Ceil())
}

func (c *Canvas) DrawText(pt image.Point, s string, col models.Color) error {
	if c.released {
		return ErrReleased
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(ToRGBA(col)),
		Face: c.face,
		Dot:  fixed.P(pt.X, pt.Y+c.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
	return nil
}

func (c *Canvas) DrawGlyph(g rune, r image.Rectangle, col models.Color) error {
	if c.released {
		return ErrReleased
	}
	shape, ok := glyphShapes[g]
	if !ok {
		return fmt.Errorf("%w: %U", ErrNoGlyph, g)
	}
	shape(c, glyphBox(r), col)
	return nil
}

func (c *Canvas) Release() {
	c.released = true
}

// Present copies the canvas onto dst, which must expose its pixels through
// an RGBA method, skipping exclude.
func (c *Canvas) Present(dst chrome.Surface, exclude image.Rectangle) error {
	if c.released {
		return ErrReleased
	}
	target, ok := dst.(interface{ RGBA() *image.RGBA })
	if !ok {
		return fmt.Errorf("raster: cannot present onto %T", dst)
	}
	img := target.RGBA()
	for _, r := range Subtract(c.img.Bounds().Intersect(img.Bounds()), exclude) {
		draw.Draw(img, r, c.img, r.Min, draw.Src)
	}
	return nil
}

// Subtract returns up to four rectangles covering r minus ex.
func Subtract(r, ex image.Rectangle) []image.Rectangle {
	ex = ex.Intersect(r)
	if ex.Empty() {
		if r.Empty() {
			return nil
		}
		return []image.Rectangle{r}
	}
	var out []image.Rectangle
	add := func(x image.Rectangle) {
		if !x.Empty() {
			out = append(out, x)
		}
	}
	add(image.Rect(r.Min.X, r.Min.Y, r.Max.X, ex.Min.Y))
	add(image.Rect(r.Min.X, ex.Max.Y, r.Max.X, r.Max.Y))
	add(image.Rect(r.Min.X, ex.Min.Y, ex.Min.X, ex.Max.Y))
	add(image.Rect(ex.Max.X, ex.Min.Y, r.Max.X, ex.Max.Y))
	return out
}
