package raster

import (
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/NaveLIL/erez-mdi/chrome"
	"github.com/NaveLIL/erez-mdi/models"
)

const (
	red   models.Color = 0xFF0000FF
	green models.Color = 0x00FF00FF
	blue  models.Color = 0x0000FFFF
)

func pixel(c *Canvas, x, y int) models.Color {
	p := c.RGBA().RGBAAt(x, y)
	return models.Color(uint32(p.R)<<24 | uint32(p.G)<<16 | uint32(p.B)<<8 | uint32(p.A))
}

func TestFillClips(t *testing.T) {
	c := NewCanvas(image.Rect(0, 0, 10, 10), nil)
	c.Fill(image.Rect(-5, -5, 3, 3), red)

	if got := pixel(c, 2, 2); got != red {
		t.Errorf("Expected %s at (2,2), got %s", red, got)
	}
	if got := pixel(c, 3, 3); got != 0 {
		t.Errorf("Expected transparent at (3,3), got %s", got)
	}
}

func TestFrameIsOnePixel(t *testing.T) {
	c := NewCanvas(image.Rect(0, 0, 10, 10), nil)
	c.Frame(image.Rect(2, 2, 8, 8), blue)

	for _, p := range []image.Point{{2, 2}, {7, 2}, {2, 7}, {7, 7}, {5, 2}, {2, 5}} {
		if got := pixel(c, p.X, p.Y); got != blue {
			t.Errorf("Expected outline at %v, got %s", p, got)
		}
	}
	for _, p := range []image.Point{{3, 3}, {6, 6}, {1, 1}, {8, 8}} {
		if got := pixel(c, p.X, p.Y); got != 0 {
			t.Errorf("Expected nothing at %v, got %s", p, got)
		}
	}
}

func TestSubtract(t *testing.T) {
	r := image.Rect(0, 0, 10, 10)

	if got := Subtract(r, image.Rectangle{}); !cmp.Equal(got, []image.Rectangle{r}) {
		t.Errorf("Expected whole rect for empty exclude, got %v", got)
	}
	if got := Subtract(r, r); len(got) != 0 {
		t.Errorf("Expected nothing left, got %v", got)
	}

	got := Subtract(r, image.Rect(2, 3, 8, 7))
	want := []image.Rectangle{
		image.Rect(0, 0, 10, 3),
		image.Rect(0, 7, 10, 10),
		image.Rect(0, 3, 2, 7),
		image.Rect(8, 3, 10, 7),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Subtract mismatch (-want +got):\n%s", diff)
	}
}

func TestPresentExcludes(t *testing.T) {
	dst := NewCanvas(image.Rect(0, 0, 20, 20), nil)
	dst.Fill(dst.Bounds(), green)

	buf := NewCanvas(image.Rect(0, 0, 20, 20), nil)
	buf.Fill(buf.Bounds(), red)

	hole := image.Rect(5, 5, 15, 15)
	if err := buf.Present(dst, hole); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if got := pixel(dst, 0, 0); got != red {
		t.Errorf("Expected red outside hole, got %s", got)
	}
	if got := pixel(dst, 10, 10); got != green {
		t.Errorf("Expected untouched green inside hole, got %s", got)
	}
	if got := pixel(dst, 14, 14); got != green {
		t.Errorf("Expected untouched green at hole edge, got %s", got)
	}
	if got := pixel(dst, 15, 15); got != red {
		t.Errorf("Expected red just past hole, got %s", got)
	}
}

func TestDrawGlyph(t *testing.T) {
	r := image.Rect(0, 0, 45, 30)
	for _, g := range []rune{chrome.GlyphMinimize, chrome.GlyphMaximize, chrome.GlyphRestore, chrome.GlyphClose} {
		c := NewCanvas(r, nil)
		if err := c.DrawGlyph(g, r, blue); err != nil {
			t.Errorf("%U: unexpected error %v", g, err)
			continue
		}
		inked := 0
		b := c.RGBA().Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if pixel(c, x, y) == blue {
					inked++
				}
			}
		}
		if inked == 0 {
			t.Errorf("%U: Expected glyph pixels, got none", g)
		}
	}

	c := NewCanvas(r, nil)
	if err := c.DrawGlyph('x', r, blue); !errors.Is(err, ErrNoGlyph) {
		t.Errorf("Expected ErrNoGlyph, got %v", err)
	}
}

func TestDrawIcon(t *testing.T) {
	icons := NewIconSet()
	id := icons.Register(DocumentIcon(16, blue))
	c := NewCanvas(image.Rect(0, 0, 32, 32), icons)

	if err := c.DrawIcon(id, image.Rect(8, 8, 24, 24)); err != nil {
		t.Fatalf("DrawIcon: %v", err)
	}
	if got := pixel(c, 0, 0); got != 0 {
		t.Errorf("Expected icon confined to its rect, got %s at origin", got)
	}
	if err := c.DrawIcon(id+1, image.Rect(0, 0, 16, 16)); !errors.Is(err, ErrNoIcon) {
		t.Errorf("Expected ErrNoIcon, got %v", err)
	}
}

func TestMeasureAndDrawText(t *testing.T) {
	c := NewCanvas(image.Rect(0, 0, 100, 20), nil)

	// basicfont.Face7x13 advances 7 pixels per rune.
	if got := c.MeasureText("abc"); got != image.Pt(21, 13) {
		t.Errorf("Expected (21,13), got %v", got)
	}
	if err := c.DrawText(image.Pt(2, 2), "Hi", red); err != nil {
		t.Fatalf("DrawText: %v", err)
	}

	c.Release()
	if !c.Released() {
		t.Error("Expected canvas to be released")
	}
	if err := c.DrawText(image.Pt(0, 0), "x", red); !errors.Is(err, ErrReleased) {
		t.Errorf("Expected ErrReleased, got %v", err)
	}
}

func TestReleasedCanvasDrawsNothing(t *testing.T) {
	icons := NewIconSet()
	icon := icons.Register(DocumentIcon(8, red))
	c := NewCanvas(image.Rect(0, 0, 20, 20), icons)
	c.Release()

	c.Fill(image.Rect(0, 0, 20, 20), red)
	c.Frame(image.Rect(0, 0, 20, 20), blue)
	errs := []error{
		c.DrawIcon(icon, image.Rect(0, 0, 8, 8)),
		c.DrawText(image.Pt(0, 0), "x", red),
		c.DrawGlyph(chrome.GlyphClose, image.Rect(0, 0, 20, 20), green),
		c.Present(NewCanvas(image.Rect(0, 0, 20, 20), nil), image.Rectangle{}),
	}
	for i, err := range errs {
		if !errors.Is(err, ErrReleased) {
			t.Errorf("call %d: expected ErrReleased, got %v", i, err)
		}
	}
	for _, p := range []image.Point{{0, 0}, {10, 10}, {19, 0}} {
		if got := pixel(c, p.X, p.Y); got != 0 {
			t.Errorf("Expected untouched pixel at %v, got %s", p, got)
		}
	}
}
