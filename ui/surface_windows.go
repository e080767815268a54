//go:build windows

package ui

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/NaveLIL/erez-mdi/chrome"
	"github.com/NaveLIL/erez-mdi/models"
)

var (
	errNoIcon      = errors.New("ui: window has no icon")
	errDrawFailed  = errors.New("ui: gdi call failed")
	errForeignDest = errors.New("ui: present target is not a gdi surface")
)

// fontPair holds the GDI fonts for one DPI.
type fontPair struct {
	title uintptr
	glyph uintptr
}

// gdiSurface draws on a device context in window-relative pixels.
type gdiSurface struct {
	hdc    uintptr
	hwnd   uintptr // set when hdc came from GetWindowDC
	bounds image.Rectangle
	fonts  fontPair
}

func (s *gdiSurface) Bounds() image.Rectangle { return s.bounds }

func toRECT(r image.Rectangle) RECT {
	return RECT{Left: int32(r.Min.X), Top: int32(r.Min.Y), Right: int32(r.Max.X), Bottom: int32(r.Max.Y)}
}

func (s *gdiSurface) withBrush(c models.Color, fn func(brush uintptr)) {
	brush, _, _ := procCreateSolidBrush.Call(uintptr(c.COLORREF()))
	if brush == 0 {
		return
	}
	defer procDeleteObject.Call(brush)
	fn(brush)
}

func (s *gdiSurface) Fill(r image.Rectangle, c models.Color) {
	r = r.Intersect(s.bounds)
	if r.Empty() {
		return
	}
	rc := toRECT(r)
	s.withBrush(c, func(brush uintptr) {
		procFillRect.Call(s.hdc, uintptr(unsafe.Pointer(&rc)), brush)
	})
}

func (s *gdiSurface) Frame(r image.Rectangle, c models.Color) {
	if r.Empty() {
		return
	}
	rc := toRECT(r)
	s.withBrush(c, func(brush uintptr) {
		procFrameRect.Call(s.hdc, uintptr(unsafe.Pointer(&rc)), brush)
	})
}

func (s *gdiSurface) DrawIcon(icon models.Icon, r image.Rectangle) error {
	if icon == 0 {
		return errNoIcon
	}
	ok, _, err := procDrawIconEx.Call(s.hdc,
		uintptr(r.Min.X), uintptr(r.Min.Y), uintptr(icon),
		uintptr(r.Dx()), uintptr(r.Dy()), 0, 0, DI_NORMAL)
	if ok == 0 {
		return fmt.Errorf("DrawIconEx: %w", err)
	}
	return nil
}

// selectFont selects f and returns the previously selected object.
func (s *gdiSurface) selectFont(f uintptr) uintptr {
	if f == 0 {
		return 0
	}
	old, _, _ := procSelectObject.Call(s.hdc, f)
	return old
}

func (s *gdiSurface) restore(old uintptr) {
	if old != 0 {
		procSelectObject.Call(s.hdc, old)
	}
}

func (s *gdiSurface) extent(f uintptr, text []uint16) image.Point {
	if len(text) == 0 {
		return image.Point{}
	}
	old := s.selectFont(f)
	defer s.restore(old)
	var sz SIZE
	procGetTextExtentPoint32W.Call(s.hdc, uintptr(unsafe.Pointer(&text[0])), uintptr(len(text)), uintptr(unsafe.Pointer(&sz)))
	return image.Pt(int(sz.CX), int(sz.CY))
}

func (s *gdiSurface) MeasureText(text string) image.Point {
	return s.extent(s.fonts.title, utf16Text(text))
}

func (s *gdiSurface) textOut(f uintptr, pt image.Point, text []uint16, c models.Color) error {
	if len(text) == 0 {
		return nil
	}
	old := s.selectFont(f)
	defer s.restore(old)
	procSetBkMode.Call(s.hdc, TRANSPARENT)
	procSetTextColor.Call(s.hdc, uintptr(c.COLORREF()))
	ok, _, _ := procTextOutW.Call(s.hdc, uintptr(pt.X), uintptr(pt.Y), uintptr(unsafe.Pointer(&text[0])), uintptr(len(text)))
	if ok == 0 {
		return fmt.Errorf("TextOutW: %w", errDrawFailed)
	}
	return nil
}

func (s *gdiSurface) DrawText(pt image.Point, text string, c models.Color) error {
	return s.textOut(s.fonts.title, pt, utf16Text(text), c)
}

func (s *gdiSurface) DrawGlyph(g rune, r image.Rectangle, c models.Color) error {
	if s.fonts.glyph == 0 {
		return fmt.Errorf("glyph font: %w", errDrawFailed)
	}
	text := utf16Text(string(g))
	sz := s.extent(s.fonts.glyph, text)
	pt := image.Pt(r.Min.X+(r.Dx()-sz.X)/2, r.Min.Y+(r.Dy()-sz.Y)/2)
	return s.textOut(s.fonts.glyph, pt, text, c)
}

func (s *gdiSurface) Release() {
	if s.hdc == 0 {
		return
	}
	if s.hwnd != 0 {
		procReleaseDC.Call(s.hwnd, s.hdc)
	}
	s.hdc = 0
}

// gdiOffscreen is a memory DC with a compatible bitmap selected into it.
type gdiOffscreen struct {
	gdiSurface
	bitmap    uintptr
	oldBitmap uintptr
}

func newOffscreen(hwnd uintptr, size image.Point, fonts fontPair) (*gdiOffscreen, error) {
	ref, _, _ := procGetWindowDC.Call(hwnd)
	if ref == 0 {
		return nil, chrome.ErrNoSurface
	}
	defer procReleaseDC.Call(hwnd, ref)

	mem, _, _ := procCreateCompatibleDC.Call(ref)
	if mem == 0 {
		return nil, fmt.Errorf("CreateCompatibleDC: %w", chrome.ErrNoSurface)
	}
	bmp, _, _ := procCreateCompatibleBitmap.Call(ref, uintptr(size.X), uintptr(size.Y))
	if bmp == 0 {
		procDeleteDC.Call(mem)
		return nil, fmt.Errorf("CreateCompatibleBitmap: %w", chrome.ErrNoSurface)
	}
	old, _, _ := procSelectObject.Call(mem, bmp)
	return &gdiOffscreen{
		gdiSurface: gdiSurface{hdc: mem, bounds: image.Rectangle{Max: size}, fonts: fonts},
		bitmap:     bmp,
		oldBitmap:  old,
	}, nil
}

// Present blits the buffer onto dst with exclude clipped out, then clears
// the clip again.
func (o *gdiOffscreen) Present(dst chrome.Surface, exclude image.Rectangle) error {
	target, ok := dst.(*gdiSurface)
	if !ok {
		return errForeignDest
	}
	if !exclude.Empty() {
		procExcludeClipRect.Call(target.hdc,
			uintptr(exclude.Min.X), uintptr(exclude.Min.Y),
			uintptr(exclude.Max.X), uintptr(exclude.Max.Y))
		defer procSelectClipRgn.Call(target.hdc, 0)
	}
	ok2, _, err := procBitBlt.Call(target.hdc, 0, 0,
		uintptr(o.bounds.Dx()), uintptr(o.bounds.Dy()),
		o.hdc, 0, 0, SRCCOPY)
	if ok2 == 0 {
		return fmt.Errorf("BitBlt: %w", err)
	}
	return nil
}

func (o *gdiOffscreen) Release() {
	if o.hdc == 0 {
		return
	}
	procSelectObject.Call(o.hdc, o.oldBitmap)
	procDeleteObject.Call(o.bitmap)
	procDeleteDC.Call(o.hdc)
	o.hdc = 0
}
