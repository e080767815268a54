package raster

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"

	"github.com/NaveLIL/erez-mdi/models"
)

// IconSet maps icon handles to images. The zero value is not usable; call
// NewIconSet.
type IconSet struct {
	mu     sync.RWMutex
	images map[models.Icon]image.Image
	next   models.Icon
}

// NewIconSet creates an empty set.
func NewIconSet() *IconSet {
	return &IconSet{
		images: make(map[models.Icon]image.Image),
		next:   1,
	}
}

// Register adds img and returns its handle.
func (s *IconSet) Register(img image.Image) models.Icon {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	s.images[id] = img
	return id
}

// Lookup returns the image for id. A nil set holds nothing.
func (s *IconSet) Lookup(id models.Icon) (image.Image, bool) {
	if s == nil || id == 0 {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[id]
	return img, ok
}

// DocumentIcon draws a small page-with-folded-corner icon.
func DocumentIcon(size int, ink models.Color) image.Image {
	if size < 8 {
		size = 8
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	page := Wrap(img, nil)

	fold := size / 4
	body := image.Rect(size/8, 0, size-size/8, size)
	draw.Draw(img, body, image.NewUniform(color.White), image.Point{}, draw.Src)
	page.Frame(body, ink)
	// Clear the corner and draw the fold diagonal.
	corner := image.Rect(body.Max.X-fold, body.Min.Y, body.Max.X, body.Min.Y+fold)
	draw.Draw(img, corner, image.Transparent, image.Point{}, draw.Src)
	for i := 0; i < fold; i++ {
		img.Set(body.Max.X-fold+i, body.Min.Y+i, ToRGBA(ink))
	}
	page.Fill(image.Rect(body.Max.X-fold, body.Min.Y+fold-1, body.Max.X, body.Min.Y+fold), ink)
	page.Fill(image.Rect(body.Max.X-fold, body.Min.Y, body.Max.X-fold+1, body.Min.Y+fold), ink)
	return img
}
