package chrome_test

import (
	"image"
	"io"
	"os"
	"testing"

	"github.com/NaveLIL/erez-mdi/chrome"
	"github.com/NaveLIL/erez-mdi/chrometest"
	"github.com/NaveLIL/erez-mdi/logger"
	"github.com/NaveLIL/erez-mdi/models"
	"github.com/NaveLIL/erez-mdi/storage"
)

const (
	frame chrome.Handle = 0x10
	doc   chrome.Handle = 0x100
	doc2  chrome.Handle = 0x200

	clientFill models.Color = 0x123456FF
)

var theme = models.LightTheme

func TestMain(m *testing.M) {
	logger.Get().SetOutput(io.Discard)
	os.Exit(m.Run())
}

// newDoc returns a host with one 300×200 document at (100,100).
func newDoc(t *testing.T) (*chrometest.Host, *chrome.Controller, *storage.RingBuffer) {
	t.Helper()
	h := chrometest.New()
	h.AddWindow(doc, image.Rect(100, 100, 400, 300), clientFill)
	hist := storage.NewRingBuffer(16)
	return h, chrome.NewController(h, theme, hist), hist
}

func center(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

func screenPixel(h *chrometest.Host, w chrome.Handle, p image.Point) models.Color {
	c := h.Windows[w].Screen.RGBA().RGBAAt(p.X, p.Y)
	return models.Color(uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A))
}

func hasOp(h *chrometest.Host, op string) bool {
	return opIndex(h, op) >= 0
}

func opIndex(h *chrometest.Host, op string) int {
	for i, o := range h.Ops {
		if o == op {
			return i
		}
	}
	return -1
}
