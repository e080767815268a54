package main

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/NaveLIL/erez-mdi/chrome"
	"github.com/NaveLIL/erez-mdi/models"
	"github.com/NaveLIL/erez-mdi/utils"
)

// windowsMetrics are the Windows 10 defaults at 96 DPI.
var windowsMetrics = map[chrome.Metric]int{
	chrome.MetricSizeFrameX:         4,
	chrome.MetricSizeFrameY:         4,
	chrome.MetricPaddedBorder:       4,
	chrome.MetricCaptionHeight:      23,
	chrome.MetricCaptionButtonWidth: 36,
	chrome.MetricSmallIconX:         16,
	chrome.MetricSmallIconY:         16,
	chrome.MetricMenuButtonWidth:    19,
}

// staticGeometry describes one imaginary window at the origin.
type staticGeometry struct {
	size image.Point
	dpi  int
}

func (g staticGeometry) WindowRect(chrome.Handle) image.Rectangle {
	return image.Rectangle{Max: g.size}
}

func (g staticGeometry) DPI(chrome.Handle) int { return g.dpi }

func (g staticGeometry) SystemMetric(m chrome.Metric, dpi int) int {
	return utils.ScaleForDPI(windowsMetrics[m], dpi)
}

// rect is a rectangle as it appears in the YAML dump.
type rect [4]int

func toRect(r image.Rectangle) rect {
	return rect{r.Min.X, r.Min.Y, r.Max.X, r.Max.Y}
}

// layoutDump is the YAML form of a chrome.Layout.
type layoutDump struct {
	DPI           int             `yaml:"dpi"`
	Width         int             `yaml:"width"`
	Height        int             `yaml:"height"`
	BorderX       int             `yaml:"border_x"`
	BorderY       int             `yaml:"border_y"`
	CaptionHeight int             `yaml:"caption_height"`
	ButtonWidth   int             `yaml:"button_width"`
	MinWidth      int             `yaml:"min_width"`
	Caption       rect            `yaml:"caption"`
	Client        rect            `yaml:"client"`
	Icon          rect            `yaml:"icon"`
	SystemMenu    rect            `yaml:"system_menu"`
	Title         rect            `yaml:"title"`
	Buttons       map[string]rect `yaml:"buttons"`
	Regions       []regionSample  `yaml:"regions,omitempty"`
}

// regionSample is the hit-test answer for one probe point.
type regionSample struct {
	Point  [2]int `yaml:"point"`
	Region string `yaml:"region"`
}

func dumpLayout(l chrome.Layout, probes []image.Point) layoutDump {
	d := layoutDump{
		DPI:           l.DPI,
		Width:         l.Width,
		Height:        l.Height,
		BorderX:       l.BorderX,
		BorderY:       l.BorderY,
		CaptionHeight: l.CaptionHeight,
		ButtonWidth:   l.ButtonWidth,
		MinWidth:      l.MinWidth(),
		Caption:       toRect(l.Caption()),
		Client:        toRect(l.Client()),
		Icon:          toRect(l.IconRect()),
		SystemMenu:    toRect(l.SystemMenuRect()),
		Title:         toRect(l.TitleRect()),
		Buttons:       make(map[string]rect, len(models.Buttons)),
	}
	for _, b := range models.Buttons {
		d.Buttons[b.String()] = toRect(l.ButtonRect(b))
	}
	for _, p := range probes {
		d.Regions = append(d.Regions, regionSample{
			Point:  [2]int{p.X, p.Y},
			Region: chrome.HitTest(l, l.Window.Min.Add(p)).String(),
		})
	}
	return d
}

// parseButton accepts the names printed by models.ButtonID.String.
func parseButton(s string) (models.ButtonID, bool) {
	for _, b := range []models.ButtonID{models.ButtonNone, models.ButtonMinimize, models.ButtonMaxRestore, models.ButtonClose} {
		if b.String() == s {
			return b, true
		}
	}
	return models.ButtonNone, false
}

// defaultTitlePoints matches the configuration default.
const defaultTitlePoints = 9

// titleFace returns Go Regular at points, rendered for dpi.
func titleFace(points, dpi int) (font.Face, error) {
	if points <= 0 {
		points = defaultTitlePoints
	}
	if dpi <= 0 {
		dpi = utils.BaseDPI
	}
	ft, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse go regular: %w", err)
	}
	return opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    float64(points),
		DPI:     float64(dpi),
		Hinting: font.HintingFull,
	})
}
