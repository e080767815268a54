// chromedump computes the chrome of an imaginary document window without a
// windowing system. It prints the layout as YAML and can render the chrome
// to a PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/NaveLIL/erez-mdi/chrome"
	"github.com/NaveLIL/erez-mdi/config"
	"github.com/NaveLIL/erez-mdi/logger"
	"github.com/NaveLIL/erez-mdi/raster"
)

func main() {
	width := flag.Int("width", 400, "Window width in pixels")
	height := flag.Int("height", 240, "Window height in pixels")
	dpi := flag.Int("dpi", 96, "Window DPI")
	title := flag.String("title", "Document 1", "Caption text")
	configPath := flag.String("config", "", "Take the palette from this configuration file")
	theme := flag.String("theme", "", "Base palette (light or dark); overrides the configuration")
	inactive := flag.Bool("inactive", false, "Draw the inactive look")
	maximized := flag.Bool("maximized", false, "Draw the restore glyph")
	hover := flag.String("hover", "none", "Hovered button (minimize, maxrestore, close)")
	pressed := flag.String("pressed", "none", "Pressed button (minimize, maxrestore, close)")
	probes := flag.String("probe", "", "Semicolon-separated x,y window points to hit-test")
	out := flag.String("png", "", "Write the rendered chrome to this PNG file")
	goFont := flag.Bool("gofont", false, "Draw the title in Go Regular at the configured title size")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log := logger.Get()
	log.SetOutput(os.Stderr)
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	cc, err := loadChrome(*configPath, *theme)
	if err != nil {
		fatal("config: %v", err)
	}
	palette, err := cc.Palette()
	if err != nil {
		fatal("palette: %v", err)
	}
	hb, ok := parseButton(*hover)
	if !ok {
		fatal("unknown button %q", *hover)
	}
	pb, ok := parseButton(*pressed)
	if !ok {
		fatal("unknown button %q", *pressed)
	}
	points, err := parseProbes(*probes)
	if err != nil {
		fatal("probe: %v", err)
	}

	l := chrome.ComputeLayout(staticGeometry{size: image.Pt(*width, *height), dpi: *dpi}, 1)
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(dumpLayout(l, points)); err != nil {
		fatal("encode layout: %v", err)
	}
	enc.Close()

	if *out == "" {
		return
	}

	icons := raster.NewIconSet()
	icon := icons.Register(raster.DocumentIcon(l.IconWidth, palette.Title(true)))
	canvas := raster.NewCanvas(l.Bounds(), icons)
	if *goFont {
		face, err := titleFace(cc.TitleSize, l.DPI)
		if err != nil {
			fatal("title font: %v", err)
		}
		defer face.Close()
		canvas.SetFace(face)
	}
	canvas.Fill(l.Client(), 0xFFFFFFFF)

	r := chrome.NewRenderer(palette, log.Component("chromedump"))
	r.Compose(canvas, l, chrome.View{
		Title:     *title,
		Icon:      icon,
		Active:    !*inactive,
		Maximized: *maximized,
		Hover:     hb,
		Pressed:   pb,
	})

	f, err := os.Create(*out)
	if err != nil {
		fatal("create %s: %v", *out, err)
	}
	defer f.Close()
	if err := png.Encode(f, canvas.RGBA()); err != nil {
		fatal("encode png: %v", err)
	}
	log.Infof("Chrome written to %s", *out)
}

func loadChrome(path, theme string) (config.ChromeConfig, error) {
	cc := config.ChromeConfig{Theme: "light", TitleSize: defaultTitlePoints}
	if path != "" {
		m := config.NewManager()
		if err := m.Load(path); err != nil {
			return cc, err
		}
		cc = m.Get().Chrome
	}
	if theme != "" {
		cc.Theme = theme
	}
	return cc, nil
}

// parseProbes reads "x,y;x,y".
func parseProbes(s string) ([]image.Point, error) {
	var pts []image.Point
	for _, p := range strings.Split(s, ";") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		xs, ys, ok := strings.Cut(p, ",")
		if !ok {
			return nil, fmt.Errorf("%q is not x,y", p)
		}
		x, err := strconv.Atoi(strings.TrimSpace(xs))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		y, err := strconv.Atoi(strings.TrimSpace(ys))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		pts = append(pts, image.Pt(x, y))
	}
	return pts, nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "chromedump: "+format+"\n", args...)
	os.Exit(1)
}
