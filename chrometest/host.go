// Package chrometest provides a scripted chrome host for tests. Every
// window owns a raster "screen" so tests can inspect exactly which pixels
// the controller touched, and every host call is recorded as an op string.
package chrometest

import (
	"errors"
	"fmt"
	"image"

	"github.com/NaveLIL/erez-mdi/chrome"
	"github.com/NaveLIL/erez-mdi/models"
	"github.com/NaveLIL/erez-mdi/raster"
	"github.com/NaveLIL/erez-mdi/utils"
)

// DefaultMetrics are the 96-DPI metrics a new Host starts with. They give
// an 8 pixel border and 45 pixel buttons.
var DefaultMetrics = map[chrome.Metric]int{
	chrome.MetricSizeFrameX:         4,
	chrome.MetricSizeFrameY:         4,
	chrome.MetricPaddedBorder:       4,
	chrome.MetricCaptionHeight:      22,
	chrome.MetricCaptionButtonWidth: 45,
	chrome.MetricSmallIconX:         16,
	chrome.MetricSmallIconY:         16,
	chrome.MetricMenuButtonWidth:    19,
}

// Errors injected by the Fail* switches.
var (
	ErrInjectedSurface   = errors.New("chrometest: surface unavailable")
	ErrInjectedOffscreen = errors.New("chrometest: offscreen unavailable")
	ErrInjectedCapture   = errors.New("chrometest: capture refused")
)

// Window is one fake window.
type Window struct {
	Rect       image.Rectangle
	DPI        int
	Maximized  bool
	Foreground bool
	Title      string
	Icon       models.Icon
	// Parent is the frame for documents.
	Parent chrome.Handle
	// MenuBar is the frame's menu band in screen pixels.
	MenuBar image.Rectangle
	// Screen holds the window's visible pixels, window-relative.
	Screen *raster.Canvas
}

// Step is one scripted event. Do, when set, runs just before the event is
// delivered so a script can move windows or steal capture mid-gesture.
type Step struct {
	Event chrome.Event
	Do    func(h *Host)
}

// Posted is a command the controller queued.
type Posted struct {
	Window  chrome.Handle
	Command models.Command
}

// Host implements chrome.MenuHost.
type Host struct {
	Metrics map[chrome.Metric]int
	Windows map[chrome.Handle]*Window
	Icons   *raster.IconSet

	Script     []Step
	Posted     []Posted
	Dispatched []chrome.Event
	Defaults   []chrome.Message
	// DefaultResult is what DefaultProc returns.
	DefaultResult uintptr
	LeaveRequests int
	Ops           []string

	FailSurface   bool
	FailOffscreen bool
	FailCapture   bool
	// FailSurfaceAfter makes every WindowSurface call after the first n
	// fail. Negative disables it.
	FailSurfaceAfter int

	surfaces int
	capture  chrome.Handle
}

var _ chrome.MenuHost = (*Host)(nil)

// New creates a host with DefaultMetrics and no windows.
func New() *Host {
	m := make(map[chrome.Metric]int, len(DefaultMetrics))
	for k, v := range DefaultMetrics {
		m[k] = v
	}
	return &Host{
		Metrics:          m,
		Windows:          make(map[chrome.Handle]*Window),
		Icons:            raster.NewIconSet(),
		FailSurfaceAfter: -1,
	}
}

// AddWindow registers w at r (screen pixels, 96 DPI) and gives it a
// screen filled with fill.
func (h *Host) AddWindow(w chrome.Handle, r image.Rectangle, fill models.Color) *Window {
	win := &Window{
		Rect:   r,
		DPI:    utils.BaseDPI,
		Screen: raster.NewCanvas(image.Rect(0, 0, r.Dx(), r.Dy()), h.Icons),
	}
	win.Screen.Fill(win.Screen.Bounds(), fill)
	h.Windows[w] = win
	return win
}

// Move shifts w without resizing its screen.
func (h *Host) Move(w chrome.Handle, delta image.Point) {
	h.win(w).Rect = h.win(w).Rect.Add(delta)
}

// Resize changes w's size and reallocates its screen with fill.
func (h *Host) Resize(w chrome.Handle, size image.Point, fill models.Color) {
	win := h.win(w)
	win.Rect = image.Rectangle{Min: win.Rect.Min, Max: win.Rect.Min.Add(size)}
	win.Screen = raster.NewCanvas(image.Rect(0, 0, size.X, size.Y), h.Icons)
	win.Screen.Fill(win.Screen.Bounds(), fill)
}

// StealCapture simulates another window taking the pointer.
func (h *Host) StealCapture() {
	h.capture = 0
	h.op("capture stolen")
}

// Queue appends events to the script.
func (h *Host) Queue(evs ...chrome.Event) {
	for _, ev := range evs {
		h.Script = append(h.Script, Step{Event: ev})
	}
}

// ResetOps clears the op log.
func (h *Host) ResetOps() {
	h.Ops = nil
}

func (h *Host) win(w chrome.Handle) *Window {
	win, ok := h.Windows[w]
	if !ok {
		panic(fmt.Sprintf("chrometest: unknown window %s", utils.FormatHandle(w)))
	}
	return win
}

func (h *Host) op(format string, args ...any) {
	h.Ops = append(h.Ops, fmt.Sprintf(format, args...))
}

func (h *Host) WindowRect(w chrome.Handle) image.Rectangle { return h.win(w).Rect }

func (h *Host) DPI(w chrome.Handle) int { return h.win(w).DPI }

func (h *Host) SystemMetric(m chrome.Metric, dpi int) int {
	return utils.ScaleForDPI(h.Metrics[m], dpi)
}

func (h *Host) IsMaximized(w chrome.Handle) bool  { return h.win(w).Maximized }
func (h *Host) IsForeground(w chrome.Handle) bool { return h.win(w).Foreground }
func (h *Host) Title(w chrome.Handle) string      { return h.win(w).Title }
func (h *Host) Icon(w chrome.Handle) models.Icon  { return h.win(w).Icon }

func (h *Host) WindowSurface(w chrome.Handle) (chrome.Surface, error) {
	h.surfaces++
	if h.FailSurface || (h.FailSurfaceAfter >= 0 && h.surfaces > h.FailSurfaceAfter) {
		h.op("surface %s: failed", utils.FormatHandle(w))
		return nil, ErrInjectedSurface
	}
	h.op("surface %s", utils.FormatHandle(w))
	return &surface{Canvas: h.win(w).Screen, host: h, name: "screen"}, nil
}

func (h *Host) Offscreen(w chrome.Handle, size image.Point) (chrome.Offscreen, error) {
	if h.FailOffscreen {
		h.op("offscreen %s: failed", utils.FormatHandle(w))
		return nil, ErrInjectedOffscreen
	}
	h.op("offscreen %s %v", utils.FormatHandle(w), size)
	c := raster.NewCanvas(image.Rect(0, 0, size.X, size.Y), h.Icons)
	return &surface{Canvas: c, host: h, name: "offscreen"}, nil
}

func (h *Host) SetCapture(w chrome.Handle) error {
	if h.FailCapture {
		h.op("capture %s: refused", utils.FormatHandle(w))
		return ErrInjectedCapture
	}
	h.capture = w
	h.op("capture %s", utils.FormatHandle(w))
	return nil
}

func (h *Host) ReleaseCapture() {
	h.capture = 0
	h.op("release capture")
}

func (h *Host) HasCapture(w chrome.Handle) bool { return w != 0 && h.capture == w }

// Capture returns the window holding capture, or 0.
func (h *Host) Capture() chrome.Handle { return h.capture }

// NextEvent pops the next scripted step. An empty script reads as quit.
func (h *Host) NextEvent() (chrome.Event, bool) {
	if len(h.Script) == 0 {
		return chrome.Event{}, false
	}
	s := h.Script[0]
	h.Script = h.Script[1:]
	if s.Do != nil {
		s.Do(h)
	}
	return s.Event, true
}

func (h *Host) Dispatch(ev chrome.Event) {
	h.Dispatched = append(h.Dispatched, ev)
}

func (h *Host) TrackLeave(w chrome.Handle) {
	h.LeaveRequests++
}

func (h *Host) PostCommand(w chrome.Handle, cmd models.Command) {
	h.Posted = append(h.Posted, Posted{Window: w, Command: cmd})
	h.op("post %s %s", utils.FormatHandle(w), cmd)
}

func (h *Host) DefaultProc(w chrome.Handle, m chrome.Message) uintptr {
	h.Defaults = append(h.Defaults, m)
	h.op("default %s %s", utils.FormatHandle(w), m.Kind)
	return h.DefaultResult
}

func (h *Host) StoreText(w chrome.Handle, text string) {
	h.win(w).Title = text
}

func (h *Host) MenuBarRect(frame chrome.Handle) image.Rectangle {
	return h.win(frame).MenuBar
}

func (h *Host) MaximizedChild(frame chrome.Handle) chrome.Handle {
	for w, win := range h.Windows {
		if win.Parent == frame && win.Maximized {
			return w
		}
	}
	return 0
}

// surface records drawing calls on its host before forwarding them.
type surface struct {
	*raster.Canvas
	host *Host
	name string
}

func (s *surface) Fill(r image.Rectangle, c models.Color) {
	s.host.op("%s fill %v %s", s.name, r, c)
	s.Canvas.Fill(r, c)
}

func (s *surface) Frame(r image.Rectangle, c models.Color) {
	s.host.op("%s frame %v %s", s.name, r, c)
	s.Canvas.Frame(r, c)
}

func (s *surface) DrawIcon(icon models.Icon, r image.Rectangle) error {
	s.host.op("%s icon %d %v", s.name, icon, r)
	return s.Canvas.DrawIcon(icon, r)
}

func (s *surface) DrawText(pt image.Point, text string, c models.Color) error {
	s.host.op("%s text %v %q %s", s.name, pt, text, c)
	return s.Canvas.DrawText(pt, text, c)
}

func (s *surface) DrawGlyph(g rune, r image.Rectangle, c models.Color) error {
	s.host.op("%s glyph %U %v", s.name, g, r)
	return s.Canvas.DrawGlyph(g, r, c)
}

func (s *surface) Present(dst chrome.Surface, exclude image.Rectangle) error {
	s.host.op("%s present exclude %v", s.name, exclude)
	return s.Canvas.Present(dst, exclude)
}

func (s *surface) Release() {
	s.host.op("%s release", s.name)
}
