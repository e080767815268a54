package models

import "fmt"

// Color is a 32-bit RGBA colour in 0xRRGGBBAA order.
type Color uint32

// RGBA8 returns the colour's components.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// COLORREF returns the colour in Win32 0x00BBGGRR form.
func (c Color) COLORREF() uint32 {
	r, g, b, _ := c.RGBA8()
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16
}

func (c Color) String() string {
	r, g, b, a := c.RGBA8()
	if a == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", r, g, b)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", r, g, b, a)
}

// Theme holds every colour the chrome renderer uses.
type Theme struct {
	CaptionBackground Color
	ActiveBorder      Color
	InactiveBorder    Color
	ActiveTitle       Color
	InactiveTitle     Color
	ButtonHover       Color
	ButtonPressed     Color
	Glyph             Color
}

// ButtonBackground returns the fill for a button in the given visual.
func (t Theme) ButtonBackground(v ButtonVisual) Color {
	switch v {
	case VisualHover:
		return t.ButtonHover
	case VisualPressed:
		return t.ButtonPressed
	}
	return t.CaptionBackground
}

// Border returns the frame stroke colour.
func (t Theme) Border(active bool) Color {
	if active {
		return t.ActiveBorder
	}
	return t.InactiveBorder
}

// Title returns the caption text colour.
func (t Theme) Title(active bool) Color {
	if active {
		return t.ActiveTitle
	}
	return t.InactiveTitle
}

// LightTheme is the built-in light palette.
var LightTheme = Theme{
	CaptionBackground: 0xF3F3F3FF,
	ActiveBorder:      0x0078D4FF,
	InactiveBorder:    0xAAAAAAFF,
	ActiveTitle:       0x1A1A1AFF,
	InactiveTitle:     0x8A8A8AFF,
	ButtonHover:       0xE0E0E0FF,
	ButtonPressed:     0xC8C8C8FF,
	Glyph:             0x333333FF,
}

// DarkTheme is the built-in dark palette.
var DarkTheme = Theme{
	CaptionBackground: 0x202020FF,
	ActiveBorder:      0x4CC2FFFF,
	InactiveBorder:    0x555555FF,
	ActiveTitle:       0xEEEEEEFF,
	InactiveTitle:     0x888888FF,
	ButtonHover:       0x3A3A3AFF,
	ButtonPressed:     0x505050FF,
	Glyph:             0xCCCCCCFF,
}
