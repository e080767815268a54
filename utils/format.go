// Package utils provides small conversions shared by the chrome core, its
// hosts and the workspace.
package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NaveLIL/erez-mdi/models"
)

// BaseDPI is the DPI at which platform metrics are specified.
const BaseDPI = 96

// MulDiv computes a*b/c rounded to the nearest integer, half away from zero.
func MulDiv(a, b, c int) int {
	if c == 0 {
		return -1
	}
	n := int64(a) * int64(b)
	d := int64(c)
	if (n < 0) != (d < 0) {
		return int((n - d/2) / d)
	}
	return int((n + d/2) / d)
}

// ScaleForDPI converts a length specified at 96 DPI to the given DPI.
// Non-positive DPI values are treated as 96.
func ScaleForDPI(v, dpi int) int {
	if dpi <= 0 {
		dpi = BaseDPI
	}
	return MulDiv(v, dpi, BaseDPI)
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA" (the leading '#' is optional).
func ParseHexColor(s string) (models.Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 6:
		h += "FF"
	case 8:
	default:
		return 0, fmt.Errorf("invalid colour %q: want #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return models.Color(v), nil
}

// TruncateString truncates a string to a maximum number of runes.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// ClampInt constrains an integer value between min and max.
func ClampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// FormatHandle renders a window handle the way logs and exports show it.
func FormatHandle(h models.Handle) string {
	return fmt.Sprintf("0x%08X", uint64(h))
}
