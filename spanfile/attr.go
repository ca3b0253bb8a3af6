// Package spanfile turns highlight spans into the style runs accepted
// by an edwood window's spans file, and parses them back.
//
// A spans file write is a sequence of lines
//
//	offset length fg [bg] [flags...]
//
// describing contiguous runs of characters. Colors are "#rrggbb" or "-"
// for the window default; flags are bold, italic and hidden.
package spanfile

import (
	"fmt"
	"image/color"
	"strconv"
)

// Attr is the styling of a run. The zero value is the window default.
type Attr struct {
	Fg     color.Color // nil = default foreground
	Bg     color.Color // nil = default background
	Bold   bool
	Italic bool
	Hidden bool
}

// Equal reports whether a and b style text identically.
func (a Attr) Equal(b Attr) bool {
	return colorEqual(a.Fg, b.Fg) &&
		colorEqual(a.Bg, b.Bg) &&
		a.Bold == b.Bold &&
		a.Italic == b.Italic &&
		a.Hidden == b.Hidden
}

func colorEqual(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

// ParseColor parses "#rrggbb", or "-" for the default color (nil).
func ParseColor(s string) (color.Color, error) {
	if s == "-" {
		return nil, nil
	}
	if len(s) != 7 || s[0] != '#' {
		return nil, fmt.Errorf("bad color value: %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return nil, fmt.Errorf("bad color value: %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// FormatColor is the inverse of ParseColor.
func FormatColor(c color.Color) string {
	if c == nil {
		return "-"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
