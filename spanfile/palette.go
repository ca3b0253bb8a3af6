package spanfile

import (
	"image/color"

	"github.com/paul-lalonde/edstyle/style"
)

// Palette maps highlight categories to run styling. Categories missing
// from the palette are drawn in the window default.
type Palette map[style.Category]Attr

// HighlightBg is the default background for occurrences of the
// selected text.
var HighlightBg color.Color = rgb(0xf0f4ff)

func rgb(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// DefaultPalette returns the built-in color scheme.
func DefaultPalette() Palette {
	var (
		blue   = rgb(0x0000cc)
		green  = rgb(0x008000)
		gray   = rgb(0x808080)
		orange = rgb(0xcc6600)
		teal   = rgb(0x008080)
		purple = rgb(0x800080)
		brown  = rgb(0x996633)
	)
	return Palette{
		style.Keyword:      {Fg: blue, Bold: true},
		style.Type:         {Fg: teal},
		style.Number:       {Fg: orange},
		style.String:       {Fg: green},
		style.Comment:      {Fg: gray, Italic: true},
		style.Operator:     {},
		style.Method:       {Fg: teal, Bold: true},
		style.Variable:     {Fg: brown},
		style.AttrName:     {Fg: purple},
		style.AttrValue:    {Fg: green},
		style.Tag:          {Fg: gray},
		style.TagName:      {Fg: blue},
		style.EntityRef:    {Fg: orange},
		style.LangConst:    {Fg: orange, Bold: true},
		style.Preprocessor: {Fg: purple},
	}
}

// Clone returns a copy of p that may be modified independently.
func (p Palette) Clone() Palette {
	q := make(Palette, len(p))
	for c, a := range p {
		q[c] = a
	}
	return q
}
