package spanfile

import (
	"image/color"
	"slices"

	"github.com/paul-lalonde/edstyle/style"
)

// Run is a contiguous range of characters sharing one style.
type Run struct {
	Len  int // characters, >= 0
	Attr Attr
}

// TotalLen returns the number of characters covered by runs.
func TotalLen(runs []Run) int {
	n := 0
	for _, r := range runs {
		n += r.Len
	}
	return n
}

// Colorize converts spans over a text of n characters into contiguous
// runs covering all of it. Span offsets are in characters. Where spans
// overlap, the one starting first wins; ties go to the earlier span in
// the list, so classified spans beat appended secondary spans of the
// same extent.
func Colorize(n int, spans []style.Span, p Palette) []Run {
	sorted := slices.Clone(spans)
	style.Sort(sorted)

	var runs []Run
	cursor := 0
	for _, sp := range sorted {
		end := min(sp.End, n)
		if end <= cursor {
			continue
		}
		start := max(sp.Start, cursor)
		if start > cursor {
			runs = append(runs, Run{Len: start - cursor})
		}
		runs = append(runs, Run{Len: end - start, Attr: p[sp.Category]})
		cursor = end
	}
	if cursor < n {
		runs = append(runs, Run{Len: n - cursor})
	}
	return compact(runs)
}

// compact drops empty runs and merges neighbors with equal styling.
func compact(runs []Run) []Run {
	out := runs[:0]
	for _, r := range runs {
		if r.Len == 0 {
			continue
		}
		if k := len(out) - 1; k >= 0 && out[k].Attr.Equal(r.Attr) {
			out[k].Len += r.Len
			continue
		}
		out = append(out, r)
	}
	return out
}

// ApplyHighlights sets the background of the characters in each range
// to bg. Runs start at offset 0; ranges are [start, end) character
// offsets sorted by start.
func ApplyHighlights(runs []Run, ranges [][2]int, bg color.Color) []Run {
	if len(ranges) == 0 {
		return runs
	}
	var out []Run
	hi := 0
	off := 0
	for _, r := range runs {
		rStart, rEnd := off, off+r.Len
		off = rEnd

		for hi < len(ranges) && ranges[hi][1] <= rStart {
			hi++
		}
		cursor := rStart
		for h := hi; h < len(ranges) && ranges[h][0] < rEnd; h++ {
			hStart := max(ranges[h][0], rStart, cursor)
			hEnd := min(ranges[h][1], rEnd)
			if hEnd <= hStart {
				continue
			}
			if hStart > cursor {
				out = append(out, Run{Len: hStart - cursor, Attr: r.Attr})
			}
			lit := r.Attr
			lit.Bg = bg
			out = append(out, Run{Len: hEnd - hStart, Attr: lit})
			cursor = hEnd
		}
		if cursor < rEnd {
			out = append(out, Run{Len: rEnd - cursor, Attr: r.Attr})
		}
	}
	return compact(out)
}

// FindMatches returns the character ranges of every occurrence of sel
// in text except the one at [selQ0, selQ1).
func FindMatches(text []rune, sel []rune, selQ0, selQ1 int) [][2]int {
	var matches [][2]int
	if len(sel) == 0 {
		return nil
	}
	for i := 0; i+len(sel) <= len(text); i++ {
		if !slices.Equal(text[i:i+len(sel)], sel) {
			continue
		}
		if i == selQ0 && i+len(sel) == selQ1 {
			continue
		}
		matches = append(matches, [2]int{i, i + len(sel)})
	}
	return matches
}
