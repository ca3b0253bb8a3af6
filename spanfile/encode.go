package spanfile

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
)

// DefaultChunk keeps each write well under the usual 9P message size.
const DefaultChunk = 4000

// Encode writes runs, the first of which begins at offset start, as
// span definitions. Output is split into writes of at most maxChunk
// bytes, each holding complete lines, so that every write is a valid
// region update on its own.
func Encode(w io.Writer, start int, runs []Run, maxChunk int) error {
	if maxChunk <= 0 {
		maxChunk = DefaultChunk
	}
	var buf strings.Builder
	flush := func() error {
		if buf.Len() == 0 {
			return nil
		}
		if _, err := io.WriteString(w, buf.String()); err != nil {
			return fmt.Errorf("write spans: %w", err)
		}
		buf.Reset()
		return nil
	}

	off := start
	for _, r := range runs {
		if r.Len == 0 {
			continue
		}
		line := FormatRun(off, r)
		off += r.Len
		if buf.Len()+len(line) > maxChunk {
			if err := flush(); err != nil {
				return err
			}
		}
		buf.WriteString(line)
	}
	return flush()
}

// FormatRun returns the span definition line for r at offset off.
func FormatRun(off int, r Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %d %s", off, r.Len, FormatColor(r.Attr.Fg))
	if r.Attr.Bg != nil {
		b.WriteString(" " + FormatColor(r.Attr.Bg))
	}
	if r.Attr.Bold {
		b.WriteString(" bold")
	}
	if r.Attr.Italic {
		b.WriteString(" italic")
	}
	if r.Attr.Hidden {
		b.WriteString(" hidden")
	}
	b.WriteByte('\n')
	return b.String()
}

// Parse reads span definitions for a buffer of bufLen characters. It
// returns the runs and the offset of the first one. Spans must be
// contiguous. Spans starting at or past the end of the buffer are
// dropped and the last runs are trimmed to fit, since the writer may
// have worked from a stale copy of the text.
func Parse(data string, bufLen int) ([]Run, int, error) {
	lines := strings.Split(data, "\n")
	runs := make([]Run, 0, len(lines))
	regionStart := -1
	next := -1

	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return nil, 0, fmt.Errorf("bad span format: need at least offset length color")
		}
		offset, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, 0, fmt.Errorf("bad span offset: %q", fields[0])
		}
		length, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, 0, fmt.Errorf("bad span length: %q", fields[1])
		}
		if offset < 0 || length < 0 {
			return nil, 0, fmt.Errorf("negative span offset or length")
		}
		if offset >= bufLen {
			break
		}
		if regionStart == -1 {
			regionStart, next = offset, offset
		}
		if offset != next {
			return nil, 0, fmt.Errorf("spans must be contiguous: expected offset %d, got %d", next, offset)
		}
		next = offset + length

		attr, err := parseAttr(fields[2:])
		if err != nil {
			return nil, 0, err
		}
		runs = append(runs, Run{Len: length, Attr: attr})
	}
	if regionStart == -1 {
		regionStart = 0
	}

	excess := regionStart + TotalLen(runs) - bufLen
	for i := len(runs) - 1; i >= 0 && excess > 0; i-- {
		cut := min(runs[i].Len, excess)
		runs[i].Len -= cut
		excess -= cut
	}
	for len(runs) > 0 && runs[len(runs)-1].Len == 0 {
		runs = runs[:len(runs)-1]
	}
	return runs, regionStart, nil
}

// parseAttr parses "fg [bg] [flags...]".
func parseAttr(fields []string) (Attr, error) {
	var a Attr
	fg, err := ParseColor(fields[0])
	if err != nil {
		return a, err
	}
	a.Fg = fg
	flags := fields[1:]
	if len(flags) > 0 && (flags[0] == "-" || strings.HasPrefix(flags[0], "#")) {
		var bg color.Color
		if bg, err = ParseColor(flags[0]); err != nil {
			return a, err
		}
		a.Bg = bg
		flags = flags[1:]
	}
	for _, f := range flags {
		switch f {
		case "bold":
			a.Bold = true
		case "italic":
			a.Italic = true
		case "hidden":
			a.Hidden = true
		default:
			return a, fmt.Errorf("unknown span flag: %q", f)
		}
	}
	return a, nil
}
