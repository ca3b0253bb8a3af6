// Package document keeps the text of one edited buffer together with
// its line index and highlighter.
//
// Offsets are in characters (runes), the unit acme and edwood use for
// addresses. Spans from the highlighter, which works in bytes, are
// converted before they are returned.
package document

import (
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/paul-lalonde/edstyle/lineindex"
	"github.com/paul-lalonde/edstyle/style"
)

// ErrOutOfRange is returned for edits that address text outside the
// document.
var ErrOutOfRange = errors.New("offset out of range")

const defaultTabWidth = 8

// Document is a text buffer with an incrementally maintained line index.
// It has a single writer; readers may run concurrently with each other.
type Document struct {
	ID uuid.UUID

	mu       sync.RWMutex
	text     []rune
	lines    *lineindex.Index
	hl       style.Highlighter
	log      *zap.Logger
	tabWidth int
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used for edit tracing.
func WithLogger(l *zap.Logger) Option {
	return func(d *Document) { d.log = l }
}

// WithTabWidth sets the tab stop interval used by DisplayColumn.
func WithTabWidth(n int) Option {
	return func(d *Document) {
		if n > 0 {
			d.tabWidth = n
		}
	}
}

// New returns an empty document styled by h, which may be nil.
func New(h style.Highlighter, opts ...Option) *Document {
	d := &Document{
		ID:       uuid.New(),
		hl:       h,
		log:      zap.NewNop(),
		tabWidth: defaultTabWidth,
	}
	for _, o := range opts {
		o(d)
	}
	d.log = d.log.With(zap.Stringer("doc", d.ID))
	d.lines = lineindex.New(func() int { return len(d.text) })
	return d
}

// SetHighlighter replaces the highlighter, for example after the file
// was renamed to another language.
func (d *Document) SetHighlighter(h style.Highlighter) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hl = h
}

// SetText replaces the whole text and rebuilds the line index.
func (d *Document) SetText(s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = []rune(s)
	d.lines.Clear()
	line := 1
	for i, r := range d.text {
		if r == '\n' {
			d.lines.Insert(line, i+1)
			line++
		}
	}
	d.log.Debug("set text", zap.Int("len", len(d.text)), zap.Int("lines", line))
}

// Insert inserts s before the character at off.
func (d *Document) Insert(off int, s string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if off < 0 || off > len(d.text) {
		return fmt.Errorf("insert at %d in %d: %w", off, len(d.text), ErrOutOfRange)
	}
	ins := []rune(s)
	if len(ins) == 0 {
		return nil
	}
	d.text = append(d.text[:off], append(ins, d.text[off:]...)...)

	line := d.lines.LineForOffset(off)
	d.lines.ShiftIndexes(line+1, len(ins))
	next := line + 1
	for i, r := range ins {
		if r == '\n' {
			d.lines.Insert(next, off+i+1)
			next++
		}
	}
	d.traceEdit("insert", off, len(ins))
	return nil
}

// Delete removes n characters starting at off.
func (d *Document) Delete(off, n int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if off < 0 || n < 0 || off+n > len(d.text) {
		return fmt.Errorf("delete %d at %d in %d: %w", n, off, len(d.text), ErrOutOfRange)
	}
	if n == 0 {
		return nil
	}
	d.text = append(d.text[:off], d.text[off+n:]...)

	// Lines whose newline was deleted start in (off, off+n].
	next := d.lines.LineForOffset(off) + 1
	for next < d.lines.LineCount() && d.lines.LineAt(next).Start <= off+n {
		d.lines.Remove(next)
	}
	d.lines.ShiftIndexes(next, -n)
	d.traceEdit("delete", off, n)
	return nil
}

func (d *Document) traceEdit(op string, off, n int) {
	if !d.log.Core().Enabled(zapcore.DebugLevel) {
		return
	}
	d.log.Debug(op, zap.Int("off", off), zap.Int("n", n), zap.Int("lines", d.lines.LineCount()))
	if err := d.lines.Check(); err != nil {
		d.log.Debug("line index broken", zap.String("op", op), zap.Error(err))
	}
}

// Highlight styles the current text. Span offsets are in characters.
func (d *Document) Highlight() []style.Span {
	d.mu.RLock()
	text := string(d.text)
	h := d.hl
	d.mu.RUnlock()
	if h == nil {
		return nil
	}
	spans := h.Execute(text)
	return ToRuneSpans(text, spans)
}

// ToRuneSpans converts spans with byte offsets into text to character
// offsets. An offset inside a multi-byte character maps to that
// character.
func ToRuneSpans(text string, spans []style.Span) []style.Span {
	if len(spans) == 0 {
		return spans
	}
	idx := make([]int, len(text)+1)
	r := 0
	for i := 0; i < len(text); {
		_, w := utf8.DecodeRuneInString(text[i:])
		for j := i; j < i+w; j++ {
			idx[j] = r
		}
		i += w
		r++
	}
	idx[len(text)] = r

	out := make([]style.Span, 0, len(spans))
	for _, sp := range spans {
		s, e := idx[sp.Start], idx[sp.End]
		// An end inside a character covers all of it.
		if sp.End < len(text) && !utf8.RuneStart(text[sp.End]) {
			e++
		}
		out = append(out, style.Span{Category: sp.Category, Start: s, End: e})
	}
	return out
}

// Position returns the line and column of off. Offsets outside the
// document are clamped to it.
func (d *Document) Position(off int) (line, col int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	off = min(max(off, 0), len(d.text))
	line = d.lines.LineForOffset(off)
	return line, off - d.lines.OffsetOfLineStart(line)
}

// DisplayColumn returns the screen column of off, counting wide
// characters as two cells and expanding tabs.
func (d *Document) DisplayColumn(off int) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	off = min(max(off, 0), len(d.text))
	start := d.lines.OffsetOfLineStart(d.lines.LineForOffset(off))
	col := 0
	for _, r := range d.text[start:off] {
		if r == '\t' {
			col += d.tabWidth - col%d.tabWidth
			continue
		}
		col += runewidth.RuneWidth(r)
	}
	return col
}

// LineText returns line without its newline.
func (d *Document) LineText(line int) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, e := d.lines.OffsetOfLineStart(line), d.lines.OffsetOfLineEnd(line)
	if s == lineindex.NotFound {
		return "", false
	}
	return string(d.text[s:e]), true
}

// LineStart returns the offset of the first character of line, or
// lineindex.NotFound.
func (d *Document) LineStart(line int) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lines.OffsetOfLineStart(line)
}

// LineCount returns the number of lines, at least 1.
func (d *Document) LineCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lines.LineCount()
}

// Lines returns a snapshot of the line records.
func (d *Document) Lines() []lineindex.Line {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lines.Lines()
}

// Len returns the length of the text in characters.
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.text)
}

// Text returns the whole text.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return string(d.text)
}
