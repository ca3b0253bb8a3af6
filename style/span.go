// Package style turns a lexical token stream into classified highlight
// spans.
//
// A language supplies three things: a Source that lexes text into
// Tokens, a Table mapping each token kind to a Rule, and optionally a
// Matcher that finds constructs the lexer cannot see on its own (a name
// following "func", for example). A Styler ties them together; its
// Execute method is a pure function of the text.
package style

import (
	"cmp"
	"slices"
)

// Span is a classified region [Start, End) of the document.
type Span struct {
	Category Category
	Start    int
	End      int
}

// Len returns the number of offsets covered by s.
func (s Span) Len() int {
	return s.End - s.Start
}

// Merge appends the secondary spans after the primary ones. The result
// is not sorted: primary spans ascend by Start, secondary spans follow
// in the order they were found and may overlap primary ones.
func Merge(primary, secondary []Span) []Span {
	out := make([]Span, 0, len(primary)+len(secondary))
	out = append(out, primary...)
	return append(out, secondary...)
}

// Sort orders spans by Start, then End. Spans with equal bounds keep
// their relative order, so primary spans stay ahead of secondary ones.
func Sort(spans []Span) {
	slices.SortStableFunc(spans, func(a, b Span) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})
}
