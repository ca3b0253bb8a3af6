package style

import (
	"errors"
	"fmt"
	"io"
)

// Highlighter is the language-independent face of a Styler.
type Highlighter interface {
	// Execute returns the highlight spans for text.
	Execute(text string) []Span
	// Validate reports configuration defects such as an incomplete table.
	Validate() error
}

// FaultHook observes lexical faults. spans is the number of primary
// spans kept from before the fault.
type FaultHook func(language string, err error, spans int)

// Styler runs the tokenize-and-classify pipeline for one language. It
// holds no mutable state, so one value may serve any number of
// goroutines.
type Styler[K comparable] struct {
	Name    string
	Source  Source[K]
	Table   Table[K]
	Kinds   []K      // every kind Source can produce
	Matcher *Matcher // optional secondary pass
	OnFault FaultHook
}

var _ Highlighter = Styler[int]{}

// Execute lexes text to the end or to the first fault and returns the
// classified spans followed by the secondary matcher's spans. A fault
// is not an error for the caller: whatever was classified before it is
// returned.
func (s Styler[K]) Execute(text string) []Span {
	var secondary []Span
	if s.Matcher != nil {
		secondary = s.Matcher.Find(text)
	}

	var primary []Span
	lx := s.Source(text)
	for {
		tok, err := lx.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if s.OnFault != nil {
				s.OnFault(s.Name, err, len(primary))
			}
			break
		}
		primary = s.Table.appendSpans(primary, tok, 0)
	}
	return clamp(Merge(primary, secondary), len(text))
}

// Validate checks that the styler has a source and that its table
// covers every kind.
func (s Styler[K]) Validate() error {
	if s.Source == nil {
		return fmt.Errorf("%s: no token source", s.Name)
	}
	if err := s.Table.Validate(s.Kinds); err != nil {
		return fmt.Errorf("%s: %w", s.Name, err)
	}
	return nil
}

// clamp trims spans to [0, n] and drops the ones left empty.
func clamp(spans []Span, n int) []Span {
	out := spans[:0]
	for _, sp := range spans {
		sp.Start = max(sp.Start, 0)
		sp.End = min(sp.End, n)
		if sp.Start < sp.End {
			out = append(out, sp)
		}
	}
	return out
}
