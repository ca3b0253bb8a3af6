package style

import (
	"fmt"
	"strings"
)

type action uint8

const (
	actSkip action = iota
	actEmit
	actSplitLast
	actNested
)

// Rule says what a token kind turns into.
type Rule struct {
	act   action
	lead  Category
	trail Category
}

// Skip discards the token: whitespace, plain identifiers, separators.
func Skip() Rule { return Rule{act: actSkip} }

// As emits one span of category c over the whole token.
func As(c Category) Rule { return Rule{act: actEmit, lead: c} }

// SplitLast emits two spans: lead over all but the token's final byte
// and trail over that final byte. It suits tokens like "rgb(" where the
// delimiter is coloured as an operator.
func SplitLast(lead, trail Category) Rule {
	return Rule{act: actSplitLast, lead: lead, trail: trail}
}

// Nested emits one span per sub-token in Token.Sub, each classified by
// the same table. Nesting is one level deep: a sub-token whose own rule
// is Nested is skipped.
func Nested() Rule { return Rule{act: actNested} }

func (r Rule) String() string {
	switch r.act {
	case actSkip:
		return "skip"
	case actEmit:
		return r.lead.String()
	case actSplitLast:
		return r.lead.String() + "+" + r.trail.String()
	case actNested:
		return "nested"
	}
	return "invalid"
}

func (r Rule) valid() bool {
	switch r.act {
	case actSkip, actNested:
		return true
	case actEmit:
		return r.lead.Valid()
	case actSplitLast:
		return r.lead.Valid() && r.trail.Valid()
	}
	return false
}

// Table maps every token kind of one language to its Rule.
type Table[K comparable] map[K]Rule

// Set assigns r to each of kinds and returns t for chaining.
func (t Table[K]) Set(r Rule, kinds ...K) Table[K] {
	for _, k := range kinds {
		t[k] = r
	}
	return t
}

// Validate checks that t has a usable rule for every kind in kinds. The
// error names each missing or malformed entry.
func (t Table[K]) Validate(kinds []K) error {
	var missing, invalid []string
	for _, k := range kinds {
		r, ok := t[k]
		switch {
		case !ok:
			missing = append(missing, fmt.Sprint(k))
		case !r.valid():
			invalid = append(invalid, fmt.Sprint(k))
		}
	}
	var msgs []string
	if len(missing) > 0 {
		msgs = append(msgs, "no rule for "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		msgs = append(msgs, "bad rule for "+strings.Join(invalid, ", "))
	}
	if len(msgs) > 0 {
		return fmt.Errorf("classification table: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// appendSpans classifies tok and appends the resulting spans to dst.
func (t Table[K]) appendSpans(dst []Span, tok Token[K], depth int) []Span {
	r, ok := t[tok.Kind]
	if !ok {
		panic(fmt.Sprintf("style: no rule for token kind %v", tok.Kind))
	}
	switch r.act {
	case actEmit:
		dst = append(dst, Span{Category: r.lead, Start: tok.Start, End: tok.End})
	case actSplitLast:
		if tok.End > tok.Start {
			dst = append(dst,
				Span{Category: r.lead, Start: tok.Start, End: tok.End - 1},
				Span{Category: r.trail, Start: tok.End - 1, End: tok.End})
		}
	case actNested:
		if depth > 0 {
			break
		}
		for _, sub := range tok.Sub {
			dst = t.appendSpans(dst, sub, depth+1)
		}
	}
	return dst
}
