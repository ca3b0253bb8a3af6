package style

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// Matcher is the secondary pass: a pattern scan over the whole text for
// constructs a lexer cannot express, typically because they need
// lookbehind. Patterns use regexp2 syntax, which supports lookbehind.
type Matcher struct {
	Category Category
	re       *regexp2.Regexp
}

// NewMatcher compiles pattern; every match becomes a span of category c.
func NewMatcher(c Category, pattern string, opts regexp2.RegexOptions) (*Matcher, error) {
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}
	return &Matcher{Category: c, re: re}, nil
}

// MustMatcher is like NewMatcher but panics if pattern does not compile.
func MustMatcher(c Category, pattern string, opts regexp2.RegexOptions) *Matcher {
	m, err := NewMatcher(c, pattern, opts)
	if err != nil {
		panic(err)
	}
	return m
}

// MethodAfter matches the identifier that follows any of keywords and
// classifies it as Method: the name in "func name(".
func MethodAfter(ignoreCase bool, keywords ...string) *Matcher {
	quoted := make([]string, len(keywords))
	for i, kw := range keywords {
		quoted[i] = regexp.QuoteMeta(kw)
	}
	opts := regexp2.None
	if ignoreCase {
		opts |= regexp2.IgnoreCase
	}
	return MustMatcher(Method, `(?<=\b(?:`+strings.Join(quoted, "|")+`)\s+)\w+`, opts)
}

// Pattern returns the source pattern.
func (m *Matcher) Pattern() string {
	return m.re.String()
}

// Find returns a span for every match in text, in order, with byte
// offsets.
func (m *Matcher) Find(text string) []Span {
	match, err := m.re.FindStringMatch(text)
	if err != nil || match == nil {
		return nil
	}
	// regexp2 reports rune positions.
	offs := runeOffsets(text)
	var spans []Span
	for match != nil {
		spans = append(spans, Span{
			Category: m.Category,
			Start:    offs[match.Index],
			End:      offs[match.Index+match.Length],
		})
		match, err = m.re.FindNextMatch(match)
		if err != nil {
			break
		}
	}
	return spans
}

// runeOffsets maps each rune index of s to its byte offset, with one
// extra entry for len(s).
func runeOffsets(s string) []int {
	offs := make([]int, 0, len(s)+1)
	for i := range s {
		offs = append(offs, i)
	}
	return append(offs, len(s))
}
