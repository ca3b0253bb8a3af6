package style

import "io"

// Token is one lexical event: a language-specific kind over [Start, End).
// Sub carries nested sub-tokens for kinds whose Rule is Nested, such as
// a begin/end marker that names its own pieces.
type Token[K comparable] struct {
	Kind  K
	Start int
	End   int
	Sub   []Token[K]
}

// Lexer produces tokens in position order. Next returns io.EOF once the
// input is exhausted; any other error is a lexical fault and ends the
// stream.
type Lexer[K comparable] interface {
	Next() (Token[K], error)
}

// Source creates a Lexer positioned at the start of text.
type Source[K comparable] func(text string) Lexer[K]

// SliceLexer replays a fixed token list, then returns Err (io.EOF when
// Err is nil). Lexers that scan the whole input up front return one.
type SliceLexer[K comparable] struct {
	Tokens []Token[K]
	Err    error
	pos    int
}

// Next implements Lexer.
func (l *SliceLexer[K]) Next() (Token[K], error) {
	if l.pos < len(l.Tokens) {
		t := l.Tokens[l.pos]
		l.pos++
		return t, nil
	}
	if l.Err != nil {
		return Token[K]{}, l.Err
	}
	return Token[K]{}, io.EOF
}
