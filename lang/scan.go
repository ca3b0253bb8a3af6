package lang

import "github.com/paul-lalonde/edstyle/style"

// tokens collects the output of the hand-written lexers, which scan
// the whole input up front.
type tokens[K comparable] struct {
	list []style.Token[K]
}

func (t *tokens[K]) add(k K, start, end int) {
	if end > start {
		t.list = append(t.list, style.Token[K]{Kind: k, Start: start, End: end})
	}
}

func (t *tokens[K]) lexer() style.Lexer[K] {
	return &style.SliceLexer[K]{Tokens: t.list}
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool   { return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }
func isLetter(c byte) bool     { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isIdentStart(c byte) bool { return isLetter(c) || c == '_' }
func isIdentChar(c byte) bool  { return isIdentStart(c) || isDigit(c) }
func isSpace(c byte) bool      { return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' }

// lineEnd returns the offset of the next newline at or after i, or
// len(src).
func lineEnd(src string, i int) int {
	for i < len(src) && src[i] != '\n' {
		i++
	}
	return i
}

// scanDigits advances past digits and '_' separators.
func scanDigits(src string, i int, ok func(byte) bool) int {
	for i < len(src) && (ok(src[i]) || src[i] == '_') {
		i++
	}
	return i
}

// scanExponent scans an optional exponent (e10, E-5, etc.).
func scanExponent(src string, i int) int {
	n := len(src)
	if i < n && (src[i] == 'e' || src[i] == 'E') {
		i++
		if i < n && (src[i] == '+' || src[i] == '-') {
			i++
		}
		i = scanDigits(src, i, isDigit)
	}
	return i
}

// scanQuoted scans past a single-line quoted body starting just after
// the opening quote. Backslash escapes are honoured. An unterminated
// string ends at the newline or at len(src).
func scanQuoted(src string, i int, quote byte) int {
	n := len(src)
	for i < n {
		switch src[i] {
		case '\\':
			if i+1 < n && src[i+1] != '\n' {
				i += 2
				continue
			}
		case quote:
			return i + 1
		case '\n':
			return i
		}
		i++
	}
	return i
}
