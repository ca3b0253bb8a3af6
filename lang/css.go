package lang

import (
	"strings"

	"github.com/paul-lalonde/edstyle/style"
)

type cssKind uint8

const (
	cssIdent cssKind = iota
	cssNumber
	cssOperator
	cssSeparator
	cssSelector // .class, #id
	cssAtRule
	cssImportant
	cssProperty
	cssValue
	cssFunction // name( including the parenthesis
	cssString
	cssComment
)

var cssKinds = []cssKind{
	cssIdent, cssNumber, cssOperator, cssSeparator, cssSelector, cssAtRule,
	cssImportant, cssProperty, cssValue, cssFunction, cssString, cssComment,
}

func (k cssKind) String() string {
	return [...]string{
		"ident", "number", "operator", "separator", "selector", "at_rule",
		"important", "property", "value", "function", "string", "comment",
	}[k]
}

var cssTable = style.Table[cssKind]{}.
	Set(style.Skip(), cssIdent, cssSeparator).
	Set(style.As(style.Number), cssNumber).
	Set(style.As(style.Operator), cssOperator).
	Set(style.As(style.TagName), cssSelector).
	Set(style.As(style.AttrValue), cssAtRule, cssImportant, cssValue).
	Set(style.As(style.AttrName), cssProperty).
	Set(style.SplitLast(style.Keyword, style.Operator), cssFunction).
	Set(style.As(style.String), cssString).
	Set(style.As(style.Comment), cssComment)

func cssLanguage(h style.FaultHook) Language {
	return Language{
		Name:       "css",
		Extensions: []string{".css", ".scss", ".less"},
		Highlighter: style.Styler[cssKind]{
			Name:    "css",
			Source:  lexCSS,
			Table:   cssTable,
			Kinds:   cssKinds,
			OnFault: h,
		},
	}
}

func isCSSNameStart(c byte) bool { return isIdentStart(c) || c == '-' || c >= 0x80 }
func isCSSNameChar(c byte) bool  { return isCSSNameStart(c) || isDigit(c) }

// lexCSS tracks just enough context to tell a property (inside a block,
// before the colon) from a value (after it) and from a selector, which
// may itself sit inside a block such as @media.
func lexCSS(src string) style.Lexer[cssKind] {
	var t tokens[cssKind]
	depth := 0
	inValue := false
	i := 0
	n := len(src)

	for i < n {
		c := src[i]
		start := i

		switch {
		case isSpace(c):
			i++

		case c == '/' && i+1 < n && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				i = n
			} else {
				i += 2 + end + 2
			}
			t.add(cssComment, start, i)

		case c == '/' && i+1 < n && src[i+1] == '/':
			i = lineEnd(src, i)
			t.add(cssComment, start, i)

		case c == '"' || c == '\'':
			i = scanQuoted(src, i+1, c)
			t.add(cssString, start, i)

		case c == '{':
			i++
			depth++
			inValue = false
			t.add(cssOperator, start, i)

		case c == '}':
			i++
			depth = max(depth-1, 0)
			inValue = false
			t.add(cssOperator, start, i)

		case c == ':':
			i++
			if depth > 0 && !inValue && !opensBlock(src, i) {
				inValue = true
			}
			t.add(cssOperator, start, i)

		case c == ';':
			i++
			inValue = false
			t.add(cssSeparator, start, i)

		case c == ',':
			i++
			t.add(cssSeparator, start, i)

		case c == '!' && strings.HasPrefix(strings.ToLower(src[i+1:]), "important"):
			i += 1 + len("important")
			t.add(cssImportant, start, i)

		case c == '@' && i+1 < n && isCSSNameStart(src[i+1]):
			i = scanCSSName(src, i+1)
			t.add(cssAtRule, start, i)

		case isDigit(c) || (c == '.' || c == '-' || c == '+') && inValue && i+1 < n && isDigit(src[i+1]):
			i = scanCSSNumber(src, i)
			t.add(cssNumber, start, i)

		case (c == '.' || c == '#') && !inValue && i+1 < n && isCSSNameStart(src[i+1]):
			i = scanCSSName(src, i+1)
			t.add(cssSelector, start, i)

		case c == '#' && inValue:
			i = scanCSSName(src, i+1)
			t.add(cssValue, start, i)

		case isCSSNameStart(c):
			i = scanCSSName(src, i)
			switch {
			case i < n && src[i] == '(':
				i++
				t.add(cssFunction, start, i)
			case inValue:
				t.add(cssValue, start, i)
			case depth > 0 && !opensBlock(src, i):
				t.add(cssProperty, start, i)
			default:
				t.add(cssIdent, start, i)
			}

		case strings.IndexByte("+>~^$|=()[]*", c) >= 0:
			i++
			t.add(cssOperator, start, i)

		default:
			i++
		}
	}
	return t.lexer()
}

// opensBlock reports whether a '{' comes before the next ';' or '}',
// which puts offset i inside a selector rather than a declaration.
func opensBlock(src string, i int) bool {
	for ; i < len(src); i++ {
		switch src[i] {
		case '{':
			return true
		case ';', '}':
			return false
		}
	}
	return false
}

func scanCSSName(src string, i int) int {
	for i < len(src) && isCSSNameChar(src[i]) {
		i++
	}
	return i
}

// scanCSSNumber scans a number with an optional unit or percent sign.
func scanCSSNumber(src string, i int) int {
	n := len(src)
	if src[i] == '-' || src[i] == '+' {
		i++
	}
	for i < n && (isDigit(src[i]) || src[i] == '.') {
		i++
	}
	switch {
	case i < n && src[i] == '%':
		i++
	case i < n && isLetter(src[i]):
		for i < n && isLetter(src[i]) {
			i++
		}
	}
	return i
}
