package lang

import (
	"regexp"
	"strings"

	"github.com/paul-lalonde/edstyle/style"
)

type tomlKind uint8

const (
	tomlIdent tomlKind = iota
	tomlKey
	tomlDateTime
	tomlNumber
	tomlBool
	tomlComment
	tomlBasicString
	tomlLiteralString
	tomlMultilineBasic
	tomlMultilineLiteral
	tomlPunct     // = { } [ ]
	tomlSeparator // , .
)

var tomlKinds = []tomlKind{
	tomlIdent, tomlKey, tomlDateTime, tomlNumber, tomlBool, tomlComment,
	tomlBasicString, tomlLiteralString, tomlMultilineBasic, tomlMultilineLiteral,
	tomlPunct, tomlSeparator,
}

func (k tomlKind) String() string {
	return [...]string{
		"ident", "key", "datetime", "number", "bool", "comment",
		"basic_string", "literal_string", "multiline_basic", "multiline_literal",
		"punct", "separator",
	}[k]
}

var tomlTable = style.Table[tomlKind]{}.
	Set(style.Skip(), tomlIdent, tomlSeparator).
	Set(style.As(style.AttrName), tomlKey).
	Set(style.As(style.Number), tomlDateTime, tomlNumber).
	Set(style.As(style.AttrValue), tomlBool,
		tomlBasicString, tomlLiteralString, tomlMultilineBasic, tomlMultilineLiteral).
	Set(style.As(style.Comment), tomlComment).
	Set(style.As(style.Operator), tomlPunct)

func tomlLanguage(h style.FaultHook) Language {
	return Language{
		Name:       "toml",
		Extensions: []string{".toml"},
		Highlighter: style.Styler[tomlKind]{
			Name:    "toml",
			Source:  lexTOML,
			Table:   tomlTable,
			Kinds:   tomlKinds,
			OnFault: h,
		},
	}
}

var (
	tomlDateRE   = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}([Tt ]\d{2}:\d{2}:\d{2}(\.\d+)?([Zz]|[+-]\d{2}:\d{2})?)?|\d{2}:\d{2}:\d{2}(\.\d+)?)$`)
	tomlNumberRE = regexp.MustCompile(`^([+-]?(0x[0-9A-Fa-f_]+|0o[0-7_]+|0b[01_]+|[0-9_]+(\.[0-9_]+)?([eE][+-]?[0-9_]+)?|inf|nan))$`)
)

// lexTOML tracks whether the next bare word is a key or a value. Keys
// start each top-level line, fill [table] headers and follow '{' or ','
// in an inline table.
func lexTOML(src string) style.Lexer[tomlKind] {
	var t tokens[tomlKind]
	var stack []byte // open '{' and '[' in value position
	keyCtx := true
	header := false
	i := 0
	n := len(src)

	for i < n {
		c := src[i]
		start := i

		switch {
		case c == '\n':
			i++
			if len(stack) == 0 {
				keyCtx = true
				header = false
			}

		case isSpace(c):
			i++

		case c == '#':
			i = lineEnd(src, i)
			t.add(tomlComment, start, i)

		case strings.HasPrefix(src[i:], `"""`):
			i = closeAfter(src, i+3, `"""`, true)
			t.add(stringKind(keyCtx, tomlMultilineBasic), start, i)

		case strings.HasPrefix(src[i:], `'''`):
			i = closeAfter(src, i+3, `'''`, false)
			t.add(stringKind(keyCtx, tomlMultilineLiteral), start, i)

		case c == '"':
			i = scanQuoted(src, i+1, '"')
			t.add(stringKind(keyCtx, tomlBasicString), start, i)

		case c == '\'':
			i++
			for i < n && src[i] != '\'' && src[i] != '\n' {
				i++
			}
			if i < n && src[i] == '\'' {
				i++
			}
			t.add(stringKind(keyCtx, tomlLiteralString), start, i)

		case c == '[':
			i++
			if keyCtx && len(stack) == 0 {
				header = true
				if i < n && src[i] == '[' {
					i++
				}
			} else {
				stack = append(stack, '[')
				keyCtx = false
			}
			t.add(tomlPunct, start, i)

		case c == ']':
			i++
			if header {
				if i < n && src[i] == ']' {
					i++
				}
				header = false
				keyCtx = false
			} else if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			t.add(tomlPunct, start, i)

		case c == '{':
			i++
			stack = append(stack, '{')
			keyCtx = true
			t.add(tomlPunct, start, i)

		case c == '}':
			i++
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			keyCtx = false
			t.add(tomlPunct, start, i)

		case c == '=':
			i++
			keyCtx = false
			t.add(tomlPunct, start, i)

		case c == ',':
			i++
			if len(stack) > 0 && stack[len(stack)-1] == '{' {
				keyCtx = true
			}
			t.add(tomlSeparator, start, i)

		case keyCtx && c == '.':
			i++
			t.add(tomlSeparator, start, i)

		case keyCtx && (isIdentChar(c) || c == '-'):
			for i < n && (isIdentChar(src[i]) || src[i] == '-') {
				i++
			}
			t.add(tomlKey, start, i)

		case !keyCtx && (isIdentChar(c) || c == '+' || c == '-' || c == '.'):
			i = scanTOMLWord(src, i)
			t.add(tomlWordKind(src[start:i]), start, i)

		default:
			i++
		}
	}
	return t.lexer()
}

func stringKind(keyCtx bool, k tomlKind) tomlKind {
	if keyCtx {
		return tomlKey
	}
	return k
}

// closeAfter returns the offset just past the first delim at or after i,
// or len(src) when there is none.
func closeAfter(src string, i int, delim string, escapes bool) int {
	for i < len(src) {
		if escapes && src[i] == '\\' {
			i += 2
			continue
		}
		if strings.HasPrefix(src[i:], delim) {
			i += len(delim)
			// Up to two extra quotes belong to the content.
			for k := 0; k < 2 && i < len(src) && src[i] == delim[0]; k++ {
				i++
			}
			return i
		}
		i++
	}
	return len(src)
}

// scanTOMLWord scans a bare value: a number, boolean or date-time. A
// date and time separated by one space are one word.
func scanTOMLWord(src string, start int) int {
	n := len(src)
	word := func(c byte) bool {
		return isIdentChar(c) || c == '+' || c == '-' || c == '.' || c == ':'
	}
	i := start
	for i < n && word(src[i]) {
		i++
	}
	if i+1 < n && src[i] == ' ' && isDigit(src[i+1]) && tomlDateRE.MatchString(src[start:i]) {
		i++
		for i < n && word(src[i]) {
			i++
		}
	}
	return i
}

func tomlWordKind(w string) tomlKind {
	switch {
	case w == "true" || w == "false":
		return tomlBool
	case tomlDateRE.MatchString(w):
		return tomlDateTime
	case tomlNumberRE.MatchString(w):
		return tomlNumber
	}
	return tomlIdent
}
