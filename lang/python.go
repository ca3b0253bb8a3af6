package lang

import (
	"strings"

	"github.com/paul-lalonde/edstyle/style"
)

type pyKind uint8

const (
	pyIdent pyKind = iota
	pyKeyword
	pyConst
	pyBuiltinType
	pyBuiltinFunc
	pyDecorator
	pyNumber
	pyString
	pyComment
	pyOperator
	pySeparator
)

var pyKinds = []pyKind{
	pyIdent, pyKeyword, pyConst, pyBuiltinType, pyBuiltinFunc, pyDecorator,
	pyNumber, pyString, pyComment, pyOperator, pySeparator,
}

func (k pyKind) String() string {
	return [...]string{
		"ident", "keyword", "const", "builtin_type", "builtin_func", "decorator",
		"number", "string", "comment", "operator", "separator",
	}[k]
}

// Python keywords (3.12+).
var pyKeywords = map[string]bool{
	"and": true, "as": true, "assert": true, "async": true, "await": true,
	"break": true, "class": true, "continue": true,
	"def": true, "del": true,
	"elif": true, "else": true, "except": true,
	"finally": true, "for": true, "from": true,
	"global": true, "if": true, "import": true, "in": true, "is": true,
	"lambda": true, "nonlocal": true, "not": true,
	"or": true, "pass": true, "raise": true, "return": true,
	"try": true, "while": true, "with": true, "yield": true,
}

var pyConsts = map[string]bool{
	"False": true, "None": true, "True": true,
	"NotImplemented": true, "Ellipsis": true,
}

var pyTypes = map[string]bool{
	"bool": true, "bytearray": true, "bytes": true, "complex": true,
	"dict": true, "float": true, "frozenset": true, "int": true,
	"list": true, "memoryview": true, "object": true, "set": true,
	"slice": true, "str": true, "tuple": true, "type": true,
}

var pyFuncs = map[string]bool{
	"abs": true, "all": true, "any": true, "ascii": true,
	"bin": true, "breakpoint": true, "callable": true, "chr": true,
	"classmethod": true, "compile": true, "delattr": true, "dir": true,
	"divmod": true, "enumerate": true, "eval": true, "exec": true,
	"filter": true, "format": true, "getattr": true, "globals": true,
	"hasattr": true, "hash": true, "help": true, "hex": true,
	"id": true, "input": true, "isinstance": true, "issubclass": true,
	"iter": true, "len": true, "locals": true, "map": true,
	"max": true, "min": true, "next": true, "oct": true,
	"open": true, "ord": true, "pow": true, "print": true,
	"property": true, "range": true, "repr": true, "reversed": true,
	"round": true, "setattr": true, "sorted": true, "staticmethod": true,
	"sum": true, "super": true, "vars": true, "zip": true,
	"__import__": true,
}

var pyTable = style.Table[pyKind]{}.
	Set(style.Skip(), pyIdent, pySeparator).
	Set(style.As(style.Keyword), pyKeyword).
	Set(style.As(style.LangConst), pyConst).
	Set(style.As(style.Type), pyBuiltinType).
	Set(style.As(style.Method), pyBuiltinFunc).
	Set(style.As(style.Preprocessor), pyDecorator).
	Set(style.As(style.Number), pyNumber).
	Set(style.As(style.String), pyString).
	Set(style.As(style.Comment), pyComment).
	Set(style.As(style.Operator), pyOperator)

func pythonLanguage(h style.FaultHook) Language {
	return Language{
		Name:       "python",
		Extensions: []string{".py", ".pyw", ".pyi"},
		Highlighter: style.Styler[pyKind]{
			Name:    "python",
			Source:  lexPython,
			Table:   pyTable,
			Kinds:   pyKinds,
			Matcher: style.MethodAfter(false, "def"),
			OnFault: h,
		},
	}
}

// isStringPrefix reports whether s is a valid Python string prefix.
func isStringPrefix(s string) bool {
	switch strings.ToLower(s) {
	case "r", "u", "f", "b", "rb", "br", "rf", "fr":
		return true
	}
	return false
}

func lexPython(src string) style.Lexer[pyKind] {
	var t tokens[pyKind]
	i := 0
	n := len(src)

	for i < n {
		c := src[i]
		start := i

		switch {
		case isSpace(c):
			i++

		case c == '#':
			i = lineEnd(src, i)
			t.add(pyComment, start, i)

		case c == '\'' || c == '"':
			i = scanPyString(src, i)
			t.add(pyString, start, i)

		case isDigit(c) || (c == '.' && i+1 < n && isDigit(src[i+1])):
			i = scanPyNumber(src, i)
			t.add(pyNumber, start, i)

		// Decorator at the start of a line: @name.dotted
		case c == '@' && i+1 < n && isIdentStart(src[i+1]) && atLineStart(src, i):
			i++
			for i < n && (isIdentChar(src[i]) || src[i] == '.') {
				i++
			}
			t.add(pyDecorator, start, i)

		// Identifier, keyword, builtin, or string prefix.
		case isIdentStart(c):
			for i < n && isIdentChar(src[i]) {
				i++
			}
			word := src[start:i]
			switch {
			case i < n && (src[i] == '\'' || src[i] == '"') && isStringPrefix(word):
				i = scanPyString(src, i)
				t.add(pyString, start, i)
			case pyKeywords[word]:
				t.add(pyKeyword, start, i)
			case pyConsts[word]:
				t.add(pyConst, start, i)
			case pyTypes[word]:
				t.add(pyBuiltinType, start, i)
			case pyFuncs[word]:
				t.add(pyBuiltinFunc, start, i)
			default:
				t.add(pyIdent, start, i)
			}

		case c == ',' || c == ';' || c == '.':
			i++
			t.add(pySeparator, start, i)

		case strings.IndexByte("()[]{}:=+-*/%<>!&|^~@", c) >= 0:
			i++
			t.add(pyOperator, start, i)

		default:
			i++
		}
	}
	return t.lexer()
}

// atLineStart reports whether only blanks precede src[i] on its line.
func atLineStart(src string, i int) bool {
	for j := i - 1; j >= 0; j-- {
		switch src[j] {
		case '\n':
			return true
		case ' ', '\t':
		default:
			return false
		}
	}
	return true
}

// scanPyString scans a quoted string starting at src[i] (which must be
// ' or "). It handles triple-quoted and single-quoted strings with
// backslash escapes. Returns the byte offset past the closing quote.
func scanPyString(src string, i int) int {
	n := len(src)
	quote := src[i]
	i++

	if i+1 < n && src[i] == quote && src[i+1] == quote {
		i += 2
		for i < n {
			if src[i] == '\\' && i+1 < n {
				i += 2
				continue
			}
			if i+2 < n && src[i] == quote && src[i+1] == quote && src[i+2] == quote {
				return i + 3
			}
			i++
		}
		return i // unterminated
	}
	return scanQuoted(src, i, quote)
}

// scanPyNumber scans a numeric literal starting at src[i].
// Handles int, float, hex, octal, binary, and complex (j suffix).
func scanPyNumber(src string, i int) int {
	n := len(src)

	if src[i] == '0' && i+1 < n {
		switch src[i+1] {
		case 'x', 'X':
			return scanDigits(src, i+2, isHexDigit)
		case 'o', 'O':
			return scanDigits(src, i+2, isOctDigit)
		case 'b', 'B':
			return scanDigits(src, i+2, isBinDigit)
		}
	}

	i = scanDigits(src, i, isDigit)
	if i < n && src[i] == '.' {
		i = scanDigits(src, i+1, isDigit)
	}
	i = scanExponent(src, i)
	if i < n && (src[i] == 'j' || src[i] == 'J') {
		i++
	}
	return i
}
