package lang

import "github.com/paul-lalonde/edstyle/style"

type rustKind uint8

const (
	rustIdent rustKind = iota
	rustKeyword
	rustPrimitive
	rustStdType
	rustBool
	rustLifetime
	rustMacro
	rustAttribute
	rustNumber
	rustString
	rustComment
	rustOperator
	rustSeparator
)

var rustKinds = []rustKind{
	rustIdent, rustKeyword, rustPrimitive, rustStdType, rustBool, rustLifetime, rustMacro,
	rustAttribute, rustNumber, rustString, rustComment, rustOperator, rustSeparator,
}

func (k rustKind) String() string {
	return [...]string{
		"ident", "keyword", "primitive", "std_type", "bool", "lifetime", "macro",
		"attribute", "number", "string", "comment", "operator", "separator",
	}[k]
}

// Rust keywords.
var rustKeywords = map[string]bool{
	"as": true, "async": true, "await": true,
	"box": true, "break": true,
	"const": true, "continue": true, "crate": true,
	"dyn":  true,
	"else": true, "enum": true, "extern": true,
	"fn": true, "for": true,
	"if": true, "impl": true, "in": true,
	"let": true, "loop": true,
	"macro": true, "match": true, "mod": true, "move": true, "mut": true,
	"pub": true,
	"ref": true, "return": true,
	"self": true, "Self": true, "static": true, "struct": true, "super": true,
	"trait": true, "type": true,
	"unsafe": true, "use": true,
	"where": true, "while": true,
	"yield": true,
}

var rustPrimitives = map[string]bool{
	"bool": true, "char": true, "str": true,
	"i8": true, "i16": true, "i32": true, "i64": true, "i128": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true,
	"isize": true, "usize": true,
	"f32": true, "f64": true,
}

// Common std library types and variants.
var rustStdTypes = map[string]bool{
	"String": true, "Vec": true, "Option": true, "Result": true,
	"Box": true, "Rc": true, "Arc": true,
	"HashMap": true, "HashSet": true,
	"Some": true, "None": true, "Ok": true, "Err": true,
}

var rustTable = style.Table[rustKind]{}.
	Set(style.Skip(), rustIdent, rustSeparator).
	Set(style.As(style.Keyword), rustKeyword).
	Set(style.As(style.Type), rustPrimitive, rustStdType).
	Set(style.As(style.LangConst), rustBool).
	Set(style.As(style.String), rustLifetime, rustString).
	Set(style.As(style.Method), rustMacro).
	Set(style.As(style.Preprocessor), rustAttribute).
	Set(style.As(style.Number), rustNumber).
	Set(style.As(style.Comment), rustComment).
	Set(style.As(style.Operator), rustOperator)

func rustLanguage(h style.FaultHook) Language {
	return Language{
		Name:       "rust",
		Extensions: []string{".rs"},
		Highlighter: style.Styler[rustKind]{
			Name:    "rust",
			Source:  lexRust,
			Table:   rustTable,
			Kinds:   rustKinds,
			Matcher: style.MethodAfter(false, "fn"),
			OnFault: h,
		},
	}
}

func lexRust(src string) style.Lexer[rustKind] {
	var t tokens[rustKind]
	i := 0
	n := len(src)

	for i < n {
		c := src[i]
		start := i

		switch {
		case isSpace(c):
			i++

		// Line comment: // to end of line.
		case c == '/' && i+1 < n && src[i+1] == '/':
			i = lineEnd(src, i)
			t.add(rustComment, start, i)

		// Block comment: /* ... */ with nesting.
		case c == '/' && i+1 < n && src[i+1] == '*':
			i = scanRustBlockComment(src, i+2)
			t.add(rustComment, start, i)

		// Attribute: #[...] or #![...].
		case c == '#' && (i+1 < n && src[i+1] == '[' || i+2 < n && src[i+1] == '!' && src[i+2] == '['):
			i = scanRustAttribute(src, i)
			t.add(rustAttribute, start, i)

		// Byte string, byte char, raw byte string: b"...", b'x', br#"..."#.
		case c == 'b' && i+1 < n && src[i+1] == '"':
			i = scanRustString(src, i+2, '"')
			t.add(rustString, start, i)
		case c == 'b' && i+1 < n && src[i+1] == '\'':
			i = scanRustCharBody(src, i+2)
			t.add(rustString, start, i)
		case c == 'b' && i+1 < n && src[i+1] == 'r' && scanRustRawString(src, i+2) > i+2:
			i = scanRustRawString(src, i+2)
			t.add(rustString, start, i)

		// Raw string: r"..." or r#"..."#.
		case c == 'r' && i+1 < n && (src[i+1] == '"' || src[i+1] == '#') && scanRustRawString(src, i+1) > i+1:
			i = scanRustRawString(src, i+1)
			t.add(rustString, start, i)

		case c == '"':
			i = scanRustString(src, i+1, '"')
			t.add(rustString, start, i)

		// Char literal vs lifetime.
		case c == '\'':
			kind, end, ok := scanRustCharOrLifetime(src, i)
			if !ok {
				t.add(rustOperator, start, i+1)
				i++
				break
			}
			t.add(kind, start, end)
			i = end

		case isDigit(c):
			i = scanRustNumber(src, i)
			t.add(rustNumber, start, i)

		case isIdentStart(c):
			for i < n && isIdentChar(src[i]) {
				i++
			}
			word := src[start:i]
			switch {
			case i < n && src[i] == '!' && (i+1 >= n || src[i+1] != '='):
				i++
				t.add(rustMacro, start, i)
			case word == "true" || word == "false":
				t.add(rustBool, start, i)
			case rustKeywords[word]:
				t.add(rustKeyword, start, i)
			case rustPrimitives[word]:
				t.add(rustPrimitive, start, i)
			case rustStdTypes[word]:
				t.add(rustStdType, start, i)
			default:
				t.add(rustIdent, start, i)
			}

		case c == ';' || c == ',':
			i++
			t.add(rustSeparator, start, i)

		// Range operators are coloured; a lone dot is a field access.
		case c == '.':
			i++
			for i < n && i-start < 3 && (src[i] == '.' || src[i] == '=') {
				i++
			}
			if i-start == 1 {
				t.add(rustSeparator, start, i)
			} else {
				t.add(rustOperator, start, i)
			}

		case isRustOperator(c):
			i++
			t.add(rustOperator, start, i)

		// Everything else, including non-ASCII identifier bytes.
		default:
			i++
		}
	}
	return t.lexer()
}

func isRustOperator(c byte) bool {
	switch c {
	case '{', '}', '[', ']', '(', ')', ':', '=', '!', '+', '-', '*', '/', '%',
		'^', '&', '|', '<', '>', '?', '~', '@', '$', '#':
		return true
	}
	return false
}

func scanRustBlockComment(src string, i int) int {
	n := len(src)
	depth := 1
	for i < n && depth > 0 {
		switch {
		case src[i] == '/' && i+1 < n && src[i+1] == '*':
			depth++
			i += 2
		case src[i] == '*' && i+1 < n && src[i+1] == '/':
			depth--
			i += 2
		default:
			i++
		}
	}
	return i
}

// scanRustAttribute scans #[...] including nested brackets and strings.
func scanRustAttribute(src string, i int) int {
	n := len(src)
	for i < n && src[i] != '[' {
		i++
	}
	depth := 0
	for i < n {
		switch src[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i + 1
			}
		case '"':
			i = scanRustString(src, i+1, '"')
			continue
		case '\n':
			return i
		}
		i++
	}
	return i
}

// scanRustString scans past a regular string body (after the opening quote).
// Handles backslash escapes. Returns the byte offset past the closing quote.
func scanRustString(src string, i int, quote byte) int {
	n := len(src)
	for i < n {
		if src[i] == '\\' && i+1 < n {
			i += 2
			continue
		}
		if src[i] == quote {
			return i + 1
		}
		i++
	}
	return i // unterminated
}

// scanRustRawString scans a raw string starting at src[pos], which should
// point to the first '#' or '"' after 'r' (or 'br'). Returns the byte offset
// past the closing delimiter, or pos if no raw string was found.
func scanRustRawString(src string, pos int) int {
	n := len(src)
	i := pos

	hashes := 0
	for i < n && src[i] == '#' {
		hashes++
		i++
	}
	if i >= n || src[i] != '"' {
		return pos
	}
	i++

	for i < n {
		if src[i] == '"' {
			j := i + 1
			count := 0
			for j < n && count < hashes && src[j] == '#' {
				count++
				j++
			}
			if count == hashes {
				return j
			}
		}
		i++
	}
	return i // unterminated
}

// scanRustCharBody scans the body of a char literal after the opening
// tick. Returns the byte offset past the closing tick.
func scanRustCharBody(src string, i int) int {
	n := len(src)
	if i >= n {
		return i
	}
	if src[i] == '\\' {
		i++
		if i < n {
			i++
			// For \x, \u{...} etc., consume until closing quote.
			for i < n && src[i] != '\'' && src[i] != '\n' {
				i++
			}
		}
	} else {
		i++
	}
	if i < n && src[i] == '\'' {
		return i + 1
	}
	return i
}

// scanRustCharOrLifetime disambiguates 'x' (char literal) from 'a (lifetime).
func scanRustCharOrLifetime(src string, i int) (rustKind, int, bool) {
	n := len(src)
	i++ // opening tick
	if i >= n {
		return 0, 0, false
	}

	if src[i] == '\\' {
		j := i + 1
		if j >= n {
			return 0, 0, false
		}
		j++
		for j < n && src[j] != '\'' && src[j] != '\n' {
			j++
		}
		if j < n && src[j] == '\'' {
			return rustString, j + 1, true
		}
		return 0, 0, false
	}

	// Character like '(' or '0', or a multi-byte rune.
	if !isIdentStart(src[i]) {
		j := i + 1
		for j < n && j-i < 4 && src[j]&0xC0 == 0x80 {
			j++
		}
		if j < n && src[j] == '\'' {
			return rustString, j + 1, true
		}
		return 0, 0, false
	}

	j := i
	for j < n && isIdentChar(src[j]) {
		j++
	}
	if j < n && src[j] == '\'' && j-i == 1 {
		return rustString, j + 1, true
	}
	return rustLifetime, j, true
}

// scanRustNumber scans a Rust numeric literal starting at src[i].
// Handles decimal, hex (0x), octal (0o), binary (0b), floats,
// underscore separators, and type suffixes (u8, i32, f64, etc.).
func scanRustNumber(src string, i int) int {
	n := len(src)

	if src[i] == '0' && i+1 < n {
		switch src[i+1] {
		case 'x', 'X':
			return scanRustTypeSuffix(src, scanDigits(src, i+2, isHexDigit))
		case 'o', 'O':
			return scanRustTypeSuffix(src, scanDigits(src, i+2, isOctDigit))
		case 'b', 'B':
			return scanRustTypeSuffix(src, scanDigits(src, i+2, isBinDigit))
		}
	}

	i = scanDigits(src, i, isDigit)

	// Fractional part, distinguished from range syntax (1..10) and
	// method calls (1.max(2)).
	if i < n && src[i] == '.' {
		next := i + 1
		if next >= n || isDigit(src[next]) || !isIdentStart(src[next]) && src[next] != '.' {
			i = scanDigits(src, next, isDigit)
		}
	}

	i = scanExponent(src, i)
	return scanRustTypeSuffix(src, i)
}

func isOctDigit(c byte) bool { return c >= '0' && c <= '7' }
func isBinDigit(c byte) bool { return c == '0' || c == '1' }

var rustSuffixes = []string{
	"u8", "u16", "u32", "u64", "u128", "usize",
	"i8", "i16", "i32", "i64", "i128", "isize",
	"f32", "f64",
}

// scanRustTypeSuffix scans an optional numeric type suffix.
func scanRustTypeSuffix(src string, i int) int {
	n := len(src)
	if i >= n || (src[i] != 'u' && src[i] != 'i' && src[i] != 'f') {
		return i
	}
	for _, s := range rustSuffixes {
		end := i + len(s)
		if end <= n && src[i:end] == s && (end >= n || !isIdentChar(src[end])) {
			return end
		}
	}
	return i
}
