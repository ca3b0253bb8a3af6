package lang

import (
	"fmt"
	"go/scanner"
	"go/token"
	"io"
	"strings"

	"github.com/paul-lalonde/edstyle/style"
)

type goKind uint8

const (
	goIdent goKind = iota
	goKeyword
	goType
	goBuiltin
	goConst
	goNumber
	goString
	goComment
	goOperator
	goSeparator
)

var goKinds = []goKind{goIdent, goKeyword, goType, goBuiltin, goConst, goNumber, goString, goComment, goOperator, goSeparator}

func (k goKind) String() string {
	return [...]string{"ident", "keyword", "type", "builtin", "const", "number", "string", "comment", "operator", "separator"}[k]
}

// Predeclared Go identifiers that get special coloring.
var (
	goTypes = map[string]bool{
		"bool": true, "byte": true, "complex64": true, "complex128": true,
		"error": true, "float32": true, "float64": true, "int": true,
		"int8": true, "int16": true, "int32": true, "int64": true,
		"rune": true, "string": true, "uint": true, "uint8": true,
		"uint16": true, "uint32": true, "uint64": true, "uintptr": true,
		"any": true, "comparable": true,
	}
	goFuncs = map[string]bool{
		"append": true, "cap": true, "clear": true, "close": true,
		"complex": true, "copy": true, "delete": true, "imag": true,
		"len": true, "make": true, "max": true, "min": true,
		"new": true, "panic": true, "print": true, "println": true,
		"real": true, "recover": true,
	}
	goConsts = map[string]bool{
		"true": true, "false": true, "nil": true, "iota": true,
	}
)

var goTable = style.Table[goKind]{}.
	Set(style.Skip(), goIdent, goSeparator).
	Set(style.As(style.Keyword), goKeyword).
	Set(style.As(style.Type), goType).
	Set(style.As(style.Method), goBuiltin).
	Set(style.As(style.LangConst), goConst).
	Set(style.As(style.Number), goNumber).
	Set(style.As(style.String), goString).
	Set(style.As(style.Comment), goComment).
	Set(style.As(style.Operator), goOperator)

func goLanguage(h style.FaultHook) Language {
	return Language{
		Name:       "go",
		Extensions: []string{".go"},
		Highlighter: style.Styler[goKind]{
			Name:    "go",
			Source:  lexGo,
			Table:   goTable,
			Kinds:   goKinds,
			Matcher: style.MethodAfter(false, "func"),
			OnFault: h,
		},
	}
}

// goLexer wraps go/scanner. The first scan error ends the stream.
type goLexer struct {
	src  string
	s    scanner.Scanner
	file *token.File
	err  error
}

func lexGo(src string) style.Lexer[goKind] {
	l := &goLexer{src: src}
	fset := token.NewFileSet()
	l.file = fset.AddFile("", fset.Base(), len(src))
	l.s.Init(l.file, []byte(src), l.report, scanner.ScanComments)
	return l
}

func (l *goLexer) report(pos token.Position, msg string) {
	if l.err == nil {
		l.err = fmt.Errorf("%d:%d: %s", pos.Line, pos.Column, msg)
	}
}

func (l *goLexer) Next() (style.Token[goKind], error) {
	for {
		pos, tok, lit := l.s.Scan()
		if l.err != nil {
			return style.Token[goKind]{}, l.err
		}
		if tok == token.EOF {
			return style.Token[goKind]{}, io.EOF
		}
		// Skip auto-inserted semicolons; they have no source text.
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}
		start := l.file.Offset(pos)
		end := start + len(lit)
		if lit == "" {
			end = start + len(tok.String())
		}
		end = l.closeEnd(tok, start, end)
		return style.Token[goKind]{Kind: goKindOf(tok, lit), Start: start, End: end}, nil
	}
}

// closeEnd returns the end of a block comment or raw string in the
// source. The scanner drops carriage returns from their literals, so
// the literal is shorter than the source text on CRLF input.
func (l *goLexer) closeEnd(tok token.Token, start, end int) int {
	rest := l.src[start:]
	var opener, closer string
	switch {
	case tok == token.COMMENT && strings.HasPrefix(rest, "/*"):
		opener, closer = "/*", "*/"
	case tok == token.STRING && strings.HasPrefix(rest, "`"):
		opener, closer = "`", "`"
	default:
		return end
	}
	if i := strings.Index(rest[len(opener):], closer); i >= 0 {
		return start + len(opener) + i + len(closer)
	}
	return end
}

func goKindOf(tok token.Token, lit string) goKind {
	switch {
	case tok.IsKeyword():
		return goKeyword
	case tok == token.COMMENT:
		return goComment
	case tok == token.STRING, tok == token.CHAR:
		return goString
	case tok == token.INT, tok == token.FLOAT, tok == token.IMAG:
		return goNumber
	case tok == token.IDENT:
		switch {
		case goTypes[lit]:
			return goType
		case goFuncs[lit]:
			return goBuiltin
		case goConsts[lit]:
			return goConst
		}
		return goIdent
	case tok == token.SEMICOLON, tok == token.COMMA, tok == token.PERIOD:
		return goSeparator
	case tok.IsOperator():
		return goOperator
	}
	return goIdent
}
