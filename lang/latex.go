package lang

import (
	"strings"

	"github.com/paul-lalonde/edstyle/style"
)

type latexKind uint8

const (
	latexCommand latexKind = iota
	latexBlock             // \begin{env} or \end{env}; carries sub-tokens
	latexEnvName
	latexComment
	latexMath
	latexNumber
	latexBrace
	latexSeparator
)

var latexKinds = []latexKind{
	latexCommand, latexBlock, latexEnvName, latexComment, latexMath, latexNumber, latexBrace, latexSeparator,
}

func (k latexKind) String() string {
	return [...]string{"command", "block", "env_name", "comment", "math", "number", "brace", "separator"}[k]
}

var latexTable = style.Table[latexKind]{}.
	Set(style.As(style.Keyword), latexCommand).
	Set(style.Nested(), latexBlock).
	Set(style.As(style.TagName), latexEnvName).
	Set(style.As(style.Comment), latexComment).
	Set(style.As(style.String), latexMath).
	Set(style.As(style.Number), latexNumber).
	Set(style.As(style.Operator), latexBrace, latexSeparator)

func latexLanguage(h style.FaultHook) Language {
	return Language{
		Name:       "latex",
		Extensions: []string{".tex", ".sty", ".cls", ".ltx"},
		Highlighter: style.Styler[latexKind]{
			Name:    "latex",
			Source:  lexLatex,
			Table:   latexTable,
			Kinds:   latexKinds,
			OnFault: h,
		},
	}
}

// TeX dimension units accepted after a number.
var latexUnits = []string{"pt", "pc", "in", "bp", "cm", "mm", "dd", "cc", "sp", "ex", "em", "mu", "px"}

func lexLatex(src string) style.Lexer[latexKind] {
	var t tokens[latexKind]
	i := 0
	n := len(src)

	for i < n {
		c := src[i]
		start := i

		switch {
		// Comment: % to end of line. \% is handled as a command below.
		case c == '%':
			i = lineEnd(src, i)
			t.add(latexComment, start, i)

		case c == '\\' && i+1 < n && isLetter(src[i+1]):
			i += 2
			for i < n && isLetter(src[i]) {
				i++
			}
			cmd := src[start:i]
			if cmd == `\begin` || cmd == `\end` {
				if block, ok := scanLatexBlock(src, start, i); ok {
					t.list = append(t.list, block)
					i = block.End
					break
				}
			}
			t.add(latexCommand, start, i)

		// \<non-letter>: single-char command (\\, \%, \$, \{, etc.).
		case c == '\\' && i+1 < n:
			i += 2
			t.add(latexCommand, start, i)

		// Display math: $$...$$
		case c == '$' && i+1 < n && src[i+1] == '$':
			i += 2
			for i < n {
				if src[i] == '\\' && i+1 < n {
					i += 2
					continue
				}
				if src[i] == '$' && i+1 < n && src[i+1] == '$' {
					i += 2
					break
				}
				i++
			}
			t.add(latexMath, start, min(i, n))

		// Inline math: $...$, stopping at a blank line.
		case c == '$':
			i++
		inline:
			for i < n {
				switch {
				case src[i] == '\\' && i+1 < n:
					i += 2
					continue
				case src[i] == '$':
					i++
					break inline
				case src[i] == '\n' && i+1 < n && src[i+1] == '\n':
					break inline
				}
				i++
			}
			t.add(latexMath, start, i)

		case isDigit(c) || (c == '.' && i+1 < n && isDigit(src[i+1])):
			i = scanLatexNumber(src, i)
			t.add(latexNumber, start, i)

		case strings.IndexByte("{}[]()", c) >= 0:
			i++
			t.add(latexBrace, start, i)

		case c == '&' || c == '~' || c == '^' || c == '_':
			i++
			t.add(latexSeparator, start, i)

		default:
			i++
		}
	}
	return t.lexer()
}

// scanLatexBlock recognises the {env} argument of \begin or \end whose
// command spans [start, cmdEnd) and returns one block token whose
// sub-tokens are the command, the braces and the environment name.
func scanLatexBlock(src string, start, cmdEnd int) (style.Token[latexKind], bool) {
	n := len(src)
	j := cmdEnd
	for j < n && (src[j] == ' ' || src[j] == '\t') {
		j++
	}
	if j >= n || src[j] != '{' {
		return style.Token[latexKind]{}, false
	}
	open := j
	j++
	nameStart := j
	for j < n && src[j] != '}' && src[j] != '\n' {
		j++
	}
	if j >= n || src[j] != '}' || j == nameStart {
		return style.Token[latexKind]{}, false
	}
	return style.Token[latexKind]{
		Kind:  latexBlock,
		Start: start,
		End:   j + 1,
		Sub: []style.Token[latexKind]{
			{Kind: latexCommand, Start: start, End: cmdEnd},
			{Kind: latexBrace, Start: open, End: open + 1},
			{Kind: latexEnvName, Start: nameStart, End: j},
			{Kind: latexBrace, Start: j, End: j + 1},
		},
	}, true
}

func scanLatexNumber(src string, i int) int {
	for i < len(src) && (isDigit(src[i]) || src[i] == '.') {
		i++
	}
	for _, u := range latexUnits {
		if strings.HasPrefix(src[i:], u) && (i+len(u) >= len(src) || !isLetter(src[i+len(u)])) {
			return i + len(u)
		}
	}
	return i
}
