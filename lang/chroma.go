package lang

import (
	"fmt"
	"io"
	"sort"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/paul-lalonde/edstyle/style"
)

// chromaSpec describes a language whose tokens come from a chroma lexer.
type chromaSpec struct {
	name       string
	lexer      string // chroma lexer name or alias
	extensions []string
	overrides  map[chroma.TokenType]style.Rule
	refine     func(tok style.Token[chroma.TokenType], value string) style.Token[chroma.TokenType]
	matcher    func() *style.Matcher
}

// xmlTagParts is a synthetic kind for a chroma tag token that has been
// split into its delimiter and name.
const xmlTagParts chroma.TokenType = 1 << 20

var chromaLanguages = []chromaSpec{
	{
		name:       "xml",
		lexer:      "xml",
		extensions: []string{".xml", ".xsd", ".xsl", ".xslt", ".svg", ".plist"},
		overrides: map[chroma.TokenType]style.Rule{
			xmlTagParts:                style.Nested(),
			chroma.Punctuation:         style.As(style.Tag),
			chroma.CommentPreproc:      style.As(style.Tag),
			chroma.LiteralString:       style.As(style.AttrValue),
			chroma.LiteralStringDouble: style.As(style.AttrValue),
			chroma.LiteralStringSingle: style.As(style.AttrValue),
		},
		refine: splitXMLTag,
	},
	{
		name:       "php",
		lexer:      "php",
		extensions: []string{".php", ".phtml", ".php3", ".php4", ".php5"},
		matcher:    func() *style.Matcher { return style.MethodAfter(false, "function") },
	},
	{
		name:       "fortran",
		lexer:      "fortran",
		extensions: []string{".f", ".f90", ".f95", ".f03", ".f08", ".for"},
		matcher:    func() *style.Matcher { return style.MethodAfter(true, "function", "subroutine") },
	},
}

// chromaKinds lists every standard chroma token type in order.
var chromaKinds = func() []chroma.TokenType {
	kinds := make([]chroma.TokenType, 0, len(chroma.StandardTypes))
	for tt := range chroma.StandardTypes {
		kinds = append(kinds, tt)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}()

func (s chromaSpec) language(h style.FaultHook) (Language, error) {
	l := lexers.Get(s.lexer)
	if l == nil {
		return Language{}, fmt.Errorf("%s: no chroma lexer %q", s.name, s.lexer)
	}
	l = chroma.Coalesce(l)

	kinds := chromaKinds
	if _, ok := s.overrides[xmlTagParts]; ok {
		kinds = append(append([]chroma.TokenType(nil), chromaKinds...), xmlTagParts)
	}
	table := style.Table[chroma.TokenType]{}
	for _, tt := range kinds {
		if r, ok := s.overrides[tt]; ok {
			table[tt] = r
		} else {
			table[tt] = chromaRule(tt)
		}
	}

	var m *style.Matcher
	if s.matcher != nil {
		m = s.matcher()
	}
	return Language{
		Name:       s.name,
		Extensions: s.extensions,
		Highlighter: style.Styler[chroma.TokenType]{
			Name:    s.name,
			Source:  chromaSource(l, table, s.refine),
			Table:   table,
			Kinds:   kinds,
			Matcher: m,
			OnFault: h,
		},
	}, nil
}

// chromaRule classifies a chroma token type by its specific type first,
// then by its sub-category and category.
func chromaRule(tt chroma.TokenType) style.Rule {
	switch tt {
	case chroma.KeywordConstant, chroma.NameConstant, chroma.NameBuiltinPseudo:
		return style.As(style.LangConst)
	case chroma.KeywordType, chroma.NameClass, chroma.NameException:
		return style.As(style.Type)
	case chroma.NameBuiltin, chroma.NameFunction, chroma.NameFunctionMagic:
		return style.As(style.Method)
	case chroma.NameVariable, chroma.NameVariableClass, chroma.NameVariableGlobal,
		chroma.NameVariableInstance, chroma.NameVariableMagic:
		return style.As(style.Variable)
	case chroma.NameAttribute:
		return style.As(style.AttrName)
	case chroma.NameTag:
		return style.As(style.TagName)
	case chroma.NameEntity:
		return style.As(style.EntityRef)
	case chroma.NameDecorator, chroma.CommentPreproc, chroma.CommentPreprocFile:
		return style.As(style.Preprocessor)
	case chroma.LiteralDate:
		return style.As(style.Number)
	}
	switch tt.SubCategory() {
	case chroma.LiteralString:
		return style.As(style.String)
	case chroma.LiteralNumber:
		return style.As(style.Number)
	}
	switch tt.Category() {
	case chroma.Keyword:
		return style.As(style.Keyword)
	case chroma.Comment:
		return style.As(style.Comment)
	case chroma.Operator, chroma.Punctuation:
		return style.As(style.Operator)
	}
	// Plain names, text, whitespace, generic markup and chroma.Error.
	return style.Skip()
}

func chromaSource(l chroma.Lexer, table style.Table[chroma.TokenType], refine func(style.Token[chroma.TokenType], string) style.Token[chroma.TokenType]) style.Source[chroma.TokenType] {
	return func(text string) style.Lexer[chroma.TokenType] {
		// EnsureLF is left off so token lengths match the input bytes.
		it, err := l.Tokenise(&chroma.TokeniseOptions{State: "root"}, text)
		if err != nil {
			return &style.SliceLexer[chroma.TokenType]{Err: fmt.Errorf("tokenise: %w", err)}
		}
		return &chromaLexer{it: it, table: table, refine: refine, limit: len(text)}
	}
}

// chromaLexer turns chroma's value-only tokens into positioned ones.
type chromaLexer struct {
	it     chroma.Iterator
	table  style.Table[chroma.TokenType]
	refine func(style.Token[chroma.TokenType], string) style.Token[chroma.TokenType]
	pos    int
	limit  int
}

func (l *chromaLexer) Next() (style.Token[chroma.TokenType], error) {
	for {
		tok := l.it()
		if tok == chroma.EOF {
			return style.Token[chroma.TokenType]{}, io.EOF
		}
		start := l.pos
		l.pos += len(tok.Value)
		// Lexers configured with EnsureNL may add a newline past the input.
		if tok.Value == "" || start >= l.limit {
			continue
		}
		t := style.Token[chroma.TokenType]{
			Kind:  l.normalize(tok.Type),
			Start: start,
			End:   min(l.pos, l.limit),
		}
		if l.refine != nil {
			t = l.refine(t, tok.Value)
		}
		return t, nil
	}
}

// normalize maps a token type missing from the table to its nearest
// ancestor that is present.
func (l *chromaLexer) normalize(tt chroma.TokenType) chroma.TokenType {
	for _, c := range []chroma.TokenType{tt, tt.SubCategory(), tt.Category()} {
		if _, ok := l.table[c]; ok {
			return c
		}
	}
	return chroma.Text
}

// splitXMLTag splits a chroma tag token such as "<item" or "</item>"
// into delimiter and name parts.
func splitXMLTag(tok style.Token[chroma.TokenType], value string) style.Token[chroma.TokenType] {
	if tok.Kind != chroma.NameTag {
		return tok
	}
	var sub []style.Token[chroma.TokenType]
	i := 0
	for i < len(value) && tok.Start+i < tok.End {
		c := value[i]
		j := i + 1
		var kind chroma.TokenType
		switch {
		case isSpace(c):
			i++
			continue
		case isXMLNameChar(c):
			kind = chroma.NameTag
			for j < len(value) && isXMLNameChar(value[j]) {
				j++
			}
		default:
			kind = chroma.Punctuation
			for j < len(value) && !isXMLNameChar(value[j]) && !isSpace(value[j]) {
				j++
			}
		}
		sub = append(sub, style.Token[chroma.TokenType]{
			Kind:  kind,
			Start: tok.Start + i,
			End:   min(tok.Start+j, tok.End),
		})
		i = j
	}
	switch len(sub) {
	case 0:
		return tok
	case 1:
		return sub[0]
	}
	tok.Kind = xmlTagParts
	tok.Sub = sub
	return tok
}

func isXMLNameChar(c byte) bool {
	return isIdentChar(c) || c == ':' || c == '.' || c == '-' || c >= 0x80
}
