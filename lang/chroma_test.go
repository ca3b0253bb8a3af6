package lang

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/paul-lalonde/edstyle/style"
)

// hasRegion reports whether some region of category cat contains text.
func hasRegion(got []region, cat style.Category, text string) bool {
	for _, g := range got {
		if g.cat == cat && strings.Contains(g.text, text) {
			return true
		}
	}
	return false
}

func TestHighlightXML(t *testing.T) {
	src := "<?xml version=\"1.0\"?>\n<!-- note -->\n<a href=\"x\">&amp;</a>\n"
	got := highlight(t, "xml", src)
	for _, w := range []region{
		{"a", style.TagName},
		{"href", style.AttrName},
		{`"x"`, style.AttrValue},
		{"&amp;", style.EntityRef},
		{"note", style.Comment},
		{"<", style.Tag},
	} {
		if !hasRegion(got, w.cat, w.text) {
			t.Errorf("no %v region containing %q", w.cat, w.text)
		}
	}
	if t.Failed() {
		t.Logf("got %v", got)
	}
}

func TestHighlightPHP(t *testing.T) {
	src := "<?php\nfunction hello($name) {\n  // greet\n  return \"hi \" . $name;\n}\n"
	got := highlight(t, "php", src)
	expectRegions(t, got, []region{
		{"hello", style.Method},
	})
	for _, w := range []region{
		{"$name", style.Variable},
		{"greet", style.Comment},
		{"hi", style.String},
		{"function", style.Keyword},
	} {
		if !hasRegion(got, w.cat, w.text) {
			t.Errorf("no %v region containing %q", w.cat, w.text)
		}
	}
}

func TestHighlightFortranMatcherIgnoresCase(t *testing.T) {
	src := "REAL FUNCTION area(r)\n  area = 3.14 * r * r ! circle\nEND FUNCTION\nsubroutine Show()\n"
	got := highlight(t, "fortran", src)
	expectRegions(t, got, []region{
		{"area", style.Method},
		{"Show", style.Method},
	})
	if !hasRegion(got, style.Comment, "circle") {
		t.Errorf("no comment region in %v", got)
	}
}

func TestChromaRule(t *testing.T) {
	tests := []struct {
		tt   chroma.TokenType
		want style.Rule
	}{
		{chroma.Keyword, style.As(style.Keyword)},
		{chroma.KeywordDeclaration, style.As(style.Keyword)},
		{chroma.KeywordType, style.As(style.Type)},
		{chroma.KeywordConstant, style.As(style.LangConst)},
		{chroma.NameFunction, style.As(style.Method)},
		{chroma.NameVariableInstance, style.As(style.Variable)},
		{chroma.LiteralStringDouble, style.As(style.String)},
		{chroma.LiteralNumberHex, style.As(style.Number)},
		{chroma.CommentSingle, style.As(style.Comment)},
		{chroma.CommentPreproc, style.As(style.Preprocessor)},
		{chroma.OperatorWord, style.As(style.Operator)},
		{chroma.Punctuation, style.As(style.Operator)},
		{chroma.Name, style.Skip()},
		{chroma.Text, style.Skip()},
		{chroma.Error, style.Skip()},
	}
	for _, tt := range tests {
		if got := chromaRule(tt.tt); got != tt.want {
			t.Errorf("chromaRule(%v) = %v, want %v", tt.tt, got, tt.want)
		}
	}
}

func TestSplitXMLTag(t *testing.T) {
	tests := []struct {
		value string
		want  style.Token[chroma.TokenType]
	}{
		{
			value: "<item",
			want: style.Token[chroma.TokenType]{Kind: xmlTagParts, Start: 10, End: 15, Sub: []style.Token[chroma.TokenType]{
				{Kind: chroma.Punctuation, Start: 10, End: 11},
				{Kind: chroma.NameTag, Start: 11, End: 15},
			}},
		},
		{
			value: "</ns:item >",
			want: style.Token[chroma.TokenType]{Kind: xmlTagParts, Start: 10, End: 21, Sub: []style.Token[chroma.TokenType]{
				{Kind: chroma.Punctuation, Start: 10, End: 12},
				{Kind: chroma.NameTag, Start: 12, End: 19},
				{Kind: chroma.Punctuation, Start: 20, End: 21},
			}},
		},
		{
			value: "/>",
			want:  style.Token[chroma.TokenType]{Kind: chroma.Punctuation, Start: 10, End: 12},
		},
	}
	for _, tt := range tests {
		tok := style.Token[chroma.TokenType]{Kind: chroma.NameTag, Start: 10, End: 10 + len(tt.value)}
		got := splitXMLTag(tok, tt.value)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("splitXMLTag(%q) mismatch (-want +got):\n%s", tt.value, diff)
		}
	}
}

func TestChromaLexerPositions(t *testing.T) {
	// CRLF must not be rewritten: offsets index the original bytes.
	src := "<a>\r\n<b/>"
	l, _ := mustRegistry(t).Lookup("xml")
	for _, sp := range l.Highlighter.Execute(src) {
		text := src[sp.Start:sp.End]
		if strings.ContainsAny(text, "\r\n") && sp.Category != style.Comment {
			t.Errorf("span %+v covers line break %q", sp, text)
		}
	}
	got := highlight(t, "xml", src)
	if !hasRegion(got, style.TagName, "b") {
		t.Errorf("no tag name b in %v", got)
	}
}
