package lang

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/paul-lalonde/edstyle/style"
)

func TestHighlightCSSRule(t *testing.T) {
	src := "a { color: red; }"
	l, err := mustRegistry(t).Lookup("css")
	if err != nil {
		t.Fatal(err)
	}
	got := l.Highlighter.Execute(src)
	want := []style.Span{
		{Category: style.Operator, Start: 2, End: 3},    // {
		{Category: style.AttrName, Start: 4, End: 9},    // color
		{Category: style.Operator, Start: 9, End: 10},   // :
		{Category: style.AttrValue, Start: 11, End: 14}, // red
		{Category: style.Operator, Start: 16, End: 17},  // }
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Execute mismatch (-want +got):\n%s", diff)
	}
}

func TestHighlightCSSFunction(t *testing.T) {
	src := "p { color: rgb(0, 128, 255); }"
	got := highlight(t, "css", src)
	expectRegions(t, got, []region{
		{"rgb", style.Keyword},
		{"(", style.Operator},
		{"0", style.Number},
		{"128", style.Number},
		{")", style.Operator},
	})
	expectAbsent(t, got, "rgb(")
	expectAbsent(t, got, ",")
}

func TestHighlightCSS(t *testing.T) {
	src := `/* site */
@media screen {
  .nav > li:hover, #main {
    margin: -4px 0 10%;
    font-family: "Helvetica", sans-serif !important;
    background: #fff url('x.png');
  }
}
`
	got := highlight(t, "css", src)
	expectRegions(t, got, []region{
		{"/* site */", style.Comment},
		{"@media", style.AttrValue},
		{".nav", style.TagName},
		{">", style.Operator},
		{"#main", style.TagName},
		{"margin", style.AttrName},
		{"-4px", style.Number},
		{"10%", style.Number},
		{`"Helvetica"`, style.String},
		{"sans-serif", style.AttrValue},
		{"!important", style.AttrValue},
		{"#fff", style.AttrValue},
		{"url", style.Keyword},
		{"'x.png'", style.String},
	})
	expectAbsent(t, got, "screen")
	expectAbsent(t, got, "li")
	expectAbsent(t, got, ";")
}
