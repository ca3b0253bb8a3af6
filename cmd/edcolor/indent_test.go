package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/paul-lalonde/edstyle/document"
)

func TestComputeIndent(t *testing.T) {
	tests := []struct {
		line       string
		level      int
		afterBrace bool
	}{
		{"", 0, false},
		{"x := 1", 0, false},
		{"\tx := 1", 1, false},
		{"\t\tif x {", 2, true},
		{"\tif x {  \t", 1, true},
		{"func f() {\r", 0, true},
		{"\t  // {", 1, true},
		{"\t{}", 1, false},
	}
	for _, tt := range tests {
		level, afterBrace := computeIndent([]rune(tt.line))
		if level != tt.level || afterBrace != tt.afterBrace {
			t.Errorf("computeIndent(%q) = %d, %v; want %d, %v", tt.line, level, afterBrace, tt.level, tt.afterBrace)
		}
	}
}

func TestDedentTab(t *testing.T) {
	tests := []struct {
		before string
		want   int
	}{
		{"", -1},
		{"\t", 0},
		{"\t\t", 1},
		{"\t  ", 0},
		{"  ", -1},
		{"\tx ", -1},
	}
	for _, tt := range tests {
		if got := dedentTab([]rune(tt.before)); got != tt.want {
			t.Errorf("dedentTab(%q) = %d, want %d", tt.before, got, tt.want)
		}
	}
}

// keyed applies a keyboard insert to doc and runs auto-indent on it.
func keyed(t *testing.T, doc *document.Document, q0 int, text string) *fakeWindow {
	t.Helper()
	if err := doc.Insert(q0, text); err != nil {
		t.Fatal(err)
	}
	win := &fakeWindow{}
	e := insertEvent(q0, text)
	e.C1 = 'K'
	handleAutoIndent(win, doc, e)
	return win
}

func TestAutoIndentNewline(t *testing.T) {
	doc := document.New(nil)
	doc.SetText("func f() {\n\tif x {")
	win := keyed(t, doc, 18, "\n")
	if diff := cmp.Diff([]string{"#19"}, win.addrs); diff != "" {
		t.Errorf("addrs (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"data:\t\t"}, win.writes); diff != "" {
		t.Errorf("writes (-want +got):\n%s", diff)
	}
}

func TestAutoIndentNewlineWithoutIndent(t *testing.T) {
	doc := document.New(nil)
	doc.SetText("x := 1")
	win := keyed(t, doc, 6, "\n")
	if len(win.addrs) != 0 || len(win.writes) != 0 {
		t.Errorf("unexpected edits: %v %v", win.addrs, win.writes)
	}
}

func TestAutoIndentCloseBrace(t *testing.T) {
	doc := document.New(nil)
	doc.SetText("{\n\t\tx\n\t\t")
	win := keyed(t, doc, 8, "}")
	if diff := cmp.Diff([]string{"#7,#8"}, win.addrs); diff != "" {
		t.Errorf("addrs (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"data:"}, win.writes); diff != "" {
		t.Errorf("writes (-want +got):\n%s", diff)
	}
}

func TestAutoIndentCloseBraceAfterText(t *testing.T) {
	doc := document.New(nil)
	doc.SetText("\tx = 1")
	win := keyed(t, doc, 6, "}")
	if len(win.writes) != 0 {
		t.Errorf("unexpected writes: %v", win.writes)
	}
}
