package lang

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/paul-lalonde/edstyle/style"
)

func TestHighlightINI(t *testing.T) {
	src := "[core]\n; comment\n  editor = vim  \n# other\nflag\nurl: http://x\n"
	got := highlight(t, "ini", src)
	want := []region{
		{"[core]", style.TagName},
		{"; comment", style.Comment},
		{"editor", style.AttrName},
		{"=", style.Operator},
		{"vim", style.AttrValue},
		{"# other", style.Comment},
		{"flag", style.AttrName},
		{"url", style.AttrName},
		{":", style.Operator},
		{"http://x", style.AttrValue},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(region{})); diff != "" {
		t.Errorf("regions mismatch (-want +got):\n%s", diff)
	}
}

func TestHighlightINIEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []region
	}{
		{"empty", "", nil},
		{"blank lines", "\n\n  \n", nil},
		{"unclosed section", "[core", []region{{"[core", style.TagName}}},
		{"empty value", "key =", []region{{"key", style.AttrName}, {"=", style.Operator}}},
		{"crlf", "a=b\r\n", []region{{"a", style.AttrName}, {"=", style.Operator}, {"b", style.AttrValue}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := highlight(t, "ini", tt.src)
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(region{})); diff != "" {
				t.Errorf("regions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
