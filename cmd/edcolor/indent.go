package main

import (
	"strings"

	"9fans.net/go/acme"

	"github.com/paul-lalonde/edstyle/document"
)

// handleAutoIndent processes keyboard insert events for brace-aware
// auto-indentation. The event must already be applied to doc. On
// newline, it inserts the previous line's indentation (plus one tab
// after '{'). On '}', it removes one tab of indentation from the
// current line.
func handleAutoIndent(win window, doc *document.Document, e *acme.Event) {
	text := string(e.Text)

	switch {
	case strings.HasSuffix(text, "\n"):
		// e.Q1 is just after the newline; the line being ended holds
		// the character before it.
		nl := e.Q1 - 1
		line, col := doc.Position(nl)
		lt, _ := doc.LineText(line)
		level, afterBrace := computeIndent([]rune(lt)[:col])
		if afterBrace {
			level++
		}
		if level > 0 {
			win.Addr("#%d", e.Q1)
			win.Write("data", []byte(strings.Repeat("\t", level)))
		}
	case text == "}":
		// e.Q1 is after the '}', so '}' is at e.Q1-1.
		line, col := doc.Position(e.Q1 - 1)
		lt, _ := doc.LineText(line)
		if tab := dedentTab([]rune(lt)[:col]); tab >= 0 {
			pos := doc.LineStart(line) + tab
			win.Addr("#%d,#%d", pos, pos+1)
			win.Write("data", nil)
		}
	}
}

// computeIndent examines the text of a line up to where a newline was
// inserted and returns the indentation level (number of leading tabs)
// and whether the last non-blank character is '{'.
func computeIndent(line []rune) (level int, afterBrace bool) {
	for level < len(line) && line[level] == '\t' {
		level++
	}
	last := len(line) - 1
	for last >= 0 && (line[last] == ' ' || line[last] == '\t' || line[last] == '\r') {
		last--
	}
	return level, last >= 0 && line[last] == '{'
}

// dedentTab returns the column of the last tab in the text before a
// closing brace, or -1 unless that text is all blanks holding a tab.
func dedentTab(before []rune) int {
	tab := -1
	for i, r := range before {
		switch r {
		case '\t':
			tab = i
		case ' ':
		default:
			return -1
		}
	}
	return tab
}
