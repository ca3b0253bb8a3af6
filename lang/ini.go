package lang

import "github.com/paul-lalonde/edstyle/style"

type iniKind uint8

const (
	iniSection iniKind = iota
	iniComment
	iniEquals
	iniKey
	iniValue
)

var iniKinds = []iniKind{iniSection, iniComment, iniEquals, iniKey, iniValue}

func (k iniKind) String() string {
	return [...]string{"section", "comment", "equals", "key", "value"}[k]
}

var iniTable = style.Table[iniKind]{}.
	Set(style.As(style.TagName), iniSection).
	Set(style.As(style.Comment), iniComment).
	Set(style.As(style.Operator), iniEquals).
	Set(style.As(style.AttrName), iniKey).
	Set(style.As(style.AttrValue), iniValue)

func iniLanguage(h style.FaultHook) Language {
	return Language{
		Name:       "ini",
		Extensions: []string{".ini", ".cfg", ".conf", ".properties"},
		Highlighter: style.Styler[iniKind]{
			Name:    "ini",
			Source:  lexINI,
			Table:   iniTable,
			Kinds:   iniKinds,
			OnFault: h,
		},
	}
}

// lexINI works a line at a time: a comment, a [section], or a
// key = value pair. A line without a separator is all key.
func lexINI(src string) style.Lexer[iniKind] {
	var t tokens[iniKind]
	for i := 0; i < len(src); {
		end := lineEnd(src, i)
		lexINILine(&t, src, i, end)
		i = end + 1
	}
	return t.lexer()
}

func lexINILine(t *tokens[iniKind], src string, i, end int) {
	for i < end && isSpace(src[i]) {
		i++
	}
	if i >= end {
		return
	}
	switch src[i] {
	case ';', '#':
		t.add(iniComment, i, trimRight(src, i, end))
		return
	case '[':
		j := i + 1
		for j < end && src[j] != ']' {
			j++
		}
		if j < end {
			j++
		}
		t.add(iniSection, i, j)
		return
	}

	sep := i
	for sep < end && src[sep] != '=' && src[sep] != ':' {
		sep++
	}
	t.add(iniKey, i, trimRight(src, i, sep))
	if sep == end {
		return
	}
	t.add(iniEquals, sep, sep+1)
	v := sep + 1
	for v < end && isSpace(src[v]) {
		v++
	}
	t.add(iniValue, v, trimRight(src, v, end))
}

// trimRight returns the end of src[start:end] without trailing blanks.
func trimRight(src string, start, end int) int {
	for end > start && isSpace(src[end-1]) {
		end--
	}
	return end
}
