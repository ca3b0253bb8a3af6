package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/paul-lalonde/edstyle/lang"
	"github.com/paul-lalonde/edstyle/spanfile"
)

const goSrc = "package main\n"

// isolate keeps the user's config file and environment out of a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("EDSTYLE_LOG_LEVEL", "error")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSpans(t *testing.T) {
	isolate(t)
	path := writeFile(t, "main.go", goSrc)

	out, err := run(t, "spans", path)
	require.NoError(t, err)
	require.Contains(t, out, path+":1:1-8\tkeyword\t\"package\"\n")
}

func TestSpansKeepsArgumentOrder(t *testing.T) {
	isolate(t)
	var paths []string
	for _, name := range []string{"a.go", "b.py", "c.rs", "d.go"} {
		paths = append(paths, writeFile(t, name, "# x\n"))
	}

	out, err := run(t, append([]string{"spans"}, paths...)...)
	require.NoError(t, err)
	last := -1
	for _, p := range paths {
		i := strings.Index(out, p+":")
		if i < 0 {
			continue
		}
		require.Greater(t, i, last, "output for %s out of order", p)
		last = i
	}
	require.Contains(t, out, paths[1]+":1:1-4\tcomment\t\"# x\"\n")
}

func TestSpansFormatSpanfile(t *testing.T) {
	isolate(t)
	path := writeFile(t, "main.go", goSrc)

	out, err := run(t, "spans", "--format", "spanfile", path)
	require.NoError(t, err)

	runs, start, err := spanfile.Parse(out, len(goSrc))
	require.NoError(t, err)
	require.Equal(t, 0, start)
	require.Equal(t, len(goSrc), spanfile.TotalLen(runs))
	require.Equal(t, 7, runs[0].Len)
	require.True(t, runs[0].Attr.Equal(spanfile.DefaultPalette()[0]))
}

func TestSpansErrors(t *testing.T) {
	isolate(t)
	goPath := writeFile(t, "main.go", goSrc)

	_, err := run(t, "spans", writeFile(t, "notes.unknown", "x"))
	require.ErrorIs(t, err, lang.ErrUnknownLanguage)

	_, err = run(t, "spans", "--format", "spanfile", goPath, goPath)
	require.Error(t, err)

	_, err = run(t, "spans", "--format", "html", goPath)
	require.Error(t, err)

	_, err = run(t, "spans", filepath.Join(t.TempDir(), "missing.go"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSpansLangFlag(t *testing.T) {
	isolate(t)
	path := writeFile(t, "script", "# note\n")

	out, err := run(t, "spans", "--lang", "python", path)
	require.NoError(t, err)
	require.Contains(t, out, "\tcomment\t\"# note\"")
}

func TestConfigExtensions(t *testing.T) {
	isolate(t)
	cfg := writeFile(t, "config.yaml", "extensions:\n  tmpl: go\n")
	path := writeFile(t, "page.tmpl", goSrc)

	out, err := run(t, "--config", cfg, "spans", path)
	require.NoError(t, err)
	require.Contains(t, out, "\tkeyword\t\"package\"")

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "none.yaml"), "spans", path)
	require.Error(t, err)
}

func TestLines(t *testing.T) {
	isolate(t)
	path := writeFile(t, "notes.txt", "a\nbc\n")

	out, err := run(t, "lines", path)
	require.NoError(t, err)
	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		rows = append(rows, strings.Fields(line))
	}
	require.Equal(t, [][]string{
		{"LINE", "START", "END", "TEXT"},
		{"1", "0", "1", `"a"`},
		{"2", "2", "4", `"bc"`},
		{"3", "5", "5", `""`},
	}, rows)
}

func TestLinesOffset(t *testing.T) {
	isolate(t)
	path := writeFile(t, "notes.txt", "a\n\tbc\n")

	out, err := run(t, "lines", "--offset", "4", "--offset", "0", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, []string{"4", "2", "3", "10"}, strings.Fields(lines[1]))
	require.Equal(t, []string{"0", "1", "1", "1"}, strings.Fields(lines[2]))
}

func TestCheck(t *testing.T) {
	isolate(t)

	out, err := run(t, "check")
	require.NoError(t, err)
	require.Contains(t, out, "ok   go .go\n")
	require.Contains(t, out, "ok   python ")

	out, err = run(t, "check", "go", "cobol")
	require.ErrorIs(t, err, lang.ErrUnknownLanguage)
	require.Contains(t, out, "ok   go")
	require.Contains(t, out, "FAIL cobol")
}

func TestCatPlain(t *testing.T) {
	isolate(t)
	src := "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n"
	path := writeFile(t, "main.go", src)

	out, err := run(t, "cat", "--color", "never", path)
	require.NoError(t, err)
	require.Equal(t, src, out)
}

func TestCatColored(t *testing.T) {
	isolate(t)
	path := writeFile(t, "main.go", goSrc)

	out, err := run(t, "cat", "--color", "always", path)
	require.NoError(t, err)
	require.Contains(t, out, "\x1b[")
	require.Contains(t, out, "package")
	require.True(t, strings.HasSuffix(out, "main\n"), "got %q", out)
}

func TestCatSpansFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, "main.go", goSrc)
	spans := writeFile(t, "spans", "0 8 - hidden\n8 5 #0000ff bold\n")

	out, err := run(t, "cat", "--color", "never", "--spans", spans, path)
	require.NoError(t, err)
	require.Equal(t, "main\n", out)

	bad := writeFile(t, "bad", "0 3 -\n5 2 -\n")
	_, err = run(t, "cat", "--spans", bad, path)
	require.Error(t, err)
}

// syncBuffer lets the test read output while the command writes it.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestWatch(t *testing.T) {
	isolate(t)
	cfg := writeFile(t, "config.yaml", "debounce: 20ms\n")
	path := writeFile(t, "main.go", goSrc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var out syncBuffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--config", cfg, "watch", path})
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), ": 2 lines, 1 spans keyword=1\n")
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(goSrc+"\nfunc main() {}\n"), 0644))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), ": 4 lines,")
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestSummarize(t *testing.T) {
	var b bytes.Buffer
	summarize(&b, "x.go", 3, nil)
	require.Equal(t, "x.go: 3 lines, 0 spans\n", b.String())
}
