package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/paul-lalonde/edstyle/lang"
	"github.com/paul-lalonde/edstyle/spanfile"
	"github.com/paul-lalonde/edstyle/style"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.Equal(t, 300*time.Millisecond, cfg.Debounce)
	require.Equal(t, 100*time.Millisecond, cfg.SelectionDebounce)
	require.Equal(t, "#f0f4ff", cfg.HighlightBg)
	require.Equal(t, "info", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
debounce: 50ms
highlight_bg: "#ffff00"
auto_indent: [go]
extensions:
  h: go
  mdx: xml
palette:
  keyword:
    fg: "#ff0000"
    italic: true
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 50*time.Millisecond, cfg.Debounce)
	require.Equal(t, 100*time.Millisecond, cfg.SelectionDebounce, "unset keys keep defaults")
	require.Equal(t, "debug", cfg.Log.Level)
	require.True(t, cfg.AutoIndents("Go"))
	require.False(t, cfg.AutoIndents("rust"))

	p, err := cfg.StylePalette()
	require.NoError(t, err)
	require.True(t, p[style.Keyword].Equal(spanfile.Attr{Fg: mustColor(t, "#ff0000"), Italic: true}))
	require.True(t, p[style.String].Equal(spanfile.DefaultPalette()[style.String]))

	r, err := lang.NewRegistry()
	require.NoError(t, err)
	require.NoError(t, cfg.ApplyExtensions(r))
	l, err := r.ForFile("x/y.h")
	require.NoError(t, err)
	require.Equal(t, "go", l.Name)
	l, err = r.ForFile("page.MDX")
	require.NoError(t, err)
	require.Equal(t, "xml", l.Name)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "log:\n  level: warn\n")
	t.Setenv("EDSTYLE_LOG_LEVEL", "error")
	t.Setenv("EDSTYLE_DEBOUNCE", "1s")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "error", cfg.Log.Level)
	require.Equal(t, time.Second, cfg.Debounce)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "read config")
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"bad highlight", `highlight_bg: blue`, "highlight_bg"},
		{"bad category", "palette:\n  shiny:\n    fg: \"#000000\"\n", "palette"},
		{"bad palette color", "palette:\n  comment:\n    fg: gray\n", "palette.comment.fg"},
		{"bad level", "log:\n  level: chatty\n", "log.level"},
		{"zero debounce", "debounce: 0s\n", "debounce"},
		{"empty language", "extensions:\n  h: \"\"\n", "language is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestApplyExtensionsUnknownLanguage(t *testing.T) {
	cfg := Defaults()
	cfg.Extensions = map[string]string{"h": "cobol"}
	r, err := lang.NewRegistry()
	require.NoError(t, err)
	err = cfg.ApplyExtensions(r)
	require.ErrorIs(t, err, lang.ErrUnknownLanguage)
}

func mustColor(t *testing.T, s string) color.Color {
	t.Helper()
	c, err := spanfile.ParseColor(s)
	require.NoError(t, err)
	return c
}
