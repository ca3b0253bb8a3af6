// Package config loads edstyle settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/paul-lalonde/edstyle/lang"
	"github.com/paul-lalonde/edstyle/spanfile"
	"github.com/paul-lalonde/edstyle/style"
)

// EnvPrefix prefixes environment overrides, e.g. EDSTYLE_LOG_LEVEL.
const EnvPrefix = "EDSTYLE"

// Config holds all configuration options.
type Config struct {
	Debounce          time.Duration `mapstructure:"debounce"`           // delay before restyling after an edit
	SelectionDebounce time.Duration `mapstructure:"selection_debounce"` // delay before marking selection matches
	HighlightBg       string        `mapstructure:"highlight_bg"`       // background of selection matches
	TabWidth          int           `mapstructure:"tab_width"`
	AutoIndent        []string      `mapstructure:"auto_indent"` // languages with brace auto-indent

	// Extensions maps a file extension, with or without its dot, to a
	// language name. Entries override the built-in mapping.
	Extensions map[string]string `mapstructure:"extensions"`

	// Palette overrides the style of a category, keyed by category
	// name. An entry replaces the default style entirely.
	Palette map[string]StyleConfig `mapstructure:"palette"`

	Log LogConfig `mapstructure:"log"`
}

// StyleConfig is the styling of one category.
type StyleConfig struct {
	Fg     string `mapstructure:"fg"` // "#rrggbb" or "-"
	Bg     string `mapstructure:"bg"`
	Bold   bool   `mapstructure:"bold"`
	Italic bool   `mapstructure:"italic"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // empty for stderr
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	return Config{
		Debounce:          300 * time.Millisecond,
		SelectionDebounce: 100 * time.Millisecond,
		HighlightBg:       spanfile.FormatColor(spanfile.HighlightBg),
		TabWidth:          8,
		AutoIndent:        []string{"go", "rust"},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("debounce", d.Debounce)
	v.SetDefault("selection_debounce", d.SelectionDebounce)
	v.SetDefault("highlight_bg", d.HighlightBg)
	v.SetDefault("tab_width", d.TabWidth)
	v.SetDefault("auto_indent", d.AutoIndent)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// DefaultPath returns the config file looked for when none is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "edstyle", "config.yaml")
}

// Load reads the config file at path, or the default file if path is
// empty, then applies environment overrides and validates the result.
// A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if explicit || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that decoding cannot.
func (c *Config) Validate() error {
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive, got %v", c.Debounce)
	}
	if c.SelectionDebounce <= 0 {
		return fmt.Errorf("selection_debounce must be positive, got %v", c.SelectionDebounce)
	}
	if c.TabWidth <= 0 {
		return fmt.Errorf("tab_width must be positive, got %d", c.TabWidth)
	}
	if _, err := c.HighlightColor(); err != nil {
		return fmt.Errorf("highlight_bg: %w", err)
	}
	if _, err := c.StylePalette(); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	for ext, name := range c.Extensions {
		if name == "" {
			return fmt.Errorf("extensions.%s: language is required", ext)
		}
	}
	return nil
}

// HighlightColor returns the parsed highlight_bg.
func (c *Config) HighlightColor() (color.Color, error) {
	return spanfile.ParseColor(c.HighlightBg)
}

// StylePalette returns the default palette with the configured
// overrides applied.
func (c *Config) StylePalette() (spanfile.Palette, error) {
	p := spanfile.DefaultPalette()
	for name, sc := range c.Palette {
		cat, err := style.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("palette: %w", err)
		}
		a := spanfile.Attr{Bold: sc.Bold, Italic: sc.Italic}
		if sc.Fg != "" {
			if a.Fg, err = spanfile.ParseColor(sc.Fg); err != nil {
				return nil, fmt.Errorf("palette.%s.fg: %w", name, err)
			}
		}
		if sc.Bg != "" {
			if a.Bg, err = spanfile.ParseColor(sc.Bg); err != nil {
				return nil, fmt.Errorf("palette.%s.bg: %w", name, err)
			}
		}
		p[cat] = a
	}
	return p, nil
}

// ApplyExtensions adds the configured extension mappings to r.
func (c *Config) ApplyExtensions(r *lang.Registry) error {
	exts := make([]string, 0, len(c.Extensions))
	for ext := range c.Extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		if err := r.MapExtension(ext, c.Extensions[ext]); err != nil {
			return fmt.Errorf("extensions.%s: %w", ext, err)
		}
	}
	return nil
}

// AutoIndents reports whether brace auto-indent is on for language.
func (c *Config) AutoIndents(language string) bool {
	for _, l := range c.AutoIndent {
		if strings.EqualFold(l, language) {
			return true
		}
	}
	return false
}
