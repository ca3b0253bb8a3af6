// Package lang holds the built-in language plugins and the registry that
// selects one by name or file extension.
package lang

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/paul-lalonde/edstyle/style"
)

// ErrUnknownLanguage is returned when no language matches a name or file.
var ErrUnknownLanguage = errors.New("unknown language")

// Language is one registered highlighter.
type Language struct {
	Name        string
	Extensions  []string // lower-case, with the leading dot
	Highlighter style.Highlighter
}

// Registry maps names and extensions to languages. Build it once with
// NewRegistry and treat it as read-only afterwards.
type Registry struct {
	byName map[string]Language
	byExt  map[string]string
}

// Option configures NewRegistry.
type Option func(*options)

type options struct {
	onFault style.FaultHook
}

// WithFaultHook installs h as the lexical fault observer of every
// built-in language.
func WithFaultHook(h style.FaultHook) Option {
	return func(o *options) { o.onFault = h }
}

// NewRegistry returns a registry holding every built-in language.
func NewRegistry(opts ...Option) (*Registry, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	builtins, err := builtinLanguages(o)
	if err != nil {
		return nil, err
	}
	r := &Registry{
		byName: make(map[string]Language),
		byExt:  make(map[string]string),
	}
	for _, l := range builtins {
		if err := r.Register(l); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func builtinLanguages(o options) ([]Language, error) {
	langs := []Language{
		goLanguage(o.onFault),
		rustLanguage(o.onFault),
		pythonLanguage(o.onFault),
		latexLanguage(o.onFault),
		cssLanguage(o.onFault),
		iniLanguage(o.onFault),
		tomlLanguage(o.onFault),
	}
	for _, cl := range chromaLanguages {
		l, err := cl.language(o.onFault)
		if err != nil {
			return nil, err
		}
		langs = append(langs, l)
	}
	return langs, nil
}

// Register validates l and adds it. Names and extensions must be unique.
func (r *Registry) Register(l Language) error {
	if l.Name == "" {
		return errors.New("register: empty language name")
	}
	if l.Highlighter == nil {
		return fmt.Errorf("register %s: no highlighter", l.Name)
	}
	if _, ok := r.byName[l.Name]; ok {
		return fmt.Errorf("register %s: already registered", l.Name)
	}
	if err := l.Highlighter.Validate(); err != nil {
		return fmt.Errorf("register %s: %w", l.Name, err)
	}
	for _, ext := range l.Extensions {
		if !strings.HasPrefix(ext, ".") || ext != strings.ToLower(ext) {
			return fmt.Errorf("register %s: bad extension %q", l.Name, ext)
		}
		if other, ok := r.byExt[ext]; ok {
			return fmt.Errorf("register %s: extension %s already belongs to %s", l.Name, ext, other)
		}
	}
	r.byName[l.Name] = l
	for _, ext := range l.Extensions {
		r.byExt[ext] = l.Name
	}
	return nil
}

// MapExtension routes files ending in ext to the language called name,
// replacing any previous mapping.
func (r *Registry) MapExtension(ext, name string) error {
	if _, ok := r.byName[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
	}
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	r.byExt[ext] = name
	return nil
}

// Lookup returns the language called name.
func (r *Registry) Lookup(name string) (Language, error) {
	l, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
	}
	return l, nil
}

// ForFile returns the language for path, chosen by its extension.
func (r *Registry) ForFile(path string) (Language, error) {
	ext := strings.ToLower(filepath.Ext(path))
	name, ok := r.byExt[ext]
	if !ok {
		return Language{}, fmt.Errorf("%w: no language for %q", ErrUnknownLanguage, filepath.Base(path))
	}
	return r.byName[name], nil
}

// Names returns the registered language names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
