// Edcolor syntax-colors source files in edwood using the spans file.
//
// Usage: set up fileHooks in exec.go to map extensions to "edcolor".
// Edcolor is invoked automatically when a matching file is opened.
//
// Edcolor reads the window tag to determine the filename, selects the
// language by file extension, reads the window body, styles it and
// writes span definitions to the window's spans file. Edwood renders
// the styled text through its rich.Frame engine.
//
// After the initial coloring, edcolor applies every body edit to its
// own copy of the text and line index, and re-colors after a short
// debounce delay. Only the region whose styling changed is rewritten.
// It exits when the window is closed or when the file extension has no
// registered language.
//
// The $winid environment variable (set automatically by edwood for B2
// commands) identifies the target window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"9fans.net/go/acme"
	"9fans.net/go/plan9/client"
	"github.com/sanity-io/litter"
	"go.uber.org/zap"

	"github.com/paul-lalonde/edstyle/config"
	"github.com/paul-lalonde/edstyle/document"
	"github.com/paul-lalonde/edstyle/internal/logger"
	"github.com/paul-lalonde/edstyle/lang"
	"github.com/paul-lalonde/edstyle/spanfile"
)

const version = "edcolor v0.2.0"

var (
	verbose    = flag.Bool("v", false, "print version and configuration")
	configPath = flag.String("config", "", "config file (default $XDG_CONFIG_HOME/edstyle/config.yaml)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if *verbose {
		fmt.Println(version)
		litter.Dump(cfg)
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fatal(err)
	}
	defer log.Sync()

	id, err := getWinID()
	if err != nil {
		fatal(err)
	}
	log = log.With(zap.Int("window", id))

	reg, err := lang.NewRegistry(lang.WithFaultHook(logger.FaultHook(log)))
	if err != nil {
		fatal(err)
	}
	if err := cfg.ApplyExtensions(reg); err != nil {
		fatal(err)
	}
	palette, err := cfg.StylePalette()
	if err != nil {
		fatal(err)
	}
	hlBg, err := cfg.HighlightColor()
	if err != nil {
		fatal(err)
	}

	win, err := acme.Open(id, nil)
	if err != nil {
		fatal(fmt.Errorf("open window: %w", err))
	}

	name, err := windowFile(win)
	if err != nil {
		fatal(err)
	}
	l, err := reg.ForFile(name)
	if errors.Is(err, lang.ErrUnknownLanguage) {
		// No language for this file type: exit silently.
		log.Debug("no language", zap.String("file", name))
		return
	}
	if err != nil {
		fatal(err)
	}

	// Force the event file open now (EventChan opens it lazily).
	// This sets filemenu=false in edwood. We then re-enable it
	// with "menu" so Undo/Redo/Put stay in the tag.
	win.OpenEvent()
	win.Ctl("menu")

	// 9P filesystem for spans writing (needs manual chunking
	// to stay within message size limits).
	fsys, err := client.MountService("acme")
	if err != nil {
		fatal(fmt.Errorf("mount acme: %w", err))
	}

	c := &colorer{
		win:     win,
		spans:   &spansFile{fsys: fsys, id: id},
		doc:     document.New(l.Highlighter, document.WithLogger(log), document.WithTabWidth(cfg.TabWidth)),
		store:   spanfile.NewStore(),
		palette: palette,
		hlBg:    hlBg,
		log:     log.With(zap.String("language", l.Name)),
	}
	c.log.Debug("coloring", zap.String("file", name), zap.Stringer("doc", c.doc.ID))
	c.resync()
	c.recolor()
	c.eventLoop(cfg, cfg.AutoIndents(l.Name))
}

// windowFile returns the file name at the start of the window tag.
func windowFile(win *acme.Win) (string, error) {
	tag, err := win.ReadAll("tag")
	if err != nil {
		return "", fmt.Errorf("read tag: %w", err)
	}
	name, _, _ := strings.Cut(string(tag), " ")
	return name, nil
}

func getWinID() (int, error) {
	s := os.Getenv("winid")
	if s == "" {
		return 0, fmt.Errorf("$winid not set")
	}
	return strconv.Atoi(s)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "edcolor: %v\n", err)
	os.Exit(1)
}
