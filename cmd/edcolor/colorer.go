package main

import (
	"fmt"
	"image/color"
	"strings"
	"time"
	"unicode/utf8"

	"9fans.net/go/acme"
	"9fans.net/go/plan9"
	"9fans.net/go/plan9/client"
	"go.uber.org/zap"

	"github.com/paul-lalonde/edstyle/config"
	"github.com/paul-lalonde/edstyle/document"
	"github.com/paul-lalonde/edstyle/spanfile"
)

// window is the part of *acme.Win that edcolor uses.
type window interface {
	ReadAll(file string) ([]byte, error)
	Addr(format string, args ...interface{}) error
	Write(file string, b []byte) (int, error)
	WriteEvent(e *acme.Event) error
	EventChan() <-chan *acme.Event
}

// regionWriter replaces the styling of a region of the window body.
type regionWriter interface {
	WriteRegion(start int, runs []spanfile.Run) error
}

// spansFile writes to a window's spans file over 9P.
type spansFile struct {
	fsys *client.Fsys
	id   int
}

func (s *spansFile) WriteRegion(start int, runs []spanfile.Run) error {
	fid, err := s.fsys.Open(fmt.Sprintf("%d/spans", s.id), plan9.OWRITE)
	if err != nil {
		return fmt.Errorf("open spans: %w", err)
	}
	defer fid.Close()
	// Each write must hold complete lines so that the server can parse
	// it as a region update on its own.
	return spanfile.Encode(fid, start, runs, spanfile.DefaultChunk)
}

// colorer keeps a window's styling in step with its body.
type colorer struct {
	win     window
	spans   regionWriter
	doc     *document.Document
	store   *spanfile.Store // runs the window holds
	palette spanfile.Palette
	hlBg    color.Color
	log     *zap.Logger

	stale      bool // doc may differ from the body
	highlights [][2]int
	lastSel    string
	selQ0      int
	selQ1      int
}

// resync replaces the document text with the window body.
func (c *colorer) resync() {
	body, err := c.win.ReadAll("body")
	if err != nil {
		c.log.Warn("read body", zap.Error(err))
		return
	}
	c.doc.SetText(string(body))
	c.stale = false
	// The window's runs no longer line up with anything we know.
	c.store.Clear()
}

// applyEdit applies a body insert or delete event to the document.
func (c *colorer) applyEdit(e *acme.Event) {
	n := e.Q1 - e.Q0
	switch e.C2 {
	case 'I':
		c.store.Insert(e.Q0, n)
		text := string(e.Text)
		if utf8.RuneCountInString(text) != n {
			// Long inserts arrive without their text.
			c.stale = true
			return
		}
		if err := c.doc.Insert(e.Q0, text); err != nil {
			c.log.Warn("apply insert", zap.Error(err))
			c.stale = true
		}
	case 'D':
		c.store.Delete(e.Q0, n)
		if err := c.doc.Delete(e.Q0, n); err != nil {
			c.log.Warn("apply delete", zap.Error(err))
			c.stale = true
		}
	}
}

// recolor styles the document and writes the runs that changed.
func (c *colorer) recolor() {
	if c.stale {
		c.resync()
	}
	runs := spanfile.Colorize(c.doc.Len(), c.doc.Highlight(), c.palette)
	runs = spanfile.ApplyHighlights(runs, c.highlights, c.hlBg)

	start, region, ok := c.store.Diff(runs)
	if !ok {
		return
	}
	if err := c.spans.WriteRegion(start, region); err != nil {
		c.log.Warn("write spans", zap.Error(err))
		c.store.Clear()
		return
	}
	if start == 0 && spanfile.TotalLen(region) == c.doc.Len() {
		c.store.Reset(region)
	} else {
		c.store.RegionUpdate(start, region)
	}
	c.log.Debug("recolor", zap.Int("start", start), zap.Int("runs", len(region)))
}

// selectionChanged updates the occurrence highlights for the body
// selection [q0, q1). It reports whether they changed.
func (c *colorer) selectionChanged(q0, q1 int) bool {
	text := []rune(c.doc.Text())
	if q0 < 0 || q1 > len(text) || q0 > q1 {
		return false
	}
	sel := text[q0:q1]
	if len(sel) < 2 {
		if c.lastSel == "" {
			return false
		}
		// Selection cleared or too short: remove highlights.
		c.lastSel = ""
		c.highlights = nil
		return true
	}
	if string(sel) == c.lastSel && q0 == c.selQ0 && q1 == c.selQ1 {
		return false
	}
	c.lastSel, c.selQ0, c.selQ1 = string(sel), q0, q1
	c.highlights = spanfile.FindMatches(text, sel, q0, q1)
	return true
}

// eventLoop watches for edit and selection events, re-coloring with
// debouncing. It exits when the window is closed.
func (c *colorer) eventLoop(cfg *config.Config, autoIndent bool) {
	events := c.win.EventChan()
	var editTimer <-chan time.Time
	var selTimer <-chan time.Time
	canIndent := autoIndent

	for {
		select {
		case e, ok := <-events:
			if !ok {
				return
			}
			switch e.C2 {
			case 'I', 'D':
				c.applyEdit(e)
				if autoIndent && e.C2 == 'I' && e.C1 == 'K' && !c.stale {
					handleAutoIndent(c.win, c.doc, e)
				}
				c.lastSel = ""
				c.highlights = nil
				editTimer = time.After(cfg.Debounce)
			case 'S':
				if editTimer != nil {
					// Text is changing; the restyle will clear matches.
					break
				}
				if c.selectionChanged(e.Q0, e.Q1) {
					selTimer = time.After(cfg.SelectionDebounce)
				}
			case 'x', 'X':
				// Intercept "Indent" for languages that support auto-indent.
				if canIndent && strings.TrimRight(string(e.Text), "\n") == "Indent" {
					autoIndent = !autoIndent
					c.log.Debug("auto-indent", zap.Bool("on", autoIndent))
					break
				}
				c.passEvent(e)
			case 'l', 'L':
				c.passEvent(e)
			}
		case <-editTimer:
			editTimer = nil
			c.recolor()
		case <-selTimer:
			selTimer = nil
			c.recolor()
		}
	}
}

// passEvent hands an event back to the editor for default handling.
func (c *colorer) passEvent(e *acme.Event) {
	if err := c.win.WriteEvent(e); err != nil {
		c.log.Debug("write event", zap.String("type", string(e.C2)), zap.Error(err))
	}
}
