// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/codeview/codeview.go
// Summary: Read-only source viewer app. Wires a highlighted document into a
// list view with indent guides, scrollbars and remembered scroll position.

package codeview

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/framegrace/texelui/adapter"
	"github.com/framegrace/texelui/core"
	"github.com/framegrace/texelview/config"
	"github.com/framegrace/texelview/indentguides"
	"github.com/framegrace/texelview/internal/theming"
	"github.com/framegrace/texelview/listview"
	"github.com/framegrace/texelview/scrollbar"
	"github.com/framegrace/texelview/viewstate"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Compile-time interface checks
var _ core.App = (*App)(nil)
var _ listview.Delegate = (*docDelegate)(nil)
var _ listview.Decoration = (*indentguides.Guides)(nil)

// saveDebounce batches scroll-position writes during continuous scrolling.
const saveDebounce = 500 * time.Millisecond

// App displays a single source file: syntax highlighted, one line per row,
// with indent guides and auto-hiding scrollbars. The scroll position and
// scrollbar preference are persisted per file when a view state store is
// provided.
type App struct {
	*adapter.UIApp

	doc   *Document
	list  *listview.List
	store *viewstate.Store

	restore   *viewstate.State
	pinned    bool
	hideDelay time.Duration

	saveMu    sync.Mutex
	saveTimer *time.Timer
}

// New loads path and builds the viewer. store may be nil to disable
// position persistence.
func New(path string, store *viewstate.Store) (*App, error) {
	cfg := config.App("codeview")

	doc, err := LoadDocument(path, cfg.GetInt("codeview", "tab_width", defaultTabWidth))
	if err != nil {
		return nil, err
	}
	doc.Highlight(cfg.GetString("codeview", "chroma_style", ""))

	ui := core.NewUIManager()
	app := &App{
		UIApp: adapter.NewUIApp(filepath.Base(path), ui),
		doc:   doc,
		store: store,
	}

	// A configured indent width overrides detection, for files whose
	// leading run does not reflect the real unit.
	if iw := cfg.GetInt("codeview", "indent_width", 0); iw > 0 {
		doc.IndentUnit = iw
	}

	app.list = listview.New(newDocDelegate(doc), 1)
	if cfg.GetBool("codeview.indent_guides", "enabled", true) {
		app.list.AddDecoration(indentguides.New(doc.IndentUnit, doc.Depths))
	}
	hide := cfg.GetInt("codeview.scrollbar", "auto_hide_ms", 1500)
	app.hideDelay = time.Duration(hide) * time.Millisecond
	app.list.SetAutoHideDelay(app.hideDelay)
	app.list.SetOnScroll(app.scheduleSave)
	ui.AddWidget(app.list)
	ui.Focus(app.list)

	if store != nil {
		st, ok, err := store.Load(doc.Path)
		if err != nil {
			log.Printf("[CODEVIEW] view state load failed: %v", err)
		} else if ok {
			// Offsets are applied on the first resize, once the viewport
			// can clamp them. The bar preference applies immediately.
			app.restore = &st
			app.setPinned(st.PinnedBars)
		}
	}
	return app, nil
}

// setPinned keeps the scrollbars permanently visible when on, and restores
// the configured auto-hide behavior when off.
func (a *App) setPinned(on bool) {
	a.pinned = on
	if on {
		a.list.SetAutoHideDelay(0)
	} else {
		a.list.SetAutoHideDelay(a.hideDelay)
	}
}

// HandleKey adds the bar-pinning toggle on top of the list's own keys.
func (a *App) HandleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyRune && ev.Rune() == 'b' {
		a.setPinned(!a.pinned)
		a.scheduleSave(
			a.list.ScrollOffset(scrollbar.Horizontal),
			a.list.ScrollOffset(scrollbar.Vertical))
		return
	}
	a.UIApp.HandleKey(ev)
}

// Document exposes the loaded file, e.g. for status surfaces.
func (a *App) Document() *Document { return a.doc }

// Resize lays the list out over the full pane.
func (a *App) Resize(cols, rows int) {
	a.UIApp.Resize(cols, rows)
	a.list.SetPosition(0, 0)
	a.list.Resize(cols, rows)
	if a.restore != nil {
		st := *a.restore
		a.restore = nil
		a.list.SetScrollOffset(scrollbar.Horizontal, st.OffsetX)
		a.list.SetScrollOffset(scrollbar.Vertical, st.OffsetY)
	}
}

// Stop flushes any pending position save before shutting down.
func (a *App) Stop() {
	a.saveMu.Lock()
	if a.saveTimer != nil {
		a.saveTimer.Stop()
		a.saveTimer = nil
	}
	a.saveMu.Unlock()

	if a.store != nil {
		st := viewstate.State{
			OffsetX:    a.list.ScrollOffset(scrollbar.Horizontal),
			OffsetY:    a.list.ScrollOffset(scrollbar.Vertical),
			PinnedBars: a.pinned,
		}
		if err := a.store.Save(a.doc.Path, st); err != nil {
			log.Printf("[CODEVIEW] view state save failed: %v", err)
		}
	}
	a.UIApp.Stop()
}

// scheduleSave debounces writes so dragging the thumb does not hammer the
// database.
func (a *App) scheduleSave(x, y int) {
	if a.store == nil {
		return
	}
	a.saveMu.Lock()
	defer a.saveMu.Unlock()
	if a.saveTimer != nil {
		a.saveTimer.Stop()
	}
	st := viewstate.State{OffsetX: x, OffsetY: y, PinnedBars: a.pinned}
	a.saveTimer = time.AfterFunc(saveDebounce, func() {
		if err := a.store.Save(a.doc.Path, st); err != nil {
			log.Printf("[CODEVIEW] view state save failed: %v", err)
		}
	})
}

// docDelegate renders document lines for the list view.
type docDelegate struct {
	doc  *Document
	base tcell.Style
	bg   tcell.Color
}

func newDocDelegate(doc *Document) *docDelegate {
	tm := theming.ForApp("codeview")
	fg := tm.GetSemanticColor("text.primary")
	bg := tm.GetSemanticColor("bg.surface")
	return &docDelegate{
		doc:  doc,
		base: tcell.StyleDefault.Foreground(fg).Background(bg),
		bg:   bg,
	}
}

func (d *docDelegate) Rows() int { return len(d.doc.Lines) }

func (d *docDelegate) RowWidth(row int) int { return d.doc.Lines[row].Width }

func (d *docDelegate) DrawRow(p *core.Painter, row int, rect core.Rect) {
	line := &d.doc.Lines[row]
	x := rect.X
	for i, r := range []rune(line.Text) {
		st := d.base
		if i < len(line.Styles) && line.Styles[i] != tcell.StyleDefault {
			st = line.Styles[i].Background(d.bg)
		}
		p.SetCell(x, rect.Y, r, st)
		w := runewidth.RuneWidth(r)
		if w < 1 {
			w = 1
		}
		x += w
	}
}
