// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: listview/listview.go
// Summary: Virtualized uniform-row list widget with pluggable per-frame
// decorations and interactive overlay scrollbars.

package listview

import (
	"sync"
	"time"

	"github.com/framegrace/texelui/core"
	"github.com/framegrace/texelui/theme"
	"github.com/framegrace/texelview/scrollbar"
	"github.com/gdamore/tcell/v2"
)

// Delegate supplies list content. Rows are uniform: every row occupies the
// list's item height. DrawRow paints one row into rect; the painter is
// already clipped to the list's viewport.
type Delegate interface {
	Rows() int
	// RowWidth returns the row's content width in cells, used to size the
	// horizontal scroll range.
	RowWidth(row int) int
	DrawRow(p *core.Painter, row int, rect core.Rect)
}

// Decoration is a per-frame visual layered over the visible rows. Prepaint
// computes layout state for the visible range, Paint draws it; the list
// calls them once per frame in that order, on every visible-range change.
// offsetX and offsetY are the scroll offsets in cells, so decorations can
// anchor to the same positions the rows paint at, including the partial
// item at the top when offsetY is not a multiple of itemHeight.
type Decoration interface {
	Prepaint(start, end int, bounds core.Rect, itemHeight, offsetX, offsetY int)
	Paint(p *core.Painter)
}

// defaultAutoHideDelay is how long scrollbars stay up after scroll activity.
const defaultAutoHideDelay = 1500 * time.Millisecond

// List is a virtualized list view over uniformly sized items. It owns the
// scroll offsets (cells, non-negative), the decoration pipeline and a pair
// of overlay scrollbars, and implements scrollbar.Target.
//
// All mutation happens on the UI thread via key/mouse handlers; geometry is
// recomputed inside Draw from state as of the latest mutation, and every
// mutating handler invalidates before returning.
type List struct {
	core.BaseWidget
	Style tcell.Style

	delegate   Delegate
	itemHeight int

	offsetX, offsetY int
	contentWidth     int

	decorations []Decoration
	vbar, hbar  *scrollbar.Scrollbar

	inv      func(core.Rect)
	onScroll func(x, y int)

	autoHideDelay time.Duration
	timerMu       sync.Mutex
	hideTimer     *time.Timer
}

// New creates a list over delegate with the given rows-per-item height.
func New(delegate Delegate, itemHeight int) *List {
	if itemHeight < 1 {
		itemHeight = 1
	}
	tm := theme.Get()
	fg := tm.GetSemanticColor("text.primary")
	bg := tm.GetSemanticColor("bg.surface")

	l := &List{
		Style:         tcell.StyleDefault.Foreground(fg).Background(bg),
		delegate:      delegate,
		itemHeight:    itemHeight,
		autoHideDelay: defaultAutoHideDelay,
	}
	l.SetFocusable(true)
	l.vbar = scrollbar.New(scrollbar.Vertical, l)
	l.hbar = scrollbar.New(scrollbar.Horizontal, l)
	l.vbar.SetAutoHide(l.hideBars)
	l.hbar.SetAutoHide(l.hideBars)
	l.Reload()
	return l
}

// AddDecoration appends a decoration to the paint pipeline. Decorations
// paint in insertion order, over the rows and under the scrollbars.
func (l *List) AddDecoration(d Decoration) {
	l.decorations = append(l.decorations, d)
}

// VerticalBar exposes the vertical scrollbar, e.g. for color overrides.
func (l *List) VerticalBar() *scrollbar.Scrollbar { return l.vbar }

// HorizontalBar exposes the horizontal scrollbar.
func (l *List) HorizontalBar() *scrollbar.Scrollbar { return l.hbar }

// ItemHeight returns the rows-per-item height.
func (l *List) ItemHeight() int { return l.itemHeight }

// SetOnScroll installs a hook fired after every offset change, with the new
// offsets. Used by hosts to persist view state.
func (l *List) SetOnScroll(fn func(x, y int)) { l.onScroll = fn }

// SetAutoHideDelay overrides how long scrollbars linger after activity.
// Zero or negative disables auto-hide entirely: bars stay visible.
func (l *List) SetAutoHideDelay(d time.Duration) {
	l.autoHideDelay = d
	if d <= 0 {
		l.vbar.Show()
		l.hbar.Show()
	}
}

// Reload re-reads row count and widths from the delegate. Call after the
// delegate's content changes.
func (l *List) Reload() {
	l.contentWidth = 0
	if l.delegate == nil {
		return
	}
	for row := 0; row < l.delegate.Rows(); row++ {
		if w := l.delegate.RowWidth(row); w > l.contentWidth {
			l.contentWidth = w
		}
	}
	l.clampOffsets()
	l.invalidate()
}

// SetInvalidator implements core.InvalidationAware.
func (l *List) SetInvalidator(fn func(core.Rect)) {
	l.inv = fn
	l.vbar.SetInvalidator(fn)
	l.hbar.SetInvalidator(fn)
}

func (l *List) invalidate() {
	if l.inv != nil {
		l.inv(l.Rect)
	}
}

// SetPosition moves the list and relays out the overlay bars.
func (l *List) SetPosition(x, y int) {
	l.BaseWidget.SetPosition(x, y)
	l.layoutBars()
}

// Resize updates the viewport and relays out the overlay bars. Offsets are
// clamped so a grown viewport never leaves the content.
func (l *List) Resize(w, h int) {
	l.BaseWidget.Resize(w, h)
	l.layoutBars()
	l.clampOffsets()
}

// layoutBars places each bar on its trailing edge per its DesiredSize.
func (l *List) layoutBars() {
	vr := l.vbar.DesiredSize(l.Rect)
	l.vbar.SetPosition(vr.X, vr.Y)
	l.vbar.Resize(vr.W, vr.H)

	hr := l.hbar.DesiredSize(l.Rect)
	// Leave the shared corner to the vertical bar.
	if hr.W > 1 {
		hr.W--
	}
	l.hbar.SetPosition(hr.X, hr.Y)
	l.hbar.Resize(hr.W, hr.H)
}

// rows returns the delegate row count, zero without a delegate.
func (l *List) rows() int {
	if l.delegate == nil {
		return 0
	}
	return l.delegate.Rows()
}

// VisibleRange returns the half-open row range intersecting the viewport.
func (l *List) VisibleRange() (start, end int) {
	if l.itemHeight <= 0 || l.Rect.H <= 0 {
		return 0, 0
	}
	start = l.offsetY / l.itemHeight
	end = (l.offsetY + l.Rect.H + l.itemHeight - 1) / l.itemHeight
	if n := l.rows(); end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}

// ScrollOffset implements scrollbar.Target.
func (l *List) ScrollOffset(axis scrollbar.Axis) int {
	if axis == scrollbar.Horizontal {
		return l.offsetX
	}
	return l.offsetY
}

// ViewportLength implements scrollbar.Target.
func (l *List) ViewportLength(axis scrollbar.Axis) int {
	if axis == scrollbar.Horizontal {
		return l.Rect.W
	}
	return l.Rect.H
}

// ContentLength implements scrollbar.Target.
func (l *List) ContentLength(axis scrollbar.Axis) int {
	if axis == scrollbar.Horizontal {
		return l.contentWidth
	}
	return l.rows() * l.itemHeight
}

// LineHeight implements scrollbar.Target.
func (l *List) LineHeight() int { return l.itemHeight }

// Focused implements scrollbar.Target.
func (l *List) Focused() bool { return l.IsFocused() }

// SetScrollOffset implements scrollbar.Target. Offsets clamp to the scroll
// range; any actual change flashes the bars, fires the scroll hook and
// requests a repaint.
func (l *List) SetScrollOffset(axis scrollbar.Axis, offset int) {
	max := l.ContentLength(axis) - l.ViewportLength(axis)
	if max < 0 {
		max = 0
	}
	if offset < 0 {
		offset = 0
	}
	if offset > max {
		offset = max
	}

	changed := false
	if axis == scrollbar.Horizontal {
		changed = offset != l.offsetX
		l.offsetX = offset
	} else {
		changed = offset != l.offsetY
		l.offsetY = offset
	}
	if !changed {
		return
	}
	l.flashBars()
	if l.onScroll != nil {
		l.onScroll(l.offsetX, l.offsetY)
	}
	l.invalidate()
}

// ScrollBy scrolls relative along one axis.
func (l *List) ScrollBy(axis scrollbar.Axis, delta int) {
	l.SetScrollOffset(axis, l.ScrollOffset(axis)+delta)
}

// ScrollToRow scrolls minimally so the given row is fully visible.
func (l *List) ScrollToRow(row int) {
	if row < 0 || l.itemHeight <= 0 {
		return
	}
	top := row * l.itemHeight
	bottom := top + l.itemHeight
	switch {
	case top < l.offsetY:
		l.SetScrollOffset(scrollbar.Vertical, top)
	case bottom > l.offsetY+l.Rect.H:
		l.SetScrollOffset(scrollbar.Vertical, bottom-l.Rect.H)
	}
}

func (l *List) clampOffsets() {
	l.SetScrollOffset(scrollbar.Horizontal, l.offsetX)
	l.SetScrollOffset(scrollbar.Vertical, l.offsetY)
}

// flashBars shows scrollable bars and schedules the auto-hide timer.
func (l *List) flashBars() {
	if l.ContentLength(scrollbar.Vertical) > l.Rect.H {
		l.vbar.Show()
	}
	if l.ContentLength(scrollbar.Horizontal) > l.Rect.W {
		l.hbar.Show()
	}
	if l.autoHideDelay <= 0 {
		return
	}
	l.timerMu.Lock()
	defer l.timerMu.Unlock()
	if l.hideTimer != nil {
		l.hideTimer.Stop()
	}
	l.hideTimer = time.AfterFunc(l.autoHideDelay, l.hideBars)
}

// hideBars hides both bars; a bar with an active drag stays up.
func (l *List) hideBars() {
	l.vbar.Hide()
	l.hbar.Hide()
}

// Draw renders the visible rows, then decorations, then the scrollbars.
func (l *List) Draw(p *core.Painter) {
	style := l.EffectiveStyle(l.Style)
	p.Fill(l.Rect, ' ', style)
	if l.delegate == nil || l.Rect.W <= 0 || l.Rect.H <= 0 {
		return
	}

	clipped := p.WithClip(l.Rect)
	start, end := l.VisibleRange()

	width := l.contentWidth
	if width < l.Rect.W {
		width = l.Rect.W
	}
	for row := start; row < end; row++ {
		rect := core.Rect{
			X: l.Rect.X - l.offsetX,
			Y: l.Rect.Y + row*l.itemHeight - l.offsetY,
			W: width,
			H: l.itemHeight,
		}
		l.delegate.DrawRow(clipped, row, rect)
	}

	for _, d := range l.decorations {
		d.Prepaint(start, end, l.Rect, l.itemHeight, l.offsetX, l.offsetY)
		d.Paint(clipped)
	}

	l.vbar.Draw(p)
	l.hbar.Draw(p)
}

// HandleKey scrolls with the usual paging keys.
func (l *List) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyPgUp:
		l.ScrollBy(scrollbar.Vertical, -l.Rect.H)
		return true
	case tcell.KeyPgDn:
		l.ScrollBy(scrollbar.Vertical, l.Rect.H)
		return true
	case tcell.KeyHome:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			l.SetScrollOffset(scrollbar.Vertical, 0)
			return true
		}
	case tcell.KeyEnd:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			l.SetScrollOffset(scrollbar.Vertical, l.ContentLength(scrollbar.Vertical))
			return true
		}
	case tcell.KeyUp:
		l.ScrollBy(scrollbar.Vertical, -l.itemHeight)
		return true
	case tcell.KeyDown:
		l.ScrollBy(scrollbar.Vertical, l.itemHeight)
		return true
	case tcell.KeyLeft:
		l.ScrollBy(scrollbar.Horizontal, -1)
		return true
	case tcell.KeyRight:
		l.ScrollBy(scrollbar.Horizontal, 1)
		return true
	}
	return false
}

// HandleMouse implements core.MouseAware. Scrollbar drags win over
// everything so moves outside the bar continue the drag; otherwise events
// over a bar belong to the bar, and wheel events over the content scroll
// the list.
func (l *List) HandleMouse(ev *tcell.EventMouse) bool {
	if l.vbar.Dragging() {
		return l.vbar.HandleMouse(ev)
	}
	if l.hbar.Dragging() {
		return l.hbar.HandleMouse(ev)
	}

	x, y := ev.Position()
	if !l.HitTest(x, y) {
		return false
	}

	if l.vbar.HitTest(x, y) {
		return l.vbar.HandleMouse(ev)
	}
	if l.hbar.HitTest(x, y) {
		return l.hbar.HandleMouse(ev)
	}

	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		l.ScrollBy(scrollbar.Vertical, -3*l.itemHeight)
		return true
	case ev.Buttons()&tcell.WheelDown != 0:
		l.ScrollBy(scrollbar.Vertical, 3*l.itemHeight)
		return true
	case ev.Buttons()&tcell.WheelLeft != 0:
		l.ScrollBy(scrollbar.Horizontal, -3)
		return true
	case ev.Buttons()&tcell.WheelRight != 0:
		l.ScrollBy(scrollbar.Horizontal, 3)
		return true
	}
	return true
}

// WidgetAt implements core.HitTester: the list handles its own routing.
func (l *List) WidgetAt(x, y int) core.Widget {
	if !l.HitTest(x, y) {
		return nil
	}
	return l
}
