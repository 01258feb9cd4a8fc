// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package listview

import (
	"testing"

	"github.com/framegrace/texelui/core"
	"github.com/framegrace/texelview/indentguides"
	"github.com/framegrace/texelview/scrollbar"
	"github.com/gdamore/tcell/v2"
)

// fakeDelegate serves rows of a fixed width and records which rows were
// actually painted.
type fakeDelegate struct {
	rows  int
	width int
	drawn []int
}

func (d *fakeDelegate) Rows() int            { return d.rows }
func (d *fakeDelegate) RowWidth(row int) int { return d.width }

func (d *fakeDelegate) DrawRow(p *core.Painter, row int, rect core.Rect) {
	d.drawn = append(d.drawn, row)
	p.SetCell(rect.X, rect.Y, rune('a'+row%26), tcell.StyleDefault)
}

// recordingDecoration captures the per-frame calls the list makes.
type recordingDecoration struct {
	prepaints int
	paints    int
	start     int
	end       int
	bounds    core.Rect
	height    int
	offsetX   int
	offsetY   int
}

func (r *recordingDecoration) Prepaint(start, end int, bounds core.Rect, itemHeight, offsetX, offsetY int) {
	r.prepaints++
	r.start, r.end = start, end
	r.bounds = bounds
	r.height = itemHeight
	r.offsetX = offsetX
	r.offsetY = offsetY
}

func (r *recordingDecoration) Paint(p *core.Painter) {
	if r.paints >= r.prepaints {
		panic("Paint before Prepaint")
	}
	r.paints++
}

func newTestList(rows, width, itemHeight int) (*List, *fakeDelegate) {
	del := &fakeDelegate{rows: rows, width: width}
	l := New(del, itemHeight)
	l.SetAutoHideDelay(0) // keep bars up, no timers in tests
	l.SetPosition(0, 0)
	l.Resize(10, 10)
	return l, del
}

func newTestBuffer(w, h int) [][]core.Cell {
	buf := make([][]core.Cell, h)
	for y := range buf {
		buf[y] = make([]core.Cell, w)
		for x := range buf[y] {
			buf[y][x] = core.Cell{Ch: ' ', Style: tcell.StyleDefault}
		}
	}
	return buf
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		name       string
		rows       int
		itemHeight int
		offsetY    int
		wantStart  int
		wantEnd    int
	}{
		{"top", 100, 1, 0, 0, 10},
		{"scrolled", 100, 1, 25, 25, 35},
		{"partial rows at both edges", 100, 2, 3, 1, 7},
		{"end of content", 100, 1, 90, 90, 100},
		{"fewer rows than viewport", 4, 1, 0, 0, 4},
		{"empty", 0, 1, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestList(tt.rows, 5, tt.itemHeight)
			l.SetScrollOffset(scrollbar.Vertical, tt.offsetY)
			start, end := l.VisibleRange()
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("VisibleRange() = [%d, %d), want [%d, %d)",
					start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestSetScrollOffsetClamps(t *testing.T) {
	l, _ := newTestList(50, 30, 1)

	l.SetScrollOffset(scrollbar.Vertical, -5)
	if got := l.ScrollOffset(scrollbar.Vertical); got != 0 {
		t.Errorf("negative offset clamped to %d, want 0", got)
	}
	l.SetScrollOffset(scrollbar.Vertical, 500)
	if got := l.ScrollOffset(scrollbar.Vertical); got != 40 {
		t.Errorf("overlarge offset clamped to %d, want 40", got)
	}
	l.SetScrollOffset(scrollbar.Horizontal, 500)
	if got := l.ScrollOffset(scrollbar.Horizontal); got != 20 {
		t.Errorf("horizontal offset clamped to %d, want 20", got)
	}
}

func TestOnScrollHookFiresOnChangeOnly(t *testing.T) {
	l, _ := newTestList(50, 5, 1)

	var calls int
	var lastX, lastY int
	l.SetOnScroll(func(x, y int) { calls++; lastX, lastY = x, y })

	l.SetScrollOffset(scrollbar.Vertical, 7)
	l.SetScrollOffset(scrollbar.Vertical, 7) // no change, no call
	if calls != 1 {
		t.Fatalf("hook calls = %d, want 1", calls)
	}
	if lastX != 0 || lastY != 7 {
		t.Errorf("hook got (%d, %d), want (0, 7)", lastX, lastY)
	}
}

func TestScrollToRow(t *testing.T) {
	l, _ := newTestList(100, 5, 1)

	l.ScrollToRow(50)
	if got := l.ScrollOffset(scrollbar.Vertical); got != 41 {
		t.Errorf("offset = %d, want 41 (row 50 at the bottom edge)", got)
	}
	l.ScrollToRow(45) // already visible, minimal scroll means none
	if got := l.ScrollOffset(scrollbar.Vertical); got != 41 {
		t.Errorf("offset = %d, want 41 unchanged", got)
	}
	l.ScrollToRow(10)
	if got := l.ScrollOffset(scrollbar.Vertical); got != 10 {
		t.Errorf("offset = %d, want 10 (row 10 at the top edge)", got)
	}
}

func TestDrawVirtualizesRows(t *testing.T) {
	l, del := newTestList(1000, 5, 1)
	l.SetScrollOffset(scrollbar.Vertical, 500)

	buf := newTestBuffer(10, 10)
	p := core.NewPainter(buf, core.Rect{X: 0, Y: 0, W: 10, H: 10})
	l.Draw(p)

	if len(del.drawn) != 10 {
		t.Fatalf("drew %d rows, want 10", len(del.drawn))
	}
	if del.drawn[0] != 500 || del.drawn[9] != 509 {
		t.Errorf("drew rows %d..%d, want 500..509", del.drawn[0], del.drawn[9])
	}
	if buf[0][0].Ch != rune('a'+500%26) {
		t.Errorf("row 500 glyph = %q at origin", buf[0][0].Ch)
	}
}

func TestDecorationLifecycle(t *testing.T) {
	l, _ := newTestList(100, 5, 2)
	l.SetScrollOffset(scrollbar.Vertical, 4)
	l.SetScrollOffset(scrollbar.Horizontal, 0)

	dec := &recordingDecoration{}
	l.AddDecoration(dec)

	buf := newTestBuffer(10, 10)
	p := core.NewPainter(buf, core.Rect{X: 0, Y: 0, W: 10, H: 10})
	l.Draw(p)
	l.Draw(p)

	if dec.prepaints != 2 || dec.paints != 2 {
		t.Fatalf("prepaints = %d, paints = %d, want 2 each", dec.prepaints, dec.paints)
	}
	if dec.start != 2 || dec.end != 7 {
		t.Errorf("visible range [%d, %d), want [2, 7)", dec.start, dec.end)
	}
	if dec.height != 2 {
		t.Errorf("itemHeight = %d, want 2", dec.height)
	}
	if dec.offsetY != 4 {
		t.Errorf("offsetY = %d, want 4", dec.offsetY)
	}
	if dec.bounds != l.Rect {
		t.Errorf("bounds = %+v, want the list viewport %+v", dec.bounds, l.Rect)
	}
}

func TestIndentGuideAlignsWithPartialTopItem(t *testing.T) {
	// With itemHeight 2 and offsetY 3 the top item is cut in half, so item
	// positions land between item boundaries. The guide column must start
	// on the same cell row the item's content paints at.
	l, _ := newTestList(10, 5, 2)
	depths := []int{0, 0, 1, 1, 1, 1, 1, 1, 1, 1}
	l.AddDecoration(indentguides.New(1, func(start, end int) []int {
		return depths[start:end]
	}))
	l.SetScrollOffset(scrollbar.Vertical, 3)

	buf := newTestBuffer(10, 10)
	p := core.NewPainter(buf, core.Rect{X: 0, Y: 0, W: 10, H: 10})
	l.Draw(p)

	// Item 2 paints at y = 2*2 - 3 = 1 and is the first nested item.
	if buf[1][0].Ch != '│' {
		t.Errorf("guide cell at (0,1) = %q, want the guide to start on item 2's top row", buf[1][0].Ch)
	}
	// Item 1 is top level; its lower half occupies y 0.
	if buf[0][0].Ch == '│' {
		t.Error("guide drawn over the top-level item above the block")
	}
	// The guide runs down the rest of the nested items.
	for y := 2; y < 10; y++ {
		if buf[y][0].Ch != '│' {
			t.Errorf("guide missing at (0,%d)", y)
		}
	}
}

func TestWheelOverContentScrolls(t *testing.T) {
	l, _ := newTestList(100, 5, 2)

	ev := tcell.NewEventMouse(4, 4, tcell.WheelDown, tcell.ModNone)
	if !l.HandleMouse(ev) {
		t.Fatal("wheel over content not consumed")
	}
	if got := l.ScrollOffset(scrollbar.Vertical); got != 6 {
		t.Errorf("offset = %d, want 6 (3 lines x item height 2)", got)
	}
}

func TestScrollbarDragRoutedThroughList(t *testing.T) {
	l, _ := newTestList(100, 5, 1)

	// Press on the thumb of the right-edge bar, then drag with the pointer
	// over the content area: the captured drag must keep winning.
	press := tcell.NewEventMouse(9, 0, tcell.Button1, tcell.ModNone)
	if !l.HandleMouse(press) {
		t.Fatal("press on the vertical bar not consumed")
	}
	if !l.VerticalBar().Dragging() {
		t.Fatal("expected a thumb drag")
	}
	move := tcell.NewEventMouse(4, 5, tcell.Button1, tcell.ModNone)
	l.HandleMouse(move)
	if got := l.ScrollOffset(scrollbar.Vertical); got == 0 {
		t.Error("drag move over the content should still scroll")
	}
	release := tcell.NewEventMouse(4, 5, tcell.ButtonNone, tcell.ModNone)
	l.HandleMouse(release)
	if l.VerticalBar().Dragging() {
		t.Error("release must end the drag")
	}
}

func TestPagingKeys(t *testing.T) {
	l, _ := newTestList(100, 5, 1)

	l.HandleKey(tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone))
	if got := l.ScrollOffset(scrollbar.Vertical); got != 10 {
		t.Errorf("offset = %d after PgDn, want 10", got)
	}
	l.HandleKey(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModCtrl))
	if got := l.ScrollOffset(scrollbar.Vertical); got != 90 {
		t.Errorf("offset = %d after Ctrl+End, want 90", got)
	}
	l.HandleKey(tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModCtrl))
	if got := l.ScrollOffset(scrollbar.Vertical); got != 0 {
		t.Errorf("offset = %d after Ctrl+Home, want 0", got)
	}
	l.HandleKey(tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModNone))
	if got := l.ScrollOffset(scrollbar.Vertical); got != 0 {
		t.Errorf("offset = %d after PgUp at the top, want 0", got)
	}
}

func TestReloadRecomputesContent(t *testing.T) {
	l, del := newTestList(100, 5, 1)
	l.SetScrollOffset(scrollbar.Vertical, 90)

	del.rows = 20
	l.Reload()
	if got := l.ScrollOffset(scrollbar.Vertical); got != 10 {
		t.Errorf("offset = %d after shrink, want 10 (re-clamped)", got)
	}
	if got := l.ContentLength(scrollbar.Vertical); got != 20 {
		t.Errorf("content length = %d, want 20", got)
	}
}
