// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: indentguides/guides.go
// Summary: Indent guide decoration for listview.List.
// Maps computed guide segments to cell rectangles and paints them as
// vertical hairlines inside the list's viewport.

package indentguides

import (
	"github.com/framegrace/texelui/core"
	"github.com/framegrace/texelui/theme"
	"github.com/gdamore/tcell/v2"
)

// DepthFunc returns the indent depth of each row in [start, end), top to
// bottom. The returned slice must have end-start entries.
type DepthFunc func(start, end int) []int

// Guides is a per-frame list decoration that draws vertical indent guides.
// It implements listview.Decoration: Prepaint recomputes the guide
// rectangles for the current visible range, Paint draws them. Nothing is
// cached across frames; computation is linear in visible rows.
type Guides struct {
	style       tcell.Style
	indentWidth int
	depths      DepthFunc
	rects       []core.Rect
}

// New creates an indent guide decoration. indentWidth is the number of
// columns per nesting level; depths supplies the visible rows' indent
// depths. The line color defaults from the active theme.
func New(indentWidth int, depths DepthFunc) *Guides {
	if indentWidth < 1 {
		indentWidth = 1
	}
	tm := theme.Get()
	fg := tm.GetSemanticColor("text.muted")
	bg := tm.GetSemanticColor("bg.surface")
	return &Guides{
		style:       tcell.StyleDefault.Foreground(fg).Background(bg),
		indentWidth: indentWidth,
		depths:      depths,
	}
}

// WithColor overrides the theme-derived line color. Builder-style; returns
// the receiver for chaining before the decoration is installed.
func (g *Guides) WithColor(c tcell.Color) *Guides {
	g.style = g.style.Foreground(c)
	return g
}

// Prepaint recomputes guide rectangles for rows [start, end) drawn inside
// bounds. itemHeight is rows per list item; offsetX and offsetY are the
// scroll offsets in cells. Guide Y positions derive from offsetY the same
// way row positions do, so guides stay aligned when the top item is only
// partially visible. Called by the list on every visible-range change,
// before Paint.
func (g *Guides) Prepaint(start, end int, bounds core.Rect, itemHeight, offsetX, offsetY int) {
	g.rects = g.rects[:0]
	if g.depths == nil || itemHeight <= 0 || end <= start {
		return
	}

	depths := g.depths(start, end)
	for _, seg := range Compute(depths, start) {
		r := core.Rect{
			X: bounds.X + seg.Column*g.indentWidth - offsetX,
			Y: bounds.Y + seg.StartRow*itemHeight - offsetY,
			W: 1,
			H: seg.Length * itemHeight,
		}
		if clipped, ok := intersect(r, bounds); ok {
			g.rects = append(g.rects, clipped)
		}
	}
}

// Paint draws the rectangles computed by the preceding Prepaint.
func (g *Guides) Paint(p *core.Painter) {
	for _, r := range g.rects {
		for y := 0; y < r.H; y++ {
			p.SetCell(r.X, r.Y+y, '│', g.style)
		}
	}
}

// intersect clips r to bounds, reporting whether anything remains.
func intersect(r, bounds core.Rect) (core.Rect, bool) {
	x0 := r.X
	y0 := r.Y
	x1 := r.X + r.W
	y1 := r.Y + r.H
	if x0 < bounds.X {
		x0 = bounds.X
	}
	if y0 < bounds.Y {
		y0 = bounds.Y
	}
	if bx1 := bounds.X + bounds.W; x1 > bx1 {
		x1 = bx1
	}
	if by1 := bounds.Y + bounds.H; y1 > by1 {
		y1 = by1
	}
	if x1 <= x0 || y1 <= y0 {
		return core.Rect{}, false
	}
	return core.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, true
}
