// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollbar/scrollbar.go
// Summary: Interactive overlay scrollbar widget for scrollable surfaces.
// Handles thumb drags, track jumps, wheel scrolling and auto-hide.

package scrollbar

import (
	"math"

	"github.com/framegrace/texelui/core"
	"github.com/framegrace/texelui/theme"
	"github.com/gdamore/tcell/v2"
)

// Target is the scroll surface a scrollbar drives. Offsets and lengths are
// in cells; offsets are non-negative distances from the content origin.
// ContentLength returns 0 while the content size is still unknown, which
// suppresses the thumb.
type Target interface {
	ScrollOffset(axis Axis) int
	SetScrollOffset(axis Axis, offset int)
	ViewportLength(axis Axis) int
	ContentLength(axis Axis) int
	// LineHeight is the wheel scroll unit in cells (rows per list item).
	LineHeight() int
	// Focused reports whether the target currently has input focus; a
	// mouse-up on an unfocused target triggers the auto-hide hook.
	Focused() bool
}

// wheelLines is how many line heights one wheel notch scrolls.
const wheelLines = 3

// Scrollbar is a one-cell-thick overlay strip along one edge of a scroll
// target. The thumb tracks the visible fraction of the content; dragging the
// thumb, clicking the track and wheel events all mutate the target's offset.
//
// Pointer state is a two-state machine: Idle, or Dragging with an anchor
// fraction (the track fraction between the cursor and the thumb start at
// press time). dragAnchor is nil while Idle. Unexpected event orderings
// resolve to Idle rather than fail.
type Scrollbar struct {
	core.BaseWidget
	Style      tcell.Style // thumb
	TrackStyle tcell.Style

	axis    Axis
	target  Target
	visible bool

	pressed    bool
	dragAnchor *float64

	onAutoHide func()
	inv        func(core.Rect)

	// Geometry of the last computed frame, refreshed before every paint and
	// before hit-testing pointer events.
	thumb   Range
	thumbOK bool
}

// New creates a scrollbar for one axis of a target. Colors default from the
// active theme; the bar starts hidden and is shown by the host on scroll
// activity.
func New(axis Axis, target Target) *Scrollbar {
	tm := theme.Get()
	accent := tm.GetSemanticColor("accent.primary")
	muted := tm.GetSemanticColor("text.muted")
	s := &Scrollbar{
		Style:      tcell.StyleDefault.Foreground(accent),
		TrackStyle: tcell.StyleDefault.Foreground(muted).Attributes(tcell.AttrDim),
		axis:       axis,
		target:     target,
	}
	s.SetFocusable(false)
	return s
}

// WithColor overrides the theme-derived thumb color. Builder-style.
func (s *Scrollbar) WithColor(c tcell.Color) *Scrollbar {
	s.Style = s.Style.Foreground(c)
	return s
}

// SetAutoHide installs the host hook fired on a mouse-up that ends no drag
// while the target is unfocused.
func (s *Scrollbar) SetAutoHide(fn func()) { s.onAutoHide = fn }

// SetInvalidator implements core.InvalidationAware.
func (s *Scrollbar) SetInvalidator(fn func(core.Rect)) { s.inv = fn }

// Show makes the bar visible until the host hides it again.
func (s *Scrollbar) Show() {
	if !s.visible {
		s.visible = true
		s.invalidate()
	}
}

// Hide removes the bar from the next frame. An active drag keeps the bar on
// screen so the thumb never vanishes mid-gesture.
func (s *Scrollbar) Hide() {
	if s.dragAnchor != nil {
		return
	}
	if s.visible {
		s.visible = false
		s.invalidate()
	}
}

// IsVisible reports whether the bar participates in painting and hit tests.
func (s *Scrollbar) IsVisible() bool { return s.visible }

// Dragging reports whether a thumb drag is in progress.
func (s *Scrollbar) Dragging() bool { return s.dragAnchor != nil }

// Axis returns the scroll direction this bar operates on.
func (s *Scrollbar) Axis() Axis { return s.axis }

// DesiredSize reports the overlay strip this bar wants inside a viewport:
// one cell thick along the trailing edge, full length of its axis. The host
// applies it during its layout pass.
func (s *Scrollbar) DesiredSize(viewport core.Rect) core.Rect {
	if s.axis == Vertical {
		return core.Rect{X: viewport.X + viewport.W - 1, Y: viewport.Y, W: 1, H: viewport.H}
	}
	return core.Rect{X: viewport.X, Y: viewport.Y + viewport.H - 1, W: viewport.W, H: 1}
}

func (s *Scrollbar) invalidate() {
	if s.inv != nil {
		s.inv(s.Rect)
	}
}

// trackLength returns the bar's length along its axis.
func (s *Scrollbar) trackLength() int {
	if s.axis == Vertical {
		return s.Rect.H
	}
	return s.Rect.W
}

// refreshThumb recomputes the thumb range from the target's current state.
// Runs before painting and before pointer hit-testing so geometry always
// reflects the latest mutation.
func (s *Scrollbar) refreshThumb() {
	s.thumb, s.thumbOK = Thumb(
		float64(s.target.ScrollOffset(s.axis)),
		float64(s.target.ViewportLength(s.axis)),
		float64(s.target.ContentLength(s.axis)),
	)
}

// thumbCells converts the thumb range to cell bounds along the track.
// The thumb is always at least one cell.
func (s *Scrollbar) thumbCells() (start, end int) {
	track := s.trackLength()
	start = int(math.Round(s.thumb.Start * float64(track)))
	end = int(math.Round(s.thumb.End * float64(track)))
	if end <= start {
		end = start + 1
	}
	if end > track {
		end = track
		if start >= end {
			start = end - 1
		}
	}
	return start, end
}

// inThumb reports whether a screen position lies on the thumb.
func (s *Scrollbar) inThumb(x, y int) bool {
	if !s.thumbOK {
		return false
	}
	start, end := s.thumbCells()
	if s.axis == Vertical {
		rel := y - s.Rect.Y
		return x >= s.Rect.X && x < s.Rect.X+s.Rect.W && rel >= start && rel < end
	}
	rel := x - s.Rect.X
	return y >= s.Rect.Y && y < s.Rect.Y+s.Rect.H && rel >= start && rel < end
}

// Draw paints the track and thumb. Hidden or degenerate bars paint nothing,
// leaving the underlying content untouched.
func (s *Scrollbar) Draw(p *core.Painter) {
	if !s.visible || s.trackLength() <= 0 {
		return
	}
	s.refreshThumb()
	if !s.thumbOK {
		return
	}

	start, end := s.thumbCells()
	for i := 0; i < s.trackLength(); i++ {
		ch := '░'
		style := s.TrackStyle
		if i >= start && i < end {
			ch = '█'
			style = s.Style
		}
		if s.axis == Vertical {
			p.SetCell(s.Rect.X, s.Rect.Y+i, ch, style)
		} else {
			p.SetCell(s.Rect.X+i, s.Rect.Y, ch, style)
		}
	}
}

// HitTest only responds while visible so a hidden bar never swallows
// pointer events meant for the content beneath it.
func (s *Scrollbar) HitTest(x, y int) bool {
	return s.visible && s.BaseWidget.HitTest(x, y)
}

// HandleMouse implements core.MouseAware. Events inside the hit area are
// consumed (the bar is modal to pointer input within its bounds); during an
// active drag the UI manager's press capture keeps delivering moves even
// outside the bounds so the drag continues.
func (s *Scrollbar) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	buttons := ev.Buttons()
	inside := s.HitTest(x, y)

	if wheel := buttons & (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight); wheel != 0 {
		if !inside {
			return false
		}
		s.handleWheel(wheel)
		return true
	}

	primary := buttons&tcell.Button1 != 0
	switch {
	case primary && !s.pressed:
		// Mouse-down. Only presses on the bar start a gesture.
		if !inside {
			return false
		}
		s.pressed = true
		s.refreshThumb()
		if s.inThumb(x, y) {
			anchor := s.cursorFraction(x, y) - s.thumb.Start
			s.dragAnchor = &anchor
		} else if s.thumbOK {
			// Track click: jump so the thumb lands under the cursor,
			// far edge clamped inside the track. No drag is started.
			s.scrollToFraction(s.cursorFraction(x, y))
		}
		return true

	case primary && s.pressed:
		// Move with the button held: an armed thumb press drags.
		if s.dragAnchor != nil {
			s.refreshThumb()
			if s.thumbOK {
				s.scrollToFraction(s.cursorFraction(x, y) - *s.dragAnchor)
			}
			return true
		}
		// No drag armed: either the button is held after a track click,
		// or this is a new press whose release never reached the bar.
		// Re-running the press logic serves both.
		if inside {
			s.refreshThumb()
			if s.inThumb(x, y) {
				anchor := s.cursorFraction(x, y) - s.thumb.Start
				s.dragAnchor = &anchor
			} else if s.thumbOK {
				s.scrollToFraction(s.cursorFraction(x, y))
			}
		}
		return true

	case s.pressed:
		// Button released: back to Idle unconditionally.
		wasDragging := s.dragAnchor != nil
		s.pressed = false
		s.dragAnchor = nil
		if !wasDragging && !s.target.Focused() && s.onAutoHide != nil {
			s.onAutoHide()
		}
		s.invalidate()
		return true
	}

	// Stray move: no gesture to continue. A press whose release we never
	// saw resolves to Idle here.
	s.pressed = false
	s.dragAnchor = nil
	return inside
}

// cursorFraction maps a screen position to a track fraction.
func (s *Scrollbar) cursorFraction(x, y int) float64 {
	track := s.trackLength()
	if track <= 0 {
		return 0
	}
	if s.axis == Vertical {
		return float64(y-s.Rect.Y) / float64(track)
	}
	return float64(x-s.Rect.X) / float64(track)
}

// scrollToFraction positions the thumb's leading edge at the given track
// fraction, clamped so the far edge stays within the track, and writes the
// resulting offset to the target.
func (s *Scrollbar) scrollToFraction(frac float64) {
	frac = clampFraction(frac, 1-s.thumb.Length())
	content := s.target.ContentLength(s.axis)
	offset := int(math.Round(frac * float64(content)))
	s.target.SetScrollOffset(s.axis, offset)
	s.invalidate()
}

// handleWheel scrolls the target by whole line heights. Wheel events never
// touch drag state.
func (s *Scrollbar) handleWheel(wheel tcell.ButtonMask) {
	step := wheelLines * s.target.LineHeight()
	if step <= 0 {
		step = wheelLines
	}
	scroll := func(axis Axis, delta int) {
		s.target.SetScrollOffset(axis, s.target.ScrollOffset(axis)+delta)
	}
	if wheel&tcell.WheelUp != 0 {
		scroll(Vertical, -step)
	}
	if wheel&tcell.WheelDown != 0 {
		scroll(Vertical, step)
	}
	if wheel&tcell.WheelLeft != 0 {
		scroll(Horizontal, -step)
	}
	if wheel&tcell.WheelRight != 0 {
		scroll(Horizontal, step)
	}
	s.invalidate()
}
