// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollbar/geometry.go
// Summary: Thumb geometry computed from scroll offset, viewport and content
// lengths. Pure functions; all lengths are in cells.

package scrollbar

// Axis selects the scroll direction a scrollbar operates on.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Range is a thumb extent as fractions of the track, 0 = leading edge,
// 1 = trailing edge. Start <= End always holds for ranges produced by Thumb.
type Range struct {
	Start, End float64
}

// Length returns the thumb's fraction of the track.
func (r Range) Length() float64 { return r.End - r.Start }

// MinThumbFraction is the smallest visible thumb. A thumb that would have to
// start past 1-MinThumbFraction signals a negligible scroll range and is
// suppressed instead.
const MinThumbFraction = 0.005

// Thumb computes the visible thumb range for a scroll position. offset is
// the distance scrolled from the origin; its absolute value is used, so
// handles that report content-relative (negative) offsets work unchanged.
// The second return is false when there is nothing to render: unknown or
// empty content, content that fits the viewport, or a scroll range too small
// for a visible thumb.
//
// Virtualized hosts can transiently report a viewport extending past the
// true content end (e.g. during a resize). The overshoot past 1.0 is clamped
// off the end and subtracted from the start as well, keeping the thumb
// length stable instead of letting it shrink against the trailing edge.
func Thumb(offset, viewport, content float64) (Range, bool) {
	if content <= 0 || viewport <= 0 {
		return Range{}, false
	}
	if content <= viewport {
		return Range{}, false
	}

	cur := offset
	if cur < 0 {
		cur = -cur
	}
	start := cur / content
	end := (cur + viewport) / content

	overshoot := end - 1
	if overshoot > 1 {
		// The reported viewport lies entirely past the content; garbage in,
		// nothing out.
		return Range{}, false
	}
	if overshoot > 0 {
		start -= overshoot
	}
	if start < 0 {
		start = 0
	}
	if start+MinThumbFraction > 1 {
		return Range{}, false
	}
	if end > 1 {
		end = 1
	}
	if end < start+MinThumbFraction {
		end = start + MinThumbFraction
	}
	return Range{Start: start, End: end}, true
}

func clampFraction(f, max float64) float64 {
	if f < 0 {
		return 0
	}
	if f > max {
		return max
	}
	return f
}
