// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: indentguides/compute.go
// Summary: Guide segment computation from per-row indent depths.

package indentguides

// Segment is a single vertical guide line: one indent column spanning a
// contiguous run of rows. StartRow is absolute (window-relative row plus the
// caller's row offset), Length is the number of rows covered.
type Segment struct {
	Column   int
	StartRow int
	Length   int
}

// Compute converts the indent depths of a window of visible rows into guide
// segments. depths holds one nesting depth per row, top to bottom; rowOffset
// is the absolute index of the first row, so returned StartRows are absolute.
//
// A single forward pass maintains a stack of open guides, one per currently
// nested level. A row shallower than the stack closes the excess guides; a
// deeper row opens one guide per new level, all anchored at that row. Depths
// are caller-trusted: values may jump by more than one in either direction,
// and closing more guides than are open is a silent no-op.
//
// Segments are emitted in close order (innermost-first on close, then the
// still-open stack outermost-first). Runs at the same column separated by a
// shallower row produce distinct segments.
func Compute(depths []int, rowOffset int) []Segment {
	segments := make([]Segment, 0, len(depths)/2)
	var open []Segment

	for row, depth := range depths {
		if depth < 0 {
			depth = 0
		}
		current := row + rowOffset

		if depth < len(open) {
			for len(open) > depth {
				segments = append(segments, open[len(open)-1])
				open = open[:len(open)-1]
			}
		} else if depth > len(open) {
			for level := len(open); level < depth; level++ {
				// Length is a placeholder; the extend step below
				// overwrites it before the row is done.
				open = append(open, Segment{Column: level, StartRow: current, Length: current})
			}
		}

		// Extend every guide still open through the current row.
		for i := range open {
			open[i].Length = current - open[i].StartRow + 1
		}
	}

	// Blocks that never close inside the window run to the last visible row.
	segments = append(segments, open...)
	return segments
}
