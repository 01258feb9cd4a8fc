// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package indentguides

import (
	"sort"
	"testing"
)

// sortSegments orders segments by (column, start row) so tests are
// independent of emission order.
func sortSegments(segs []Segment) []Segment {
	out := make([]Segment, len(segs))
	copy(out, segs)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Column != out[j].Column {
			return out[i].Column < out[j].Column
		}
		return out[i].StartRow < out[j].StartRow
	})
	return out
}

func assertSegments(t *testing.T, got, want []Segment) {
	t.Helper()
	got = sortSegments(got)
	want = sortSegments(want)
	if len(got) != len(want) {
		t.Fatalf("got %d segments %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name   string
		depths []int
		offset int
		want   []Segment
	}{
		{
			name:   "open and close symmetrically",
			depths: []int{0, 1, 2, 2, 1, 0},
			want: []Segment{
				{Column: 0, StartRow: 1, Length: 4},
				{Column: 1, StartRow: 2, Length: 2},
			},
		},
		{
			name:   "starts deep, partially closes",
			depths: []int{2, 2, 2, 1, 1},
			want: []Segment{
				{Column: 0, StartRow: 0, Length: 5},
				{Column: 1, StartRow: 0, Length: 3},
			},
		},
		{
			name:   "staircase up and down",
			depths: []int{1, 2, 3, 2, 1},
			want: []Segment{
				{Column: 0, StartRow: 0, Length: 5},
				{Column: 1, StartRow: 1, Length: 3},
				{Column: 2, StartRow: 2, Length: 1},
			},
		},
		{
			name:   "all top level",
			depths: []int{0, 0, 0, 0},
			want:   nil,
		},
		{
			name:   "empty window",
			depths: nil,
			want:   nil,
		},
		{
			name:   "jump opens several guides at one row",
			depths: []int{0, 3, 3, 0},
			want: []Segment{
				{Column: 0, StartRow: 1, Length: 2},
				{Column: 1, StartRow: 1, Length: 2},
				{Column: 2, StartRow: 1, Length: 2},
			},
		},
		{
			name:   "same column reopened is a distinct segment",
			depths: []int{1, 0, 1},
			want: []Segment{
				{Column: 0, StartRow: 0, Length: 1},
				{Column: 0, StartRow: 2, Length: 1},
			},
		},
		{
			name:   "row offset shifts start rows",
			depths: []int{0, 1, 2, 2, 1, 0},
			offset: 100,
			want: []Segment{
				{Column: 0, StartRow: 101, Length: 4},
				{Column: 1, StartRow: 102, Length: 2},
			},
		},
		{
			name:   "negative depth treated as top level",
			depths: []int{1, -2, 1},
			want: []Segment{
				{Column: 0, StartRow: 0, Length: 1},
				{Column: 0, StartRow: 2, Length: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertSegments(t, Compute(tt.depths, tt.offset), tt.want)
		})
	}
}

// TestComputeCoverage checks the structural property directly: the union of
// cells covered by segments is exactly the cells where depths[row] > column,
// and segments at one column never overlap.
func TestComputeCoverage(t *testing.T) {
	sequences := [][]int{
		{0, 1, 2, 2, 1, 0},
		{2, 2, 2, 1, 1},
		{1, 2, 3, 2, 1},
		{0, 4, 1, 4, 0, 2, 2},
		{3, 0, 3, 0, 3},
		{1, 1, 1, 1},
	}

	for _, depths := range sequences {
		segs := Compute(depths, 0)

		maxDepth := 0
		for _, d := range depths {
			if d > maxDepth {
				maxDepth = d
			}
		}

		covered := make(map[[2]int]int) // (column, row) -> segment count
		for _, seg := range segs {
			for r := seg.StartRow; r < seg.StartRow+seg.Length; r++ {
				covered[[2]int{seg.Column, r}]++
			}
		}

		for col := 0; col < maxDepth; col++ {
			for row, d := range depths {
				want := 0
				if d > col {
					want = 1
				}
				if got := covered[[2]int{col, row}]; got != want {
					t.Errorf("depths %v: cell (col %d, row %d) covered %d times, want %d",
						depths, col, row, got, want)
				}
			}
		}
	}
}

// TestComputeLenientUnderflow documents the caller-trusted contract: depths
// never pop more guides than are open, because the close count is derived
// from the stack size itself. A depth of zero simply closes everything.
func TestComputeLenientUnderflow(t *testing.T) {
	got := Compute([]int{2, 0, 0, 1}, 0)
	want := []Segment{
		{Column: 0, StartRow: 0, Length: 1},
		{Column: 1, StartRow: 0, Length: 1},
		{Column: 0, StartRow: 3, Length: 1},
	}
	assertSegments(t, got, want)
}
