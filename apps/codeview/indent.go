// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/codeview/indent.go
// Summary: Indentation analysis for loaded files: tab expansion, indent unit
// detection and per-line depth levels.

package codeview

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// defaultTabWidth is the cell width of a tab stop.
const defaultTabWidth = 4

// leadingCells returns the cell width of a line's leading whitespace, with
// tabs advancing to the next tab stop, and whether the line is blank.
func leadingCells(line string, tabWidth int) (cells int, blank bool) {
	for _, r := range line {
		switch r {
		case ' ':
			cells++
		case '\t':
			cells += tabWidth - cells%tabWidth
		default:
			return cells, false
		}
	}
	return cells, true
}

// detectIndentUnit guesses the indent width of a file in cells: the smallest
// positive leading width across all lines. Tab-indented files resolve to the
// tab width. Files with no indentation default to the tab width.
func detectIndentUnit(lines []string, tabWidth int) int {
	unit := 0
	for _, line := range lines {
		cells, blank := leadingCells(line, tabWidth)
		if blank || cells == 0 {
			continue
		}
		if unit == 0 || cells < unit {
			unit = cells
		}
		if unit == 1 {
			break
		}
	}
	if unit == 0 {
		return tabWidth
	}
	return unit
}

// indentDepths computes an indent level per line. Blank lines carry no
// indentation of their own and inherit the depth of the next non-blank line,
// so guides run unbroken through the gaps inside a block. Trailing blanks
// get depth 0.
func indentDepths(lines []string, tabWidth, unit int) []int {
	if unit < 1 {
		unit = 1
	}
	depths := make([]int, len(lines))
	blankFrom := -1
	for i, line := range lines {
		cells, blank := leadingCells(line, tabWidth)
		if blank {
			if blankFrom < 0 {
				blankFrom = i
			}
			continue
		}
		depth := cells / unit
		depths[i] = depth
		if blankFrom >= 0 {
			for j := blankFrom; j < i; j++ {
				depths[j] = depth
			}
			blankFrom = -1
		}
	}
	if blankFrom >= 0 {
		for j := blankFrom; j < len(lines); j++ {
			depths[j] = 0
		}
	}
	return depths
}

// expandTabs rewrites tabs as spaces up to the next tab stop so column
// positions match what leadingCells computed.
func expandTabs(line string, tabWidth int) string {
	if !strings.ContainsRune(line, '\t') {
		return line
	}
	var sb strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		// Wide runes occupy two cells; keep tab stops aligned with the
		// cell positions the renderer uses.
		w := runewidth.RuneWidth(r)
		if w < 1 {
			w = 1
		}
		col += w
	}
	return sb.String()
}
