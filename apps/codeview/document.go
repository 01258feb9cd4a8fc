// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/codeview/document.go
// Summary: Loaded source file model: lines with display widths, detected
// language and indent levels.

package codeview

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"
	"github.com/mattn/go-runewidth"
)

// Line is one display row of a loaded file.
type Line struct {
	Text  string // tab-expanded source text
	Width int    // display width in cells
	Depth int    // indent level

	// Styles holds a per-rune style after Highlight; nil or zero entries
	// mean plain text.
	Styles []tcell.Style
}

// Document is an immutable loaded file ready for display.
type Document struct {
	Path       string
	Language   string // enry language name, empty when undetected
	TabWidth   int
	IndentUnit int // indent width in cells
	Lines      []Line
}

// LoadDocument reads and analyzes a file from disk.
func LoadDocument(path string, tabWidth int) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return newDocument(path, string(data), tabWidth), nil
}

// NewDocument analyzes in-memory content with the default tab width. path
// is used for language detection and as the view state key.
func NewDocument(path, content string) *Document {
	return newDocument(path, content, defaultTabWidth)
}

func newDocument(path, content string, tabWidth int) *Document {
	if tabWidth < 1 {
		tabWidth = defaultTabWidth
	}
	raw := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	// A trailing newline produces a phantom empty line; drop it.
	if n := len(raw); n > 0 && raw[n-1] == "" {
		raw = raw[:n-1]
	}

	unit := detectIndentUnit(raw, tabWidth)
	depths := indentDepths(raw, tabWidth, unit)

	doc := &Document{
		Path:       path,
		Language:   enry.GetLanguage(filepath.Base(path), []byte(content)),
		TabWidth:   tabWidth,
		IndentUnit: unit,
		Lines:      make([]Line, len(raw)),
	}
	for i, line := range raw {
		text := expandTabs(line, tabWidth)
		doc.Lines[i] = Line{
			Text:  text,
			Width: runewidth.StringWidth(text),
			Depth: depths[i],
		}
	}
	return doc
}

// Depths returns indent levels for rows [start, end), clamped to the
// document. The returned slice aliases nothing and is safe to retain.
func (d *Document) Depths(start, end int) []int {
	if start < 0 {
		start = 0
	}
	if end > len(d.Lines) {
		end = len(d.Lines)
	}
	if start >= end {
		return nil
	}
	out := make([]int, end-start)
	for i := range out {
		out[i] = d.Lines[start+i].Depth
	}
	return out
}
