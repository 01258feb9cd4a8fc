// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/codeview/highlight.go
// Summary: Chroma-based syntax highlighting applied to a loaded document.

package codeview

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
)

const defaultStyleName = "catppuccin-mocha"

// chromaStyle resolves a style name to a Chroma style, falling back to the
// default.
func chromaStyle(name string) *chroma.Style {
	if name == "" {
		name = defaultStyleName
	}
	return styles.Get(name)
}

// lexer picks a Chroma lexer: the detected language first, then the file
// name, then content analysis.
func (d *Document) lexer(text string) chroma.Lexer {
	if d.Language != "" {
		if l := lexers.Get(d.Language); l != nil {
			return l
		}
	}
	if l := lexers.Match(d.Path); l != nil {
		return l
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

// Highlight tokenizes the whole document as one block so the lexer sees full
// file context, then assigns per-rune styles to each line. Tokens in the
// style's base text color are left on the default style so the theme keeps
// control of plain text. Safe to call on any document; a failed tokenization
// leaves the document unstyled.
func (d *Document) Highlight(styleName string) {
	style := chromaStyle(styleName)

	var sb strings.Builder
	for i := range d.Lines {
		sb.WriteString(d.Lines[i].Text)
		sb.WriteByte('\n')
	}
	fullText := sb.String()
	if fullText == "" {
		return
	}

	lexer := chroma.Coalesce(d.lexer(fullText))
	tokens, err := chroma.Tokenise(lexer, nil, fullText)
	if err != nil {
		return
	}

	for i := range d.Lines {
		d.Lines[i].Styles = make([]tcell.Style, len([]rune(d.Lines[i].Text)))
	}

	base := style.Get(chroma.Text).Colour
	row, col := 0, 0
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		st, styled := tokenStyle(style.Get(tok.Type), base)
		for _, r := range tok.Value {
			if r == '\n' {
				row++
				col = 0
				continue
			}
			if row >= len(d.Lines) {
				return
			}
			if styled && col < len(d.Lines[row].Styles) {
				d.Lines[row].Styles[col] = st
			}
			col++
		}
	}
}

// tokenStyle converts a Chroma style entry to a tcell style. The second
// return is false for entries indistinguishable from plain text.
func tokenStyle(entry chroma.StyleEntry, base chroma.Colour) (tcell.Style, bool) {
	st := tcell.StyleDefault
	styled := false
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
		styled = true
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
		styled = true
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
		styled = true
	}
	if entry.Colour.IsSet() && entry.Colour != base {
		st = st.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue())))
		styled = true
	}
	return st, styled
}
