// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdownRenderer renders assistant replies and caches the output per
// message until the wrap width changes.
type markdownRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

func newMarkdownRenderer(dark bool) *markdownRenderer {
	style := "light"
	if dark {
		style = "dark"
	}
	return &markdownRenderer{style: style, width: 80, cache: make(map[string]string)}
}

// SetWidth changes the wrap width, dropping cached output.
func (r *markdownRenderer) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	if width == r.width && r.renderer != nil {
		return
	}
	r.width = width
	r.renderer = nil
	r.cache = make(map[string]string)
}

// Render returns text rendered as markdown. It falls back to the raw text
// if glamour cannot be initialised or fails on the input.
func (r *markdownRenderer) Render(id, text string) string {
	if out, ok := r.cache[id]; ok {
		return out
	}

	if r.renderer == nil {
		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(r.width),
		)
		if err != nil {
			return text
		}
		r.renderer = tr
	}

	out, err := r.renderer.Render(text)
	if err != nil {
		return text
	}
	out = strings.Trim(out, "\n")
	r.cache[id] = out
	return out
}
