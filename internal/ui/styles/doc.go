// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the quinn TUI.
//
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
// The Theme bundles the styles the chat screen draws with: header,
// message bubbles, rulebook panel, input line, status bar, and error line.
//
// # Usage
//
//	styles.ApplyMode(cfg.UI.Theme)
//	theme := styles.NewTheme()
//	line := theme.ErrorLine.Render("Error: " + msg)
package styles
