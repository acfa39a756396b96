// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat screen for the quinn TUI.
//
// The Model is a Bubble Tea front end over a controller.Controller. Every
// controller action runs inside a tea.Cmd so the event loop never blocks
// on the network; the model re-reads controller.State after each result
// and whenever the controller reports a change.
//
// # Layout
//
//   - Header: product name and the selected rulebook
//   - Transcript: scrolling viewport, pinned to the latest message when the
//     conversation grows or the pending flag flips
//   - Input: single line, pre-filled with the configured prompt
//   - Status: "Sending..." spinner while a message is in flight, then the
//     current error line, then key hints
//
// # Rulebook Panel
//
// ctrl+b opens a panel listing the known rulebooks. up/down moves the
// cursor, enter selects, r refreshes the list, u asks for a file path to
// upload, esc closes.
package chat
