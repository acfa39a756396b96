// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package controller orchestrates user actions against the conversation
// store, the rulebook registry and the backend gateway.
//
// A chat submission runs Idle -> Submitting -> Idle:
//
//  1. the trimmed text is appended as a user message
//  2. the backend is asked, with the current selection if any
//  3. the reply is appended, or the error is recorded
//  4. the pending flag is cleared on every path
//
// Only one submission may be outstanding; a second Submit while one is
// pending returns ErrBusy without touching the conversation. Refreshes and
// uploads run independently of submissions.
//
// Errors never escape as panics. Each operation records a human-readable
// message in the error state (cleared by the next success) and also returns
// the underlying error to its caller.
package controller
