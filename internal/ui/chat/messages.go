// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

// =============================================================================
// CONTROLLER RESULT MESSAGES
// =============================================================================

// InitDoneMsg is delivered when the startup rulebook refresh finishes.
type InitDoneMsg struct {
	Err error
}

// SubmitDoneMsg is delivered when a chat submission finishes.
type SubmitDoneMsg struct {
	Err error
}

// UploadDoneMsg is delivered when a rulebook upload (and its refresh)
// finishes.
type UploadDoneMsg struct {
	Path string
	Err  error
}

// RefreshDoneMsg is delivered when an explicit rulebook refresh finishes.
type RefreshDoneMsg struct {
	Err error
}

// StateChangedMsg signals that controller state changed mid-action, such as
// the user message being appended before the reply arrives.
type StateChangedMsg struct{}
