// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the conversation store and its message type.
//
// # Key Types
//
//   - Message: immutable role + text pair with an ID and timestamp
//   - Conversation: append-only, ordered log of messages
//   - Role: user or assistant
//
// # Usage
//
//	conv := model.NewConversation()
//	conv.AppendUser("Explain the Kami phase.")
//	conv.AppendAssistant("During the Kami phase...")
//	for _, msg := range conv.Snapshot() {
//	    fmt.Printf("%s: %s\n", msg.Role.DisplayName(), msg.Text)
//	}
package model
