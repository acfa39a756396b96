// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sync"
	"time"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the ordered log of exchanged messages for one session.
// Insertion order is chronological order is display order. It is safe for
// concurrent use; the lock is held only for the duration of each call.
type Conversation struct {
	mu        sync.RWMutex
	messages  []Message
	createdAt time.Time
	updatedAt time.Time
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		messages:  make([]Message, 0),
		createdAt: now,
		updatedAt: now,
	}
}

// =============================================================================
// MUTATION
// =============================================================================

// AppendUser appends a user message; it becomes the last message.
func (c *Conversation) AppendUser(text string) {
	c.append(NewUserMessage(text))
}

// AppendAssistant appends an assistant message; it becomes the last message.
// An empty reply is a valid message.
func (c *Conversation) AppendAssistant(text string) {
	c.append(NewAssistantMessage(text))
}

func (c *Conversation) append(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
	c.updatedAt = msg.Timestamp
}

// =============================================================================
// READ ACCESS
// =============================================================================

// IsEmpty reports whether no message has been appended yet.
func (c *Conversation) IsEmpty() bool {
	return c.Len() == 0
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// Snapshot returns a copy of the messages in display order. Mutating the
// returned slice does not affect the conversation.
func (c *Conversation) Snapshot() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Last returns the most recent message and false if the conversation is empty.
func (c *Conversation) Last() (Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// CreatedAt returns when the conversation was started.
func (c *Conversation) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns the timestamp of the most recent append.
func (c *Conversation) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updatedAt
}
