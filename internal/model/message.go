// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// and retrieved evidence.
package model

import (
	"strings"

	"github.com/jeranaias/ragchat-tui/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
// Messages are immutable once created; ids are dense per conversation
// (count of existing messages + 1) and are not globally unique.
type Message struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
	Role    Role   `json:"role"`
}

// NewMessage creates a message with the given id, role, and content.
func NewMessage(id int, role Role, content string) Message {
	return Message{
		ID:      id,
		Role:    role,
		Content: content,
	}
}

// IsEmpty returns true if the message has no content after trimming.
func (m Message) IsEmpty() bool {
	return strings.TrimSpace(m.Content) == ""
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m Message) Preview(maxLen int) string {
	return util.TruncateRunes(strings.ReplaceAll(m.Content, "\n", " "), maxLen)
}
