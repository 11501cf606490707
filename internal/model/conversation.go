// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// and retrieved evidence.
package model

// Greeting is the canned assistant message seeded into every new conversation.
const Greeting = "Hello! How can I assist you today?"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds a complete chat thread with its message history.
type Conversation struct {
	// Identity
	ID    int    `json:"id"`
	Title string `json:"title"`

	// Messages, ordered oldest first
	Messages []Message `json:"messages"`
}

// NewConversation creates an empty conversation with the given id and title.
func NewConversation(id int, title string) *Conversation {
	return &Conversation{
		ID:       id,
		Title:    title,
		Messages: make([]Message, 0),
	}
}

// NewConversationWithGreeting creates a conversation seeded with the
// canned assistant greeting as message 1.
func NewConversationWithGreeting(id int, title string) *Conversation {
	conv := NewConversation(id, title)
	conv.AddAssistantMessage(Greeting)
	return conv
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// nextMessageID returns the id for the next appended message.
// Ids are dense: count of existing messages + 1.
func (c *Conversation) nextMessageID() int {
	return len(c.Messages) + 1
}

// AddUserMessage appends a user message and returns it.
func (c *Conversation) AddUserMessage(content string) Message {
	msg := NewMessage(c.nextMessageID(), RoleUser, content)
	c.Messages = append(c.Messages, msg)
	return msg
}

// AddAssistantMessage appends an assistant message and returns it.
func (c *Conversation) AddAssistantMessage(content string) Message {
	msg := NewMessage(c.nextMessageID(), RoleAssistant, content)
	c.Messages = append(c.Messages, msg)
	return msg
}

// LastMessage returns the most recent message, or a zero Message if empty.
func (c *Conversation) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// Clone creates a deep copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	clone := &Conversation{
		ID:       c.ID,
		Title:    c.Title,
		Messages: make([]Message, len(c.Messages)),
	}
	copy(clone.Messages, c.Messages)
	return clone
}

// Preview returns a short preview of the last user message, falling back
// to the first message when the thread has no user messages yet.
func (c *Conversation) Preview() string {
	if len(c.Messages) == 0 {
		return "Empty conversation"
	}
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			return c.Messages[i].Preview(80)
		}
	}
	return c.Messages[0].Preview(80)
}
