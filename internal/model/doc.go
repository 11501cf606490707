// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// and retrieved evidence.
//
// This package defines the core domain types used throughout the application
// for representing chat threads and the supporting material the backend
// returns alongside each answer.
//
// # Key Types
//
//   - Conversation: A chat thread with an ordered message history
//   - Message: Single message with a per-conversation id, role, and content
//   - Document: A retrieved text fragment shown in the evidence panel
//   - Image: A retrieved image fragment shown in the evidence panel
//   - QueryState: Progress states reported by the backend for one query
//
// # Usage
//
// Create a new conversation and append a message:
//
//	conv := model.NewConversation(1, "New Chat 1")
//	conv.AddUserMessage("What happened in the markets today?")
//
// Message ids are dense within a conversation: the first message gets id 1,
// the next id 2, and so on. They are not unique across conversations.
package model
