// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store manages the in-memory conversation collection and its
// persistence mirror.
//
// The Store owns the list of conversations, the identity of the current
// one, and the monotonically increasing conversation ID counter. Every
// mutation (create, rename, delete, append) is mirrored to the
// configured Persister immediately, so the on-disk state always matches
// what the user last saw.
//
// Invariants maintained by the Store:
//
//   - The current conversation ID always refers to a live conversation,
//     or is zero when the collection is empty.
//   - Conversation IDs are never reused within a session; the counter
//     only moves forward.
//   - Deleting the last conversation clears persistence instead of
//     writing an empty list.
//
// Usage:
//
//	st := store.New(persister)
//	st.StartNew()               // "New Chat 1" with greeting
//	st.AppendUserMessage(st.CurrentID(), "hello")
package store
