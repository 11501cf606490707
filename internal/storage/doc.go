// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides conversation persistence for ragchat.
//
// Conversations are persisted as one JSON document (an array of
// conversations) at a fixed path, mirroring the browser client's single
// local-storage key. Writes are atomic (temp file + fsync + rename) so a
// crash never leaves a half-written store.
//
// Load failures are deliberately silent: a missing file or corrupted JSON
// yields an empty collection, never an error the UI must handle. The
// worst outcome of a damaged store is starting fresh.
//
// # Usage
//
//	store, err := storage.NewConversationStore()
//	convs := store.Load()          // nil when absent or unreadable
//	err = store.Save(convs)        // overwrite with the full collection
//	err = store.Clear()            // remove the entry entirely
package storage
