// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides conversation persistence for ragchat.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/util"
)

// StoreFileName is the fixed name of the persisted conversation store,
// the terminal analogue of the browser client's local-storage key.
const StoreFileName = "conversations.json"

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// ConversationStore persists the full conversation collection as one
// JSON document.
type ConversationStore struct {
	// Path is the location of the store file.
	// Default: ~/.ragchat/conversations.json
	Path string
}

// NewConversationStore creates a store under the user's home directory.
func NewConversationStore() (*ConversationStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Join(homeDir, ".ragchat")
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &ConversationStore{
		Path: filepath.Join(baseDir, StoreFileName),
	}, nil
}

// NewConversationStoreWithPath creates a store at a custom file path.
func NewConversationStoreWithPath(path string) *ConversationStore {
	return &ConversationStore{Path: path}
}

// =============================================================================
// LOAD
// =============================================================================

// Load reads the persisted conversation collection.
// Returns nil when the store is absent or unreadable: a corrupted store
// is discarded rather than crashing the caller.
func (s *ConversationStore) Load() []model.Conversation {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil
	}

	var convs []model.Conversation
	if err := json.Unmarshal(data, &convs); err != nil {
		return nil
	}

	return convs
}

// =============================================================================
// SAVE
// =============================================================================

// Save overwrites the store with the given collection.
// Saving an empty collection removes the entry instead, matching the
// browser client's behavior of clearing the storage key.
func (s *ConversationStore) Save(convs []model.Conversation) error {
	if len(convs) == 0 {
		return s.Clear()
	}

	data, err := json.MarshalIndent(convs, "", "  ")
	if err != nil {
		return err
	}

	return util.AtomicWriteFile(s.Path, data, 0644)
}

// Clear removes the persisted entry. Clearing an absent store is a no-op.
func (s *ConversationStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists reports whether a persisted entry is present.
func (s *ConversationStore) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// =============================================================================
// MARKDOWN EXPORT
// =============================================================================

// ExportMarkdown renders a conversation as a Markdown document with role
// labels, suitable for saving next to the store.
func ExportMarkdown(conv *model.Conversation) string {
	var sb strings.Builder
	sb.WriteString("# " + conv.Title + "\n\n")
	sb.WriteString("---\n\n")

	for _, msg := range conv.Messages {
		role := "**User**"
		if msg.Role == model.RoleAssistant {
			role = "**Assistant**"
		}
		sb.WriteString(role + ":\n\n")
		sb.WriteString(msg.Content)
		sb.WriteString("\n\n---\n\n")
	}

	return sb.String()
}

// ExportMarkdownFile writes the Markdown rendering of a conversation to
// the given path atomically.
func ExportMarkdownFile(conv *model.Conversation, path string) error {
	return util.AtomicWriteFile(path, []byte(ExportMarkdown(conv)), 0644)
}

// ExportFileName derives a safe file name for an exported conversation.
func ExportFileName(conv *model.Conversation) string {
	name := strings.ToLower(conv.Title)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, name)
	name = strings.Trim(name, "-")
	if name == "" {
		name = "conversation-" + util.IntToString(conv.ID)
	}
	return name + ".md"
}
