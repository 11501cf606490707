// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"strings"
	"sync"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/util"
)

// =============================================================================
// PERSISTER PORT
// =============================================================================

// Persister mirrors the conversation collection to durable storage.
// *storage.ConversationStore satisfies this interface.
type Persister interface {
	Load() []model.Conversation
	Save(convs []model.Conversation) error
	Clear() error
}

// =============================================================================
// STORE
// =============================================================================

// Store holds the conversation collection and current selection.
type Store struct {
	mu sync.Mutex

	convs     []model.Conversation
	currentID int
	nextID    int

	persister Persister

	// lastSaveErr holds the most recent mirror failure, surfaced to the
	// UI as a non-fatal warning.
	lastSaveErr error
}

// New creates a store backed by the given persister and restores any
// previously saved conversations. A nil persister disables mirroring.
func New(persister Persister) *Store {
	s := &Store{
		nextID:    1,
		persister: persister,
	}

	if persister != nil {
		s.convs = persister.Load()
	}

	for _, c := range s.convs {
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
	}
	if len(s.convs) > 0 {
		s.currentID = s.convs[0].ID
	}

	return s
}

// =============================================================================
// QUERIES
// =============================================================================

// Conversations returns a snapshot of the collection in display order.
func (s *Store) Conversations() []model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Conversation, len(s.convs))
	for i := range s.convs {
		out[i] = *s.convs[i].Clone()
	}
	return out
}

// Count returns the number of conversations.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.convs)
}

// CurrentID returns the ID of the current conversation, or zero when
// the collection is empty.
func (s *Store) CurrentID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// Current returns a copy of the current conversation, or nil when the
// collection is empty.
func (s *Store) Current() *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneByIDLocked(s.currentID)
}

// Get returns a copy of the conversation with the given ID, or nil.
func (s *Store) Get(id int) *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneByIDLocked(id)
}

// LastSaveError returns the most recent persistence failure, or nil.
func (s *Store) LastSaveError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaveErr
}

// =============================================================================
// MUTATIONS
// =============================================================================

// StartNew creates a conversation titled after its position in the
// list, seeds it with the assistant greeting, makes it current, and
// returns its ID. Titles count from the current size, so a deleted
// chat frees its number; IDs never do.
func (s *Store) StartNew() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	title := "New Chat " + util.IntToString(len(s.convs)+1)
	conv := model.NewConversationWithGreeting(id, title)

	s.convs = append(s.convs, *conv)
	s.currentID = id
	s.mirrorLocked()
	return id
}

// Select makes the conversation with the given ID current.
// Selecting an unknown ID is a no-op.
func (s *Store) Select(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(id) < 0 {
		return false
	}
	s.currentID = id
	return true
}

// Rename sets the title of the conversation with the given ID.
// Blank titles are rejected; surrounding whitespace is trimmed.
func (s *Store) Rename(id int, title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}

	i := s.indexLocked(id)
	if i < 0 {
		return false
	}

	s.convs[i].Title = title
	s.mirrorLocked()
	return true
}

// Delete removes the conversation with the given ID. When the current
// conversation is deleted, selection falls back to the first remaining
// one; deleting the last conversation leaves the store empty with a
// zero current ID.
func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false
	}

	s.convs = append(s.convs[:i], s.convs[i+1:]...)

	if s.currentID == id {
		if len(s.convs) > 0 {
			s.currentID = s.convs[0].ID
		} else {
			s.currentID = 0
		}
	}

	s.mirrorLocked()
	return true
}

// AppendUserMessage appends a user message to the conversation with the
// given ID and returns the stored message. Returns false when the
// conversation no longer exists.
func (s *Store) AppendUserMessage(id int, content string) (model.Message, bool) {
	return s.appendMessage(id, content, model.RoleUser)
}

// AppendAssistantMessage appends an assistant message to the
// conversation with the given ID and returns the stored message.
// Returns false when the conversation no longer exists.
func (s *Store) AppendAssistantMessage(id int, content string) (model.Message, bool) {
	return s.appendMessage(id, content, model.RoleAssistant)
}

func (s *Store) appendMessage(id int, content string, role model.Role) (model.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return model.Message{}, false
	}

	var msg model.Message
	if role == model.RoleAssistant {
		msg = s.convs[i].AddAssistantMessage(content)
	} else {
		msg = s.convs[i].AddUserMessage(content)
	}

	s.mirrorLocked()
	return msg, true
}

// =============================================================================
// INTERNAL
// =============================================================================

// indexLocked returns the position of the conversation with the given
// ID, or -1. Callers must hold the lock.
func (s *Store) indexLocked(id int) int {
	for i := range s.convs {
		if s.convs[i].ID == id {
			return i
		}
	}
	return -1
}

// cloneByIDLocked returns a deep copy of the conversation with the
// given ID, or nil. Callers must hold the lock.
func (s *Store) cloneByIDLocked(id int) *model.Conversation {
	i := s.indexLocked(id)
	if i < 0 {
		return nil
	}
	return s.convs[i].Clone()
}

// mirrorLocked writes the collection to the persister. Persistence
// failures are recorded rather than propagated: losing the mirror must
// not interrupt the chat. Callers must hold the lock.
func (s *Store) mirrorLocked() {
	if s.persister == nil {
		return
	}

	var err error
	if len(s.convs) == 0 {
		err = s.persister.Clear()
	} else {
		err = s.persister.Save(s.convs)
	}
	s.lastSaveErr = err
}
