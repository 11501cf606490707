// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/ragchat-tui/internal/model"
)

// fakePersister records mirror calls in memory.
type fakePersister struct {
	saved   []model.Conversation
	cleared bool
	saveErr error
}

func (f *fakePersister) Load() []model.Conversation { return f.saved }

func (f *fakePersister) Save(convs []model.Conversation) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = make([]model.Conversation, len(convs))
	copy(f.saved, convs)
	f.cleared = false
	return nil
}

func (f *fakePersister) Clear() error {
	f.saved = nil
	f.cleared = true
	return nil
}

func TestStartNewSeedsGreeting(t *testing.T) {
	s := New(nil)

	id := s.StartNew()
	require.Equal(t, 1, id)
	require.Equal(t, 1, s.CurrentID())

	conv := s.Current()
	require.NotNil(t, conv)
	assert.Equal(t, "New Chat 1", conv.Title)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, model.Greeting, conv.Messages[0].Content)
	assert.Equal(t, model.RoleAssistant, conv.Messages[0].Role)
}

func TestConversationIDsNeverReused(t *testing.T) {
	s := New(nil)

	first := s.StartNew()
	second := s.StartNew()
	require.True(t, s.Delete(second))

	third := s.StartNew()
	assert.Greater(t, third, second, "deleted IDs must not be reused")
	assert.NotEqual(t, first, third)
}

func TestStartNewTitleCountsFromListSize(t *testing.T) {
	s := New(nil)

	s.StartNew()
	second := s.StartNew()
	require.True(t, s.Delete(second))

	// The freed number comes back in the title even though the ID
	// counter keeps climbing.
	third := s.StartNew()
	assert.Equal(t, "New Chat 2", s.Get(third).Title)
	assert.Equal(t, 3, third)
}

func TestDeleteCurrentFallsBack(t *testing.T) {
	s := New(nil)

	first := s.StartNew()
	second := s.StartNew()
	require.Equal(t, second, s.CurrentID())

	require.True(t, s.Delete(second))
	assert.Equal(t, first, s.CurrentID(), "selection falls back to first remaining")

	require.True(t, s.Delete(first))
	assert.Equal(t, 0, s.CurrentID(), "empty store has no current conversation")
	assert.Nil(t, s.Current())
}

func TestDeleteOtherKeepsSelection(t *testing.T) {
	s := New(nil)

	first := s.StartNew()
	second := s.StartNew()
	require.True(t, s.Select(first))

	require.True(t, s.Delete(second))
	assert.Equal(t, first, s.CurrentID())
}

func TestRename(t *testing.T) {
	s := New(nil)
	id := s.StartNew()

	assert.True(t, s.Rename(id, "  Project Notes  "))
	assert.Equal(t, "Project Notes", s.Current().Title)

	assert.False(t, s.Rename(id, "   "), "blank title is rejected")
	assert.Equal(t, "Project Notes", s.Current().Title)

	assert.False(t, s.Rename(999, "ghost"))
}

func TestSelectUnknownIsNoOp(t *testing.T) {
	s := New(nil)
	id := s.StartNew()

	assert.False(t, s.Select(42))
	assert.Equal(t, id, s.CurrentID())
}

func TestAppendMessagesByID(t *testing.T) {
	s := New(nil)
	id := s.StartNew()

	user, ok := s.AppendUserMessage(id, "hello")
	require.True(t, ok)
	assert.Equal(t, 2, user.ID, "IDs are dense after the greeting")

	reply, ok := s.AppendAssistantMessage(id, "hi there")
	require.True(t, ok)
	assert.Equal(t, 3, reply.ID)

	_, ok = s.AppendUserMessage(999, "lost")
	assert.False(t, ok, "append to a deleted conversation is refused")
}

func TestMirrorOnEveryMutation(t *testing.T) {
	p := &fakePersister{}
	s := New(p)

	id := s.StartNew()
	require.Len(t, p.saved, 1)

	s.AppendUserMessage(id, "hello")
	require.Len(t, p.saved[0].Messages, 2)

	s.Rename(id, "Renamed")
	assert.Equal(t, "Renamed", p.saved[0].Title)

	s.Delete(id)
	assert.True(t, p.cleared, "deleting the last conversation clears persistence")
}

func TestRestoreFromPersister(t *testing.T) {
	conv := model.NewConversationWithGreeting(5, "New Chat 5")
	conv.AddUserMessage("restored")
	p := &fakePersister{saved: []model.Conversation{*conv}}

	s := New(p)
	assert.Equal(t, 5, s.CurrentID())
	assert.Equal(t, 1, s.Count())

	// Counter resumes past the highest restored ID.
	assert.Equal(t, 6, s.StartNew())
}

func TestSaveErrorIsNonFatal(t *testing.T) {
	p := &fakePersister{saveErr: errors.New("disk full")}
	s := New(p)

	id := s.StartNew()
	assert.Equal(t, id, s.CurrentID(), "mutation succeeds despite mirror failure")
	assert.Error(t, s.LastSaveError())
}

func TestSnapshotsAreIsolated(t *testing.T) {
	s := New(nil)
	id := s.StartNew()

	snap := s.Current()
	snap.Messages[0].Content = "mutated"
	snap.Title = "mutated"

	assert.Equal(t, "New Chat 1", s.Get(id).Title)
	assert.Equal(t, model.Greeting, s.Get(id).Messages[0].Content)
}
