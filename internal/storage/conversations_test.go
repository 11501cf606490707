// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/ragchat-tui/internal/model"
)

func testStore(t *testing.T) *ConversationStore {
	t.Helper()
	return NewConversationStoreWithPath(filepath.Join(t.TempDir(), StoreFileName))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := testStore(t)

	conv := model.NewConversationWithGreeting(1, "New Chat 1")
	conv.AddUserMessage("hello")
	conv.AddAssistantMessage("hi there")
	convs := []model.Conversation{*conv}

	if err := store.Save(convs); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := store.Load()
	if len(loaded) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(loaded))
	}
	if loaded[0].ID != 1 || loaded[0].Title != "New Chat 1" {
		t.Errorf("identity mismatch: %+v", loaded[0])
	}
	if len(loaded[0].Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(loaded[0].Messages))
	}
	if loaded[0].Messages[0].Content != model.Greeting {
		t.Errorf("expected greeting first, got %q", loaded[0].Messages[0].Content)
	}
	if loaded[0].Messages[2].Role != model.RoleAssistant {
		t.Errorf("expected assistant role, got %q", loaded[0].Messages[2].Role)
	}
}

func TestLoadAbsentStore(t *testing.T) {
	store := testStore(t)
	if loaded := store.Load(); loaded != nil {
		t.Errorf("expected nil for absent store, got %v", loaded)
	}
}

func TestLoadCorruptStore(t *testing.T) {
	store := testStore(t)
	if err := os.WriteFile(store.Path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if loaded := store.Load(); loaded != nil {
		t.Errorf("expected nil for corrupt store, got %v", loaded)
	}
}

func TestSaveEmptyClears(t *testing.T) {
	store := testStore(t)

	conv := model.NewConversation(1, "New Chat 1")
	if err := store.Save([]model.Conversation{*conv}); err != nil {
		t.Fatal(err)
	}
	if !store.Exists() {
		t.Fatal("expected store file after save")
	}

	if err := store.Save(nil); err != nil {
		t.Fatalf("saving empty collection failed: %v", err)
	}
	if store.Exists() {
		t.Error("expected store file removed after saving empty collection")
	}
}

func TestClearAbsentStore(t *testing.T) {
	store := testStore(t)
	if err := store.Clear(); err != nil {
		t.Errorf("clearing absent store should be a no-op, got %v", err)
	}
}

func TestExportMarkdown(t *testing.T) {
	conv := model.NewConversation(1, "Report Review")
	conv.AddUserMessage("summarize the report")
	conv.AddAssistantMessage("The report covers Q3 results.")

	md := ExportMarkdown(conv)
	if !strings.HasPrefix(md, "# Report Review\n") {
		t.Errorf("missing title heading:\n%s", md)
	}
	if !strings.Contains(md, "**User**:\n\nsummarize the report") {
		t.Errorf("missing user message:\n%s", md)
	}
	if !strings.Contains(md, "**Assistant**:\n\nThe report covers Q3 results.") {
		t.Errorf("missing assistant message:\n%s", md)
	}
}

func TestExportFileName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"New Chat 1", "new-chat-1.md"},
		{"Report: Q3 / Final!", "report-q3--final.md"},
		{"???", "conversation-7.md"},
	}

	for _, tt := range tests {
		conv := model.NewConversation(7, tt.title)
		if got := ExportFileName(conv); got != tt.want {
			t.Errorf("ExportFileName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
