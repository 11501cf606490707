// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/ragapi"
	"github.com/jeranaias/ragchat-tui/internal/store"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()

	cfg := config.Default()
	cfg.Server.Transport = config.TransportREST

	st := store.New(nil)
	st.StartNew()

	m := New(Options{
		Config: cfg,
		Store:  st,
		Client: ragapi.NewClient(),
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

// submitQuery drives a user submission and returns the correlation ID.
func submitQuery(t *testing.T, m *Model, text string) string {
	t.Helper()
	m.composer.SetValue(text)
	m.submit()
	if m.inflightID == "" {
		t.Fatal("expected query in flight after submit")
	}
	return m.inflightID
}

func TestSubmitAppendsUserMessageOptimistically(t *testing.T) {
	m := newTestModel(t)

	submitQuery(t, m, "hello")

	conv := m.store.Current()
	if len(conv.Messages) != 2 {
		t.Fatalf("expected greeting + user message, got %d", len(conv.Messages))
	}
	last := conv.Messages[1]
	if last.ID != 2 || last.Role != model.RoleUser || last.Content != "hello" {
		t.Errorf("unexpected user message: %+v", last)
	}

	if !m.composer.Disabled() {
		t.Error("composer must be disabled while in flight")
	}
	if m.queryState != model.QueryPending {
		t.Errorf("expected Pending state, got %v", m.queryState)
	}
}

func TestBlankSubmitIsIgnored(t *testing.T) {
	m := newTestModel(t)

	m.composer.SetValue("   ")
	m.submit()

	if m.inFlight() {
		t.Error("whitespace-only input must not dispatch")
	}
	if len(m.store.Current().Messages) != 1 {
		t.Error("whitespace-only input must not append a message")
	}
}

func TestSuccessAppendsAnswerAndEvidence(t *testing.T) {
	m := newTestModel(t)
	id := submitQuery(t, m, "hello")

	m.Update(QuerySuccessMsg{
		QueryID: id,
		Result: &ragapi.QueryResult{
			Answer:    "hi there",
			Documents: []model.Document{{ID: "doc_text_1", Snippet: "snippet"}},
			Images:    []model.Image{{ID: "img_1", URL: "http://host/1.png"}},
		},
	})

	conv := m.store.Current()
	if len(conv.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(conv.Messages))
	}
	last := conv.Messages[2]
	if last.ID != 3 || last.Role != model.RoleAssistant || last.Content != "hi there" {
		t.Errorf("unexpected assistant message: %+v", last)
	}

	if len(m.evidence.Documents()) != 1 || len(m.evidence.Images()) != 1 {
		t.Error("evidence sets must be replaced from the payload")
	}
	if m.composer.Disabled() {
		t.Error("composer must re-enable after terminal event")
	}
	if m.inFlight() {
		t.Error("in-flight window must close on terminal event")
	}
}

func TestErrorAppendsFallbackAndLeavesEvidenceEmpty(t *testing.T) {
	m := newTestModel(t)
	id := submitQuery(t, m, "hello")

	m.Update(QueryErrorMsg{QueryID: id, Err: errors.New("boom")})

	conv := m.store.Current()
	last := conv.Messages[len(conv.Messages)-1]
	if last.Role != model.RoleAssistant || last.Content != errorFallback {
		t.Errorf("expected fixed fallback message, got %+v", last)
	}
	if !m.evidence.Empty() {
		t.Error("evidence must stay empty after an error")
	}
	if m.composer.Disabled() {
		t.Error("composer must re-enable after error")
	}
}

func TestStaleEventsAreDropped(t *testing.T) {
	m := newTestModel(t)
	submitQuery(t, m, "hello")
	before := len(m.store.Current().Messages)

	m.Update(QuerySuccessMsg{
		QueryID: "some-older-query",
		Result:  &ragapi.QueryResult{Answer: "late answer"},
	})

	if got := len(m.store.Current().Messages); got != before {
		t.Errorf("stale terminal event must mutate nothing, messages %d -> %d", before, got)
	}
	if !m.inFlight() {
		t.Error("stale event must not close the in-flight window")
	}
}

func TestEmptyCorrelationIDMatchesInflight(t *testing.T) {
	m := newTestModel(t)
	submitQuery(t, m, "hello")

	// Older backends echo no ID back.
	m.Update(QuerySuccessMsg{QueryID: "", Result: &ragapi.QueryResult{Answer: "legacy answer"}})

	conv := m.store.Current()
	last := conv.Messages[len(conv.Messages)-1]
	if last.Content != "legacy answer" {
		t.Errorf("empty-ID event should apply, got %+v", last)
	}
}

func TestExtendedSearchNoticeAppendsOnce(t *testing.T) {
	m := newTestModel(t)
	id := submitQuery(t, m, "hello")

	m.Update(QueryStateMsg{QueryID: id, State: model.QuerySearchingLocal})
	m.Update(QueryStateMsg{QueryID: id, State: model.QuerySearchingInternet})
	m.Update(QueryStateMsg{QueryID: id, State: model.QuerySearchingInternet})

	count := 0
	for _, msg := range m.store.Current().Messages {
		if msg.Content == extendedSearchNotice {
			count++
		}
	}
	if count != 1 {
		t.Errorf("extended-search notice must append exactly once, got %d", count)
	}
}

func TestTerminalEventLandsInIssuingConversation(t *testing.T) {
	m := newTestModel(t)
	first := m.store.CurrentID()
	id := submitQuery(t, m, "hello")

	// User switches conversations while the query is in flight.
	second := m.store.StartNew()
	m.syncSidebar()

	m.Update(QuerySuccessMsg{QueryID: id, Result: &ragapi.QueryResult{Answer: "late but correct"}})

	firstConv := m.store.Get(first)
	last := firstConv.Messages[len(firstConv.Messages)-1]
	if last.Content != "late but correct" {
		t.Errorf("answer must land in the issuing conversation, got %+v", last)
	}

	secondConv := m.store.Get(second)
	for _, msg := range secondConv.Messages {
		if msg.Content == "late but correct" {
			t.Error("answer leaked into the wrong conversation")
		}
	}
}

func TestSocketClosedFailsInflightAndDisablesComposer(t *testing.T) {
	m := newTestModel(t)
	submitQuery(t, m, "hello")

	m.Update(SocketClosedMsg{})

	if m.Connected() {
		t.Error("model must report disconnected")
	}
	conv := m.store.Current()
	last := conv.Messages[len(conv.Messages)-1]
	if last.Content != errorFallback {
		t.Errorf("in-flight query must fail on disconnect, got %+v", last)
	}
	if !m.composer.Disabled() {
		t.Error("composer must stay disabled while disconnected")
	}
}

func TestDeleteLastConversationDisablesComposer(t *testing.T) {
	m := newTestModel(t)

	m.store.Delete(m.store.CurrentID())
	m.syncSidebar()
	m.updateComposerGate()

	if !m.composer.Disabled() {
		t.Error("composer must be disabled with no conversation")
	}

	m.startNewConversation()
	if m.composer.Disabled() {
		t.Error("composer must re-enable after starting a conversation")
	}
}

func TestSuggestionsReplaceDraft(t *testing.T) {
	m := newTestModel(t)
	m.composer.SetValue("wht is rag")

	m.Update(SuggestionsMsg{Suggestions: []string{"what is retrieval-augmented generation?"}})

	if m.composer.Value() != "what is retrieval-augmented generation?" {
		t.Errorf("draft not replaced: %q", m.composer.Value())
	}
}

func TestFragmentTextFailureCachesFallback(t *testing.T) {
	m := newTestModel(t)
	m.evidence.Replace([]model.Document{{ID: "doc_text_1", Snippet: "s"}}, nil)
	m.evidence.Toggle()

	m.Update(FragmentTextMsg{FragmentID: "doc_text_1", Err: errors.New("404")})

	// A second toggle cycle must not request a refetch.
	m.evidence.Toggle()
	if id := m.evidence.Toggle(); id != "" {
		t.Errorf("fallback body must be cached, got refetch of %q", id)
	}
}

func TestUploadCommandDoesNotMutateConversation(t *testing.T) {
	m := newTestModel(t)
	before := len(m.store.Current().Messages)

	m.composer.SetValue("/upload /tmp/report.pdf")
	m.submit()

	if m.inFlight() {
		t.Error("upload must not open a query window")
	}
	if got := len(m.store.Current().Messages); got != before {
		t.Error("upload must not append conversation messages")
	}
}

// failingPersister rejects every mirror attempt.
type failingPersister struct{ err error }

func (f *failingPersister) Load() []model.Conversation { return nil }

func (f *failingPersister) Save([]model.Conversation) error { return f.err }

func (f *failingPersister) Clear() error { return f.err }

func TestSaveFailureWarnsOnce(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Transport = config.TransportREST

	st := store.New(&failingPersister{err: errors.New("disk full")})
	m := New(Options{
		Config: cfg,
		Store:  st,
		Client: ragapi.NewClient(),
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	m.startNewConversation()
	if m.toasts.Active() != 1 {
		t.Fatalf("expected one save warning toast, got %d", m.toasts.Active())
	}

	// The same failure repeating stays quiet.
	m.startNewConversation()
	if m.toasts.Active() != 1 {
		t.Errorf("identical save failures must warn once, got %d toasts", m.toasts.Active())
	}
}
