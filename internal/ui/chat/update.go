// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/ui/components"
)

// uploadCommandPrefix marks a composer draft as a document upload.
const uploadCommandPrefix = "/upload "

// Update is the single dispatch point for all messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.queryState.IsProgress() {
			m.refreshViewport()
		}
		return m, cmd

	case QueryStateMsg:
		m.applyQueryState(msg.QueryID, msg.State)
		return m, nil

	case QuerySuccessMsg:
		m.applySuccess(msg.QueryID, msg)
		return m, m.saveWarning()

	case QueryErrorMsg:
		cmd := m.applyError(msg.QueryID, msg.Err)
		return m, tea.Batch(cmd, m.saveWarning())

	case SocketEventMsg:
		return m.handleSocketEvent(msg)

	case SocketClosedMsg:
		return m.handleSocketClosed()

	case SuggestionsMsg:
		return m.handleSuggestions(msg)

	case UploadResultMsg:
		return m.handleUploadResult(msg)

	case FragmentTextMsg:
		return m.handleFragmentText(msg)

	case ExportResultMsg:
		if msg.Err != nil {
			return m, m.toasts.Error("export failed: " + msg.Err.Error())
		}
		return m, m.toasts.Success("exported to " + msg.Path)

	case components.ToastExpiredMsg:
		m.toasts.Sweep()
		return m, nil
	}

	// Everything else goes to the focused composer.
	if m.focus == focusComposer {
		return m, m.composer.Update(msg)
	}
	return m, nil
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	chatWidth := m.chatWidth()
	viewportHeight := m.height - 6
	if viewportHeight < 3 {
		viewportHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(chatWidth, viewportHeight)
		m.renderer = components.NewMessageRenderer(m.theme, chatWidth)
		m.ready = true
	} else {
		m.viewport.Width = chatWidth
		m.viewport.Height = viewportHeight
		m.renderer.SetWidth(chatWidth)
	}

	m.sidebar.SetSize(sidebarWidth, viewportHeight)
	m.evidence.SetSize(evidenceWidth, viewportHeight)
	m.composer.SetWidth(chatWidth)
	m.statusBar.SetWidth(m.width)

	m.refreshViewport()
	return m, nil
}

// =============================================================================
// KEYS
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Rename editing captures everything except enter/esc.
	if m.focus == focusSidebar && m.sidebar.Renaming() {
		return m.handleRenameKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if m.socket != nil {
			m.socket.Close()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.FocusNext):
		m.cycleFocus()
		return m, nil

	case key.Matches(msg, m.keys.NewChat):
		return m.startNewConversation()

	case key.Matches(msg, m.keys.ToggleSide):
		m.showSidebar = !m.showSidebar
		return m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height})

	case key.Matches(msg, m.keys.ToggleRight):
		m.showEvidence = !m.showEvidence
		return m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	}

	switch m.focus {
	case focusSidebar:
		return m.handleSidebarKey(msg)
	case focusEvidence:
		return m.handleEvidenceKey(msg)
	default:
		return m.handleComposerKey(msg)
	}
}

func (m *Model) cycleFocus() {
	for {
		m.focus = (m.focus + 1) % 3
		if m.focus == focusSidebar && !m.showSidebar {
			continue
		}
		if m.focus == focusEvidence && !m.showEvidence {
			continue
		}
		break
	}
}

func (m *Model) handleComposerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Suggest):
		draft := strings.TrimSpace(m.composer.Value())
		if draft == "" || m.inFlight() {
			return m, nil
		}
		return m, preprocess(m.client, draft)

	case key.Matches(msg, m.keys.ExportChat):
		conv := m.store.Current()
		if conv == nil {
			return m, nil
		}
		return m, exportConversation(conv, m.exportDir())
	}

	return m, m.composer.Update(msg)
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.sidebar.CursorUp()
	case key.Matches(msg, m.keys.Down):
		m.sidebar.CursorDown()
	case key.Matches(msg, m.keys.Open):
		if id := m.sidebar.CursorID(); id != 0 {
			m.store.Select(id)
			m.syncSidebar()
			m.refreshViewport()
		}
	case key.Matches(msg, m.keys.RenameChat):
		m.sidebar.StartRename()
	case key.Matches(msg, m.keys.DeleteChat):
		return m.deleteConversation()
	}
	return m, nil
}

func (m *Model) handleRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.sidebar.CancelRename()
	case msg.Type == tea.KeyEnter:
		id, title := m.sidebar.FinishRename()
		if id != 0 {
			m.store.Rename(id, title)
		}
		m.syncSidebar()
	case msg.Type == tea.KeyBackspace:
		m.sidebar.BackspaceRename()
	case msg.Type == tea.KeyRunes:
		m.sidebar.TypeRename(string(msg.Runes))
	case msg.Type == tea.KeySpace:
		m.sidebar.TypeRename(" ")
	}
	return m, nil
}

func (m *Model) handleEvidenceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.evidence.CursorUp()
	case key.Matches(msg, m.keys.Down):
		m.evidence.CursorDown()
	case key.Matches(msg, m.keys.Open):
		if fragmentID := m.evidence.Toggle(); fragmentID != "" {
			return m, fetchFragmentText(m.client, fragmentID)
		}
	}
	return m, nil
}

// =============================================================================
// CONVERSATION MANAGEMENT
// =============================================================================

func (m *Model) startNewConversation() (tea.Model, tea.Cmd) {
	m.store.StartNew()
	m.evidence.Clear()
	m.syncSidebar()
	m.refreshViewport()
	m.updateComposerGate()
	return m, m.saveWarning()
}

func (m *Model) deleteConversation() (tea.Model, tea.Cmd) {
	id := m.sidebar.CursorID()
	if id == 0 {
		return m, nil
	}

	m.store.Delete(id)
	m.evidence.Clear()
	m.syncSidebar()
	m.refreshViewport()
	m.updateComposerGate()
	return m, m.saveWarning()
}

// saveWarning surfaces a failed persistence mirror as a toast, once per
// distinct error. The in-memory conversation keeps working either way.
func (m *Model) saveWarning() tea.Cmd {
	err := m.store.LastSaveError()
	if err == nil || errors.Is(err, m.notifiedSaveErr) {
		return nil
	}
	m.notifiedSaveErr = err
	return m.toasts.Error("could not save conversations: " + err.Error())
}

// updateComposerGate recomputes whether the composer accepts input.
// The composer is disabled while a query is in flight, when the
// transport is down, and when no conversation exists.
func (m *Model) updateComposerGate() {
	switch {
	case !m.connected:
		m.composer.Disable(disconnectedNotice)
	case m.inFlight():
		m.composer.Disable("thinking...")
	case m.store.Count() == 0:
		m.composer.Disable("press ctrl+n to start a conversation")
	default:
		m.composer.Enable()
	}
}

// =============================================================================
// QUERY SUBMISSION
// =============================================================================

func (m *Model) submit() (tea.Model, tea.Cmd) {
	if m.composer.Disabled() || m.inFlight() || !m.connected {
		return m, nil
	}

	query := m.composer.Submit()
	if query == "" {
		return m, nil
	}

	if strings.HasPrefix(query, uploadCommandPrefix) {
		path := strings.TrimSpace(strings.TrimPrefix(query, uploadCommandPrefix))
		if path == "" {
			return m, m.toasts.Error("usage: /upload <path>")
		}
		return m, uploadDocument(m.client, path)
	}

	convID := m.store.CurrentID()
	if convID == 0 {
		return m, nil
	}

	// Optimistic append: the user message lands before any backend
	// round trip.
	m.store.AppendUserMessage(convID, query)
	m.evidence.Clear()

	m.queryState = model.QueryPending
	m.inflightID = newQueryID()
	m.inflightConvID = convID
	m.updateComposerGate()
	m.statusBar.SetQueryState(m.queryState)

	m.syncSidebar()
	m.refreshViewport()
	return m, tea.Batch(m.dispatchQuery(query, m.inflightID), m.saveWarning())
}

// =============================================================================
// QUERY LIFECYCLE
// =============================================================================

// matchesInflight reports whether an event with the given correlation
// ID belongs to the in-flight query. Stale events are dropped so a
// late answer cannot land in the wrong conversation.
func (m *Model) matchesInflight(queryID string) bool {
	if !m.inFlight() {
		return false
	}
	return queryID == "" || queryID == m.inflightID
}

func (m *Model) applyQueryState(queryID string, state model.QueryState) {
	if !m.matchesInflight(queryID) {
		return
	}

	// The extended-search notice is appended exactly once, on the
	// transition into SearchingInternet.
	if state == model.QuerySearchingInternet && m.queryState != model.QuerySearchingInternet {
		m.store.AppendAssistantMessage(m.inflightConvID, extendedSearchNotice)
		m.syncSidebar()
	}

	m.queryState = state
	m.statusBar.SetQueryState(state)
	m.refreshViewport()
}

func (m *Model) applySuccess(queryID string, msg QuerySuccessMsg) {
	if !m.matchesInflight(queryID) {
		return
	}

	answer := ""
	if msg.Result != nil {
		answer = msg.Result.Answer
	}
	m.store.AppendAssistantMessage(m.inflightConvID, answer)

	// Both evidence sets update together.
	if msg.Result != nil {
		m.evidence.Replace(msg.Result.Documents, msg.Result.Images)
	} else {
		m.evidence.Clear()
	}

	m.finishQuery(model.QuerySuccess)
}

func (m *Model) applyError(queryID string, err error) tea.Cmd {
	if !m.matchesInflight(queryID) {
		return nil
	}

	m.store.AppendAssistantMessage(m.inflightConvID, errorFallback)
	m.finishQuery(model.QueryError)

	if err != nil {
		return m.toasts.Error(err.Error())
	}
	return nil
}

// finishQuery closes the in-flight window and returns to idle input.
func (m *Model) finishQuery(terminal model.QueryState) {
	m.queryState = terminal
	m.inflightID = ""
	m.inflightConvID = 0
	m.statusBar.SetQueryState(terminal)
	m.updateComposerGate()
	m.syncSidebar()
	m.refreshViewport()
}

// =============================================================================
// SOCKET EVENTS
// =============================================================================

func (m *Model) handleSocketEvent(msg SocketEventMsg) (tea.Model, tea.Cmd) {
	ev := msg.Event

	var cmd tea.Cmd
	switch ev.State {
	case model.QuerySuccess:
		m.applySuccess(ev.ID, QuerySuccessMsg{QueryID: ev.ID, Result: ev.Result})
	case model.QueryError:
		cmd = m.applyError(ev.ID, nil)
	default:
		m.applyQueryState(ev.ID, ev.State)
	}

	// Re-arm the pump for the next event.
	return m, tea.Batch(cmd, m.saveWarning(), waitForSocketEvent(m.socket))
}

func (m *Model) handleSocketClosed() (tea.Model, tea.Cmd) {
	m.connected = false
	m.statusBar.SetConnected(false)

	// A query that will never get its terminal event fails now.
	var cmd tea.Cmd
	if m.inFlight() {
		cmd = m.applyError(m.inflightID, nil)
	}
	m.updateComposerGate()

	return m, tea.Batch(cmd, m.toasts.Error("connection to backend lost"))
}

// =============================================================================
// SIDE OPERATIONS
// =============================================================================

func (m *Model) handleSuggestions(msg SuggestionsMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.toasts.Error("suggestions unavailable: " + msg.Err.Error())
	}
	if len(msg.Suggestions) == 0 {
		return m, m.toasts.Info("no rewrites suggested")
	}

	// The first suggestion replaces the draft; the rest surface as a
	// notice.
	m.composer.SetValue(msg.Suggestions[0])
	if len(msg.Suggestions) > 1 {
		return m, m.toasts.Info("draft rewritten; more variants were suggested")
	}
	return m, m.toasts.Info("draft rewritten")
}

func (m *Model) handleUploadResult(msg UploadResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.toasts.Error("upload of " + msg.Filename + " failed: " + msg.Err.Error())
	}
	return m, m.toasts.Success(msg.Filename + " uploaded")
}

func (m *Model) handleFragmentText(msg FragmentTextMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil || strings.TrimSpace(msg.Text) == "" {
		m.evidence.SetBodyUnavailable(msg.FragmentID)
	} else {
		m.evidence.SetBody(msg.FragmentID, msg.Text)
	}
	return m, nil
}

// exportDir resolves where exported conversations are written.
func (m *Model) exportDir() string {
	if m.cfg.Storage.Path != "" {
		return filepath.Dir(m.cfg.Storage.Path)
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return "."
	}
	return dir
}
