// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/ragapi"
	"github.com/jeranaias/ragchat-tui/internal/store"
	"github.com/jeranaias/ragchat-tui/internal/ui/components"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// =============================================================================
// FIXED MESSAGES
// =============================================================================

// errorFallback is the assistant message appended when a query fails.
// The real cause goes to the status bar, not the transcript.
const errorFallback = "Sorry, I encountered an error processing your request. Please try again."

// extendedSearchNotice is appended when the backend widens a search to
// the internet.
const extendedSearchNotice = "I couldn't find enough in the local documents, extending the search to the internet..."

// disconnectedNotice explains the disabled composer after a socket drop.
const disconnectedNotice = "connection lost - restart to reconnect"

// =============================================================================
// FOCUS
// =============================================================================

// focusArea identifies which pane receives key input.
type focusArea int

const (
	focusComposer focusArea = iota
	focusSidebar
	focusEvidence
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the root Bubble Tea model for the chat UI.
type Model struct {
	theme *styles.Theme
	cfg   *config.Config
	keys  KeyMap

	// Domain state
	store  *store.Store
	client *ragapi.Client
	socket *ragapi.Socket

	// Query state machine
	queryState     model.QueryState
	inflightID     string
	inflightConvID int
	connected      bool

	// notifiedSaveErr suppresses repeat warnings for the same
	// persistence failure.
	notifiedSaveErr error

	// Components
	sidebar   *components.Sidebar
	composer  *components.Composer
	evidence  *components.Evidence
	statusBar *components.StatusBar
	toasts    *components.ToastManager
	renderer  *components.MessageRenderer
	viewport  viewport.Model
	spinner   spinner.Model

	// Layout
	width        int
	height       int
	showSidebar  bool
	showEvidence bool
	focus        focusArea

	ready    bool
	quitting bool
}

// Options carries the dependencies assembled in main.
type Options struct {
	Config *config.Config
	Store  *store.Store
	Client *ragapi.Client
	// Socket is non-nil only for the socket transport.
	Socket *ragapi.Socket
}

// New creates the chat model. The store is expected to hold at least
// one conversation; main seeds a default when persistence was empty.
func New(opts Options) *Model {
	theme := styles.NewTheme()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	m := &Model{
		theme:        theme,
		cfg:          opts.Config,
		keys:         DefaultKeyMap(),
		store:        opts.Store,
		client:       opts.Client,
		socket:       opts.Socket,
		queryState:   model.QueryNone,
		connected:    true,
		sidebar:      components.NewSidebar(theme),
		composer:     components.NewComposer(theme),
		evidence:     components.NewEvidence(theme),
		statusBar:    components.NewStatusBar(theme, opts.Config.Server.Transport),
		toasts:       components.NewToastManager(theme),
		spinner:      sp,
		showSidebar:  opts.Config.UI.ShowSidebar,
		showEvidence: opts.Config.UI.ShowEvidence,
		focus:        focusComposer,
	}

	m.syncSidebar()
	return m
}

// Init starts the spinner and, for the socket transport, the event pump.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.socket != nil {
		cmds = append(cmds, waitForSocketEvent(m.socket))
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// STATE HELPERS
// =============================================================================

// inFlight reports whether a query is awaiting its terminal event.
func (m *Model) inFlight() bool {
	return m.inflightID != ""
}

// syncSidebar refreshes the sidebar list from the store.
func (m *Model) syncSidebar() {
	m.sidebar.SetConversations(m.store.Conversations(), m.store.CurrentID())
}

// refreshViewport re-renders the current conversation into the
// viewport and follows the newest message.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	content := m.renderer.RenderConversation(m.store.Current())
	if m.queryState.IsProgress() {
		content += "\n\n" + m.spinner.View() + " " + m.theme.ThinkingText.Render(m.queryState.String())
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

// QueryState exposes the current machine state.
func (m *Model) QueryState() model.QueryState {
	return m.queryState
}

// Connected reports whether the transport is usable.
func (m *Model) Connected() bool {
	return m.connected
}
