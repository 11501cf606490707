// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusBar shows transport mode, connection state, and the current
// query state at the bottom of the screen.
type StatusBar struct {
	theme *styles.Theme

	transport  string
	connected  bool
	queryState model.QueryState

	width int
}

// NewStatusBar creates a status bar for the given transport mode.
func NewStatusBar(theme *styles.Theme, transport string) *StatusBar {
	return &StatusBar{
		theme:     theme,
		transport: transport,
		connected: true,
	}
}

// SetWidth updates the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// SetConnected updates the connection indicator.
func (s *StatusBar) SetConnected(connected bool) {
	s.connected = connected
}

// SetQueryState updates the query state segment.
func (s *StatusBar) SetQueryState(state model.QueryState) {
	s.queryState = state
}

// View renders the status bar.
func (s *StatusBar) View() string {
	var segments []string

	segments = append(segments, "mode:"+s.transport)

	if s.connected {
		segments = append(segments, s.theme.StatusOK.Render("connected"))
	} else {
		segments = append(segments, s.theme.StatusError.Render("disconnected"))
	}

	switch {
	case s.queryState.IsProgress():
		segments = append(segments, s.theme.StatusBusy.Render(s.queryState.String()))
	case s.queryState == model.QueryError:
		segments = append(segments, s.theme.StatusError.Render(s.queryState.String()))
	case s.queryState == model.QuerySuccess:
		segments = append(segments, s.theme.StatusOK.Render(s.queryState.String()))
	}

	help := s.theme.ShortcutKey.Render("ctrl+n") + s.theme.ShortcutDesc.Render(" new  ") +
		s.theme.ShortcutKey.Render("tab") + s.theme.ShortcutDesc.Render(" focus  ") +
		s.theme.ShortcutKey.Render("ctrl+c") + s.theme.ShortcutDesc.Render(" quit")
	segments = append(segments, help)

	return s.theme.StatusBar.Width(s.width).Render(strings.Join(segments, "  |  "))
}
