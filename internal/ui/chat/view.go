// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/lipgloss"
)

// Fixed pane widths. The chat column takes whatever remains.
const (
	sidebarWidth  = 28
	evidenceWidth = 34
)

// chatWidth returns the width available to the chat column.
func (m *Model) chatWidth() int {
	w := m.width
	if m.showSidebar {
		w -= sidebarWidth
	}
	if m.showEvidence {
		w -= evidenceWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// View renders the whole screen.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	var columns []string

	if m.showSidebar {
		columns = append(columns, m.sidebar.View())
	}

	chat := lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.composer.View(),
	)
	columns = append(columns, chat)

	if m.showEvidence {
		columns = append(columns, m.evidence.View())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	sections := []string{body}
	if toastView := m.toasts.View(); toastView != "" {
		sections = append(sections, toastView)
	}
	sections = append(sections, m.statusBar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
