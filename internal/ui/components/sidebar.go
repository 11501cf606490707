// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
	"github.com/jeranaias/ragchat-tui/internal/util"
)

// =============================================================================
// SIDEBAR
// =============================================================================

// sidebarTitleWidth caps conversation titles in the list.
const sidebarTitleWidth = 22

// Sidebar renders the conversation list and tracks the cursor used for
// select/rename/delete intents.
type Sidebar struct {
	theme *styles.Theme

	convs     []model.Conversation
	currentID int
	cursor    int

	width  int
	height int

	// Rename editing state
	renaming    bool
	renameDraft string
}

// NewSidebar creates a sidebar with an empty conversation list.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{theme: theme}
}

// SetSize updates the sidebar dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetConversations replaces the listed conversations and clamps the
// cursor into range.
func (s *Sidebar) SetConversations(convs []model.Conversation, currentID int) {
	s.convs = convs
	s.currentID = currentID
	if s.cursor >= len(convs) {
		s.cursor = len(convs) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// =============================================================================
// CURSOR
// =============================================================================

// CursorUp moves the cursor up one entry.
func (s *Sidebar) CursorUp() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// CursorDown moves the cursor down one entry.
func (s *Sidebar) CursorDown() {
	if s.cursor < len(s.convs)-1 {
		s.cursor++
	}
}

// CursorID returns the conversation ID under the cursor, or zero when
// the list is empty.
func (s *Sidebar) CursorID() int {
	if s.cursor < 0 || s.cursor >= len(s.convs) {
		return 0
	}
	return s.convs[s.cursor].ID
}

// =============================================================================
// RENAME EDITING
// =============================================================================

// StartRename begins editing the title under the cursor.
func (s *Sidebar) StartRename() {
	if s.cursor < 0 || s.cursor >= len(s.convs) {
		return
	}
	s.renaming = true
	s.renameDraft = s.convs[s.cursor].Title
}

// Renaming reports whether a rename edit is in progress.
func (s *Sidebar) Renaming() bool {
	return s.renaming
}

// RenameDraft returns the in-progress title text.
func (s *Sidebar) RenameDraft() string {
	return s.renameDraft
}

// TypeRename appends runes to the rename draft.
func (s *Sidebar) TypeRename(text string) {
	if s.renaming {
		s.renameDraft += text
	}
}

// BackspaceRename removes the last rune from the rename draft.
func (s *Sidebar) BackspaceRename() {
	if !s.renaming || s.renameDraft == "" {
		return
	}
	runes := []rune(s.renameDraft)
	s.renameDraft = string(runes[:len(runes)-1])
}

// FinishRename ends the edit and returns the target conversation ID and
// final title. The caller applies the rename through the store.
func (s *Sidebar) FinishRename() (int, string) {
	s.renaming = false
	return s.CursorID(), s.renameDraft
}

// CancelRename abandons the edit.
func (s *Sidebar) CancelRename() {
	s.renaming = false
	s.renameDraft = ""
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the sidebar.
func (s *Sidebar) View() string {
	var b strings.Builder

	b.WriteString(s.theme.SidebarTitle.Render("Conversations"))
	b.WriteString("\n\n")

	if len(s.convs) == 0 {
		b.WriteString(s.theme.SidebarItemPreview.Render("no conversations"))
		b.WriteString("\n")
	}

	for i, conv := range s.convs {
		title := conv.Title
		if s.renaming && i == s.cursor {
			title = s.renameDraft + "_"
		}
		title = util.TruncateWidth(title, sidebarTitleWidth)

		marker := "  "
		if conv.ID == s.currentID {
			marker = "> "
		}

		line := marker + title
		if i == s.cursor {
			b.WriteString(s.theme.SidebarItemSelected.Render(line))
		} else {
			b.WriteString(s.theme.SidebarItem.Render(line))
		}
		b.WriteString("\n")

		if preview := util.TruncateWidth(conv.Preview(), sidebarTitleWidth); preview != "" {
			b.WriteString(s.theme.SidebarItemPreview.Render("  " + preview))
			b.WriteString("\n")
		}
	}

	content := b.String()
	if s.height > 0 {
		content = clampLines(content, s.height)
	}
	return s.theme.Sidebar.Width(s.width).Render(content)
}

// clampLines truncates rendered output to at most n lines.
func clampLines(content string, n int) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= n {
		return content
	}
	return strings.Join(lines[:n], "\n")
}

// Width returns the sidebar's rendered width including the border.
func (s *Sidebar) Width() int {
	return lipgloss.Width(s.View())
}
