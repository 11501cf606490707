// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE RENDERER
// =============================================================================

// MessageRenderer renders conversation messages for the chat viewport.
// Assistant answers are markdown and go through glamour; user messages
// render as plain text.
type MessageRenderer struct {
	theme    *styles.Theme
	markdown *glamour.TermRenderer
	width    int
}

// NewMessageRenderer creates a renderer for the given wrap width.
func NewMessageRenderer(theme *styles.Theme, width int) *MessageRenderer {
	r := &MessageRenderer{theme: theme}
	r.SetWidth(width)
	return r
}

// SetWidth rebuilds the markdown renderer for a new wrap width.
func (r *MessageRenderer) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	r.width = width

	style := glamour.WithStandardStyle("dark")
	if !r.theme.IsDark {
		style = glamour.WithStandardStyle("light")
	}

	md, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(width-8),
	)
	if err != nil {
		// Renderer construction only fails on bad options; fall back
		// to plain text rendering.
		md = nil
	}
	r.markdown = md
}

// Render renders a single message with its role label.
func (r *MessageRenderer) Render(msg model.Message) string {
	var b strings.Builder

	switch msg.Role {
	case model.RoleAssistant:
		b.WriteString(r.theme.AssistantLabel.Render(msg.Role.DisplayName()))
		b.WriteString("\n")
		b.WriteString(r.theme.AssistantBubble.Width(r.width - 6).Render(r.renderMarkdown(msg.Content)))
	default:
		b.WriteString(r.theme.UserLabel.Render(msg.Role.DisplayName()))
		b.WriteString("\n")
		b.WriteString(r.theme.UserBubble.Width(r.width - 6).Render(msg.Content))
	}

	return b.String()
}

// RenderConversation renders all messages of a conversation separated
// by blank lines.
func (r *MessageRenderer) RenderConversation(conv *model.Conversation) string {
	if conv == nil || len(conv.Messages) == 0 {
		return r.theme.ThinkingText.Render("Start the conversation by asking a question.")
	}

	parts := make([]string, 0, len(conv.Messages))
	for _, msg := range conv.Messages {
		parts = append(parts, r.Render(msg))
	}
	return strings.Join(parts, "\n\n")
}

// renderMarkdown renders markdown content, falling back to the raw
// text when the renderer is unavailable or fails.
func (r *MessageRenderer) renderMarkdown(content string) string {
	if r.markdown == nil {
		return content
	}
	out, err := r.markdown.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
