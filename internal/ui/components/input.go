// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// =============================================================================
// COMPOSER
// =============================================================================

// Composer is the single-line query input at the bottom of the chat.
// It is disabled while a query is in flight or when no conversation is
// selected.
type Composer struct {
	theme *styles.Theme

	input    textinput.Model
	disabled bool
	reason   string

	width int
}

// NewComposer creates an enabled, focused composer.
func NewComposer(theme *styles.Theme) *Composer {
	ti := textinput.New()
	ti.Placeholder = "Ask a question..."
	ti.Prompt = "> "
	ti.CharLimit = 4000
	ti.Focus()

	return &Composer{
		theme: theme,
		input: ti,
	}
}

// SetWidth updates the composer width.
func (c *Composer) SetWidth(width int) {
	c.width = width
	inner := width - 6
	if inner > 0 {
		c.input.Width = inner
	}
}

// =============================================================================
// STATE
// =============================================================================

// Disable turns input off and records the reason shown in place of the
// prompt.
func (c *Composer) Disable(reason string) {
	c.disabled = true
	c.reason = reason
	c.input.Blur()
}

// Enable turns input back on.
func (c *Composer) Enable() {
	c.disabled = false
	c.reason = ""
	c.input.Focus()
}

// Disabled reports whether the composer rejects input.
func (c *Composer) Disabled() bool {
	return c.disabled
}

// Value returns the current draft text.
func (c *Composer) Value() string {
	return c.input.Value()
}

// SetValue replaces the draft text and moves the cursor to the end.
func (c *Composer) SetValue(text string) {
	c.input.SetValue(text)
	c.input.CursorEnd()
}

// Submit trims the draft, clears the input, and returns the query.
// An all-whitespace draft yields an empty string and no clearing.
func (c *Composer) Submit() string {
	query := strings.TrimSpace(c.input.Value())
	if query == "" {
		return ""
	}
	c.input.Reset()
	return query
}

// =============================================================================
// UPDATE / VIEW
// =============================================================================

// Update forwards key events to the text input while enabled.
func (c *Composer) Update(msg tea.Msg) tea.Cmd {
	if c.disabled {
		return nil
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// View renders the composer.
func (c *Composer) View() string {
	if c.disabled {
		text := c.reason
		if text == "" {
			text = "waiting..."
		}
		return c.theme.InputContainer.Width(c.width).Render(
			c.theme.InputDisabled.Render(text))
	}
	return c.theme.InputContainer.Width(c.width).Render(c.input.View())
}
