// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
	"github.com/jeranaias/ragchat-tui/internal/util"
)

// =============================================================================
// EVIDENCE PANEL
// =============================================================================

// NoTextAvailable is shown when a fragment's full text cannot be
// retrieved. Once shown it is cached for the fragment like any other
// body.
const NoTextAvailable = "No text available"

// snippetWidth caps evidence snippets in the list.
const snippetWidth = 28

// Evidence renders the documents and images supporting the last
// answer. Opening a document lazily fetches its full text; fetched
// bodies are cached per fragment for the lifetime of the panel
// contents.
type Evidence struct {
	theme *styles.Theme

	documents []model.Document
	images    []model.Image

	cursor   int
	expanded map[string]bool
	bodies   map[string]string
	loading  map[string]bool

	width  int
	height int
}

// NewEvidence creates an empty evidence panel.
func NewEvidence(theme *styles.Theme) *Evidence {
	return &Evidence{
		theme:    theme,
		expanded: make(map[string]bool),
		bodies:   make(map[string]string),
		loading:  make(map[string]bool),
	}
}

// SetSize updates the panel dimensions.
func (e *Evidence) SetSize(width, height int) {
	e.width = width
	e.height = height
}

// Replace swaps in the evidence for a new answer. Both sets change
// together; cached bodies and expansion state from the previous answer
// are discarded.
func (e *Evidence) Replace(documents []model.Document, images []model.Image) {
	e.documents = documents
	e.images = images
	e.cursor = 0
	e.expanded = make(map[string]bool)
	e.bodies = make(map[string]string)
	e.loading = make(map[string]bool)
}

// Clear empties both evidence sets.
func (e *Evidence) Clear() {
	e.Replace(nil, nil)
}

// Empty reports whether the panel has nothing to show.
func (e *Evidence) Empty() bool {
	return len(e.documents) == 0 && len(e.images) == 0
}

// Documents returns the current document set.
func (e *Evidence) Documents() []model.Document {
	return e.documents
}

// Images returns the current image set.
func (e *Evidence) Images() []model.Image {
	return e.images
}

// =============================================================================
// CURSOR AND EXPANSION
// =============================================================================

// CursorUp moves the cursor up one document.
func (e *Evidence) CursorUp() {
	if e.cursor > 0 {
		e.cursor--
	}
}

// CursorDown moves the cursor down one document.
func (e *Evidence) CursorDown() {
	if e.cursor < len(e.documents)-1 {
		e.cursor++
	}
}

// CursorFragmentID returns the fragment ID under the cursor, or "".
func (e *Evidence) CursorFragmentID() string {
	if e.cursor < 0 || e.cursor >= len(e.documents) {
		return ""
	}
	return e.documents[e.cursor].ID
}

// Toggle expands or collapses the document under the cursor. It
// returns the fragment ID to fetch when the body is not cached yet,
// or "" when no fetch is needed.
func (e *Evidence) Toggle() string {
	id := e.CursorFragmentID()
	if id == "" {
		return ""
	}

	if e.expanded[id] {
		e.expanded[id] = false
		return ""
	}

	e.expanded[id] = true
	if _, cached := e.bodies[id]; cached || e.loading[id] {
		return ""
	}
	e.loading[id] = true
	return id
}

// SetBody stores a fetched fragment body and clears its loading state.
func (e *Evidence) SetBody(fragmentID, body string) {
	delete(e.loading, fragmentID)
	e.bodies[fragmentID] = body
}

// SetBodyUnavailable caches the fixed fallback for a fragment whose
// text could not be retrieved.
func (e *Evidence) SetBodyUnavailable(fragmentID string) {
	e.SetBody(fragmentID, NoTextAvailable)
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the evidence panel.
func (e *Evidence) View() string {
	var b strings.Builder

	b.WriteString(e.theme.EvidenceTitle.Render("Evidence"))
	b.WriteString("\n\n")

	if e.Empty() {
		b.WriteString(e.theme.EvidenceSnippet.Render("no supporting context"))
		return e.theme.EvidencePanel.Width(e.width).Render(b.String())
	}

	for i, doc := range e.documents {
		marker := "  "
		if e.expanded[doc.ID] {
			marker = "- "
		} else {
			marker = "+ "
		}

		line := marker + util.TruncateWidth(doc.Snippet, snippetWidth)
		if i == e.cursor {
			b.WriteString(e.theme.EvidenceItemSelected.Render(line))
		} else {
			b.WriteString(e.theme.EvidenceItem.Render(line))
		}
		b.WriteString("\n")

		if e.expanded[doc.ID] {
			body, cached := e.bodies[doc.ID]
			switch {
			case e.loading[doc.ID] && !cached:
				b.WriteString(e.theme.EvidenceSnippet.Render("  loading..."))
			case cached:
				b.WriteString(e.theme.EvidenceBody.Width(e.width - 4).Render(body))
			}
			b.WriteString("\n")
		}
	}

	if len(e.images) > 0 {
		b.WriteString("\n")
		b.WriteString(e.theme.EvidenceTitle.Render("Images"))
		b.WriteString("\n")
		for _, img := range e.images {
			b.WriteString(e.theme.EvidenceItem.Render("* " + util.TruncateWidth(img.URL, snippetWidth)))
			b.WriteString("\n")
		}
	}

	content := b.String()
	if e.height > 0 {
		content = clampLines(content, e.height)
	}
	return e.theme.EvidencePanel.Width(e.width).Render(content)
}
