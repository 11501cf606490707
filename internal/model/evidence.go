// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// and retrieved evidence.
package model

// =============================================================================
// RETRIEVED EVIDENCE TYPES
// =============================================================================

// Document is a retrieved text fragment returned alongside an answer.
// Documents are ephemeral: each query replaces the whole set, and the
// full Content is fetched lazily when the user opens the fragment.
type Document struct {
	// ID is the backend's fragment identifier, e.g.
	// "cnn_L19wYWdlcy9jbHc3_text_5".
	ID string `json:"id"`

	// Snippet is the chunk of text that matched the query.
	Snippet string `json:"snippet"`

	// Content is the full document text. Empty until fetched.
	Content string `json:"content,omitempty"`
}

// HasContent returns true once the full text has been fetched.
func (d Document) HasContent() bool {
	return d.Content != ""
}

// Image is a retrieved image fragment. Same ephemeral lifecycle as Document.
type Image struct {
	// ID is the backend's fragment identifier.
	ID string `json:"id"`

	// URL points at the image on the source site.
	URL string `json:"url"`
}
