// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/ragapi"
)

// =============================================================================
// QUERY LIFECYCLE MESSAGES
// =============================================================================

// QueryStateMsg reports a progress transition for an in-flight query.
type QueryStateMsg struct {
	QueryID string
	State   model.QueryState
}

// QuerySuccessMsg carries the terminal answer and evidence for a query.
type QuerySuccessMsg struct {
	QueryID string
	Result  *ragapi.QueryResult
}

// QueryErrorMsg reports a failed query.
type QueryErrorMsg struct {
	QueryID string
	Err     error
}

// =============================================================================
// SOCKET MESSAGES
// =============================================================================

// SocketEventMsg wraps one inbound streaming event.
type SocketEventMsg struct {
	Event ragapi.Event
}

// SocketClosedMsg indicates the streaming connection dropped. There is
// no automatic reconnect; the UI surfaces the disconnect and disables
// the composer.
type SocketClosedMsg struct{}

// =============================================================================
// SIDE OPERATION MESSAGES
// =============================================================================

// SuggestionsMsg carries query reformulations from preprocessing.
type SuggestionsMsg struct {
	Suggestions []string
	Err         error
}

// UploadResultMsg reports the outcome of a document upload.
type UploadResultMsg struct {
	Filename string
	Response string
	Err      error
}

// FragmentTextMsg carries the lazily fetched full text of an evidence
// fragment.
type FragmentTextMsg struct {
	FragmentID string
	Text       string
	Err        error
}

// ExportResultMsg reports the outcome of a conversation export.
type ExportResultMsg struct {
	Path string
	Err  error
}
