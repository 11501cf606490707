// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ragapi provides the HTTP and WebSocket clients for the RAG
// backend.
//
// The Client covers the request/response endpoints: one-shot retrieval
// queries, query preprocessing, document upload, and fragment text
// lookup. The Socket maintains a single long-lived WebSocket connection
// that streams query-state events for in-flight queries.
//
// Every outbound query carries a correlation ID so callers can discard
// events that belong to an earlier, abandoned query.
//
// Example:
//
//	client := ragapi.NewClient()
//	result, err := client.ProcessQuery(ctx, "what does the report say?")
//	if err != nil {
//	    // typed: errors.Is(err, ragapi.ErrUnreachable) etc.
//	}
package ragapi
