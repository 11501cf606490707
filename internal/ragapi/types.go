// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ragapi

import (
	"github.com/jeranaias/ragchat-tui/internal/model"
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// queryRequest is the request body shared by the query endpoints.
type queryRequest struct {
	Query string `json:"query"`
}

// chatResponse is the body returned by /api/chat-naiverag.
type chatResponse struct {
	Response string `json:"response"`
}

// preprocessResponse is the body returned by /api/preprocess-query.
type preprocessResponse struct {
	Response []string `json:"response"`
}

// fragmentResponse is the body returned by /api/texts/{id}.
type fragmentResponse struct {
	Text string `json:"text"`
}

// uploadResponse is the body returned by /api/upload-document.
type uploadResponse struct {
	Response string `json:"response"`
}

// textEvidence carries document snippets and their fragment IDs as
// parallel arrays, the backend's native shape.
type textEvidence struct {
	Documents   []string `json:"documents"`
	FragmentIDs []string `json:"fragment_ids"`
}

// imageEvidence carries image URLs and their fragment IDs as parallel
// arrays.
type imageEvidence struct {
	URLs        []string `json:"urls"`
	FragmentIDs []string `json:"fragment_ids"`
}

// processResponse is the body returned by /api/process-query, and the
// result payload of terminal socket events.
type processResponse struct {
	FinalResponse string         `json:"final_response"`
	Texts         *textEvidence  `json:"texts,omitempty"`
	Images        *imageEvidence `json:"images,omitempty"`
}

// =============================================================================
// RESULTS
// =============================================================================

// QueryResult is the outcome of a successful retrieval query: the
// answer text plus the evidence that supported it.
type QueryResult struct {
	Answer    string
	Documents []model.Document
	Images    []model.Image
}

// toQueryResult converts the wire shape, zipping the parallel arrays
// into evidence records. Trailing entries without a counterpart are
// dropped rather than paired with empty fields.
func (r *processResponse) toQueryResult() *QueryResult {
	result := &QueryResult{Answer: r.FinalResponse}

	if r.Texts != nil {
		n := len(r.Texts.Documents)
		if len(r.Texts.FragmentIDs) < n {
			n = len(r.Texts.FragmentIDs)
		}
		for i := 0; i < n; i++ {
			result.Documents = append(result.Documents, model.Document{
				ID:      r.Texts.FragmentIDs[i],
				Snippet: r.Texts.Documents[i],
			})
		}
	}

	if r.Images != nil {
		n := len(r.Images.URLs)
		if len(r.Images.FragmentIDs) < n {
			n = len(r.Images.FragmentIDs)
		}
		for i := 0; i < n; i++ {
			result.Images = append(result.Images, model.Image{
				ID:  r.Images.FragmentIDs[i],
				URL: r.Images.URLs[i],
			})
		}
	}

	return result
}

// =============================================================================
// SOCKET TYPES
// =============================================================================

// Query is an outbound streaming query. ID is the correlation ID the
// caller uses to match events to this query.
type Query struct {
	Query string `json:"query"`
	ID    string `json:"id"`
}

// Event is one inbound query-state update. Result is non-nil only on
// Success events. An empty ID matches any query: older backends echo
// nothing back.
type Event struct {
	State  model.QueryState
	Result *QueryResult
	ID     string
}

// Matches reports whether the event belongs to the query with the
// given correlation ID.
func (e Event) Matches(queryID string) bool {
	return e.ID == "" || e.ID == queryID
}

// socketEvent is the wire shape of an inbound event.
type socketEvent struct {
	State  int              `json:"state"`
	Result *processResponse `json:"result,omitempty"`
	ID     string           `json:"id,omitempty"`
}
