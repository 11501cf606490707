// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// and retrieved evidence.
package model

// =============================================================================
// QUERY STATE
// =============================================================================

// QueryState tags a progress event for one in-flight query.
// The integer values are the backend's wire encoding; do not reorder.
type QueryState int

const (
	QueryNone              QueryState = 0
	QuerySearchingLocal    QueryState = 1
	QuerySearchingInternet QueryState = 2
	QueryPending           QueryState = 3
	QuerySuccess           QueryState = 4
	QueryError             QueryState = 5
)

// String returns a human-readable name for the state.
func (s QueryState) String() string {
	switch s {
	case QueryNone:
		return "none"
	case QuerySearchingLocal:
		return "searching locally"
	case QuerySearchingInternet:
		return "searching internet"
	case QueryPending:
		return "pending"
	case QuerySuccess:
		return "success"
	case QueryError:
		return "error"
	default:
		return "unknown"
	}
}

// IsTerminal returns true for the states that end a query cycle.
// The backend sends exactly one terminal event per query.
func (s QueryState) IsTerminal() bool {
	return s == QuerySuccess || s == QueryError
}

// IsProgress returns true for intermediate states between dispatch and
// the terminal event.
func (s QueryState) IsProgress() bool {
	return s == QueryPending || s == QuerySearchingLocal || s == QuerySearchingInternet
}
