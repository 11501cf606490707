// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the main Bubble Tea model for ragchat.
//
// The model owns the query state machine:
//
//	Idle -> Pending -> {SearchingLocal, SearchingInternet}* -> (Success | Error) -> Idle
//
// One query is in flight at a time; the composer is disabled for the
// whole window. Every dispatched query carries a correlation ID, and
// events that do not match the in-flight ID are dropped, so a late
// answer can never land in the wrong conversation.
//
// The package follows the standard layout:
//
//	model.go    - the Model struct and constructor
//	messages.go - tea.Msg types produced by commands
//	commands.go - tea.Cmd constructors (REST calls, socket reads)
//	update.go   - the Update dispatch and state transitions
//	view.go     - layout and rendering
//	keys.go     - key bindings
package chat
