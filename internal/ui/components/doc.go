// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the ragchat TUI.
//
// Each component is a small Bubble Tea model or a pure renderer owned
// by the chat model:
//
//   - Sidebar: conversation list with new/select/rename/delete intents
//   - Composer: the single-line query input
//   - Evidence: supporting documents and images for the last answer
//   - StatusBar: transport mode, connection state, query state
//   - ToastManager: transient notices (uploads, disconnects)
//   - Message rendering: role-labelled bubbles, markdown answers
//
// Components never talk to the backend; they emit intents that the
// chat model translates into commands.
package components
