// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/ragapi"
	"github.com/jeranaias/ragchat-tui/internal/storage"
)

// newQueryID mints a correlation ID for an outbound query.
func newQueryID() string {
	return uuid.NewString()
}

// =============================================================================
// QUERY COMMANDS
// =============================================================================

// dispatchQuery returns the command for the configured transport.
func (m *Model) dispatchQuery(query, queryID string) tea.Cmd {
	switch m.cfg.Server.Transport {
	case config.TransportSocket:
		return sendSocketQuery(m.socket, query, queryID)
	case config.TransportNaive:
		return chatNaive(m.client, query, queryID)
	default:
		return processQuery(m.client, query, queryID)
	}
}

// processQuery runs the full retrieval pipeline over REST.
func processQuery(client *ragapi.Client, query, queryID string) tea.Cmd {
	return func() tea.Msg {
		result, err := client.ProcessQuery(context.Background(), query)
		if err != nil {
			return QueryErrorMsg{QueryID: queryID, Err: err}
		}
		return QuerySuccessMsg{QueryID: queryID, Result: result}
	}
}

// chatNaive runs the single-step retrieval endpoint. The naive
// endpoint returns no evidence.
func chatNaive(client *ragapi.Client, query, queryID string) tea.Cmd {
	return func() tea.Msg {
		answer, err := client.ChatNaive(context.Background(), query)
		if err != nil {
			return QueryErrorMsg{QueryID: queryID, Err: err}
		}
		return QuerySuccessMsg{
			QueryID: queryID,
			Result:  &ragapi.QueryResult{Answer: answer},
		}
	}
}

// sendSocketQuery dispatches a query on the streaming connection.
// Progress and terminal events arrive through the event pump.
func sendSocketQuery(socket *ragapi.Socket, query, queryID string) tea.Cmd {
	return func() tea.Msg {
		if err := socket.Send(ragapi.Query{Query: query, ID: queryID}); err != nil {
			return QueryErrorMsg{QueryID: queryID, Err: err}
		}
		return nil
	}
}

// waitForSocketEvent blocks on the next inbound event. The command
// re-arms itself from Update after each delivery, the standard channel
// pump for external event sources.
func waitForSocketEvent(socket *ragapi.Socket) tea.Cmd {
	return func() tea.Msg {
		ev, open := <-socket.Events()
		if !open {
			return SocketClosedMsg{}
		}
		return SocketEventMsg{Event: ev}
	}
}

// =============================================================================
// SIDE OPERATION COMMANDS
// =============================================================================

// preprocess fetches query reformulations for the current draft.
func preprocess(client *ragapi.Client, query string) tea.Cmd {
	return func() tea.Msg {
		suggestions, err := client.PreprocessQuery(context.Background(), query)
		return SuggestionsMsg{Suggestions: suggestions, Err: err}
	}
}

// uploadDocument streams a local file to the backend.
func uploadDocument(client *ragapi.Client, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return UploadResultMsg{Filename: filepath.Base(path), Err: err}
		}
		defer f.Close()

		resp, err := client.UploadDocument(context.Background(), path, f)
		return UploadResultMsg{Filename: filepath.Base(path), Response: resp, Err: err}
	}
}

// fetchFragmentText resolves the full text of an evidence fragment.
func fetchFragmentText(client *ragapi.Client, fragmentID string) tea.Cmd {
	return func() tea.Msg {
		text, err := client.FragmentText(context.Background(), fragmentID)
		return FragmentTextMsg{FragmentID: fragmentID, Text: text, Err: err}
	}
}

// exportConversation writes a Markdown rendering of the conversation
// next to the conversation store.
func exportConversation(conv *model.Conversation, dir string) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(dir, storage.ExportFileName(conv))
		if err := storage.ExportMarkdownFile(conv, path); err != nil {
			return ExportResultMsg{Err: err}
		}
		return ExportResultMsg{Path: path}
	}
}
