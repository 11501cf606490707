// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ragapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/jeranaias/ragchat-tui/internal/model"
)

// =============================================================================
// SOCKET
// =============================================================================

// Socket is the streaming query connection. One Socket is shared for
// the life of the application; there is no automatic reconnect. When
// the connection drops, the events channel closes and the caller is
// expected to surface the disconnect.
type Socket struct {
	conn   *websocket.Conn
	events chan Event

	writeMu   sync.Mutex
	closeOnce sync.Once
}

// Dial opens the streaming connection against the backend base URL.
// The base URL uses the http scheme; the socket endpoint is derived
// from it.
func Dial(ctx context.Context, baseURL string) (*Socket, error) {
	endpoint, err := socketURL(baseURL)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnreachable, Message: "invalid backend URL", Cause: err}
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnreachable, Message: "failed to open socket", Cause: err}
	}

	s := &Socket{
		conn:   conn,
		events: make(chan Event, 16),
	}
	go s.readLoop()
	return s, nil
}

// socketURL derives the ws endpoint from an http base URL.
func socketURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}

	switch u.Scheme {
	case "https", "wss":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/process-query"
	return u.String(), nil
}

// =============================================================================
// SEND / RECEIVE
// =============================================================================

// Send dispatches a query on the socket. Send is safe for concurrent
// use; writes are serialized.
func (s *Socket) Send(q Query) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.conn.WriteJSON(q); err != nil {
		return &ClientError{Type: ErrTypeSocketClosed, Message: "failed to send query", Cause: err}
	}
	return nil
}

// Events returns the inbound event stream. The channel closes when the
// connection is lost or the socket is closed.
func (s *Socket) Events() <-chan Event {
	return s.events
}

// Close shuts the connection down. Safe to call more than once.
func (s *Socket) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.writeMu.Lock()
		s.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		s.writeMu.Unlock()
		err = s.conn.Close()
	})
	return err
}

// readLoop pumps inbound events until the connection ends. Unparseable
// frames are skipped; the stream survives a single bad message.
func (s *Socket) readLoop() {
	defer close(s.events)
	defer s.conn.Close()

	for {
		var ev socketEvent
		if err := s.conn.ReadJSON(&ev); err != nil {
			// Decode failure on a live connection: drop the frame and
			// keep reading. Anything else ends the stream.
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				continue
			}
			return
		}

		out := Event{
			State: model.QueryState(ev.State),
			ID:    ev.ID,
		}
		if ev.Result != nil {
			out.Result = ev.Result.toQueryResult()
		}
		s.events <- out
	}
}
