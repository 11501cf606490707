// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ragapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jeranaias/ragchat-tui/internal/model"
)

// socketTestServer upgrades one connection and hands it to fn.
func socketTestServer(t *testing.T, fn func(conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/process-query" {
			http.NotFound(w, r)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		fn(conn)
	}))
}

func TestSocketQueryRoundTrip(t *testing.T) {
	server := socketTestServer(t, func(conn *websocket.Conn) {
		var q Query
		if err := conn.ReadJSON(&q); err != nil {
			t.Errorf("server read failed: %v", err)
			return
		}
		if q.Query != "hello" || q.ID == "" {
			t.Errorf("unexpected query frame: %+v", q)
		}

		conn.WriteJSON(socketEvent{State: int(model.QuerySearchingLocal), ID: q.ID})
		conn.WriteJSON(socketEvent{
			State: int(model.QuerySuccess),
			ID:    q.ID,
			Result: &processResponse{
				FinalResponse: "hi there",
				Texts: &textEvidence{
					Documents:   []string{"snippet"},
					FragmentIDs: []string{"doc_text_1"},
				},
			},
		})
	})
	defer server.Close()

	sock, err := Dial(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer sock.Close()

	if err := sock.Send(Query{Query: "hello", ID: "q-1"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	first := recvEvent(t, sock)
	if first.State != model.QuerySearchingLocal || !first.Matches("q-1") {
		t.Errorf("unexpected first event: %+v", first)
	}

	second := recvEvent(t, sock)
	if second.State != model.QuerySuccess {
		t.Fatalf("expected success event, got %+v", second)
	}
	if second.Result == nil || second.Result.Answer != "hi there" {
		t.Errorf("missing result payload: %+v", second.Result)
	}
	if len(second.Result.Documents) != 1 || second.Result.Documents[0].ID != "doc_text_1" {
		t.Errorf("evidence not carried through: %+v", second.Result.Documents)
	}
}

func TestSocketClosesEventChannel(t *testing.T) {
	server := socketTestServer(t, func(conn *websocket.Conn) {
		// Drop the connection immediately.
	})
	defer server.Close()

	sock, err := Dial(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer sock.Close()

	select {
	case _, open := <-sock.Events():
		if open {
			t.Error("expected closed channel, got event")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("events channel did not close after disconnect")
	}
}

func recvEvent(t *testing.T, sock *Socket) Event {
	t.Helper()
	select {
	case ev, open := <-sock.Events():
		if !open {
			t.Fatal("events channel closed early")
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}
