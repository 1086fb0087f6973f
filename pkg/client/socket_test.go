package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// echoHubServer upgrades the connection and pushes the given frames.
func echoHubServer(t *testing.T, wantToken string, frames []string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wantToken != "" {
			got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if got != wantToken {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		for _, frame := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}
		// Keep the connection open until the client closes it.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestSocket_DispatchesEvents(t *testing.T) {
	srv := echoHubServer(t, "access-1", []string{
		`{"event":"update-order","data":{"id":"o1","quantity":2,"status":"Processing","dishSnapshot":{"name":"Pho"}}}`,
		`not-json`,
		`{"event":"payment","data":[{"id":"o1"},{"id":"o2"}]}`,
	})
	defer srv.Close()

	socket, err := DialSocket(context.Background(), wsURL(srv), "access-1")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer socket.Close()

	lifecycle := make(chan string, 4)
	socket.On(EventConnect, func(json.RawMessage) { lifecycle <- EventConnect })
	socket.On(EventDisconnect, func(json.RawMessage) { lifecycle <- EventDisconnect })

	updates := make(chan Order, 1)
	socket.On(EventUpdateOrder, func(data json.RawMessage) {
		var order Order
		if err := json.Unmarshal(data, &order); err != nil {
			t.Errorf("decode update: %v", err)
			return
		}
		updates <- order
	})

	payments := make(chan []Order, 1)
	socket.On(EventPayment, func(data json.RawMessage) {
		var orders []Order
		if err := json.Unmarshal(data, &orders); err != nil {
			t.Errorf("decode payment: %v", err)
			return
		}
		payments <- orders
	})

	done := make(chan error, 1)
	go func() { done <- socket.Listen() }()

	select {
	case got := <-lifecycle:
		if got != EventConnect {
			t.Fatalf("expected connect first, got %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for connect")
	}

	select {
	case order := <-updates:
		if order.DishSnapshot.Name != "Pho" || order.Quantity != 2 {
			t.Fatalf("unexpected update payload: %+v", order)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for update-order")
	}

	select {
	case orders := <-payments:
		if len(orders) != 2 {
			t.Fatalf("expected 2 paid orders, got %d", len(orders))
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for payment")
	}

	if err := socket.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("listen after close: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("listen did not return after close")
	}
	select {
	case got := <-lifecycle:
		if got != EventDisconnect {
			t.Fatalf("expected disconnect, got %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for disconnect")
	}
}

func TestSocket_SubscriptionClose(t *testing.T) {
	srv := echoHubServer(t, "", []string{
		`{"event":"new-order","data":{"id":"o1"}}`,
		`{"event":"new-order","data":{"id":"o2"}}`,
	})
	defer srv.Close()

	socket, err := DialSocket(context.Background(), wsURL(srv), "")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer socket.Close()

	seen := make(chan string, 2)
	var sub *Subscription
	sub = socket.On(EventNewOrder, func(data json.RawMessage) {
		var order Order
		_ = json.Unmarshal(data, &order)
		seen <- order.ID
		// First delivery deregisters, so o2 must never arrive.
		sub.Close()
	})

	go func() { _ = socket.Listen() }()

	select {
	case id := <-seen:
		if id != "o1" {
			t.Fatalf("expected o1, got %q", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for first event")
	}

	select {
	case id := <-seen:
		t.Fatalf("handler fired after Close: %q", id)
	case <-time.After(200 * time.Millisecond):
	}
}
