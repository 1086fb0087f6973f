package client

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Event names pushed by the realtime server, plus the two synthetic
// lifecycle events emitted locally by the Socket itself.
const (
	EventNewOrder    = "new-order"
	EventUpdateOrder = "update-order"
	EventPayment     = "payment"
	EventConnect     = "connect"
	EventDisconnect  = "disconnect"
)

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Handler receives the raw data portion of one event frame.
type Handler func(data json.RawMessage)

// Subscription is one registered handler. Close deregisters it.
type Subscription struct {
	socket *Socket
	event  string
	id     int
}

// Close removes the handler; it is safe to call more than once.
func (s *Subscription) Close() {
	s.socket.mu.Lock()
	defer s.socket.mu.Unlock()
	handlers := s.socket.handlers[s.event]
	delete(handlers, s.id)
}

// Socket is a realtime connection authenticated by the access token
// presented at dial time. A refreshed token does not carry over; the
// caller must dial again to switch credentials.
type Socket struct {
	conn *websocket.Conn

	mu       sync.Mutex
	handlers map[string]map[int]Handler
	nextID   int
	closed   bool
}

// DialSocket connects to the realtime endpoint, e.g.
// ws://host:4001/realtime, presenting the access token in the
// handshake.
func DialSocket(ctx context.Context, url, accessToken string) (*Socket, error) {
	header := http.Header{}
	if accessToken != "" {
		header.Set("Authorization", "Bearer "+accessToken)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}
	return &Socket{
		conn:     conn,
		handlers: make(map[string]map[int]Handler),
	}, nil
}

// On registers a handler for the named event. Handlers run on the
// listen goroutine, so they must not block.
func (s *Socket) On(event string, fn Handler) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handlers[event] == nil {
		s.handlers[event] = make(map[int]Handler)
	}
	s.nextID++
	s.handlers[event][s.nextID] = fn
	return &Subscription{socket: s, event: event, id: s.nextID}
}

// Listen emits the connect event, then dispatches inbound frames to
// registered handlers until the connection drops or Close is called.
// A synthetic disconnect event fires exactly once on the way out.
func (s *Socket) Listen() error {
	s.dispatch(EventConnect, nil)
	defer s.dispatch(EventDisconnect, nil)

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if s.isClosed() {
				return nil
			}
			return err
		}

		var frame envelope
		if err := json.Unmarshal(raw, &frame); err != nil {
			// Skip frames that are not event envelopes.
			continue
		}
		s.dispatch(frame.Event, frame.Data)
	}
}

// Close tears the connection down. Listen returns nil afterwards.
func (s *Socket) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	_ = s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return s.conn.Close()
}

func (s *Socket) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Socket) dispatch(event string, data json.RawMessage) {
	s.mu.Lock()
	fns := make([]Handler, 0, len(s.handlers[event]))
	for _, fn := range s.handlers[event] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(data)
	}
}
