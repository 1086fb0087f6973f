package realtime

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// Envelope is the wire frame for every pushed event.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Client is one connected subscriber. Staff clients receive every event;
// guest clients only receive events scoped to their own guest ID.
type Client struct {
	ID      string
	Role    domain.Role
	GuestID string
	Send    chan []byte
}

// Hub tracks connected realtime clients and fans events out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{clients: make(map[string]*Client), logger: logger}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	close(client.Send)
}

// Broadcast pushes an event to all staff clients and, when guestID is
// set, to the matching guest client. A slow client drops the message
// rather than blocking the hub.
func (h *Hub) Broadcast(event string, data interface{}, guestID string) {
	payload, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		h.logger.Error("marshal realtime event", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if !h.shouldReceive(client, guestID) {
			continue
		}
		select {
		case client.Send <- payload:
		default:
			h.logger.Warn("drop realtime message", zap.String("client", client.ID), zap.String("event", event))
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) shouldReceive(client *Client, guestID string) bool {
	if client.Role.IsStaff() {
		return true
	}
	return guestID != "" && client.GuestID == guestID
}
