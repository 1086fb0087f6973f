package realtime

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/events"
)

// Bridge forwards dispatcher events onto the realtime hub.
type Bridge struct {
	hub    *Hub
	logger *zap.Logger
}

// NewBridge creates the bridge.
func NewBridge(hub *Hub, logger *zap.Logger) *Bridge {
	return &Bridge{hub: hub, logger: logger}
}

// RegisterHandlers subscribes to order events.
func (b *Bridge) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventOrderCreated, b.handle)
	dispatcher.Subscribe(events.EventOrderUpdated, b.handle)
	dispatcher.Subscribe(events.EventOrdersPaid, b.handle)
}

func (b *Bridge) handle(_ context.Context, event events.Event) error {
	b.logger.Debug("push realtime event",
		zap.String("type", string(event.Type)),
		zap.String("guest_id", event.GuestID))
	b.hub.Broadcast(string(event.Type), event.Payload, event.GuestID)
	return nil
}
