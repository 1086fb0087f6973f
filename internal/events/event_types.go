package events

import (
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// EventType enumerates supported event identifiers. The values double as
// the event names pushed over the realtime channel.
type EventType string

const (
	EventOrderCreated EventType = "new-order"
	EventOrderUpdated EventType = "update-order"
	EventOrdersPaid   EventType = "payment"
)

// Event represents a domain event emitted by services. GuestID scopes
// delivery: guests only ever see events about their own orders.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	GuestID   string      `json:"guest_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// OrderPayload is the wire form of an order carried by order events.
// Field names follow the public API contract (camelCase).
type OrderPayload struct {
	ID           string              `json:"id"`
	GuestID      *string             `json:"guestId,omitempty"`
	TableNumber  int                 `json:"tableNumber"`
	Quantity     int                 `json:"quantity"`
	Status       domain.OrderStatus  `json:"status"`
	DishSnapshot DishSnapshotPayload `json:"dishSnapshot"`
	Guest        *GuestPayload       `json:"guest,omitempty"`
}

// DishSnapshotPayload is the denormalized dish embedded in order events.
type DishSnapshotPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Image string `json:"image"`
}

// GuestPayload identifies the paying guest inside a payment event.
type GuestPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TableNumber int    `json:"tableNumber"`
}

// NewOrderPayload converts a domain order to its event form.
func NewOrderPayload(order domain.Order) OrderPayload {
	payload := OrderPayload{
		ID:          order.ID,
		GuestID:     order.GuestID,
		TableNumber: order.TableNumber,
		Quantity:    order.Quantity,
		Status:      order.Status,
		DishSnapshot: DishSnapshotPayload{
			ID:    order.DishSnapshot.ID,
			Name:  order.DishSnapshot.Name,
			Price: order.DishSnapshot.Price,
			Image: order.DishSnapshot.Image,
		},
	}
	if order.GuestID != nil {
		payload.Guest = &GuestPayload{
			ID:          *order.GuestID,
			Name:        order.GuestName,
			TableNumber: order.TableNumber,
		}
	}
	return payload
}

// NewOrdersPayload converts a batch of orders, preserving order.
func NewOrdersPayload(orders []domain.Order) []OrderPayload {
	payloads := make([]OrderPayload, 0, len(orders))
	for _, order := range orders {
		payloads = append(payloads, NewOrderPayload(order))
	}
	return payloads
}
