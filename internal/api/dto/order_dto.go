package dto

import (
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// UpdateOrderRequest payload for staff order edits.
type UpdateOrderRequest struct {
	Status   domain.OrderStatus `json:"status"`
	Quantity int                `json:"quantity"`
}

// PayOrdersRequest payload for settling a guest's bill.
type PayOrdersRequest struct {
	GuestID string `json:"guestId"`
}

// CreateOrdersRequest payload for staff placing orders on behalf of a
// seated guest.
type CreateOrdersRequest struct {
	GuestID string           `json:"guestId"`
	Orders  []GuestOrderItem `json:"orders"`
}

// DishSnapshotResponse is the frozen dish embedded in an order.
type DishSnapshotResponse struct {
	ID          string            `json:"id"`
	DishID      *string           `json:"dishId,omitempty"`
	Name        string            `json:"name"`
	Price       int64             `json:"price"`
	Description string            `json:"description"`
	Image       string            `json:"image"`
	Status      domain.DishStatus `json:"status"`
}

// OrderGuestResponse identifies the ordering guest.
type OrderGuestResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TableNumber int    `json:"tableNumber"`
}

// OrderResponse is the public shape of an order.
type OrderResponse struct {
	ID           string               `json:"id"`
	GuestID      *string              `json:"guestId,omitempty"`
	Guest        *OrderGuestResponse  `json:"guest,omitempty"`
	TableNumber  int                  `json:"tableNumber"`
	DishSnapshot DishSnapshotResponse `json:"dishSnapshot"`
	Quantity     int                  `json:"quantity"`
	Status       domain.OrderStatus   `json:"status"`
	HandlerID    *string              `json:"orderHandlerId,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// FromOrder converts a domain order.
func FromOrder(order *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:          order.ID,
		GuestID:     order.GuestID,
		TableNumber: order.TableNumber,
		DishSnapshot: DishSnapshotResponse{
			ID:          order.DishSnapshot.ID,
			DishID:      order.DishSnapshot.DishID,
			Name:        order.DishSnapshot.Name,
			Price:       order.DishSnapshot.Price,
			Description: order.DishSnapshot.Description,
			Image:       order.DishSnapshot.Image,
			Status:      order.DishSnapshot.Status,
		},
		Quantity:  order.Quantity,
		Status:    order.Status,
		HandlerID: order.HandlerID,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
	if order.GuestID != nil {
		resp.Guest = &OrderGuestResponse{
			ID:          *order.GuestID,
			Name:        order.GuestName,
			TableNumber: order.TableNumber,
		}
	}
	return resp
}

// FromOrders converts a list, preserving order.
func FromOrders(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, FromOrder(&orders[i]))
	}
	return out
}
