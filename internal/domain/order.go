package domain

import "time"

// OrderStatus enumerates lifecycle states for orders.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusRejected   OrderStatus = "Rejected"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusPaid       OrderStatus = "Paid"
)

// Valid reports whether the status is one of the known values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusRejected,
		OrderStatusDelivered, OrderStatusPaid:
		return true
	}
	return false
}

// DishSnapshot freezes the dish a guest ordered. Orders keep rendering
// correctly even after the dish itself is edited or removed.
type DishSnapshot struct {
	ID          string
	DishID      *string
	Name        string
	Price       int64
	Description string
	Image       string
	Status      DishStatus
	CreatedAt   time.Time
}

// Order is one dish ordered by one guest.
type Order struct {
	ID           string
	GuestID      *string
	GuestName    string
	TableNumber  int
	DishSnapshot DishSnapshot
	Quantity     int
	Status       OrderStatus
	HandlerID    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
