package client

import "time"

// Role values issued by the server in access token claims.
const (
	RoleOwner    = "Owner"
	RoleEmployee = "Employee"
	RoleGuest    = "Guest"
)

// TokenPair is a matched access and refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Account is a staff account as returned by the API.
type Account struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Role   string  `json:"role"`
	Avatar *string `json:"avatar,omitempty"`
}

// Guest is a table-bound session holder.
type Guest struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	TableNumber int       `json:"tableNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DishSnapshot is the frozen copy of a dish embedded in an order.
type DishSnapshot struct {
	ID          string  `json:"id"`
	DishID      *string `json:"dishId,omitempty"`
	Name        string  `json:"name"`
	Price       int64   `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Status      string  `json:"status"`
}

// OrderGuest identifies the guest who placed an order.
type OrderGuest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TableNumber int    `json:"tableNumber"`
}

// Order mirrors the order wire shape, shared by REST responses and
// realtime payloads.
type Order struct {
	ID           string       `json:"id"`
	GuestID      *string      `json:"guestId,omitempty"`
	Guest        *OrderGuest  `json:"guest,omitempty"`
	TableNumber  int          `json:"tableNumber"`
	DishSnapshot DishSnapshot `json:"dishSnapshot"`
	Quantity     int          `json:"quantity"`
	Status       string       `json:"status"`
	HandlerID    *string      `json:"orderHandlerId,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// StaffLogin is the staff login response body.
type StaffLogin struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	Account      Account `json:"account"`
}

// GuestLogin is the guest login response body.
type GuestLogin struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Guest        Guest  `json:"guest"`
}

// OrderItem is one line of a guest order submission.
type OrderItem struct {
	DishID   string `json:"dishId"`
	Quantity int    `json:"quantity"`
}
