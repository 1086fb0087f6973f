package dto

import (
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// GuestLoginRequest payload for the table QR login.
type GuestLoginRequest struct {
	Name        string `json:"name"`
	TableNumber int    `json:"tableNumber"`
	Token       string `json:"token"`
}

// GuestResponse is the public shape of a guest session holder.
type GuestResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Role        domain.Role `json:"role"`
	TableNumber int         `json:"tableNumber"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// GuestLoginResponse carries the session created by guest login.
type GuestLoginResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	Guest        GuestResponse `json:"guest"`
}

// GuestOrderItem is one line of a guest order submission.
type GuestOrderItem struct {
	DishID   string `json:"dishId"`
	Quantity int    `json:"quantity"`
}

// GuestCreateOrdersRequest payload for placing orders.
type GuestCreateOrdersRequest struct {
	Orders []GuestOrderItem `json:"orders"`
}

// FromGuest converts a domain guest.
func FromGuest(guest *domain.Guest) GuestResponse {
	return GuestResponse{
		ID:          guest.ID,
		Name:        guest.Name,
		Role:        domain.RoleGuest,
		TableNumber: guest.TableNumber,
		CreatedAt:   guest.CreatedAt,
	}
}
