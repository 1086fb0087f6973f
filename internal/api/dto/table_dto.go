package dto

import (
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// CreateTableRequest payload for creating a table.
type CreateTableRequest struct {
	Number   int                `json:"number"`
	Capacity int                `json:"capacity"`
	Status   domain.TableStatus `json:"status"`
}

// UpdateTableRequest payload for editing a table. ChangeToken rotates the
// QR token.
type UpdateTableRequest struct {
	Capacity    int                `json:"capacity"`
	Status      domain.TableStatus `json:"status"`
	ChangeToken bool               `json:"changeToken"`
}

// TableResponse is the public shape of a table. GuestLink is the URL a
// printed QR code resolves to.
type TableResponse struct {
	Number    int                `json:"number"`
	Capacity  int                `json:"capacity"`
	Status    domain.TableStatus `json:"status"`
	Token     string             `json:"token"`
	GuestLink string             `json:"guestLink"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// FromTable converts a domain table.
func FromTable(table *domain.Table, guestLink string) TableResponse {
	return TableResponse{
		Number:    table.Number,
		Capacity:  table.Capacity,
		Status:    table.Status,
		Token:     table.Token,
		GuestLink: guestLink,
		CreatedAt: table.CreatedAt,
		UpdatedAt: table.UpdatedAt,
	}
}
