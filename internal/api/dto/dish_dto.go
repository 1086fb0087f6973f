package dto

import (
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// DishRequest payload for create and update.
type DishRequest struct {
	Name        string            `json:"name"`
	Price       int64             `json:"price"`
	Description string            `json:"description"`
	Image       string            `json:"image"`
	CategoryID  *string           `json:"categoryId,omitempty"`
	Status      domain.DishStatus `json:"status"`
}

// DishResponse is the public shape of a dish.
type DishResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Price       int64             `json:"price"`
	Description string            `json:"description"`
	Image       string            `json:"image"`
	CategoryID  *string           `json:"categoryId,omitempty"`
	Status      domain.DishStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// FromDish converts a domain dish.
func FromDish(dish *domain.Dish) DishResponse {
	return DishResponse{
		ID:          dish.ID,
		Name:        dish.Name,
		Price:       dish.Price,
		Description: dish.Description,
		Image:       dish.Image,
		CategoryID:  dish.CategoryID,
		Status:      dish.Status,
		CreatedAt:   dish.CreatedAt,
		UpdatedAt:   dish.UpdatedAt,
	}
}

// FromDishes converts a list.
func FromDishes(dishes []domain.Dish) []DishResponse {
	out := make([]DishResponse, 0, len(dishes))
	for i := range dishes {
		out = append(out, FromDish(&dishes[i]))
	}
	return out
}
