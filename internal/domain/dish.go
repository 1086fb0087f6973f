package domain

import "time"

// DishStatus enumerates menu visibility states for a dish.
type DishStatus string

const (
	DishStatusAvailable   DishStatus = "Available"
	DishStatusUnavailable DishStatus = "Unavailable"
	DishStatusHidden      DishStatus = "Hidden"
)

// Dish is a menu item. Price is stored in the smallest currency unit.
type Dish struct {
	ID          string
	Name        string
	Price       int64
	Description string
	Image       string
	CategoryID  *string
	Status      DishStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
