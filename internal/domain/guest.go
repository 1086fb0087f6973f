package domain

import "time"

// Guest is a password-less session holder bound to a single table.
// Guests are created through a table-specific login token and live only
// as long as their refresh token does.
type Guest struct {
	ID          string
	Name        string
	TableNumber int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
