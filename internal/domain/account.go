package domain

import "time"

// Account is the domain model for staff members (owner and employees).
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Avatar       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
