package dto

import "github.com/spec-kit/restaurant-service/internal/domain"

// CreateAccountRequest payload for adding staff accounts.
type CreateAccountRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
	Avatar   *string     `json:"avatar,omitempty"`
}

// UpdateAccountRequest payload for editing staff accounts. Password is
// optional; empty means keep the current one.
type UpdateAccountRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password,omitempty"`
	Role     domain.Role `json:"role"`
	Avatar   *string     `json:"avatar,omitempty"`
}

// ChangePasswordRequest payload for the self-service password change.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// FromAccounts converts a list.
func FromAccounts(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, FromAccount(&accounts[i]))
	}
	return out
}
