package dto

import (
	"github.com/spec-kit/restaurant-service/internal/domain"
)

// LoginRequest payload for staff login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenRequest payload for both refresh endpoints.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest payload revoking a refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse carries a rotated token pair.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AccountResponse is the public shape of a staff account.
type AccountResponse struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	Avatar *string     `json:"avatar,omitempty"`
}

// LoginResponse carries the session created by staff login.
type LoginResponse struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	Account      AccountResponse `json:"account"`
}

// FromAccount converts a domain account.
func FromAccount(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:     account.ID,
		Name:   account.Name,
		Email:  account.Email,
		Role:   account.Role,
		Avatar: account.Avatar,
	}
}
