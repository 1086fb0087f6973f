package client

import (
	"context"
	"errors"
	"fmt"
)

// Session binds a Client to a TokenStore and drives the credential
// lifecycle: login writes the pair, authenticated calls read it, a 401
// triggers one forced refresh and a single retry, logout revokes and
// clears.
type Session struct {
	api   *Client
	store TokenStore
	guard *RefreshGuard
}

// NewSession builds a session over the given client and store.
func NewSession(api *Client, store TokenStore, opts ...GuardOption) *Session {
	return &Session{
		api:   api,
		store: store,
		guard: NewRefreshGuard(store, api, opts...),
	}
}

// Guard exposes the refresh guard, e.g. for a background keep-alive
// loop that calls CheckAndRefresh on an interval.
func (s *Session) Guard() *RefreshGuard {
	return s.guard
}

// Store exposes the underlying token store.
func (s *Session) Store() TokenStore {
	return s.store
}

// LoginStaff authenticates an owner or employee and stores the pair.
func (s *Session) LoginStaff(ctx context.Context, email, password string) (*StaffLogin, error) {
	resp, err := s.api.Post(ctx, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var login StaffLogin
	if err := resp.Decode(&login); err != nil {
		return nil, err
	}
	if err := s.store.SetTokens(login.AccessToken, login.RefreshToken); err != nil {
		return nil, err
	}
	return &login, nil
}

// LoginGuest joins a table using the QR token and stores the pair.
func (s *Session) LoginGuest(ctx context.Context, name string, tableNumber int, tableToken string) (*GuestLogin, error) {
	resp, err := s.api.Post(ctx, "/guest/auth/login", "", map[string]any{
		"name":        name,
		"tableNumber": tableNumber,
		"token":       tableToken,
	})
	if err != nil {
		return nil, err
	}

	var login GuestLogin
	if err := resp.Decode(&login); err != nil {
		return nil, err
	}
	if err := s.store.SetTokens(login.AccessToken, login.RefreshToken); err != nil {
		return nil, err
	}
	return &login, nil
}

// Logout revokes the refresh token server-side and clears the store.
// The store is cleared even if the revoke call fails.
func (s *Session) Logout(ctx context.Context) error {
	refresh := s.store.RefreshToken()
	if refresh == "" {
		return nil
	}

	path := "/auth/logout"
	if payload, err := decodeToken(refresh); err == nil && payload.Role == RoleGuest {
		path = "/guest/auth/logout"
	}

	_, callErr := s.api.Post(ctx, path, s.store.AccessToken(), map[string]string{"refreshToken": refresh})
	if err := s.store.Clear(); err != nil {
		return err
	}
	return callErr
}

// Do performs an authenticated request. On a 401 it forces one refresh
// and retries once with the rotated access token.
func (s *Session) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	access := s.store.AccessToken()
	if access == "" {
		return nil, &AuthError{Message: "not logged in"}
	}

	resp, err := s.api.Do(ctx, method, path, access, body)
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		return resp, err
	}

	if refreshErr := s.guard.CheckAndRefresh(ctx, RefreshOptions{Force: true}); refreshErr != nil {
		return nil, fmt.Errorf("refresh after unauthorized response: %w", refreshErr)
	}
	return s.api.Do(ctx, method, path, s.store.AccessToken(), body)
}

// Get performs an authenticated GET with refresh-and-retry.
func (s *Session) Get(ctx context.Context, path string) (*Response, error) {
	return s.Do(ctx, "GET", path, nil)
}

// Post performs an authenticated POST with refresh-and-retry.
func (s *Session) Post(ctx context.Context, path string, body any) (*Response, error) {
	return s.Do(ctx, "POST", path, body)
}

// Put performs an authenticated PUT with refresh-and-retry.
func (s *Session) Put(ctx context.Context, path string, body any) (*Response, error) {
	return s.Do(ctx, "PUT", path, body)
}

// Delete performs an authenticated DELETE with refresh-and-retry.
func (s *Session) Delete(ctx context.Context, path string) (*Response, error) {
	return s.Do(ctx, "DELETE", path, nil)
}

// CreateOrders places guest orders for the current session.
func (s *Session) CreateOrders(ctx context.Context, items []OrderItem) ([]Order, error) {
	resp, err := s.Post(ctx, "/guest/orders", map[string]any{"orders": items})
	if err != nil {
		return nil, err
	}
	var orders []Order
	if err := resp.Decode(&orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListGuestOrders fetches the current guest's orders.
func (s *Session) ListGuestOrders(ctx context.Context) ([]Order, error) {
	resp, err := s.Get(ctx, "/guest/orders")
	if err != nil {
		return nil, err
	}
	var orders []Order
	if err := resp.Decode(&orders); err != nil {
		return nil, err
	}
	return orders, nil
}
