package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Refresh endpoints by session kind. Guests refresh through the guest
// surface, staff through the console surface.
const (
	staffRefreshPath = "/auth/refresh-token"
	guestRefreshPath = "/guest/auth/refresh-token"
)

// ErrSessionExpired reports that the refresh token itself has expired.
// The store has been cleared; the caller must authenticate again.
var ErrSessionExpired = errors.New("session expired")

// TokenPayload is the decoded, unverified view of a token. The client
// never validates signatures; it only reads timing and role.
type TokenPayload struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RefreshOptions tune a single CheckAndRefresh call.
type RefreshOptions struct {
	// Force refreshes regardless of remaining access token lifetime.
	Force bool
	// OnSuccess runs after the store has been updated with a new pair.
	OnSuccess func(TokenPair)
	// OnError runs on any terminal or transient failure.
	OnError func(error)
}

// RefreshGuard decides when the access token is worth refreshing and
// performs the rotation. Calls are serialized: concurrent callers share
// one in-flight refresh, and the second caller observes the already
// rotated pair and becomes a no-op.
type RefreshGuard struct {
	store TokenStore
	api   *Client
	mu    sync.Mutex
	now   func() time.Time
}

// GuardOption customizes a RefreshGuard.
type GuardOption func(*RefreshGuard)

// WithClock overrides the time source.
func WithClock(now func() time.Time) GuardOption {
	return func(g *RefreshGuard) { g.now = now }
}

// NewRefreshGuard builds a guard over the given store and API client.
func NewRefreshGuard(store TokenStore, api *Client, opts ...GuardOption) *RefreshGuard {
	g := &RefreshGuard{store: store, api: api, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CheckAndRefresh inspects the stored pair and rotates it when the
// access token has burned through two-thirds of its lifetime, or when
// forced. An expired refresh token is terminal: the store is cleared
// and ErrSessionExpired returned. A failed refresh call leaves the
// stored pair untouched so a later attempt can retry.
func (g *RefreshGuard) CheckAndRefresh(ctx context.Context, opts RefreshOptions) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	access := g.store.AccessToken()
	refresh := g.store.RefreshToken()
	if access == "" || refresh == "" {
		// Not logged in.
		return nil
	}

	accessPayload, err := decodeToken(access)
	if err != nil {
		return g.fatal(opts, fmt.Errorf("decode access token: %w", err))
	}
	refreshPayload, err := decodeToken(refresh)
	if err != nil {
		return g.fatal(opts, fmt.Errorf("decode refresh token: %w", err))
	}

	now := g.now().Unix()

	if refreshExp := refreshPayload.ExpiresAt.Unix(); refreshExp <= now {
		_ = g.store.Clear()
		if opts.OnError != nil {
			opts.OnError(ErrSessionExpired)
		}
		return ErrSessionExpired
	}

	if !opts.Force && !pastRefreshThreshold(accessPayload, now) {
		return nil
	}

	path := staffRefreshPath
	if refreshPayload.Role == RoleGuest {
		path = guestRefreshPath
	}

	resp, err := g.api.Post(ctx, path, "", map[string]string{"refreshToken": refresh})
	if err != nil {
		if opts.OnError != nil {
			opts.OnError(err)
		}
		return err
	}

	var pair TokenPair
	if err := resp.Decode(&pair); err != nil {
		if opts.OnError != nil {
			opts.OnError(err)
		}
		return err
	}

	if err := g.store.SetTokens(pair.AccessToken, pair.RefreshToken); err != nil {
		if opts.OnError != nil {
			opts.OnError(err)
		}
		return err
	}
	if opts.OnSuccess != nil {
		opts.OnSuccess(pair)
	}
	return nil
}

// fatal handles an unreadable token: the session state is garbage, so
// clear it rather than loop on the same broken pair.
func (g *RefreshGuard) fatal(opts RefreshOptions, err error) error {
	_ = g.store.Clear()
	if opts.OnError != nil {
		opts.OnError(err)
	}
	return err
}

// pastRefreshThreshold reports whether the remaining access token
// lifetime is under one third of its total lifetime. Comparisons stay
// in integer epoch seconds: remaining < lifetime/3 is evaluated as
// 3*remaining < lifetime to avoid rounding.
func pastRefreshThreshold(payload *TokenPayload, now int64) bool {
	if payload.ExpiresAt == nil || payload.IssuedAt == nil {
		return true
	}
	exp := payload.ExpiresAt.Unix()
	iat := payload.IssuedAt.Unix()
	remaining := exp - now
	lifetime := exp - iat
	return 3*remaining < lifetime
}

// decodeToken parses a token without verifying its signature. The
// server is the only party that validates; the client just needs the
// payload fields.
func decodeToken(token string) (*TokenPayload, error) {
	payload := &TokenPayload{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, payload); err != nil {
		return nil, err
	}
	if payload.ExpiresAt == nil {
		return nil, errors.New("token has no expiry")
	}
	return payload, nil
}
