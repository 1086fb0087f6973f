package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

func newTestManager() *TokenManager {
	return NewTokenManager("test-secret", TokenTTLs{
		Access:       15 * time.Minute,
		Refresh:      24 * time.Hour,
		GuestRefresh: time.Hour,
	}, NewMemoryRefreshTokenStore())
}

func TestTokenManager_GenerateParse(t *testing.T) {
	tm := newTestManager()
	ctx := context.Background()

	pair, err := tm.GeneratePair(ctx, "account-1", domain.RoleEmployee)
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected tokens")
	}

	claims, err := tm.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.Subject != "account-1" || claims.Role != domain.RoleEmployee {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// Access tokens and refresh tokens are not interchangeable.
	if _, err := tm.ParseAccessToken(pair.RefreshToken); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("refresh token must not parse as access token, got %v", err)
	}
	if _, err := tm.ParseRefreshToken(pair.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("access token must not parse as refresh token, got %v", err)
	}
}

func TestTokenManager_RotateRevokesConsumedToken(t *testing.T) {
	tm := newTestManager()
	ctx := context.Background()

	pair, err := tm.GeneratePair(ctx, "guest-1", domain.RoleGuest)
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	rotated, claims, err := tm.Rotate(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if claims.Role != domain.RoleGuest || claims.Subject != "guest-1" {
		t.Fatalf("unexpected rotated claims: %+v", claims)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatalf("rotation must mint a new refresh token")
	}

	if _, _, err := tm.Rotate(ctx, pair.RefreshToken); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("replayed refresh token must be invalid, got %v", err)
	}
	if _, _, err := tm.Rotate(ctx, rotated.RefreshToken); err != nil {
		t.Fatalf("the replacement token must still rotate: %v", err)
	}
}

func TestTokenManager_Revoke(t *testing.T) {
	tm := newTestManager()
	ctx := context.Background()

	pair, err := tm.GeneratePair(ctx, "account-1", domain.RoleOwner)
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if err := tm.Revoke(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, _, err := tm.Rotate(ctx, pair.RefreshToken); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("revoked token must not rotate, got %v", err)
	}
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	tm := newTestManager()
	other := NewTokenManager("other-secret", TokenTTLs{}, NewMemoryRefreshTokenStore())

	pair, err := other.GeneratePair(context.Background(), "account-1", domain.RoleOwner)
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if _, err := tm.ParseAccessToken(pair.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("foreign signature must be invalid, got %v", err)
	}
}

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("bearer: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Fatalf("unexpected token %q", token)
	}

	for _, header := range []string{"", "abc", "Basic abc", "Bearer "} {
		if _, err := BearerToken(header); err == nil {
			t.Fatalf("header %q must be rejected", header)
		}
	}
}
