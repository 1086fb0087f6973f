package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/domain"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeAccountRepo, *fakeTableRepo) {
	t.Helper()
	accounts := newFakeAccountRepo()
	hash, err := auth.HashPassword("secret123", 4)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := accounts.Create(context.Background(), &domain.Account{
		Name:         "Owner",
		Email:        "owner@example.com",
		PasswordHash: hash,
		Role:         domain.RoleOwner,
	}); err != nil {
		t.Fatalf("seed account: %v", err)
	}

	tables := newFakeTableRepo(
		domain.Table{Number: 5, Capacity: 4, Status: domain.TableStatusAvailable, Token: "table-token"},
		domain.Table{Number: 6, Capacity: 4, Status: domain.TableStatusReserved, Token: "reserved-token"},
	)

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:                   "test-secret",
			AccessTokenTTLMinutes:       15,
			RefreshTokenTTLHours:        24,
			GuestRefreshTokenTTLMinutes: 60,
			BcryptCost:                  4,
		},
	}
	svc := NewAuthService(cfg, AuthDependencies{
		AccountRepo: accounts,
		GuestRepo:   newFakeGuestRepo(),
		TableRepo:   tables,
		TokenStore:  auth.NewMemoryRefreshTokenStore(),
	})
	return svc, accounts, tables
}

func TestLoginStaff(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	account, pair, err := svc.LoginStaff(ctx, "owner@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if account.Role != domain.RoleOwner {
		t.Fatalf("unexpected role %s", account.Role)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected a token pair")
	}

	claims, err := svc.TokenManager().ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse issued access token: %v", err)
	}
	if claims.Subject != account.ID || claims.Role != domain.RoleOwner {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginStaff_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, _, err := svc.LoginStaff(context.Background(), "owner@example.com", "wrong")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 422 {
		t.Fatalf("expected field validation error, got %v", err)
	}
	if domainErr.Fields[0].Field != "password" {
		t.Fatalf("expected password field error, got %+v", domainErr.Fields)
	}
}

func TestLoginGuest(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	guest, pair, err := svc.LoginGuest(ctx, "An", 5, "table-token")
	if err != nil {
		t.Fatalf("guest login: %v", err)
	}
	if guest.TableNumber != 5 {
		t.Fatalf("guest must be bound to the table")
	}

	claims, err := svc.TokenManager().ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != domain.RoleGuest || claims.Subject != guest.ID {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginGuest_Rejections(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	cases := []struct {
		name        string
		tableNumber int
		token       string
		field       string
	}{
		{"wrong token", 5, "bogus", "token"},
		{"reserved table", 6, "reserved-token", "tableNumber"},
		{"missing table", 99, "any", "tableNumber"},
	}
	for _, tc := range cases {
		_, _, err := svc.LoginGuest(ctx, "An", tc.tableNumber, tc.token)
		var domainErr *apperrors.DomainError
		if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 422 {
			t.Fatalf("%s: expected 422, got %v", tc.name, err)
		}
		if domainErr.Fields[0].Field != tc.field {
			t.Fatalf("%s: expected %s field error, got %+v", tc.name, tc.field, domainErr.Fields)
		}
	}
}

func TestRefresh_RoleEndpoints(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, staffPair, err := svc.LoginStaff(ctx, "owner@example.com", "secret123")
	if err != nil {
		t.Fatalf("staff login: %v", err)
	}
	_, guestPair, err := svc.LoginGuest(ctx, "An", 5, "table-token")
	if err != nil {
		t.Fatalf("guest login: %v", err)
	}

	// A guest refresh token presented to the staff endpoint is consumed
	// and rejected, so a replay on the right endpoint also fails.
	if _, err := svc.RefreshStaff(ctx, guestPair.RefreshToken); err == nil {
		t.Fatalf("staff endpoint must reject guest refresh tokens")
	}
	if _, err := svc.RefreshGuest(ctx, guestPair.RefreshToken); err == nil {
		t.Fatalf("role-mismatched rotation must consume the token")
	}

	rotated, err := svc.RefreshStaff(ctx, staffPair.RefreshToken)
	if err != nil {
		t.Fatalf("staff refresh: %v", err)
	}
	if rotated.AccessToken == "" || rotated.RefreshToken == staffPair.RefreshToken {
		t.Fatalf("refresh must rotate the pair")
	}

	// The consumed refresh token is dead.
	if _, err := svc.RefreshStaff(ctx, staffPair.RefreshToken); err == nil {
		t.Fatalf("replayed refresh token must fail")
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, pair, err := svc.LoginStaff(ctx, "owner@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.RefreshStaff(ctx, pair.RefreshToken); err == nil {
		t.Fatalf("refresh after logout must fail")
	}
}
