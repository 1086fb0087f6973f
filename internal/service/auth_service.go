package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// AuthService coordinates staff and guest login, refresh and logout.
type AuthService struct {
	accounts   repository.AccountRepository
	guests     repository.GuestRepository
	tables     repository.TableRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	AccountRepo repository.AccountRepository
	GuestRepo   repository.GuestRepository
	TableRepo   repository.TableRepository
	TokenStore  auth.RefreshTokenStore
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	ttls := auth.TokenTTLs{
		Access:       time.Duration(cfg.Auth.AccessTokenTTLMinutes) * time.Minute,
		Refresh:      time.Duration(cfg.Auth.RefreshTokenTTLHours) * time.Hour,
		GuestRefresh: time.Duration(cfg.Auth.GuestRefreshTokenTTLMinutes) * time.Minute,
	}
	return &AuthService{
		accounts:   deps.AccountRepo,
		guests:     deps.GuestRepo,
		tables:     deps.TableRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, ttls, deps.TokenStore),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// LoginStaff authenticates an owner or employee and issues a token pair.
func (s *AuthService) LoginStaff(ctx context.Context, email, password string) (*domain.Account, auth.TokenPair, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.TokenPair{}, apperrors.NewEntityError(apperrors.FieldError{
				Field: "email", Message: "email not registered",
			})
		}
		return nil, auth.TokenPair{}, err
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, auth.TokenPair{}, apperrors.NewEntityError(apperrors.FieldError{
			Field: "password", Message: "invalid password",
		})
	}

	pair, err := s.tokenMgr.GeneratePair(ctx, account.ID, account.Role)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	return account, pair, nil
}

// LoginGuest validates a table login token and creates a guest session.
func (s *AuthService) LoginGuest(ctx context.Context, name string, tableNumber int, tableToken string) (*domain.Guest, auth.TokenPair, error) {
	table, err := s.tables.GetByNumber(ctx, tableNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.TokenPair{}, apperrors.NewEntityError(apperrors.FieldError{
				Field: "tableNumber", Message: "table does not exist",
			})
		}
		return nil, auth.TokenPair{}, err
	}
	if table.Token != tableToken {
		return nil, auth.TokenPair{}, apperrors.NewEntityError(apperrors.FieldError{
			Field: "token", Message: "invalid table token",
		})
	}
	switch table.Status {
	case domain.TableStatusHidden:
		return nil, auth.TokenPair{}, apperrors.NewEntityError(apperrors.FieldError{
			Field: "tableNumber", Message: "table is not open for guests",
		})
	case domain.TableStatusReserved:
		return nil, auth.TokenPair{}, apperrors.NewEntityError(apperrors.FieldError{
			Field: "tableNumber", Message: "table is reserved",
		})
	}

	guest := &domain.Guest{Name: name, TableNumber: tableNumber}
	if err := s.guests.Create(ctx, guest); err != nil {
		return nil, auth.TokenPair{}, err
	}

	pair, err := s.tokenMgr.GeneratePair(ctx, guest.ID, domain.RoleGuest)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	return guest, pair, nil
}

// RefreshStaff rotates a staff refresh token into a fresh pair.
func (s *AuthService) RefreshStaff(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	return s.refresh(ctx, refreshToken, func(role domain.Role) bool { return role.IsStaff() })
}

// RefreshGuest rotates a guest refresh token into a fresh pair.
func (s *AuthService) RefreshGuest(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	return s.refresh(ctx, refreshToken, func(role domain.Role) bool { return role == domain.RoleGuest })
}

func (s *AuthService) refresh(ctx context.Context, refreshToken string, roleOK func(domain.Role) bool) (auth.TokenPair, error) {
	pair, claims, err := s.tokenMgr.Rotate(ctx, refreshToken)
	if err != nil {
		return auth.TokenPair{}, apperrors.NewUnauthorized("invalid refresh token")
	}
	if !roleOK(claims.Role) {
		// issued through the wrong endpoint for this role; the rotation
		// already consumed the jti, matching a hard logout
		return auth.TokenPair{}, apperrors.NewUnauthorized("refresh token role mismatch")
	}
	return pair, nil
}

// Logout revokes the presented refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.tokenMgr.Revoke(ctx, refreshToken); err != nil {
		return apperrors.NewUnauthorized("invalid refresh token")
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware and
// realtime handshake usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
