package auth

import (
	"context"
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// Claims describes JWT payload. Role rides along with the registered
// sub/iat/exp claims; refresh tokens additionally carry a jti.
type Claims struct {
	Role      domain.Role `json:"role"`
	TokenType string      `json:"typ"`
	jwt.RegisteredClaims
}

// TokenPair is an access/refresh token pairing issued on login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// TokenManager issues, validates and rotates JWT token pairs.
type TokenManager struct {
	secret          []byte
	accessTTL       time.Duration
	refreshTTL      time.Duration
	guestRefreshTTL time.Duration
	store           RefreshTokenStore
}

// TokenTTLs bundles per-kind token lifetimes.
type TokenTTLs struct {
	Access       time.Duration
	Refresh      time.Duration
	GuestRefresh time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttls TokenTTLs, store RefreshTokenStore) *TokenManager {
	if ttls.Access <= 0 {
		ttls.Access = 15 * time.Minute
	}
	if ttls.Refresh <= 0 {
		ttls.Refresh = 7 * 24 * time.Hour
	}
	if ttls.GuestRefresh <= 0 {
		ttls.GuestRefresh = 12 * time.Hour
	}
	if store == nil {
		store = NewMemoryRefreshTokenStore()
	}
	return &TokenManager{
		secret:          []byte(secret),
		accessTTL:       ttls.Access,
		refreshTTL:      ttls.Refresh,
		guestRefreshTTL: ttls.GuestRefresh,
		store:           store,
	}
}

// GeneratePair issues a fresh access/refresh pair for the subject and
// records the refresh jti as live.
func (tm *TokenManager) GeneratePair(ctx context.Context, subjectID string, role domain.Role) (TokenPair, error) {
	now := time.Now().UTC()

	access, accessExp, err := tm.sign(subjectID, role, now, tm.accessTTL, tokenTypeAccess, "")
	if err != nil {
		return TokenPair{}, err
	}

	refreshTTL := tm.refreshTTL
	if role == domain.RoleGuest {
		refreshTTL = tm.guestRefreshTTL
	}
	jti := uuid.NewString()
	refresh, _, err := tm.sign(subjectID, role, now, refreshTTL, tokenTypeRefresh, jti)
	if err != nil {
		return TokenPair{}, err
	}

	if err := tm.store.Store(ctx, jti, subjectID, refreshTTL); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: accessExp}, nil
}

// ParseAccessToken validates an access token and returns its claims.
func (tm *TokenManager) ParseAccessToken(tokenStr string) (*Claims, error) {
	claims, err := tm.parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeAccess {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ParseRefreshToken validates a refresh token without consuming it.
func (tm *TokenManager) ParseRefreshToken(tokenStr string) (*Claims, error) {
	claims, err := tm.parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeRefresh || claims.ID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Rotate consumes a refresh token and issues a new pair. The consumed
// jti is revoked first, so a replayed refresh token always fails.
func (tm *TokenManager) Rotate(ctx context.Context, refreshToken string) (TokenPair, *Claims, error) {
	claims, err := tm.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, nil, err
	}

	live, err := tm.store.Exists(ctx, claims.ID)
	if err != nil {
		return TokenPair{}, nil, err
	}
	if !live {
		return TokenPair{}, nil, ErrTokenInvalid
	}
	if err := tm.store.Revoke(ctx, claims.ID); err != nil {
		return TokenPair{}, nil, err
	}

	pair, err := tm.GeneratePair(ctx, claims.Subject, claims.Role)
	if err != nil {
		return TokenPair{}, nil, err
	}
	return pair, claims, nil
}

// Revoke invalidates a refresh token ahead of its expiry (logout).
func (tm *TokenManager) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := tm.ParseRefreshToken(refreshToken)
	if err != nil {
		return err
	}
	return tm.store.Revoke(ctx, claims.ID)
}

func (tm *TokenManager) sign(subjectID string, role domain.Role, now time.Time, ttl time.Duration, tokenType, jti string) (string, time.Time, error) {
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (tm *TokenManager) parse(tokenStr string) (*Claims, error) {
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(tokenStr, &claims, func(_ *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsed.Valid || claims.Subject == "" || !claims.Role.Valid() {
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}
