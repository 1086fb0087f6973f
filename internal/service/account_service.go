package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// AccountInput carries account fields for create and update.
type AccountInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Avatar   *string
}

// AccountService manages staff accounts (owner-only surface).
type AccountService struct {
	accounts   repository.AccountRepository
	bcryptCost int
}

// NewAccountService builds the service.
func NewAccountService(accounts repository.AccountRepository, bcryptCost int) *AccountService {
	return &AccountService{accounts: accounts, bcryptCost: bcryptCost}
}

// Create registers a new employee or owner account.
func (s *AccountService) Create(ctx context.Context, input AccountInput) (*domain.Account, error) {
	if err := s.validate(input, true); err != nil {
		return nil, err
	}
	if _, err := s.accounts.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewEntityError(apperrors.FieldError{
			Field: "email", Message: "email already registered",
		})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	account := &domain.Account{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		Avatar:       input.Avatar,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Update edits an account; password is replaced only when provided.
func (s *AccountService) Update(ctx context.Context, id string, input AccountInput) (*domain.Account, error) {
	if err := s.validate(input, false); err != nil {
		return nil, err
	}
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	account.Name = input.Name
	account.Email = input.Email
	account.Role = input.Role
	account.Avatar = input.Avatar
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = hash
	}
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, apperrors.MapError(err)
	}
	return account, nil
}

// Delete removes an account.
func (s *AccountService) Delete(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.accounts.Delete(ctx, id); err != nil {
		return nil, apperrors.MapError(err)
	}
	return account, nil
}

// Get returns one account.
func (s *AccountService) Get(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return account, nil
}

// List returns all accounts.
func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.List(ctx)
}

// ChangePassword verifies the current password before replacing it.
func (s *AccountService) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := auth.ComparePassword(account.PasswordHash, currentPassword); err != nil {
		return apperrors.NewEntityError(apperrors.FieldError{
			Field: "oldPassword", Message: "invalid password",
		})
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	return apperrors.MapError(s.accounts.Update(ctx, account))
}

func (s *AccountService) validate(input AccountInput, requirePassword bool) error {
	var fields []apperrors.FieldError
	if strings.TrimSpace(input.Name) == "" {
		fields = append(fields, apperrors.FieldError{Field: "name", Message: "name is required"})
	}
	if !strings.Contains(input.Email, "@") {
		fields = append(fields, apperrors.FieldError{Field: "email", Message: "invalid email"})
	}
	if requirePassword && len(input.Password) < 6 {
		fields = append(fields, apperrors.FieldError{Field: "password", Message: "password must be at least 6 characters"})
	}
	if !input.Role.IsStaff() {
		fields = append(fields, apperrors.FieldError{Field: "role", Message: "role must be Owner or Employee"})
	}
	if len(fields) > 0 {
		return apperrors.NewEntityError(fields...)
	}
	return nil
}
