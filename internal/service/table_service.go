package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// TableUpdate carries mutable table fields. ChangeToken rotates the QR
// token, invalidating previously printed codes.
type TableUpdate struct {
	Capacity    int
	Status      domain.TableStatus
	ChangeToken bool
}

// TableService manages tables and their guest entry links.
type TableService struct {
	tables repository.TableRepository
	public config.PublicConfig
}

// NewTableService builds the service.
func NewTableService(tables repository.TableRepository, public config.PublicConfig) *TableService {
	return &TableService{tables: tables, public: public}
}

// Create persists a new table with a fresh token.
func (s *TableService) Create(ctx context.Context, number, capacity int, status domain.TableStatus) (*domain.Table, error) {
	if err := validateTable(number, capacity, status); err != nil {
		return nil, err
	}
	if _, err := s.tables.GetByNumber(ctx, number); err == nil {
		return nil, apperrors.NewEntityError(apperrors.FieldError{
			Field: "number", Message: "table number already exists",
		})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	table := &domain.Table{
		Number:   number,
		Capacity: capacity,
		Status:   status,
		Token:    newTableToken(),
	}
	if err := s.tables.Create(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// Update edits a table, optionally rotating its token.
func (s *TableService) Update(ctx context.Context, number int, update TableUpdate) (*domain.Table, error) {
	if err := validateTable(number, update.Capacity, update.Status); err != nil {
		return nil, err
	}
	table, err := s.tables.GetByNumber(ctx, number)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	table.Capacity = update.Capacity
	table.Status = update.Status
	if update.ChangeToken {
		table.Token = newTableToken()
	}
	if err := s.tables.Update(ctx, table); err != nil {
		return nil, apperrors.MapError(err)
	}
	return table, nil
}

// Delete removes a table.
func (s *TableService) Delete(ctx context.Context, number int) (*domain.Table, error) {
	table, err := s.tables.GetByNumber(ctx, number)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.tables.Delete(ctx, number); err != nil {
		return nil, apperrors.MapError(err)
	}
	return table, nil
}

// Get returns one table.
func (s *TableService) Get(ctx context.Context, number int) (*domain.Table, error) {
	table, err := s.tables.GetByNumber(ctx, number)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return table, nil
}

// List returns all tables.
func (s *TableService) List(ctx context.Context) ([]domain.Table, error) {
	return s.tables.List(ctx)
}

// GuestLink builds the guest entry URL embedded in the table's QR code.
// Physical QR codes encode exactly this shape; the locale segment and the
// token query parameter are load-bearing.
func (s *TableService) GuestLink(table *domain.Table) string {
	return fmt.Sprintf("%s/%s/tables/%d?token=%s",
		strings.TrimRight(s.public.BaseURL, "/"),
		s.public.DefaultLocale,
		table.Number,
		table.Token,
	)
}

func validateTable(number, capacity int, status domain.TableStatus) error {
	var fields []apperrors.FieldError
	if number <= 0 {
		fields = append(fields, apperrors.FieldError{Field: "number", Message: "number must be positive"})
	}
	if capacity <= 0 {
		fields = append(fields, apperrors.FieldError{Field: "capacity", Message: "capacity must be positive"})
	}
	switch status {
	case domain.TableStatusAvailable, domain.TableStatusReserved, domain.TableStatusHidden:
	default:
		fields = append(fields, apperrors.FieldError{Field: "status", Message: "unknown status"})
	}
	if len(fields) > 0 {
		return apperrors.NewEntityError(fields...)
	}
	return nil
}

func newTableToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
