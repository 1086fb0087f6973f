package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// GuestRepository defines persistence access for table guests.
type GuestRepository interface {
	Create(ctx context.Context, guest *domain.Guest) error
	GetByID(ctx context.Context, id string) (*domain.Guest, error)
	ListByTable(ctx context.Context, tableNumber int) ([]domain.Guest, error)
}

type guestRepository struct {
	pool *pgxpool.Pool
}

// NewGuestRepository returns a Postgres-backed implementation.
func NewGuestRepository(pool *pgxpool.Pool) GuestRepository {
	return &guestRepository{pool: pool}
}

func (r *guestRepository) Create(ctx context.Context, guest *domain.Guest) error {
	const query = `
        INSERT INTO guests (name, table_number)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		guest.Name,
		guest.TableNumber,
	).Scan(&guest.ID, &guest.CreatedAt, &guest.UpdatedAt)
}

func (r *guestRepository) GetByID(ctx context.Context, id string) (*domain.Guest, error) {
	const query = `
        SELECT id, name, table_number, created_at, updated_at
        FROM guests WHERE id=$1`

	var guest domain.Guest
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&guest.ID,
		&guest.Name,
		&guest.TableNumber,
		&guest.CreatedAt,
		&guest.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *guestRepository) ListByTable(ctx context.Context, tableNumber int) ([]domain.Guest, error) {
	const query = `
        SELECT id, name, table_number, created_at, updated_at
        FROM guests WHERE table_number=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, tableNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guests []domain.Guest
	for rows.Next() {
		var guest domain.Guest
		if err := rows.Scan(
			&guest.ID,
			&guest.Name,
			&guest.TableNumber,
			&guest.CreatedAt,
			&guest.UpdatedAt,
		); err != nil {
			return nil, err
		}
		guests = append(guests, guest)
	}
	return guests, rows.Err()
}
