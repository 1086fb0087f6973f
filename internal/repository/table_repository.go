package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// TableRepository defines persistence access for tables.
type TableRepository interface {
	Create(ctx context.Context, table *domain.Table) error
	Update(ctx context.Context, table *domain.Table) error
	Delete(ctx context.Context, number int) error
	GetByNumber(ctx context.Context, number int) (*domain.Table, error)
	List(ctx context.Context) ([]domain.Table, error)
}

type tableRepository struct {
	pool *pgxpool.Pool
}

// NewTableRepository returns a Postgres-backed implementation.
func NewTableRepository(pool *pgxpool.Pool) TableRepository {
	return &tableRepository{pool: pool}
}

func (r *tableRepository) Create(ctx context.Context, table *domain.Table) error {
	const query = `
        INSERT INTO tables (number, capacity, status, token)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		table.Number,
		table.Capacity,
		table.Status,
		table.Token,
	).Scan(&table.CreatedAt, &table.UpdatedAt)
}

func (r *tableRepository) Update(ctx context.Context, table *domain.Table) error {
	const query = `
        UPDATE tables SET capacity=$1, status=$2, token=$3, updated_at=NOW()
        WHERE number=$4`

	cmd, err := r.pool.Exec(ctx, query,
		table.Capacity,
		table.Status,
		table.Token,
		table.Number,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tableRepository) Delete(ctx context.Context, number int) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tables WHERE number=$1`, number)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tableRepository) GetByNumber(ctx context.Context, number int) (*domain.Table, error) {
	const query = `
        SELECT number, capacity, status, token, created_at, updated_at
        FROM tables WHERE number=$1`

	var table domain.Table
	if err := r.pool.QueryRow(ctx, query, number).Scan(
		&table.Number,
		&table.Capacity,
		&table.Status,
		&table.Token,
		&table.CreatedAt,
		&table.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *tableRepository) List(ctx context.Context) ([]domain.Table, error) {
	const query = `
        SELECT number, capacity, status, token, created_at, updated_at
        FROM tables ORDER BY number`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []domain.Table
	for rows.Next() {
		var table domain.Table
		if err := rows.Scan(
			&table.Number,
			&table.Capacity,
			&table.Status,
			&table.Token,
			&table.CreatedAt,
			&table.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, rows.Err()
}
