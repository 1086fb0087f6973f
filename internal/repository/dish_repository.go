package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// DishFilter narrows dish listings.
type DishFilter struct {
	CategoryID *string
	Status     *domain.DishStatus
	Limit      int
	Offset     int
}

// DishRepository defines persistence access for dishes.
type DishRepository interface {
	Create(ctx context.Context, dish *domain.Dish) error
	Update(ctx context.Context, dish *domain.Dish) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Dish, error)
	List(ctx context.Context, filter DishFilter) ([]domain.Dish, error)
}

type dishRepository struct {
	pool *pgxpool.Pool
}

// NewDishRepository returns a Postgres-backed implementation.
func NewDishRepository(pool *pgxpool.Pool) DishRepository {
	return &dishRepository{pool: pool}
}

func (r *dishRepository) Create(ctx context.Context, dish *domain.Dish) error {
	const query = `
        INSERT INTO dishes (name, price, description, image, category_id, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		dish.Name,
		dish.Price,
		dish.Description,
		dish.Image,
		dish.CategoryID,
		dish.Status,
	).Scan(&dish.ID, &dish.CreatedAt, &dish.UpdatedAt)
}

func (r *dishRepository) Update(ctx context.Context, dish *domain.Dish) error {
	const query = `
        UPDATE dishes SET name=$1, price=$2, description=$3, image=$4, category_id=$5, status=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		dish.Name,
		dish.Price,
		dish.Description,
		dish.Image,
		dish.CategoryID,
		dish.Status,
		dish.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *dishRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM dishes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *dishRepository) GetByID(ctx context.Context, id string) (*domain.Dish, error) {
	const query = `
        SELECT id, name, price, description, image, category_id, status, created_at, updated_at
        FROM dishes WHERE id=$1`

	var dish domain.Dish
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&dish.ID,
		&dish.Name,
		&dish.Price,
		&dish.Description,
		&dish.Image,
		&dish.CategoryID,
		&dish.Status,
		&dish.CreatedAt,
		&dish.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *dishRepository) List(ctx context.Context, filter DishFilter) ([]domain.Dish, error) {
	base := `SELECT id, name, price, description, image, category_id, status, created_at, updated_at
             FROM dishes`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("category_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dishes []domain.Dish
	for rows.Next() {
		var dish domain.Dish
		if err := rows.Scan(
			&dish.ID,
			&dish.Name,
			&dish.Price,
			&dish.Description,
			&dish.Image,
			&dish.CategoryID,
			&dish.Status,
			&dish.CreatedAt,
			&dish.UpdatedAt,
		); err != nil {
			return nil, err
		}
		dishes = append(dishes, dish)
	}
	return dishes, rows.Err()
}
