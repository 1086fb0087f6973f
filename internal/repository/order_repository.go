package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// OrderFilter narrows order listings.
type OrderFilter struct {
	GuestID     *string
	TableNumber *int
	Statuses    []domain.OrderStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// OrderRepository defines persistence access for orders and their dish
// snapshots. Snapshots are immutable once written.
type OrderRepository interface {
	CreateSnapshot(ctx context.Context, snapshot *domain.DishSnapshot) error
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

func (r *orderRepository) CreateSnapshot(ctx context.Context, snapshot *domain.DishSnapshot) error {
	const query = `
        INSERT INTO dish_snapshots (dish_id, name, price, description, image, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		snapshot.DishID,
		snapshot.Name,
		snapshot.Price,
		snapshot.Description,
		snapshot.Image,
		snapshot.Status,
	).Scan(&snapshot.ID, &snapshot.CreatedAt)
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (guest_id, table_number, dish_snapshot_id, quantity, status, handler_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		order.GuestID,
		order.TableNumber,
		order.DishSnapshot.ID,
		order.Quantity,
		order.Status,
		order.HandlerID,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	const query = `
        UPDATE orders SET quantity=$1, status=$2, handler_id=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		order.Quantity,
		order.Status,
		order.HandlerID,
		order.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const orderSelect = `
    SELECT o.id, o.guest_id, COALESCE(g.name, ''), o.table_number, o.quantity, o.status, o.handler_id,
           o.created_at, o.updated_at,
           s.id, s.dish_id, s.name, s.price, s.description, s.image, s.status, s.created_at
    FROM orders o
    JOIN dish_snapshots s ON s.id = o.dish_snapshot_id
    LEFT JOIN guests g ON g.id = o.guest_id`

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	rows, err := r.pool.Query(ctx, orderSelect+` WHERE o.id=$1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &orders[0], nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.GuestID != nil {
		args = append(args, *filter.GuestID)
		clauses = append(clauses, fmt.Sprintf("o.guest_id=$%d", len(args)))
	}
	if filter.TableNumber != nil {
		args = append(args, *filter.TableNumber)
		clauses = append(clauses, fmt.Sprintf("o.table_number=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("o.status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("o.created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("o.created_at <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY o.created_at LIMIT %d OFFSET %d`,
		orderSelect, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	var result []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.GuestID,
			&order.GuestName,
			&order.TableNumber,
			&order.Quantity,
			&order.Status,
			&order.HandlerID,
			&order.CreatedAt,
			&order.UpdatedAt,
			&order.DishSnapshot.ID,
			&order.DishSnapshot.DishID,
			&order.DishSnapshot.Name,
			&order.DishSnapshot.Price,
			&order.DishSnapshot.Description,
			&order.DishSnapshot.Image,
			&order.DishSnapshot.Status,
			&order.DishSnapshot.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}
