package postgres

import (
	"context"

	"order-service/internal/domain/order"
	apperrors "order-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, input order.CreateOrderInput) (*order.Order, error) {
	query := `
		INSERT INTO orders (user_id, item, quantity, amount_cents, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, item, quantity, amount_cents, status, created_at, updated_at
	`

	o := &order.Order{}
	err := r.db.Pool.QueryRow(ctx, query,
		input.UserID, input.Item, input.Quantity, input.AmountCents, order.StatusPending,
	).Scan(
		&o.ID,
		&o.UserID,
		&o.Item,
		&o.Quantity,
		&o.AmountCents,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)

	if err != nil {
		return nil, errFailedCreateOrder(err)
	}

	return o, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	query := `
		SELECT id, user_id, item, quantity, amount_cents, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	o := &order.Order{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&o.ID,
		&o.UserID,
		&o.Item,
		&o.Quantity,
		&o.AmountCents,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errOrderNotFound)
		}
		return nil, errFailedGetOrder(err)
	}

	return o, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*order.Order, error) {
	query := `
		SELECT id, user_id, item, quantity, amount_cents, status, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, errFailedListOrders(err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *OrderRepository) List(ctx context.Context, status *order.Status, limit, offset int) ([]*order.Order, error) {
	query := `
		SELECT id, user_id, item, quantity, amount_cents, status, created_at, updated_at
		FROM orders
	`
	args := []any{}

	if status != nil {
		query += " WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3"
		args = append(args, *status, limit, offset)
	} else {
		query += " ORDER BY created_at DESC LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errFailedListOrders(err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func scanOrders(rows pgx.Rows) ([]*order.Order, error) {
	var orders []*order.Order
	for rows.Next() {
		o := &order.Order{}
		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.Item,
			&o.Quantity,
			&o.AmountCents,
			&o.Status,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, errFailedScanOrder(err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, errIterateOrders(err)
	}

	return orders, nil
}

// UpdateStatus moves an order from one status to another atomically. The
// current status is part of the WHERE clause, so two racing updates cannot
// both succeed; the loser sees zero rows and gets an invalid-transition
// error.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to order.Status) error {
	query := "UPDATE orders SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2"

	result, err := r.db.Pool.Exec(ctx, query, id, from, to)
	if err != nil {
		return errFailedUpdateOrderStatus(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.InvalidTransition(errOrderStatusConflict)
	}

	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM orders WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteOrder(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errOrderNotFound)
	}

	return nil
}
