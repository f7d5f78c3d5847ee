package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/port"
)

type orderRepo struct {
	db *sqlx.DB
}

// NewOrderRepo creates a new PostgreSQL-backed OrderRepository.
func NewOrderRepo(db *sqlx.DB) port.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, o *domain.Order) error {
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO orders
		 (id, channel, order_id, order_item_id, sku, quantity, amount, status, ordered_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		o.ID, o.Channel, o.OrderID, o.OrderItemID, o.SKU, o.Quantity, o.Amount,
		o.Status, o.OrderedAt, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("orderRepo.Create: %w", err)
	}
	return nil
}

func (r *orderRepo) ExistsByOrderItemID(ctx context.Context, channel domain.Channel, orderItemID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM orders WHERE channel = $1 AND order_item_id = $2)",
		channel, orderItemID)
	if err != nil {
		return false, fmt.Errorf("orderRepo.ExistsByOrderItemID: %w", err)
	}
	return exists, nil
}

func (r *orderRepo) ListByChannel(ctx context.Context, channel domain.Channel, offset, limit int) ([]domain.Order, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM orders WHERE channel = $1", channel)
	if err != nil {
		return nil, 0, fmt.Errorf("orderRepo.ListByChannel count: %w", err)
	}

	var orders []domain.Order
	err = r.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE channel = $1 ORDER BY ordered_at DESC LIMIT $2 OFFSET $3",
		channel, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("orderRepo.ListByChannel: %w", err)
	}
	return orders, total, nil
}

// ListAllByChannel loads every order for a channel in insertion order for
// reconciliation, which needs fully materialized collections.
func (r *orderRepo) ListAllByChannel(ctx context.Context, channel domain.Channel) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE channel = $1 ORDER BY created_at", channel)
	if err != nil {
		return nil, fmt.Errorf("orderRepo.ListAllByChannel: %w", err)
	}
	return orders, nil
}
