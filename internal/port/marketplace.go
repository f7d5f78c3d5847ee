package port

import (
	"context"
	"time"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
)

// OrderSource fetches orders from an external marketplace or storefront.
// Implementations own pagination and credential exchange; callers only see
// fully mapped domain orders.
type OrderSource interface {
	Channel() domain.Channel
	FetchOrders(ctx context.Context, since time.Time) ([]domain.Order, error)
}
