package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/port"
)

type purchaseRepo struct {
	db *sqlx.DB
}

// NewPurchaseRepo creates a new PostgreSQL-backed PurchaseRepository.
func NewPurchaseRepo(db *sqlx.DB) port.PurchaseRepository {
	return &purchaseRepo{db: db}
}

func (r *purchaseRepo) Create(ctx context.Context, bill *domain.PurchaseBill) error {
	now := time.Now().UTC()
	bill.CreatedAt = now
	bill.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO purchase_bills
		 (id, number, vendor_id, bill_date, category, notes, amount, tax_amount, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		bill.ID, bill.Number, bill.VendorID, bill.BillDate, bill.Category,
		bill.Notes, bill.Amount, bill.TaxAmount, bill.CreatedAt, bill.UpdatedAt)
	if err != nil {
		return fmt.Errorf("purchaseRepo.Create: %w", err)
	}
	return nil
}

func (r *purchaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseBill, error) {
	var bill domain.PurchaseBill
	err := r.db.GetContext(ctx, &bill, "SELECT * FROM purchase_bills WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("purchaseRepo.GetByID: %w", err)
	}
	return &bill, nil
}

func (r *purchaseRepo) List(ctx context.Context, offset, limit int) ([]domain.PurchaseBill, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM purchase_bills"); err != nil {
		return nil, 0, fmt.Errorf("purchaseRepo.List count: %w", err)
	}

	var bills []domain.PurchaseBill
	err := r.db.SelectContext(ctx, &bills,
		"SELECT * FROM purchase_bills ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("purchaseRepo.List: %w", err)
	}
	return bills, total, nil
}
