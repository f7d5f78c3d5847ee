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

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

// Create persists an invoice and its lines in one transaction.
func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice, lines []domain.InvoiceLine) error {
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO invoices
		 (id, number, channel, tax_mode, customer_id, invoice_date, sub_total, tax_total,
		  logistics_fee, other_tax, marketplace_fee, refund_amount, grand_total, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		inv.ID, inv.Number, inv.Channel, inv.TaxMode, inv.CustomerID, inv.InvoiceDate,
		inv.SubTotal, inv.TaxTotal, inv.LogisticsFee, inv.OtherTax, inv.MarketplaceFee,
		inv.RefundAmount, inv.GrandTotal, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create invoice: %w", err)
	}

	for i := range lines {
		line := &lines[i]
		line.InvoiceID = inv.ID
		_, err = tx.ExecContext(ctx,
			`INSERT INTO invoice_lines
			 (id, invoice_id, position, description, sku, unit_price, quantity,
			  discount_percent, tax_rate_percent, taxable_value, tax_amount, line_total)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			line.ID, line.InvoiceID, line.Position, line.Description, line.SKU,
			line.UnitPrice, line.Quantity, line.DiscountPercent, line.TaxRatePercent,
			line.TaxableValue, line.TaxAmount, line.LineTotal)
		if err != nil {
			return fmt.Errorf("invoiceRepo.Create line %d: %w", line.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.Create commit: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, []domain.InvoiceLine, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv, "SELECT * FROM invoices WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}

	var lines []domain.InvoiceLine
	err = r.db.SelectContext(ctx, &lines,
		"SELECT * FROM invoice_lines WHERE invoice_id = $1 ORDER BY position", id)
	if err != nil {
		return nil, nil, fmt.Errorf("invoiceRepo.GetByID lines: %w", err)
	}
	return &inv, lines, nil
}

func (r *invoiceRepo) List(ctx context.Context, channel domain.Channel, offset, limit int) ([]domain.Invoice, int, error) {
	where := ""
	args := []interface{}{}
	if channel != "" {
		where = "WHERE channel = $1"
		args = append(args, channel)
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM invoices %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var invoices []domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}
