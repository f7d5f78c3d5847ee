package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/port"
)

type settlementRepo struct {
	db *sqlx.DB
}

// NewSettlementRepo creates a new PostgreSQL-backed SettlementRepository.
func NewSettlementRepo(db *sqlx.DB) port.SettlementRepository {
	return &settlementRepo{db: db}
}

func (r *settlementRepo) Create(ctx context.Context, row *domain.SettlementRow) error {
	row.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settlement_rows
		 (id, upload_id, report_type, row_index, order_id, order_item_id, sku, fields, raw_data, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		row.ID, row.UploadID, row.ReportType, row.RowIndex, row.OrderID,
		row.OrderItemID, row.SKU, row.Fields, row.RawData, row.CreatedAt)
	if err != nil {
		return fmt.Errorf("settlementRepo.Create: %w", err)
	}
	return nil
}

// ListByUpload returns rows in their original file order.
func (r *settlementRepo) ListByUpload(ctx context.Context, uploadID uuid.UUID) ([]domain.SettlementRow, error) {
	var rows []domain.SettlementRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM settlement_rows WHERE upload_id = $1 ORDER BY row_index", uploadID)
	if err != nil {
		return nil, fmt.Errorf("settlementRepo.ListByUpload: %w", err)
	}
	return rows, nil
}

func (r *settlementRepo) ListByReportType(ctx context.Context, reportType domain.ReportType, since time.Time) ([]domain.SettlementRow, error) {
	var rows []domain.SettlementRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM settlement_rows WHERE report_type = $1 AND created_at >= $2
		 ORDER BY created_at, row_index`, reportType, since)
	if err != nil {
		return nil, fmt.Errorf("settlementRepo.ListByReportType: %w", err)
	}
	return rows, nil
}
