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

type vendorRepo struct {
	db *sqlx.DB
}

// NewVendorRepo creates a new PostgreSQL-backed VendorRepository.
func NewVendorRepo(db *sqlx.DB) port.VendorRepository {
	return &vendorRepo{db: db}
}

func (r *vendorRepo) Create(ctx context.Context, v *domain.Vendor) error {
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vendors (id, name, email, phone, gstin, address, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		v.ID, v.Name, v.Email, v.Phone, v.GSTIN, v.Address, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("vendorRepo.Create: %w", err)
	}
	return nil
}

func (r *vendorRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vendor, error) {
	var v domain.Vendor
	err := r.db.GetContext(ctx, &v, "SELECT * FROM vendors WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVendorNotFound
		}
		return nil, fmt.Errorf("vendorRepo.GetByID: %w", err)
	}
	return &v, nil
}

func (r *vendorRepo) List(ctx context.Context, offset, limit int) ([]domain.Vendor, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM vendors"); err != nil {
		return nil, 0, fmt.Errorf("vendorRepo.List count: %w", err)
	}

	var vendors []domain.Vendor
	err := r.db.SelectContext(ctx, &vendors,
		"SELECT * FROM vendors ORDER BY name LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("vendorRepo.List: %w", err)
	}
	return vendors, total, nil
}

func (r *vendorRepo) Update(ctx context.Context, v *domain.Vendor) error {
	v.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE vendors SET name = $2, email = $3, phone = $4, gstin = $5,
		 address = $6, updated_at = $7 WHERE id = $1`,
		v.ID, v.Name, v.Email, v.Phone, v.GSTIN, v.Address, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("vendorRepo.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrVendorNotFound
	}
	return nil
}

func (r *vendorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM vendors WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("vendorRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrVendorNotFound
	}
	return nil
}
