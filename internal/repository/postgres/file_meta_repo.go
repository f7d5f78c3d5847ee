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

type fileMetaRepo struct {
	db *sqlx.DB
}

// NewFileMetaRepo creates a new PostgreSQL-backed FileMetaRepository.
func NewFileMetaRepo(db *sqlx.DB) port.FileMetaRepository {
	return &fileMetaRepo{db: db}
}

func (r *fileMetaRepo) Create(ctx context.Context, meta *domain.FileMeta) error {
	now := time.Now().UTC()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO file_metadata
		 (id, file_name, original_name, file_type, file_size, s3_bucket, s3_key,
		  content_type, report_type, channel, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		meta.ID, meta.FileName, meta.OriginalName, meta.FileType, meta.FileSize,
		meta.S3Bucket, meta.S3Key, meta.ContentType, meta.ReportType, meta.Channel,
		meta.Status, meta.CreatedAt, meta.UpdatedAt)
	if err != nil {
		return fmt.Errorf("fileMetaRepo.Create: %w", err)
	}
	return nil
}

func (r *fileMetaRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FileMeta, error) {
	var meta domain.FileMeta
	err := r.db.GetContext(ctx, &meta, "SELECT * FROM file_metadata WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fileMetaRepo.GetByID: %w", err)
	}
	return &meta, nil
}

func (r *fileMetaRepo) List(ctx context.Context, offset, limit int) ([]domain.FileMeta, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM file_metadata"); err != nil {
		return nil, 0, fmt.Errorf("fileMetaRepo.List count: %w", err)
	}

	var files []domain.FileMeta
	err := r.db.SelectContext(ctx, &files,
		"SELECT * FROM file_metadata ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("fileMetaRepo.List: %w", err)
	}
	return files, total, nil
}

func (r *fileMetaRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FileStatus) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE file_metadata SET status = $2, updated_at = $3 WHERE id = $1",
		id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("fileMetaRepo.UpdateStatus: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
