package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/port"
)

type counterRepo struct {
	db *sqlx.DB
}

// NewCounterRepo creates a new PostgreSQL-backed CounterRepository.
func NewCounterRepo(db *sqlx.DB) port.CounterRepository {
	return &counterRepo{db: db}
}

// AllocateNext increments the named counter and returns the new value.
// The upsert is a single statement, so Postgres row locking guarantees the
// read-increment-write pair is never interleaved with another allocation on
// the same key: each integer is handed out exactly once. A counter row is
// created on first use with count 1.
func (r *counterRepo) AllocateNext(ctx context.Context, key string) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`INSERT INTO counters (key, count) VALUES ($1, 1)
		 ON CONFLICT (key) DO UPDATE SET count = counters.count + 1
		 RETURNING count`, key)
	if err != nil {
		return 0, fmt.Errorf("counterRepo.AllocateNext %q: %w", key, errors.Join(domain.ErrAllocationConflict, err))
	}
	return count, nil
}

// Current returns the last allocated value for a key, 0 if never allocated.
func (r *counterRepo) Current(ctx context.Context, key string) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, "SELECT count FROM counters WHERE key = $1", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("counterRepo.Current %q: %w", key, err)
	}
	return count, nil
}
