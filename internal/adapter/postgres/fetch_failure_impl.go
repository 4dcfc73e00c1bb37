package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/catalog-crawler/internal/repository"
)

// FetchFailureRepoImpl provides a concrete implementation for the FetchFailureRepository interface using PostgreSQL.
type FetchFailureRepoImpl struct {
	db *pgxpool.Pool
}

// NewFetchFailureRepo creates a new instance of FetchFailureRepoImpl.
func NewFetchFailureRepo(db *pgxpool.Pool) *FetchFailureRepoImpl {
	return &FetchFailureRepoImpl{db: db}
}

// EnsureSchema creates the fetch_failures table if it does not exist yet.
func (r *FetchFailureRepoImpl) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS fetch_failures (
			id BIGSERIAL PRIMARY KEY,
			url TEXT NOT NULL UNIQUE,
			failure_reason TEXT NOT NULL,
			attempts INT NOT NULL DEFAULT 1,
			last_attempt_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("%w: create fetch_failures table: %v", repository.ErrPersistence, err)
	}
	return nil
}

// Record creates or updates a failure entry for the URL.
// It increments the attempts counter on conflict.
func (r *FetchFailureRepoImpl) Record(ctx context.Context, url, reason string) error {
	query := `
		INSERT INTO fetch_failures (url, failure_reason)
		VALUES ($1, $2)
		ON CONFLICT (url) DO UPDATE SET
			failure_reason = EXCLUDED.failure_reason,
			attempts = fetch_failures.attempts + 1,
			last_attempt_at = now();
	`
	if _, err := r.db.Exec(ctx, query, url, reason); err != nil {
		return fmt.Errorf("%w: record fetch failure: %v", repository.ErrPersistence, err)
	}
	return nil
}
