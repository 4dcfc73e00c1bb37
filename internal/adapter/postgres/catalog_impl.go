package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/catalog-crawler/internal/entity"
	"github.com/user/catalog-crawler/internal/repository"
)

// CatalogRepoImpl provides a concrete implementation for the CatalogRepository interface using PostgreSQL.
// Uniqueness is enforced by the UNIQUE constraint on the name column;
// insert-if-absent maps to ON CONFLICT DO NOTHING.
type CatalogRepoImpl struct {
	db *pgxpool.Pool
}

// NewCatalogRepo creates a new instance of CatalogRepoImpl.
func NewCatalogRepo(db *pgxpool.Pool) *CatalogRepoImpl {
	return &CatalogRepoImpl{db: db}
}

// EnsureSchema creates the items table if it does not exist yet.
func (r *CatalogRepoImpl) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS items (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			discovered_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("%w: create items table: %v", repository.ErrPersistence, err)
	}
	return nil
}

// InsertIfAbsent stores every name not already present and returns the number
// of rows actually inserted. Duplicates, in-batch or stored, affect no rows.
func (r *CatalogRepoImpl) InsertIfAbsent(ctx context.Context, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, name := range names {
		batch.Queue(`INSERT INTO items (name) VALUES ($1) ON CONFLICT (name) DO NOTHING;`, name)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int64
	for range names {
		tag, err := results.Exec()
		if err != nil {
			return 0, fmt.Errorf("%w: insert batch: %v", repository.ErrPersistence, err)
		}
		inserted += tag.RowsAffected()
	}

	return inserted, nil
}

// Count returns the total number of stored items.
func (r *CatalogRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM items;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: count items: %v", repository.ErrPersistence, err)
	}
	return count, nil
}

// Recent retrieves the most recently discovered items, newest first. Serves
// the ops surface only; the crawl loop never reads it.
func (r *CatalogRepoImpl) Recent(ctx context.Context, limit int) ([]*entity.Item, error) {
	query := `
		SELECT id, name, discovered_at
		FROM items
		ORDER BY discovered_at DESC, id DESC
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: recent items: %v", repository.ErrPersistence, err)
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		var item entity.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.DiscoveredAt); err != nil {
			return nil, fmt.Errorf("%w: scan item: %v", repository.ErrPersistence, err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: recent items: %v", repository.ErrPersistence, err)
	}

	return items, nil
}

// MaxName returns the lexicographically greatest stored name.
func (r *CatalogRepoImpl) MaxName(ctx context.Context) (string, error) {
	var name *string
	if err := r.db.QueryRow(ctx, `SELECT max(name) FROM items;`).Scan(&name); err != nil {
		return "", fmt.Errorf("%w: max name: %v", repository.ErrPersistence, err)
	}
	if name == nil {
		return "", repository.ErrEmptyCatalog
	}
	return *name, nil
}
