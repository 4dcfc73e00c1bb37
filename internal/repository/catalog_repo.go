package repository

import "context"

// CatalogRepository defines the interface for the durable set of discovered
// item names. Any implementation must make writes durable before returning
// and enforce uniqueness on the name.
type CatalogRepository interface {
	// EnsureSchema creates the backing table if it is missing. One-time
	// setup; not part of the crawl loop.
	EnsureSchema(ctx context.Context) error
	// InsertIfAbsent stores every name not already present. Duplicates
	// within the batch or already stored are silently ignored. Returns the
	// number of names newly added, for reporting only.
	InsertIfAbsent(ctx context.Context, names []string) (int64, error)
	// Count returns the total number of stored items.
	Count(ctx context.Context) (int64, error)
	// MaxName returns the lexicographically greatest stored name, or
	// ErrEmptyCatalog when nothing is stored. Used by the resume planner.
	MaxName(ctx context.Context) (string, error)
}
