package repository

import "context"

// SeenCacheRepository is an optional fast-path in front of the catalog's
// insert-if-absent. The catalog's uniqueness constraint remains the
// authority; cache failures must degrade to "treat everything as unseen".
type SeenCacheRepository interface {
	// FilterUnseen returns the subset of names not known to be stored
	// already, preserving order.
	FilterUnseen(ctx context.Context, names []string) ([]string, error)
	// MarkSeen records names as stored, with an implementation-owned TTL.
	MarkSeen(ctx context.Context, names []string) error
}
