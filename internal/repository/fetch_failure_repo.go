package repository

import "context"

// FetchFailureRepository journals pages that could not be fetched, for
// operator diagnostics. Purely advisory: journaling failures never stop
// a run.
type FetchFailureRepository interface {
	// EnsureSchema creates the backing table if it is missing.
	EnsureSchema(ctx context.Context) error
	// Record upserts a failure entry for the URL, bumping its attempt count.
	Record(ctx context.Context, url, reason string) error
}
