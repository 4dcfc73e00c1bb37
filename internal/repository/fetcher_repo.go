package repository

import "context"

// PageFetcher defines the contract for retrieving one listing page. Timeout
// and retry policy belong to the implementation; callers only distinguish
// success from failure (wrapped with ErrFetchFailed).
type PageFetcher interface {
	// Fetch retrieves the raw HTML of the given URL.
	Fetch(ctx context.Context, url string) (string, error)
}
