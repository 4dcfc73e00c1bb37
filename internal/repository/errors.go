package repository

import "errors"

var (
	// ErrPersistence marks any catalog read or write failure. Fatal for the
	// current run; previously committed items remain valid.
	ErrPersistence = errors.New("persistence failure")

	// ErrEmptyCatalog is returned by MaxName when no items are stored yet.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrFetchFailed marks a transport failure or non-success response.
	ErrFetchFailed = errors.New("page fetch failed")
)
