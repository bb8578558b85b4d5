package query

import "errors"

var (
	// ErrStoreRequired is returned when a dataset store is not provided.
	ErrStoreRequired = errors.New("dataset store required")

	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")
)
