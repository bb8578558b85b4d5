package ingest

import "errors"

var (
	// ErrRepositoryRequired is returned when a group repository is not provided.
	ErrRepositoryRequired = errors.New("group repository required")
)
