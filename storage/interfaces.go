package storage

import (
	"context"

	"github.com/poiesic/cognatedb/core"
)

// GroupRepository provides operations on the compiled dataset artifact.
// Implementations must be thread-safe and support concurrent access.
type GroupRepository interface {
	// PutGroups writes groups starting at the given ordinal position.
	// Ordinals define iteration order for AllGroups, so a writer that
	// splits the dataset into batches must assign each batch its base
	// position up front. Returns ErrDuplicateKey if a group ID is
	// already present.
	PutGroups(ctx context.Context, ordinal uint64, groups ...*core.CognateGroup) error

	// GetGroup retrieves a single group by ID.
	// Returns ErrNotFound if the group doesn't exist.
	GetGroup(ctx context.Context, id core.GroupID) (*core.CognateGroup, error)

	// AllGroups retrieves every group in ordinal order, which matches
	// the order the dataset was compiled in.
	AllGroups(ctx context.Context) ([]*core.CognateGroup, error)

	// CountGroups returns the number of stored groups.
	CountGroups(ctx context.Context) (int, error)

	// Close closes the repository and releases resources.
	Close() error
}
