package badger

import (
	"bytes"
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/cognatedb/core"
	"github.com/poiesic/cognatedb/storage"
)

// GroupRepository implements storage.GroupRepository for BadgerDB.
type GroupRepository struct {
	backend *Backend
}

var _ storage.GroupRepository = (*GroupRepository)(nil)

// NewGroupRepository creates a new GroupRepository.
func NewGroupRepository(backend *Backend) (storage.GroupRepository, error) {
	if backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	return &GroupRepository{backend: backend}, nil
}

// Close releases repository resources. The backend stays open; closing
// it is the owner's job.
func (r *GroupRepository) Close() error {
	return nil
}

// PutGroups writes group records and their ordinal index entries.
// Ordinals define iteration order for AllGroups.
func (r *GroupRepository) PutGroups(ctx context.Context, ordinal uint64, groups ...*core.CognateGroup) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for i, group := range groups {
			key := makeGroupKey(group.Id)

			// Reject duplicate IDs so a bad artifact is caught at compile
			// time rather than surfacing as a shadowed record later.
			if _, err := tx.Get(key); err == nil {
				return storage.ErrDuplicateKey
			} else if err != badger.ErrKeyNotFound {
				return err
			}

			if err := tx.Set(key, storage.MarshalGroup(group)); err != nil {
				return err
			}

			ordKey := makeOrdinalKey(ordinal + uint64(i))
			if err := tx.Set(ordKey, storage.MarshalGroupID(group.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetGroup retrieves a single group by ID.
func (r *GroupRepository) GetGroup(ctx context.Context, id core.GroupID) (*core.CognateGroup, error) {
	var result *core.CognateGroup
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readGroup(tx, makeGroupKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// AllGroups retrieves every group by walking the ordinal index in key
// order, which reproduces the order the dataset was compiled in.
func (r *GroupRepository) AllGroups(ctx context.Context) ([]*core.CognateGroup, error) {
	var results []*core.CognateGroup
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(groupOrdinalPrefix + ":")
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var id core.GroupID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalGroupID(val)
				return err
			}); err != nil {
				return err
			}

			group, err := readGroup(tx, makeGroupKey(id))
			if err != nil {
				return err
			}
			if group != nil {
				results = append(results, group)
			}
		}
		return nil
	}, false)

	return results, err
}

// CountGroups returns the number of stored group records.
func (r *GroupRepository) CountGroups(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(groupRecordPrefix + ":")
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if !bytes.HasPrefix(iter.Item().Key(), prefix) {
				break
			}
			count++
		}
		return nil
	}, false)
	return count, err
}

// readGroup reads a group record from the transaction.
func readGroup(tx *badger.Txn, key []byte) (*core.CognateGroup, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var group *core.CognateGroup
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		group, unmarshalErr = storage.UnmarshalGroup(val)
		return unmarshalErr
	})
	return group, err
}
