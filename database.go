// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cognatedb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/cognatedb/core"
	"github.com/poiesic/cognatedb/dataset"
	"github.com/poiesic/cognatedb/query"
	"github.com/poiesic/cognatedb/storage"
	"github.com/poiesic/cognatedb/storage/badger"
	"github.com/poiesic/cognatedb/store"
)

// Database is the top-level handle over a loaded cognate dataset. It
// owns the in-memory store that queries read from and, when opened over
// a compiled artifact, the underlying badger backend.
//
// Reads always hit an immutable snapshot, so a Database is safe for
// concurrent use; Reload swaps the snapshot in place for live readers.
type Database struct {
	backend   *badger.Backend
	groupRepo storage.GroupRepository
	store     *store.Store
	source    string
	fromCSV   bool
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	logger *slog.Logger
}

// WithDatabaseLogger sets a custom logger.
// Default is slog.Default().
func WithDatabaseLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open loads a compiled dataset artifact and builds the in-memory
// store from it.
func Open(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := applyOptions(opts)

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	groupRepo, err := badger.NewGroupRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	db := &Database{
		backend:   backend,
		groupRepo: groupRepo,
		source:    filePath,
		logger:    options.logger,
	}

	snap, err := db.loadSnapshot(context.Background())
	if err != nil {
		groupRepo.Close()
		backend.Close()
		return nil, err
	}

	db.store = store.New(snap)
	db.logger.Info("dataset opened", "path", filePath, "groups", snap.Len())
	return db, nil
}

// OpenCSV loads a dataset directly from its CSV source, skipping the
// compiled artifact. Useful for development and small datasets.
func OpenCSV(csvPath string, opts ...DatabaseOption) (*Database, error) {
	options := applyOptions(opts)

	db := &Database{
		source:  csvPath,
		fromCSV: true,
		logger:  options.logger,
	}

	snap, err := db.loadSnapshot(context.Background())
	if err != nil {
		return nil, err
	}

	db.store = store.New(snap)
	db.logger.Info("dataset loaded", "path", csvPath, "groups", snap.Len())
	return db, nil
}

func applyOptions(opts []DatabaseOption) *databaseOptions {
	options := &databaseOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func (db *Database) loadSnapshot(ctx context.Context) (*store.Snapshot, error) {
	var (
		groups []*core.CognateGroup
		err    error
	)
	if db.fromCSV {
		loader := dataset.NewLoader(dataset.WithLogger(db.logger))
		groups, err = loader.LoadFile(db.source)
	} else {
		groups, err = db.groupRepo.AllGroups(ctx)
		if err == nil {
			// The ordinal index and the record count must agree; a
			// mismatch means a partially written artifact.
			var count int
			count, err = db.groupRepo.CountGroups(ctx)
			if err == nil && count != len(groups) {
				return nil, fmt.Errorf("artifact has %d records but the ordinal index yields %d groups", count, len(groups))
			}
		}
	}
	if err != nil {
		return nil, err
	}
	return store.NewSnapshot(groups)
}

// Group looks up a single group by ID. Artifact-backed databases read
// the record directly; CSV-backed ones go through the snapshot.
func (db *Database) Group(ctx context.Context, id core.GroupID) (*core.CognateGroup, bool, error) {
	if db.groupRepo != nil {
		group, err := db.groupRepo.GetGroup(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		return group, true, nil
	}
	group, ok := db.store.Snapshot().Get(id)
	return group, ok, nil
}

// Reload rebuilds the snapshot from the original source and swaps it in
// atomically. In-flight queries keep reading the snapshot they started
// with.
func (db *Database) Reload(ctx context.Context) error {
	snap, err := db.loadSnapshot(ctx)
	if err != nil {
		return err
	}
	db.store.Swap(snap)
	db.logger.Info("dataset reloaded", "path", db.source, "groups", snap.Len())
	return nil
}

// Close releases the underlying storage. Databases opened from CSV hold
// no resources, so Close is a no-op for them.
func (db *Database) Close() error {
	if db.groupRepo != nil {
		if err := db.groupRepo.Close(); err != nil {
			db.logger.Error("error closing group repository", "err", err)
			return err
		}
	}
	if db.backend != nil {
		if err := db.backend.Close(); err != nil {
			db.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}

// Store returns the live dataset store.
func (db *Database) Store() *store.Store {
	return db.store
}

// GroupRepository returns the compiled artifact's repository, or nil
// when the database was opened from CSV.
func (db *Database) GroupRepository() storage.GroupRepository {
	return db.groupRepo
}

func (db *Database) NewSearcher(opts ...query.SearcherOption) (*query.Searcher, error) {
	return query.NewSearcher(db.store, opts...)
}

func (db *Database) NewSampler(opts ...query.SamplerOption) (*query.Sampler, error) {
	return query.NewSampler(db.store, opts...)
}

func (db *Database) NewMatrixBuilder() (*query.Builder, error) {
	searcher, err := query.NewSearcher(db.store)
	if err != nil {
		return nil, err
	}
	return query.NewBuilder(db.store, searcher)
}

// Stats summarizes the current snapshot.
func (db *Database) Stats() *core.Stats {
	return query.CollectStats(db.store)
}
