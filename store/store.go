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


// Package store holds the in-memory view of the loaded dataset.
//
// A Snapshot is immutable once built: queries against it need no
// locking and always see a complete dataset. The Store handle supports
// live reload by swapping in a fully built replacement snapshot
// atomically; readers never observe a partially updated collection.
package store

import (
	"fmt"
	"sync/atomic"

	"github.com/poiesic/cognatedb/core"
)

// Snapshot is an immutable, indexed view of all cognate groups.
// Group order is load order and stays stable for the snapshot's lifetime.
type Snapshot struct {
	groups []*core.CognateGroup
	byID   map[core.GroupID]*core.CognateGroup
}

// NewSnapshot builds a snapshot from loaded groups. Every group is
// validated and IDs must be unique across the set.
func NewSnapshot(groups []*core.CognateGroup) (*Snapshot, error) {
	byID := make(map[core.GroupID]*core.CognateGroup, len(groups))
	for _, group := range groups {
		if err := core.ValidateGroup(group); err != nil {
			return nil, err
		}
		if prev, ok := byID[group.Id]; ok {
			return nil, fmt.Errorf("%w: %d (%q and %q)",
				core.ErrDuplicateGroup, group.Id, prev.Reference, group.Reference)
		}
		byID[group.Id] = group
	}

	return &Snapshot{
		groups: groups,
		byID:   byID,
	}, nil
}

// All returns every group in load order.
// The returned slice and the groups it points to must not be modified.
func (s *Snapshot) All() []*core.CognateGroup {
	return s.groups
}

// Len returns the number of groups in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.groups)
}

// At returns the group at position i in load order.
func (s *Snapshot) At(i int) *core.CognateGroup {
	return s.groups[i]
}

// Get looks up a group by ID. The second return value reports whether
// the group exists; an unknown ID is a normal result, not an error.
func (s *Snapshot) Get(id core.GroupID) (*core.CognateGroup, bool) {
	group, ok := s.byID[id]
	return group, ok
}

// Store is the handle query components read through. It exists so the
// dataset can be reloaded without restarting: Swap installs a new
// snapshot atomically while in-flight readers keep the one they started
// with.
type Store struct {
	snap atomic.Pointer[Snapshot]
}

// New creates a store serving the given snapshot.
func New(snap *Snapshot) *Store {
	s := &Store{}
	s.snap.Store(snap)
	return s
}

// Snapshot returns the current snapshot. Callers should grab it once
// per operation so all reads within the operation are consistent.
func (s *Store) Snapshot() *Snapshot {
	return s.snap.Load()
}

// Swap atomically replaces the current snapshot.
// The replacement must be fully built before this call.
func (s *Store) Swap(snap *Snapshot) {
	s.snap.Store(snap)
}
