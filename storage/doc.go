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


// Package storage provides the storage abstraction for the compiled
// dataset artifact.
//
// The raw CSV artifact is convenient to distribute but slow to parse on
// every start. Compiling it into a key-value artifact lets servers open
// the dataset directly. This package defines the repository interface
// and the binary encoding of group records; storage/badger implements
// the repository on BadgerDB.
//
// Constructors return the storage.GroupRepository interface rather than
// concrete types so the backend stays swappable and tests can use the
// in-memory variant:
//
//	repo, err := badger.NewGroupRepository(backend)
//
// All repository implementations must be safe for concurrent use.
package storage
