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


// Package query implements the read operations over a loaded dataset:
//
//   - Searcher: case-insensitive substring search across language
//     entries, ranked by confidence
//   - Sampler: uniform random sampling of groups without replacement
//   - Builder: comparative matrices across a chosen set of languages
//
// All operations are pure reads over an immutable snapshot, so they
// are safe to call concurrently without locking. Bad caller input is
// reported with errors wrapping core.ErrInvalidQuery; not-found is a
// normal result, never an error.
package query
