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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidQuery is the root error for all bad caller input.
	// Every query-parameter failure wraps it so callers can map the
	// whole family to a single response class.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrEmptyTerm indicates an empty or whitespace-only search term.
	ErrEmptyTerm = errors.New("search term cannot be empty")

	// ErrUnknownLanguage indicates a language code outside the supported set.
	ErrUnknownLanguage = errors.New("unknown language code")

	// ErrUnknownMatchType indicates an unrecognized match type filter.
	ErrUnknownMatchType = errors.New("unknown match type")

	// ErrNonPositiveCount indicates a count or limit that is zero or negative.
	ErrNonPositiveCount = errors.New("count must be positive")

	// ErrNoLanguages indicates an empty language selection.
	ErrNoLanguages = errors.New("at least one language is required")

	// ErrInvalidGroup indicates a CognateGroup failed validation.
	ErrInvalidGroup = errors.New("invalid cognate group")

	// ErrEmptyReference indicates the Reference field is empty.
	ErrEmptyReference = errors.New("reference cannot be empty")

	// ErrTooFewEntries indicates a group with fewer than two language entries.
	ErrTooFewEntries = errors.New("group needs entries in at least two languages")

	// ErrDuplicateGroup indicates two groups share the same GroupID.
	ErrDuplicateGroup = errors.New("duplicate group id")
)
