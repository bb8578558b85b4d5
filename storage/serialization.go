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


package storage

import (
	"fmt"
	"sort"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/cognatedb/core"
)

// Group records are encoded with the MUS format primitives. The entry
// map is written in sorted key order so the same group always produces
// the same bytes.

// MarshalGroupID serializes a GroupID to bytes.
func MarshalGroupID(id core.GroupID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalGroupID deserializes a GroupID from bytes.
func UnmarshalGroupID(data []byte) (core.GroupID, error) {
	id, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return core.GroupID(id), nil
}

// MarshalGroup serializes a CognateGroup to bytes.
func MarshalGroup(group *core.CognateGroup) []byte {
	buf := make([]byte, sizeGroup(group))
	n := varint.Uint64.Marshal(uint64(group.Id), buf)
	n += ord.String.Marshal(group.Reference, buf[n:])
	n += varint.Int.Marshal(group.Rank, buf[n:])

	langs := sortedLanguages(group.Entries)
	n += varint.PositiveInt.Marshal(len(langs), buf[n:])
	for _, lang := range langs {
		n += ord.String.Marshal(string(lang), buf[n:])
		n += ord.String.Marshal(group.Entries[lang], buf[n:])
	}

	n += raw.Float64.Marshal(group.Confidence, buf[n:])
	n += ord.String.Marshal(string(group.Match), buf[n:])
	ord.Bool.Marshal(group.NeedsReview, buf[n:])
	return buf
}

// UnmarshalGroup deserializes a CognateGroup from bytes.
func UnmarshalGroup(data []byte) (*core.CognateGroup, error) {
	group, err := unmarshalGroup(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return group, nil
}

func unmarshalGroup(data []byte) (*core.CognateGroup, error) {
	group := &core.CognateGroup{}

	id, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	group.Id = core.GroupID(id)

	reference, m, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	n += m
	group.Reference = reference

	rank, m, err := varint.Int.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	n += m
	group.Rank = rank

	count, m, err := varint.PositiveInt.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	n += m

	group.Entries = make(map[core.Language]string, count)
	for i := 0; i < count; i++ {
		lang, m, err := ord.String.Unmarshal(data[n:])
		if err != nil {
			return nil, err
		}
		n += m
		word, m, err := ord.String.Unmarshal(data[n:])
		if err != nil {
			return nil, err
		}
		n += m
		group.Entries[core.Language(lang)] = word
	}

	confidence, m, err := raw.Float64.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	n += m
	group.Confidence = confidence

	match, m, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	n += m
	group.Match = core.MatchType(match)

	needsReview, _, err := ord.Bool.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	group.NeedsReview = needsReview

	return group, nil
}

func sizeGroup(group *core.CognateGroup) int {
	size := varint.Uint64.Size(uint64(group.Id))
	size += ord.String.Size(group.Reference)
	size += varint.Int.Size(group.Rank)
	size += varint.PositiveInt.Size(len(group.Entries))
	for lang, word := range group.Entries {
		size += ord.String.Size(string(lang))
		size += ord.String.Size(word)
	}
	size += raw.Float64.Size(group.Confidence)
	size += ord.String.Size(string(group.Match))
	size += ord.Bool.Size(group.NeedsReview)
	return size
}

func sortedLanguages(entries map[core.Language]string) []core.Language {
	langs := make([]core.Language, 0, len(entries))
	for lang := range entries {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}
