package core

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// GroupID is a unique identifier for a cognate group.
// It is derived deterministically from the group's English reference,
// so the same dataset always produces the same IDs.
type GroupID uint64

// IDFromReference generates a deterministic GroupID from an English
// reference word using BLAKE2b hashing. The reference is lowercased and
// trimmed first, so "House" and "house " map to the same group.
func IDFromReference(reference string) GroupID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(strings.ToLower(strings.TrimSpace(reference))))
	sum := h.Sum(nil)
	return GroupID(binary.LittleEndian.Uint64(sum))
}

// String renders the ID in the decimal form used on the wire.
func (id GroupID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseGroupID parses the decimal wire form of a GroupID.
func ParseGroupID(s string) (GroupID, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid group id %q", s)
	}
	return GroupID(id), nil
}

// Language is a two-letter code identifying one of the languages
// covered by the dataset.
type Language string

// The closed set of languages the dataset covers: eight Romance
// languages plus English.
const (
	LangSpanish    Language = "es"
	LangFrench     Language = "fr"
	LangItalian    Language = "it"
	LangPortuguese Language = "pt"
	LangCatalan    Language = "ca"
	LangGalician   Language = "gl"
	LangRomanian   Language = "ro"
	LangEnglish    Language = "en"
)

// Languages returns all supported language codes in a fixed order.
func Languages() []Language {
	return []Language{
		LangSpanish, LangFrench, LangItalian, LangPortuguese,
		LangCatalan, LangGalician, LangRomanian, LangEnglish,
	}
}

// MatchType classifies how a cognate group was matched by the offline
// pipeline that produced the dataset.
type MatchType string

const (
	// MatchPerfect means every word pair in the group has identical spelling.
	MatchPerfect MatchType = "Perfect"
	// MatchNear means at least one pair was matched by similarity scoring.
	MatchNear MatchType = "Near"
)

// CognateGroup is a set of words across languages believed to share
// etymological origin, linked by a common identifier.
//
// Entries maps language codes to words. Not every language needs an
// entry; an absent key means the dataset has no word for that language,
// which is distinct from an empty-string word.
type CognateGroup struct {
	Id          GroupID
	Reference   string // English reference headword the group is keyed by
	Rank        int    // frequency rank from the source word list (lower = more common)
	Entries     map[Language]string
	Confidence  float64 // offline similarity score, used only for ranking
	Match       MatchType
	NeedsReview bool // flagged by the offline audit as a possible false friend
}

// Entry returns the word for the given language and whether the group
// has an entry for it at all.
func (g *CognateGroup) Entry(lang Language) (string, bool) {
	word, ok := g.Entries[lang]
	return word, ok
}

// Stats summarizes a loaded dataset.
type Stats struct {
	TotalGroups   int
	PerfectGroups int
	NearGroups    int
	NeedsReview   int
	Coverage      map[Language]int // number of groups with an entry per language
}
