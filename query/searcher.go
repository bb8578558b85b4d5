package query

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/cognatedb/core"
	"github.com/poiesic/cognatedb/store"
)

// DefaultLimit caps search results when the caller doesn't set a limit.
const DefaultLimit = 100

// Searcher provides free-text and filtered search across cognate groups.
type Searcher struct {
	store  *store.Store
	logger *slog.Logger
}

// SearcherOption configures a Searcher.
type SearcherOption func(*Searcher) error

// WithSearcherLogger sets a custom logger.
// Default is slog.Default().
func WithSearcherLogger(logger *slog.Logger) SearcherOption {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher over the given store.
func NewSearcher(st *store.Store, opts ...SearcherOption) (*Searcher, error) {
	if st == nil {
		return nil, ErrStoreRequired
	}

	s := &Searcher{
		store:  st,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search finds groups where any language entry contains term as a
// case-insensitive substring. A non-empty language restricts results to
// groups that have an entry for that language; the term still matches
// against any entry, so a group can qualify through one language while
// the filter selects for another. Results are ordered by confidence
// descending with group ID ascending breaking ties, and truncated to
// limit (DefaultLimit when limit is 0).
//
// The second return value is the total number of groups matched before
// truncation.
func (s *Searcher) Search(term, language string, limit int) ([]*core.CognateGroup, int, error) {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return nil, 0, fmt.Errorf("%w: %w", core.ErrInvalidQuery, core.ErrEmptyTerm)
	}

	var langFilter core.Language
	if language != "" {
		parsed, err := core.ParseLanguage(language)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %w", core.ErrInvalidQuery, err)
		}
		langFilter = parsed
	}

	if limit < 0 {
		return nil, 0, fmt.Errorf("%w: %w (limit %d)", core.ErrInvalidQuery, core.ErrNonPositiveCount, limit)
	}
	if limit == 0 {
		limit = DefaultLimit
	}

	snap := s.store.Snapshot()
	var matches []*core.CognateGroup
	for _, group := range snap.All() {
		if groupMatches(group, needle, langFilter) {
			matches = append(matches, group)
		}
	}

	total := len(matches)
	rankGroups(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	s.logger.Debug("search complete", "term", term, "language", language, "matched", total)
	return matches, total, nil
}

// ByLanguage lists groups that have an entry for the given language, in
// load order, optionally filtered by match type. limit 0 means
// DefaultLimit; offset skips that many matches for pagination.
//
// The second return value is the total number of matches before
// pagination.
func (s *Searcher) ByLanguage(language, matchType string, limit, offset int) ([]*core.CognateGroup, int, error) {
	lang, err := core.ParseLanguage(language)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", core.ErrInvalidQuery, err)
	}

	match, err := core.ParseMatchType(matchType)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", core.ErrInvalidQuery, err)
	}

	if limit < 0 {
		return nil, 0, fmt.Errorf("%w: %w (limit %d)", core.ErrInvalidQuery, core.ErrNonPositiveCount, limit)
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		return nil, 0, fmt.Errorf("%w: negative offset %d", core.ErrInvalidQuery, offset)
	}

	snap := s.store.Snapshot()
	var matches []*core.CognateGroup
	for _, group := range snap.All() {
		if _, ok := group.Entry(lang); !ok {
			continue
		}
		if match != "" && group.Match != match {
			continue
		}
		matches = append(matches, group)
	}

	total := len(matches)
	if offset >= len(matches) {
		return nil, total, nil
	}
	matches = matches[offset:]
	if len(matches) > limit {
		matches = matches[:limit]
	}

	return matches, total, nil
}

// groupMatches reports whether any entry contains the lowercased
// needle. A language filter gates eligibility: the group must have an
// entry for that language, but the needle may match any entry.
func groupMatches(group *core.CognateGroup, needle string, langFilter core.Language) bool {
	if langFilter != "" {
		if _, ok := group.Entry(langFilter); !ok {
			return false
		}
	}
	for _, word := range group.Entries {
		if strings.Contains(strings.ToLower(word), needle) {
			return true
		}
	}
	return false
}

// rankGroups orders by confidence descending, group ID ascending on
// ties. The full order is deterministic, so repeated searches return
// identical results.
func rankGroups(groups []*core.CognateGroup) {
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Confidence != groups[j].Confidence {
			return groups[i].Confidence > groups[j].Confidence
		}
		return groups[i].Id < groups[j].Id
	})
}
