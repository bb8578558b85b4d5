package query

import (
	"fmt"
	"testing"

	"github.com/poiesic/cognatedb/core"
	"github.com/poiesic/cognatedb/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()

	groups := []*core.CognateGroup{
		{
			Id:        core.IDFromReference("house"),
			Reference: "house",
			Entries: map[core.Language]string{
				core.LangSpanish: "casa",
				core.LangFrench:  "maison",
				core.LangEnglish: "house",
			},
			Confidence: 0.9,
			Match:      core.MatchNear,
		},
		{
			Id:        core.IDFromReference("case"),
			Reference: "case",
			Entries: map[core.Language]string{
				core.LangSpanish: "caso",
				core.LangItalian: "caso",
			},
			Confidence: 0.7,
			Match:      core.MatchPerfect,
		},
		{
			Id:        core.IDFromReference("night"),
			Reference: "night",
			Entries: map[core.Language]string{
				core.LangSpanish:    "noche",
				core.LangPortuguese: "noite",
			},
			Confidence:  0.7,
			Match:       core.MatchNear,
			NeedsReview: true,
		},
	}

	snap, err := store.NewSnapshot(groups)
	require.NoError(t, err)
	return store.New(snap)
}

func TestNewSearcher(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		s, err := NewSearcher(testStore(t))
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("nil store", func(t *testing.T) {
		_, err := NewSearcher(nil)
		assert.Equal(t, ErrStoreRequired, err)
	})
}

func TestSearch(t *testing.T) {
	s, err := NewSearcher(testStore(t))
	require.NoError(t, err)

	t.Run("substring matches across languages", func(t *testing.T) {
		groups, total, err := s.Search("cas", "", 0)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, groups, 2)
		assert.Equal(t, "house", groups[0].Reference) // confidence 0.9 first
		assert.Equal(t, "case", groups[1].Reference)
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		groups, _, err := s.Search("CAS", "", 0)
		require.NoError(t, err)
		assert.Len(t, groups, 2)
	})

	t.Run("language filter keeps groups with an entry in that language", func(t *testing.T) {
		// "cas" matches "casa" (house) and "caso" (case), but only
		// house has a French entry.
		groups, total, err := s.Search("cas", "fr", 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, groups, 1)
		assert.Equal(t, "house", groups[0].Reference)
	})

	t.Run("language filter excludes groups without that language", func(t *testing.T) {
		// "caso" is Spanish and Italian; nothing French matches even
		// though the term does.
		groups, total, err := s.Search("caso", "fr", 0)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, groups)
	})

	t.Run("no matches is a normal result", func(t *testing.T) {
		groups, total, err := s.Search("zzz", "", 0)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, groups)
	})

	t.Run("limit truncates but total counts everything", func(t *testing.T) {
		groups, total, err := s.Search("o", "", 1)
		require.NoError(t, err)
		assert.Len(t, groups, 1)
		assert.Greater(t, total, 1)
	})

	t.Run("results are deterministic across calls", func(t *testing.T) {
		first, _, err := s.Search("a", "", 0)
		require.NoError(t, err)
		second, _, err := s.Search("a", "", 0)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("ties break by group id ascending", func(t *testing.T) {
		// "case" and "night" share confidence 0.7 and both contain "o".
		groups, _, err := s.Search("o", "", 0)
		require.NoError(t, err)
		require.Len(t, groups, 3)
		caseID := core.IDFromReference("case")
		nightID := core.IDFromReference("night")
		if caseID < nightID {
			assert.Equal(t, caseID, groups[1].Id)
			assert.Equal(t, nightID, groups[2].Id)
		} else {
			assert.Equal(t, nightID, groups[1].Id)
			assert.Equal(t, caseID, groups[2].Id)
		}
	})

	t.Run("default limit caps results at 100", func(t *testing.T) {
		groups := make([]*core.CognateGroup, 0, 120)
		for i := 0; i < 120; i++ {
			reference := fmt.Sprintf("word-%03d", i)
			groups = append(groups, &core.CognateGroup{
				Id:        core.IDFromReference(reference),
				Reference: reference,
				Entries: map[core.Language]string{
					core.LangSpanish: fmt.Sprintf("palabra%03d", i),
					core.LangFrench:  fmt.Sprintf("mot%03d", i),
				},
				Confidence: float64(i) / 120,
				Match:      core.MatchNear,
			})
		}
		snap, err := store.NewSnapshot(groups)
		require.NoError(t, err)
		big, err := NewSearcher(store.New(snap))
		require.NoError(t, err)

		matches, total, err := big.Search("palabra", "", 0)
		require.NoError(t, err)
		assert.Equal(t, 120, total)
		assert.Len(t, matches, DefaultLimit)

		// An explicit limit overrides the default.
		matches, total, err = big.Search("palabra", "", 110)
		require.NoError(t, err)
		assert.Equal(t, 120, total)
		assert.Len(t, matches, 110)
	})

	t.Run("empty term", func(t *testing.T) {
		_, _, err := s.Search("   ", "", 0)
		require.ErrorIs(t, err, core.ErrInvalidQuery)
		assert.ErrorIs(t, err, core.ErrEmptyTerm)
	})

	t.Run("unknown language", func(t *testing.T) {
		_, _, err := s.Search("cas", "de", 0)
		require.ErrorIs(t, err, core.ErrInvalidQuery)
		assert.ErrorIs(t, err, core.ErrUnknownLanguage)
	})

	t.Run("negative limit", func(t *testing.T) {
		_, _, err := s.Search("cas", "", -1)
		require.ErrorIs(t, err, core.ErrInvalidQuery)
	})
}

func TestByLanguage(t *testing.T) {
	s, err := NewSearcher(testStore(t))
	require.NoError(t, err)

	t.Run("lists groups with an entry in load order", func(t *testing.T) {
		groups, total, err := s.ByLanguage("es", "", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, groups, 3)
		assert.Equal(t, "house", groups[0].Reference)
	})

	t.Run("match type filter", func(t *testing.T) {
		groups, total, err := s.ByLanguage("es", "perfect", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, groups, 1)
		assert.Equal(t, "case", groups[0].Reference)
	})

	t.Run("pagination", func(t *testing.T) {
		groups, total, err := s.ByLanguage("es", "", 1, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, groups, 1)
		assert.Equal(t, "case", groups[0].Reference)
	})

	t.Run("offset past the end", func(t *testing.T) {
		groups, total, err := s.ByLanguage("es", "", 0, 10)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Empty(t, groups)
	})

	t.Run("language without entries", func(t *testing.T) {
		groups, total, err := s.ByLanguage("ro", "", 0, 0)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, groups)
	})

	t.Run("unknown language", func(t *testing.T) {
		_, _, err := s.ByLanguage("xx", "", 0, 0)
		require.ErrorIs(t, err, core.ErrInvalidQuery)
	})

	t.Run("unknown match type", func(t *testing.T) {
		_, _, err := s.ByLanguage("es", "fuzzy", 0, 0)
		require.ErrorIs(t, err, core.ErrInvalidQuery)
		assert.ErrorIs(t, err, core.ErrUnknownMatchType)
	})

	t.Run("negative offset", func(t *testing.T) {
		_, _, err := s.ByLanguage("es", "", 0, -1)
		require.ErrorIs(t, err, core.ErrInvalidQuery)
	})
}
