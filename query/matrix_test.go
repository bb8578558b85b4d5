package query

import (
	"testing"

	"github.com/poiesic/cognatedb/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuilder(t *testing.T) *Builder {
	t.Helper()

	st := testStore(t)
	searcher, err := NewSearcher(st)
	require.NoError(t, err)
	builder, err := NewBuilder(st, searcher)
	require.NoError(t, err)
	return builder
}

func TestNewBuilder(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		_, err := NewBuilder(nil, nil)
		assert.Equal(t, ErrStoreRequired, err)
	})

	t.Run("nil searcher", func(t *testing.T) {
		_, err := NewBuilder(testStore(t), nil)
		assert.Equal(t, ErrSearcherRequired, err)
	})
}

func TestByGroupIDs(t *testing.T) {
	b := testBuilder(t)

	t.Run("absent languages produce unfound cells", func(t *testing.T) {
		// "case" has Spanish but no Romanian entry.
		m, err := b.ByGroupIDs([]string{"es", "ro"}, []core.GroupID{core.IDFromReference("case")})
		require.NoError(t, err)
		assert.Equal(t, []core.Language{core.LangSpanish, core.LangRomanian}, m.Languages)
		require.Len(t, m.Rows, 1)

		row := m.Rows[0]
		assert.Equal(t, "case", row.Reference)
		assert.Equal(t, Cell{Word: "caso", Found: true}, row.Cells[core.LangSpanish])
		assert.Equal(t, Cell{Found: false}, row.Cells[core.LangRomanian])
	})

	t.Run("rows follow the requested id order", func(t *testing.T) {
		ids := []core.GroupID{
			core.IDFromReference("night"),
			core.IDFromReference("house"),
		}
		m, err := b.ByGroupIDs([]string{"es"}, ids)
		require.NoError(t, err)
		require.Len(t, m.Rows, 2)
		assert.Equal(t, "night", m.Rows[0].Reference)
		assert.Equal(t, "house", m.Rows[1].Reference)
	})

	t.Run("unknown ids are skipped", func(t *testing.T) {
		ids := []core.GroupID{42, core.IDFromReference("house")}
		m, err := b.ByGroupIDs([]string{"es"}, ids)
		require.NoError(t, err)
		require.Len(t, m.Rows, 1)
		assert.Equal(t, "house", m.Rows[0].Reference)
	})

	t.Run("duplicate languages collapse", func(t *testing.T) {
		m, err := b.ByGroupIDs([]string{"es", "ES", "fr"}, []core.GroupID{core.IDFromReference("house")})
		require.NoError(t, err)
		assert.Equal(t, []core.Language{core.LangSpanish, core.LangFrench}, m.Languages)
	})

	t.Run("no languages", func(t *testing.T) {
		_, err := b.ByGroupIDs(nil, []core.GroupID{core.IDFromReference("house")})
		require.ErrorIs(t, err, core.ErrInvalidQuery)
		assert.ErrorIs(t, err, core.ErrNoLanguages)
	})

	t.Run("unknown language code", func(t *testing.T) {
		_, err := b.ByGroupIDs([]string{"es", "de"}, []core.GroupID{core.IDFromReference("house")})
		require.ErrorIs(t, err, core.ErrInvalidQuery)
	})
}

func TestByTerm(t *testing.T) {
	b := testBuilder(t)

	t.Run("rows follow search ranking", func(t *testing.T) {
		m, err := b.ByTerm([]string{"es", "it"}, "cas")
		require.NoError(t, err)
		require.Len(t, m.Rows, 2)
		assert.Equal(t, "house", m.Rows[0].Reference)
		assert.Equal(t, "case", m.Rows[1].Reference)

		assert.Equal(t, Cell{Word: "casa", Found: true}, m.Rows[0].Cells[core.LangSpanish])
		assert.Equal(t, Cell{Found: false}, m.Rows[0].Cells[core.LangItalian])
		assert.Equal(t, Cell{Word: "caso", Found: true}, m.Rows[1].Cells[core.LangItalian])
	})

	t.Run("no matches gives an empty matrix", func(t *testing.T) {
		m, err := b.ByTerm([]string{"es"}, "zzz")
		require.NoError(t, err)
		assert.Empty(t, m.Rows)
	})

	t.Run("empty term", func(t *testing.T) {
		_, err := b.ByTerm([]string{"es"}, "")
		require.ErrorIs(t, err, core.ErrInvalidQuery)
	})
}

func TestCollectStats(t *testing.T) {
	stats := CollectStats(testStore(t))

	assert.Equal(t, 3, stats.TotalGroups)
	assert.Equal(t, 1, stats.PerfectGroups)
	assert.Equal(t, 2, stats.NearGroups)
	assert.Equal(t, 1, stats.NeedsReview)

	assert.Equal(t, 3, stats.Coverage[core.LangSpanish])
	assert.Equal(t, 1, stats.Coverage[core.LangFrench])
	assert.Equal(t, 1, stats.Coverage[core.LangItalian])
	assert.Equal(t, 1, stats.Coverage[core.LangPortuguese])
	assert.Equal(t, 1, stats.Coverage[core.LangEnglish])
	assert.Equal(t, 0, stats.Coverage[core.LangRomanian])
	assert.Equal(t, 0, stats.Coverage[core.LangCatalan])
	assert.Equal(t, 0, stats.Coverage[core.LangGalician])
}
