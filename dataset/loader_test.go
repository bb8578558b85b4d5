package dataset

import (
	"strings"
	"testing"

	"github.com/poiesic/cognatedb/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Rank,English_Reference,Word_A,Word_B,Lang_A,Lang_B,Match_Type,Similarity_Score,Audit_Status
12,house,casa,casa,es,it,Perfect,1.0,OK
12,house,casa,maison,es,fr,Near,0.5,OK
40,animal,animal,animal,es,en,Perfect,1.0,OK
40,animal,animal,animale,es,it,Near,0.86,OK
77,night,noche,noite,es,pt,Near,0.6,Manual Review Needed
77,night,noche,nit,es,ca,Near,0.4,OK
`

func TestLoad(t *testing.T) {
	loader := NewLoader()
	groups, err := loader.Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, groups, 3)

	t.Run("groups keep source order", func(t *testing.T) {
		assert.Equal(t, "house", groups[0].Reference)
		assert.Equal(t, "animal", groups[1].Reference)
		assert.Equal(t, "night", groups[2].Reference)
	})

	t.Run("pair rows merge into entries", func(t *testing.T) {
		house := groups[0]
		assert.Equal(t, map[core.Language]string{
			core.LangSpanish: "casa",
			core.LangItalian: "casa",
			core.LangFrench:  "maison",
		}, house.Entries)
	})

	t.Run("ids derive from the reference", func(t *testing.T) {
		assert.Equal(t, core.IDFromReference("house"), groups[0].Id)
	})

	t.Run("confidence is the mean pair score", func(t *testing.T) {
		assert.InDelta(t, 0.75, groups[0].Confidence, 1e-9)
		assert.InDelta(t, 0.93, groups[1].Confidence, 1e-9)
		assert.InDelta(t, 0.5, groups[2].Confidence, 1e-9)
	})

	t.Run("match type is perfect only if every pair is", func(t *testing.T) {
		assert.Equal(t, core.MatchNear, groups[0].Match)
		assert.Equal(t, core.MatchNear, groups[1].Match)
	})

	t.Run("rank is the lowest pair rank", func(t *testing.T) {
		assert.Equal(t, 12, groups[0].Rank)
	})

	t.Run("any flagged pair flags the group", func(t *testing.T) {
		assert.True(t, groups[2].NeedsReview)
		assert.False(t, groups[0].NeedsReview)
	})
}

func TestLoad_FirstWordWins(t *testing.T) {
	csv := `English_Reference,Word_A,Word_B,Lang_A,Lang_B
color,color,colore,es,it
color,colour,couleur,es,fr
`
	loader := NewLoader()
	groups, err := loader.Load(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "color", groups[0].Entries[core.LangSpanish])
	assert.Equal(t, "couleur", groups[0].Entries[core.LangFrench])
}

func TestLoad_OptionalColumnsAbsent(t *testing.T) {
	csv := `English_Reference,Word_A,Word_B,Lang_A,Lang_B
sun,sol,sol,es,pt
moon,luna,lune,es,fr
`
	loader := NewLoader()
	groups, err := loader.Load(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, groups, 2)

	// Identical spelling counts as a perfect pair when no match type column exists.
	assert.Equal(t, core.MatchPerfect, groups[0].Match)
	assert.Equal(t, core.MatchNear, groups[1].Match)
	assert.Zero(t, groups[0].Confidence)
	assert.Zero(t, groups[0].Rank)
}

func TestLoad_Errors(t *testing.T) {
	loader := NewLoader()

	t.Run("missing required column", func(t *testing.T) {
		csv := "English_Reference,Word_A,Word_B,Lang_A\nhouse,casa,casa,es\n"
		_, err := loader.Load(strings.NewReader(csv))
		require.ErrorIs(t, err, ErrLoad)
		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("ragged row", func(t *testing.T) {
		csv := "English_Reference,Word_A,Word_B,Lang_A,Lang_B\nhouse,casa,es\n"
		_, err := loader.Load(strings.NewReader(csv))
		require.ErrorIs(t, err, ErrLoad)
	})

	t.Run("unknown language code", func(t *testing.T) {
		csv := "English_Reference,Word_A,Word_B,Lang_A,Lang_B\nhouse,haus,casa,de,es\n"
		_, err := loader.Load(strings.NewReader(csv))
		require.ErrorIs(t, err, ErrLoad)
		assert.ErrorIs(t, err, core.ErrUnknownLanguage)
	})

	t.Run("unknown match type", func(t *testing.T) {
		csv := "English_Reference,Word_A,Word_B,Lang_A,Lang_B,Match_Type\nhouse,casa,casa,es,it,Fuzzy\n"
		_, err := loader.Load(strings.NewReader(csv))
		require.ErrorIs(t, err, ErrLoad)
		assert.ErrorIs(t, err, core.ErrUnknownMatchType)
	})

	t.Run("bad similarity score", func(t *testing.T) {
		csv := "English_Reference,Word_A,Word_B,Lang_A,Lang_B,Similarity_Score\nhouse,casa,casa,es,it,high\n"
		_, err := loader.Load(strings.NewReader(csv))
		require.ErrorIs(t, err, ErrLoad)
	})

	t.Run("single language group", func(t *testing.T) {
		csv := "English_Reference,Word_A,Word_B,Lang_A,Lang_B\nhouse,casa,casa,es,es\n"
		_, err := loader.Load(strings.NewReader(csv))
		require.ErrorIs(t, err, ErrLoad)
		assert.ErrorIs(t, err, core.ErrTooFewEntries)
	})

	t.Run("empty dataset", func(t *testing.T) {
		csv := "English_Reference,Word_A,Word_B,Lang_A,Lang_B\n"
		_, err := loader.Load(strings.NewReader(csv))
		require.ErrorIs(t, err, ErrEmptyDataset)
	})
}

func TestLoadFile_Missing(t *testing.T) {
	loader := NewLoader()
	_, err := loader.LoadFile("/nonexistent/cognates.csv")
	require.ErrorIs(t, err, ErrLoad)
}
