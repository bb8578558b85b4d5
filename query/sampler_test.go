package query

import (
	"math/rand/v2"
	"testing"

	"github.com/poiesic/cognatedb/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSampler(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		s, err := NewSampler(testStore(t))
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("nil store", func(t *testing.T) {
		_, err := NewSampler(nil)
		assert.Equal(t, ErrStoreRequired, err)
	})
}

func TestSample(t *testing.T) {
	t.Run("returns distinct groups", func(t *testing.T) {
		s, err := NewSampler(testStore(t))
		require.NoError(t, err)

		groups, err := s.Sample(2)
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.NotEqual(t, groups[0].Id, groups[1].Id)
	})

	t.Run("count above total clamps to the full set", func(t *testing.T) {
		s, err := NewSampler(testStore(t))
		require.NoError(t, err)

		groups, err := s.Sample(100)
		require.NoError(t, err)
		assert.Len(t, groups, 3)

		seen := make(map[core.GroupID]bool)
		for _, g := range groups {
			seen[g.Id] = true
		}
		assert.Len(t, seen, 3)
	})

	t.Run("fixed seed is deterministic", func(t *testing.T) {
		first, err := NewSampler(testStore(t), WithRand(rand.New(rand.NewPCG(7, 7))))
		require.NoError(t, err)
		second, err := NewSampler(testStore(t), WithRand(rand.New(rand.NewPCG(7, 7))))
		require.NoError(t, err)

		a, err := first.Sample(3)
		require.NoError(t, err)
		b, err := second.Sample(3)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("calls draw independently", func(t *testing.T) {
		s, err := NewSampler(testStore(t), WithRand(rand.New(rand.NewPCG(1, 2))))
		require.NoError(t, err)

		for i := 0; i < 10; i++ {
			groups, err := s.Sample(1)
			require.NoError(t, err)
			assert.Len(t, groups, 1)
		}
	})

	t.Run("zero count", func(t *testing.T) {
		s, err := NewSampler(testStore(t))
		require.NoError(t, err)

		_, err = s.Sample(0)
		require.ErrorIs(t, err, core.ErrInvalidQuery)
		assert.ErrorIs(t, err, core.ErrNonPositiveCount)
	})

	t.Run("negative count", func(t *testing.T) {
		s, err := NewSampler(testStore(t))
		require.NoError(t, err)

		_, err = s.Sample(-5)
		require.ErrorIs(t, err, core.ErrInvalidQuery)
	})
}
