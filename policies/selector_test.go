package policies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeu5/pathfinder-rl/types"
)

func TestSelectorsEmptyRow(t *testing.T) {
	selectors := map[string]Selector{
		"greedy":  Greedy{},
		"epsilon": NewEpsilonGreedy(0.5, 1),
		"softmax": NewSoftMax(1, 1),
	}
	for name, s := range selectors {
		t.Run(name, func(t *testing.T) {
			_, err := s.Select(Row{})
			assert.ErrorIs(t, err, types.ErrNoLegalActions)
		})
	}
}

func TestEpsilonGreedy(t *testing.T) {
	row := Row{types.Up: 1, types.Left: 3, types.Right: 3}

	t.Run("no exploration", func(t *testing.T) {
		s := NewEpsilonGreedy(0, 7)
		for i := 0; i < 50; i++ {
			d, err := s.Select(row)
			require.NoError(t, err)
			assert.Equal(t, types.Left, d)
		}
	})

	t.Run("full exploration stays in the row", func(t *testing.T) {
		s := NewEpsilonGreedy(1, 7)
		seen := make(map[types.Direction]bool)
		for i := 0; i < 500; i++ {
			d, err := s.Select(row)
			require.NoError(t, err)
			_, ok := row[d]
			require.True(t, ok)
			seen[d] = true
		}
		assert.Len(t, seen, 3)
	})

	t.Run("same seed same choices", func(t *testing.T) {
		a := NewEpsilonGreedy(0.5, 3)
		b := NewEpsilonGreedy(0.5, 3)
		for i := 0; i < 100; i++ {
			da, _ := a.Select(row)
			db, _ := b.Select(row)
			require.Equal(t, da, db)
		}
	})
}

func TestSoftMax(t *testing.T) {
	s := NewSoftMax(1, 11)
	row := Row{types.Up: 100, types.Down: 0}
	for i := 0; i < 100; i++ {
		d, err := s.Select(row)
		require.NoError(t, err)
		assert.Equal(t, types.Up, d)
	}

	// large values must not overflow
	row = Row{types.Left: 5000, types.Right: 4999}
	for i := 0; i < 100; i++ {
		d, err := s.Select(row)
		require.NoError(t, err)
		assert.Contains(t, []types.Direction{types.Left, types.Right}, d)
	}
}
