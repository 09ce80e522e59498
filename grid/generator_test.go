package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeu5/pathfinder-rl/types"
	"golang.org/x/exp/rand"
)

func TestGenerateSpanningTree(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TreasureProbability = 0
	cfg.HazardProbability = 0

	for seed := uint64(1); seed <= 5; seed++ {
		cfg.Seed = seed
		g, err := Generate(cfg)
		require.NoError(t, err)
		require.NoError(t, g.Validate())

		assert.Equal(t, types.Cell{Row: 0, Col: 18}, g.Start)
		assert.Equal(t, types.Cell{Row: 18, Col: 0}, g.End)

		// every room is reachable and the passages form a tree
		rooms := 10 * 10
		reachable := g.Reachable(g.Start)
		assert.Len(t, reachable, len(g.Cells()))
		assert.Equal(t, 2*rooms-1, len(g.Cells()))

		for _, c := range g.Cells() {
			if c.Row%2 == 1 && c.Col%2 == 1 {
				t.Fatalf("wall corner %s was opened", c)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	a, err := Generate(cfg)
	require.NoError(t, err)
	b, err := Generate(cfg)
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
}

func TestGenerateInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dimension = 10
	_, err := Generate(cfg)
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	cfg = DefaultConfig()
	cfg.HazardReward = 3
	_, err = Generate(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSpread(t *testing.T) {
	g := NewOpenGrid(5, 5, types.Cell{Row: 0, Col: 4}, types.Cell{Row: 4, Col: 0})
	cfg := DefaultConfig()
	cfg.TreasureProbability = 1
	Spread(g, cfg, rand.New(rand.NewSource(1)))

	assert.Len(t, g.Rewards(types.Treasure), 23)
	assert.Empty(t, g.Rewards(types.Hazard))
	assert.True(t, g.RewardAt(g.Start).IsEmpty())
	assert.True(t, g.RewardAt(g.End).IsEmpty())

	g = NewOpenGrid(5, 5, types.Cell{Row: 0, Col: 4}, types.Cell{Row: 4, Col: 0})
	cfg.TreasureProbability = 0
	cfg.HazardProbability = 1
	Spread(g, cfg, rand.New(rand.NewSource(1)))
	assert.Len(t, g.Rewards(types.Hazard), 23)
	assert.Equal(t, types.HazardOf(-10), g.RewardAt(types.Cell{Row: 2, Col: 2}))
}
