package policies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeu5/pathfinder-rl/grid"
	"github.com/zeu5/pathfinder-rl/types"
)

func scenarioParams() Params {
	params := DefaultParams()
	params.Alpha = 0.5
	params.Gamma = 0.9
	params.Epsilon = 0.2
	params.StepCost = -1
	params.GoalBonus = 100
	params.Seed = 42
	return params
}

func openGrid() *grid.GridEnvironment {
	return grid.NewOpenGrid(3, 3, types.Cell{Row: 0, Col: 2}, types.Cell{Row: 2, Col: 0})
}

func train(t *testing.T, params Params, env types.Environment, episodes int) *QLearning {
	t.Helper()
	q, err := NewQLearning(params)
	require.NoError(t, err)
	stats, err := q.Train(context.Background(), env, episodes)
	require.NoError(t, err)
	require.Len(t, stats, episodes)
	return q
}

// greedyValues returns the best value of every state along the path, goal excluded
func greedyValues(t *testing.T, q *QLearning, env types.Environment, path *types.Path) []float64 {
	t.Helper()
	cfg := q.Params().StepConfig()
	state := types.NewAgentState(env.Reset())
	values := make([]float64, 0)
	for _, next := range path.Cells[1:] {
		_, val, err := q.Table().Max(state.Key())
		require.NoError(t, err)
		values = append(values, val)

		moved := false
		for _, d := range types.LegalDirections(env, state.Position) {
			if state.Position.Move(d) == next {
				state.Step(env, d, cfg)
				moved = true
				break
			}
		}
		require.True(t, moved)
	}
	return values
}

func TestOpenGridShortestPath(t *testing.T) {
	env := openGrid()
	q := train(t, scenarioParams(), env, 200)

	path, err := q.Solve(env)
	require.NoError(t, err)
	assert.True(t, path.ReachedGoal)
	assert.Equal(t, 4, path.Steps)
	require.Equal(t, 5, path.Len())
	assert.Equal(t, env.Start, path.Cells[0])
	assert.Equal(t, env.End, path.Cells[4])

	values := greedyValues(t, q, env, path)
	for i := 1; i < len(values); i++ {
		assert.GreaterOrEqual(t, values[i], values[i-1])
	}
}

func TestTreasureOnShortestPath(t *testing.T) {
	env := openGrid()
	center := types.Cell{Row: 1, Col: 1}
	require.NoError(t, env.SetReward(center, types.TreasureOf(20)))

	q := train(t, scenarioParams(), env, 500)
	path, err := q.Solve(env)
	require.NoError(t, err)
	assert.True(t, path.ReachedGoal)
	assert.Equal(t, 5, path.Len())
	assert.True(t, path.Contains(center))
	assert.Equal(t, 20.0-4+100, path.Score)
}

const detourLayout = `
S...E
.....
..T..
`

func TestTreasureDetour(t *testing.T) {
	// the straight route along the top row takes 4 steps, the treasure costs 4 more
	const tolerance = 4
	treasure := types.Cell{Row: 2, Col: 2}

	cases := []struct {
		name   string
		value  float64
		detour bool
	}{
		{"worth the detour", 100, true},
		{"not worth the detour", 10, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			env, err := grid.ParseLayout(detourLayout, c.value, -50)
			require.NoError(t, err)

			q := train(t, scenarioParams(), env, 1000)
			path, err := q.Solve(env)
			require.NoError(t, err)
			assert.True(t, path.ReachedGoal)
			assert.Equal(t, c.detour, path.Contains(treasure))
			if c.detour {
				assert.LessOrEqual(t, path.Steps, 4+tolerance)
			} else {
				assert.Equal(t, 4, path.Steps)
			}
		})
	}
}

const hazardLayout = `
S.H.E
.###.
.....
`

func TestHazardAvoided(t *testing.T) {
	env, err := grid.ParseLayout(hazardLayout, 20, -50)
	require.NoError(t, err)

	q := train(t, scenarioParams(), env, 500)
	path, err := q.Solve(env)
	require.NoError(t, err)
	assert.True(t, path.ReachedGoal)
	assert.False(t, path.Contains(types.Cell{Row: 0, Col: 2}))
	assert.Equal(t, 8, path.Steps)
}

func TestLearnedRowsAreLegal(t *testing.T) {
	env, err := grid.ParseLayout(hazardLayout, 20, -50)
	require.NoError(t, err)
	q := train(t, scenarioParams(), env, 50)

	require.Greater(t, q.Table().Size(), 0)
	for _, key := range q.Table().States() {
		row, err := q.Table().Row(key)
		require.NoError(t, err)
		if env.IsGoal(key.Position) {
			assert.Empty(t, row)
			continue
		}
		assert.Equal(t, types.LegalDirections(env, key.Position), row.Directions(), key.Hash())
	}
}

func TestEpisodeStats(t *testing.T) {
	env, err := grid.ParseLayout(hazardLayout, 20, -50)
	require.NoError(t, err)
	q, err := NewQLearning(scenarioParams())
	require.NoError(t, err)

	trace, stats, err := q.RunEpisode(0, env)
	require.NoError(t, err)
	assert.True(t, stats.ReachedGoal)
	assert.Equal(t, trace.Len(), stats.Steps)
	assert.InDelta(t, trace.Total(), stats.Reward, 1e-9)
	assert.Equal(t, q.Table().Size(), stats.States)

	positions := trace.Positions()
	assert.Equal(t, env.Start, positions[0])
	assert.Equal(t, env.End, positions[len(positions)-1])
}

func TestHorizon(t *testing.T) {
	env, err := grid.ParseLayout(hazardLayout, 20, -50)
	require.NoError(t, err)
	params := scenarioParams()
	params.Horizon = 2
	q, err := NewQLearning(params)
	require.NoError(t, err)

	trace, stats, err := q.RunEpisode(0, env)
	require.NoError(t, err)
	assert.True(t, stats.HorizonReached)
	assert.False(t, stats.ReachedGoal)
	assert.Equal(t, 2, stats.Steps)
	assert.Equal(t, 2, trace.Len())
}

func TestRefusedMoveIsReselected(t *testing.T) {
	env := openGrid()
	params := scenarioParams()
	params.Horizon = 1000
	q, err := NewQLearningWithSelector(params, Greedy{})
	require.NoError(t, err)

	// Up leaves the grid from the start cell
	start := types.NewStateKey(env.Start, nil, nil)
	q.table.table[start] = Row{types.Up: 5, types.Down: 0, types.Left: 0}

	_, stats, err := q.RunEpisode(0, env)
	require.NoError(t, err)
	assert.True(t, stats.ReachedGoal)
	assert.False(t, stats.HorizonReached)

	row, err := q.Table().Row(start)
	require.NoError(t, err)
	assert.Equal(t, []types.Direction{types.Down, types.Left}, row.Directions())
	_, err = q.Table().Get(start, types.Up)
	assert.ErrorIs(t, err, ErrIllegalAction)
}

func TestEveryMoveRefused(t *testing.T) {
	env := openGrid()
	q, err := NewQLearningWithSelector(scenarioParams(), Greedy{})
	require.NoError(t, err)
	start := types.NewStateKey(env.Start, nil, nil)
	q.table.table[start] = Row{types.Up: 0, types.Right: 0}

	_, _, err = q.RunEpisode(0, env)
	assert.ErrorIs(t, err, types.ErrIllegalMove)
}

func TestNoLegalActions(t *testing.T) {
	env := openGrid()
	q, err := NewQLearning(scenarioParams())
	require.NoError(t, err)
	q.table.table[types.NewStateKey(env.Start, nil, nil)] = Row{}

	_, _, err = q.RunEpisode(0, env)
	assert.ErrorIs(t, err, types.ErrNoLegalActions)
}

func TestTrainCancelled(t *testing.T) {
	q, err := NewQLearning(scenarioParams())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := q.Train(ctx, openGrid(), 10)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, stats)
}

func TestReset(t *testing.T) {
	env := openGrid()
	q := train(t, scenarioParams(), env, 5)
	require.Greater(t, q.Table().Size(), 0)
	q.Reset()
	assert.Equal(t, 0, q.Table().Size())
}
