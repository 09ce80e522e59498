package grid

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeu5/pathfinder-rl/types"
)

func corridorTrace(g *GridEnvironment, cells ...types.Cell) *types.Trace {
	trace := types.NewTrace()
	state := types.NewAgentState(cells[0])
	for _, next := range cells[1:] {
		for _, d := range types.AllDirections {
			if state.Position.Move(d) == next {
				cur := state.Key()
				res := state.Step(g, d, types.StepConfig{StepCost: -1})
				trace.Append(cur, d, state.Key(), res.Reward)
				break
			}
		}
	}
	return trace
}

func TestVisitAnalyzer(t *testing.T) {
	g, err := ParseLayout("S.H\n..E", 5, -5)
	require.NoError(t, err)
	a := NewVisitAnalyzer(g)

	viaHazard := corridorTrace(g, types.Cell{Row: 0, Col: 0}, types.Cell{Row: 0, Col: 1}, types.Cell{Row: 0, Col: 2}, types.Cell{Row: 1, Col: 2})
	below := corridorTrace(g, types.Cell{Row: 0, Col: 0}, types.Cell{Row: 1, Col: 0}, types.Cell{Row: 1, Col: 1}, types.Cell{Row: 1, Col: 2})
	a.Analyze(0, 0, "q", viaHazard, types.EpisodeStats{})
	a.Analyze(0, 1, "q", below, types.EpisodeStats{})

	ds := a.DataSet().(*GridDataSet)
	assert.Equal(t, 2.0, ds.Z(0, 0))
	assert.Equal(t, 1.0, ds.Z(2, 0))
	assert.Equal(t, 2.0, ds.Max())
	cols, rows := ds.Dims()
	assert.Equal(t, 3, cols)
	assert.Equal(t, 2, rows)

	merged := MergeGridDatasets([]types.DataSet{ds, ds}).(*GridDataSet)
	assert.Equal(t, 4, merged.Visits[types.Cell{Row: 1, Col: 2}])

	assert.True(t, InPosition(0, 2)(viaHazard))
	assert.False(t, InPosition(0, 2)(below))
	assert.True(t, ReachedGoal(g)(below))
	assert.False(t, HazardFree()(viaHazard))
	assert.True(t, HazardFree()(below))

	dir := t.TempDir()
	comparator := GridPlotComparator(dir)
	comparator(0, []string{"q"}, []types.DataSet{ds})
	comparator(1, []string{"q"}, []types.DataSet{ds})
	for _, f := range []string{"0_q_visits.json", "1_q_visits.json", "all_q_visits.json"} {
		_, err = os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, f)
	}

	bs, err := os.ReadFile(filepath.Join(dir, "all_q_visits.json"))
	require.NoError(t, err)
	records := make([]cellVisits, 0)
	require.NoError(t, json.Unmarshal(bs, &records))
	assert.Contains(t, records, cellVisits{Row: 0, Col: 0, Visits: 4})

	a.Reset()
	assert.Empty(t, a.DataSet().(*GridDataSet).Visits)
}
