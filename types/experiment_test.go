package types

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBroken = errors.New("broken learner")

// walker always moves right along a corridor
type walker struct {
	episodes int
	fail     bool
	recorded []string
}

func (w *walker) RunEpisode(_ int, env Environment) (*Trace, EpisodeStats, error) {
	if w.fail {
		return nil, EpisodeStats{}, errBroken
	}
	w.episodes++
	trace := NewTrace()
	state := NewAgentState(env.Reset())
	for !env.IsGoal(state.Position) {
		cur := state.Key()
		res := state.Step(env, Right, StepConfig{StepCost: -1})
		trace.Append(cur, Right, state.Key(), res.Reward)
	}
	return trace, EpisodeStats{Steps: state.StepCount, Reward: state.Score, ReachedGoal: true}, nil
}

func (w *walker) Solve(env Environment) (*Path, error) {
	return &Path{Cells: []Cell{env.Reset(), env.Goal()}, ReachedGoal: true}, nil
}

func (w *walker) Reset() {
	w.episodes = 0
}

func (w *walker) Record(p string) error {
	w.recorded = append(w.recorded, p)
	return nil
}

func TestAgentRun(t *testing.T) {
	w := &walker{}
	agent := NewAgent(&AgentConfig{Episodes: 4, Learner: w, Environment: &corridor{length: 3}})
	stats, err := agent.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, stats, 4)
	assert.Equal(t, 2, stats[0].Steps)
	assert.Equal(t, -2.0, stats[0].Reward)

	w.fail = true
	_, err = NewAgent(&AgentConfig{Episodes: 1, Learner: w, Environment: &corridor{length: 3}}).Run(context.Background())
	assert.ErrorIs(t, err, errBroken)
}

func TestComparisonRun(t *testing.T) {
	dir := t.TempDir()
	c, err := NewComparison(&ComparisonConfig{
		Runs:         2,
		Episodes:     3,
		RecordPath:   dir,
		RecordTraces: true,
		RecordPolicy: true,
		Out:          io.Discard,
	})
	require.NoError(t, err)

	var lengths [][]float64
	c.AddAnalysis("Length", EpisodeLength(), func(_ int, names []string, ds []DataSet) {
		require.Equal(t, []string{"walker", "broken"}, names)
		lengths = append(lengths, ds[0].([]float64))
	})
	good := &walker{}
	c.AddExperiment(NewExperiment("walker", good, &corridor{length: 4}))
	c.AddExperiment(NewExperiment("broken", &walker{fail: true}, &corridor{length: 4}))

	err = c.Run(context.Background())
	assert.ErrorIs(t, err, errBroken)

	require.Len(t, lengths, 2)
	assert.Equal(t, []float64{3, 3, 3}, lengths[0])

	results := c.Results()
	require.Len(t, results, 4)
	assert.False(t, results[0].IsError())
	assert.Equal(t, 3, results[0].Episodes)
	assert.True(t, results[0].Path.ReachedGoal)
	assert.True(t, results[1].IsError())
	assert.Len(t, good.recorded, 2)

	for _, f := range []string{"comparison_config.json", "results.json", filepath.Join("traces", "walker_0.jsonl")} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, f)
	}
}

func TestComparisonCancelled(t *testing.T) {
	c, err := NewComparison(&ComparisonConfig{Runs: 1, Episodes: 1, RecordPath: t.TempDir(), Out: io.Discard})
	require.NoError(t, err)
	c.AddExperiment(NewExperiment("walker", &walker{}, &corridor{length: 2}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.Run(ctx), context.Canceled)
}

func TestSmooth(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 3}, Smooth([]float64{1, 2, 3}, 1))
	assert.Equal(t, []float64{2, 3, 5}, Smooth([]float64{2, 4, 6}, 2))
}

func TestPredicateAnalyzer(t *testing.T) {
	a := NewPredicateAnalyzer(func(tr *Trace) bool { return tr.Len() > 1 })
	w := &walker{}
	short, _, _ := w.RunEpisode(0, &corridor{length: 2})
	long, _, _ := w.RunEpisode(1, &corridor{length: 4})
	a.Analyze(0, 0, "w", long, EpisodeStats{})
	a.Analyze(0, 1, "w", short, EpisodeStats{})
	a.Analyze(0, 2, "w", long, EpisodeStats{})
	assert.Equal(t, []float64{1, 1, 2}, a.DataSet())
}
