package policies

import (
	"context"
	"fmt"

	"github.com/zeu5/pathfinder-rl/types"
)

// QLearning is the one-step tabular Q-learning agent over learning state keys.
// Training is single threaded, the table has exactly one writer.
type QLearning struct {
	params   Params
	table    *QTable
	selector Selector
}

var _ types.Learner = &QLearning{}

func NewQLearning(params Params) (*QLearning, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &QLearning{
		params:   params,
		table:    NewQTable(),
		selector: newExplorationSelector(params),
	}, nil
}

// NewQLearningWithSelector uses the given selector for exploration instead of
// the one named in params
func NewQLearningWithSelector(params Params, selector Selector) (*QLearning, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &QLearning{
		params:   params,
		table:    NewQTable(),
		selector: selector,
	}, nil
}

func newExplorationSelector(params Params) Selector {
	switch params.Exploration {
	case SoftMaxExploration:
		return NewSoftMax(params.Temperature, params.Seed)
	default:
		return NewEpsilonGreedy(params.Epsilon, params.Seed)
	}
}

func (q *QLearning) Params() Params {
	return q.params
}

// Table gives read access to the learned values
func (q *QLearning) Table() *QTable {
	return q.table
}

func (q *QLearning) Reset() {
	q.table = NewQTable()
}

// Record dumps the table at path.jsonl
func (q *QLearning) Record(path string) error {
	return q.table.Record(path)
}

// RunEpisode runs one episode from the start cell until the goal is reached
// (or the horizon, when one is set), updating the table after every move.
func (q *QLearning) RunEpisode(episode int, env types.Environment) (*types.Trace, types.EpisodeStats, error) {
	stats := types.EpisodeStats{Episode: episode}
	trace := types.NewTrace()
	cfg := q.params.StepConfig()

	state := types.NewAgentState(env.Reset())
	curKey := state.Key()
	for !env.IsGoal(state.Position) {
		if q.params.Horizon > 0 && state.StepCount >= q.params.Horizon {
			stats.HorizonReached = true
			break
		}
		row := q.table.Expand(curKey, env)
		if len(row) == 0 {
			return trace, stats, fmt.Errorf("%w: %s", types.ErrNoLegalActions, curKey.Hash())
		}

		action, result, err := q.move(state, row, env, cfg)
		if err != nil {
			return trace, stats, fmt.Errorf("state %s: %w", curKey.Hash(), err)
		}

		nextKey := state.Key()
		nextRow := q.table.Expand(nextKey, env)
		nextMax := 0.0
		if _, val, ok := nextRow.Max(); ok {
			nextMax = val
		}

		oldVal, err := q.table.Get(curKey, action)
		if err != nil {
			return trace, stats, err
		}
		newVal := oldVal + q.params.Alpha*(result.Reward+q.params.Gamma*nextMax-oldVal)
		if err := q.table.Set(curKey, action, newVal); err != nil {
			return trace, stats, err
		}

		trace.Append(curKey, action, nextKey, result.Reward)
		curKey = nextKey
	}

	stats.Steps = state.StepCount
	stats.Reward = state.Score
	stats.ReachedGoal = env.IsGoal(state.Position)
	stats.States = q.table.Size()
	return trace, stats, nil
}

// move selects an action and applies it. A move the environment refuses is
// removed from the stored row, so the row only keeps legal actions, and
// another action is selected.
func (q *QLearning) move(state *types.AgentState, row Row, env types.Environment, cfg types.StepConfig) (types.Direction, types.StepResult, error) {
	for {
		action, err := q.selector.Select(row)
		if err != nil {
			return 0, types.StepResult{}, err
		}
		result := state.Step(env, action, cfg)
		if result.Legal {
			return action, result, nil
		}

		delete(row, action)
		if len(row) == 0 {
			return 0, types.StepResult{}, fmt.Errorf("%w: every action in the row was refused", types.ErrIllegalMove)
		}
	}
}

// Train runs the given number of episodes. The context is checked between episodes.
func (q *QLearning) Train(ctx context.Context, env types.Environment, episodes int) ([]types.EpisodeStats, error) {
	agent := types.NewAgent(&types.AgentConfig{
		Episodes:    episodes,
		Learner:     q,
		Environment: env,
	})
	return agent.Run(ctx)
}

// Solve follows the greedy policy from the start cell, see Solve
func (q *QLearning) Solve(env types.Environment) (*types.Path, error) {
	return Solve(env, q.table, q.params.StepBudget, q.params.StepConfig())
}
