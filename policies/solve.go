package policies

import (
	"fmt"

	"github.com/zeu5/pathfinder-rl/types"
)

// Solve extracts the greedy path from the start cell.
// The walk stops at the goal or after budget steps, whichever comes first,
// and the goal cell is always the last cell of the returned path.
// The table is only read: a state that was never visited in training
// behaves as a row of zeros over its legal actions.
func Solve(env types.Environment, table *QTable, budget int, cfg types.StepConfig) (*types.Path, error) {
	start := env.Reset()
	state := types.NewAgentState(start)
	path := &types.Path{
		Cells: []types.Cell{start},
	}

	for !env.IsGoal(state.Position) && state.StepCount < budget {
		key := state.Key()
		row, err := table.Row(key)
		if err != nil {
			row = LegalRow(env, state.Position)
		}
		action, err := Greedy{}.Select(row)
		if err != nil {
			return path, fmt.Errorf("solving from %s: %w", key.Hash(), err)
		}
		result := state.Step(env, action, cfg)
		if !result.Legal {
			return path, fmt.Errorf("solving from %s: %w: %s", key.Hash(), types.ErrIllegalMove, action)
		}
		path.Cells = append(path.Cells, state.Position)
	}

	path.Steps = state.StepCount
	path.Score = state.Score
	path.ReachedGoal = env.IsGoal(state.Position)

	goal := env.Goal()
	if path.Cells[len(path.Cells)-1] != goal {
		path.Cells = append(path.Cells, goal)
	}
	return path, nil
}
