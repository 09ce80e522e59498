package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/zeu5/pathfinder-rl/policies"
	"github.com/zeu5/pathfinder-rl/types"
	"gonum.org/v1/gonum/stat"
)

// Summary of a training run
type Summary struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	CreatedAt time.Time       `json:"created_at"`
	Params    policies.Params `json:"params"`

	Episodes   int     `json:"episodes"`
	MeanReward float64 `json:"mean_reward"`
	StdReward  float64 `json:"std_reward"`
	MeanSteps  float64 `json:"mean_steps"`
	// GoalRate is the fraction of episodes that reached the goal
	GoalRate float64 `json:"goal_rate"`
	States   int     `json:"states"`

	Path *types.Path `json:"path,omitempty"`
}

// Summarize builds the summary of a run from the stats of its episodes
func Summarize(name string, params policies.Params, stats []types.EpisodeStats, path *types.Path) *Summary {
	s := &Summary{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
		Params:    params,
		Episodes:  len(stats),
		Path:      path,
	}
	if len(stats) == 0 {
		return s
	}

	rewards := make([]float64, len(stats))
	steps := make([]float64, len(stats))
	reached := 0
	for i, st := range stats {
		rewards[i] = st.Reward
		steps[i] = float64(st.Steps)
		if st.ReachedGoal {
			reached++
		}
	}
	s.MeanReward, s.StdReward = stat.MeanStdDev(rewards, nil)
	if len(stats) == 1 {
		s.StdReward = 0
	}
	s.MeanSteps = stat.Mean(steps, nil)
	s.GoalRate = float64(reached) / float64(len(stats))
	s.States = stats[len(stats)-1].States
	return s
}
