package policies

import (
	"errors"
	"fmt"
	"math"

	"github.com/zeu5/pathfinder-rl/types"
)

var ErrInvalidParams = errors.New("invalid learning parameters")

// Exploration strategy used while training
type Exploration string

const (
	EpsilonGreedyExploration Exploration = "epsilon-greedy"
	SoftMaxExploration       Exploration = "softmax"
)

// Params of the Q-learning agent
type Params struct {
	Alpha       float64     `json:"alpha"`
	Gamma       float64     `json:"gamma"`
	Epsilon     float64     `json:"epsilon"`
	Temperature float64     `json:"temperature"`
	Exploration Exploration `json:"exploration"`

	StepCost  float64 `json:"step_cost"`
	GoalBonus float64 `json:"goal_bonus"`

	// StepBudget bounds the solution path
	StepBudget int `json:"step_budget"`
	// Horizon bounds a training episode, 0 for unbounded
	Horizon int `json:"horizon"`

	Seed uint64 `json:"seed"`
}

func DefaultParams() Params {
	return Params{
		Alpha:       0.1,
		Gamma:       0.8,
		Epsilon:     0.1,
		Temperature: 1,
		Exploration: EpsilonGreedyExploration,
		StepCost:    -1,
		GoalBonus:   1000,
		StepBudget:  1000,
		Horizon:     0,
		Seed:        1,
	}
}

func (p Params) Validate() error {
	if p.Alpha <= 0 || p.Alpha > 1 {
		return fmt.Errorf("%w: alpha %v not in (0, 1]", ErrInvalidParams, p.Alpha)
	}
	if p.Gamma <= 0 || p.Gamma > 1 {
		return fmt.Errorf("%w: gamma %v not in (0, 1]", ErrInvalidParams, p.Gamma)
	}
	if p.Epsilon < 0 || p.Epsilon > 1 {
		return fmt.Errorf("%w: epsilon %v not in [0, 1]", ErrInvalidParams, p.Epsilon)
	}
	if p.StepCost > 0 {
		return fmt.Errorf("%w: step cost %v must not be positive", ErrInvalidParams, p.StepCost)
	}
	if p.StepBudget <= 0 {
		return fmt.Errorf("%w: step budget %d must be positive", ErrInvalidParams, p.StepBudget)
	}
	if p.Horizon < 0 {
		return fmt.Errorf("%w: horizon %d must not be negative", ErrInvalidParams, p.Horizon)
	}
	if p.GoalBonus <= math.Abs(p.StepCost) {
		return fmt.Errorf("%w: goal bonus %v must exceed the step cost %v", ErrInvalidParams, p.GoalBonus, p.StepCost)
	}
	switch p.Exploration {
	case EpsilonGreedyExploration:
	case SoftMaxExploration:
		if p.Temperature <= 0 {
			return fmt.Errorf("%w: temperature %v must be positive", ErrInvalidParams, p.Temperature)
		}
	default:
		return fmt.Errorf("%w: unknown exploration %q", ErrInvalidParams, p.Exploration)
	}
	return nil
}

// CheckGoalDominance returns an error unless the goal bonus exceeds the
// magnitude of every single cell reward
func (p Params) CheckGoalDominance(rewards ...float64) error {
	for _, r := range rewards {
		if p.GoalBonus <= math.Abs(r) {
			return fmt.Errorf("%w: goal bonus %v does not dominate cell reward %v", ErrInvalidParams, p.GoalBonus, r)
		}
	}
	return nil
}

func (p Params) StepConfig() types.StepConfig {
	return types.StepConfig{StepCost: p.StepCost, GoalBonus: p.GoalBonus}
}
