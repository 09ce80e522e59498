package types

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrIllegalMove    = errors.New("illegal move")
	ErrNoLegalActions = errors.New("no legal actions from a non-terminal state")
	ErrBadStateKey    = errors.New("malformed state key")
)

// StateKey identifies a learning state: the position plus the canonical
// encoding of what was collected on the way there. The same position reached
// with different collections is a different state.
// StateKey is comparable and is used directly as a map key.
type StateKey struct {
	Position  Cell
	Treasures string
	Hazards   string
}

// NewStateKey canonicalizes the collected sets (order of the slices does not matter)
func NewStateKey(position Cell, treasures, hazards []Cell) StateKey {
	return StateKey{
		Position:  position,
		Treasures: encodeCells(treasures),
		Hazards:   encodeCells(hazards),
	}
}

func (k StateKey) Hash() string {
	return fmt.Sprintf("%s|t[%s]|h[%s]", k.Position.Hash(), k.Treasures, k.Hazards)
}

func (k StateKey) String() string {
	return k.Hash()
}

// CollectedTreasures decodes the treasure set of the key
func (k StateKey) CollectedTreasures() ([]Cell, error) {
	return decodeCells(k.Treasures)
}

// CollectedHazards decodes the hazard set of the key
func (k StateKey) CollectedHazards() ([]Cell, error) {
	return decodeCells(k.Hazards)
}

func encodeCells(cells []Cell) string {
	if len(cells) == 0 {
		return ""
	}
	sorted := make([]Cell, len(cells))
	copy(sorted, cells)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	parts := make([]string, 0, len(sorted))
	for i, c := range sorted {
		if i > 0 && c == sorted[i-1] {
			continue
		}
		parts = append(parts, strconv.Itoa(c.Row)+":"+strconv.Itoa(c.Col))
	}
	return strings.Join(parts, ";")
}

func decodeCells(s string) ([]Cell, error) {
	out := make([]Cell, 0)
	if s == "" {
		return out, nil
	}
	for _, part := range strings.Split(s, ";") {
		rc := strings.Split(part, ":")
		if len(rc) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrBadStateKey, part)
		}
		row, err := strconv.Atoi(rc[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadStateKey, part)
		}
		col, err := strconv.Atoi(rc[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadStateKey, part)
		}
		out = append(out, Cell{Row: row, Col: col})
	}
	return out, nil
}

// StepConfig holds the reward constants applied by Step
type StepConfig struct {
	// StepCost is added on every legal move, expected to be <= 0
	StepCost float64
	// GoalBonus is added on the move that reaches the end cell
	GoalBonus float64
}

// StepResult of a single move
type StepResult struct {
	Legal     bool
	Reward    float64
	Terminal  bool
	Collected Reward
}

// AgentState is the per-episode record of the agent.
// It is created at reset and mutated only by Step.
type AgentState struct {
	Position  Cell
	Treasures map[Cell]bool
	Hazards   map[Cell]bool
	StepCount int
	Score     float64
}

func NewAgentState(start Cell) *AgentState {
	return &AgentState{
		Position:  start,
		Treasures: make(map[Cell]bool),
		Hazards:   make(map[Cell]bool),
	}
}

// Key returns the learning state key of the current state
func (s *AgentState) Key() StateKey {
	return NewStateKey(s.Position, keys(s.Treasures), keys(s.Hazards))
}

func (s *AgentState) Claimed(c Cell) bool {
	return s.Treasures[c] || s.Hazards[c]
}

// Step moves the agent in direction d.
// An illegal move leaves the state untouched and returns Legal == false.
// A treasure or hazard fires only the first time its cell is entered in this episode.
func (s *AgentState) Step(env Environment, d Direction, cfg StepConfig) StepResult {
	target, ok := env.Neighbor(s.Position, d)
	if !ok {
		return StepResult{Legal: false}
	}

	result := StepResult{Legal: true, Reward: cfg.StepCost, Collected: NoReward()}
	s.Position = target

	cellReward := env.RewardAt(target)
	switch cellReward.Kind {
	case Treasure:
		if !s.Treasures[target] {
			s.Treasures[target] = true
			result.Reward += cellReward.Value
			result.Collected = cellReward
		}
	case Hazard:
		if !s.Hazards[target] {
			s.Hazards[target] = true
			result.Reward += cellReward.Value
			result.Collected = cellReward
		}
	}

	if env.IsGoal(target) {
		result.Terminal = true
		result.Reward += cfg.GoalBonus
	}

	s.StepCount += 1
	s.Score += result.Reward
	return result
}

func keys(m map[Cell]bool) []Cell {
	out := make([]Cell, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	return out
}
