package policies

import (
	"fmt"
	"math"

	"github.com/zeu5/pathfinder-rl/types"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Selector chooses an action from the row of the current state.
// An empty row yields types.ErrNoLegalActions.
type Selector interface {
	Select(Row) (types.Direction, error)
}

// Greedy always picks the best action, ties in direction order
type Greedy struct{}

var _ Selector = Greedy{}

func (Greedy) Select(row Row) (types.Direction, error) {
	d, _, ok := row.Max()
	if !ok {
		return 0, types.ErrNoLegalActions
	}
	return d, nil
}

// EpsilonGreedy explores uniformly among the row's actions with probability epsilon
// and exploits otherwise
type EpsilonGreedy struct {
	epsilon float64
	rand    *rand.Rand
}

var _ Selector = &EpsilonGreedy{}

func NewEpsilonGreedy(epsilon float64, seed uint64) *EpsilonGreedy {
	return &EpsilonGreedy{
		epsilon: epsilon,
		rand:    rand.New(rand.NewSource(seed)),
	}
}

func (e *EpsilonGreedy) Select(row Row) (types.Direction, error) {
	if len(row) == 0 {
		return 0, types.ErrNoLegalActions
	}
	if e.rand.Float64() < e.epsilon {
		actions := row.Directions()
		return actions[e.rand.Intn(len(actions))], nil
	}
	return Greedy{}.Select(row)
}

// SoftMax samples an action with probability proportional to exp(Q/temperature)
type SoftMax struct {
	temperature float64
	rand        rand.Source
}

var _ Selector = &SoftMax{}

func NewSoftMax(temperature float64, seed uint64) *SoftMax {
	return &SoftMax{
		temperature: temperature,
		rand:        rand.NewSource(seed),
	}
}

func (s *SoftMax) Select(row Row) (types.Direction, error) {
	actions := row.Directions()
	if len(actions) == 0 {
		return 0, types.ErrNoLegalActions
	}

	vals := make([]float64, len(actions))
	max := math.Inf(-1)
	for i, a := range actions {
		vals[i] = row[a] / s.temperature
		if vals[i] > max {
			max = vals[i]
		}
	}
	// shift by the max so that large values do not overflow
	sum := float64(0)
	for i, val := range vals {
		exp := math.Exp(val - max)
		vals[i] = exp
		sum += exp
	}
	weights := make([]float64, len(actions))
	for i, v := range vals {
		weights[i] = v / sum
	}
	i, ok := sampleuv.NewWeighted(weights, s.rand).Take()
	if !ok {
		return 0, fmt.Errorf("sampling from %d actions failed", len(actions))
	}
	return actions[i], nil
}
