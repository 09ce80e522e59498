package types

import "encoding/json"

// Trace of an episode as quadruples (state, action, nextState, reward)
type Trace struct {
	states     []StateKey
	actions    []Direction
	nextStates []StateKey
	rewards    []float64
}

func NewTrace() *Trace {
	return &Trace{
		states:     make([]StateKey, 0),
		actions:    make([]Direction, 0),
		nextStates: make([]StateKey, 0),
		rewards:    make([]float64, 0),
	}
}

func (t *Trace) Append(state StateKey, action Direction, nextState StateKey, reward float64) {
	t.states = append(t.states, state)
	t.actions = append(t.actions, action)
	t.nextStates = append(t.nextStates, nextState)
	t.rewards = append(t.rewards, reward)
}

func (t *Trace) Len() int {
	return len(t.states)
}

func (t *Trace) Get(i int) (StateKey, Direction, StateKey, float64, bool) {
	if i < 0 || i >= len(t.states) {
		return StateKey{}, 0, StateKey{}, 0, false
	}
	return t.states[i], t.actions[i], t.nextStates[i], t.rewards[i], true
}

func (t *Trace) Last() (StateKey, Direction, StateKey, float64, bool) {
	return t.Get(len(t.states) - 1)
}

// Total reward collected along the trace
func (t *Trace) Total() float64 {
	sum := 0.0
	for _, r := range t.rewards {
		sum += r
	}
	return sum
}

// Positions visited, starting with the position of the first state
func (t *Trace) Positions() []Cell {
	if len(t.states) == 0 {
		return []Cell{}
	}
	out := make([]Cell, 0, len(t.states)+1)
	out = append(out, t.states[0].Position)
	for _, s := range t.nextStates {
		out = append(out, s.Position)
	}
	return out
}

type traceStep struct {
	State     string    `json:"state"`
	Action    Direction `json:"action"`
	NextState string    `json:"next_state"`
	Reward    float64   `json:"reward"`
}

func (t *Trace) MarshalJSON() ([]byte, error) {
	steps := make([]traceStep, len(t.states))
	for i := range t.states {
		steps[i] = traceStep{
			State:     t.states[i].Hash(),
			Action:    t.actions[i],
			NextState: t.nextStates[i].Hash(),
			Reward:    t.rewards[i],
		}
	}
	return json.Marshal(steps)
}

// Path is a solution trajectory produced by following a learned policy
type Path struct {
	Cells       []Cell  `json:"cells"`
	Steps       int     `json:"steps"`
	ReachedGoal bool    `json:"reached_goal"`
	Score       float64 `json:"score"`
}

func (p *Path) Len() int {
	return len(p.Cells)
}

func (p *Path) Contains(c Cell) bool {
	for _, pc := range p.Cells {
		if pc == c {
			return true
		}
	}
	return false
}
