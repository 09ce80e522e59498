package grid

import "github.com/zeu5/pathfinder-rl/types"

// InPosition is true for traces that enter the given node
func InPosition(i, j int) types.TracePredicate {
	target := types.Cell{Row: i, Col: j}
	return func(t *types.Trace) bool {
		for _, c := range t.Positions() {
			if c == target {
				return true
			}
		}
		return false
	}
}

// ReachedGoal is true for traces that end on the end node
func ReachedGoal(g *GridEnvironment) types.TracePredicate {
	return func(t *types.Trace) bool {
		_, _, next, _, ok := t.Last()
		return ok && g.IsGoal(next.Position)
	}
}

// HazardFree is true for traces that never claimed a hazard
func HazardFree() types.TracePredicate {
	return func(t *types.Trace) bool {
		_, _, next, _, ok := t.Last()
		return !ok || next.Hazards == ""
	}
}
