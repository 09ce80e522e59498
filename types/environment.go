package types

// Environment is the maze as seen by the learner.
// Implementations must be stationary: Reset never changes the rewards.
type Environment interface {
	// Neighbor returns the traversable cell next to the given one, false if the move is blocked
	Neighbor(Cell, Direction) (Cell, bool)
	// IsGoal is true only for the end cell
	IsGoal(Cell) bool
	// RewardAt returns the content of the cell
	RewardAt(Cell) Reward
	// Reset returns the start cell
	Reset() Cell
	// Goal returns the end cell
	Goal() Cell
}

// LegalDirections returns the directions that lead to a traversable neighbor of c,
// in direction order
func LegalDirections(env Environment, c Cell) []Direction {
	out := make([]Direction, 0, len(AllDirections))
	for _, d := range AllDirections {
		if _, ok := env.Neighbor(c, d); ok {
			out = append(out, d)
		}
	}
	return out
}
