package grid

import (
	"errors"
	"fmt"

	"github.com/zeu5/pathfinder-rl/types"
	"golang.org/x/exp/rand"
)

var (
	ErrInvalidDimensions = errors.New("maze dimension must be odd and at least 3")
	ErrInvalidConfig     = errors.New("invalid maze configuration")
)

// Config of a generated maze
type Config struct {
	// Dimension is the number of node rows (and columns), walls included
	Dimension int `json:"dimension"`

	TreasureProbability float64 `json:"treasure_probability"`
	HazardProbability   float64 `json:"hazard_probability"`
	TreasureReward      float64 `json:"treasure_reward"`
	HazardReward        float64 `json:"hazard_reward"`

	Seed uint64 `json:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Dimension:           19,
		TreasureProbability: 0.1,
		HazardProbability:   0.05,
		TreasureReward:      200,
		HazardReward:        -10,
		Seed:                1,
	}
}

func (c Config) Validate() error {
	if c.Dimension < 3 || c.Dimension%2 == 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDimensions, c.Dimension)
	}
	if c.TreasureProbability < 0 || c.TreasureProbability > 1 {
		return fmt.Errorf("%w: treasure probability %v", ErrInvalidConfig, c.TreasureProbability)
	}
	if c.HazardProbability < 0 || c.HazardProbability > 1 {
		return fmt.Errorf("%w: hazard probability %v", ErrInvalidConfig, c.HazardProbability)
	}
	if c.TreasureReward < 0 {
		return fmt.Errorf("%w: treasure reward %v is negative", ErrInvalidConfig, c.TreasureReward)
	}
	if c.HazardReward > 0 {
		return fmt.Errorf("%w: hazard reward %v is positive", ErrInvalidConfig, c.HazardReward)
	}
	return nil
}

// Generate carves a maze and spreads treasures and hazards over it.
// Nodes with even row and even column are rooms, the others are walls until
// a passage is carved through them. Start is the top right room and end the
// bottom left one.
func Generate(c Config) (*GridEnvironment, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(c.Seed))

	g := NewGridEnvironment(c.Dimension, c.Dimension)
	g.Start = types.Cell{Row: 0, Col: c.Dimension - 1}
	g.End = types.Cell{Row: c.Dimension - 1, Col: 0}

	carve(g, rng)
	Spread(g, c, rng)
	return g, nil
}

// carve opens the rooms and the passages of a uniform spanning tree over the
// rooms, built with Wilson's loop-erased random walks
func carve(g *GridEnvironment, rng *rand.Rand) {
	rooms := make([]types.Cell, 0)
	for i := 0; i < g.Height; i += 2 {
		for j := 0; j < g.Width; j += 2 {
			rooms = append(rooms, types.Cell{Row: i, Col: j})
		}
	}
	for _, r := range rooms {
		g.open[r] = true
	}

	inTree := make(map[types.Cell]bool)
	inTree[rooms[rng.Intn(len(rooms))]] = true

	for len(inTree) < len(rooms) {
		unvisited := make([]types.Cell, 0, len(rooms)-len(inTree))
		for _, r := range rooms {
			if !inTree[r] {
				unvisited = append(unvisited, r)
			}
		}
		start := unvisited[rng.Intn(len(unvisited))]

		// random walk until the tree is hit, remembering the last exit of every room
		exits := make(map[types.Cell]types.Direction)
		cur := start
		for !inTree[cur] {
			dirs := roomDirections(g, cur)
			d := dirs[rng.Intn(len(dirs))]
			exits[cur] = d
			cur = cur.Move(d).Move(d)
		}

		// following the last exits from start erases the loops
		cur = start
		for !inTree[cur] {
			d := exits[cur]
			g.open[cur.Move(d)] = true
			inTree[cur] = true
			cur = cur.Move(d).Move(d)
		}
	}
}

// roomDirections are the directions leading to another room
func roomDirections(g *GridEnvironment, room types.Cell) []types.Direction {
	out := make([]types.Direction, 0, len(types.AllDirections))
	for _, d := range types.AllDirections {
		if g.InBounds(room.Move(d).Move(d)) {
			out = append(out, d)
		}
	}
	return out
}

// Spread places treasures and then hazards on the open nodes other than start and end.
// A node is a treasure with TreasureProbability; a node that did not get a treasure
// is a hazard with HazardProbability.
func Spread(g *GridEnvironment, c Config, rng *rand.Rand) {
	for _, cell := range g.Cells() {
		if cell == g.Start || cell == g.End {
			continue
		}
		if rng.Float64() < c.TreasureProbability {
			g.rewards[cell] = types.TreasureOf(c.TreasureReward)
		} else if rng.Float64() < c.HazardProbability {
			g.rewards[cell] = types.HazardOf(c.HazardReward)
		}
	}
}
