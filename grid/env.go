package grid

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/zeu5/pathfinder-rl/types"
)

var (
	ErrOutOfBounds  = errors.New("cell is outside the grid")
	ErrWall         = errors.New("cell is a wall")
	ErrUnreachable  = errors.New("end is not reachable from start")
	ErrReservedCell = errors.New("start and end cannot hold rewards")
	ErrSameStartEnd = errors.New("start and end must differ")
)

// GridEnvironment is a rectangular maze of nodes.
// A node is either open (traversable) or a wall. Open nodes may hold a
// treasure or a hazard, never both. The content never changes after the
// maze is built so that every episode sees the same maze.
type GridEnvironment struct {
	Height int
	Width  int
	Start  types.Cell
	End    types.Cell

	open    map[types.Cell]bool
	rewards map[types.Cell]types.Reward
}

var _ types.Environment = &GridEnvironment{}

// NewGridEnvironment creates a grid where every node is a wall
func NewGridEnvironment(height, width int) *GridEnvironment {
	return &GridEnvironment{
		Height:  height,
		Width:   width,
		open:    make(map[types.Cell]bool),
		rewards: make(map[types.Cell]types.Reward),
	}
}

// NewOpenGrid creates a grid without walls
func NewOpenGrid(height, width int, start, end types.Cell) *GridEnvironment {
	g := NewGridEnvironment(height, width)
	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			g.open[types.Cell{Row: i, Col: j}] = true
		}
	}
	g.Start = start
	g.End = end
	return g
}

func (g *GridEnvironment) InBounds(c types.Cell) bool {
	return c.Row >= 0 && c.Row < g.Height && c.Col >= 0 && c.Col < g.Width
}

func (g *GridEnvironment) IsOpen(c types.Cell) bool {
	return g.open[c]
}

// Open marks the node as traversable
func (g *GridEnvironment) Open(c types.Cell) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	g.open[c] = true
	return nil
}

// Close turns the node into a wall, dropping its reward
func (g *GridEnvironment) Close(c types.Cell) {
	delete(g.open, c)
	delete(g.rewards, c)
}

// SetReward places a treasure or a hazard on an open node, replacing what was there.
// An empty reward clears the node.
func (g *GridEnvironment) SetReward(c types.Cell, r types.Reward) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	if !g.open[c] {
		return fmt.Errorf("%w: %s", ErrWall, c)
	}
	if c == g.Start || c == g.End {
		return fmt.Errorf("%w: %s", ErrReservedCell, c)
	}
	if r.IsEmpty() {
		delete(g.rewards, c)
		return nil
	}
	g.rewards[c] = r
	return nil
}

func (g *GridEnvironment) Neighbor(c types.Cell, d types.Direction) (types.Cell, bool) {
	if !d.Valid() || !g.open[c] {
		return types.Cell{}, false
	}
	next := c.Move(d)
	if !g.InBounds(next) || !g.open[next] {
		return types.Cell{}, false
	}
	return next, true
}

func (g *GridEnvironment) IsGoal(c types.Cell) bool {
	return c == g.End
}

func (g *GridEnvironment) RewardAt(c types.Cell) types.Reward {
	r, ok := g.rewards[c]
	if !ok {
		return types.NoReward()
	}
	return r
}

func (g *GridEnvironment) Reset() types.Cell {
	return g.Start
}

func (g *GridEnvironment) Goal() types.Cell {
	return g.End
}

// Cells returns the open nodes in row-major order
func (g *GridEnvironment) Cells() []types.Cell {
	out := make([]types.Cell, 0, len(g.open))
	for c := range g.open {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Rewards returns the nodes holding a reward of the given kind in row-major order
func (g *GridEnvironment) Rewards(kind types.RewardKind) []types.Cell {
	out := make([]types.Cell, 0)
	for c, r := range g.rewards {
		if r.Kind == kind {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Reachable returns the set of open nodes reachable from c
func (g *GridEnvironment) Reachable(c types.Cell) map[types.Cell]bool {
	visited := make(map[types.Cell]bool)
	if !g.open[c] {
		return visited
	}
	visited[c] = true
	queue := []types.Cell{c}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range types.AllDirections {
			next, ok := g.Neighbor(cur, d)
			if ok && !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return visited
}

// Validate checks that start and end are distinct open nodes and that
// end can be reached from start
func (g *GridEnvironment) Validate() error {
	for _, c := range []types.Cell{g.Start, g.End} {
		if !g.InBounds(c) {
			return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
		}
		if !g.open[c] {
			return fmt.Errorf("%w: %s", ErrWall, c)
		}
	}
	if g.Start == g.End {
		return ErrSameStartEnd
	}
	if !g.Reachable(g.Start)[g.End] {
		return fmt.Errorf("%w: %s -> %s", ErrUnreachable, g.Start, g.End)
	}
	return nil
}

// Render draws the maze as text, one character per node.
// Cells of the path are drawn with '*' unless they are start or end.
func (g *GridEnvironment) Render(path *types.Path) string {
	onPath := make(map[types.Cell]bool)
	if path != nil {
		for _, c := range path.Cells {
			onPath[c] = true
		}
	}

	b := new(strings.Builder)
	for i := 0; i < g.Height; i++ {
		for j := 0; j < g.Width; j++ {
			b.WriteByte(g.symbol(types.Cell{Row: i, Col: j}, onPath))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (g *GridEnvironment) symbol(c types.Cell, onPath map[types.Cell]bool) byte {
	switch {
	case !g.open[c]:
		return wallSymbol
	case c == g.Start:
		return startSymbol
	case c == g.End:
		return endSymbol
	case onPath[c]:
		return pathSymbol
	}
	switch g.RewardAt(c).Kind {
	case types.Treasure:
		return treasureSymbol
	case types.Hazard:
		return hazardSymbol
	}
	return openSymbol
}

func (g *GridEnvironment) String() string {
	return g.Render(nil)
}
