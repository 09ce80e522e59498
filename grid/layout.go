package grid

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zeu5/pathfinder-rl/types"
)

var ErrInvalidLayout = errors.New("invalid maze layout")

const (
	wallSymbol     = '#'
	openSymbol     = '.'
	startSymbol    = 'S'
	endSymbol      = 'E'
	treasureSymbol = 'T'
	hazardSymbol   = 'H'
	pathSymbol     = '*'
)

// ParseLayout builds a maze from text, one row per line.
// '#' is a wall, '.' open, 'S' the start, 'E' the end, 'T' a treasure worth
// treasure and 'H' a hazard worth hazard. Blank lines and surrounding spaces are ignored.
func ParseLayout(layout string, treasure, hazard float64) (*GridEnvironment, error) {
	rows := make([]string, 0)
	for _, line := range strings.Split(layout, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidLayout)
	}

	width := len(rows[0])
	g := NewGridEnvironment(len(rows), width)
	starts, ends := 0, 0
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidLayout, i, len(row), width)
		}
		for j := 0; j < width; j++ {
			c := types.Cell{Row: i, Col: j}
			switch row[j] {
			case wallSymbol:
				continue
			case openSymbol:
			case startSymbol:
				g.Start = c
				starts++
			case endSymbol:
				g.End = c
				ends++
			case treasureSymbol:
				g.rewards[c] = types.TreasureOf(treasure)
			case hazardSymbol:
				g.rewards[c] = types.HazardOf(hazard)
			default:
				return nil, fmt.Errorf("%w: unknown symbol %q at %s", ErrInvalidLayout, row[j], c)
			}
			g.open[c] = true
		}
	}
	if starts != 1 || ends != 1 {
		return nil, fmt.Errorf("%w: expected one start and one end, found %d and %d", ErrInvalidLayout, starts, ends)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	return g, nil
}

// ReadLayout parses the layout stored in the file at path
func ReadLayout(path string, treasure, hazard float64) (*GridEnvironment, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLayout(string(bs), treasure, hazard)
}
