package types

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownDirection = errors.New("unknown direction")

// Direction is one of the four cardinal moves.
// The declaration order is also the tie-break order for greedy choices.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var AllDirections = []Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

func (d Direction) Hash() string {
	return d.String()
}

// Offset of the move in (row, col). Up decreases the row.
func (d Direction) Offset() Cell {
	switch d {
	case Up:
		return Cell{Row: -1, Col: 0}
	case Down:
		return Cell{Row: 1, Col: 0}
	case Left:
		return Cell{Row: 0, Col: -1}
	case Right:
		return Cell{Row: 0, Col: 1}
	}
	return Cell{}
}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

func ParseDirection(s string) (Direction, error) {
	for _, d := range AllDirections {
		if strings.EqualFold(d.String(), s) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDirection, int(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
