package types

import "fmt"

// Cell is a coordinate (row, column) in the maze node grid
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) Hash() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

func (c Cell) String() string {
	return c.Hash()
}

// Less orders cells row-major
func (c Cell) Less(other Cell) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}

// Move returns the cell adjacent to c in direction d.
// It does not check whether the cell is traversable.
func (c Cell) Move(d Direction) Cell {
	off := d.Offset()
	return Cell{Row: c.Row + off.Row, Col: c.Col + off.Col}
}
