package core

import "fmt"

// Position represents a cell on the lawn
type Position struct {
	X, Y int
}

// NewPosition creates a new position with the given x and y values
func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}

// Add returns a new position that is the sum of this position and another
func (p Position) Add(other Position) Position {
	return Position{
		X: p.X + other.X,
		Y: p.Y + other.Y,
	}
}

// Move returns a new position one step away in the given heading.
// An invalid heading leaves the position unchanged.
func (p Position) Move(h Heading) Position {
	if !h.Valid() {
		return p
	}
	return p.Add(headingVectors[h])
}

// String returns a string representation of the position
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
