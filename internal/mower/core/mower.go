package core

import "fmt"

// Mower is the full state of a single mower. It is a value type: every
// transition returns a new Mower.
type Mower struct {
	Position Position
	Heading  Heading
}

// NewMower validates a starting state against the lawn
func NewMower(p Position, h Heading, lawn Lawn) (Mower, error) {
	if !h.Valid() {
		return Mower{}, ErrInvalidHeading
	}
	if !lawn.Contains(p) {
		return Mower{}, ErrOutOfBounds
	}
	return Mower{Position: p, Heading: h}, nil
}

// String renders the state as "<x> <y> <heading>"
func (m Mower) String() string {
	return fmt.Sprintf("%d %d %s", m.Position.X, m.Position.Y, m.Heading.Code())
}
