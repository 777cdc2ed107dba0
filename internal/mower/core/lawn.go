package core

// Lawn is the mowable rectangle. Both bounds are inclusive, so a 5x5 lawn
// has 6x6 cells with coordinates 0..5 on each axis.
type Lawn struct {
	Width, Height int
}

// NewLawn returns a lawn or ErrInvalidLawnSize when a bound is not positive
func NewLawn(width, height int) (Lawn, error) {
	if width <= 0 || height <= 0 {
		return Lawn{}, ErrInvalidLawnSize
	}
	return Lawn{Width: width, Height: height}, nil
}

// Contains checks if the position lies within the lawn bounds
func (l Lawn) Contains(p Position) bool {
	return p.X >= 0 && p.X <= l.Width && p.Y >= 0 && p.Y <= l.Height
}
