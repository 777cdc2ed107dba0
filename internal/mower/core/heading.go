package core

// Heading is the cardinal direction a mower faces.
// The constants are declared in clockwise order so rotation is modular arithmetic.
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

const headingCount = 4

var headingCodes = [headingCount]string{
	North: "N",
	East:  "E",
	South: "S",
	West:  "W",
}

// headingVectors holds the unit step for each heading. North increases Y.
var headingVectors = [headingCount]Position{
	North: {X: 0, Y: 1},
	East:  {X: 1, Y: 0},
	South: {X: 0, Y: -1},
	West:  {X: -1, Y: 0},
}

// ParseHeading converts a single-letter code (N, E, S, W) into a Heading
func ParseHeading(code string) (Heading, error) {
	for h, c := range headingCodes {
		if c == code {
			return Heading(h), nil
		}
	}
	return 0, ErrInvalidHeading
}

// Valid reports whether h is one of the four cardinal headings
func (h Heading) Valid() bool {
	return h >= North && h <= West
}

// Left rotates counterclockwise by a quarter turn
func (h Heading) Left() Heading {
	return (h + headingCount - 1) % headingCount
}

// Right rotates clockwise by a quarter turn
func (h Heading) Right() Heading {
	return (h + 1) % headingCount
}

// Code returns the single-letter code of the heading
func (h Heading) Code() string {
	if !h.Valid() {
		return "?"
	}
	return headingCodes[h]
}

func (h Heading) String() string { return h.Code() }
