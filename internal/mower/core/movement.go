package core

// Outcome describes what a single Step did to the mower
type Outcome int

const (
	Turned Outcome = iota
	Moved
	Blocked // advance would have left the lawn, state unchanged
	Ignored // unknown command, state unchanged
)

func (o Outcome) String() string {
	switch o {
	case Turned:
		return "turned"
	case Moved:
		return "moved"
	case Blocked:
		return "blocked"
	case Ignored:
		return "ignored"
	default:
		return "unknown"
	}
}

// Step applies one command to a mower and returns the new state.
// It depends only on its arguments. Neither a blocked advance nor an unknown
// command is an error: the mower is returned unchanged.
func Step(lawn Lawn, m Mower, cmd Command) (Mower, Outcome) {
	switch cmd {
	case TurnLeft:
		m.Heading = m.Heading.Left()
		return m, Turned
	case TurnRight:
		m.Heading = m.Heading.Right()
		return m, Turned
	case Advance:
		next := m.Position.Move(m.Heading)
		if !lawn.Contains(next) {
			return m, Blocked
		}
		m.Position = next
		return m, Moved
	default:
		return m, Ignored
	}
}

// Replay folds Step over commands from left to right
func Replay(lawn Lawn, m Mower, commands string) Mower {
	for i := 0; i < len(commands); i++ {
		m, _ = Step(lawn, m, Command(commands[i]))
	}
	return m
}
