package core

// Command is a single movement instruction
type Command byte

const (
	TurnLeft  Command = 'G'
	TurnRight Command = 'D'
	Advance   Command = 'A'
)

// Known reports whether c is one of the recognized commands
func (c Command) Known() bool {
	switch c {
	case TurnLeft, TurnRight, Advance:
		return true
	}
	return false
}

func (c Command) String() string { return string(rune(c)) }

// ValidateCommands returns an *UnknownCommandError for the first unrecognized
// byte in commands, or nil when every byte is a known command.
func ValidateCommands(commands string) error {
	for i := 0; i < len(commands); i++ {
		if c := Command(commands[i]); !c.Known() {
			return &UnknownCommandError{Offset: i, Command: c}
		}
	}
	return nil
}
