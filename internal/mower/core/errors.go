package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLawnSize = errors.New("invalid lawn size")
	ErrInvalidMower    = errors.New("invalid mower")
	ErrInvalidHeading  = errors.New("invalid heading")
	ErrOutOfBounds     = errors.New("position outside the lawn")
	ErrUnknownCommand  = errors.New("unknown command")
)

// UnknownCommandError reports the first unrecognized byte of a command string.
type UnknownCommandError struct {
	Offset  int
	Command Command
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q at offset %d", byte(e.Command), e.Offset)
}

func (e *UnknownCommandError) Unwrap() error { return ErrUnknownCommand }
