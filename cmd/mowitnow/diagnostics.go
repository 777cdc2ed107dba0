package main

import (
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/mowitnow/internal/mower/core"
	"github.com/mitchelldurbincs/mowitnow/internal/mower/parser"
)

// diagnose turns a failure into the message shown to the user
func diagnose(err error) string {
	var (
		mowerErr *parser.MowerError
		fileErr  *parser.FileError
	)
	switch {
	case errors.Is(err, errUsage):
		return err.Error()
	case errors.As(err, &fileErr) && errors.Is(err, parser.ErrFileNotFound):
		return fmt.Sprintf("The file %s does not exist.", fileErr.Path)
	case errors.Is(err, parser.ErrNoMowers):
		return "The file must contain the lawn size followed by at least one mower."
	case errors.Is(err, parser.ErrUnpairedLines):
		return "Each mower needs a position line followed by an instructions line."
	case errors.Is(err, core.ErrInvalidLawnSize):
		return "The lawn width and height must be greater than 0."
	case errors.As(err, &mowerErr) && errors.Is(err, core.ErrUnknownCommand):
		return fmt.Sprintf("Mower %d has an invalid instruction: %v.", mowerErr.Index, mowerErr.Err)
	case errors.As(err, &mowerErr):
		return fmt.Sprintf("Mower %d has an invalid position or heading: %v.", mowerErr.Index, mowerErr.Err)
	default:
		return err.Error()
	}
}
