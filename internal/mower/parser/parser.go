// Package parser turns an instruction file into a validated lawn and the
// per-mower programs to replay on it.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/mowitnow/internal/mower/core"
)

var (
	ErrFileNotFound  = errors.New("instruction file does not exist")
	ErrNoMowers      = errors.New("no mower instructions")
	ErrUnpairedLines = errors.New("mower instructions must come in pairs of lines")
)

const separator = " "

// maxLineSize lets a command line grow as long as memory allows
const maxLineSize = math.MaxInt

// FileError reports a problem opening the instruction file at Path
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Path)
}

func (e *FileError) Unwrap() error { return e.Err }

// MowerError reports a failure tied to a specific mower.
// Index is 1-based, in input order.
type MowerError struct {
	Index int
	Err   error
}

func (e *MowerError) Error() string {
	return fmt.Sprintf("mower %d: %v", e.Index, e.Err)
}

func (e *MowerError) Unwrap() error { return e.Err }

// Program is one mower's starting state and the commands it must replay
type Program struct {
	Index    int
	Start    core.Mower
	Commands string
}

type Instructions struct {
	Lawn     core.Lawn
	Programs []Program
}

// ParseLawnSize reads a "<width> <height>" line
func ParseLawnSize(line string) (core.Lawn, error) {
	tokens := strings.Split(line, separator)
	if len(tokens) != 2 {
		return core.Lawn{}, fmt.Errorf("%w: expected 2 values, got %d", core.ErrInvalidLawnSize, len(tokens))
	}
	width, err := strconv.Atoi(tokens[0])
	if err != nil {
		return core.Lawn{}, fmt.Errorf("%w: width %q is not an integer", core.ErrInvalidLawnSize, tokens[0])
	}
	height, err := strconv.Atoi(tokens[1])
	if err != nil {
		return core.Lawn{}, fmt.Errorf("%w: height %q is not an integer", core.ErrInvalidLawnSize, tokens[1])
	}
	return core.NewLawn(width, height)
}

// ParseMower reads a "<x> <y> <heading>" line and checks it against the lawn
func ParseMower(line string, lawn core.Lawn) (core.Mower, error) {
	tokens := strings.Split(line, separator)
	if len(tokens) != 3 {
		return core.Mower{}, fmt.Errorf("%w: expected 3 values, got %d", core.ErrInvalidMower, len(tokens))
	}
	x, err := strconv.Atoi(tokens[0])
	if err != nil {
		return core.Mower{}, fmt.Errorf("%w: x %q is not an integer", core.ErrInvalidMower, tokens[0])
	}
	y, err := strconv.Atoi(tokens[1])
	if err != nil {
		return core.Mower{}, fmt.Errorf("%w: y %q is not an integer", core.ErrInvalidMower, tokens[1])
	}
	heading, err := core.ParseHeading(tokens[2])
	if err != nil {
		return core.Mower{}, fmt.Errorf("%w: %w %q", core.ErrInvalidMower, err, tokens[2])
	}
	m, err := core.NewMower(core.NewPosition(x, y), heading, lawn)
	if err != nil {
		return core.Mower{}, fmt.Errorf("%w: %w", core.ErrInvalidMower, err)
	}
	return m, nil
}

// ParseFile opens path and parses it. A missing file yields ErrFileNotFound.
func ParseFile(path string) (*Instructions, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FileError{Path: path, Err: ErrFileNotFound}
		}
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the size line followed by (init, commands) line pairs.
// It stops at the first invalid line.
func Parse(r io.Reader) (*Instructions, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading instructions: %w", err)
	}

	if len(lines) == 0 {
		return nil, ErrNoMowers
	}
	lawn, err := ParseLawnSize(lines[0])
	if err != nil {
		return nil, err
	}

	rest := lines[1:]
	if len(rest) == 0 {
		return nil, ErrNoMowers
	}
	if len(rest)%2 != 0 {
		return nil, fmt.Errorf("%w: %d lines after the lawn size", ErrUnpairedLines, len(rest))
	}

	res := &Instructions{
		Lawn:     lawn,
		Programs: make([]Program, 0, len(rest)/2),
	}
	for i := 0; i < len(rest); i += 2 {
		index := i/2 + 1
		start, err := ParseMower(rest[i], lawn)
		if err != nil {
			return nil, &MowerError{Index: index, Err: err}
		}
		res.Programs = append(res.Programs, Program{
			Index:    index,
			Start:    start,
			Commands: rest[i+1],
		})
	}
	return res, nil
}
