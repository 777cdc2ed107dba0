package events

import (
	"github.com/mitchelldurbincs/mowitnow/internal/mower/core"
)

// Event type constants
const (
	TypeSimulationStarted  = "simulation.started"
	TypeSimulationFinished = "simulation.finished"
	TypeMowerStarted       = "mower.started"
	TypeMowerTurned        = "mower.turned"
	TypeMowerMoved         = "mower.moved"
	TypeMowerBlocked       = "mower.blocked"
	TypeCommandIgnored     = "command.ignored"
	TypeMowerFinished      = "mower.finished"
)

// SimulationStartedEvent is published once the lawn and programs are known
type SimulationStartedEvent struct {
	BaseEvent
	Lawn      core.Lawn
	NumMowers int
	Parallel  bool
}

func NewSimulationStartedEvent(runID string, lawn core.Lawn, numMowers int, parallel bool) *SimulationStartedEvent {
	return &SimulationStartedEvent{
		BaseEvent: newBase(TypeSimulationStarted, runID),
		Lawn:      lawn,
		NumMowers: numMowers,
		Parallel:  parallel,
	}
}

// SimulationFinishedEvent is published after the last mower, or on failure
type SimulationFinishedEvent struct {
	BaseEvent
	NumMowers int
	Err       error
}

func NewSimulationFinishedEvent(runID string, numMowers int, err error) *SimulationFinishedEvent {
	return &SimulationFinishedEvent{
		BaseEvent: newBase(TypeSimulationFinished, runID),
		NumMowers: numMowers,
		Err:       err,
	}
}

// MowerStartedEvent is published before a mower replays its commands
type MowerStartedEvent struct {
	BaseEvent
	Index    int
	Start    core.Mower
	Commands string
}

func NewMowerStartedEvent(runID string, index int, start core.Mower, commands string) *MowerStartedEvent {
	return &MowerStartedEvent{
		BaseEvent: newBase(TypeMowerStarted, runID),
		Index:     index,
		Start:     start,
		Commands:  commands,
	}
}

// StepEvent describes one applied command. Its type depends on the outcome.
type StepEvent struct {
	BaseEvent
	Index   int
	Offset  int
	Command core.Command
	From    core.Mower
	To      core.Mower
	Outcome core.Outcome
}

// NewStepEvent creates the event matching the outcome of a single step
func NewStepEvent(runID string, index, offset int, cmd core.Command, from, to core.Mower, outcome core.Outcome) *StepEvent {
	return &StepEvent{
		BaseEvent: newBase(stepEventType(outcome), runID),
		Index:     index,
		Offset:    offset,
		Command:   cmd,
		From:      from,
		To:        to,
		Outcome:   outcome,
	}
}

func stepEventType(o core.Outcome) string {
	switch o {
	case core.Turned:
		return TypeMowerTurned
	case core.Moved:
		return TypeMowerMoved
	case core.Blocked:
		return TypeMowerBlocked
	default:
		return TypeCommandIgnored
	}
}

// MowerFinishedEvent carries the final state of a mower
type MowerFinishedEvent struct {
	BaseEvent
	Index   int
	Final   core.Mower
	Blocked int
	Ignored int
}

func NewMowerFinishedEvent(runID string, index int, final core.Mower, blocked, ignored int) *MowerFinishedEvent {
	return &MowerFinishedEvent{
		BaseEvent: newBase(TypeMowerFinished, runID),
		Index:     index,
		Final:     final,
		Blocked:   blocked,
		Ignored:   ignored,
	}
}
