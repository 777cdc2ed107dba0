// Package simulation replays parsed mower programs on a lawn and reports
// their final states in input order.
package simulation

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mitchelldurbincs/mowitnow/internal/mower/core"
	"github.com/mitchelldurbincs/mowitnow/internal/mower/events"
	"github.com/mitchelldurbincs/mowitnow/internal/mower/parser"
)

// Options controls how programs are replayed
type Options struct {
	// Parallel replays mowers concurrently. Results keep input order.
	Parallel bool
	// Workers bounds concurrency when Parallel is set
	Workers int
	// StrictCommands rejects command strings containing unknown commands
	// instead of treating those bytes as no-ops.
	StrictCommands bool
}

// Result is the outcome of one mower's program
type Result struct {
	Index   int
	Start   core.Mower
	Final   core.Mower
	Moves   int
	Turns   int
	Blocked int
	Ignored int
}

type Engine struct {
	lawn   core.Lawn
	opts   Options
	bus    events.Publisher
	runID  string
	logger zerolog.Logger
}

// NewEngine creates an engine for one lawn. A nil publisher discards events.
func NewEngine(lawn core.Lawn, opts Options, bus events.Publisher) *Engine {
	if bus == nil {
		bus = events.Discard
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	runID := uuid.NewString()
	return &Engine{
		lawn:   lawn,
		opts:   opts,
		bus:    bus,
		runID:  runID,
		logger: log.With().Str("component", "simulation").Str("run_id", runID).Logger(),
	}
}

// RunID identifies the events published by this engine
func (e *Engine) RunID() string { return e.runID }

// Run replays every program and returns results in program order.
// The first failing program aborts the run.
func (e *Engine) Run(ctx context.Context, programs []parser.Program) ([]Result, error) {
	e.bus.Publish(events.NewSimulationStartedEvent(e.runID, e.lawn, len(programs), e.opts.Parallel))
	e.logger.Info().
		Int("lawn_width", e.lawn.Width).
		Int("lawn_height", e.lawn.Height).
		Int("mowers", len(programs)).
		Bool("parallel", e.opts.Parallel).
		Msg("Starting simulation")

	var (
		results []Result
		err     error
	)
	if e.opts.Parallel {
		results, err = e.runParallel(ctx, programs)
	} else {
		results, err = e.runSequential(ctx, programs)
	}

	e.bus.Publish(events.NewSimulationFinishedEvent(e.runID, len(programs), err))
	if err != nil {
		e.logger.Debug().Err(err).Msg("Simulation aborted")
		return nil, err
	}
	e.logger.Info().Int("mowers", len(results)).Msg("Simulation complete")
	return results, nil
}

func (e *Engine) runSequential(ctx context.Context, programs []parser.Program) ([]Result, error) {
	results := make([]Result, 0, len(programs))
	for _, p := range programs {
		r, err := e.runProgram(ctx, p)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// runParallel checks every program in input order before fanning out, so a
// rejected program is reported by the same index as in sequential mode.
func (e *Engine) runParallel(ctx context.Context, programs []parser.Program) ([]Result, error) {
	for _, p := range programs {
		if err := e.validate(p); err != nil {
			return nil, err
		}
	}

	results := make([]Result, len(programs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)

	for i, p := range programs {
		g.Go(func() error {
			r, err := e.runProgram(ctx, p)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// validate applies the strict command policy to one program
func (e *Engine) validate(p parser.Program) error {
	if !e.opts.StrictCommands {
		return nil
	}
	if err := core.ValidateCommands(p.Commands); err != nil {
		return &parser.MowerError{Index: p.Index, Err: err}
	}
	return nil
}

// runProgram replays one mower's commands through core.Step
func (e *Engine) runProgram(ctx context.Context, p parser.Program) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := e.validate(p); err != nil {
		return Result{}, err
	}

	e.bus.Publish(events.NewMowerStartedEvent(e.runID, p.Index, p.Start, p.Commands))

	res := Result{Index: p.Index, Start: p.Start}
	m := p.Start
	for i := 0; i < len(p.Commands); i++ {
		cmd := core.Command(p.Commands[i])
		next, outcome := core.Step(e.lawn, m, cmd)
		switch outcome {
		case core.Turned:
			res.Turns++
		case core.Moved:
			res.Moves++
		case core.Blocked:
			res.Blocked++
		case core.Ignored:
			res.Ignored++
		}
		e.bus.Publish(events.NewStepEvent(e.runID, p.Index, i, cmd, m, next, outcome))
		m = next
	}
	res.Final = m

	e.bus.Publish(events.NewMowerFinishedEvent(e.runID, p.Index, res.Final, res.Blocked, res.Ignored))
	e.logger.Debug().
		Int("mower", p.Index).
		Stringer("start", p.Start).
		Stringer("final", res.Final).
		Int("blocked", res.Blocked).
		Int("ignored", res.Ignored).
		Msg("Mower finished")
	return res, nil
}
