// Command mowitnow replays mower instructions from a file and prints the
// final position and heading of every mower, one per line.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/mitchelldurbincs/mowitnow/internal/config"
	"github.com/mitchelldurbincs/mowitnow/internal/mower/events"
	"github.com/mitchelldurbincs/mowitnow/internal/mower/events/subscribers"
	"github.com/mitchelldurbincs/mowitnow/internal/mower/parser"
	"github.com/mitchelldurbincs/mowitnow/internal/mower/simulation"
	"github.com/mitchelldurbincs/mowitnow/internal/watch"
)

var errUsage = errors.New("usage: mowitnow [options] <filename>")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newCommand(stdout, stderr)
	if err := cmd.Run(ctx, args); err != nil {
		fmt.Fprintln(stderr, diagnose(err))
		return 1
	}
	return 0
}

func newCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "mowitnow",
		Usage:     "simulate lawn mowers from an instruction file",
		ArgsUsage: "<filename>",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "parallel",
				Usage: "replay mowers concurrently, output order is unchanged",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "fail on unknown movement commands instead of ignoring them",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "re-run whenever the instruction or config file changes",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errUsage
			}
			if err := loadConfig(cmd); err != nil {
				return err
			}
			cfg := config.Get()
			setupLogging(stderr, cfg.Log.Level, cfg.Log.Format)
			log.Debug().Str("config_file", config.ConfigFilePath()).Msg("Configuration loaded")

			bus := events.NewEventBus()
			configureEvents(bus, cfg.Events)

			path := cmd.Args().First()
			if !cmd.Bool("watch") {
				return simulate(ctx, path, cfg, bus, stdout)
			}
			return watchAndSimulate(ctx, path, bus, stdout, stderr)
		},
	}
}

// watchAndSimulate runs once, then again on every change to the instruction
// file or the config file, until ctx is cancelled. Failures are reported
// without stopping the watch.
func watchAndSimulate(ctx context.Context, path string, bus *events.EventBus, stdout, stderr io.Writer) error {
	var mu sync.Mutex
	rerun := func() {
		mu.Lock()
		defer mu.Unlock()
		if err := simulate(ctx, path, config.Get(), bus, stdout); err != nil {
			fmt.Fprintln(stderr, diagnose(err))
		}
	}

	if config.ConfigFilePath() != "" {
		config.WatchConfig(func(c *config.Config) {
			mu.Lock()
			setupLogging(stderr, c.Log.Level, c.Log.Format)
			configureEvents(bus, c.Events)
			mu.Unlock()
			log.Info().Msg("Configuration reloaded")
			rerun()
		}, func(err error) {
			log.Error().Err(err).Msg("Ignoring invalid configuration change")
		})
	}

	rerun()
	return watch.File(ctx, path, watch.DefaultDebounce, rerun)
}

// loadConfig initializes the config and applies command line overrides
func loadConfig(cmd *cli.Command) error {
	if err := config.Init(cmd.String("config")); err != nil {
		return err
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		if err := config.Set("log.level", lvl); err != nil {
			return err
		}
	}
	if cmd.Bool("parallel") {
		if err := config.Set("simulation.parallel", true); err != nil {
			return err
		}
	}
	if cmd.Bool("strict") {
		if err := config.Set("simulation.unknown_commands", config.PolicyReject); err != nil {
			return err
		}
	}
	return nil
}

// simulate parses the file, replays every mower and prints the final states
func simulate(ctx context.Context, path string, cfg *config.Config, bus events.Publisher, out io.Writer) error {
	ins, err := parser.ParseFile(path)
	if err != nil {
		return err
	}
	log.Info().Msgf("Lawn size is %dx%d.", ins.Lawn.Width, ins.Lawn.Height)

	engine := simulation.NewEngine(ins.Lawn, simulation.Options{
		Parallel:       cfg.Simulation.Parallel,
		Workers:        cfg.Simulation.Workers,
		StrictCommands: cfg.Simulation.StrictCommands(),
	}, bus)

	results, err := engine.Run(ctx, ins.Programs)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Fprintln(out, r.Final)
	}
	return nil
}

const eventLoggerID = "event-logger"

// configureEvents replaces the event logger on bus to match c. The logger
// picks up the current global log.Logger.
func configureEvents(bus *events.EventBus, c config.EventsConfig) {
	bus.Unsubscribe(eventLoggerID)
	if !c.Enabled {
		return
	}
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		level = zerolog.DebugLevel
	}
	sub := subscribers.NewLoggerSubscriber(eventLoggerID, log.Logger, level)
	sub.SetEventFilter(c.Filter)
	sub.SetDevMode(c.DevMode)
	bus.Subscribe(sub)
}

func setupLogging(w io.Writer, level, format string) {
	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if format == "json" {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		})
	}
}
