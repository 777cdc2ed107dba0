package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/mowitnow/internal/mower/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.logLevel).
		Str("event_type", event.Type()).
		Str("run_id", event.RunID()).
		Time("timestamp", event.Timestamp())

	switch e := event.(type) {
	case *events.SimulationStartedEvent:
		logEvent.
			Int("lawn_width", e.Lawn.Width).
			Int("lawn_height", e.Lawn.Height).
			Int("num_mowers", e.NumMowers).
			Bool("parallel", e.Parallel)

	case *events.SimulationFinishedEvent:
		logEvent.
			Int("num_mowers", e.NumMowers).
			AnErr("failure", e.Err)

	case *events.MowerStartedEvent:
		logEvent.
			Int("mower", e.Index).
			Stringer("start", e.Start).
			Int("commands", len(e.Commands))

	case *events.StepEvent:
		logEvent.
			Int("mower", e.Index).
			Int("offset", e.Offset).
			Stringer("command", e.Command).
			Stringer("from", e.From).
			Stringer("to", e.To)

	case *events.MowerFinishedEvent:
		logEvent.
			Int("mower", e.Index).
			Stringer("final", e.Final).
			Int("blocked", e.Blocked).
			Int("ignored", e.Ignored)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Simulation event")
}
