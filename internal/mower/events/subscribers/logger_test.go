package subscribers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/mowitnow/internal/mower/core"
	"github.com/mitchelldurbincs/mowitnow/internal/mower/events"
)

func newTestSubscriber(buf *bytes.Buffer, level zerolog.Level) *LoggerSubscriber {
	logger := zerolog.New(buf)
	return NewLoggerSubscriber("test-logger", logger, level)
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestLoggerSubscriber_ID(t *testing.T) {
	var buf bytes.Buffer
	ls := newTestSubscriber(&buf, zerolog.InfoLevel)
	assert.Equal(t, "test-logger", ls.ID())
}

func TestLoggerSubscriber_EventFilter(t *testing.T) {
	var buf bytes.Buffer
	ls := newTestSubscriber(&buf, zerolog.InfoLevel)

	assert.True(t, ls.InterestedIn(events.TypeMowerMoved))

	ls.SetEventFilter([]string{events.TypeMowerBlocked})
	assert.True(t, ls.InterestedIn(events.TypeMowerBlocked))
	assert.False(t, ls.InterestedIn(events.TypeMowerMoved))

	ls.SetEventFilter(nil)
	assert.True(t, ls.InterestedIn(events.TypeMowerMoved))
}

func TestLoggerSubscriber_StepEvent(t *testing.T) {
	var buf bytes.Buffer
	ls := newTestSubscriber(&buf, zerolog.WarnLevel)

	from := core.Mower{Position: core.Position{X: 5, Y: 5}, Heading: core.North}
	ls.HandleEvent(events.NewStepEvent("run-1", 2, 3, core.Advance, from, from, core.Blocked))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "warn", e["level"])
	assert.Equal(t, events.TypeMowerBlocked, e["event_type"])
	assert.Equal(t, "run-1", e["run_id"])
	assert.Equal(t, float64(2), e["mower"])
	assert.Equal(t, float64(3), e["offset"])
	assert.Equal(t, "A", e["command"])
	assert.Equal(t, "5 5 N", e["from"])
	assert.Equal(t, "Simulation event", e["message"])
}

func TestLoggerSubscriber_SimulationEvents(t *testing.T) {
	var buf bytes.Buffer
	ls := newTestSubscriber(&buf, zerolog.InfoLevel)

	ls.HandleEvent(events.NewSimulationStartedEvent("run-2", core.Lawn{Width: 5, Height: 4}, 3, true))
	ls.HandleEvent(events.NewSimulationFinishedEvent("run-2", 3, errors.New("boom")))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, float64(5), entries[0]["lawn_width"])
	assert.Equal(t, float64(4), entries[0]["lawn_height"])
	assert.Equal(t, true, entries[0]["parallel"])
	assert.Equal(t, "boom", entries[1]["failure"])
}

func TestLoggerSubscriber_DevMode(t *testing.T) {
	var buf bytes.Buffer
	ls := newTestSubscriber(&buf, zerolog.InfoLevel)
	ls.SetDevMode(true)

	final := core.Mower{Position: core.Position{X: 1, Y: 3}, Heading: core.North}
	ls.HandleEvent(events.NewMowerFinishedEvent("run-3", 1, final, 0, 2))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "1 3 N", entries[0]["final"])
	assert.Equal(t, float64(2), entries[0]["ignored"])
	assert.Contains(t, entries[0], "event_data")
}
