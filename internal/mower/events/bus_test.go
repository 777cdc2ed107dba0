package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/mowitnow/internal/mower/core"
)

// TestSubscriber is a test implementation of Subscriber
type TestSubscriber struct {
	id              string
	interestedTypes map[string]bool
	mu              sync.Mutex
	received        []Event
	panics          bool
}

func (s *TestSubscriber) ID() string { return s.id }

func (s *TestSubscriber) HandleEvent(e Event) {
	if s.panics {
		panic("subscriber failure")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = append(s.received, e)
}

func (s *TestSubscriber) InterestedIn(eventType string) bool {
	if s.interestedTypes == nil {
		return true
	}
	return s.interestedTypes[eventType]
}

func (s *TestSubscriber) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.received)
}

func TestEventBus(t *testing.T) {
	bus := NewEventBus()
	sub := &TestSubscriber{id: "test"}
	bus.Subscribe(sub)

	bus.Publish(NewSimulationStartedEvent("test-run", core.Lawn{Width: 5, Height: 5}, 2, false))

	require.Equal(t, 1, sub.count(), "Event should have been received")
	received := sub.received[0]
	assert.Equal(t, TypeSimulationStarted, received.Type())
	assert.Equal(t, "test-run", received.RunID())
	assert.False(t, received.Timestamp().IsZero())
}

func TestEventBusSubscriberFiltering(t *testing.T) {
	bus := NewEventBus()

	all := &TestSubscriber{id: "all"}
	blockedOnly := &TestSubscriber{
		id:              "blocked",
		interestedTypes: map[string]bool{TypeMowerBlocked: true},
	}
	bus.Subscribe(all)
	bus.Subscribe(blockedOnly)

	m := core.Mower{Position: core.Position{X: 0, Y: 0}, Heading: core.South}
	bus.Publish(NewStepEvent("r", 1, 0, core.Advance, m, m, core.Blocked))
	bus.Publish(NewStepEvent("r", 1, 1, core.TurnLeft, m, core.Mower{Heading: core.East}, core.Turned))

	assert.Equal(t, 2, all.count())
	assert.Equal(t, 1, blockedOnly.count())
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	sub := &TestSubscriber{id: "logger"}
	bus.Subscribe(sub)

	bus.Publish(NewMowerStartedEvent("r", 1, core.Mower{}, "A"))
	bus.Unsubscribe("logger")
	bus.Publish(NewMowerStartedEvent("r", 2, core.Mower{}, "A"))

	assert.Equal(t, 1, sub.count())
	assert.NotPanics(t, func() { bus.Unsubscribe("missing") })
}

func TestEventBusSubscribeReplacesSameID(t *testing.T) {
	bus := NewEventBus()
	first := &TestSubscriber{id: "logger"}
	second := &TestSubscriber{id: "logger"}
	bus.Subscribe(first)
	bus.Subscribe(second)

	bus.Publish(NewMowerStartedEvent("r", 1, core.Mower{}, ""))

	assert.Equal(t, 0, first.count())
	assert.Equal(t, 1, second.count())
}

func TestEventBusRecoversFromPanic(t *testing.T) {
	bus := NewEventBus()

	bus.Subscribe(&TestSubscriber{id: "bad", panics: true})
	good := &TestSubscriber{id: "good"}
	bus.Subscribe(good)

	assert.NotPanics(t, func() {
		bus.Publish(NewMowerStartedEvent("r", 1, core.Mower{}, "A"))
	})
	assert.Equal(t, 1, good.count())
}

func TestEventBusConcurrentPublish(t *testing.T) {
	bus := NewEventBus()
	sub := &TestSubscriber{id: "counter"}
	bus.Subscribe(sub)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bus.Publish(NewMowerStartedEvent("r", i, core.Mower{}, ""))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, sub.count())
}

func TestStepEventTypes(t *testing.T) {
	m := core.Mower{}
	assert.Equal(t, TypeMowerTurned, NewStepEvent("r", 1, 0, core.TurnRight, m, m, core.Turned).Type())
	assert.Equal(t, TypeMowerMoved, NewStepEvent("r", 1, 0, core.Advance, m, m, core.Moved).Type())
	assert.Equal(t, TypeMowerBlocked, NewStepEvent("r", 1, 0, core.Advance, m, m, core.Blocked).Type())
	assert.Equal(t, TypeCommandIgnored, NewStepEvent("r", 1, 0, core.Command('Z'), m, m, core.Ignored).Type())
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard.Publish(NewSimulationFinishedEvent("r", 0, nil))
	})
}
