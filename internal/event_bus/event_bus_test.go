package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishInSubscriptionOrder(t *testing.T) {
	bus := NewEventBus()
	var calls []string
	bus.Subscribe(CitaRegistradaType, func(e Event) error {
		calls = append(calls, "first")
		return nil
	})
	bus.Subscribe(CitaRegistradaType, func(e Event) error {
		calls = append(calls, "second")
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), CitaRegistradaType, CitaRegistrada{ID: "1"}))

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	unsubscribe := bus.Subscribe(CitasBorradasType, func(e Event) error {
		calls++
		return nil
	})
	unsubscribe()

	require.NoError(t, bus.Publish(NewEvent(context.Background(), CitasBorradasType, CitasBorradas{Removed: 2})))
	assert.Equal(t, 0, calls)
}

func TestEventBus_CollectsErrorsAndPanics(t *testing.T) {
	bus := NewEventBus()
	reached := false
	bus.Subscribe(CitasBorradasType, func(e Event) error { return errors.New("boom") })
	bus.Subscribe(CitasBorradasType, func(e Event) error { panic("kaput") })
	bus.Subscribe(CitasBorradasType, func(e Event) error {
		reached = true
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), CitasBorradasType, CitasBorradas{}))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "2 handler(s) failed")
	assert.True(t, reached)
}

func TestEventBus_CancelledContext(t *testing.T) {
	bus := NewEventBus()
	bus.Subscribe(CitaRegistradaType, func(e Event) error {
		t.Fatal("handler must not run")
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bus.Publish(NewEvent(ctx, CitaRegistradaType, CitaRegistrada{}))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubscribeTyped(t *testing.T) {
	bus := NewEventBus()
	var got []CitaRegistrada
	SubscribeTyped(bus, CitaRegistradaType, func(ctx context.Context, payload CitaRegistrada) error {
		got = append(got, payload)
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), CitaRegistradaType, CitaRegistrada{ID: "abc"})))
	require.NoError(t, bus.Publish(NewEvent(context.Background(), CitaRegistradaType, "not a cita")))

	assert.Equal(t, []CitaRegistrada{{ID: "abc"}}, got)
}
