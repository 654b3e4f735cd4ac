package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	var received *Event
	bus.Subscribe(EventBookingApproved, func(event *Event) error {
		received = event
		return nil
	})

	err := bus.PublishJSON(EventBookingApproved, BookingEventPayload{BookingID: 5, Status: "APPROVED"})
	require.NoError(t, err)
	require.NotNil(t, received)
	assert.Equal(t, EventBookingApproved, received.Type)
	assert.False(t, received.CreatedAt.IsZero())

	var decoded BookingEventPayload
	require.NoError(t, received.Decode(&decoded))
	assert.Equal(t, int64(5), decoded.BookingID)
	assert.Equal(t, "APPROVED", decoded.Status)
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()
	var order []int

	bus.Subscribe("event", func(_ *Event) error { order = append(order, 1); return nil })
	bus.Subscribe("event", func(_ *Event) error { order = append(order, 2); return nil })

	require.NoError(t, bus.Publish(&Event{Type: "event"}))
	assert.Equal(t, []int{1, 2}, order)
}

func TestEventBusHandlerErrors(t *testing.T) {
	bus := NewEventBus()
	boom := errors.New("boom")
	called := false

	bus.Subscribe("event", func(_ *Event) error { return boom })
	bus.Subscribe("event", func(_ *Event) error { called = true; return nil })

	err := bus.Publish(&Event{Type: "event"})
	assert.ErrorIs(t, err, boom)
	assert.True(t, called)
}

func TestEventBusNoSubscribers(t *testing.T) {
	bus := NewEventBus()
	assert.NoError(t, bus.Publish(&Event{Type: "unknown"}))
	assert.NoError(t, bus.PublishJSON("unknown", nil))

	var nilBus *EventBus
	assert.NoError(t, nilBus.PublishJSON("unknown", nil))
}

func TestNewJSONEvent(t *testing.T) {
	event, err := NewJSONEvent(EventCommentAdded, CommentEventPayload{CommentID: 9})
	require.NoError(t, err)
	assert.Equal(t, EventCommentAdded, event.Type)

	var decoded CommentEventPayload
	require.NoError(t, event.Decode(&decoded))
	assert.Equal(t, int64(9), decoded.CommentID)

	_, err = NewJSONEvent("bad", make(chan int))
	assert.Error(t, err)
}
