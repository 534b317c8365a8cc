package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishWithoutValkeyNotifiesLocalHandlers(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	received := make(chan Event, 1)
	require.NoError(t, bus.Subscribe(LISTING_CHANNEL, func(event Event) error {
		received <- event
		return nil
	}))

	require.NoError(t, bus.PublishListing(LISTING_CREATED, 3, 9, true))

	select {
	case event := <-received:
		assert.Equal(t, LISTING_CREATED, event.Type)
		assert.Equal(t, LISTING_CHANNEL, event.Channel)
		assert.Equal(t, uint(3), event.UserID)
		assert.Equal(t, uint(9), event.Data["tripId"])
		assert.NotEmpty(t, event.ID)
		assert.False(t, event.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("handler was not notified")
	}
}

func TestEventBus_HandlersOnlySeeTheirChannel(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	received := make(chan Event, 1)
	require.NoError(t, bus.Subscribe(INTERACTION_CHANNEL, func(event Event) error {
		received <- event
		return nil
	}))

	require.NoError(t, bus.PublishListing(LISTING_DELETED, 1, 2, false))
	require.NoError(t, bus.PublishInteraction(INTERACTION_CREATED, 1, 5, 2, "Pending"))

	select {
	case event := <-received:
		assert.Equal(t, INTERACTION_CREATED, event.Type)
		assert.Equal(t, "Pending", event.Data["status"])
	case <-time.After(time.Second):
		t.Fatal("handler was not notified")
	}

	select {
	case event := <-received:
		t.Fatalf("unexpected event %s", event.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEventBus_SubscribeLocalSkipsRelayedEvents(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	all := make(chan Event, 2)
	local := make(chan Event, 2)
	require.NoError(t, bus.Subscribe(LISTING_CHANNEL, func(event Event) error {
		all <- event
		return nil
	}))
	require.NoError(t, bus.SubscribeLocal(LISTING_CHANNEL, func(event Event) error {
		local <- event
		return nil
	}))

	// as listenToChannel delivers an event published by another instance
	bus.notifyLocalHandlers(LISTING_CHANNEL, Event{
		ID:      "remote",
		Type:    LISTING_CREATED,
		Channel: LISTING_CHANNEL,
		Source:  "another-instance",
	})

	select {
	case event := <-all:
		assert.Equal(t, "remote", event.ID)
	case <-time.After(time.Second):
		t.Fatal("handler was not notified")
	}

	require.NoError(t, bus.PublishListing(LISTING_UPDATED, 1, 2, false))

	select {
	case event := <-local:
		assert.Equal(t, LISTING_UPDATED, event.Type)
	case <-time.After(time.Second):
		t.Fatal("local handler was not notified")
	}

	select {
	case event := <-local:
		t.Fatalf("local handler saw relayed event %s", event.ID)
	case <-time.After(50 * time.Millisecond):
	}
}
