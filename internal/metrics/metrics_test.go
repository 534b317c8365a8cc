package metrics

import (
	"testing"
	"time"

	"globeswap/internal/events"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleEvent(t *testing.T) {
	created := testutil.ToFloat64(ListingsCreated)
	accepted := testutil.ToFloat64(InteractionTransitions.WithLabelValues("Accepted"))

	assert.NoError(t, HandleEvent(events.Event{Type: events.LISTING_CREATED}))
	assert.NoError(t, HandleEvent(events.Event{
		Type: events.INTERACTION_STATUS_CHANGED,
		Data: map[string]any{"status": "Accepted"},
	}))
	assert.NoError(t, HandleEvent(events.Event{Type: "unknown"}))

	assert.Equal(t, created+1, testutil.ToFloat64(ListingsCreated))
	assert.Equal(t, accepted+1, testutil.ToFloat64(InteractionTransitions.WithLabelValues("Accepted")))
}

func TestRegisterIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestSubscribeCountsPublishedListings(t *testing.T) {
	bus := events.New(nil)
	defer bus.Close()
	require.NoError(t, Subscribe(bus))

	offered := testutil.ToFloat64(ListingsCreated)
	require.NoError(t, bus.PublishListing(events.LISTING_CREATED, 1, 2, true))

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(ListingsCreated) == offered+1
	}, time.Second, 10*time.Millisecond)
}
