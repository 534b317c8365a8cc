package dashboardController

import (
	"context"
	"testing"

	"globeswap/internal/repositories"
	"globeswap/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardController_GetDashboard(t *testing.T) {
	db := testutil.NewDB(t)
	controller := New(repositories.New(db), testutil.Config(), db)

	ana := testutil.CreateUser(t, db, "ana")
	ben := testutil.CreateUser(t, db, "ben")

	anaTrip := testutil.CreateListing(t, db, ana, "Lisbon", true)
	benTrip := testutil.CreateListing(t, db, ben, "Kyoto", false)
	older := testutil.CreateInteraction(t, db, anaTrip, ben)
	newer := testutil.CreateInteraction(t, db, anaTrip, ben)
	sent := testutil.CreateInteraction(t, db, benTrip, ana)

	dashboard, err := controller.GetDashboard(context.Background(), ana)
	require.NoError(t, err)

	assert.Equal(t, "ana", dashboard.User.Username)
	require.Len(t, dashboard.Trips, 1)
	assert.Equal(t, anaTrip.ID, dashboard.Trips[0].ID)
	require.NotNil(t, dashboard.Trips[0].SkillSwap)

	require.Len(t, dashboard.Sent, 1)
	assert.Equal(t, sent.ID, dashboard.Sent[0].ID)
	require.NotNil(t, dashboard.Sent[0].Recipient)
	assert.Equal(t, "ben", dashboard.Sent[0].Recipient.Username)

	require.Len(t, dashboard.Received, 2)
	assert.Equal(t, newer.ID, dashboard.Received[0].ID)
	assert.Equal(t, older.ID, dashboard.Received[1].ID)
	require.NotNil(t, dashboard.Received[0].Trip)
	assert.Equal(t, "Lisbon", dashboard.Received[0].Trip.Destination)
}

func TestDashboardController_EmptyForNewUser(t *testing.T) {
	db := testutil.NewDB(t)
	controller := New(repositories.New(db), testutil.Config(), db)
	user := testutil.CreateUser(t, db, "new")

	dashboard, err := controller.GetDashboard(context.Background(), user)
	require.NoError(t, err)
	assert.Empty(t, dashboard.Trips)
	assert.Empty(t, dashboard.Sent)
	assert.Empty(t, dashboard.Received)
}
