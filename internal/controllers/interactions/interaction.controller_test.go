package interactionController

import (
	"context"
	"errors"
	"strings"
	"testing"

	"globeswap/internal/database"
	"globeswap/internal/events"
	. "globeswap/internal/models"
	"globeswap/internal/repositories"
	"globeswap/internal/services"
	"globeswap/internal/testutil"
	"globeswap/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupController(t *testing.T) (InteractionControllerInterface, database.DB) {
	t.Helper()

	db := testutil.NewDB(t)
	cfg := testutil.Config()

	return New(repositories.New(db), services.New(db, cfg), events.New(nil), cfg, db), db
}

func TestInteractionController_Create(t *testing.T) {
	controller, db := setupController(t)
	host := testutil.CreateUser(t, db, "host")
	guest := testutil.CreateUser(t, db, "guest")
	trip := testutil.CreateListing(t, db, host, "Kyoto", true)
	ctx := context.Background()

	interaction, err := controller.Create(ctx, guest, trip.ID, "  Could I stay in July?  ")
	require.NoError(t, err)

	assert.Equal(t, trip.ID, interaction.TripID)
	assert.Equal(t, guest.ID, interaction.SenderID)
	assert.Equal(t, host.ID, interaction.RecipientID)
	assert.Equal(t, InteractionStatusPending, interaction.Status)
	assert.Equal(t, "Could I stay in July?", interaction.Message)
}

func TestInteractionController_CreateRejects(t *testing.T) {
	controller, db := setupController(t)
	host := testutil.CreateUser(t, db, "host")
	guest := testutil.CreateUser(t, db, "guest")
	trip := testutil.CreateListing(t, db, host, "Kyoto", true)
	ctx := context.Background()

	tests := []struct {
		name     string
		sender   *User
		tripID   uint
		message  string
		expected error
	}{
		{"own listing", host, trip.ID, "hi", types.ErrSelfInteraction},
		{"missing listing", guest, 999, "hi", types.ErrNotFound},
		{"message too long", guest, trip.ID, strings.Repeat("m", MaxMessageLength+1), types.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := controller.Create(ctx, tt.sender, tt.tripID, tt.message)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
		})
	}

	assert.Equal(t, int64(0), testutil.Count(t, db, &Interaction{}))
}

func TestInteractionController_GetTarget(t *testing.T) {
	controller, db := setupController(t)
	host := testutil.CreateUser(t, db, "host")
	guest := testutil.CreateUser(t, db, "guest")
	trip := testutil.CreateListing(t, db, host, "Kyoto", true)

	target, err := controller.GetTarget(context.Background(), guest, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kyoto", target.Destination)
	require.NotNil(t, target.SkillSwap)

	_, err = controller.GetTarget(context.Background(), host, trip.ID)
	assert.True(t, errors.Is(err, types.ErrSelfInteraction))
}

func TestInteractionController_UpdateStatus(t *testing.T) {
	controller, db := setupController(t)
	host := testutil.CreateUser(t, db, "host")
	guest := testutil.CreateUser(t, db, "guest")
	trip := testutil.CreateListing(t, db, host, "Kyoto", true)
	ctx := context.Background()

	pending := testutil.CreateInteraction(t, db, trip, guest)

	t.Run("sender cannot decide", func(t *testing.T) {
		_, err := controller.UpdateStatus(ctx, guest, pending.ID, "Accepted")
		assert.True(t, errors.Is(err, types.ErrAuthorization))
		assert.Equal(t, "only the recipient can respond to this request", types.Reason(err))
	})

	t.Run("pending is not a decision", func(t *testing.T) {
		_, err := controller.UpdateStatus(ctx, host, pending.ID, "Pending")
		assert.True(t, errors.Is(err, types.ErrInvalidTransition))
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := controller.UpdateStatus(ctx, host, pending.ID, "maybe")
		assert.True(t, errors.Is(err, types.ErrInvalidTransition))
	})

	t.Run("recipient accepts", func(t *testing.T) {
		updated, err := controller.UpdateStatus(ctx, host, pending.ID, "Accepted")
		require.NoError(t, err)
		assert.Equal(t, InteractionStatusAccepted, updated.Status)

		var stored Interaction
		require.NoError(t, db.SQL.First(&stored, pending.ID).Error)
		assert.Equal(t, InteractionStatusAccepted, stored.Status)
	})

	t.Run("terminal status cannot change", func(t *testing.T) {
		_, err := controller.UpdateStatus(ctx, host, pending.ID, "Rejected")
		assert.True(t, errors.Is(err, types.ErrInvalidTransition))
		assert.Equal(t, "request has already been Accepted", types.Reason(err))
	})

	t.Run("missing interaction", func(t *testing.T) {
		_, err := controller.UpdateStatus(ctx, host, 999, "Accepted")
		assert.True(t, errors.Is(err, types.ErrNotFound))
	})
}

// Host offers lodging, a guest asks, the host accepts and the guest cannot
// overturn the decision.
func TestInteractionController_HostAcceptsGuestRequest(t *testing.T) {
	db := testutil.NewDB(t)
	cfg := testutil.Config()
	repos := repositories.New(db)
	svc := services.New(db, cfg)
	controller := New(repos, svc, events.New(nil), cfg, db)
	ctx := context.Background()

	host := testutil.CreateUser(t, db, "host")
	guest := testutil.CreateUser(t, db, "guest")
	trip := testutil.CreateListing(t, db, host, "Oaxaca", true)

	interaction, err := controller.Create(ctx, guest, trip.ID, "")
	require.NoError(t, err)
	assert.Equal(t, host.ID, interaction.RecipientID)

	accepted, err := controller.UpdateStatus(ctx, host, interaction.ID, "accept")
	require.NoError(t, err)
	assert.Equal(t, InteractionStatusAccepted, accepted.Status)

	_, err = controller.UpdateStatus(ctx, guest, interaction.ID, "reject")
	assert.True(t, errors.Is(err, types.ErrAuthorization))
}
