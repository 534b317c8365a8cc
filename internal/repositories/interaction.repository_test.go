package repositories

import (
	"context"
	"errors"
	"testing"

	. "globeswap/internal/models"
	"globeswap/internal/testutil"
	"globeswap/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteractionRepository_UpdateStatus(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewInteractionRepository()
	ctx := context.Background()

	host := testutil.CreateUser(t, db, "host")
	guest := testutil.CreateUser(t, db, "guest")
	trip := testutil.CreateListing(t, db, host, "Porto", true)
	interaction := testutil.CreateInteraction(t, db, trip, guest)

	require.NoError(t, repo.UpdateStatus(
		ctx,
		db.SQL,
		interaction.ID,
		InteractionStatusPending,
		InteractionStatusAccepted,
	))

	// a second decision read the row while it was still Pending
	err := repo.UpdateStatus(
		ctx,
		db.SQL,
		interaction.ID,
		InteractionStatusPending,
		InteractionStatusRejected,
	)
	assert.True(t, errors.Is(err, types.ErrInvalidTransition))
	assert.Equal(t, "interaction is no longer Pending", types.Reason(err))

	stored, err := repo.GetByID(ctx, db.SQL, interaction.ID)
	require.NoError(t, err)
	assert.Equal(t, InteractionStatusAccepted, stored.Status)
}

func TestInteractionRepository_UpdateStatusMissingRow(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewInteractionRepository()

	err := repo.UpdateStatus(
		context.Background(),
		db.SQL,
		404,
		InteractionStatusPending,
		InteractionStatusAccepted,
	)
	assert.True(t, errors.Is(err, types.ErrInvalidTransition))
}
