package marketplaceController

import (
	"context"
	"testing"

	"globeswap/internal/repositories"
	"globeswap/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketplaceController_SplitsAndOrdersListings(t *testing.T) {
	db := testutil.NewDB(t)
	controller := New(repositories.New(db), testutil.Config(), db)

	ana := testutil.CreateUser(t, db, "ana")
	ben := testutil.CreateUser(t, db, "ben")

	firstSeek := testutil.CreateListing(t, db, ana, "Lisbon", false)
	offer := testutil.CreateListing(t, db, ben, "Kyoto", true)
	secondSeek := testutil.CreateListing(t, db, ben, "Lima", false)

	marketplace, err := controller.GetMarketplace(context.Background())
	require.NoError(t, err)

	require.Len(t, marketplace.Requests, 2)
	require.Len(t, marketplace.Offers, 1)

	assert.Equal(t, secondSeek.ID, marketplace.Requests[0].ID)
	assert.Equal(t, firstSeek.ID, marketplace.Requests[1].ID)
	assert.Equal(t, offer.ID, marketplace.Offers[0].ID)

	require.NotNil(t, marketplace.Offers[0].SkillSwap)
	assert.Equal(t, "guitar lessons", marketplace.Offers[0].SkillSwap.SkillOffered)
	require.NotNil(t, marketplace.Offers[0].User)
	assert.Equal(t, "ben", marketplace.Offers[0].User.Username)
	assert.Empty(t, marketplace.Offers[0].User.Email)
}

func TestMarketplaceController_Empty(t *testing.T) {
	db := testutil.NewDB(t)
	controller := New(repositories.New(db), testutil.Config(), db)

	marketplace, err := controller.GetMarketplace(context.Background())
	require.NoError(t, err)
	assert.Empty(t, marketplace.Requests)
	assert.Empty(t, marketplace.Offers)
}
