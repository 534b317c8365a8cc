package app

import (
	"testing"

	"globeswap/config"
	"globeswap/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithDB(t *testing.T) {
	db := testutil.NewDB(t)

	app, err := NewWithDB(testutil.Config(), db)
	require.NoError(t, err)

	assert.NotNil(t, app.EventBus)
	assert.NotNil(t, app.Controllers.Listing)
	assert.NotNil(t, app.Services.Auth)
	assert.NoError(t, app.EventBus.Close())
}

func TestNewWithDB_RejectsEmptyConfig(t *testing.T) {
	db := testutil.NewDB(t)

	_, err := NewWithDB(config.Config{}, db)
	assert.Error(t, err)
}
