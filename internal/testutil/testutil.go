// Package testutil builds in-memory stores and fixtures for package tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"globeswap/config"
	"globeswap/internal/database"
	"globeswap/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const Password = "correct horse battery"

// NewDB opens a private in-memory sqlite database with foreign keys enforced
// and the full schema migrated. A single connection is used, so callers must
// not query outside an open transaction until it finishes.
func NewDB(t *testing.T) database.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), database.GormConfig())
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db := database.NewFromGorm(gormDB)
	require.NoError(t, db.MigrateModels())
	require.NoError(t, db.CreateIndexes())

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func Config() config.Config {
	return config.Config{
		Environment:                "test",
		ServerPort:                 8288,
		SessionSecret:              strings.Repeat("t", config.MinSessionSecretLength),
		SessionTTLHours:            1,
		MarketplaceCacheTTLSeconds: 0,
	}
}

// CreateUser inserts a user whose password is Password.
func CreateUser(t *testing.T, db database.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
	}
	require.NoError(t, db.SQL.Create(user).Error)

	return user
}

func Date(value string) datatypes.Date {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}
	return datatypes.Date(parsed)
}

// CreateListing inserts a trip and its skill swap directly, bypassing the
// orientation mapping.
func CreateListing(
	t *testing.T,
	db database.DB,
	owner *models.User,
	destination string,
	isOffer bool,
) *models.Trip {
	t.Helper()

	trip := &models.Trip{
		Destination:          destination,
		StartDate:            Date("2025-06-01"),
		EndDate:              Date("2025-06-10"),
		IsAccommodationOffer: isOffer,
		UserID:               owner.ID,
	}
	require.NoError(t, db.SQL.Omit("SkillSwap", "User", "Interactions").Create(trip).Error)

	swap := &models.SkillSwap{
		SkillOffered: "guitar lessons",
		SkillWanted:  "surf lessons",
		UserID:       owner.ID,
		TripID:       trip.ID,
	}
	require.NoError(t, db.SQL.Omit("User", "Trip").Create(swap).Error)
	trip.SkillSwap = swap

	return trip
}

func CreateInteraction(
	t *testing.T,
	db database.DB,
	trip *models.Trip,
	sender *models.User,
) *models.Interaction {
	t.Helper()

	interaction := &models.Interaction{
		TripID:      trip.ID,
		SenderID:    sender.ID,
		RecipientID: trip.UserID,
		Message:     "Can I stay?",
	}
	require.NoError(t, db.SQL.Omit("Trip", "Sender", "Recipient").Create(interaction).Error)

	return interaction
}

func Count(t *testing.T, db database.DB, model any) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.SQL.WithContext(context.Background()).Model(model).Count(&count).Error)
	return count
}
