package database

import (
	"globeswap/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// ModelsToMigrate is ordered parents first so foreign keys resolve.
var ModelsToMigrate = []any{
	&models.User{},
	&models.Trip{},
	&models.SkillSwap{},
	&models.Interaction{},
}

// MigrateModels runs GORM AutoMigrate for all models
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	for _, model := range ModelsToMigrate {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("Failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes creates the ordering indexes used by the marketplace and
// dashboard queries.
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")
	log.Info("Creating additional database indexes")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_trips_offer_created_at ON trips(is_accommodation_offer, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_trips_user_created_at ON trips(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_interactions_sender_created_at ON interactions(sender_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_interactions_recipient_created_at ON interactions(recipient_id, created_at DESC)",
	}

	for _, indexSQL := range indexes {
		if err := db.SQL.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", "sql", indexSQL, "error", err)
		}
	}

	log.Info("Additional database indexes created")
	return nil
}
