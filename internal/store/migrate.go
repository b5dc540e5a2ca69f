package store

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/realtysync/provider-sync/internal/store/schema"
)

// Models lists every table owned by the store
func Models() []interface{} {
	return []interface{}{
		&schema.Session{},
		&schema.SyncRun{},
		&schema.Block{},
		&schema.Apartment{},
		&schema.BlockDetail{},
		&schema.PayloadCache{},
		&schema.ContractState{},
		&schema.ContractChange{},
		&schema.DataQualityCheck{},
		&schema.KeyValueStore{},
	}
}

// AutoMigrate creates or updates the tables and the constraints GORM tags cannot express
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// At most one active session per provider
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_sessions_active_provider ON sessions (provider) WHERE active`).Error; err != nil {
		return fmt.Errorf("failed to create active session index: %w", err)
	}

	return nil
}
