package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/storage"
)

// RunMigrations creates the tables used by the sql storage driver.
func RunMigrations(db *gorm.DB) error {
	if err := storage.NewSQLStore(db).Migrate(); err != nil {
		return fmt.Errorf("failed to migrate kv_entries: %w", err)
	}
	return nil
}
