// Package migrations manages the database schema with gormigrate.
package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/alphacoop/gateway-settings-api/migrations/internal/m20250601"
	"github.com/alphacoop/gateway-settings-api/migrations/internal/m20250723"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID:       m20250601.ID,
			Migrate:  m20250601.Migrate,
			Rollback: m20250601.Rollback,
		},
		{
			ID:       m20250723.ID,
			Migrate:  m20250723.Migrate,
			Rollback: m20250723.Rollback,
		},
	}
}

// Migrate runs all pending migrations.
func Migrate(db *gorm.DB) error {
	return gormigrate.New(db, gormigrate.DefaultOptions, List()).Migrate()
}
