package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all reference models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&Region{},
		&Sector{},
	}
}

// Migrate runs GORM AutoMigrate to create or update reference tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
