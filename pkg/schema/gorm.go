package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Region{},
		&Species{},
		&RegionalRarityCounter{},
		&Discovery{},
		&Plant{},
		&CareTask{},
		&CaretakerLink{},
		&CareLog{},
	}
}

// Migrate runs GORM AutoMigrate to create or update the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
