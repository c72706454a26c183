package db_models

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every aggregate root.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Attraction{},
		&Trip{},
	)
}
