package database

import (
	"gorm.io/gorm"

	"github.com/runmacros/backend/internal/models"
)

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserSettings{},
		&models.Goal{},
		&models.DayRecord{},
		&models.Recipe{},
		&models.RecipeComment{},
	)
}
