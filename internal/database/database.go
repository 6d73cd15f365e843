package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/runmacros/backend/config"
)

// New opens the PostgreSQL connection and configures the pool.
func New(cfg *config.Config) (*gorm.DB, error) {
	log.Printf("[DB] Connecting to database at %s:%s as user %s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error accessing database pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	log.Printf("[DB] Successfully connected to database")
	return db, nil
}
