package database

import (
	"fmt"

	"github.com/sefazor/nearmeet-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// New opens the Postgres connection and runs migrations. The unique index on
// users.email comes from the model tags and is what enforces the registration
// uniqueness invariant under concurrency.
func New(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
