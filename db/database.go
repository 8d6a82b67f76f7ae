package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shivamkr-03/plantGuardAI/models"
)

// New opens the sqlite database at path and runs migrations. The parent
// directory is created if missing so a fresh checkout boots without setup.
func New(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	database, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(database); err != nil {
		return nil, err
	}

	log.Printf("Database initialized at: %s", path)
	return database, nil
}

// Migrate creates or updates the schema. Exposed separately so tests can run
// it against an in-memory database.
func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(&models.User{}, &models.PredictionHistory{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
