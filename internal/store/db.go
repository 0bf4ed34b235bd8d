// internal/store/db.go
package store

import (
	"fmt"

	"recipe-service/internal/config"
	"recipe-service/pkg/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// New opens the postgres connection and migrates the schema. TranslateError
// makes the driver surface uniqueness violations as gorm.ErrDuplicatedKey
// instead of raw driver error text.
func New(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBSSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	// Auto-migrate (safe in dev; use migrations in prod)
	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.Step{},
		&models.Rating{},
		&models.Favorite{},
		&models.Follow{},
		&models.Notification{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}
