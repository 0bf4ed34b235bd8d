package service_test

import (
	"testing"
	"time"

	"recipe-service/pkg/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setup in-memory DB with the same schema and error translation as production
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
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
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createProfile(t *testing.T, db *gorm.DB, username string) *models.Profile {
	t.Helper()
	p := models.Profile{Username: username, FullName: username + " Test"}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("failed to create profile %s: %v", username, err)
	}
	return &p
}

func createRecipe(t *testing.T, db *gorm.DB, userID *uuid.UUID, title string) *models.Recipe {
	t.Helper()
	r := models.Recipe{
		UserID:   userID,
		Title:    title,
		Category: "Main Course",
	}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("failed to create recipe %s: %v", title, err)
	}
	return &r
}

func countNotifications(t *testing.T, db *gorm.DB, userID uuid.UUID) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Notification{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count notifications: %v", err)
	}
	return count
}
