// Package testutil provides shared test fixtures for backend tests.
package testutil

import (
	"testing"

	"simonev/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an in-memory sqlite database with the full schema migrated.
// Each call returns an isolated database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Skpd{},
		&models.User{},
		&models.KategoriKonten{},
		&models.Content{},
		&models.Verification{},
		&models.Notification{},
		&models.ActivityLog{},
	); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}
	return db
}
