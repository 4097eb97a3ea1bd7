package services

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gametrackr/backend/internal/apperr"
	"github.com/gametrackr/backend/internal/database"
	"github.com/gametrackr/backend/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// asAppErr fails the test unless err is an application error with the given
// status.
func asAppErr(t *testing.T, err error, status int) *apperr.Error {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with status %d, got nil", status)
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperr.Error, got %T: %v", err, err)
	}
	if appErr.Status != status {
		t.Fatalf("status = %d (%s), want %d", appErr.Status, appErr.Message, status)
	}
	return appErr
}

func mustGenre(t *testing.T, db *gorm.DB, name string) *models.Genre {
	t.Helper()
	genre := models.Genre{Name: name}
	if err := db.Create(&genre).Error; err != nil {
		t.Fatalf("create genre %q: %v", name, err)
	}
	return &genre
}

func mustPlatform(t *testing.T, db *gorm.DB, name string) *models.Platform {
	t.Helper()
	platform := models.Platform{Name: name}
	if err := db.Create(&platform).Error; err != nil {
		t.Fatalf("create platform %q: %v", name, err)
	}
	return &platform
}

func mustGame(t *testing.T, db *gorm.DB, name string, genreID, platformID uint) *models.Game {
	t.Helper()
	game := models.Game{Name: name, GenreID: genreID, PlatformID: platformID}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("create game %q: %v", name, err)
	}
	return &game
}

func strPtr(s string) *string { return &s }

func uintPtr(n uint) *uint { return &n }

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }
