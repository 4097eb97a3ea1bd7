package database

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gametrackr/backend/internal/models"
)

// Seed fills empty tables with sample data so a fresh install is usable
// immediately. Seeding is best effort: failures are logged and never block
// startup.
func Seed(db *gorm.DB) {
	seedAdminUser(db)
	seedGenres(db)
	seedPlatforms(db)
	seedGames(db)
}

func seedAdminUser(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("seed: failed to hash admin password", "error", err)
		return
	}

	user := models.User{Username: "admin", Email: "admin@games.com", Password: string(hash)}
	if err := db.Create(&user).Error; err != nil {
		slog.Error("seed: failed to create admin user", "error", err)
		return
	}
	slog.Info("seed: admin user created", "username", user.Username)
}

func seedGenres(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Genre{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	genres := []models.Genre{
		{Name: "Action", Description: strPtr("High-energy games with combat and challenges")},
		{Name: "Adventure", Description: strPtr("Story-driven exploration games")},
		{Name: "RPG", Description: strPtr("Role-playing games with character development")},
		{Name: "Strategy", Description: strPtr("Strategic thinking and planning games")},
		{Name: "Shooter", Description: strPtr("First or third-person shooting games")},
		{Name: "Sports", Description: strPtr("Athletic and competitive sports games")},
		{Name: "Racing", Description: strPtr("Vehicle racing and driving games")},
		{Name: "Puzzle", Description: strPtr("Logic and problem-solving games")},
		{Name: "Platform", Description: strPtr("Jump and run platform games")},
		{Name: "Fighting", Description: strPtr("Combat and martial arts games")},
	}
	if err := db.Create(&genres).Error; err != nil {
		slog.Error("seed: failed to create genres", "error", err)
		return
	}
	slog.Info("seed: sample genres created", "count", len(genres))
}

func seedPlatforms(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Platform{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	platforms := []models.Platform{
		{Name: "PlayStation 5", Manufacturer: strPtr("Sony"), ReleaseYear: intPtr(2020)},
		{Name: "Xbox Series X", Manufacturer: strPtr("Microsoft"), ReleaseYear: intPtr(2020)},
		{Name: "Nintendo Switch", Manufacturer: strPtr("Nintendo"), ReleaseYear: intPtr(2017)},
		{Name: "PC", Manufacturer: strPtr("Various")},
		{Name: "PlayStation 4", Manufacturer: strPtr("Sony"), ReleaseYear: intPtr(2013)},
		{Name: "Xbox One", Manufacturer: strPtr("Microsoft"), ReleaseYear: intPtr(2013)},
		{Name: "Steam Deck", Manufacturer: strPtr("Valve"), ReleaseYear: intPtr(2022)},
		{Name: "Mobile", Manufacturer: strPtr("Various")},
	}
	if err := db.Create(&platforms).Error; err != nil {
		slog.Error("seed: failed to create platforms", "error", err)
		return
	}
	slog.Info("seed: sample platforms created", "count", len(platforms))
}

func seedGames(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Game{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	genreID := func(name string) (uint, bool) {
		var g models.Genre
		if err := db.Where("name = ?", name).First(&g).Error; err != nil {
			return 0, false
		}
		return g.ID, true
	}
	platformID := func(name string) (uint, bool) {
		var p models.Platform
		if err := db.Where("name = ?", name).First(&p).Error; err != nil {
			return 0, false
		}
		return p.ID, true
	}

	action, ok1 := genreID("Action")
	rpg, ok2 := genreID("RPG")
	adventure, ok3 := genreID("Adventure")
	ps5, ok4 := platformID("PlayStation 5")
	pc, ok5 := platformID("PC")
	nsw, ok6 := platformID("Nintendo Switch")
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6) {
		slog.Warn("seed: referenced genres or platforms missing, skipping games")
		return
	}

	games := []models.Game{
		{
			Name:        "God of War Ragnarök",
			Description: strPtr("Kratos and Atreus journey through the Nine Realms"),
			Rating:      floatPtr(9.5),
			ReleaseDate: datePtr(2022, time.November, 9),
			Developer:   strPtr("Santa Monica Studio"),
			Publisher:   strPtr("Sony Interactive Entertainment"),
			GenreID:     action,
			PlatformID:  ps5,
		},
		{
			Name:        "The Witcher 3: Wild Hunt",
			Description: strPtr("Geralt of Rivia hunts the Wild Hunt across a war-torn continent"),
			Rating:      floatPtr(9.8),
			ReleaseDate: datePtr(2015, time.May, 19),
			Developer:   strPtr("CD Projekt Red"),
			Publisher:   strPtr("CD Projekt"),
			GenreID:     rpg,
			PlatformID:  pc,
		},
		{
			Name:        "The Legend of Zelda: Tears of the Kingdom",
			Description: strPtr("Link explores the skies and depths of Hyrule"),
			Rating:      floatPtr(9.6),
			ReleaseDate: datePtr(2023, time.May, 12),
			Developer:   strPtr("Nintendo EPD"),
			Publisher:   strPtr("Nintendo"),
			GenreID:     adventure,
			PlatformID:  nsw,
		},
	}
	if err := db.Create(&games).Error; err != nil {
		slog.Error("seed: failed to create games", "error", err)
		return
	}
	slog.Info("seed: sample games created", "count", len(games))
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func floatPtr(f float64) *float64 {
	return &f
}
func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}
