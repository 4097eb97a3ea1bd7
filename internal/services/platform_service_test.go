package services

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gametrackr/backend/internal/dto"
	"github.com/gametrackr/backend/internal/query"
)

func TestPlatformCreateValidation(t *testing.T) {
	svc := NewPlatformService(openTestDB(t))

	tests := []struct {
		name string
		req  dto.CreatePlatformRequest
	}{
		{"missing name", dto.CreatePlatformRequest{}},
		{"short name", dto.CreatePlatformRequest{Name: "X"}},
		{"year too early", dto.CreatePlatformRequest{Name: "Atari 2600", ReleaseYear: intPtr(1969)}},
		{"year too late", dto.CreatePlatformRequest{Name: "Future Box", ReleaseYear: intPtr(time.Now().Year() + 6)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(&tt.req)
			asAppErr(t, err, fiber.StatusBadRequest)
		})
	}

	// Boundary years are accepted.
	if _, err := svc.Create(&dto.CreatePlatformRequest{Name: "Retro", ReleaseYear: intPtr(1970)}); err != nil {
		t.Errorf("year 1970 rejected: %v", err)
	}
	if _, err := svc.Create(&dto.CreatePlatformRequest{Name: "Next Gen", ReleaseYear: intPtr(time.Now().Year() + 5)}); err != nil {
		t.Errorf("currentYear+5 rejected: %v", err)
	}
}

func TestPlatformNameUniquenessIgnoresCase(t *testing.T) {
	svc := NewPlatformService(openTestDB(t))

	if _, err := svc.Create(&dto.CreatePlatformRequest{Name: "PlayStation 5"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create(&dto.CreatePlatformRequest{Name: "PLAYSTATION 5"})
	asAppErr(t, err, fiber.StatusConflict)
}

func TestPlatformManufacturerFilter(t *testing.T) {
	db := openTestDB(t)
	svc := NewPlatformService(db)

	fixtures := []dto.CreatePlatformRequest{
		{Name: "PlayStation 5", Manufacturer: strPtr("Sony")},
		{Name: "PlayStation 4", Manufacturer: strPtr("Sony")},
		{Name: "Xbox Series X", Manufacturer: strPtr("Microsoft")},
	}
	for i := range fixtures {
		if _, err := svc.Create(&fixtures[i]); err != nil {
			t.Fatalf("create %q: %v", fixtures[i].Name, err)
		}
	}

	resp, err := svc.List(&dto.PlatformListParams{Manufacturer: "sony"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.Pagination.Total != 2 {
		t.Errorf("manufacturer filter total = %d, want 2", resp.Pagination.Total)
	}
	if resp.Filters.Manufacturer != "sony" {
		t.Errorf("filters echo = %+v", resp.Filters)
	}

	// Search spans name and manufacturer.
	resp, err = svc.List(&dto.PlatformListParams{Params: query.Params{Search: "micro"}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.Pagination.Total != 1 {
		t.Errorf("search total = %d, want 1", resp.Pagination.Total)
	}
}

func TestPlatformDeleteGuard(t *testing.T) {
	db := openTestDB(t)
	svc := NewPlatformService(db)

	genre := mustGenre(t, db, "Racing")
	platform := mustPlatform(t, db, "Nintendo Switch")
	mustGame(t, db, "Mario Kart 8", genre.ID, platform.ID)

	_, err := svc.Delete(platform.ID)
	appErr := asAppErr(t, err, fiber.StatusBadRequest)
	if count, ok := appErr.Meta["gamesCount"].(int64); !ok || count != 1 {
		t.Errorf("gamesCount = %v, want 1", appErr.Meta["gamesCount"])
	}

	db.Exec("DELETE FROM games WHERE platform_id = ?", platform.ID)

	deleted, err := svc.Delete(platform.ID)
	if err != nil {
		t.Fatalf("delete after removing games: %v", err)
	}
	if deleted.Name != "Nintendo Switch" {
		t.Errorf("deleted echo = %+v", deleted)
	}
}

func TestPlatformGameCountAggregate(t *testing.T) {
	db := openTestDB(t)
	svc := NewPlatformService(db)

	genre := mustGenre(t, db, "Action")
	ps5 := mustPlatform(t, db, "PlayStation 5")
	mustPlatform(t, db, "PC")
	mustGame(t, db, "Spider-Man 2", genre.ID, ps5.ID)
	mustGame(t, db, "God of War", genre.ID, ps5.ID)

	resp, err := svc.List(&dto.PlatformListParams{IncludeGameCount: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, p := range resp.Platforms {
		want := int64(0)
		if p.Name == "PlayStation 5" {
			want = 2
		}
		if p.GameCount == nil || *p.GameCount != want {
			t.Errorf("platform %q gameCount = %v, want %d", p.Name, p.GameCount, want)
		}
	}
}
