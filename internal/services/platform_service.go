package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/gametrackr/backend/internal/apperr"
	"github.com/gametrackr/backend/internal/dto"
	"github.com/gametrackr/backend/internal/models"
	"github.com/gametrackr/backend/internal/query"
)

// Earliest accepted platform release year.
const minReleaseYear = 1970

var platformSpec = query.Spec{
	SearchColumns: []string{"name", "manufacturer"},
	SortColumns: map[string]string{
		"name":         "name",
		"manufacturer": "manufacturer",
		"releaseYear":  "release_year",
		"createdAt":    "created_at",
	},
	DefaultSort:  "name",
	DefaultLimit: 50,
	MaxLimit:     200,
}

type PlatformService struct {
	db *gorm.DB
}

func NewPlatformService(db *gorm.DB) *PlatformService {
	return &PlatformService{db: db}
}

type platformRow struct {
	models.Platform
	GameCount int64 `gorm:"column:game_count"`
}

func (s *PlatformService) List(params *dto.PlatformListParams) (*dto.PlatformListResponse, error) {
	p := platformSpec.Normalize(params.Params)

	q := s.db.Model(&models.Platform{})
	q = platformSpec.ApplySearch(q, p.Search)

	if params.Manufacturer != "" {
		q = query.ApplyFilters(q, []query.Filter{
			{Column: "manufacturer", Op: query.OpContains, Value: params.Manufacturer},
		})
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		slog.Error("failed to count platforms", "error", err)
		return nil, apperr.Internal("Failed to fetch platforms")
	}

	if params.IncludeGameCount {
		q = q.Select("platforms.*, (SELECT COUNT(*) FROM games WHERE games.platform_id = platforms.id) AS game_count")
	}

	var rows []platformRow
	err := q.Order(platformSpec.Order(p)).
		Limit(p.Limit).Offset(p.Offset()).
		Find(&rows).Error
	if err != nil {
		slog.Error("failed to fetch platforms", "error", err)
		return nil, apperr.Internal("Failed to fetch platforms")
	}

	resp := &dto.PlatformListResponse{
		Platforms:  make([]dto.PlatformResponse, len(rows)),
		Pagination: query.Paginate(p, total),
		Filters: dto.PlatformFilters{
			Search:           p.Search,
			Manufacturer:     params.Manufacturer,
			IncludeGameCount: params.IncludeGameCount,
			SortBy:           p.SortBy,
			SortOrder:        p.SortOrder,
		},
	}
	for i := range rows {
		pr := mapPlatformResponse(&rows[i].Platform)
		if params.IncludeGameCount {
			count := rows[i].GameCount
			pr.GameCount = &count
		}
		resp.Platforms[i] = *pr
	}
	return resp, nil
}

func (s *PlatformService) Get(id uint, includeGames bool) (*dto.PlatformResponse, error) {
	q := s.db
	if includeGames {
		q = q.Preload("Games.Genre")
	}

	var platform models.Platform
	err := q.First(&platform, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Platform not found", "Platform with the given ID was not found")
	}
	if err != nil {
		slog.Error("failed to fetch platform", "id", id, "error", err)
		return nil, apperr.Internal("Failed to fetch platform")
	}

	resp := mapPlatformResponse(&platform)
	if includeGames {
		resp.Games = make([]dto.RelatedGame, len(platform.Games))
		for i := range platform.Games {
			game := &platform.Games[i]
			entry := dto.RelatedGame{
				ID:          game.ID,
				Name:        game.Name,
				Rating:      game.Rating,
				ReleaseDate: formatDate(game.ReleaseDate),
				Developer:   game.Developer,
				Publisher:   game.Publisher,
			}
			if game.Genre != nil {
				entry.Genre = &dto.GenreBrief{
					ID:          game.Genre.ID,
					Name:        game.Genre.Name,
					Description: game.Genre.Description,
				}
			}
			resp.Games[i] = entry
		}
	}
	return resp, nil
}

func (s *PlatformService) Create(req *dto.CreatePlatformRequest) (*dto.PlatformResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateName(name, req.Name == ""); err != nil {
		return nil, err
	}
	if err := validatePlatformFields(req.Manufacturer, req.ReleaseYear); err != nil {
		return nil, err
	}

	if err := s.checkNameConflict(name, 0); err != nil {
		return nil, err
	}

	platform := models.Platform{
		Name:         name,
		Manufacturer: trimmed(req.Manufacturer),
		ReleaseYear:  req.ReleaseYear,
	}
	if err := s.db.Create(&platform).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Platform already exists", "A platform with this name already exists")
		}
		slog.Error("failed to create platform", "error", err)
		return nil, apperr.Internal("Failed to create platform")
	}

	return mapPlatformResponse(&platform), nil
}

func (s *PlatformService) Update(id uint, req *dto.UpdatePlatformRequest) (*dto.PlatformResponse, error) {
	var platform models.Platform
	err := s.db.First(&platform, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Platform not found", "Platform with the given ID was not found")
	}
	if err != nil {
		slog.Error("failed to fetch platform", "id", id, "error", err)
		return nil, apperr.Internal("Failed to update platform")
	}

	if err := validatePlatformFields(req.Manufacturer, req.ReleaseYear); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validateName(name, false); err != nil {
			return nil, err
		}
		if err := s.checkNameConflict(name, id); err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if req.Manufacturer != nil {
		updates["manufacturer"] = strings.TrimSpace(*req.Manufacturer)
	}
	if req.ReleaseYear != nil {
		updates["release_year"] = *req.ReleaseYear
	}

	if len(updates) > 0 {
		if err := s.db.Model(&platform).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperr.Conflict("Platform already exists", "Another platform with this name already exists")
			}
			slog.Error("failed to update platform", "id", id, "error", err)
			return nil, apperr.Internal("Failed to update platform")
		}
	}

	return mapPlatformResponse(&platform), nil
}

func (s *PlatformService) Delete(id uint) (*dto.DeletedEntity, error) {
	var platform models.Platform
	err := s.db.First(&platform, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Platform not found", "Platform with the given ID was not found")
	}
	if err != nil {
		slog.Error("failed to fetch platform", "id", id, "error", err)
		return nil, apperr.Internal("Failed to delete platform")
	}

	var gameCount int64
	if err := s.db.Model(&models.Game{}).Where("platform_id = ?", id).Count(&gameCount).Error; err != nil {
		slog.Error("failed to count dependent games", "id", id, "error", err)
		return nil, apperr.Internal("Failed to delete platform")
	}
	if gameCount > 0 {
		return nil, apperr.Dependency(
			"Cannot delete platform",
			fmt.Sprintf("Cannot delete platform. %d game(s) are using this platform.", gameCount),
			gameCount,
		)
	}

	if err := s.db.Delete(&platform).Error; err != nil {
		slog.Error("failed to delete platform", "id", id, "error", err)
		return nil, apperr.Internal("Failed to delete platform")
	}

	return &dto.DeletedEntity{ID: platform.ID, Name: platform.Name}, nil
}

func (s *PlatformService) checkNameConflict(name string, excludeID uint) error {
	q := s.db.Model(&models.Platform{}).Where("LOWER(name) = ?", strings.ToLower(name))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		slog.Error("failed to check platform name", "error", err)
		return apperr.Internal("Failed to check platform name")
	}
	if n > 0 {
		if excludeID != 0 {
			return apperr.Conflict("Platform already exists", "Another platform with this name already exists")
		}
		return apperr.Conflict("Platform already exists", "A platform with this name already exists")
	}
	return nil
}

func validatePlatformFields(manufacturer *string, releaseYear *int) error {
	if manufacturer != nil && len(strings.TrimSpace(*manufacturer)) > 50 {
		return apperr.Validation("Manufacturer must be at most 50 characters")
	}
	if releaseYear != nil {
		maxYear := time.Now().Year() + 5
		if *releaseYear < minReleaseYear || *releaseYear > maxYear {
			return apperr.Validation(fmt.Sprintf("Release year must be between %d and %d", minReleaseYear, maxYear))
		}
	}
	return nil
}

func mapPlatformResponse(platform *models.Platform) *dto.PlatformResponse {
	return &dto.PlatformResponse{
		ID:           platform.ID,
		Name:         platform.Name,
		Manufacturer: platform.Manufacturer,
		ReleaseYear:  platform.ReleaseYear,
		CreatedAt:    platform.CreatedAt,
		UpdatedAt:    platform.UpdatedAt,
	}
}
