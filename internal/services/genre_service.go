package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/gametrackr/backend/internal/apperr"
	"github.com/gametrackr/backend/internal/dto"
	"github.com/gametrackr/backend/internal/models"
	"github.com/gametrackr/backend/internal/query"
)

var genreSpec = query.Spec{
	SearchColumns: []string{"name", "description"},
	SortColumns: map[string]string{
		"name":      "name",
		"createdAt": "created_at",
	},
	DefaultSort:  "name",
	DefaultLimit: 50,
	MaxLimit:     200,
}

type GenreService struct {
	db *gorm.DB
}

func NewGenreService(db *gorm.DB) *GenreService {
	return &GenreService{db: db}
}

// genreRow carries the optional dependent-game count alongside the genre.
type genreRow struct {
	models.Genre
	GameCount int64 `gorm:"column:game_count"`
}

func (s *GenreService) List(params *dto.GenreListParams) (*dto.GenreListResponse, error) {
	p := genreSpec.Normalize(params.Params)

	q := s.db.Model(&models.Genre{})
	q = genreSpec.ApplySearch(q, p.Search)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		slog.Error("failed to count genres", "error", err)
		return nil, apperr.Internal("Failed to fetch genres")
	}

	if params.IncludeGameCount {
		q = q.Select("genres.*, (SELECT COUNT(*) FROM games WHERE games.genre_id = genres.id) AS game_count")
	}

	var rows []genreRow
	err := q.Order(genreSpec.Order(p)).
		Limit(p.Limit).Offset(p.Offset()).
		Find(&rows).Error
	if err != nil {
		slog.Error("failed to fetch genres", "error", err)
		return nil, apperr.Internal("Failed to fetch genres")
	}

	resp := &dto.GenreListResponse{
		Genres:     make([]dto.GenreResponse, len(rows)),
		Pagination: query.Paginate(p, total),
		Filters: dto.GenreFilters{
			Search:           p.Search,
			IncludeGameCount: params.IncludeGameCount,
			SortBy:           p.SortBy,
			SortOrder:        p.SortOrder,
		},
	}
	for i := range rows {
		g := mapGenreResponse(&rows[i].Genre)
		if params.IncludeGameCount {
			count := rows[i].GameCount
			g.GameCount = &count
		}
		resp.Genres[i] = *g
	}
	return resp, nil
}

func (s *GenreService) Get(id uint, includeGames bool) (*dto.GenreResponse, error) {
	q := s.db
	if includeGames {
		q = q.Preload("Games.Platform")
	}

	var genre models.Genre
	err := q.First(&genre, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Genre not found", "Genre with the given ID was not found")
	}
	if err != nil {
		slog.Error("failed to fetch genre", "id", id, "error", err)
		return nil, apperr.Internal("Failed to fetch genre")
	}

	resp := mapGenreResponse(&genre)
	if includeGames {
		resp.Games = make([]dto.RelatedGame, len(genre.Games))
		for i := range genre.Games {
			game := &genre.Games[i]
			entry := dto.RelatedGame{
				ID:          game.ID,
				Name:        game.Name,
				Rating:      game.Rating,
				ReleaseDate: formatDate(game.ReleaseDate),
				Developer:   game.Developer,
				Publisher:   game.Publisher,
			}
			if game.Platform != nil {
				entry.Platform = &dto.PlatformBrief{
					ID:           game.Platform.ID,
					Name:         game.Platform.Name,
					Manufacturer: game.Platform.Manufacturer,
				}
			}
			resp.Games[i] = entry
		}
	}
	return resp, nil
}

func (s *GenreService) Create(req *dto.CreateGenreRequest) (*dto.GenreResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateName(name, req.Name == ""); err != nil {
		return nil, err
	}

	if err := s.checkNameConflict(name, 0); err != nil {
		return nil, err
	}

	genre := models.Genre{
		Name:        name,
		Description: trimmed(req.Description),
	}
	if err := s.db.Create(&genre).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Genre already exists", "A genre with this name already exists")
		}
		slog.Error("failed to create genre", "error", err)
		return nil, apperr.Internal("Failed to create genre")
	}

	return mapGenreResponse(&genre), nil
}

func (s *GenreService) Update(id uint, req *dto.UpdateGenreRequest) (*dto.GenreResponse, error) {
	var genre models.Genre
	err := s.db.First(&genre, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Genre not found", "Genre with the given ID was not found")
	}
	if err != nil {
		slog.Error("failed to fetch genre", "id", id, "error", err)
		return nil, apperr.Internal("Failed to update genre")
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
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&genre).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperr.Conflict("Genre already exists", "Another genre with this name already exists")
			}
			slog.Error("failed to update genre", "id", id, "error", err)
			return nil, apperr.Internal("Failed to update genre")
		}
	}

	return mapGenreResponse(&genre), nil
}

func (s *GenreService) Delete(id uint) (*dto.DeletedEntity, error) {
	var genre models.Genre
	err := s.db.First(&genre, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Genre not found", "Genre with the given ID was not found")
	}
	if err != nil {
		slog.Error("failed to fetch genre", "id", id, "error", err)
		return nil, apperr.Internal("Failed to delete genre")
	}

	var gameCount int64
	if err := s.db.Model(&models.Game{}).Where("genre_id = ?", id).Count(&gameCount).Error; err != nil {
		slog.Error("failed to count dependent games", "id", id, "error", err)
		return nil, apperr.Internal("Failed to delete genre")
	}
	if gameCount > 0 {
		return nil, apperr.Dependency(
			"Cannot delete genre",
			fmt.Sprintf("Cannot delete genre. %d game(s) are using this genre.", gameCount),
			gameCount,
		)
	}

	if err := s.db.Delete(&genre).Error; err != nil {
		slog.Error("failed to delete genre", "id", id, "error", err)
		return nil, apperr.Internal("Failed to delete genre")
	}

	return &dto.DeletedEntity{ID: genre.ID, Name: genre.Name}, nil
}

// checkNameConflict enforces case-insensitive name uniqueness. excludeID
// skips the row being updated.
func (s *GenreService) checkNameConflict(name string, excludeID uint) error {
	q := s.db.Model(&models.Genre{}).Where("LOWER(name) = ?", strings.ToLower(name))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		slog.Error("failed to check genre name", "error", err)
		return apperr.Internal("Failed to check genre name")
	}
	if n > 0 {
		if excludeID != 0 {
			return apperr.Conflict("Genre already exists", "Another genre with this name already exists")
		}
		return apperr.Conflict("Genre already exists", "A genre with this name already exists")
	}
	return nil
}

func mapGenreResponse(genre *models.Genre) *dto.GenreResponse {
	return &dto.GenreResponse{
		ID:          genre.ID,
		Name:        genre.Name,
		Description: genre.Description,
		CreatedAt:   genre.CreatedAt,
		UpdatedAt:   genre.UpdatedAt,
	}
}

// validateName checks the shared 2-50 character name rule for genres and
// platforms. missing distinguishes "not sent" from "too short".
func validateName(name string, missing bool) error {
	if missing || name == "" {
		return apperr.Validation("Name is required")
	}
	if len(name) < 2 || len(name) > 50 {
		return apperr.Validation("Name must be between 2 and 50 characters")
	}
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
