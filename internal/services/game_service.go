package services

import (
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/gametrackr/backend/internal/apperr"
	"github.com/gametrackr/backend/internal/dto"
	"github.com/gametrackr/backend/internal/models"
	"github.com/gametrackr/backend/internal/query"
)

var gameSpec = query.Spec{
	SearchColumns: []string{"name", "description", "developer", "publisher"},
	SortColumns: map[string]string{
		"name":        "name",
		"rating":      "rating",
		"releaseDate": "release_date",
		"createdAt":   "created_at",
	},
	DefaultSort:  "name",
	DefaultLimit: 10,
	MaxLimit:     100,
}

type GameService struct {
	db *gorm.DB
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{db: db}
}

func (s *GameService) List(params *dto.GameListParams) (*dto.GameListResponse, error) {
	p := gameSpec.Normalize(params.Params)

	q := s.db.Model(&models.Game{})
	q = gameSpec.ApplySearch(q, p.Search)

	var filters []query.Filter
	if params.GenreID != nil {
		filters = append(filters, query.Filter{Column: "genre_id", Op: query.OpEq, Value: *params.GenreID})
	}
	if params.PlatformID != nil {
		filters = append(filters, query.Filter{Column: "platform_id", Op: query.OpEq, Value: *params.PlatformID})
	}
	if params.MinRating != nil {
		filters = append(filters, query.Filter{Column: "rating", Op: query.OpGte, Value: *params.MinRating})
	}
	if params.MaxRating != nil {
		filters = append(filters, query.Filter{Column: "rating", Op: query.OpLte, Value: *params.MaxRating})
	}
	q = query.ApplyFilters(q, filters)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		slog.Error("failed to count games", "error", err)
		return nil, apperr.Internal("Failed to fetch games")
	}

	var games []models.Game
	err := q.Order(gameSpec.Order(p)).
		Limit(p.Limit).Offset(p.Offset()).
		Preload("Genre").Preload("Platform").
		Find(&games).Error
	if err != nil {
		slog.Error("failed to fetch games", "error", err)
		return nil, apperr.Internal("Failed to fetch games")
	}

	resp := &dto.GameListResponse{
		Games:      make([]dto.GameResponse, len(games)),
		Pagination: query.Paginate(p, total),
		Filters: dto.GameFilters{
			Search:     p.Search,
			GenreID:    params.GenreID,
			PlatformID: params.PlatformID,
			MinRating:  params.MinRating,
			MaxRating:  params.MaxRating,
			SortBy:     p.SortBy,
			SortOrder:  p.SortOrder,
		},
	}
	for i := range games {
		resp.Games[i] = *mapGameResponse(&games[i])
	}
	return resp, nil
}

func (s *GameService) Get(id uint) (*dto.GameResponse, error) {
	game, err := s.findGame(id, true)
	if err != nil {
		return nil, err
	}
	return mapGameResponse(game), nil
}

func (s *GameService) Create(req *dto.CreateGameRequest) (*dto.GameResponse, error) {
	payload := gamePayload{
		Name:        &req.Name,
		Rating:      req.Rating,
		ReleaseDate: req.ReleaseDate,
		Developer:   req.Developer,
		Publisher:   req.Publisher,
		ImageURL:    req.ImageURL,
	}
	if req.GenreID != 0 {
		payload.GenreID = &req.GenreID
	}
	if req.PlatformID != 0 {
		payload.PlatformID = &req.PlatformID
	}

	releaseDate, err := s.validateGame(payload, false)
	if err != nil {
		return nil, err
	}

	game := models.Game{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Rating:      req.Rating,
		ReleaseDate: releaseDate,
		Developer:   req.Developer,
		Publisher:   req.Publisher,
		ImageURL:    req.ImageURL,
		GenreID:     req.GenreID,
		PlatformID:  req.PlatformID,
	}
	if err := s.db.Create(&game).Error; err != nil {
		slog.Error("failed to create game", "error", err)
		return nil, apperr.Internal("Failed to create game")
	}

	return s.Get(game.ID)
}

func (s *GameService) Update(id uint, req *dto.UpdateGameRequest) (*dto.GameResponse, error) {
	game, err := s.findGame(id, false)
	if err != nil {
		return nil, err
	}

	payload := gamePayload{
		Name:        req.Name,
		Rating:      req.Rating,
		ReleaseDate: req.ReleaseDate,
		Developer:   req.Developer,
		Publisher:   req.Publisher,
		ImageURL:    req.ImageURL,
		GenreID:     req.GenreID,
		PlatformID:  req.PlatformID,
	}
	releaseDate, err := s.validateGame(payload, true)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if releaseDate != nil {
		updates["release_date"] = *releaseDate
	}
	if req.Developer != nil {
		updates["developer"] = *req.Developer
	}
	if req.Publisher != nil {
		updates["publisher"] = *req.Publisher
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.GenreID != nil {
		updates["genre_id"] = *req.GenreID
	}
	if req.PlatformID != nil {
		updates["platform_id"] = *req.PlatformID
	}

	if len(updates) > 0 {
		if err := s.db.Model(game).Updates(updates).Error; err != nil {
			slog.Error("failed to update game", "id", id, "error", err)
			return nil, apperr.Internal("Failed to update game")
		}
	}

	return s.Get(id)
}

func (s *GameService) Delete(id uint) (*dto.DeletedEntity, error) {
	game, err := s.findGame(id, false)
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(game).Error; err != nil {
		slog.Error("failed to delete game", "id", id, "error", err)
		return nil, apperr.Internal("Failed to delete game")
	}

	return &dto.DeletedEntity{ID: game.ID, Name: game.Name}, nil
}

func (s *GameService) findGame(id uint, expand bool) (*models.Game, error) {
	q := s.db
	if expand {
		q = q.Preload("Genre").Preload("Platform")
	}

	var game models.Game
	err := q.First(&game, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Game not found", "Game with the given ID was not found")
	}
	if err != nil {
		slog.Error("failed to fetch game", "id", id, "error", err)
		return nil, apperr.Internal("Failed to fetch game")
	}
	return &game, nil
}

// gamePayload is the supplied subset of game fields, shared between create
// (full mode) and update (partial mode).
type gamePayload struct {
	Name        *string
	Rating      *float64
	ReleaseDate *string
	Developer   *string
	Publisher   *string
	ImageURL    *string
	GenreID     *uint
	PlatformID  *uint
}

func (s *GameService) validateGame(p gamePayload, partial bool) (*time.Time, error) {
	if !partial && (p.Name == nil || strings.TrimSpace(*p.Name) == "" || p.GenreID == nil || p.PlatformID == nil) {
		return nil, apperr.Validation("Name, genre, and platform are required")
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if len(name) < 2 || len(name) > 100 {
			return nil, apperr.Validation("Name must be between 2 and 100 characters")
		}
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 10) {
		return nil, apperr.Validation("Rating must be between 0 and 10")
	}
	if p.Developer != nil && len(*p.Developer) > 100 {
		return nil, apperr.Validation("Developer must be at most 100 characters")
	}
	if p.Publisher != nil && len(*p.Publisher) > 100 {
		return nil, apperr.Validation("Publisher must be at most 100 characters")
	}
	if p.ImageURL != nil && *p.ImageURL != "" && !validURL(*p.ImageURL) {
		return nil, apperr.Validation("Image URL must be a valid URL")
	}

	var releaseDate *time.Time
	if p.ReleaseDate != nil && *p.ReleaseDate != "" {
		d, err := time.Parse(time.DateOnly, *p.ReleaseDate)
		if err != nil {
			return nil, apperr.Validation("Release date must be a valid date (YYYY-MM-DD)")
		}
		releaseDate = &d
	}

	if p.GenreID != nil {
		var n int64
		if err := s.db.Model(&models.Genre{}).Where("id = ?", *p.GenreID).Count(&n).Error; err != nil {
			slog.Error("failed to check genre", "error", err)
			return nil, apperr.Internal("Failed to validate game")
		}
		if n == 0 {
			return nil, apperr.Validation("Invalid genre ID")
		}
	}
	if p.PlatformID != nil {
		var n int64
		if err := s.db.Model(&models.Platform{}).Where("id = ?", *p.PlatformID).Count(&n).Error; err != nil {
			slog.Error("failed to check platform", "error", err)
			return nil, apperr.Internal("Failed to validate game")
		}
		if n == 0 {
			return nil, apperr.Validation("Invalid platform ID")
		}
	}

	return releaseDate, nil
}

func validURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func mapGameResponse(game *models.Game) *dto.GameResponse {
	resp := &dto.GameResponse{
		ID:          game.ID,
		Name:        game.Name,
		Description: game.Description,
		Rating:      game.Rating,
		ReleaseDate: formatDate(game.ReleaseDate),
		Developer:   game.Developer,
		Publisher:   game.Publisher,
		ImageURL:    game.ImageURL,
		GenreID:     game.GenreID,
		PlatformID:  game.PlatformID,
		CreatedAt:   game.CreatedAt,
		UpdatedAt:   game.UpdatedAt,
	}
	if game.Genre != nil {
		resp.Genre = &dto.GenreBrief{
			ID:          game.Genre.ID,
			Name:        game.Genre.Name,
			Description: game.Genre.Description,
		}
	}
	if game.Platform != nil {
		resp.Platform = &dto.PlatformBrief{
			ID:           game.Platform.ID,
			Name:         game.Platform.Name,
			Manufacturer: game.Platform.Manufacturer,
			ReleaseYear:  game.Platform.ReleaseYear,
		}
	}
	return resp
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}
