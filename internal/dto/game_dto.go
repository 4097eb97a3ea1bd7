package dto

import (
	"time"

	"github.com/gametrackr/backend/internal/query"
)

type CreateGameRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Rating      *float64 `json:"rating"`
	ReleaseDate *string  `json:"releaseDate"`
	Developer   *string  `json:"developer"`
	Publisher   *string  `json:"publisher"`
	ImageURL    *string  `json:"imageUrl"`
	GenreID     uint     `json:"genreId"`
	PlatformID  uint     `json:"platformId"`
}

// UpdateGameRequest carries partial-update semantics: nil means "leave the
// field untouched".
type UpdateGameRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Rating      *float64 `json:"rating"`
	ReleaseDate *string  `json:"releaseDate"`
	Developer   *string  `json:"developer"`
	Publisher   *string  `json:"publisher"`
	ImageURL    *string  `json:"imageUrl"`
	GenreID     *uint    `json:"genreId"`
	PlatformID  *uint    `json:"platformId"`
}

type GameListParams struct {
	query.Params
	GenreID    *uint
	PlatformID *uint
	MinRating  *float64
	MaxRating  *float64
}

type GameFilters struct {
	Search     string   `json:"search"`
	GenreID    *uint    `json:"genreId"`
	PlatformID *uint    `json:"platformId"`
	MinRating  *float64 `json:"minRating"`
	MaxRating  *float64 `json:"maxRating"`
	SortBy     string   `json:"sortBy"`
	SortOrder  string   `json:"sortOrder"`
}

type GenreBrief struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type PlatformBrief struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Manufacturer *string `json:"manufacturer"`
	ReleaseYear  *int    `json:"releaseYear,omitempty"`
}

type GameResponse struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Rating      *float64       `json:"rating"`
	ReleaseDate *string        `json:"releaseDate"`
	Developer   *string        `json:"developer"`
	Publisher   *string        `json:"publisher"`
	ImageURL    *string        `json:"imageUrl"`
	GenreID     uint           `json:"genreId"`
	PlatformID  uint           `json:"platformId"`
	Genre       *GenreBrief    `json:"genre,omitempty"`
	Platform    *PlatformBrief `json:"platform,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type GameListResponse struct {
	Games      []GameResponse   `json:"games"`
	Pagination query.Pagination `json:"pagination"`
	Filters    GameFilters      `json:"filters"`
}

// RelatedGame is the brief used when expanding a genre's or platform's games.
type RelatedGame struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Rating      *float64       `json:"rating"`
	ReleaseDate *string        `json:"releaseDate"`
	Developer   *string        `json:"developer"`
	Publisher   *string        `json:"publisher"`
	Genre       *GenreBrief    `json:"genre,omitempty"`
	Platform    *PlatformBrief `json:"platform,omitempty"`
}

// DeletedEntity is the minimal echo returned by every delete.
type DeletedEntity struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
