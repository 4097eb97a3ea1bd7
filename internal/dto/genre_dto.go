package dto

import (
	"time"

	"github.com/gametrackr/backend/internal/query"
)

type CreateGenreRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type UpdateGenreRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type GenreListParams struct {
	query.Params
	IncludeGameCount bool
}

type GenreFilters struct {
	Search           string `json:"search"`
	IncludeGameCount bool   `json:"includeGameCount"`
	SortBy           string `json:"sortBy"`
	SortOrder        string `json:"sortOrder"`
}

type GenreResponse struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	GameCount   *int64        `json:"gameCount,omitempty"`
	Games       []RelatedGame `json:"games,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type GenreListResponse struct {
	Genres     []GenreResponse  `json:"genres"`
	Pagination query.Pagination `json:"pagination"`
	Filters    GenreFilters     `json:"filters"`
}
