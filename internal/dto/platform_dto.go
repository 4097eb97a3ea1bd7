package dto

import (
	"time"

	"github.com/gametrackr/backend/internal/query"
)

type CreatePlatformRequest struct {
	Name         string  `json:"name"`
	Manufacturer *string `json:"manufacturer"`
	ReleaseYear  *int    `json:"releaseYear"`
}

type UpdatePlatformRequest struct {
	Name         *string `json:"name"`
	Manufacturer *string `json:"manufacturer"`
	ReleaseYear  *int    `json:"releaseYear"`
}

type PlatformListParams struct {
	query.Params
	Manufacturer     string
	IncludeGameCount bool
}

type PlatformFilters struct {
	Search           string `json:"search"`
	Manufacturer     string `json:"manufacturer"`
	IncludeGameCount bool   `json:"includeGameCount"`
	SortBy           string `json:"sortBy"`
	SortOrder        string `json:"sortOrder"`
}

type PlatformResponse struct {
	ID           uint          `json:"id"`
	Name         string        `json:"name"`
	Manufacturer *string       `json:"manufacturer"`
	ReleaseYear  *int          `json:"releaseYear"`
	GameCount    *int64        `json:"gameCount,omitempty"`
	Games        []RelatedGame `json:"games,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

type PlatformListResponse struct {
	Platforms  []PlatformResponse `json:"platforms"`
	Pagination query.Pagination   `json:"pagination"`
	Filters    PlatformFilters    `json:"filters"`
}
