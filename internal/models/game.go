package models

import "time"

// Game always references an existing Genre and Platform; existence is checked
// at write time, the foreign keys are resolved per request.
type Game struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description *string    `gorm:"type:text" json:"description"`
	Rating      *float64   `gorm:"type:decimal(3,1);index" json:"rating"`
	ReleaseDate *time.Time `gorm:"type:date" json:"releaseDate"`
	Developer   *string    `gorm:"size:100" json:"developer"`
	Publisher   *string    `gorm:"size:100" json:"publisher"`
	ImageURL    *string    `gorm:"size:255" json:"imageUrl"`
	GenreID     uint       `gorm:"not null;index" json:"genreId"`
	PlatformID  uint       `gorm:"not null;index" json:"platformId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Genre    *Genre    `gorm:"foreignKey:GenreID" json:"genre,omitempty"`
	Platform *Platform `gorm:"foreignKey:PlatformID" json:"platform,omitempty"`
}
