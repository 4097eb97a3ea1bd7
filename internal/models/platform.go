package models

import "time"

type Platform struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Manufacturer *string   `gorm:"size:50" json:"manufacturer"`
	ReleaseYear  *int      `json:"releaseYear"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Games []Game `gorm:"foreignKey:PlatformID" json:"-"`
}
