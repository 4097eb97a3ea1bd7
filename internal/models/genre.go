package models

import "time"

// Genre names are unique ignoring case; the check lives in the service layer,
// the plain unique index is the storage-level backstop.
type Genre struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Games []Game `gorm:"foreignKey:GenreID" json:"-"`
}
