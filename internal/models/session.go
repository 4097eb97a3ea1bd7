package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Session is a server-side record keyed by the sha256 of the opaque cookie
// token. Data holds the {id, username, email} user projection.
type Session struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"-"`
	TokenHash string         `gorm:"size:64;not null;uniqueIndex" json:"-"`
	Data      datatypes.JSON `gorm:"not null" json:"-"`
	ExpiresAt time.Time      `gorm:"not null;index" json:"-"`
	CreatedAt time.Time      `json:"-"`
}
