package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gametrackr/backend/internal/models"
)

// GormStore persists sessions in the sessions table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(data Data, ttl time.Duration) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode session data: %w", err)
	}

	record := models.Session{
		ID:        uuid.New(),
		TokenHash: hashToken(token),
		Data:      payload,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

func (s *GormStore) Get(token string) (*Data, error) {
	var record models.Session
	err := s.db.Where("token_hash = ?", hashToken(token)).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if time.Now().After(record.ExpiresAt) {
		s.db.Delete(&record)
		return nil, ErrNotFound
	}

	var data Data
	if err := json.Unmarshal(record.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode session data: %w", err)
	}
	return &data, nil
}

func (s *GormStore) Destroy(token string) error {
	return s.db.Where("token_hash = ?", hashToken(token)).Delete(&models.Session{}).Error
}
