package services

import (
	"errors"
	"log/slog"
	"net/mail"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gametrackr/backend/internal/apperr"
	"github.com/gametrackr/backend/internal/dto"
	"github.com/gametrackr/backend/internal/models"
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*models.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, apperr.Validation("Username, email, and password are required")
	}
	if req.Password != req.ConfirmPassword {
		return nil, apperr.Validation("Passwords do not match")
	}
	if len(req.Password) < 6 {
		return nil, apperr.Validation("Password must be at least 6 characters long")
	}
	if len(req.Username) < 3 || len(req.Username) > 30 {
		return nil, apperr.Validation("Username must be between 3 and 30 characters")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, apperr.Validation("Email must be a valid email address")
	}

	var existing models.User
	err := s.db.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("User already exists", "Username or email already taken")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Error("failed to check existing user", "error", err)
		return nil, apperr.Internal("Failed to register user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		return nil, apperr.Internal("Failed to register user")
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("User already exists", "Username or email already taken")
		}
		slog.Error("failed to create user", "error", err)
		return nil, apperr.Internal("Failed to register user")
	}

	return &user, nil
}

// Login resolves the user by username or email and verifies the password.
// Failures never reveal which of the two was wrong.
func (s *AuthService) Login(req *dto.LoginRequest) (*models.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperr.Validation("Username and password are required")
	}

	var user models.User
	err := s.db.Where("username = ? OR email = ?", req.Username, req.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorized("Authentication failed", "Invalid username or password")
	}
	if err != nil {
		slog.Error("failed to look up user", "error", err)
		return nil, apperr.Internal("Failed to login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized("Authentication failed", "Invalid username or password")
	}

	return &user, nil
}

func (s *AuthService) GetUser(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found", "User session is invalid")
	}
	if err != nil {
		slog.Error("failed to fetch user", "id", id, "error", err)
		return nil, apperr.Internal("Failed to get user information")
	}
	return &user, nil
}
