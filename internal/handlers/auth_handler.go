package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/gametrackr/backend/internal/apperr"
	"github.com/gametrackr/backend/internal/config"
	"github.com/gametrackr/backend/internal/dto"
	"github.com/gametrackr/backend/internal/middleware"
	"github.com/gametrackr/backend/internal/models"
	"github.com/gametrackr/backend/internal/services"
	"github.com/gametrackr/backend/internal/session"
)

type AuthHandler struct {
	authService *services.AuthService
	store       session.Store
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, store session.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, store: store, cfg: cfg}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    mapUserResponse(user, true),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}

	user, err := h.authService.Login(&req)
	if err != nil {
		return err
	}

	token, err := h.store.Create(session.Data{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, h.cfg.SessionTTL)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		return apperr.Internal("Failed to login")
	}

	h.setSessionCookie(c, token)

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    mapUserResponse(user, false),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, ok := middleware.SessionToken(c)
	if ok {
		if err := h.store.Destroy(token); err != nil {
			slog.Error("failed to destroy session", "error", err)
			return apperr.Internal("Failed to logout")
		}
	}

	h.clearSessionCookie(c)

	return c.JSON(fiber.Map{"message": "Logout successful"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	data, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("Unauthorized", "Authentication required")
	}

	user, err := h.authService.GetUser(data.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"user": mapUserResponse(user, true)})
}

// Status reports session presence. Always 200.
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	resp := dto.StatusResponse{}
	if data, ok := middleware.CurrentUser(c); ok {
		resp.IsAuthenticated = true
		resp.User = &dto.UserResponse{
			ID:       data.UserID,
			Username: data.Username,
			Email:    data.Email,
		}
	}
	return c.JSON(resp)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.SessionTTL.Seconds()),
		HTTPOnly: true,
		Secure:   false,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func mapUserResponse(user *models.User, withTimestamps bool) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
	if withTimestamps {
		createdAt := user.CreatedAt
		updatedAt := user.UpdatedAt
		resp.CreatedAt = &createdAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
