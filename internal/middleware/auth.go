package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/gametrackr/backend/internal/apperr"
	"github.com/gametrackr/backend/internal/session"
)

const (
	userKey  = "sessionUser"
	tokenKey = "sessionToken"
)

// RequireAuth resolves the session cookie against the store and rejects the
// request with 401 before any validation runs.
func RequireAuth(store session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(session.CookieName)
		if token == "" {
			return apperr.Unauthorized("Unauthorized", "Authentication required")
		}

		data, err := store.Get(token)
		if errors.Is(err, session.ErrNotFound) {
			return apperr.Unauthorized("Unauthorized", "Authentication required")
		}
		if err != nil {
			slog.Error("session lookup failed", "error", err)
			return apperr.Internal("Failed to resolve session")
		}

		c.Locals(userKey, data)
		c.Locals(tokenKey, token)
		return c.Next()
	}
}

// RequireGuest rejects requests that already carry a live session, so
// register and login stay guest-only.
func RequireGuest(store session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(session.CookieName)
		if token == "" {
			return c.Next()
		}
		if _, err := store.Get(token); err == nil {
			return apperr.New(fiber.StatusBadRequest, "Already authenticated", "User already logged in")
		}
		return c.Next()
	}
}

// LoadUser attaches the session user when present but never rejects; used by
// the status endpoint.
func LoadUser(store session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(session.CookieName)
		if token != "" {
			if data, err := store.Get(token); err == nil {
				c.Locals(userKey, data)
				c.Locals(tokenKey, token)
			}
		}
		return c.Next()
	}
}

// CurrentUser returns the session user attached by RequireAuth or LoadUser.
func CurrentUser(c *fiber.Ctx) (*session.Data, bool) {
	data, ok := c.Locals(userKey).(*session.Data)
	return data, ok
}

// SessionToken returns the raw token attached alongside the session user.
func SessionToken(c *fiber.Ctx) (string, bool) {
	token, ok := c.Locals(tokenKey).(string)
	return token, ok
}
