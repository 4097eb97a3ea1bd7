package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/gametrackr/backend/internal/apperr"
	"github.com/gametrackr/backend/internal/config"
)

// ErrorHandler translates typed application errors into status + JSON body.
// 5xx details are hidden outside development.
func ErrorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			if appErr.Status >= 500 {
				slog.Error("internal error", "method", c.Method(), "path", c.Path(), "error", appErr.Message)
				if cfg.Production() {
					appErr = apperr.Internal("Something went wrong")
				}
			}
			return c.Status(appErr.Status).JSON(appErr.Body())
		}

		code := fiber.StatusInternalServerError
		message := "Something went wrong"
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}
		if code >= 500 {
			slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
			if !cfg.Production() {
				message = err.Error()
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   "Internal server error",
				"message": message,
			})
		}
		return c.Status(code).JSON(fiber.Map{
			"error":   http.StatusText(code),
			"message": message,
		})
	}
}
