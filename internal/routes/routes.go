package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/gametrackr/backend/internal/apperr"
	"github.com/gametrackr/backend/internal/config"
	"github.com/gametrackr/backend/internal/handlers"
	"github.com/gametrackr/backend/internal/middleware"
	"github.com/gametrackr/backend/internal/session"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	store session.Store,
	authHandler *handlers.AuthHandler,
	gameHandler *handlers.GameHandler,
	genreHandler *handlers.GenreHandler,
	platformHandler *handlers.PlatformHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/", apiInfo)

	api := app.Group("/api")

	if cfg.RateLimitMax > 0 {
		api.Use(rateLimiter(cfg.RateLimitMax))
	}

	api.Get("/health", healthHandler.Check)

	auth := api.Group("/auth")
	if cfg.AuthRateLimitMax > 0 {
		auth.Use(rateLimiter(cfg.AuthRateLimitMax))
	}
	auth.Post("/register", middleware.RequireGuest(store), authHandler.Register)
	auth.Post("/login", middleware.RequireGuest(store), authHandler.Login)
	auth.Post("/logout", middleware.RequireAuth(store), authHandler.Logout)
	auth.Get("/me", middleware.RequireAuth(store), authHandler.Me)
	auth.Get("/status", middleware.LoadUser(store), authHandler.Status)

	requireAuth := middleware.RequireAuth(store)

	games := api.Group("/games")
	games.Get("/", gameHandler.List)
	games.Get("/:id", gameHandler.Get)
	games.Post("/", requireAuth, gameHandler.Create)
	games.Put("/:id", requireAuth, gameHandler.Update)
	games.Delete("/:id", requireAuth, gameHandler.Delete)

	genres := api.Group("/genres")
	genres.Get("/", genreHandler.List)
	genres.Get("/:id", genreHandler.Get)
	genres.Post("/", requireAuth, genreHandler.Create)
	genres.Put("/:id", requireAuth, genreHandler.Update)
	genres.Delete("/:id", requireAuth, genreHandler.Delete)

	platforms := api.Group("/platforms")
	platforms.Get("/", platformHandler.List)
	platforms.Get("/:id", platformHandler.Get)
	platforms.Post("/", requireAuth, platformHandler.Create)
	platforms.Put("/:id", requireAuth, platformHandler.Update)
	platforms.Delete("/:id", requireAuth, platformHandler.Delete)

	// Catch-all, registered last.
	app.Use(notFound)
}

func rateLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}

func apiInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":        "Games Management API",
		"version":     "1.0.0",
		"description": "RESTful API for managing games, genres, and platforms",
		"endpoints": fiber.Map{
			"auth":      "/api/auth",
			"games":     "/api/games",
			"genres":    "/api/genres",
			"platforms": "/api/platforms",
			"health":    "/api/health",
		},
	})
}

func notFound(c *fiber.Ctx) error {
	return apperr.NotFound("Endpoint not found", "Cannot "+c.Method()+" "+c.Path()).
		WithMeta("availableEndpoints", []string{
			"/api/auth",
			"/api/games",
			"/api/genres",
			"/api/platforms",
			"/api/health",
		})
}
