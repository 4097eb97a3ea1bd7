package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gametrackr/backend/internal/apperr"
	"github.com/gametrackr/backend/internal/dto"
	"github.com/gametrackr/backend/internal/query"
	"github.com/gametrackr/backend/internal/services"
)

type GameHandler struct {
	gameService *services.GameService
}

func NewGameHandler(gameService *services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

func (h *GameHandler) List(c *fiber.Ctx) error {
	params := &dto.GameListParams{
		Params: query.Params{
			Page:      c.QueryInt("page", 1),
			Limit:     c.QueryInt("limit", 0),
			Search:    c.Query("search"),
			SortBy:    c.Query("sortBy", "name"),
			SortOrder: c.Query("sortOrder", "ASC"),
		},
	}

	var err error
	if params.GenreID, err = queryUint(c, "genreId"); err != nil {
		return apperr.Validation("genreId must be a positive integer")
	}
	if params.PlatformID, err = queryUint(c, "platformId"); err != nil {
		return apperr.Validation("platformId must be a positive integer")
	}
	if params.MinRating, err = queryFloat(c, "minRating"); err != nil {
		return apperr.Validation("minRating must be a number")
	}
	if params.MaxRating, err = queryFloat(c, "maxRating"); err != nil {
		return apperr.Validation("maxRating must be a number")
	}

	resp, err := h.gameService.List(params)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *GameHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return apperr.Validation("Invalid game ID")
	}

	game, err := h.gameService.Get(id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"game": game})
}

func (h *GameHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateGameRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}

	game, err := h.gameService.Create(&req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created successfully",
		"game":    game,
	})
}

func (h *GameHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return apperr.Validation("Invalid game ID")
	}

	var req dto.UpdateGameRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}

	game, err := h.gameService.Update(id, &req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Game updated successfully",
		"game":    game,
	})
}

func (h *GameHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return apperr.Validation("Invalid game ID")
	}

	deleted, err := h.gameService.Delete(id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":     "Game deleted successfully",
		"deletedGame": deleted,
	})
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(id), nil
}

func queryUint(c *fiber.Ctx, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, err
	}
	u := uint(v)
	return &u, nil
}

func queryFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
