package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gametrackr/backend/internal/apperr"
	"github.com/gametrackr/backend/internal/dto"
	"github.com/gametrackr/backend/internal/query"
	"github.com/gametrackr/backend/internal/services"
)

type GenreHandler struct {
	genreService *services.GenreService
}

func NewGenreHandler(genreService *services.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

func (h *GenreHandler) List(c *fiber.Ctx) error {
	params := &dto.GenreListParams{
		Params: query.Params{
			Page:      c.QueryInt("page", 1),
			Limit:     c.QueryInt("limit", 0),
			Search:    c.Query("search"),
			SortBy:    c.Query("sortBy", "name"),
			SortOrder: c.Query("sortOrder", "ASC"),
		},
		IncludeGameCount: c.Query("includeGameCount") == "true",
	}

	resp, err := h.genreService.List(params)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *GenreHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return apperr.Validation("Invalid genre ID")
	}

	genre, err := h.genreService.Get(id, c.Query("includeGames") == "true")
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"genre": genre})
}

func (h *GenreHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateGenreRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}

	genre, err := h.genreService.Create(&req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Genre created successfully",
		"genre":   genre,
	})
}

func (h *GenreHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return apperr.Validation("Invalid genre ID")
	}

	var req dto.UpdateGenreRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}

	genre, err := h.genreService.Update(id, &req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Genre updated successfully",
		"genre":   genre,
	})
}

func (h *GenreHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return apperr.Validation("Invalid genre ID")
	}

	deleted, err := h.genreService.Delete(id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":      "Genre deleted successfully",
		"deletedGenre": deleted,
	})
}
