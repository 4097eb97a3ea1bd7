package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gametrackr/backend/internal/apperr"
	"github.com/gametrackr/backend/internal/dto"
	"github.com/gametrackr/backend/internal/query"
	"github.com/gametrackr/backend/internal/services"
)

type PlatformHandler struct {
	platformService *services.PlatformService
}

func NewPlatformHandler(platformService *services.PlatformService) *PlatformHandler {
	return &PlatformHandler{platformService: platformService}
}

func (h *PlatformHandler) List(c *fiber.Ctx) error {
	params := &dto.PlatformListParams{
		Params: query.Params{
			Page:      c.QueryInt("page", 1),
			Limit:     c.QueryInt("limit", 0),
			Search:    c.Query("search"),
			SortBy:    c.Query("sortBy", "name"),
			SortOrder: c.Query("sortOrder", "ASC"),
		},
		Manufacturer:     c.Query("manufacturer"),
		IncludeGameCount: c.Query("includeGameCount") == "true",
	}

	resp, err := h.platformService.List(params)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *PlatformHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return apperr.Validation("Invalid platform ID")
	}

	platform, err := h.platformService.Get(id, c.Query("includeGames") == "true")
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"platform": platform})
}

func (h *PlatformHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePlatformRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}

	platform, err := h.platformService.Create(&req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Platform created successfully",
		"platform": platform,
	})
}

func (h *PlatformHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return apperr.Validation("Invalid platform ID")
	}

	var req dto.UpdatePlatformRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}

	platform, err := h.platformService.Update(id, &req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":  "Platform updated successfully",
		"platform": platform,
	})
}

func (h *PlatformHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return apperr.Validation("Invalid platform ID")
	}

	deleted, err := h.platformService.Delete(id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":         "Platform deleted successfully",
		"deletedPlatform": deleted,
	})
}
