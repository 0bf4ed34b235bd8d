package http

import (
	"recipe-service/pkg/apperr"
	"recipe-service/pkg/models"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return err
	}

	profile, err := h.profiles.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profile})
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return err
	}

	var req models.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if req.Username == "" {
		return apperr.Validation("username is required")
	}

	profile, err := h.profiles.Update(c.Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "profile updated",
		"data":    profile,
	})
}

func (h *Handler) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return apperr.Validation("query parameter 'q' is required")
	}

	users, err := h.profiles.SearchUsers(c.Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": users, "count": len(users)})
}
