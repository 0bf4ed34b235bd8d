package http

import (
	"recipe-service/pkg/apperr"
	"recipe-service/pkg/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (h *Handler) UpsertRating(c *fiber.Ctx) error {
	var req models.RatingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if req.UserID == uuid.Nil || req.RecipeID == uuid.Nil {
		return apperr.Validation("user_id and recipe_id are required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return apperr.Validation("rating must be between 1 and 5")
	}

	rating, created, err := h.ratings.Upsert(c.Context(), &req)
	if err != nil {
		return err
	}

	message := "rating updated"
	status := fiber.StatusOK
	if created {
		message = "rating added"
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"data":    rating,
	})
}

func (h *Handler) DeleteRating(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return err
	}
	recipeID, err := parseUUIDParam(c, "recipe_id")
	if err != nil {
		return err
	}

	if err := h.ratings.Delete(c.Context(), userID, recipeID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "rating deleted"})
}

func (h *Handler) GetUserRating(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return err
	}
	recipeID, err := parseUUIDParam(c, "recipe_id")
	if err != nil {
		return err
	}

	rating, err := h.ratings.GetUserRating(c.Context(), userID, recipeID)
	if err != nil {
		return err
	}
	// rating is null when the user has not rated this recipe
	return c.JSON(fiber.Map{"data": rating})
}
