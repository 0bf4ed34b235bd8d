package http

import (
	"recipe-service/pkg/apperr"
	"recipe-service/pkg/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (h *Handler) AddFavorite(c *fiber.Ctx) error {
	var req models.FavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if req.UserID == uuid.Nil || req.RecipeID == uuid.Nil {
		return apperr.Validation("user_id and recipe_id are required")
	}

	favorite, err := h.favorites.Add(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "added to favorites",
		"data":    favorite,
	})
}

func (h *Handler) RemoveFavorite(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return err
	}
	recipeID, err := parseUUIDParam(c, "recipe_id")
	if err != nil {
		return err
	}

	if err := h.favorites.Remove(c.Context(), userID, recipeID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "removed from favorites"})
}

func (h *Handler) CheckFavorite(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return err
	}
	recipeID, err := parseUUIDParam(c, "recipe_id")
	if err != nil {
		return err
	}

	favorite, err := h.favorites.IsFavorite(c.Context(), userID, recipeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"is_favorite": favorite})
}

func (h *Handler) ListFavorites(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return err
	}

	favorites, err := h.favorites.ListByUser(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": favorites, "count": len(favorites)})
}
