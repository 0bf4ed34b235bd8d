package http

import (
	"recipe-service/internal/service"
	"recipe-service/pkg/apperr"
	"recipe-service/pkg/models"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListRecipes(c *fiber.Ctx) error {
	limit := getQueryInt(c, "limit", 100, 1, 500)

	recipes, err := h.recipes.List(c.Context(), c.Query("category"), c.Query("difficulty"), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": recipes, "count": len(recipes)})
}

func (h *Handler) CreateRecipe(c *fiber.Ctx) error {
	var req models.RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if req.Title == "" {
		return apperr.Validation("title is required")
	}

	recipe, err := h.recipes.Create(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "recipe created",
		"data":    recipe,
	})
}

func (h *Handler) GetRecipe(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "recipe_id")
	if err != nil {
		return err
	}

	detail, err := h.recipes.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(detail)
}

func (h *Handler) UpdateRecipe(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "recipe_id")
	if err != nil {
		return err
	}

	var req models.RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if req.Title == "" {
		return apperr.Validation("title is required")
	}

	recipe, err := h.recipes.Update(c.Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "recipe updated",
		"data":    recipe,
	})
}

func (h *Handler) DeleteRecipe(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "recipe_id")
	if err != nil {
		return err
	}

	if err := h.recipes.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "recipe deleted"})
}

func (h *Handler) SearchRecipes(c *fiber.Ctx) error {
	params := service.RecipeSearchParams{
		Query:      c.Query("q"),
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		MaxTime:    getQueryInt(c, "max_time", 0, 0, 100000),
		MinRating:  getQueryFloat(c, "min_rating", 0),
		SortBy:     c.Query("sort_by", "created_at"),
		Order:      c.Query("order", "desc"),
		Limit:      getQueryInt(c, "limit", 20, 1, 100),
		Offset:     getQueryInt(c, "offset", 0, 0, 100000),
	}

	recipes, err := h.recipes.Search(c.Context(), params)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": recipes, "count": len(recipes)})
}

func (h *Handler) GetCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": service.Categories})
}
