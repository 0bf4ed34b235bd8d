// internal/transport/http/handlers.go
package http

import (
	"context"
	"log"
	"strconv"

	"recipe-service/internal/service"
	"recipe-service/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Uploader is the blob-store surface the upload handlers need. Production
// wires the R2 client; tests wire a fake.
type Uploader interface {
	Upload(ctx context.Context, key string, content []byte, contentType string) error
	PublicURL(key string) string
}

type Handler struct {
	recipes       *service.RecipeService
	profiles      *service.ProfileService
	follows       *service.FollowService
	ratings       *service.RatingService
	favorites     *service.FavoriteService
	notifications *service.NotificationService
	storage       Uploader
}

func NewHandler(
	recipes *service.RecipeService,
	profiles *service.ProfileService,
	follows *service.FollowService,
	ratings *service.RatingService,
	favorites *service.FavoriteService,
	notifications *service.NotificationService,
	storage Uploader,
) *Handler {
	return &Handler{
		recipes:       recipes,
		profiles:      profiles,
		follows:       follows,
		ratings:       ratings,
		favorites:     favorites,
		notifications: notifications,
		storage:       storage,
	}
}

// Register mounts every /api route. Static segments go before parameterized
// ones so e.g. /recipes/search never binds as a recipe id.
func (h *Handler) Register(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/test", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "message": "API connection successful"})
	})

	api.Get("/categories", h.GetCategories)

	api.Get("/recipes/search", h.SearchRecipes)
	api.Get("/recipes", h.ListRecipes)
	api.Post("/recipes", h.CreateRecipe)
	api.Get("/recipes/:recipe_id", h.GetRecipe)
	api.Put("/recipes/:recipe_id", h.UpdateRecipe)
	api.Delete("/recipes/:recipe_id", h.DeleteRecipe)

	api.Get("/users/search", h.SearchUsers)
	api.Get("/profiles/:user_id", h.GetProfile)
	api.Put("/profiles/:user_id", h.UpdateProfile)

	api.Post("/upload/avatar", h.UploadAvatar)
	api.Post("/upload/recipe-images", h.UploadRecipeImages)

	api.Post("/favorites", h.AddFavorite)
	api.Get("/favorites/check/:user_id/:recipe_id", h.CheckFavorite)
	api.Get("/favorites/:user_id", h.ListFavorites)
	api.Delete("/favorites/:user_id/:recipe_id", h.RemoveFavorite)

	api.Post("/ratings", h.UpsertRating)
	api.Get("/ratings/user/:user_id/:recipe_id", h.GetUserRating)
	api.Delete("/ratings/:user_id/:recipe_id", h.DeleteRating)

	api.Post("/follows", h.Follow)
	api.Get("/follows/check/:follower_id/:following_id", h.CheckFollowing)
	api.Get("/follows/followers/:user_id", h.GetFollowers)
	api.Get("/follows/following/:user_id", h.GetFollowing)
	api.Get("/follows/stats/:user_id", h.GetFollowStats)
	api.Delete("/follows/:follower_id/:following_id", h.Unfollow)

	api.Get("/notifications/unread/count/:user_id", h.GetUnreadCount)
	api.Get("/notifications/:user_id", h.ListNotifications)
	api.Put("/notifications/read-all/:user_id", h.MarkAllNotificationsRead)
	api.Put("/notifications/:notification_id/read", h.MarkNotificationRead)
	api.Delete("/notifications/clear/:user_id", h.ClearNotifications)
	api.Delete("/notifications/:notification_id", h.DeleteNotification)
}

// ErrorHandler maps typed service errors to status codes and renders every
// error as {"detail": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, detail := apperr.Status(err)
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		detail = e.Message
	}
	if code == fiber.StatusInternalServerError {
		log.Printf("🔥 [ERROR] [%d] %s %s → %v | IP=%s", code, c.Method(), c.Path(), err, c.IP())
	}
	return c.Status(code).JSON(fiber.Map{"detail": detail})
}

// Helpers

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid %s", name)
	}
	return id, nil
}

func getQueryInt(c *fiber.Ctx, key string, def, min, max int) int {
	s := c.Query(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func getQueryFloat(c *fiber.Ctx, key string, def float64) float64 {
	s := c.Query(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}
