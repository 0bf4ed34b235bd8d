package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-service/internal/service"
	transport "recipe-service/internal/transport/http"
	"recipe-service/pkg/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fakeUploader records uploads instead of talking to R2.
type fakeUploader struct {
	keys []string
}

func (f *fakeUploader) Upload(ctx context.Context, key string, content []byte, contentType string) error {
	f.keys = append(f.keys, key)
	return nil
}

func (f *fakeUploader) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

func setupApp(t *testing.T) (*fiber.App, *gorm.DB, *fakeUploader) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.Step{},
		&models.Rating{},
		&models.Favorite{},
		&models.Follow{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	uploader := &fakeUploader{}
	notifications := service.NewNotificationService(db)
	handler := transport.NewHandler(
		service.NewRecipeService(db),
		service.NewProfileService(db),
		service.NewFollowService(db, notifications),
		service.NewRatingService(db, notifications),
		service.NewFavoriteService(db, notifications),
		notifications,
		uploader,
	)

	app := fiber.New(fiber.Config{ErrorHandler: transport.ErrorHandler})
	handler.Register(app)
	return app, db, uploader
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*nethttp.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("failed to decode response %q: %v", raw, err)
		}
	}
	return resp, decoded
}

func TestGetCategories(t *testing.T) {
	app, _, _ := setupApp(t)

	resp, body := doJSON(t, app, "GET", "/api/categories", nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Len(t, body["data"], len(service.Categories))
}

func TestCreateAndGetRecipe(t *testing.T) {
	app, db, _ := setupApp(t)

	owner := models.Profile{Username: "alice"}
	assert.NoError(t, db.Create(&owner).Error)

	resp, body := doJSON(t, app, "POST", "/api/recipes", fiber.Map{
		"user_id":     owner.ID,
		"title":       "Tomato Soup",
		"category":    "Soup",
		"ingredients": []fiber.Map{{"name": "Tomato", "quantity": "6", "unit": "pcs"}},
		"steps":       []fiber.Map{{"description": "Simmer"}},
	})
	assert.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, "recipe created", body["message"])

	id := body["data"].(map[string]any)["id"].(string)

	resp, body = doJSON(t, app, "GET", "/api/recipes/"+id, nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Tomato Soup", body["recipe"].(map[string]any)["title"])
	assert.Equal(t, "alice", body["profile"].(map[string]any)["username"])
	assert.Len(t, body["ingredients"], 1)
	assert.Len(t, body["steps"], 1)
	assert.Equal(t, float64(0), body["avg_rating"])
}

func TestCreateRecipeMissingTitle(t *testing.T) {
	app, _, _ := setupApp(t)

	resp, body := doJSON(t, app, "POST", "/api/recipes", fiber.Map{"category": "Soup"})
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "title is required", body["detail"])
}

func TestGetRecipeInvalidAndMissingID(t *testing.T) {
	app, _, _ := setupApp(t)

	resp, body := doJSON(t, app, "GET", "/api/recipes/not-a-uuid", nil)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "invalid recipe_id", body["detail"])

	resp, body = doJSON(t, app, "GET", "/api/recipes/6f1a2b3c-4d5e-6f70-8192-a3b4c5d6e7f8", nil)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Contains(t, body["detail"], "not found")
}

func TestFollowRoundTrip(t *testing.T) {
	app, db, _ := setupApp(t)

	alice := models.Profile{Username: "alice"}
	bob := models.Profile{Username: "bob"}
	assert.NoError(t, db.Create(&alice).Error)
	assert.NoError(t, db.Create(&bob).Error)

	resp, _ := doJSON(t, app, "POST", "/api/follows", fiber.Map{
		"follower_id": alice.ID, "following_id": bob.ID,
	})
	assert.Equal(t, 201, resp.StatusCode)

	// duplicate comes back as a client error with a detail payload
	resp, body := doJSON(t, app, "POST", "/api/follows", fiber.Map{
		"follower_id": alice.ID, "following_id": bob.ID,
	})
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "you are already following this user", body["detail"])

	resp, body = doJSON(t, app, "GET", "/api/follows/check/"+alice.ID.String()+"/"+bob.ID.String(), nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, true, body["is_following"])

	resp, body = doJSON(t, app, "GET", "/api/follows/stats/"+bob.ID.String(), nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(1), body["followers_count"])
}

func TestUpsertRatingValidation(t *testing.T) {
	app, db, _ := setupApp(t)

	rater := models.Profile{Username: "rater"}
	assert.NoError(t, db.Create(&rater).Error)
	recipe := models.Recipe{Title: "Dish"}
	assert.NoError(t, db.Create(&recipe).Error)

	resp, body := doJSON(t, app, "POST", "/api/ratings", fiber.Map{
		"user_id": rater.ID, "recipe_id": recipe.ID, "rating": 6,
	})
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "rating must be between 1 and 5", body["detail"])

	resp, body = doJSON(t, app, "POST", "/api/ratings", fiber.Map{
		"user_id": rater.ID, "recipe_id": recipe.ID, "rating": 4,
	})
	assert.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, "rating added", body["message"])

	resp, body = doJSON(t, app, "POST", "/api/ratings", fiber.Map{
		"user_id": rater.ID, "recipe_id": recipe.ID, "rating": 5,
	})
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "rating updated", body["message"])
}

func TestFavoritesEndpoints(t *testing.T) {
	app, db, _ := setupApp(t)

	fan := models.Profile{Username: "fan"}
	assert.NoError(t, db.Create(&fan).Error)
	recipe := models.Recipe{Title: "Dish"}
	assert.NoError(t, db.Create(&recipe).Error)

	resp, _ := doJSON(t, app, "POST", "/api/favorites", fiber.Map{
		"user_id": fan.ID, "recipe_id": recipe.ID,
	})
	assert.Equal(t, 201, resp.StatusCode)

	resp, body := doJSON(t, app, "GET", "/api/favorites/check/"+fan.ID.String()+"/"+recipe.ID.String(), nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, true, body["is_favorite"])

	resp, body = doJSON(t, app, "GET", "/api/favorites/"+fan.ID.String(), nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])

	resp, _ = doJSON(t, app, "DELETE", "/api/favorites/"+fan.ID.String()+"/"+recipe.ID.String(), nil)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestUserSearchRequiresQuery(t *testing.T) {
	app, _, _ := setupApp(t)

	resp, body := doJSON(t, app, "GET", "/api/users/search", nil)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "query parameter 'q' is required", body["detail"])
}
