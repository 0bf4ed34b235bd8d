package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"recipe-service/pkg/apperr"
	"recipe-service/pkg/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Categories is the fixed enumerated set served by /api/categories. It is
// not store-backed.
var Categories = []string{
	"Main Course",
	"Soup",
	"Salad",
	"Dessert",
	"Drink",
	"Appetizer",
	"Breakfast",
}

// RecipeService assembles recipe views and owns the recipe + children write
// path. Child rows (ingredients, steps) are fully replaced on update with a
// freshly assigned dense 1-based order.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// profileSummary resolves an owner id to its slim profile view, falling
// back to the Anonymous sentinel when the id is nil or unresolvable.
func profileSummary(ctx context.Context, db *gorm.DB, userID *uuid.UUID) models.ProfileSummary {
	if userID == nil {
		return models.AnonymousProfile()
	}
	var p models.Profile
	if err := db.WithContext(ctx).First(&p, "id = ?", *userID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("⚠️ [RECIPES] failed to resolve profile %s: %v", *userID, err)
		}
		return models.AnonymousProfile()
	}
	fullName := p.FullName
	return models.ProfileSummary{
		Username:  p.Username,
		FullName:  &fullName,
		AvatarURL: p.AvatarURL,
	}
}

// List returns recipes newest-first, optionally filtered by exact category
// and difficulty, each with its owner profile attached.
func (s *RecipeService) List(ctx context.Context, category, difficulty string, limit int) ([]models.RecipeWithProfile, error) {
	q := s.db.WithContext(ctx).Model(&models.Recipe{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if difficulty != "" {
		q = q.Where("difficulty = ?", difficulty)
	}

	var recipes []models.Recipe
	if err := q.Order("created_at DESC").Limit(limit).Find(&recipes).Error; err != nil {
		return nil, err
	}

	return s.attachProfiles(ctx, recipes), nil
}

func (s *RecipeService) attachProfiles(ctx context.Context, recipes []models.Recipe) []models.RecipeWithProfile {
	out := make([]models.RecipeWithProfile, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, models.RecipeWithProfile{
			Recipe:  r,
			Profile: profileSummary(ctx, s.db, r.UserID),
		})
	}
	return out
}

// Get assembles the full detail view: ordered children, ratings joined with
// rater identity, and the arithmetic mean rating (0 when unrated).
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*models.RecipeDetail, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("recipe %s not found", id)
		}
		return nil, err
	}

	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).
		Where("recipe_id = ?", id).
		Order("order_index ASC").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}

	var steps []models.Step
	if err := s.db.WithContext(ctx).
		Where("recipe_id = ?", id).
		Order("step_number ASC").
		Find(&steps).Error; err != nil {
		return nil, err
	}

	var ratings []models.Rating
	if err := s.db.WithContext(ctx).
		Where("recipe_id = ?", id).
		Find(&ratings).Error; err != nil {
		return nil, err
	}

	ratingViews := make([]models.RatingView, 0, len(ratings))
	for _, r := range ratings {
		raterID := r.UserID
		rater := profileSummary(ctx, s.db, &raterID)
		ratingViews = append(ratingViews, models.RatingView{
			Rating:    r,
			Username:  rater.Username,
			AvatarURL: rater.AvatarURL,
		})
	}

	return &models.RecipeDetail{
		Recipe:      recipe,
		Profile:     profileSummary(ctx, s.db, recipe.UserID),
		Ingredients: ingredients,
		Steps:       steps,
		Ratings:     ratingViews,
		AvgRating:   meanRating(ratings),
	}, nil
}

func meanRating(ratings []models.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	return float64(sum) / float64(len(ratings))
}

// Create writes the recipe and its children in one transaction.
func (s *RecipeService) Create(ctx context.Context, req *models.RecipeRequest) (*models.Recipe, error) {
	recipe := models.Recipe{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
		PrepTime:    req.PrepTime,
		CookTime:    req.CookTime,
		Servings:    req.Servings,
		ImageURL:    firstImageURL(req.ImageURLs),
		ImageURLs:   datatypes.NewJSONSlice(req.ImageURLs),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return replaceChildren(tx, recipe.ID, req.Ingredients, req.Steps)
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Update rewrites the core fields and replaces the child sets wholesale,
// all in one transaction so a failed child write rolls the recipe back too.
func (s *RecipeService) Update(ctx context.Context, id uuid.UUID, req *models.RecipeRequest) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("recipe %s not found", id)
		}
		return nil, err
	}

	recipe.Title = req.Title
	recipe.Description = req.Description
	recipe.Category = req.Category
	recipe.Difficulty = req.Difficulty
	recipe.PrepTime = req.PrepTime
	recipe.CookTime = req.CookTime
	recipe.Servings = req.Servings
	recipe.ImageURL = firstImageURL(req.ImageURLs)
	recipe.ImageURLs = datatypes.NewJSONSlice(req.ImageURLs)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&recipe).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Ingredient{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Step{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		return replaceChildren(tx, id, req.Ingredients, req.Steps)
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// replaceChildren inserts the given ingredient and step sets with order
// assigned from slice position, 1-based.
func replaceChildren(tx *gorm.DB, recipeID uuid.UUID, ingredients []models.IngredientInput, steps []models.StepInput) error {
	if len(ingredients) > 0 {
		rows := make([]models.Ingredient, 0, len(ingredients))
		for i, ing := range ingredients {
			rows = append(rows, models.Ingredient{
				RecipeID:   recipeID,
				Name:       ing.Name,
				Quantity:   ing.Quantity,
				Unit:       ing.Unit,
				OrderIndex: i + 1,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}

	if len(steps) > 0 {
		rows := make([]models.Step, 0, len(steps))
		for i, st := range steps {
			rows = append(rows, models.Step{
				RecipeID:    recipeID,
				StepNumber:  i + 1,
				Description: st.Description,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the recipe row; children cascade via the store's
// referential rules.
func (s *RecipeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id).Error
}

// RecipeSearchParams carries every search filter. Zero values mean "not
// set" (MinRating 0 applies no rating filter, matching the original API).
type RecipeSearchParams struct {
	Query      string
	Category   string
	Difficulty string
	MaxTime    int
	MinRating  float64
	SortBy     string
	Order      string
	Limit      int
	Offset     int
}

// searchSortFields allowlists ORDER BY targets; everything else falls back
// to created_at.
var searchSortFields = map[string]bool{
	"created_at": true,
	"prep_time":  true,
	"cook_time":  true,
	"servings":   true,
	"title":      true,
}

// Search pages recipes out of the store by the indexed filters, then applies
// the free-text and minimum-rating filters in memory. The page size is
// computed before those in-memory filters, so a returned page may hold fewer
// items than requested.
func (s *RecipeService) Search(ctx context.Context, p RecipeSearchParams) ([]models.RecipeWithProfile, error) {
	q := s.db.WithContext(ctx).Model(&models.Recipe{})
	if p.Category != "" {
		q = q.Where("category = ?", p.Category)
	}
	if p.Difficulty != "" {
		q = q.Where("difficulty = ?", p.Difficulty)
	}
	if p.MaxTime > 0 {
		q = q.Where("prep_time <= ? AND cook_time <= ?", p.MaxTime, p.MaxTime)
	}

	sortBy := p.SortBy
	if !searchSortFields[sortBy] {
		sortBy = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(p.Order, "asc") {
		dir = "ASC"
	}

	var recipes []models.Recipe
	if err := q.Order(fmt.Sprintf("%s %s", sortBy, dir)).
		Offset(p.Offset).
		Limit(p.Limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}

	results := s.attachProfiles(ctx, recipes)

	if p.Query != "" {
		needle := strings.ToLower(p.Query)
		filtered := results[:0]
		for _, r := range results {
			if strings.Contains(strings.ToLower(r.Title), needle) ||
				strings.Contains(strings.ToLower(r.Description), needle) {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	if p.MinRating > 0 {
		filtered := make([]models.RecipeWithProfile, 0, len(results))
		for _, r := range results {
			var ratings []models.Rating
			if err := s.db.WithContext(ctx).
				Where("recipe_id = ?", r.ID).
				Find(&ratings).Error; err != nil {
				return nil, err
			}
			if len(ratings) > 0 && meanRating(ratings) >= p.MinRating {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	return results, nil
}

func firstImageURL(urls []string) *string {
	if len(urls) == 0 {
		return nil
	}
	first := urls[0]
	return &first
}
