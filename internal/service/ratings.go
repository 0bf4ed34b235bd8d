package service

import (
	"context"
	"errors"

	"recipe-service/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RatingService upserts ratings keyed by (user, recipe). Only a first
// insert notifies the recipe owner; updates and self-ratings stay quiet.
type RatingService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewRatingService(db *gorm.DB, notifier *NotificationService) *RatingService {
	return &RatingService{db: db, notifier: notifier}
}

// Upsert creates or updates the caller's rating for a recipe. The returned
// bool reports whether a new row was created.
func (s *RatingService) Upsert(ctx context.Context, req *models.RatingRequest) (*models.Rating, bool, error) {
	var existing models.Rating
	err := s.db.WithContext(ctx).
		First(&existing, "user_id = ? AND recipe_id = ?", req.UserID, req.RecipeID).Error

	if err == nil {
		existing.Rating = req.Rating
		existing.Comment = req.Comment
		if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, false, err
		}
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	rating := models.Rating{
		UserID:   req.UserID,
		RecipeID: req.RecipeID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := s.db.WithContext(ctx).Create(&rating).Error; err != nil {
		return nil, false, err
	}

	s.notifyOwner(ctx, &rating)
	return &rating, true, nil
}

// notifyOwner looks up the recipe owner and rater; it stays silent when the
// recipe is ownerless, the rater owns the recipe, or either lookup fails.
func (s *RatingService) notifyOwner(ctx context.Context, rating *models.Rating) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", rating.RecipeID).Error; err != nil {
		return
	}
	if recipe.UserID == nil || *recipe.UserID == rating.UserID {
		return
	}

	var rater models.Profile
	if err := s.db.WithContext(ctx).First(&rater, "id = ?", rating.UserID).Error; err != nil {
		return
	}

	s.notifier.NotifyRating(ctx, rater.Username, *recipe.UserID, recipe.ID, recipe.Title, rating.Rating)
}

func (s *RatingService) Delete(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Delete(&models.Rating{}, "user_id = ? AND recipe_id = ?", userID, recipeID).Error
}

// GetUserRating returns the caller's rating for a recipe, or nil when none
// exists.
func (s *RatingService) GetUserRating(ctx context.Context, userID, recipeID uuid.UUID) (*models.Rating, error) {
	var rating models.Rating
	err := s.db.WithContext(ctx).
		First(&rating, "user_id = ? AND recipe_id = ?", userID, recipeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}
