package service

import (
	"context"
	"errors"

	"recipe-service/pkg/apperr"
	"recipe-service/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FavoriteService owns bookmarks. Duplicates surface as ConflictError;
// favoriting your own recipe is allowed but does not notify.
type FavoriteService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewFavoriteService(db *gorm.DB, notifier *NotificationService) *FavoriteService {
	return &FavoriteService{db: db, notifier: notifier}
}

func (s *FavoriteService) Add(ctx context.Context, req *models.FavoriteRequest) (*models.Favorite, error) {
	favorite := models.Favorite{
		UserID:   req.UserID,
		RecipeID: req.RecipeID,
	}
	if err := s.db.WithContext(ctx).Create(&favorite).Error; err != nil {
		return nil, apperr.FromDuplicate(err, "this recipe is already in your favorites")
	}

	s.notifyOwner(ctx, &favorite)
	return &favorite, nil
}

func (s *FavoriteService) notifyOwner(ctx context.Context, favorite *models.Favorite) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", favorite.RecipeID).Error; err != nil {
		return
	}
	if recipe.UserID == nil || *recipe.UserID == favorite.UserID {
		return
	}

	var favoriter models.Profile
	if err := s.db.WithContext(ctx).First(&favoriter, "id = ?", favorite.UserID).Error; err != nil {
		return
	}

	s.notifier.NotifyFavorite(ctx, favoriter.Username, *recipe.UserID, recipe.ID, recipe.Title)
}

func (s *FavoriteService) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Delete(&models.Favorite{}, "user_id = ? AND recipe_id = ?", userID, recipeID).Error
}

func (s *FavoriteService) IsFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

// ListByUser returns a user's favorites newest-first, each carrying the
// favorited recipe with its owner profile attached. Entries whose recipe no
// longer exists are dropped.
func (s *FavoriteService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.FavoriteEntry, error) {
	var favorites []models.Favorite
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return nil, err
	}

	entries := make([]models.FavoriteEntry, 0, len(favorites))
	for _, fav := range favorites {
		var recipe models.Recipe
		if err := s.db.WithContext(ctx).First(&recipe, "id = ?", fav.RecipeID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			continue
		}
		entries = append(entries, models.FavoriteEntry{
			ID: fav.ID,
			Recipe: models.RecipeWithProfile{
				Recipe:  recipe,
				Profile: profileSummary(ctx, s.db, recipe.UserID),
			},
			CreatedAt: fav.CreatedAt,
		})
	}
	return entries, nil
}
