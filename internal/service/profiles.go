package service

import (
	"context"
	"errors"
	"strings"

	"recipe-service/pkg/apperr"
	"recipe-service/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxUserSearchResults caps /api/users/search.
const maxUserSearchResults = 20

// ProfileService reads and updates profiles. Profile rows are created by
// the auth platform, never here.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) Get(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("profile %s not found", id)
		}
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileService) Update(ctx context.Context, id uuid.UUID, req *models.ProfileRequest) (*models.Profile, error) {
	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	profile.Username = req.Username
	profile.FullName = req.FullName
	profile.Bio = req.Bio
	profile.AvatarURL = req.AvatarURL

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// SearchUsers matches the query as a case-insensitive substring of username
// or full name, capped at 20 results, each enriched with recipe and
// follower counts via separate counting queries.
func (s *ProfileService) SearchUsers(ctx context.Context, query string) ([]models.UserSearchResult, error) {
	needle := "%" + strings.ToLower(query) + "%"

	var profiles []models.Profile
	if err := s.db.WithContext(ctx).
		Where("LOWER(username) LIKE ? OR LOWER(full_name) LIKE ?", needle, needle).
		Limit(maxUserSearchResults).
		Find(&profiles).Error; err != nil {
		return nil, err
	}

	results := make([]models.UserSearchResult, 0, len(profiles))
	for _, p := range profiles {
		var recipeCount int64
		if err := s.db.WithContext(ctx).
			Model(&models.Recipe{}).
			Where("user_id = ?", p.ID).
			Count(&recipeCount).Error; err != nil {
			return nil, err
		}

		var followerCount int64
		if err := s.db.WithContext(ctx).
			Model(&models.Follow{}).
			Where("following_id = ?", p.ID).
			Count(&followerCount).Error; err != nil {
			return nil, err
		}

		results = append(results, models.UserSearchResult{
			Profile:        p,
			RecipeCount:    recipeCount,
			FollowersCount: followerCount,
		})
	}
	return results, nil
}
