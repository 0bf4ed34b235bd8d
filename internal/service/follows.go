package service

import (
	"context"

	"recipe-service/pkg/apperr"
	"recipe-service/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FollowService owns the social graph. Duplicate follows surface as a
// ConflictError via the store's uniqueness constraint; self-follow is
// rejected before any row is written.
type FollowService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewFollowService(db *gorm.DB, notifier *NotificationService) *FollowService {
	return &FollowService{db: db, notifier: notifier}
}

func (s *FollowService) Follow(ctx context.Context, followerID, followingID uuid.UUID) (*models.Follow, error) {
	if followerID == followingID {
		return nil, apperr.Validation("you cannot follow yourself")
	}

	follow := models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	if err := s.db.WithContext(ctx).Create(&follow).Error; err != nil {
		return nil, apperr.FromDuplicate(err, "you are already following this user")
	}

	var follower models.Profile
	if err := s.db.WithContext(ctx).First(&follower, "id = ?", followerID).Error; err == nil {
		s.notifier.NotifyFollow(ctx, follower.Username, followingID, followerID)
	}

	return &follow, nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Delete(&models.Follow{}, "follower_id = ? AND following_id = ?", followerID, followingID).Error
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// Followers lists who follows userID, newest-first, joined with the
// follower's profile. Entries whose profile cannot be resolved are dropped.
func (s *FollowService) Followers(ctx context.Context, userID uuid.UUID) ([]models.FollowEntry, error) {
	var follows []models.Follow
	if err := s.db.WithContext(ctx).
		Where("following_id = ?", userID).
		Order("created_at DESC").
		Find(&follows).Error; err != nil {
		return nil, err
	}
	return s.resolveEntries(ctx, follows, func(f models.Follow) uuid.UUID { return f.FollowerID }), nil
}

// Following lists who userID follows, same join and drop rule as Followers.
func (s *FollowService) Following(ctx context.Context, userID uuid.UUID) ([]models.FollowEntry, error) {
	var follows []models.Follow
	if err := s.db.WithContext(ctx).
		Where("follower_id = ?", userID).
		Order("created_at DESC").
		Find(&follows).Error; err != nil {
		return nil, err
	}
	return s.resolveEntries(ctx, follows, func(f models.Follow) uuid.UUID { return f.FollowingID }), nil
}

func (s *FollowService) resolveEntries(ctx context.Context, follows []models.Follow, counterpart func(models.Follow) uuid.UUID) []models.FollowEntry {
	entries := make([]models.FollowEntry, 0, len(follows))
	for _, f := range follows {
		var p models.Profile
		if err := s.db.WithContext(ctx).First(&p, "id = ?", counterpart(f)).Error; err != nil {
			continue
		}
		entries = append(entries, models.FollowEntry{
			ID:         p.ID,
			Username:   p.Username,
			AvatarURL:  p.AvatarURL,
			FollowedAt: f.CreatedAt,
		})
	}
	return entries
}

// Stats runs the two counting queries independently; there are no cached
// counters.
func (s *FollowService) Stats(ctx context.Context, userID uuid.UUID) (*models.FollowStats, error) {
	var stats models.FollowStats

	if err := s.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&stats.FollowersCount).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&stats.FollowingCount).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
