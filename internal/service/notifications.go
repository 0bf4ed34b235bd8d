package service

import (
	"context"
	"fmt"
	"log"

	"recipe-service/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxNotificationPage caps every notification listing.
const maxNotificationPage = 50

// NotificationService is plain CRUD over a recipient's notifications plus
// the three side-effect creation helpers. The helpers swallow their own
// failures: a broken notification write must never fail the follow, rating
// or favorite that triggered it.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]models.Notification, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}

	var notifications []models.Notification
	err := q.Order("created_at DESC").Limit(maxNotificationPage).Find(&notifications).Error
	return notifications, err
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (s *NotificationService) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("read", true).Error
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

func (s *NotificationService) Delete(ctx context.Context, notificationID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Delete(&models.Notification{}, "id = ?", notificationID).Error
}

func (s *NotificationService) ClearAll(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Delete(&models.Notification{}, "user_id = ?", userID).Error
}

// NotifyFollow alerts followedUserID that followerUsername now follows them.
func (s *NotificationService) NotifyFollow(ctx context.Context, followerUsername string, followedUserID, followerID uuid.UUID) {
	s.create(ctx, &models.Notification{
		UserID:  followedUserID,
		Type:    models.NotificationTypeFollow,
		Title:   "New Follower",
		Message: fmt.Sprintf("%s started following you", followerUsername),
		Link:    fmt.Sprintf("/user/%s", followerID),
	})
}

// NotifyRating alerts a recipe owner about a newly created rating. Rating
// updates do not renotify; callers only invoke this on first insert.
func (s *NotificationService) NotifyRating(ctx context.Context, raterUsername string, ownerID, recipeID uuid.UUID, recipeTitle string, rating int) {
	s.create(ctx, &models.Notification{
		UserID:  ownerID,
		Type:    models.NotificationTypeRating,
		Title:   "New Rating",
		Message: fmt.Sprintf("%s rated '%s' %d stars", raterUsername, recipeTitle, rating),
		Link:    fmt.Sprintf("/recipe/%s", recipeID),
	})
}

// NotifyFavorite alerts a recipe owner that someone favorited their recipe.
func (s *NotificationService) NotifyFavorite(ctx context.Context, favoriterUsername string, ownerID, recipeID uuid.UUID, recipeTitle string) {
	s.create(ctx, &models.Notification{
		UserID:  ownerID,
		Type:    models.NotificationTypeFavorite,
		Title:   "Recipe Favorited",
		Message: fmt.Sprintf("%s added '%s' to their favorites", favoriterUsername, recipeTitle),
		Link:    fmt.Sprintf("/recipe/%s", recipeID),
	})
}

// create logs and swallows failures so the triggering request still succeeds.
func (s *NotificationService) create(ctx context.Context, n *models.Notification) {
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		log.Printf("⚠️ [NOTIFY] failed to create %s notification for user %s: %v", n.Type, n.UserID, err)
	}
}
