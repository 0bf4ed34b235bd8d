package service_test

import (
	"context"
	"testing"

	"recipe-service/internal/service"
	"recipe-service/pkg/apperr"
	"recipe-service/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestFollowAndNotify(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	follows := service.NewFollowService(db, service.NewNotificationService(db))

	alice := createProfile(t, db, "alice")
	bob := createProfile(t, db, "bob")

	follow, err := follows.Follow(ctx, alice.ID, bob.ID)
	assert.NoError(t, err)
	assert.Equal(t, alice.ID, follow.FollowerID)

	following, err := follows.IsFollowing(ctx, alice.ID, bob.ID)
	assert.NoError(t, err)
	assert.True(t, following)

	// bob got exactly one follow notification naming alice
	var n models.Notification
	assert.NoError(t, db.First(&n, "user_id = ?", bob.ID).Error)
	assert.Equal(t, models.NotificationTypeFollow, n.Type)
	assert.Contains(t, n.Message, "alice")
	assert.Equal(t, int64(1), countNotifications(t, db, bob.ID))
}

func TestFollowSelfRejected(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	follows := service.NewFollowService(db, service.NewNotificationService(db))

	alice := createProfile(t, db, "alice")

	_, err := follows.Follow(ctx, alice.ID, alice.ID)
	var verr *apperr.ValidationError
	assert.ErrorAs(t, err, &verr)

	// no row was written
	var count int64
	assert.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestFollowDuplicateConflict(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	follows := service.NewFollowService(db, service.NewNotificationService(db))

	alice := createProfile(t, db, "alice")
	bob := createProfile(t, db, "bob")

	_, err := follows.Follow(ctx, alice.ID, bob.ID)
	assert.NoError(t, err)

	_, err = follows.Follow(ctx, alice.ID, bob.ID)
	var cerr *apperr.ConflictError
	assert.ErrorAs(t, err, &cerr)
}

func TestUnfollow(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	follows := service.NewFollowService(db, service.NewNotificationService(db))

	alice := createProfile(t, db, "alice")
	bob := createProfile(t, db, "bob")

	_, err := follows.Follow(ctx, alice.ID, bob.ID)
	assert.NoError(t, err)
	assert.NoError(t, follows.Unfollow(ctx, alice.ID, bob.ID))

	following, err := follows.IsFollowing(ctx, alice.ID, bob.ID)
	assert.NoError(t, err)
	assert.False(t, following)

	// unfollowing twice is a no-op
	assert.NoError(t, follows.Unfollow(ctx, alice.ID, bob.ID))
}

func TestFollowersAndFollowing(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	follows := service.NewFollowService(db, service.NewNotificationService(db))

	alice := createProfile(t, db, "alice")
	bob := createProfile(t, db, "bob")
	carol := createProfile(t, db, "carol")

	_, err := follows.Follow(ctx, alice.ID, carol.ID)
	assert.NoError(t, err)
	_, err = follows.Follow(ctx, bob.ID, carol.ID)
	assert.NoError(t, err)
	_, err = follows.Follow(ctx, carol.ID, alice.ID)
	assert.NoError(t, err)

	followers, err := follows.Followers(ctx, carol.ID)
	assert.NoError(t, err)
	assert.Len(t, followers, 2)

	following, err := follows.Following(ctx, carol.ID)
	assert.NoError(t, err)
	assert.Len(t, following, 1)
	assert.Equal(t, "alice", following[0].Username)
}

func TestFollowersDropUnresolvedProfiles(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	follows := service.NewFollowService(db, service.NewNotificationService(db))

	alice := createProfile(t, db, "alice")
	bob := createProfile(t, db, "bob")

	_, err := follows.Follow(ctx, alice.ID, bob.ID)
	assert.NoError(t, err)

	// follower's profile disappears; the listing silently drops the entry
	assert.NoError(t, db.Delete(&models.Profile{}, "id = ?", alice.ID).Error)

	followers, err := follows.Followers(ctx, bob.ID)
	assert.NoError(t, err)
	assert.Len(t, followers, 0)
}

func TestFollowStats(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	follows := service.NewFollowService(db, service.NewNotificationService(db))

	alice := createProfile(t, db, "alice")
	bob := createProfile(t, db, "bob")
	carol := createProfile(t, db, "carol")

	_, err := follows.Follow(ctx, alice.ID, bob.ID)
	assert.NoError(t, err)
	_, err = follows.Follow(ctx, carol.ID, bob.ID)
	assert.NoError(t, err)
	_, err = follows.Follow(ctx, bob.ID, alice.ID)
	assert.NoError(t, err)

	stats, err := follows.Stats(ctx, bob.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), stats.FollowersCount)
	assert.Equal(t, int64(1), stats.FollowingCount)
}
