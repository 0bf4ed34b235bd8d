package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating holds at most one row per (user, recipe), enforced by the composite
// unique index. Writes go through upsert-by-lookup in the service layer.
type Rating struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_recipe"`
	RecipeID  uuid.UUID `json:"recipe_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_recipe"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RatingView joins a rating with its author's username and avatar for the
// recipe detail view.
type RatingView struct {
	Rating
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

// RatingRequest is the API input for rating upsert.
type RatingRequest struct {
	UserID   uuid.UUID `json:"user_id"`
	RecipeID uuid.UUID `json:"recipe_id"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment"`
}

// Favorite is a user bookmarking a recipe, at most one per (user, recipe).
type Favorite struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_recipe"`
	RecipeID  uuid.UUID `json:"recipe_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_recipe"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// FavoriteRequest is the API input for adding a favorite.
type FavoriteRequest struct {
	UserID   uuid.UUID `json:"user_id"`
	RecipeID uuid.UUID `json:"recipe_id"`
}

// FavoriteEntry is the list view: the favorited recipe with its owner
// profile attached, plus when it was favorited.
type FavoriteEntry struct {
	ID        uuid.UUID         `json:"id"`
	Recipe    RecipeWithProfile `json:"recipe"`
	CreatedAt time.Time         `json:"created_at"`
}

// Follow records follower following another user. Unique per pair;
// self-follow is rejected before any write.
type Follow struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FollowerID  uuid.UUID `json:"follower_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_follows_pair"`
	FollowingID uuid.UUID `json:"following_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_follows_pair"`
	CreatedAt   time.Time `json:"created_at"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// FollowRequest is the API input for following a user.
type FollowRequest struct {
	FollowerID  uuid.UUID `json:"follower_id"`
	FollowingID uuid.UUID `json:"following_id"`
}

// FollowEntry is one row of a followers/following listing: the counterpart
// profile plus the follow timestamp.
type FollowEntry struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	AvatarURL  *string   `json:"avatar_url"`
	FollowedAt time.Time `json:"followed_at"`
}

// FollowStats carries the two independent counters for a user.
type FollowStats struct {
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
}
