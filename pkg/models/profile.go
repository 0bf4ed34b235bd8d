package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is a user's public identity. Rows are created alongside account
// creation by the auth platform; this service only reads and updates them.
type Profile struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Username  string    `json:"username" gorm:"type:varchar(64);uniqueIndex;not null"`
	FullName  string    `json:"full_name" gorm:"type:varchar(120)"`
	Bio       string    `json:"bio" gorm:"type:text"`
	AvatarURL *string   `json:"avatar_url" gorm:"type:varchar(500)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProfileRequest is the API input for profile updates.
type ProfileRequest struct {
	Username  string  `json:"username"`
	FullName  string  `json:"full_name"`
	Bio       string  `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

// ProfileSummary is the slim owner/rater view attached to recipes and
// ratings. When the owning profile is missing it falls back to Anonymous.
type ProfileSummary struct {
	Username  string  `json:"username"`
	FullName  *string `json:"full_name,omitempty"`
	AvatarURL *string `json:"avatar_url"`
}

// AnonymousProfile is the sentinel substituted whenever a recipe's owner
// cannot be resolved. Views must never carry a null profile.
func AnonymousProfile() ProfileSummary {
	return ProfileSummary{Username: "Anonymous"}
}

// UserSearchResult enriches a profile with activity counters.
type UserSearchResult struct {
	Profile
	RecipeCount    int64 `json:"recipe_count"`
	FollowersCount int64 `json:"followers_count"`
}
