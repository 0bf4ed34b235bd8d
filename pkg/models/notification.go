package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeFollow   NotificationType = "follow"
	NotificationTypeRating   NotificationType = "rating"
	NotificationTypeFavorite NotificationType = "favorite"
)

// Notification is a social-activity alert addressed to one user. Rows are
// only ever created as a side effect of a follow, rating or favorite write,
// never directly through the notification routes.
type Notification struct {
	ID        uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID        `json:"user_id" gorm:"type:uuid;index;not null"`
	Type      NotificationType `json:"type" gorm:"type:varchar(20);not null"`
	Title     string           `json:"title" gorm:"type:varchar(100);not null"`
	Message   string           `json:"message" gorm:"type:text;not null"`
	Link      string           `json:"link" gorm:"type:varchar(500)"`
	Read      bool             `json:"read" gorm:"not null;default:false;index"`
	CreatedAt time.Time        `json:"created_at" gorm:"index"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
