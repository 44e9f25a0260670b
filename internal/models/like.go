package models

import (
	"time"
)

// Like records a user's like on a photo.
// The combination of UserID and PhotoID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_photo_user_like" json:"user_id"`
	PhotoID   uint      `gorm:"not null;uniqueIndex:idx_photo_user_like" json:"photo_id"`
	CreatedAt time.Time `json:"created_at"`
}
