// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Photo is the aggregate root for an uploaded photo. Its comments and like
// set are owned exclusively by the photo and have no independent lifecycle.
type Photo struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;index" json:"user_id"`
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	FileName string    `gorm:"unique;not null" json:"file_name"`
	DateTime time.Time `gorm:"not null" json:"date_time"`
	Comments []Comment `gorm:"foreignKey:PhotoID" json:"comments"`
	Likes    []Like    `gorm:"foreignKey:PhotoID" json:"-"`

	// LikesCount and Liked are computed per request, not persisted.
	LikesCount int  `gorm:"-" json:"likes,omitempty"`
	Liked      bool `gorm:"-" json:"liked_by_user,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// PhotoSummary is the projection returned by the photo usage endpoint.
type PhotoSummary struct {
	ID            uint      `json:"id"`
	FileName      string    `json:"file_name"`
	DateTime      time.Time `json:"date_time"`
	CommentsCount int       `json:"comments_count,omitempty"`
}

// PhotoUsage pairs the two derived views over a user's photos. Both fields
// are nil when the user owns no photos; that is a valid outcome, not an error.
type PhotoUsage struct {
	MostRecentPhoto    *PhotoSummary `json:"most_recent_photo"`
	MostCommentedPhoto *PhotoSummary `json:"most_commented_photo"`
}
