// Package models contains data structures for the application's domain models.
package models

import (
	"encoding/json"
	"time"
)

// Comment is embedded in a Photo aggregate. Mentions hold the users
// referenced in the comment text, validated against the user store at
// creation time.
type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	PhotoID  uint      `gorm:"not null;index" json:"photo_id"`
	UserID   uint      `gorm:"not null" json:"user_id"`
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Text     string    `gorm:"type:text;not null" json:"comment"`
	DateTime time.Time `gorm:"not null" json:"date_time"`
	Mentions []User    `gorm:"many2many:comment_mentions" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Author returns the id+name projection of the comment's author, for
// responses that embed it.
func (c *Comment) Author() UserRef {
	return c.User.Ref()
}

// MarshalJSON embeds the author and mention projections alongside the raw
// comment columns.
func (c Comment) MarshalJSON() ([]byte, error) {
	type raw Comment
	return json.Marshal(struct {
		raw
		Author   UserRef `json:"author"`
		Mentions []uint  `json:"mentions,omitempty"`
	}{raw(c), c.Author(), c.MentionIDs()})
}

// MentionIDs returns the ids of the users mentioned in the comment.
func (c *Comment) MentionIDs() []uint {
	ids := make([]uint, 0, len(c.Mentions))
	for _, u := range c.Mentions {
		ids = append(ids, u.ID)
	}
	return ids
}
