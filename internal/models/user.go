// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account in the Photoshare application.
// Password holds the bcrypt digest and is never serialized.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	LoginName   string    `gorm:"unique;not null" json:"login_name"`
	Password    string    `gorm:"not null" json:"-"`
	FirstName   string    `gorm:"not null" json:"first_name"`
	LastName    string    `gorm:"not null" json:"last_name"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	Occupation  string    `json:"occupation,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Photos      []Photo   `gorm:"foreignKey:UserID" json:"photos,omitempty"`
}

// PublicProfile is the projection of a User exposed on public endpoints.
type PublicProfile struct {
	ID          uint   `json:"id"`
	LoginName   string `json:"login_name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	Occupation  string `json:"occupation,omitempty"`
}

// Public returns the public projection of the user.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:          u.ID,
		LoginName:   u.LoginName,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Location:    u.Location,
		Description: u.Description,
		Occupation:  u.Occupation,
	}
}

// UserRef is the id+name projection used for mention suggestions and
// comment author display.
type UserRef struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Ref returns the short id+name projection of the user.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}
