package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User is an account holder
type User struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email          string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FullName       *string   `gorm:"size:255" json:"full_name"`
	HashedPassword string    `gorm:"size:255;not null" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeSave normalizes the email so the unique index is case-insensitive
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	return nil
}

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserSummary is the public projection of a user embedded in other payloads
type UserSummary struct {
	ID       uint    `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
}

// Summary returns the public projection of the user
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email, FullName: u.FullName}
}

// Summaries projects a list of users
func Summaries(users []User) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, u.Summary())
	}
	return out
}
