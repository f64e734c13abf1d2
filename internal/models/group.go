package models

import (
	"time"
)

// Group visibility types
const (
	GroupPublic  = "public"
	GroupPrivate = "private"
	GroupSecret  = "secret"
)

// ValidGroupType reports whether t is a known group type
func ValidGroupType(t string) bool {
	switch t {
	case GroupPublic, GroupPrivate, GroupSecret:
		return true
	}
	return false
}

// Group is a set of members governed by a set of admins (admins are a subset of members)
type Group struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name              string    `gorm:"size:255;not null" json:"name"`
	Description       *string   `gorm:"type:text" json:"description"`
	IconURL           *string   `gorm:"size:2048" json:"icon_url"`
	CoverURL          *string   `gorm:"size:2048" json:"cover_url"`
	GroupType         string    `gorm:"size:20;not null" json:"group_type"`
	AllowMemberPosts  bool      `gorm:"not null" json:"allow_member_posts"`
	AllowMemberEvents bool      `gorm:"not null" json:"allow_member_events"`
	CreatedAt         time.Time `json:"created_at"`
}

// GroupMember joins a user to a group
type GroupMember struct {
	GroupID   uint `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time
}

// GroupAdmin grants a member admin rights on a group
type GroupAdmin struct {
	GroupID   uint `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time
}

// TableName overrides the table name for Group
func (Group) TableName() string {
	return "groups"
}

// TableName overrides the table name for GroupMember
func (GroupMember) TableName() string {
	return "group_members"
}

// TableName overrides the table name for GroupAdmin
func (GroupAdmin) TableName() string {
	return "group_admins"
}
