package models

import (
	"time"
)

// Event is a dated gathering, optionally attached to a group.
// Organizers are a subset of participants.
type Event struct {
	ID                  uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                string    `gorm:"size:255;not null" json:"name"`
	Description         *string   `gorm:"type:text" json:"description"`
	StartDate           time.Time `gorm:"not null;index" json:"start_date"`
	EndDate             time.Time `gorm:"not null" json:"end_date"`
	Location            string    `gorm:"size:255;not null" json:"location"`
	CoverURL            *string   `gorm:"size:2048" json:"cover_url"`
	IsPublic            bool      `gorm:"not null;index" json:"is_public"`
	GroupID             *uint     `gorm:"index" json:"group_id"`
	ShoppingListEnabled bool      `gorm:"not null" json:"shopping_list_enabled"`
	CreatedAt           time.Time `json:"created_at"`
}

// EventParticipant joins a user to an event
type EventParticipant struct {
	EventID   uint `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time
}

// EventOrganizer grants a participant organizer rights on an event
type EventOrganizer struct {
	EventID   uint `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time
}

// TableName overrides the table name for Event
func (Event) TableName() string {
	return "events"
}

// TableName overrides the table name for EventParticipant
func (EventParticipant) TableName() string {
	return "event_participants"
}

// TableName overrides the table name for EventOrganizer
func (EventOrganizer) TableName() string {
	return "event_organizers"
}
