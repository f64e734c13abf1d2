package models

import (
	"time"
)

// ShoppingItem is something a participant brings to an event; names are unique per event
type ShoppingItem struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID     uint       `gorm:"not null;uniqueIndex:idx_shopping_item_event_name" json:"event_id"`
	Name        string     `gorm:"size:255;not null;uniqueIndex:idx_shopping_item_event_name" json:"name"`
	UserID      uint       `gorm:"not null;index" json:"-"`
	Quantity    int        `gorm:"not null" json:"quantity"`
	ArrivalTime *time.Time `json:"arrival_time"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TableName overrides the table name for ShoppingItem
func (ShoppingItem) TableName() string {
	return "shopping_items"
}

// All returns every model in dependency order, for migrations
func All() []interface{} {
	return []interface{}{
		&User{},
		&Group{},
		&GroupMember{},
		&GroupAdmin{},
		&Event{},
		&EventParticipant{},
		&EventOrganizer{},
		&Discussion{},
		&Message{},
		&PhotoAlbum{},
		&Photo{},
		&PhotoComment{},
		&Poll{},
		&PollQuestion{},
		&PollOption{},
		&PollVote{},
		&TicketType{},
		&TicketPurchase{},
		&ShoppingItem{},
	}
}
