package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TicketType is a purchasable ticket class of a public event
type TicketType struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID       uint            `gorm:"not null;index" json:"event_id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	QuantityLimit int             `gorm:"not null" json:"quantity_limit"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TicketPurchase is a sold ticket; one per email per event
type TicketPurchase struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID      uint      `gorm:"not null;uniqueIndex:idx_ticket_purchase_event_email" json:"event_id"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:idx_ticket_purchase_event_email" json:"email"`
	TicketTypeID uint      `gorm:"not null;index" json:"ticket_type_id"`
	FirstName    *string   `gorm:"size:255" json:"first_name"`
	LastName     *string   `gorm:"size:255" json:"last_name"`
	Address      *string   `gorm:"type:text" json:"address"`
	Reference    string    `gorm:"size:36;not null;uniqueIndex" json:"reference"`
	PurchasedAt  time.Time `gorm:"not null" json:"purchased_at"`
}

// TableName overrides the table name for TicketType
func (TicketType) TableName() string {
	return "ticket_types"
}

// TableName overrides the table name for TicketPurchase
func (TicketPurchase) TableName() string {
	return "ticket_purchases"
}
