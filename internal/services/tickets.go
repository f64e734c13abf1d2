package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/socialdb/internal/models"
	"github.com/localnerve/socialdb/internal/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TicketTypeInput is the body of POST /events/:id/tickets/types
type TicketTypeInput struct {
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	QuantityLimit int             `json:"quantity_limit"`
}

// PurchaseInput is the body of POST /events/:id/tickets/purchase
type PurchaseInput struct {
	TicketTypeID types.FlexID `json:"ticket_type_id"`
	Email        string       `json:"email"`
	FirstName    *string      `json:"first_name"`
	LastName     *string      `json:"last_name"`
	Address      *string      `json:"address"`
}

// ticketingEvent loads an event that must be public to sell tickets
func ticketingEvent(db *gorm.DB, eventID uint) (*models.Event, error) {
	event, err := loadEvent(db, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsPublic {
		return nil, types.Forbidden("Ticketing is only available for public events")
	}
	return event, nil
}

// CreateTicketType adds a ticket class to a public event; organizers only
func CreateTicketType(db *gorm.DB, actor *models.User, eventID uint, in TicketTypeInput) (*models.TicketType, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, types.BadRequest("Ticket type name is required")
	}
	if in.Amount.IsNegative() {
		return nil, types.BadRequest("Ticket amount must not be negative")
	}
	if in.QuantityLimit < 1 {
		return nil, types.BadRequest("Ticket quantity_limit must be at least 1")
	}

	var ticketType *models.TicketType
	err := db.Transaction(func(tx *gorm.DB) error {
		event, err := ticketingEvent(tx, eventID)
		if err != nil {
			return err
		}
		if err := requireEventOrganizer(tx, event.ID, actor, "manage ticketing"); err != nil {
			return err
		}

		ticketType = &models.TicketType{
			EventID:       event.ID,
			Name:          name,
			Amount:        in.Amount.Round(2),
			QuantityLimit: in.QuantityLimit,
		}
		return errors.Wrap(tx.Create(ticketType).Error, "failed to create ticket type")
	})
	if err != nil {
		return nil, err
	}
	return ticketType, nil
}

// ListTicketTypes returns the ticket classes of a public event
func ListTicketTypes(db *gorm.DB, eventID uint) ([]models.TicketType, error) {
	if _, err := ticketingEvent(db, eventID); err != nil {
		return nil, err
	}

	ticketTypes := []models.TicketType{}
	err := tagged(db, "list_ticket_types").
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&ticketTypes).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ticket types")
	}
	return ticketTypes, nil
}

// PurchaseTicket sells one ticket to an email address; no account needed.
// One purchase per email per event, and never more than the type's quantity limit.
func PurchaseTicket(db *gorm.DB, eventID uint, in PurchaseInput) (*models.TicketPurchase, error) {
	email := models.NormalizeEmail(in.Email)
	if !validEmail(email) {
		return nil, types.BadRequest("A valid email is required")
	}

	var purchase *models.TicketPurchase
	err := db.Transaction(func(tx *gorm.DB) error {
		event, err := ticketingEvent(tx, eventID)
		if err != nil {
			return err
		}

		// The type row lock serializes the stock check below
		var ticketType models.TicketType
		err = quiet(forUpdate(tx)).
			Where("id = ? AND event_id = ?", in.TicketTypeID.Uint(), event.ID).
			First(&ticketType).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NotFound("Ticket type not found for this event")
		}
		if err != nil {
			return errors.Wrap(err, "failed to load ticket type")
		}

		var already int64
		if err := tx.Model(&models.TicketPurchase{}).Where("event_id = ? AND email = ?", event.ID, email).Count(&already).Error; err != nil {
			return errors.Wrap(err, "failed to check purchases")
		}
		if already > 0 {
			return types.Conflict("This email already purchased a ticket for this event")
		}

		var sold int64
		if err := tx.Model(&models.TicketPurchase{}).Where("ticket_type_id = ?", ticketType.ID).Count(&sold).Error; err != nil {
			return errors.Wrap(err, "failed to count sold tickets")
		}
		if sold >= int64(ticketType.QuantityLimit) {
			return types.Conflict("Sold out")
		}

		purchase = &models.TicketPurchase{
			EventID:      event.ID,
			TicketTypeID: ticketType.ID,
			Email:        email,
			FirstName:    trimmedOrNil(in.FirstName),
			LastName:     trimmedOrNil(in.LastName),
			Address:      trimmedOrNil(in.Address),
			Reference:    uuid.NewString(),
			PurchasedAt:  time.Now().UTC(),
		}
		return storeError(tx.Create(purchase).Error, "This email already purchased a ticket for this event", "failed to record purchase")
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

// ListPurchases returns the purchases of a public event; organizers only
func ListPurchases(db *gorm.DB, actor *models.User, eventID uint) ([]models.TicketPurchase, error) {
	event, err := ticketingEvent(db, eventID)
	if err != nil {
		return nil, err
	}
	if err := requireEventOrganizer(db, event.ID, actor, "manage ticketing"); err != nil {
		return nil, err
	}

	purchases := []models.TicketPurchase{}
	err = tagged(db, "list_purchases").
		Where("event_id = ?", event.ID).
		Order("purchased_at ASC").
		Order("id ASC").
		Find(&purchases).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list purchases")
	}
	return purchases, nil
}
