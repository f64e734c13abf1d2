package services

import (
	"strings"

	"github.com/localnerve/socialdb/internal/authz"
	"github.com/localnerve/socialdb/internal/models"
	"github.com/localnerve/socialdb/internal/types"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// EventInput is the body of POST /events
type EventInput struct {
	Name                string         `json:"name"`
	Description         *string        `json:"description"`
	StartDate           types.FlexTime `json:"start_date" swaggertype:"string" format:"date-time"`
	EndDate             types.FlexTime `json:"end_date" swaggertype:"string" format:"date-time"`
	Location            string         `json:"location"`
	CoverURL            *string        `json:"cover_url"`
	IsPublic            bool           `json:"is_public"`
	GroupID             *types.FlexID  `json:"group_id"`
	ShoppingListEnabled bool           `json:"shopping_list_enabled"`
}

func (in EventInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return types.BadRequest("Event name is required")
	}
	if strings.TrimSpace(in.Location) == "" {
		return types.BadRequest("Event location is required")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return types.BadRequest("Event start_date and end_date are required")
	}
	if !in.StartDate.Before(in.EndDate.Time) {
		return types.BadRequest("Event start_date must be before end_date")
	}
	return nil
}

// CreateEvent creates an event whose creator becomes participant and organizer.
// Group-linked events need a group member, and an admin unless the group allows member events.
func CreateEvent(db *gorm.DB, actor *models.User, in EventInput) (*models.Event, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	event := &models.Event{
		Name:                strings.TrimSpace(in.Name),
		Description:         in.Description,
		StartDate:           in.StartDate.UTC(),
		EndDate:             in.EndDate.UTC(),
		Location:            strings.TrimSpace(in.Location),
		CoverURL:            in.CoverURL,
		IsPublic:            in.IsPublic,
		GroupID:             types.OptionalID(in.GroupID),
		ShoppingListEnabled: in.ShoppingListEnabled,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if event.GroupID != nil {
			group, err := loadGroup(tx, *event.GroupID)
			if err != nil {
				return err
			}
			if !authz.IsGroupMember(tx, group.ID, actor.ID) {
				return types.Forbidden("Only group members can create events for this group")
			}
			if !group.AllowMemberEvents && !authz.IsGroupAdmin(tx, group.ID, actor.ID) {
				return types.Forbidden("Only group admins can create events for this group")
			}
		}

		if err := tx.Create(event).Error; err != nil {
			return errors.Wrap(err, "failed to create event")
		}
		if err := tx.Create(&models.EventParticipant{EventID: event.ID, UserID: actor.ID}).Error; err != nil {
			return errors.Wrap(err, "failed to add creator as participant")
		}
		if err := tx.Create(&models.EventOrganizer{EventID: event.ID, UserID: actor.ID}).Error; err != nil {
			return errors.Wrap(err, "failed to add creator as organizer")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// GetEvent returns an event the actor may view; actor may be nil
func GetEvent(db *gorm.DB, actor *models.User, eventID uint) (*models.Event, error) {
	return viewableEvent(db, eventID, actor, "this event")
}

// ListEvents returns public events, plus the actor's own events when authenticated,
// newest start date first.
func ListEvents(db *gorm.DB, actor *models.User, page Page) ([]models.Event, error) {
	if err := page.Check(MaxEventPage); err != nil {
		return nil, err
	}

	query := tagged(db, "list_events").Model(&models.Event{})
	if actor == nil {
		query = query.Where("is_public = ?", true)
	} else {
		participating := db.Model(&models.EventParticipant{}).Select("event_id").Where("user_id = ?", actor.ID)
		organizing := db.Model(&models.EventOrganizer{}).Select("event_id").Where("user_id = ?", actor.ID)
		query = query.Where(
			db.Where("is_public = ?", true).
				Or("id IN (?)", participating).
				Or("id IN (?)", organizing),
		)
	}

	events := []models.Event{}
	err := query.
		Order("start_date DESC").
		Order("id DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&events).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list events")
	}
	return events, nil
}

// JoinEvent adds the actor as participant; joining twice is a no-op
func JoinEvent(db *gorm.DB, actor *models.User, eventID uint) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadEvent(tx, eventID); err != nil {
			return err
		}
		if authz.IsEventParticipant(tx, eventID, actor.ID) {
			return nil
		}
		return insertJoinRow(tx, &models.EventParticipant{EventID: eventID, UserID: actor.ID}, "participant")
	})
}

// LeaveEvent removes the actor's participation. Organizers must resign first.
func LeaveEvent(db *gorm.DB, actor *models.User, eventID uint) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadEvent(tx, eventID); err != nil {
			return err
		}
		if authz.IsEventOrganizer(tx, eventID, actor.ID) {
			return types.BadRequest("Organizers cannot leave the event (remove organizer role first)")
		}
		err := tx.Where("event_id = ? AND user_id = ?", eventID, actor.ID).Delete(&models.EventParticipant{}).Error
		return errors.Wrap(err, "failed to leave event")
	})
}

// ListParticipants returns the participants of an event
func ListParticipants(db *gorm.DB, eventID uint) ([]models.UserSummary, error) {
	if _, err := loadEvent(db, eventID); err != nil {
		return nil, err
	}
	return usersIn(db, db.Model(&models.EventParticipant{}).Select("user_id").Where("event_id = ?", eventID), "event_participants")
}

// ListOrganizers returns the organizers of an event
func ListOrganizers(db *gorm.DB, eventID uint) ([]models.UserSummary, error) {
	if _, err := loadEvent(db, eventID); err != nil {
		return nil, err
	}
	return usersIn(db, db.Model(&models.EventOrganizer{}).Select("user_id").Where("event_id = ?", eventID), "event_organizers")
}

// AddOrganizer promotes a participant; organizers only
func AddOrganizer(db *gorm.DB, actor *models.User, eventID, userID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := lockByID(tx, &event, eventID, "Event"); err != nil {
			return err
		}
		if err := requireEventOrganizer(tx, event.ID, actor, "add organizers"); err != nil {
			return err
		}
		if _, err := requireUserExists(tx, userID); err != nil {
			return err
		}
		if !authz.IsEventParticipant(tx, event.ID, userID) {
			return types.BadRequest("User must be a participant before becoming organizer")
		}
		if authz.IsEventOrganizer(tx, event.ID, userID) {
			return nil
		}
		return insertJoinRow(tx, &models.EventOrganizer{EventID: event.ID, UserID: userID}, "organizer")
	})
}

// RemoveOrganizer demotes an organizer; the last organizer cannot be removed
func RemoveOrganizer(db *gorm.DB, actor *models.User, eventID, userID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := lockByID(tx, &event, eventID, "Event"); err != nil {
			return err
		}
		if err := requireEventOrganizer(tx, event.ID, actor, "remove organizers"); err != nil {
			return err
		}
		if !authz.IsEventOrganizer(tx, event.ID, userID) {
			return nil
		}

		var organizers int64
		if err := tx.Model(&models.EventOrganizer{}).Where("event_id = ?", event.ID).Count(&organizers).Error; err != nil {
			return errors.Wrap(err, "failed to count organizers")
		}
		if organizers <= 1 {
			return types.Conflict("Event must have at least one organizer")
		}

		err := tx.Where("event_id = ? AND user_id = ?", event.ID, userID).Delete(&models.EventOrganizer{}).Error
		return errors.Wrap(err, "failed to remove organizer")
	})
}

// InviteGroupMembers makes every member of the linked group a participant.
// It returns how many participants were added.
func InviteGroupMembers(db *gorm.DB, actor *models.User, eventID uint) (int, error) {
	added := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := lockByID(tx, &event, eventID, "Event"); err != nil {
			return err
		}
		if event.GroupID == nil {
			return types.BadRequest("This event is not linked to a group")
		}
		if err := requireEventOrganizer(tx, event.ID, actor, "invite group members"); err != nil {
			return err
		}

		var memberIDs []uint
		err := tx.Model(&models.GroupMember{}).
			Where("group_id = ?", *event.GroupID).
			Where("user_id NOT IN (?)", tx.Model(&models.EventParticipant{}).Select("user_id").Where("event_id = ?", event.ID)).
			Order("user_id ASC").
			Pluck("user_id", &memberIDs).Error
		if err != nil {
			return errors.Wrap(err, "failed to list group members")
		}
		if len(memberIDs) == 0 {
			return nil
		}

		rows := make([]models.EventParticipant, 0, len(memberIDs))
		for _, id := range memberIDs {
			rows = append(rows, models.EventParticipant{EventID: event.ID, UserID: id})
		}
		if err := insertJoinRow(tx, &rows, "participants"); err != nil {
			return err
		}
		added = len(rows)
		return nil
	})
	return added, err
}

// DeleteEvent removes an event and everything it owns; organizers only
func DeleteEvent(db *gorm.DB, actor *models.User, eventID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := lockByID(tx, &event, eventID, "Event"); err != nil {
			return err
		}
		if err := requireEventOrganizer(tx, event.ID, actor, "delete the event"); err != nil {
			return err
		}

		if err := deleteDiscussionsWhere(tx, "event_id = ?", event.ID); err != nil {
			return err
		}
		if err := deleteAlbumsWhere(tx, "event_id = ?", event.ID); err != nil {
			return err
		}
		if err := deletePollsWhere(tx, "event_id = ?", event.ID); err != nil {
			return err
		}

		owned := []interface{}{
			&models.TicketPurchase{},
			&models.TicketType{},
			&models.ShoppingItem{},
			&models.EventOrganizer{},
			&models.EventParticipant{},
		}
		for _, model := range owned {
			if err := tx.Where("event_id = ?", event.ID).Delete(model).Error; err != nil {
				return errors.Wrap(err, "failed to delete event data")
			}
		}
		return errors.Wrap(tx.Delete(&event).Error, "failed to delete event")
	})
}
