package services

import (
	"strings"

	"github.com/localnerve/socialdb/internal/authz"
	"github.com/localnerve/socialdb/internal/models"
	"github.com/localnerve/socialdb/internal/types"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ShoppingItemInput is the body of POST /events/:id/shopping-items
type ShoppingItemInput struct {
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	ArrivalTime *types.FlexTime `json:"arrival_time" swaggertype:"string" format:"date-time"`
}

// ShoppingItemUpdate is the body of PATCH /events/:id/shopping-items/:itemId
type ShoppingItemUpdate struct {
	Name        *string         `json:"name"`
	Quantity    *int            `json:"quantity"`
	ArrivalTime *types.FlexTime `json:"arrival_time" swaggertype:"string" format:"date-time"`
}

// ShoppingItemView is a shopping item with the user who added it
type ShoppingItemView struct {
	models.ShoppingItem
	CreatedBy *models.UserSummary `json:"created_by"`
}

const duplicateItem = "This item already exists for this event"

// shoppingEvent loads an event whose shopping list is enabled
func shoppingEvent(db *gorm.DB, eventID uint) (*models.Event, error) {
	event, err := loadEvent(db, eventID)
	if err != nil {
		return nil, err
	}
	if !event.ShoppingListEnabled {
		return nil, types.BadRequest("Shopping list is not enabled for this event")
	}
	return event, nil
}

func view(db *gorm.DB, item models.ShoppingItem) (*ShoppingItemView, error) {
	v := &ShoppingItemView{ShoppingItem: item}
	user, err := ResolveUser(db, item.UserID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		summary := user.Summary()
		v.CreatedBy = &summary
	}
	return v, nil
}

func itemNameTaken(tx *gorm.DB, eventID uint, name string, exceptID uint) (bool, error) {
	var n int64
	err := tx.Model(&models.ShoppingItem{}).
		Where("event_id = ? AND name = ? AND id <> ?", eventID, name, exceptID).
		Count(&n).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check item name")
	}
	return n > 0, nil
}

// CreateShoppingItem adds an item to an event's list; participants and organizers only
func CreateShoppingItem(db *gorm.DB, actor *models.User, eventID uint, in ShoppingItemInput) (*ShoppingItemView, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, types.BadRequest("Item name is required")
	}
	if in.Quantity < 1 {
		return nil, types.BadRequest("Item quantity must be positive")
	}

	var result *ShoppingItemView
	err := db.Transaction(func(tx *gorm.DB) error {
		event, err := shoppingEvent(tx, eventID)
		if err != nil {
			return err
		}
		if err := requireEventMember(tx, event.ID, actor, "use the shopping list"); err != nil {
			return err
		}
		taken, err := itemNameTaken(tx, event.ID, name, 0)
		if err != nil {
			return err
		}
		if taken {
			return types.Conflict(duplicateItem)
		}

		item := models.ShoppingItem{
			EventID:     event.ID,
			UserID:      actor.ID,
			Name:        name,
			Quantity:    in.Quantity,
			ArrivalTime: types.OptionalTime(in.ArrivalTime),
		}
		if err := tx.Create(&item).Error; err != nil {
			return storeError(err, duplicateItem, "failed to create shopping item")
		}
		result, err = view(tx, item)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListShoppingItems returns an event's list, newest first; participants and organizers only
func ListShoppingItems(db *gorm.DB, actor *models.User, eventID uint) ([]ShoppingItemView, error) {
	event, err := shoppingEvent(db, eventID)
	if err != nil {
		return nil, err
	}
	if err := requireEventMember(db, event.ID, actor, "use the shopping list"); err != nil {
		return nil, err
	}

	var items []models.ShoppingItem
	err = tagged(db, "list_shopping_items").
		Where("event_id = ?", event.ID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shopping items")
	}

	userIDs := make([]uint, 0, len(items))
	for _, it := range items {
		userIDs = append(userIDs, it.UserID)
	}
	users := make(map[uint]models.UserSummary)
	if len(userIDs) > 0 {
		var found []models.User
		if err := db.Where("id IN ?", userIDs).Find(&found).Error; err != nil {
			return nil, errors.Wrap(err, "failed to load item creators")
		}
		for _, u := range found {
			users[u.ID] = u.Summary()
		}
	}

	views := make([]ShoppingItemView, 0, len(items))
	for _, it := range items {
		v := ShoppingItemView{ShoppingItem: it}
		if u, ok := users[it.UserID]; ok {
			u := u
			v.CreatedBy = &u
		}
		views = append(views, v)
	}
	return views, nil
}

// editableItem loads an item the actor created or, as organizer, may manage
func editableItem(tx *gorm.DB, actor *models.User, eventID, itemID uint, action string) (*models.ShoppingItem, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	event, err := shoppingEvent(tx, eventID)
	if err != nil {
		return nil, err
	}

	var item models.ShoppingItem
	err = quiet(tx).Where("id = ? AND event_id = ?", itemID, event.ID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound("Shopping item not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load shopping item")
	}

	if item.UserID != actor.ID && !authz.IsEventOrganizer(tx, event.ID, actor.ID) {
		return nil, types.Forbidden("Not allowed to %s this item", action)
	}
	return &item, nil
}

// UpdateShoppingItem patches an item; its creator or an organizer only
func UpdateShoppingItem(db *gorm.DB, actor *models.User, eventID, itemID uint, in ShoppingItemUpdate) (*ShoppingItemView, error) {
	var result *ShoppingItemView
	err := db.Transaction(func(tx *gorm.DB) error {
		item, err := editableItem(tx, actor, eventID, itemID, "update")
		if err != nil {
			return err
		}

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return types.BadRequest("Item name is required")
			}
			taken, err := itemNameTaken(tx, item.EventID, name, item.ID)
			if err != nil {
				return err
			}
			if taken {
				return types.Conflict(duplicateItem)
			}
			item.Name = name
		}
		if in.Quantity != nil {
			if *in.Quantity < 1 {
				return types.BadRequest("Item quantity must be positive")
			}
			item.Quantity = *in.Quantity
		}
		if in.ArrivalTime != nil {
			item.ArrivalTime = types.OptionalTime(in.ArrivalTime)
		}

		if err := tx.Save(item).Error; err != nil {
			return storeError(err, duplicateItem, "failed to update shopping item")
		}
		result, err = view(tx, *item)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteShoppingItem removes an item; its creator or an organizer only
func DeleteShoppingItem(db *gorm.DB, actor *models.User, eventID, itemID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		item, err := editableItem(tx, actor, eventID, itemID, "delete")
		if err != nil {
			return err
		}
		return errors.Wrap(tx.Delete(item).Error, "failed to delete shopping item")
	})
}
