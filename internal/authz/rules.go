package authz

import (
	"github.com/localnerve/socialdb/internal/models"
	"gorm.io/gorm"
)

// CanViewEvent gates every read under an event.
// Public events are visible to anyone. Otherwise the user must take part in the
// event or belong to the group it is linked to.
func CanViewEvent(db *gorm.DB, event *models.Event, user *models.User) bool {
	if event == nil {
		return false
	}
	if event.IsPublic {
		return true
	}
	if user == nil {
		return false
	}
	if IsEventMember(db, event.ID, user.ID) {
		return true
	}
	return event.GroupID != nil && IsGroupMember(db, *event.GroupID, user.ID)
}

// CanAccessDiscussion requires group membership for group discussions and
// participation for event discussions. A discussion without a valid parent is closed.
func CanAccessDiscussion(db *gorm.DB, discussion *models.Discussion, user *models.User) bool {
	if discussion == nil || user == nil {
		return false
	}

	parent, ok := discussion.Parent()
	if !ok {
		return false
	}

	switch parent.Kind() {
	case models.ParentGroup:
		return IsGroupMember(db, parent.ID(), user.ID)
	case models.ParentEvent:
		return IsEventMember(db, parent.ID(), user.ID)
	}
	return false
}

// CanDeleteMessage allows the author, an organizer of the linked event
// or an admin of the linked group.
func CanDeleteMessage(db *gorm.DB, discussion *models.Discussion, message *models.Message, user *models.User) bool {
	if discussion == nil || message == nil || user == nil {
		return false
	}
	if message.AuthorID == user.ID {
		return true
	}

	parent, ok := discussion.Parent()
	if !ok {
		return false
	}

	switch parent.Kind() {
	case models.ParentEvent:
		return IsEventOrganizer(db, parent.ID(), user.ID)
	case models.ParentGroup:
		return IsGroupAdmin(db, parent.ID(), user.ID)
	}
	return false
}
