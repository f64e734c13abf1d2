// Package authz answers membership and visibility questions against the join tables.
// Every predicate fails closed: a store error is logged and reported as false.
package authz

import (
	"github.com/localnerve/socialdb/internal/logging"
	"github.com/localnerve/socialdb/internal/models"
	"gorm.io/gorm"
)

// exists counts join rows matching the owner column and user
func exists(db *gorm.DB, model interface{}, ownerColumn string, ownerID, userID uint) bool {
	if ownerID == 0 || userID == 0 {
		return false
	}

	var count int64
	err := db.Model(model).
		Where(ownerColumn+" = ? AND user_id = ?", ownerID, userID).
		Count(&count).Error
	if err != nil {
		logging.Default().WithError(err).WithFields(map[string]interface{}{
			ownerColumn: ownerID,
			"user_id":   userID,
		}).Error("membership lookup failed")
		return false
	}
	return count > 0
}

// IsGroupMember reports whether the user belongs to the group
func IsGroupMember(db *gorm.DB, groupID, userID uint) bool {
	return exists(db, &models.GroupMember{}, "group_id", groupID, userID)
}

// IsGroupAdmin reports whether the user administers the group
func IsGroupAdmin(db *gorm.DB, groupID, userID uint) bool {
	return exists(db, &models.GroupAdmin{}, "group_id", groupID, userID)
}

// IsEventParticipant reports whether the user joined the event
func IsEventParticipant(db *gorm.DB, eventID, userID uint) bool {
	return exists(db, &models.EventParticipant{}, "event_id", eventID, userID)
}

// IsEventOrganizer reports whether the user organizes the event
func IsEventOrganizer(db *gorm.DB, eventID, userID uint) bool {
	return exists(db, &models.EventOrganizer{}, "event_id", eventID, userID)
}

// IsEventMember reports whether the user is a participant or an organizer
func IsEventMember(db *gorm.DB, eventID, userID uint) bool {
	return IsEventParticipant(db, eventID, userID) || IsEventOrganizer(db, eventID, userID)
}
