package services

import (
	"strings"

	"github.com/localnerve/socialdb/internal/authz"
	"github.com/localnerve/socialdb/internal/models"
	"github.com/localnerve/socialdb/internal/types"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GroupInput is the body of POST /groups and PATCH /groups/:id.
// Nil fields keep their current (or default) value.
type GroupInput struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	IconURL           *string `json:"icon_url"`
	CoverURL          *string `json:"cover_url"`
	GroupType         *string `json:"group_type"`
	AllowMemberPosts  *bool   `json:"allow_member_posts"`
	AllowMemberEvents *bool   `json:"allow_member_events"`
}

// apply copies the set fields onto the group and validates the result
func (in GroupInput) apply(group *models.Group) error {
	if in.Name != nil {
		group.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		group.Description = in.Description
	}
	if in.IconURL != nil {
		group.IconURL = in.IconURL
	}
	if in.CoverURL != nil {
		group.CoverURL = in.CoverURL
	}
	if in.GroupType != nil {
		group.GroupType = strings.ToLower(strings.TrimSpace(*in.GroupType))
	}
	if in.AllowMemberPosts != nil {
		group.AllowMemberPosts = *in.AllowMemberPosts
	}
	if in.AllowMemberEvents != nil {
		group.AllowMemberEvents = *in.AllowMemberEvents
	}

	if group.Name == "" {
		return types.BadRequest("Group name is required")
	}
	if !models.ValidGroupType(group.GroupType) {
		return types.BadRequest("Group type must be public, private or secret")
	}
	return nil
}

// CreateGroup creates a group whose creator becomes its first member and admin
func CreateGroup(db *gorm.DB, actor *models.User, in GroupInput) (*models.Group, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	group := &models.Group{
		GroupType:         models.GroupPublic,
		AllowMemberPosts:  true,
		AllowMemberEvents: false,
	}
	if err := in.apply(group); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return errors.Wrap(err, "failed to create group")
		}
		if err := tx.Create(&models.GroupMember{GroupID: group.ID, UserID: actor.ID}).Error; err != nil {
			return errors.Wrap(err, "failed to add creator as member")
		}
		if err := tx.Create(&models.GroupAdmin{GroupID: group.ID, UserID: actor.ID}).Error; err != nil {
			return errors.Wrap(err, "failed to add creator as admin")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroups pages through all groups; the window is clamped rather than rejected
func ListGroups(db *gorm.DB, page Page) ([]models.Group, error) {
	page = page.Clamp(MaxGroupPage)

	groups := []models.Group{}
	err := tagged(db, "list_groups").
		Order("id ASC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&groups).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list groups")
	}
	return groups, nil
}

// GetGroup returns a group by id
func GetGroup(db *gorm.DB, groupID uint) (*models.Group, error) {
	return loadGroup(db, groupID)
}

// UpdateGroup patches a group; admins only
func UpdateGroup(db *gorm.DB, actor *models.User, groupID uint, in GroupInput) (*models.Group, error) {
	var group models.Group
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockByID(tx, &group, groupID, "Group"); err != nil {
			return err
		}
		if err := requireGroupAdmin(tx, group.ID, actor); err != nil {
			return err
		}
		if err := in.apply(&group); err != nil {
			return err
		}
		return errors.Wrap(tx.Save(&group).Error, "failed to update group")
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// DeleteGroup removes a group with its memberships and discussion.
// Events linked to the group survive with the link cleared.
func DeleteGroup(db *gorm.DB, actor *models.User, groupID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var group models.Group
		if err := lockByID(tx, &group, groupID, "Group"); err != nil {
			return err
		}
		if err := requireGroupAdmin(tx, group.ID, actor); err != nil {
			return err
		}

		if err := deleteDiscussionsWhere(tx, "group_id = ?", group.ID); err != nil {
			return err
		}
		if err := tx.Model(&models.Event{}).Where("group_id = ?", group.ID).Update("group_id", nil).Error; err != nil {
			return errors.Wrap(err, "failed to unlink events")
		}
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.GroupAdmin{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete admins")
		}
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.GroupMember{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete members")
		}
		return errors.Wrap(tx.Delete(&group).Error, "failed to delete group")
	})
}

// ListGroupMembers returns the members of a group
func ListGroupMembers(db *gorm.DB, groupID uint) ([]models.UserSummary, error) {
	if _, err := loadGroup(db, groupID); err != nil {
		return nil, err
	}
	return usersIn(db, db.Model(&models.GroupMember{}).Select("user_id").Where("group_id = ?", groupID), "group_members")
}

// ListGroupAdmins returns the admins of a group
func ListGroupAdmins(db *gorm.DB, groupID uint) ([]models.UserSummary, error) {
	if _, err := loadGroup(db, groupID); err != nil {
		return nil, err
	}
	return usersIn(db, db.Model(&models.GroupAdmin{}).Select("user_id").Where("group_id = ?", groupID), "group_admins")
}

// manageGroup runs fn for an admin of the group against an existing target user
func manageGroup(db *gorm.DB, actor *models.User, groupID, userID uint, fn func(tx *gorm.DB, group *models.Group, target *models.User) error) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var group models.Group
		if err := lockByID(tx, &group, groupID, "Group"); err != nil {
			return err
		}
		if err := requireGroupAdmin(tx, group.ID, actor); err != nil {
			return err
		}
		target, err := requireUserExists(tx, userID)
		if err != nil {
			return err
		}
		return fn(tx, &group, target)
	})
}

// AddGroupMember adds a user to the group; a no-op for existing members
func AddGroupMember(db *gorm.DB, actor *models.User, groupID, userID uint) error {
	return manageGroup(db, actor, groupID, userID, func(tx *gorm.DB, group *models.Group, target *models.User) error {
		if authz.IsGroupMember(tx, group.ID, target.ID) {
			return nil
		}
		return insertJoinRow(tx, &models.GroupMember{GroupID: group.ID, UserID: target.ID}, "member")
	})
}

// RemoveGroupMember removes a user from the group and from its admins.
// The last admin cannot be removed.
func RemoveGroupMember(db *gorm.DB, actor *models.User, groupID, userID uint) error {
	return manageGroup(db, actor, groupID, userID, func(tx *gorm.DB, group *models.Group, target *models.User) error {
		if authz.IsGroupAdmin(tx, group.ID, target.ID) {
			if err := dropAdmin(tx, group.ID, target.ID); err != nil {
				return err
			}
		}
		err := tx.Where("group_id = ? AND user_id = ?", group.ID, target.ID).Delete(&models.GroupMember{}).Error
		return errors.Wrap(err, "failed to remove member")
	})
}

// AddGroupAdmin promotes an existing member
func AddGroupAdmin(db *gorm.DB, actor *models.User, groupID, userID uint) error {
	return manageGroup(db, actor, groupID, userID, func(tx *gorm.DB, group *models.Group, target *models.User) error {
		if !authz.IsGroupMember(tx, group.ID, target.ID) {
			return types.BadRequest("User must be a member before becoming admin")
		}
		if authz.IsGroupAdmin(tx, group.ID, target.ID) {
			return nil
		}
		return insertJoinRow(tx, &models.GroupAdmin{GroupID: group.ID, UserID: target.ID}, "admin")
	})
}

// RemoveGroupAdmin demotes an admin; a no-op for non-admins
func RemoveGroupAdmin(db *gorm.DB, actor *models.User, groupID, userID uint) error {
	return manageGroup(db, actor, groupID, userID, func(tx *gorm.DB, group *models.Group, target *models.User) error {
		if !authz.IsGroupAdmin(tx, group.ID, target.ID) {
			return nil
		}
		return dropAdmin(tx, group.ID, target.ID)
	})
}

// dropAdmin deletes an admin row unless it is the last one
func dropAdmin(tx *gorm.DB, groupID, userID uint) error {
	var admins int64
	if err := tx.Model(&models.GroupAdmin{}).Where("group_id = ?", groupID).Count(&admins).Error; err != nil {
		return errors.Wrap(err, "failed to count admins")
	}
	if admins <= 1 {
		return types.Conflict("Group must have at least one admin")
	}
	err := tx.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&models.GroupAdmin{}).Error
	return errors.Wrap(err, "failed to remove admin")
}
