package services

import (
	"strings"

	"github.com/localnerve/socialdb/internal/authz"
	"github.com/localnerve/socialdb/internal/database"
	"github.com/localnerve/socialdb/internal/models"
	"github.com/localnerve/socialdb/internal/types"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// DiscussionInput is the body of POST /discussions; exactly one id must be set
type DiscussionInput struct {
	GroupID *types.FlexID `json:"group_id"`
	EventID *types.FlexID `json:"event_id"`
}

// Parent converts the input into a discussion parent
func (in DiscussionInput) Parent() (models.DiscussionParent, error) {
	switch {
	case in.GroupID != nil && in.EventID != nil:
		return models.DiscussionParent{}, types.BadRequest("A discussion belongs to a group or an event, not both")
	case in.GroupID != nil:
		return models.GroupParent(in.GroupID.Uint()), nil
	case in.EventID != nil:
		return models.EventParent(in.EventID.Uint()), nil
	}
	return models.DiscussionParent{}, types.BadRequest("A discussion needs a group_id or an event_id")
}

// MessageInput is the body of POST /discussions/:id/messages
type MessageInput struct {
	Content         string        `json:"content"`
	ParentMessageID *types.FlexID `json:"parent_message_id"`
}

// EnsureDiscussion returns the discussion of the parent, creating it on first use.
// created reports whether a new discussion was stored.
func EnsureDiscussion(db *gorm.DB, actor *models.User, parent models.DiscussionParent) (discussion *models.Discussion, created bool, err error) {
	if err := requireActor(actor); err != nil {
		return nil, false, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var column string

		// The parent row lock serializes concurrent first use
		switch parent.Kind() {
		case models.ParentGroup:
			column = "group_id"
			var group models.Group
			if err := lockByID(tx, &group, parent.ID(), "Group"); err != nil {
				return err
			}
			if !authz.IsGroupMember(tx, group.ID, actor.ID) {
				return types.Forbidden("Only group members can access the group discussion")
			}
		case models.ParentEvent:
			column = "event_id"
			var event models.Event
			if err := lockByID(tx, &event, parent.ID(), "Event"); err != nil {
				return err
			}
			if !authz.IsEventMember(tx, event.ID, actor.ID) {
				return types.Forbidden("Only event participants or organizers can access the event discussion")
			}
		default:
			return types.BadRequest("A discussion needs a group or an event")
		}

		var existing models.Discussion
		err := quiet(tx).Where(column+" = ?", parent.ID()).Order("id ASC").First(&existing).Error
		if err == nil {
			discussion = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrap(err, "failed to look up discussion")
		}

		// A concurrent first use that lost the insert race adopts the winner
		discussion = models.NewDiscussion(parent)
		err = tx.Transaction(func(inner *gorm.DB) error {
			return inner.Create(discussion).Error
		})
		if database.IsDuplicateKey(err) {
			var winner models.Discussion
			if err := quiet(tx).Where(column+" = ?", parent.ID()).First(&winner).Error; err != nil {
				return errors.Wrap(err, "failed to look up discussion")
			}
			discussion = &winner
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to create discussion")
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return discussion, created, nil
}

// accessibleDiscussion loads a discussion and applies the access rule
func accessibleDiscussion(db *gorm.DB, actor *models.User, discussionID uint) (*models.Discussion, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var discussion models.Discussion
	if err := findByID(db, &discussion, discussionID, "Discussion"); err != nil {
		return nil, err
	}
	if !authz.CanAccessDiscussion(db, &discussion, actor) {
		return nil, types.Forbidden("Not allowed to access this discussion")
	}
	return &discussion, nil
}

// GetDiscussion returns a discussion the actor may access
func GetDiscussion(db *gorm.DB, actor *models.User, discussionID uint) (*models.Discussion, error) {
	return accessibleDiscussion(db, actor, discussionID)
}

// messageIn loads a message that must belong to the discussion
func messageIn(db *gorm.DB, discussionID, messageID uint) (*models.Message, error) {
	var message models.Message
	err := quiet(db).Where("id = ? AND discussion_id = ?", messageID, discussionID).First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound("Message not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load message")
	}
	return &message, nil
}

// PostMessage adds a message, or a reply when ParentMessageID is set
func PostMessage(db *gorm.DB, actor *models.User, discussionID uint, in MessageInput) (*models.Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, types.BadRequest("Message content is required")
	}

	var message *models.Message
	err := db.Transaction(func(tx *gorm.DB) error {
		discussion, err := accessibleDiscussion(tx, actor, discussionID)
		if err != nil {
			return err
		}

		parentID := types.OptionalID(in.ParentMessageID)
		if parentID != nil {
			var parent models.Message
			if err := findByID(tx, &parent, *parentID, "Parent message"); err != nil {
				return err
			}
			if parent.DiscussionID != discussion.ID {
				return types.BadRequest("Parent message must belong to the same discussion")
			}
		}

		message = &models.Message{
			DiscussionID:    discussion.ID,
			AuthorID:        actor.ID,
			ParentMessageID: parentID,
			Content:         content,
		}
		return errors.Wrap(tx.Create(message).Error, "failed to post message")
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}

// ListMessages returns the messages of a discussion, oldest first
func ListMessages(db *gorm.DB, actor *models.User, discussionID uint, page Page) ([]models.Message, error) {
	if err := page.Check(MaxDetailPage); err != nil {
		return nil, err
	}
	if _, err := accessibleDiscussion(db, actor, discussionID); err != nil {
		return nil, err
	}

	messages := []models.Message{}
	err := tagged(db, "list_messages").
		Where("discussion_id = ?", discussionID).
		Order("created_at ASC").
		Order("id ASC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list messages")
	}
	return messages, nil
}

// ListReplies returns the direct replies to a message, oldest first
func ListReplies(db *gorm.DB, actor *models.User, discussionID, messageID uint) ([]models.Message, error) {
	if _, err := accessibleDiscussion(db, actor, discussionID); err != nil {
		return nil, err
	}
	if _, err := messageIn(db, discussionID, messageID); err != nil {
		return nil, err
	}

	replies := []models.Message{}
	err := tagged(db, "list_replies").
		Where("discussion_id = ? AND parent_message_id = ?", discussionID, messageID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&replies).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list replies")
	}
	return replies, nil
}

// DeleteMessage removes a message and its replies.
// Allowed for the author, an event organizer or a group admin.
func DeleteMessage(db *gorm.DB, actor *models.User, discussionID, messageID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		discussion, err := accessibleDiscussion(tx, actor, discussionID)
		if err != nil {
			return err
		}
		message, err := messageIn(tx, discussion.ID, messageID)
		if err != nil {
			return err
		}
		if !authz.CanDeleteMessage(tx, discussion, message, actor) {
			return types.Forbidden("Not allowed to delete this message")
		}

		ids, err := threadIDs(tx, message.ID)
		if err != nil {
			return err
		}
		// deepest replies first
		for i := len(ids) - 1; i >= 0; i-- {
			if err := tx.Delete(&models.Message{}, ids[i]).Error; err != nil {
				return errors.Wrap(err, "failed to delete message")
			}
		}
		return nil
	})
}

// threadIDs returns the message id followed by all of its descendants, breadth first
func threadIDs(tx *gorm.DB, rootID uint) ([]uint, error) {
	ids := []uint{rootID}
	frontier := []uint{rootID}
	for len(frontier) > 0 {
		var children []uint
		err := tx.Model(&models.Message{}).
			Where("parent_message_id IN ?", frontier).
			Order("id ASC").
			Pluck("id", &children).Error
		if err != nil {
			return nil, errors.Wrap(err, "failed to collect replies")
		}
		ids = append(ids, children...)
		frontier = children
	}
	return ids, nil
}

// deleteDiscussionsWhere removes matching discussions with their messages
func deleteDiscussionsWhere(tx *gorm.DB, query string, args ...interface{}) error {
	var ids []uint
	if err := tx.Model(&models.Discussion{}).Where(query, args...).Pluck("id", &ids).Error; err != nil {
		return errors.Wrap(err, "failed to list discussions")
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("discussion_id IN ?", ids).Delete(&models.Message{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete messages")
	}
	return errors.Wrap(tx.Where("id IN ?", ids).Delete(&models.Discussion{}).Error, "failed to delete discussions")
}
