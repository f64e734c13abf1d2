package models

import (
	"time"
)

// ParentKind tells which aggregate a discussion hangs off
type ParentKind int

const (
	// ParentGroup marks a group discussion
	ParentGroup ParentKind = iota + 1
	// ParentEvent marks an event discussion
	ParentEvent
)

func (k ParentKind) String() string {
	switch k {
	case ParentGroup:
		return "group"
	case ParentEvent:
		return "event"
	}
	return "unknown"
}

// DiscussionParent is the link of a discussion to exactly one group or one event.
// Build it with GroupParent or EventParent.
type DiscussionParent struct {
	kind ParentKind
	id   uint
}

// GroupParent links a discussion to a group
func GroupParent(groupID uint) DiscussionParent {
	return DiscussionParent{kind: ParentGroup, id: groupID}
}

// EventParent links a discussion to an event
func EventParent(eventID uint) DiscussionParent {
	return DiscussionParent{kind: ParentEvent, id: eventID}
}

// Kind returns the parent kind
func (p DiscussionParent) Kind() ParentKind {
	return p.kind
}

// ID returns the parent id
func (p DiscussionParent) ID() uint {
	return p.id
}

// Discussion is a message thread attached to exactly one group or one event.
// The two nullable columns are a storage detail; use Parent to read the link.
// Each parent has at most one discussion, enforced by filtered unique indexes.
type Discussion struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID   *uint     `gorm:"uniqueIndex:idx_discussions_group_parent,where:group_id IS NOT NULL" json:"group_id"`
	EventID   *uint     `gorm:"uniqueIndex:idx_discussions_event_parent,where:event_id IS NOT NULL" json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
	Messages  []Message `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// NewDiscussion creates an unsaved discussion for the parent
func NewDiscussion(parent DiscussionParent) *Discussion {
	d := &Discussion{}
	id := parent.ID()
	switch parent.Kind() {
	case ParentGroup:
		d.GroupID = &id
	case ParentEvent:
		d.EventID = &id
	}
	return d
}

// Parent returns the discussion link. ok is false for a row that has
// neither or both columns set.
func (d *Discussion) Parent() (parent DiscussionParent, ok bool) {
	switch {
	case d.GroupID != nil && d.EventID == nil:
		return GroupParent(*d.GroupID), true
	case d.EventID != nil && d.GroupID == nil:
		return EventParent(*d.EventID), true
	}
	return DiscussionParent{}, false
}

// Message is a post in a discussion. Replies point at a parent message in the same discussion.
type Message struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	DiscussionID    uint      `gorm:"not null;index" json:"discussion_id"`
	AuthorID        uint      `gorm:"not null;index" json:"author_id"`
	ParentMessageID *uint     `gorm:"index" json:"parent_message_id"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}

// TableName overrides the table name for Discussion
func (Discussion) TableName() string {
	return "discussions"
}

// TableName overrides the table name for Message
func (Message) TableName() string {
	return "messages"
}
