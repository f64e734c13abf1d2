package models

import (
	"time"
)

// Poll is a questionnaire created by an event organizer
type Poll struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID   uint           `gorm:"not null;index" json:"event_id"`
	CreatorID uint           `gorm:"not null" json:"creator_id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	CreatedAt time.Time      `json:"created_at"`
	Questions []PollQuestion `gorm:"constraint:OnDelete:CASCADE" json:"questions"`
}

// PollQuestion is one question of a poll with at least two options
type PollQuestion struct {
	ID      uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	PollID  uint         `gorm:"not null;index" json:"poll_id"`
	Text    string       `gorm:"type:text;not null" json:"question"`
	Options []PollOption `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options"`
	Votes   []PollVote   `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
}

// PollOption is a selectable answer
type PollOption struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Label      string `gorm:"size:255;not null" json:"label"`
}

// PollVote records a user's answer; one per question per user
type PollVote struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_poll_vote_question_user" json:"question_id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_poll_vote_question_user" json:"user_id"`
	OptionID   uint      `gorm:"not null;index" json:"option_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides the table name for Poll
func (Poll) TableName() string {
	return "polls"
}

// TableName overrides the table name for PollQuestion
func (PollQuestion) TableName() string {
	return "poll_questions"
}

// TableName overrides the table name for PollOption
func (PollOption) TableName() string {
	return "poll_options"
}

// TableName overrides the table name for PollVote
func (PollVote) TableName() string {
	return "poll_votes"
}
