package services

import (
	"strings"

	"github.com/localnerve/socialdb/internal/models"
	"github.com/localnerve/socialdb/internal/types"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PollInput is the body of POST /polls
type PollInput struct {
	EventID   types.FlexID                  `json:"event_id"`
	Title     string                        `json:"title"`
	Questions types.FlexList[QuestionInput] `json:"questions"`
}

// QuestionInput is one question of a new poll
type QuestionInput struct {
	Question string        `json:"question"`
	Options  []OptionInput `json:"options"`
}

// OptionInput is one option of a new poll question
type OptionInput struct {
	Label string `json:"label"`
}

// VoteInput is the body of POST /polls/questions/:questionId/vote
type VoteInput struct {
	OptionID types.FlexID `json:"option_id"`
}

// OptionResult is the vote count of one option
type OptionResult struct {
	OptionID uint   `json:"option_id"`
	Label    string `json:"label"`
	Votes    int64  `json:"votes"`
}

// QuestionResult is the tally of one question
type QuestionResult struct {
	QuestionID uint           `json:"question_id"`
	Question   string         `json:"question"`
	Options    []OptionResult `json:"options"`
}

// PollResults is the tally of a poll
type PollResults struct {
	PollID  uint             `json:"poll_id"`
	Title   string           `json:"title"`
	Results []QuestionResult `json:"results"`
}

// optionKey folds case and inner whitespace so "Yes " and "yes" collide
func optionKey(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}

// build validates the input and returns the unsaved question tree
func (in PollInput) build() (string, []models.PollQuestion, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "", nil, types.BadRequest("Poll title is required")
	}
	if in.Questions.Len() == 0 {
		return "", nil, types.BadRequest("A poll needs at least one question")
	}

	questions := make([]models.PollQuestion, 0, in.Questions.Len())
	for i, q := range in.Questions {
		text := strings.TrimSpace(q.Question)
		if text == "" {
			return "", nil, types.BadRequest("Question %d is empty", i+1)
		}
		if len(q.Options) < 2 {
			return "", nil, types.BadRequest("Question %d needs at least two options", i+1)
		}

		seen := make(map[string]struct{}, len(q.Options))
		options := make([]models.PollOption, 0, len(q.Options))
		for _, o := range q.Options {
			label := strings.TrimSpace(o.Label)
			if label == "" {
				return "", nil, types.BadRequest("Question %d has an empty option", i+1)
			}
			key := optionKey(label)
			if _, dup := seen[key]; dup {
				return "", nil, types.BadRequest("Question %d has duplicate option %q", i+1, label)
			}
			seen[key] = struct{}{}
			options = append(options, models.PollOption{Label: label})
		}
		questions = append(questions, models.PollQuestion{Text: text, Options: options})
	}
	return title, questions, nil
}

// CreatePoll creates a poll with its questions and options; organizers only
func CreatePoll(db *gorm.DB, actor *models.User, in PollInput) (*models.Poll, error) {
	title, questions, err := in.build()
	if err != nil {
		return nil, err
	}

	var poll *models.Poll
	err = db.Transaction(func(tx *gorm.DB) error {
		event, err := loadEvent(tx, in.EventID.Uint())
		if err != nil {
			return err
		}
		if err := requireEventOrganizer(tx, event.ID, actor, "create polls"); err != nil {
			return err
		}

		poll = &models.Poll{
			EventID:   event.ID,
			CreatorID: actor.ID,
			Title:     title,
			Questions: questions,
		}
		// gorm saves the nested questions and options with the poll
		return errors.Wrap(tx.Create(poll).Error, "failed to create poll")
	})
	if err != nil {
		return nil, err
	}
	return poll, nil
}

func preloadPoll(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

// viewablePoll loads a poll with its questions and applies the event visibility rule
func viewablePoll(db *gorm.DB, actor *models.User, pollID uint) (*models.Poll, error) {
	var poll models.Poll
	if err := findByID(preloadPoll(db), &poll, pollID, "Poll"); err != nil {
		return nil, err
	}
	if _, err := viewableEvent(db, poll.EventID, actor, "this poll"); err != nil {
		return nil, err
	}
	return &poll, nil
}

// GetPoll returns a poll with its questions and options
func GetPoll(db *gorm.DB, actor *models.User, pollID uint) (*models.Poll, error) {
	return viewablePoll(db, actor, pollID)
}

// ListPolls returns the polls of an event, newest first
func ListPolls(db *gorm.DB, actor *models.User, eventID uint) ([]models.Poll, error) {
	if _, err := viewableEvent(db, eventID, actor, "polls for this event"); err != nil {
		return nil, err
	}

	polls := []models.Poll{}
	err := preloadPoll(tagged(db, "list_polls")).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&polls).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list polls")
	}
	return polls, nil
}

// Vote records the actor's answer to a question.
// A second vote on the same question is a Conflict.
func Vote(db *gorm.DB, actor *models.User, questionID uint, in VoteInput) (*models.PollVote, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	var vote *models.PollVote
	err := db.Transaction(func(tx *gorm.DB) error {
		var question models.PollQuestion
		if err := findByID(tx, &question, questionID, "Question"); err != nil {
			return err
		}
		var poll models.Poll
		if err := findByID(tx, &poll, question.PollID, "Poll"); err != nil {
			return err
		}
		if _, err := loadEvent(tx, poll.EventID); err != nil {
			return err
		}
		if err := requireEventMember(tx, poll.EventID, actor, "vote"); err != nil {
			return err
		}

		var options int64
		err := tx.Model(&models.PollOption{}).
			Where("id = ? AND question_id = ?", in.OptionID.Uint(), question.ID).
			Count(&options).Error
		if err != nil {
			return errors.Wrap(err, "failed to check option")
		}
		if options == 0 {
			return types.BadRequest("Option does not belong to this question")
		}

		var votes int64
		if err := tx.Model(&models.PollVote{}).Where("question_id = ? AND user_id = ?", question.ID, actor.ID).Count(&votes).Error; err != nil {
			return errors.Wrap(err, "failed to check vote")
		}
		if votes > 0 {
			return types.Conflict("User already voted for this question")
		}

		vote = &models.PollVote{
			QuestionID: question.ID,
			OptionID:   in.OptionID.Uint(),
			UserID:     actor.ID,
		}
		return storeError(tx.Create(vote).Error, "User already voted for this question", "failed to record vote")
	})
	if err != nil {
		return nil, err
	}
	return vote, nil
}

// Results tallies the votes of a poll per option
func Results(db *gorm.DB, actor *models.User, pollID uint) (*PollResults, error) {
	poll, err := viewablePoll(db, actor, pollID)
	if err != nil {
		return nil, err
	}

	type tally struct {
		OptionID uint
		Votes    int64
	}
	questionIDs := make([]uint, 0, len(poll.Questions))
	for _, q := range poll.Questions {
		questionIDs = append(questionIDs, q.ID)
	}

	counts := make(map[uint]int64)
	if len(questionIDs) > 0 {
		var tallies []tally
		err := tagged(db, "poll_results").
			Model(&models.PollVote{}).
			Select("option_id, COUNT(*) AS votes").
			Where("question_id IN ?", questionIDs).
			Group("option_id").
			Scan(&tallies).Error
		if err != nil {
			return nil, errors.Wrap(err, "failed to count votes")
		}
		for _, t := range tallies {
			counts[t.OptionID] = t.Votes
		}
	}

	results := &PollResults{
		PollID:  poll.ID,
		Title:   poll.Title,
		Results: make([]QuestionResult, 0, len(poll.Questions)),
	}
	for _, q := range poll.Questions {
		qr := QuestionResult{
			QuestionID: q.ID,
			Question:   q.Text,
			Options:    make([]OptionResult, 0, len(q.Options)),
		}
		for _, o := range q.Options {
			qr.Options = append(qr.Options, OptionResult{OptionID: o.ID, Label: o.Label, Votes: counts[o.ID]})
		}
		results.Results = append(results.Results, qr)
	}
	return results, nil
}

// deletePollsWhere removes matching polls with questions, options and votes
func deletePollsWhere(tx *gorm.DB, query string, args ...interface{}) error {
	polls := tx.Model(&models.Poll{}).Select("id").Where(query, args...)
	questions := tx.Model(&models.PollQuestion{}).Select("id").Where("poll_id IN (?)", polls)

	if err := tx.Where("question_id IN (?)", questions).Delete(&models.PollVote{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete poll votes")
	}
	if err := tx.Where("question_id IN (?)", questions).Delete(&models.PollOption{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete poll options")
	}
	if err := tx.Where("poll_id IN (?)", polls).Delete(&models.PollQuestion{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete poll questions")
	}
	return errors.Wrap(tx.Where(query, args...).Delete(&models.Poll{}).Error, "failed to delete polls")
}
