package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/socialdb/internal/services"
	"github.com/localnerve/socialdb/internal/utils"
	"gorm.io/gorm"
)

// PollHandler handles poll, vote and result routes
type PollHandler struct {
	DB *gorm.DB
}

// CreatePoll handles POST /polls
// @Summary Create a poll for an event
// @Tags Polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.PollInput true "Poll with questions and options"
// @Success 201 {object} models.Poll
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /polls [post]
func (h *PollHandler) CreatePoll(c *fiber.Ctx) error {
	var in services.PollInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}

	poll, err := services.CreatePoll(h.DB, actor(c), in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.CreatedResponse(c, poll)
}

// GetPoll handles GET /polls/:id
// @Summary Get a poll with its questions and options
// @Tags Polls
// @Produce json
// @Param id path int true "Poll ID"
// @Success 200 {object} models.Poll
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /polls/{id} [get]
func (h *PollHandler) GetPoll(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	poll, err := services.GetPoll(h.DB, actor(c), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, poll, fiber.StatusOK)
}

// ListByEvent handles GET /polls/by-event/:eventId
// @Summary List the polls of an event
// @Tags Polls
// @Produce json
// @Param eventId path int true "Event ID"
// @Success 200 {array} models.Poll
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /polls/by-event/{eventId} [get]
func (h *PollHandler) ListByEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "eventId")
	if err != nil {
		return utils.HandleError(c, err)
	}

	polls, err := services.ListPolls(h.DB, actor(c), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, polls, fiber.StatusOK)
}

// Vote handles POST /polls/questions/:questionId/vote
// @Summary Vote on a poll question
// @Tags Polls
// @Accept json
// @Security BearerAuth
// @Param questionId path int true "Question ID"
// @Param body body services.VoteInput true "Chosen option"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /polls/questions/{questionId}/vote [post]
func (h *PollHandler) Vote(c *fiber.Ctx) error {
	id, err := paramID(c, "questionId")
	if err != nil {
		return utils.HandleError(c, err)
	}
	var in services.VoteInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}

	if _, err := services.Vote(h.DB, actor(c), id, in); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.NoContentResponse(c)
}

// Results handles GET /polls/:id/results
// @Summary Vote counts per option
// @Tags Polls
// @Produce json
// @Param id path int true "Poll ID"
// @Success 200 {object} services.PollResults
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /polls/{id}/results [get]
func (h *PollHandler) Results(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	results, err := services.Results(h.DB, actor(c), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, results, fiber.StatusOK)
}
