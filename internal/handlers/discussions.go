// discussions.go
//
// socialdb, a social networking data service for groups, events and their discussions
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of socialdb.
// socialdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// socialdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with socialdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/socialdb/internal/models"
	"github.com/localnerve/socialdb/internal/services"
	"github.com/localnerve/socialdb/internal/utils"
	"gorm.io/gorm"
)

// DiscussionHandler handles discussion and message routes
type DiscussionHandler struct {
	DB *gorm.DB
}

// CreateDiscussion handles POST /discussions
// @Summary Open the discussion of a group or an event
// @Description Returns the existing discussion with 200 when the parent already has one
// @Tags Discussions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.DiscussionInput true "Exactly one of group_id, event_id"
// @Success 201 {object} models.Discussion
// @Success 200 {object} models.Discussion
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /discussions [post]
func (h *DiscussionHandler) CreateDiscussion(c *fiber.Ctx) error {
	var in services.DiscussionInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}
	parent, err := in.Parent()
	if err != nil {
		return utils.HandleError(c, err)
	}

	discussion, created, err := services.EnsureDiscussion(h.DB, actor(c), parent)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if created {
		return utils.CreatedResponse(c, discussion)
	}
	return utils.SuccessResponse(c, discussion, fiber.StatusOK)
}

// GetDiscussion handles GET /discussions/:id
// @Summary Get a discussion
// @Tags Discussions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Discussion ID"
// @Success 200 {object} models.Discussion
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /discussions/{id} [get]
func (h *DiscussionHandler) GetDiscussion(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	discussion, err := services.GetDiscussion(h.DB, actor(c), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, discussion, fiber.StatusOK)
}

// byParent returns the parent's discussion, creating it on first use
func (h *DiscussionHandler) byParent(c *fiber.Ctx, param string, parentOf func(uint) models.DiscussionParent) error {
	id, err := paramID(c, param)
	if err != nil {
		return utils.HandleError(c, err)
	}

	discussion, _, err := services.EnsureDiscussion(h.DB, actor(c), parentOf(id))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, discussion, fiber.StatusOK)
}

// ByGroup handles GET /discussions/by-group/:groupId
// @Summary Get the discussion of a group
// @Tags Discussions
// @Produce json
// @Security BearerAuth
// @Param groupId path int true "Group ID"
// @Success 200 {object} models.Discussion
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /discussions/by-group/{groupId} [get]
func (h *DiscussionHandler) ByGroup(c *fiber.Ctx) error {
	return h.byParent(c, "groupId", models.GroupParent)
}

// ByEvent handles GET /discussions/by-event/:eventId
// @Summary Get the discussion of an event
// @Tags Discussions
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} models.Discussion
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /discussions/by-event/{eventId} [get]
func (h *DiscussionHandler) ByEvent(c *fiber.Ctx) error {
	return h.byParent(c, "eventId", models.EventParent)
}

// PostMessage handles POST /discussions/:id/messages
// @Summary Post a message or a reply
// @Tags Discussions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Discussion ID"
// @Param body body services.MessageInput true "Message"
// @Success 201 {object} models.Message
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /discussions/{id}/messages [post]
func (h *DiscussionHandler) PostMessage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	var in services.MessageInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}

	message, err := services.PostMessage(h.DB, actor(c), id, in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.CreatedResponse(c, message)
}

// ListMessages handles GET /discussions/:id/messages
// @Summary List messages, oldest first
// @Tags Discussions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Discussion ID"
// @Param limit query int false "Page size (1..200)" default(50)
// @Param offset query int false "Rows to skip" default(0)
// @Success 200 {array} models.Message
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /discussions/{id}/messages [get]
func (h *DiscussionHandler) ListMessages(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	page, err := queryPage(c, services.DefaultLongPage)
	if err != nil {
		return utils.HandleError(c, err)
	}

	messages, err := services.ListMessages(h.DB, actor(c), id, page)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, messages, fiber.StatusOK)
}

// ListReplies handles GET /discussions/:id/messages/:messageId/replies
// @Summary List the direct replies to a message
// @Tags Discussions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Discussion ID"
// @Param messageId path int true "Message ID"
// @Success 200 {array} models.Message
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /discussions/{id}/messages/{messageId}/replies [get]
func (h *DiscussionHandler) ListReplies(c *fiber.Ctx) error {
	ids, err := paramIDs(c, "id", "messageId")
	if err != nil {
		return utils.HandleError(c, err)
	}

	replies, err := services.ListReplies(h.DB, actor(c), ids[0], ids[1])
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, replies, fiber.StatusOK)
}

// DeleteMessage handles DELETE /discussions/:id/messages/:messageId
// @Summary Delete a message and its replies
// @Tags Discussions
// @Security BearerAuth
// @Param id path int true "Discussion ID"
// @Param messageId path int true "Message ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /discussions/{id}/messages/{messageId} [delete]
func (h *DiscussionHandler) DeleteMessage(c *fiber.Ctx) error {
	ids, err := paramIDs(c, "id", "messageId")
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := services.DeleteMessage(h.DB, actor(c), ids[0], ids[1]); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.NoContentResponse(c)
}
