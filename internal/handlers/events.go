// events.go
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
	"github.com/localnerve/socialdb/internal/services"
	"github.com/localnerve/socialdb/internal/utils"
	"gorm.io/gorm"
)

// EventHandler handles event, participation and organizer routes
type EventHandler struct {
	DB *gorm.DB
}

// CreateEvent handles POST /events
// @Summary Create an event
// @Description The creator becomes participant and organizer. Group-linked events need a group member, and an admin unless the group allows member events. Dates are RFC 3339; a datetime without an offset is read as UTC.
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.EventInput true "Event"
// @Success 201 {object} models.Event
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /events [post]
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var in services.EventInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}

	event, err := services.CreateEvent(h.DB, actor(c), in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.CreatedResponse(c, event)
}

// ListEvents handles GET /events
// @Summary List visible events
// @Description Anonymous callers see public events; authenticated callers also see their own
// @Tags Events
// @Produce json
// @Param limit query int false "Page size (1..100)" default(20)
// @Param offset query int false "Rows to skip" default(0)
// @Success 200 {array} models.Event
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /events [get]
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	page, err := queryPage(c, services.DefaultPage)
	if err != nil {
		return utils.HandleError(c, err)
	}

	events, err := services.ListEvents(h.DB, actor(c), page)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, events, fiber.StatusOK)
}

// GetEvent handles GET /events/:id
// @Summary Get an event
// @Tags Events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} models.Event
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /events/{id} [get]
func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	event, err := services.GetEvent(h.DB, actor(c), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, event, fiber.StatusOK)
}

// DeleteEvent handles DELETE /events/:id
// @Summary Delete an event and everything it owns
// @Tags Events
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := services.DeleteEvent(h.DB, actor(c), id); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.NoContentResponse(c)
}

// JoinEvent handles POST /events/:id/join
// @Summary Join an event
// @Tags Events
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /events/{id}/join [post]
func (h *EventHandler) JoinEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := services.JoinEvent(h.DB, actor(c), id); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.NoContentResponse(c)
}

// LeaveEvent handles DELETE /events/:id/participants/me
// @Summary Leave an event
// @Tags Events
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /events/{id}/participants/me [delete]
func (h *EventHandler) LeaveEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := services.LeaveEvent(h.DB, actor(c), id); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.NoContentResponse(c)
}

// ListParticipants handles GET /events/:id/participants
// @Summary List event participants
// @Tags Events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {array} models.UserSummary
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /events/{id}/participants [get]
func (h *EventHandler) ListParticipants(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	users, err := services.ListParticipants(h.DB, id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, users, fiber.StatusOK)
}

// ListOrganizers handles GET /events/:id/organizers
// @Summary List event organizers
// @Tags Events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {array} models.UserSummary
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /events/{id}/organizers [get]
func (h *EventHandler) ListOrganizers(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	users, err := services.ListOrganizers(h.DB, id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, users, fiber.StatusOK)
}

// AddOrganizer handles POST /events/:id/organizers/:userId
// @Summary Promote a participant to organizer
// @Tags Events
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param userId path int true "User ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /events/{id}/organizers/{userId} [post]
func (h *EventHandler) AddOrganizer(c *fiber.Ctx) error {
	ids, err := paramIDs(c, "id", "userId")
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := services.AddOrganizer(h.DB, actor(c), ids[0], ids[1]); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.NoContentResponse(c)
}

// RemoveOrganizer handles DELETE /events/:id/organizers/:userId
// @Summary Demote an organizer
// @Tags Events
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param userId path int true "User ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /events/{id}/organizers/{userId} [delete]
func (h *EventHandler) RemoveOrganizer(c *fiber.Ctx) error {
	ids, err := paramIDs(c, "id", "userId")
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := services.RemoveOrganizer(h.DB, actor(c), ids[0], ids[1]); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.NoContentResponse(c)
}

// InviteGroupMembers handles POST /events/:id/invite-group-members
// @Summary Add every member of the linked group as participant
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /events/{id}/invite-group-members [post]
func (h *EventHandler) InviteGroupMembers(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	added, err := services.InviteGroupMembers(h.DB, actor(c), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MutationSuccessResponse(c, int64(added))
}
