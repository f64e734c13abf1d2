// groups.go
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

// GroupHandler handles group and membership routes
type GroupHandler struct {
	DB *gorm.DB
}

// CreateGroup handles POST /groups
// @Summary Create a group
// @Description The creator becomes the first member and admin
// @Tags Groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.GroupInput true "Group"
// @Success 201 {object} models.Group
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /groups [post]
func (h *GroupHandler) CreateGroup(c *fiber.Ctx) error {
	var in services.GroupInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}

	group, err := services.CreateGroup(h.DB, actor(c), in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.CreatedResponse(c, group)
}

// ListGroups handles GET /groups
// @Summary List groups
// @Tags Groups
// @Produce json
// @Param limit query int false "Page size (clamped to 1..100)" default(20)
// @Param offset query int false "Rows to skip" default(0)
// @Success 200 {array} models.Group
// @Router /groups [get]
func (h *GroupHandler) ListGroups(c *fiber.Ctx) error {
	page, err := queryPage(c, services.DefaultPage)
	if err != nil {
		return utils.HandleError(c, err)
	}

	groups, err := services.ListGroups(h.DB, page)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, groups, fiber.StatusOK)
}

// GetGroup handles GET /groups/:id
// @Summary Get a group
// @Tags Groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} models.Group
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /groups/{id} [get]
func (h *GroupHandler) GetGroup(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	group, err := services.GetGroup(h.DB, id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, group, fiber.StatusOK)
}

// UpdateGroup handles PATCH /groups/:id
// @Summary Update a group
// @Tags Groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param body body services.GroupInput true "Fields to change"
// @Success 200 {object} models.Group
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /groups/{id} [patch]
func (h *GroupHandler) UpdateGroup(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	var in services.GroupInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}

	group, err := services.UpdateGroup(h.DB, actor(c), id, in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, group, fiber.StatusOK)
}

// DeleteGroup handles DELETE /groups/:id
// @Summary Delete a group with its memberships and discussion
// @Tags Groups
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /groups/{id} [delete]
func (h *GroupHandler) DeleteGroup(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := services.DeleteGroup(h.DB, actor(c), id); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.NoContentResponse(c)
}

// ListMembers handles GET /groups/:id/members
// @Summary List group members
// @Tags Groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {array} models.UserSummary
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /groups/{id}/members [get]
func (h *GroupHandler) ListMembers(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	members, err := services.ListGroupMembers(h.DB, id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, members, fiber.StatusOK)
}

// ListAdmins handles GET /groups/:id/admins
// @Summary List group admins
// @Tags Groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {array} models.UserSummary
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /groups/{id}/admins [get]
func (h *GroupHandler) ListAdmins(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	admins, err := services.ListGroupAdmins(h.DB, id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, admins, fiber.StatusOK)
}

// membership adapts a group/user membership mutation to a 204 handler
func (h *GroupHandler) membership(fn func(db *gorm.DB, c *fiber.Ctx, groupID, userID uint) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ids, err := paramIDs(c, "id", "userId")
		if err != nil {
			return utils.HandleError(c, err)
		}
		if err := fn(h.DB, c, ids[0], ids[1]); err != nil {
			return utils.HandleError(c, err)
		}
		return utils.NoContentResponse(c)
	}
}

// AddMember handles POST /groups/:id/members/:userId
// @Summary Add a group member
// @Tags Groups
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param userId path int true "User ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /groups/{id}/members/{userId} [post]
func (h *GroupHandler) AddMember() fiber.Handler {
	return h.membership(func(db *gorm.DB, c *fiber.Ctx, groupID, userID uint) error {
		return services.AddGroupMember(db, actor(c), groupID, userID)
	})
}

// RemoveMember handles DELETE /groups/:id/members/:userId
// @Summary Remove a group member
// @Description Also removes the admin role; the last admin cannot be removed
// @Tags Groups
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param userId path int true "User ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /groups/{id}/members/{userId} [delete]
func (h *GroupHandler) RemoveMember() fiber.Handler {
	return h.membership(func(db *gorm.DB, c *fiber.Ctx, groupID, userID uint) error {
		return services.RemoveGroupMember(db, actor(c), groupID, userID)
	})
}

// AddAdmin handles POST /groups/:id/admins/:userId
// @Summary Promote a member to admin
// @Tags Groups
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param userId path int true "User ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /groups/{id}/admins/{userId} [post]
func (h *GroupHandler) AddAdmin() fiber.Handler {
	return h.membership(func(db *gorm.DB, c *fiber.Ctx, groupID, userID uint) error {
		return services.AddGroupAdmin(db, actor(c), groupID, userID)
	})
}

// RemoveAdmin handles DELETE /groups/:id/admins/:userId
// @Summary Demote an admin
// @Tags Groups
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param userId path int true "User ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /groups/{id}/admins/{userId} [delete]
func (h *GroupHandler) RemoveAdmin() fiber.Handler {
	return h.membership(func(db *gorm.DB, c *fiber.Ctx, groupID, userID uint) error {
		return services.RemoveGroupAdmin(db, actor(c), groupID, userID)
	})
}
