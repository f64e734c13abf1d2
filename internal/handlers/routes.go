// routes.go
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
	"github.com/localnerve/socialdb/internal/auth"
	"github.com/localnerve/socialdb/internal/config"
	"github.com/localnerve/socialdb/internal/middleware"
	"gorm.io/gorm"
)

// Deps are what the route handlers share
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Tokens *auth.TokenManager
}

// Register mounts every API route on router.
// Literal segments (by-group, by-event, photos, questions) are registered before
// the :id routes they would otherwise be swallowed by.
func Register(router fiber.Router, deps Deps) {
	authn := &middleware.Authenticator{DB: deps.DB, Tokens: deps.Tokens}
	required := authn.RequireUser()
	optional := authn.OptionalUser()

	health := &HealthHandler{DB: deps.DB, Config: deps.Config}
	router.Get("/health", health.Health)

	authH := &AuthHandler{DB: deps.DB, Tokens: deps.Tokens}
	authR := router.Group("/auth")
	authR.Post("/register", authH.Register)
	authR.Post("/login", authH.Login)
	authR.Get("/me", required, authH.Me)

	groupH := &GroupHandler{DB: deps.DB}
	groups := router.Group("/groups")
	groups.Post("/", required, groupH.CreateGroup)
	groups.Get("/", groupH.ListGroups)
	groups.Get("/:id", groupH.GetGroup)
	groups.Patch("/:id", required, groupH.UpdateGroup)
	groups.Delete("/:id", required, groupH.DeleteGroup)
	groups.Get("/:id/members", groupH.ListMembers)
	groups.Post("/:id/members/:userId", required, groupH.AddMember())
	groups.Delete("/:id/members/:userId", required, groupH.RemoveMember())
	groups.Get("/:id/admins", groupH.ListAdmins)
	groups.Post("/:id/admins/:userId", required, groupH.AddAdmin())
	groups.Delete("/:id/admins/:userId", required, groupH.RemoveAdmin())

	eventH := &EventHandler{DB: deps.DB}
	ticketH := &TicketHandler{DB: deps.DB}
	shoppingH := &ShoppingHandler{DB: deps.DB}
	events := router.Group("/events")
	events.Post("/", required, eventH.CreateEvent)
	events.Get("/", optional, eventH.ListEvents)
	events.Get("/:id", optional, eventH.GetEvent)
	events.Delete("/:id", required, eventH.DeleteEvent)
	events.Post("/:id/join", required, eventH.JoinEvent)
	events.Delete("/:id/participants/me", required, eventH.LeaveEvent)
	events.Get("/:id/participants", eventH.ListParticipants)
	events.Get("/:id/organizers", eventH.ListOrganizers)
	events.Post("/:id/organizers/:userId", required, eventH.AddOrganizer)
	events.Delete("/:id/organizers/:userId", required, eventH.RemoveOrganizer)
	events.Post("/:id/invite-group-members", required, eventH.InviteGroupMembers)
	events.Post("/:id/tickets/types", required, ticketH.CreateType)
	events.Get("/:id/tickets/types", ticketH.ListTypes)
	events.Post("/:id/tickets/purchase", ticketH.Purchase)
	events.Get("/:id/tickets/purchases", required, ticketH.ListPurchases)
	events.Post("/:id/shopping-items", required, shoppingH.CreateItem)
	events.Get("/:id/shopping-items", required, shoppingH.ListItems)
	events.Patch("/:id/shopping-items/:itemId", required, shoppingH.UpdateItem)
	events.Delete("/:id/shopping-items/:itemId", required, shoppingH.DeleteItem)

	discussionH := &DiscussionHandler{DB: deps.DB}
	discussions := router.Group("/discussions", required)
	discussions.Post("/", discussionH.CreateDiscussion)
	discussions.Get("/by-group/:groupId", discussionH.ByGroup)
	discussions.Get("/by-event/:eventId", discussionH.ByEvent)
	discussions.Get("/:id", discussionH.GetDiscussion)
	discussions.Post("/:id/messages", discussionH.PostMessage)
	discussions.Get("/:id/messages", discussionH.ListMessages)
	discussions.Get("/:id/messages/:messageId/replies", discussionH.ListReplies)
	discussions.Delete("/:id/messages/:messageId", discussionH.DeleteMessage)

	albumH := &AlbumHandler{DB: deps.DB}
	albums := router.Group("/albums")
	albums.Post("/", required, albumH.CreateAlbum)
	albums.Get("/by-event/:eventId", optional, albumH.ListByEvent)
	albums.Post("/photos/:photoId/comments", required, albumH.AddComment)
	albums.Get("/photos/:photoId/comments", optional, albumH.ListComments)
	albums.Get("/:id", optional, albumH.GetAlbum)
	albums.Post("/:id/photos", required, albumH.AddPhoto)
	albums.Get("/:id/photos", optional, albumH.ListPhotos)

	pollH := &PollHandler{DB: deps.DB}
	polls := router.Group("/polls")
	polls.Post("/", required, pollH.CreatePoll)
	polls.Get("/by-event/:eventId", optional, pollH.ListByEvent)
	polls.Post("/questions/:questionId/vote", required, pollH.Vote)
	polls.Get("/:id", optional, pollH.GetPoll)
	polls.Get("/:id/results", optional, pollH.Results)
}
