// handlers_test.go
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
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/socialdb/internal/auth"
	"github.com/localnerve/socialdb/internal/config"
	"github.com/localnerve/socialdb/internal/models"
	"github.com/localnerve/socialdb/internal/testutil"
	"github.com/localnerve/socialdb/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	t      *testing.T
	app    *fiber.App
	db     *gorm.DB
	tokens *auth.TokenManager
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	tokens := auth.NewTokenManager("handler-secret", time.Hour, "socialdb")

	app := fiber.New(fiber.Config{ErrorHandler: utils.HandleError})
	Register(app, Deps{
		DB:     db,
		Config: &config.Config{DBType: "sqlite-pure", DBDatabase: "memory"},
		Tokens: tokens,
	})
	return &testEnv{t: t, app: app, db: db, tokens: tokens}
}

func (e *testEnv) tokenFor(user *models.User) string {
	e.t.Helper()
	token, _, err := e.tokens.Issue(user.ID)
	require.NoError(e.t, err)
	return token
}

// do sends a request with an optional JSON body and bearer token
func (e *testEnv) do(method, path string, body interface{}, token string) *http.Response {
	e.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	return resp
}

// expect checks the status and decodes the body into target when given
func expect(t *testing.T, resp *http.Response, status int, target interface{}) {
	t.Helper()
	testutil.AssertStatus(t, resp, status)
	if target != nil {
		testutil.ParseJSON(t, resp, target)
	}
}

// expectError checks the status and the error envelope type
func expectError(t *testing.T, resp *http.Response, status int, errorType string) utils.ErrorResponseStruct {
	t.Helper()
	return testutil.AssertErrorEnvelope(t, resp, status, errorType)
}

func eventBody(name string, public bool) fiber.Map {
	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	return fiber.Map{
		"name":       name,
		"start_date": start.Format(time.RFC3339),
		"end_date":   start.Add(3 * time.Hour).Format(time.RFC3339),
		"location":   "Town hall",
		"is_public":  public,
	}
}

func TestAuthFlow(t *testing.T) {
	env := newEnv(t)

	var user models.User
	resp := env.do("POST", "/auth/register", fiber.Map{"email": "Flow@Example.com", "password": "password123", "full_name": "Flo"}, "")
	expect(t, resp, fiber.StatusCreated, &user)
	assert.Equal(t, "flow@example.com", user.Email)

	var raw map[string]interface{}
	resp = env.do("POST", "/auth/register", fiber.Map{"email": "flow2@example.com", "password": "password123"}, "")
	expect(t, resp, fiber.StatusCreated, &raw)
	assert.NotContains(t, raw, "hashed_password")

	resp = env.do("POST", "/auth/register", fiber.Map{"email": "flow@example.com", "password": "password123"}, "")
	expectError(t, resp, fiber.StatusConflict, "conflict")

	resp = env.do("POST", "/auth/register", fiber.Map{"email": "short@example.com", "password": "short"}, "")
	expectError(t, resp, fiber.StatusBadRequest, "bad_request")

	resp = env.do("POST", "/auth/login", fiber.Map{"email": "flow@example.com", "password": "wrong-password"}, "")
	expectError(t, resp, fiber.StatusUnauthorized, "unauthorized")

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	resp = env.do("POST", "/auth/login", fiber.Map{"email": "flow@example.com", "password": "password123"}, "")
	expect(t, resp, fiber.StatusOK, &token)
	assert.Equal(t, "bearer", token.TokenType)
	require.NotEmpty(t, token.AccessToken)

	var me models.User
	resp = env.do("GET", "/auth/me", nil, token.AccessToken)
	expect(t, resp, fiber.StatusOK, &me)
	assert.Equal(t, user.ID, me.ID)

	resp = env.do("GET", "/auth/me", nil, "")
	expectError(t, resp, fiber.StatusUnauthorized, "unauthorized")
}

func TestMalformedInput(t *testing.T) {
	env := newEnv(t)
	user := testutil.CreateUser(t, env.db, "bad")
	token := env.tokenFor(user)

	resp := env.do("GET", "/groups/abc", nil, "")
	expectError(t, resp, fiber.StatusBadRequest, "bad_request")

	resp = env.do("GET", "/events?limit=ten", nil, "")
	expectError(t, resp, fiber.StatusBadRequest, "bad_request")

	req := httptest.NewRequest("POST", "/groups", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	expectError(t, resp, fiber.StatusBadRequest, "bad_request")
}

func TestGroupRoutes(t *testing.T) {
	env := newEnv(t)
	admin := testutil.CreateUser(t, env.db, "admin")
	member := testutil.CreateUser(t, env.db, "member")
	adminToken := env.tokenFor(admin)

	resp := env.do("POST", "/groups", fiber.Map{"name": "Climbers"}, "")
	expectError(t, resp, fiber.StatusUnauthorized, "unauthorized")

	var group models.Group
	resp = env.do("POST", "/groups", fiber.Map{"name": "Climbers"}, adminToken)
	expect(t, resp, fiber.StatusCreated, &group)
	assert.Equal(t, models.GroupPublic, group.GroupType)
	assert.True(t, group.AllowMemberPosts)
	assert.False(t, group.AllowMemberEvents)

	var groups []models.Group
	resp = env.do("GET", "/groups?limit=500", nil, "")
	expect(t, resp, fiber.StatusOK, &groups)
	assert.Len(t, groups, 1)

	path := fmt.Sprintf("/groups/%d/members/%d", group.ID, member.ID)
	resp = env.do("POST", path, nil, adminToken)
	testutil.AssertStatus(t, resp, fiber.StatusNoContent)
	testutil.AssertNoContent(t, resp)
	resp = env.do("POST", path, nil, adminToken)
	testutil.AssertStatus(t, resp, fiber.StatusNoContent)

	var members []models.UserSummary
	resp = env.do("GET", fmt.Sprintf("/groups/%d/members", group.ID), nil, "")
	expect(t, resp, fiber.StatusOK, &members)
	assert.Len(t, members, 2)

	resp = env.do("POST", fmt.Sprintf("/groups/%d/members/%d", group.ID, admin.ID), nil, env.tokenFor(member))
	expectError(t, resp, fiber.StatusForbidden, "forbidden")

	resp = env.do("DELETE", fmt.Sprintf("/groups/%d/admins/%d", group.ID, admin.ID), nil, adminToken)
	expectError(t, resp, fiber.StatusConflict, "conflict")

	resp = env.do("DELETE", fmt.Sprintf("/groups/%d/members/%d", group.ID, admin.ID), nil, adminToken)
	expectError(t, resp, fiber.StatusConflict, "conflict")

	var updated models.Group
	resp = env.do("PATCH", fmt.Sprintf("/groups/%d", group.ID), fiber.Map{"allow_member_events": true}, adminToken)
	expect(t, resp, fiber.StatusOK, &updated)
	assert.True(t, updated.AllowMemberEvents)
	assert.Equal(t, "Climbers", updated.Name)

	resp = env.do("GET", "/groups/9999", nil, "")
	expectError(t, resp, fiber.StatusNotFound, "not_found")

	resp = env.do("DELETE", fmt.Sprintf("/groups/%d", group.ID), nil, adminToken)
	testutil.AssertStatus(t, resp, fiber.StatusNoContent)
}

func TestGroupEventCreation(t *testing.T) {
	env := newEnv(t)
	admin := testutil.CreateUser(t, env.db, "admin")
	member := testutil.CreateUser(t, env.db, "member")
	group := testutil.CreateGroup(t, env.db, admin, testutil.GroupOptions{AllowMemberEvents: false})
	testutil.AddGroupMember(t, env.db, group, member)

	body := eventBody("Crag day", false)
	body["group_id"] = fmt.Sprintf("%d", group.ID)

	resp := env.do("POST", "/events", body, env.tokenFor(member))
	expectError(t, resp, fiber.StatusForbidden, "forbidden")

	var event models.Event
	resp = env.do("POST", "/events", body, env.tokenFor(admin))
	expect(t, resp, fiber.StatusCreated, &event)
	require.NotNil(t, event.GroupID)
	assert.Equal(t, group.ID, *event.GroupID)

	// group members may view the linked private event
	resp = env.do("GET", fmt.Sprintf("/events/%d", event.ID), nil, env.tokenFor(member))
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	var invited utils.SuccessResponseStruct
	resp = env.do("POST", fmt.Sprintf("/events/%d/invite-group-members", event.ID), nil, env.tokenFor(admin))
	expect(t, resp, fiber.StatusOK, &invited)
	assert.True(t, invited.Ok)
	assert.EqualValues(t, 1, invited.AffectedRows)
}

func TestEventDatesWithoutOffset(t *testing.T) {
	env := newEnv(t)
	token := env.tokenFor(testutil.CreateUser(t, env.db, "organizer"))

	var event models.Event
	resp := env.do("POST", "/events", fiber.Map{
		"name":       "Picnic",
		"start_date": "2031-06-01T10:00:00",
		"end_date":   "2031-06-01 13:30:00",
		"location":   "Park",
	}, token)
	expect(t, resp, fiber.StatusCreated, &event)
	assert.True(t, event.StartDate.Equal(time.Date(2031, 6, 1, 10, 0, 0, 0, time.UTC)), "start %s", event.StartDate)
	assert.True(t, event.EndDate.Equal(time.Date(2031, 6, 1, 13, 30, 0, 0, time.UTC)), "end %s", event.EndDate)

	resp = env.do("POST", "/events", fiber.Map{
		"name":       "Picnic",
		"start_date": "06/01/2031 10:00",
		"end_date":   "2031-06-01T13:30:00Z",
		"location":   "Park",
	}, token)
	expectError(t, resp, fiber.StatusBadRequest, "bad_request")
}

func TestEventRoutes(t *testing.T) {
	env := newEnv(t)
	organizer := testutil.CreateUser(t, env.db, "organizer")
	guest := testutil.CreateUser(t, env.db, "guest")
	organizerToken := env.tokenFor(organizer)
	guestToken := env.tokenFor(guest)

	var private models.Event
	resp := env.do("POST", "/events", eventBody("Dinner", false), organizerToken)
	expect(t, resp, fiber.StatusCreated, &private)
	assert.False(t, private.IsPublic)

	var public models.Event
	resp = env.do("POST", "/events", eventBody("Concert", true), organizerToken)
	expect(t, resp, fiber.StatusCreated, &public)

	resp = env.do("GET", fmt.Sprintf("/events/%d", private.ID), nil, "")
	expectError(t, resp, fiber.StatusForbidden, "forbidden")
	resp = env.do("GET", fmt.Sprintf("/events/%d", private.ID), nil, guestToken)
	expectError(t, resp, fiber.StatusForbidden, "forbidden")

	// an invalid token on an optional route is treated as anonymous
	resp = env.do("GET", fmt.Sprintf("/events/%d", public.ID), nil, "garbage")
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	var listed []models.Event
	resp = env.do("GET", "/events", nil, "")
	expect(t, resp, fiber.StatusOK, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, public.ID, listed[0].ID)

	resp = env.do("GET", "/events", nil, organizerToken)
	expect(t, resp, fiber.StatusOK, &listed)
	assert.Len(t, listed, 2)

	resp = env.do("GET", "/events?limit=0", nil, "")
	expectError(t, resp, fiber.StatusBadRequest, "bad_request")
	resp = env.do("GET", "/events?limit=101", nil, "")
	expectError(t, resp, fiber.StatusBadRequest, "bad_request")

	join := fmt.Sprintf("/events/%d/join", private.ID)
	testutil.AssertStatus(t, env.do("POST", join, nil, guestToken), fiber.StatusNoContent)
	testutil.AssertStatus(t, env.do("POST", join, nil, guestToken), fiber.StatusNoContent)
	assert.EqualValues(t, 1, testutil.Count(t, env.db, &models.EventParticipant{}, "event_id = ? AND user_id = ?", private.ID, guest.ID))

	resp = env.do("GET", fmt.Sprintf("/events/%d", private.ID), nil, guestToken)
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = env.do("DELETE", fmt.Sprintf("/events/%d/participants/me", private.ID), nil, organizerToken)
	expectError(t, resp, fiber.StatusBadRequest, "bad_request")

	resp = env.do("POST", fmt.Sprintf("/events/%d/organizers/%d", private.ID, guest.ID), nil, organizerToken)
	testutil.AssertStatus(t, resp, fiber.StatusNoContent)

	var organizers []models.UserSummary
	resp = env.do("GET", fmt.Sprintf("/events/%d/organizers", private.ID), nil, "")
	expect(t, resp, fiber.StatusOK, &organizers)
	assert.Len(t, organizers, 2)

	resp = env.do("DELETE", fmt.Sprintf("/events/%d/organizers/%d", private.ID, organizer.ID), nil, guestToken)
	testutil.AssertStatus(t, resp, fiber.StatusNoContent)
	resp = env.do("DELETE", fmt.Sprintf("/events/%d/organizers/%d", private.ID, guest.ID), nil, guestToken)
	expectError(t, resp, fiber.StatusConflict, "conflict")

	resp = env.do("DELETE", fmt.Sprintf("/events/%d", public.ID), nil, guestToken)
	expectError(t, resp, fiber.StatusForbidden, "forbidden")
	resp = env.do("DELETE", fmt.Sprintf("/events/%d", public.ID), nil, organizerToken)
	testutil.AssertStatus(t, resp, fiber.StatusNoContent)
}

func TestDiscussionRoutes(t *testing.T) {
	env := newEnv(t)
	admin := testutil.CreateUser(t, env.db, "admin")
	outsider := testutil.CreateUser(t, env.db, "outsider")
	group := testutil.CreateGroup(t, env.db, admin, testutil.GroupOptions{})
	event := testutil.CreateEvent(t, env.db, admin, testutil.EventOptions{})
	token := env.tokenFor(admin)

	resp := env.do("POST", "/discussions", fiber.Map{"group_id": group.ID, "event_id": event.ID}, token)
	expectError(t, resp, fiber.StatusBadRequest, "bad_request")
	resp = env.do("POST", "/discussions", fiber.Map{}, token)
	expectError(t, resp, fiber.StatusBadRequest, "bad_request")

	var first, second, byGroup models.Discussion
	resp = env.do("POST", "/discussions", fiber.Map{"group_id": group.ID}, token)
	expect(t, resp, fiber.StatusCreated, &first)
	resp = env.do("POST", "/discussions", fiber.Map{"group_id": group.ID}, token)
	expect(t, resp, fiber.StatusOK, &second)
	assert.Equal(t, first.ID, second.ID)

	resp = env.do("GET", fmt.Sprintf("/discussions/by-group/%d", group.ID), nil, token)
	expect(t, resp, fiber.StatusOK, &byGroup)
	assert.Equal(t, first.ID, byGroup.ID)

	var byEvent models.Discussion
	resp = env.do("GET", fmt.Sprintf("/discussions/by-event/%d", event.ID), nil, token)
	expect(t, resp, fiber.StatusOK, &byEvent)
	assert.NotEqual(t, first.ID, byEvent.ID)

	resp = env.do("GET", fmt.Sprintf("/discussions/%d", first.ID), nil, env.tokenFor(outsider))
	expectError(t, resp, fiber.StatusForbidden, "forbidden")
	resp = env.do("GET", fmt.Sprintf("/discussions/%d", first.ID), nil, "")
	expectError(t, resp, fiber.StatusUnauthorized, "unauthorized")

	var root, reply, elsewhere models.Message
	resp = env.do("POST", fmt.Sprintf("/discussions/%d/messages", first.ID), fiber.Map{"content": "hello"}, token)
	expect(t, resp, fiber.StatusCreated, &root)
	resp = env.do("POST", fmt.Sprintf("/discussions/%d/messages", first.ID), fiber.Map{"content": "hi back", "parent_message_id": root.ID}, token)
	expect(t, resp, fiber.StatusCreated, &reply)
	resp = env.do("POST", fmt.Sprintf("/discussions/%d/messages", byEvent.ID), fiber.Map{"content": "event chat"}, token)
	expect(t, resp, fiber.StatusCreated, &elsewhere)

	resp = env.do("POST", fmt.Sprintf("/discussions/%d/messages", first.ID), fiber.Map{"content": "cross", "parent_message_id": elsewhere.ID}, token)
	expectError(t, resp, fiber.StatusBadRequest, "bad_request")

	var messages []models.Message
	resp = env.do("GET", fmt.Sprintf("/discussions/%d/messages?limit=10", first.ID), nil, token)
	expect(t, resp, fiber.StatusOK, &messages)
	require.Len(t, messages, 2)
	assert.Equal(t, root.ID, messages[0].ID)

	var replies []models.Message
	resp = env.do("GET", fmt.Sprintf("/discussions/%d/messages/%d/replies", first.ID, root.ID), nil, token)
	expect(t, resp, fiber.StatusOK, &replies)
	require.Len(t, replies, 1)
	assert.Equal(t, reply.ID, replies[0].ID)

	resp = env.do("DELETE", fmt.Sprintf("/discussions/%d/messages/%d", first.ID, root.ID), nil, token)
	testutil.AssertStatus(t, resp, fiber.StatusNoContent)
	assert.Zero(t, testutil.Count(t, env.db, &models.Message{}, "discussion_id = ?", first.ID))
}

func TestAlbumAndPollRoutes(t *testing.T) {
	env := newEnv(t)
	organizer := testutil.CreateUser(t, env.db, "organizer")
	participant := testutil.CreateUser(t, env.db, "participant")
	event := testutil.CreateEvent(t, env.db, organizer, testutil.EventOptions{Public: true})
	testutil.AddParticipant(t, env.db, event, participant)
	organizerToken := env.tokenFor(organizer)
	participantToken := env.tokenFor(participant)

	var album models.PhotoAlbum
	resp := env.do("POST", "/albums", fiber.Map{"event_id": event.ID, "title": "Stage"}, participantToken)
	expect(t, resp, fiber.StatusCreated, &album)

	var photo models.Photo
	resp = env.do("POST", fmt.Sprintf("/albums/%d/photos", album.ID), fiber.Map{
		"url":      "https://img.example.com/stage.jpg",
		"metadata": fiber.Map{"width": 1024},
	}, participantToken)
	expect(t, resp, fiber.StatusCreated, &photo)

	resp = env.do("POST", fmt.Sprintf("/albums/photos/%d/comments", photo.ID), fiber.Map{"content": "wow"}, organizerToken)
	testutil.AssertStatus(t, resp, fiber.StatusCreated)

	var albums []models.PhotoAlbum
	resp = env.do("GET", fmt.Sprintf("/albums/by-event/%d", event.ID), nil, "")
	expect(t, resp, fiber.StatusOK, &albums)
	assert.Len(t, albums, 1)

	var photos []map[string]interface{}
	resp = env.do("GET", fmt.Sprintf("/albums/%d/photos", album.ID), nil, "")
	expect(t, resp, fiber.StatusOK, &photos)
	require.Len(t, photos, 1)
	assert.Equal(t, map[string]interface{}{"width": float64(1024)}, photos[0]["metadata"])

	resp = env.do("GET", fmt.Sprintf("/albums/photos/%d/comments?limit=201", photo.ID), nil, "")
	expectError(t, resp, fiber.StatusBadRequest, "bad_request")

	pollBody := fiber.Map{
		"event_id": event.ID,
		"title":    "Encore",
		"questions": []fiber.Map{{
			"question": "Which song?",
			"options":  []fiber.Map{{"label": "First"}, {"label": "Last"}},
		}},
	}
	resp = env.do("POST", "/polls", pollBody, participantToken)
	expectError(t, resp, fiber.StatusForbidden, "forbidden")

	var poll models.Poll
	resp = env.do("POST", "/polls", pollBody, organizerToken)
	expect(t, resp, fiber.StatusCreated, &poll)
	require.Len(t, poll.Questions, 1)
	question := poll.Questions[0]
	require.Len(t, question.Options, 2)

	vote := fmt.Sprintf("/polls/questions/%d/vote", question.ID)
	resp = env.do("POST", vote, fiber.Map{"option_id": question.Options[1].ID}, participantToken)
	testutil.AssertStatus(t, resp, fiber.StatusNoContent)
	resp = env.do("POST", vote, fiber.Map{"option_id": question.Options[0].ID}, participantToken)
	expectError(t, resp, fiber.StatusConflict, "conflict")

	var results struct {
		Results []struct {
			Options []struct {
				Label string `json:"label"`
				Votes int64  `json:"votes"`
			} `json:"options"`
		} `json:"results"`
	}
	resp = env.do("GET", fmt.Sprintf("/polls/%d/results", poll.ID), nil, "")
	expect(t, resp, fiber.StatusOK, &results)
	require.Len(t, results.Results, 1)
	assert.EqualValues(t, 0, results.Results[0].Options[0].Votes)
	assert.EqualValues(t, 1, results.Results[0].Options[1].Votes)

	var polls []models.Poll
	resp = env.do("GET", fmt.Sprintf("/polls/by-event/%d", event.ID), nil, "")
	expect(t, resp, fiber.StatusOK, &polls)
	assert.Len(t, polls, 1)
}

func TestTicketRoutes(t *testing.T) {
	env := newEnv(t)
	organizer := testutil.CreateUser(t, env.db, "organizer")
	event := testutil.CreateEvent(t, env.db, organizer, testutil.EventOptions{Public: true})
	private := testutil.CreateEvent(t, env.db, organizer, testutil.EventOptions{})
	token := env.tokenFor(organizer)

	resp := env.do("POST", fmt.Sprintf("/events/%d/tickets/types", private.ID), fiber.Map{"name": "VIP", "amount": "50", "quantity_limit": 1}, token)
	expectError(t, resp, fiber.StatusForbidden, "forbidden")

	var ticketType models.TicketType
	resp = env.do("POST", fmt.Sprintf("/events/%d/tickets/types", event.ID), fiber.Map{"name": "VIP", "amount": "49.90", "quantity_limit": 1}, token)
	expect(t, resp, fiber.StatusCreated, &ticketType)
	assert.Equal(t, "49.9", ticketType.Amount.String())

	purchase := fmt.Sprintf("/events/%d/tickets/purchase", event.ID)
	var bought models.TicketPurchase
	resp = env.do("POST", purchase, fiber.Map{"ticket_type_id": ticketType.ID, "email": "fan@example.com"}, "")
	expect(t, resp, fiber.StatusCreated, &bought)
	assert.NotEmpty(t, bought.Reference)

	resp = env.do("POST", purchase, fiber.Map{"ticket_type_id": ticketType.ID, "email": "FAN@example.com"}, "")
	expectError(t, resp, fiber.StatusConflict, "conflict")

	resp = env.do("POST", purchase, fiber.Map{"ticket_type_id": ticketType.ID, "email": "late@example.com"}, "")
	envelope := expectError(t, resp, fiber.StatusConflict, "conflict")
	assert.Equal(t, "Sold out", envelope.Message)

	var purchases []models.TicketPurchase
	resp = env.do("GET", fmt.Sprintf("/events/%d/tickets/purchases", event.ID), nil, token)
	expect(t, resp, fiber.StatusOK, &purchases)
	assert.Len(t, purchases, 1)
}

func TestShoppingRoutes(t *testing.T) {
	env := newEnv(t)
	organizer := testutil.CreateUser(t, env.db, "organizer")
	disabled := testutil.CreateEvent(t, env.db, organizer, testutil.EventOptions{})
	event := testutil.CreateEvent(t, env.db, organizer, testutil.EventOptions{Shopping: true})
	token := env.tokenFor(organizer)

	resp := env.do("POST", fmt.Sprintf("/events/%d/shopping-items", disabled.ID), fiber.Map{"name": "Ice", "quantity": 2}, token)
	expectError(t, resp, fiber.StatusBadRequest, "bad_request")

	var item struct {
		ID        uint                `json:"id"`
		Name      string              `json:"name"`
		CreatedBy *models.UserSummary `json:"created_by"`
	}
	resp = env.do("POST", fmt.Sprintf("/events/%d/shopping-items", event.ID), fiber.Map{"name": "Ice", "quantity": 2}, token)
	expect(t, resp, fiber.StatusCreated, &item)
	require.NotNil(t, item.CreatedBy)
	assert.Equal(t, organizer.ID, item.CreatedBy.ID)

	resp = env.do("POST", fmt.Sprintf("/events/%d/shopping-items", event.ID), fiber.Map{"name": "Ice", "quantity": 1}, token)
	expectError(t, resp, fiber.StatusConflict, "conflict")

	resp = env.do("PATCH", fmt.Sprintf("/events/%d/shopping-items/%d", event.ID, item.ID), fiber.Map{"quantity": 5}, token)
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = env.do("DELETE", fmt.Sprintf("/events/%d/shopping-items/%d", event.ID, item.ID), nil, token)
	testutil.AssertStatus(t, resp, fiber.StatusNoContent)
}

func TestHealthRoute(t *testing.T) {
	env := newEnv(t)

	var result map[string]interface{}
	resp := env.do("GET", "/health", nil, "")
	expect(t, resp, fiber.StatusOK, &result)
	assert.Equal(t, "healthy", result["status"])
}

func TestPollSingleQuestionBody(t *testing.T) {
	env := newEnv(t)
	organizer := testutil.CreateUser(t, env.db, "organizer")
	event := testutil.CreateEvent(t, env.db, organizer, testutil.EventOptions{Public: true})

	var poll models.Poll
	resp := env.do("POST", "/polls", fiber.Map{
		"event_id": fmt.Sprintf("%d", event.ID),
		"title":    "Dessert",
		"questions": fiber.Map{
			"question": "Cake or pie?",
			"options":  []fiber.Map{{"label": "Cake"}, {"label": "Pie"}},
		},
	}, env.tokenFor(organizer))
	expect(t, resp, fiber.StatusCreated, &poll)
	require.Len(t, poll.Questions, 1)
	assert.Equal(t, "Cake or pie?", poll.Questions[0].Text)
}
