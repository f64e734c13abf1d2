package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/localnerve/socialdb/internal/auth"
	"github.com/localnerve/socialdb/internal/testutil"
	"github.com/localnerve/socialdb/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthApp(t *testing.T) (*fiber.App, *auth.TokenManager, uint) {
	t.Helper()
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "mw")
	tokens := auth.NewTokenManager("middleware-secret", time.Hour, "socialdb")
	authn := &Authenticator{DB: db, Tokens: tokens}

	app := fiber.New(fiber.Config{ErrorHandler: utils.HandleError})
	whoami := func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.JSON(fiber.Map{"anonymous": true})
		}
		return c.JSON(fiber.Map{"id": user.ID})
	}
	app.Get("/required", authn.RequireUser(), whoami)
	app.Get("/optional", authn.OptionalUser(), whoami)

	return app, tokens, user.ID
}

func get(t *testing.T, app *fiber.App, path, authorization string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

// expectJSON checks the status and decodes the JSON body
func expectJSON(t *testing.T, resp *http.Response, status int) map[string]interface{} {
	t.Helper()
	testutil.AssertStatus(t, resp, status)
	var body map[string]interface{}
	testutil.ParseJSON(t, resp, &body)
	return body
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", token)

	token, ok = bearerToken("bearer   xyz ")
	assert.True(t, ok)
	assert.Equal(t, "xyz", token)

	_, ok = bearerToken("Basic dXNlcjpwYXNz")
	assert.False(t, ok)
	_, ok = bearerToken("Bearer")
	assert.False(t, ok)
	_, ok = bearerToken("")
	assert.False(t, ok)
}

func TestRequireUser(t *testing.T) {
	app, tokens, userID := setupAuthApp(t)

	resp := get(t, app, "/required", "")
	body := expectJSON(t, resp, fiber.StatusUnauthorized)
	assert.Equal(t, "unauthorized", body["type"])
	assert.Equal(t, false, body["ok"])

	resp = get(t, app, "/required", "Bearer not-a-token")
	testutil.AssertStatus(t, resp, fiber.StatusUnauthorized)

	token, _, err := tokens.Issue(userID)
	require.NoError(t, err)
	resp = get(t, app, "/required", "Bearer "+token)
	body = expectJSON(t, resp, fiber.StatusOK)
	assert.EqualValues(t, userID, body["id"])

	// a valid token for a user that no longer exists
	ghost, _, err := tokens.Issue(userID + 1000)
	require.NoError(t, err)
	resp = get(t, app, "/required", "Bearer "+ghost)
	testutil.AssertStatus(t, resp, fiber.StatusUnauthorized)
}

func TestOptionalUser(t *testing.T) {
	app, tokens, userID := setupAuthApp(t)

	resp := get(t, app, "/optional", "")
	body := expectJSON(t, resp, fiber.StatusOK)
	assert.Equal(t, true, body["anonymous"])

	resp = get(t, app, "/optional", "Bearer garbage")
	body = expectJSON(t, resp, fiber.StatusOK)
	assert.Equal(t, true, body["anonymous"])

	token, _, err := tokens.Issue(userID)
	require.NoError(t, err)
	resp = get(t, app, "/optional", "Bearer "+token)
	body = expectJSON(t, resp, fiber.StatusOK)
	assert.EqualValues(t, userID, body["id"])
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("requestID").(string))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	generated := resp.Header.Get(HeaderRequestID)
	_, err = uuid.Parse(generated)
	assert.NoError(t, err)

	incoming := uuid.NewString()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderRequestID, incoming)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, incoming, resp.Header.Get(HeaderRequestID))

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderRequestID, "<script>")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.NotEqual(t, "<script>", resp.Header.Get(HeaderRequestID))
}
