package utils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/socialdb/internal/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, handler fiber.Handler) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: HandleError})
	app.Get("/check", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/check?x=1", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(body) == 0 {
		return resp.StatusCode, nil
	}
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestHandleErrorCustomError(t *testing.T) {
	status, body := render(t, func(c *fiber.Ctx) error {
		return errors.Wrap(types.Conflict("Already voted"), "vote")
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Already voted", body["message"])
	assert.Equal(t, types.TypeConflict, body["type"])
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "/check?x=1", body["url"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHandleErrorFiberError(t *testing.T) {
	status, body := render(t, func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusMethodNotAllowed, "nope")
	})
	assert.Equal(t, fiber.StatusMethodNotAllowed, status)
	assert.Equal(t, types.TypeBadRequest, body["type"])
}

func TestHandleErrorUnexpected(t *testing.T) {
	status, body := render(t, func(c *fiber.Ctx) error {
		return errors.New("connection reset by peer")
	})
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body["message"])
	assert.Equal(t, types.TypeInternal, body["type"])
}

func TestSuccessResponses(t *testing.T) {
	status, body := render(t, func(c *fiber.Ctx) error {
		return CreatedResponse(c, fiber.Map{"id": 1})
	})
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, float64(1), body["id"])

	status, body = render(t, NoContentResponse)
	assert.Equal(t, fiber.StatusNoContent, status)
	assert.Nil(t, body)

	status, body = render(t, func(c *fiber.Ctx) error {
		return MutationSuccessResponse(c, 3)
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, float64(3), body["affectedRows"])
}

func TestErrorTypeFor(t *testing.T) {
	assert.Equal(t, types.TypeNotFound, errorTypeFor(fiber.StatusNotFound))
	assert.Equal(t, types.TypeForbidden, errorTypeFor(fiber.StatusForbidden))
	assert.Equal(t, types.TypeUnauthorized, errorTypeFor(fiber.StatusUnauthorized))
	assert.Equal(t, types.TypeConflict, errorTypeFor(fiber.StatusConflict))
	assert.Equal(t, types.TypeBadRequest, errorTypeFor(fiber.StatusUnprocessableEntity))
	assert.Equal(t, types.TypeInternal, errorTypeFor(fiber.StatusServiceUnavailable))
}
