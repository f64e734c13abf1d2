package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/socialdb/internal/logging"
	"github.com/localnerve/socialdb/internal/types"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// CreatedResponse sends a 201 with the created entity
func CreatedResponse(c *fiber.Ctx, data interface{}) error {
	return SuccessResponse(c, data, fiber.StatusCreated)
}

// NoContentResponse sends a 204 for mutations without a body
func NoContentResponse(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// ErrorResponse sends the standard error envelope
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(ErrorResponseStruct{
		Status:    status,
		Message:   message,
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
		Type:      errorType,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, types.TypeNotFound)
}

// MutationSuccessResponse sends a success response for bulk mutations that report a row count
func MutationSuccessResponse(c *fiber.Ctx, affectedRows int64) error {
	return c.Status(fiber.StatusOK).JSON(SuccessResponseStruct{
		Message:      "Success",
		Ok:           true,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		AffectedRows: affectedRows,
	})
}

// HandleError renders err as the error envelope.
// Domain errors keep their status; anything unexpected is logged and hidden behind a 500.
func HandleError(c *fiber.Ctx, err error) error {
	if ce, ok := types.AsCustomError(err); ok {
		return ErrorResponse(c, ce.Message, ce.Code, ce.Type)
	}
	if fe, ok := err.(*fiber.Error); ok {
		return ErrorResponse(c, fe.Message, fe.Code, errorTypeFor(fe.Code))
	}

	logging.Default().WithError(err).
		WithField("method", c.Method()).
		WithField("url", c.OriginalURL()).
		Error("Request failed")
	return ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, types.TypeInternal)
}

// errorTypeFor names the envelope type of a plain HTTP status
func errorTypeFor(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return types.TypeNotFound
	case fiber.StatusForbidden:
		return types.TypeForbidden
	case fiber.StatusConflict:
		return types.TypeConflict
	case fiber.StatusUnauthorized:
		return types.TypeUnauthorized
	case fiber.StatusInternalServerError:
		return types.TypeInternal
	}
	if status >= 400 && status < 500 {
		return types.TypeBadRequest
	}
	return types.TypeInternal
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}

// SuccessResponseStruct defines the schema for bulk mutation success responses
type SuccessResponseStruct struct {
	Message      string `json:"message"`
	Ok           bool   `json:"ok"`
	Timestamp    string `json:"timestamp"`
	AffectedRows int64  `json:"affectedRows"`
}
