package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/socialdb/internal/auth"
	"github.com/localnerve/socialdb/internal/services"
	"github.com/localnerve/socialdb/internal/utils"
	"gorm.io/gorm"
)

// AuthHandler handles registration, login and the current user
type AuthHandler struct {
	DB     *gorm.DB
	Tokens *auth.TokenManager
}

// Register handles POST /auth/register
// @Summary Register an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Credentials"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}

	user, err := services.Register(h.DB, in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.CreatedResponse(c, user)
}

// Login handles POST /auth/login
// @Summary Exchange credentials for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Credentials"
// @Success 200 {object} services.TokenResult
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in services.LoginInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}

	result, err := services.Login(h.DB, h.Tokens, in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}

// Me handles GET /auth/me
// @Summary Get the authenticated user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, actor(c), fiber.StatusOK)
}
