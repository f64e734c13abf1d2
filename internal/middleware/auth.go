package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/socialdb/internal/auth"
	"github.com/localnerve/socialdb/internal/models"
	"github.com/localnerve/socialdb/internal/services"
	"github.com/localnerve/socialdb/internal/types"
	"gorm.io/gorm"
)

const userKey = "user"

// Authenticator resolves bearer tokens to users
type Authenticator struct {
	DB     *gorm.DB
	Tokens *auth.TokenManager
}

// RequireUser rejects the request unless it carries a valid token for an existing user
func (a *Authenticator) RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return types.Unauthorized("Not authenticated")
		}

		user, err := a.resolve(token)
		if err != nil {
			return err
		}
		if user == nil {
			return types.Unauthorized("Could not validate credentials")
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// OptionalUser sets the user when a valid token is present and carries on anonymously otherwise
func (a *Authenticator) OptionalUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Next()
		}

		user, err := a.resolve(token)
		if err != nil {
			return err
		}
		if user != nil {
			c.Locals(userKey, user)
		}
		return c.Next()
	}
}

// resolve returns the token's user, nil for a bad token or a deleted user
func (a *Authenticator) resolve(token string) (*models.User, error) {
	userID, err := a.Tokens.Validate(token)
	if err != nil {
		return nil, nil
	}
	return services.ResolveUser(a.DB, userID)
}

// CurrentUser returns the authenticated user, or nil for anonymous requests
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
