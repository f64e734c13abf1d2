package services

import (
	"net/mail"
	"strings"
	"time"

	"github.com/localnerve/socialdb/internal/auth"
	"github.com/localnerve/socialdb/internal/models"
	"github.com/localnerve/socialdb/internal/types"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// RegisterInput is the body of POST /auth/register
type RegisterInput struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
}

// LoginInput is the body of POST /auth/login
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResult is returned on successful login
type TokenResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email && strings.Contains(email, ".")
}

// Register creates a user with a hashed password
func Register(db *gorm.DB, in RegisterInput) (*models.User, error) {
	email := models.NormalizeEmail(in.Email)
	if !validEmail(email) {
		return nil, types.BadRequest("A valid email is required")
	}
	if len(in.Password) < auth.MinPasswordLength {
		return nil, types.BadRequest("Password must be at least %d characters", auth.MinPasswordLength)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, types.BadRequest("Password cannot be used: %v", err)
	}

	user := &models.User{
		Email:          email,
		FullName:       trimmedOrNil(in.FullName),
		HashedPassword: hash,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check email")
		}
		if count > 0 {
			return types.Conflict("Email already registered")
		}
		return storeError(tx.Create(user).Error, "Email already registered", "failed to create user")
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and returns the user
func Authenticate(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	err := quiet(db).Where("email = ?", models.NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.Unauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user")
	}
	if !auth.VerifyPassword(user.HashedPassword, password) {
		return nil, types.Unauthorized("Invalid email or password")
	}
	return &user, nil
}

// Login authenticates and issues an access token
func Login(db *gorm.DB, tokens *auth.TokenManager, in LoginInput) (*TokenResult, error) {
	user, err := Authenticate(db, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	token, expires, err := tokens.Issue(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	return &TokenResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expires,
	}, nil
}

// ResolveUser returns the user for a token subject, or nil when the user no longer exists
func ResolveUser(db *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	err := quiet(db).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve user")
	}
	return &user, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
