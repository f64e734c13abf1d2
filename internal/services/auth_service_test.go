package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/localnerve/socialdb/internal/auth"
	"github.com/localnerve/socialdb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	db := testutil.NewTestDB(t)

	user, err := Register(db, RegisterInput{Email: " New.User@Example.com ", Password: "password123", FullName: strPtr(" Ada ")})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "new.user@example.com", user.Email)
	assert.NotEqual(t, "password123", user.HashedPassword)
	require.NotNil(t, user.FullName)
	assert.Equal(t, "Ada", *user.FullName)
	assert.True(t, auth.VerifyPassword(user.HashedPassword, "password123"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testutil.NewTestDB(t)

	_, err := Register(db, RegisterInput{Email: "dup@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = Register(db, RegisterInput{Email: "DUP@example.com", Password: "password456"})
	requireKind(t, err, http.StatusConflict)
}

func TestRegisterValidation(t *testing.T) {
	db := testutil.NewTestDB(t)

	_, err := Register(db, RegisterInput{Email: "short@example.com", Password: "1234567"})
	requireKind(t, err, http.StatusBadRequest)

	_, err = Register(db, RegisterInput{Email: "not-an-email", Password: "password123"})
	requireKind(t, err, http.StatusBadRequest)

	_, err = Register(db, RegisterInput{Email: "", Password: "password123"})
	requireKind(t, err, http.StatusBadRequest)
}

func TestLogin(t *testing.T) {
	db := testutil.NewTestDB(t)
	tokens := auth.NewTokenManager("test-secret", time.Hour, "socialdb")

	user, err := Register(db, RegisterInput{Email: "login@example.com", Password: "password123"})
	require.NoError(t, err)

	result, err := Login(db, tokens, LoginInput{Email: "LOGIN@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", result.TokenType)

	id, err := tokens.Validate(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	_, err = Login(db, tokens, LoginInput{Email: "login@example.com", Password: "wrong-password"})
	requireKind(t, err, http.StatusUnauthorized)

	_, err = Login(db, tokens, LoginInput{Email: "nobody@example.com", Password: "password123"})
	requireKind(t, err, http.StatusUnauthorized)
}

func TestResolveUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "resolve")

	found, err := ResolveUser(db, user.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.Email, found.Email)

	missing, err := ResolveUser(db, user.ID+1000)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
