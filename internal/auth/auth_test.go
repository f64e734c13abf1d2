package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, VerifyPassword(hash, "correct horse"))
	assert.False(t, VerifyPassword(hash, "wrong horse"))
	assert.False(t, VerifyPassword("not-a-hash", "correct horse"))
}

func TestPasswordSalted(t *testing.T) {
	a, err := HashPassword("password1")
	require.NoError(t, err)
	b, err := HashPassword("password1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPasswordTooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", 100))
	assert.Error(t, err)
}

func TestTokenIssueValidate(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, "socialdb")

	token, expires, err := m.Issue(42)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	id, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute, "socialdb")
	m.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	token, _, err := m.Issue(1)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Validate(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
	assert.Equal(t, ErrInvalidToken, errors.Cause(err))
	assert.Contains(t, err.Error(), "expired")
}

func TestTokenWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret", time.Hour, "socialdb").Issue(1)
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Hour, "socialdb").Validate(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokenWrongIssuer(t *testing.T) {
	token, _, err := NewTokenManager("secret", time.Hour, "elsewhere").Issue(1)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour, "socialdb").Validate(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokenMalformed(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, "socialdb")
	for _, token := range []string{"", "abc", "a.b.c"} {
		_, err := m.Validate(token)
		assert.True(t, errors.Is(err, ErrInvalidToken), token)
	}
}

func TestTokenNoneAlgorithmRejected(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "1",
		Issuer:    "socialdb",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour, "socialdb").Validate(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokenBadSubject(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, "socialdb")
	claims := jwt.RegisteredClaims{
		Subject:   "not-a-number",
		Issuer:    "socialdb",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
	assert.Equal(t, ErrInvalidToken, errors.Cause(err))
	assert.Contains(t, err.Error(), `bad subject "not-a-number"`)
}
