package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartzless/softrtc/internal/auth"
	"github.com/quartzless/softrtc/internal/domain"
)

const (
	testIssuer   = "softrtc"
	testAudience = "softrtc-api"
)

var testSecret = []byte("test-secret-32-bytes-long-enough")

// mintToken signs a token with the given claims and secret.
func mintToken(t *testing.T, secret []byte, claims jwt.RegisteredClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Audience:  jwt.ClaimStrings{testAudience},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
}

func TestValidate(t *testing.T) {
	v := auth.NewValidator(testSecret, testIssuer, testAudience)

	t.Run("accepts a well-formed token", func(t *testing.T) {
		token := mintToken(t, testSecret, validClaims())
		assert.NoError(t, v.Validate(token))
	})

	t.Run("rejects a token signed with the wrong secret", func(t *testing.T) {
		token := mintToken(t, []byte("some-other-secret-of-same-length"), validClaims())
		assert.ErrorIs(t, v.Validate(token), domain.ErrUnauthorized)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		claims := validClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		token := mintToken(t, testSecret, claims)
		assert.ErrorIs(t, v.Validate(token), domain.ErrUnauthorized)
	})

	t.Run("rejects a token without an expiry", func(t *testing.T) {
		claims := validClaims()
		claims.ExpiresAt = nil
		token := mintToken(t, testSecret, claims)
		assert.ErrorIs(t, v.Validate(token), domain.ErrUnauthorized)
	})

	t.Run("rejects the wrong issuer", func(t *testing.T) {
		claims := validClaims()
		claims.Issuer = "someone-else"
		token := mintToken(t, testSecret, claims)
		assert.ErrorIs(t, v.Validate(token), domain.ErrUnauthorized)
	})

	t.Run("rejects the wrong audience", func(t *testing.T) {
		claims := validClaims()
		claims.Audience = jwt.ClaimStrings{"other-api"}
		token := mintToken(t, testSecret, claims)
		assert.ErrorIs(t, v.Validate(token), domain.ErrUnauthorized)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		assert.ErrorIs(t, v.Validate("not.a.token"), domain.ErrUnauthorized)
	})
}
