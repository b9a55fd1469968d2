package common

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndAuthenticate(t *testing.T) {
	token, err := GenerateToken(7, "grace")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Equal(t, "grace", claims.Handle)
	assert.Equal(t, "gochat", claims.Issuer)
}

func TestAuthenticate_Rejections(t *testing.T) {
	t.Run("empty token", func(t *testing.T) {
		_, err := Authenticate("")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := Authenticate("definitely.not.ajwt")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("tampered signature", func(t *testing.T) {
		token, err := GenerateToken(7, "grace")
		require.NoError(t, err)

		_, err = Authenticate(token + "x")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := &Claims{
			UserID: 7,
			Handle: "grace",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			},
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
		require.NoError(t, err)

		_, err = Authenticate(expired)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "first-secret")
		token, err := GenerateToken(7, "grace")
		require.NoError(t, err)

		_, err = Authenticate(token)
		require.NoError(t, err)

		t.Setenv("JWT_SECRET", "rotated-secret")
		_, err = Authenticate(token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

// The secret and expiry come from the environment on every call, so values
// loaded from an .env file after process start are honored.
func TestTokenEnvResolvedAtCallTime(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-file-secret")
	t.Setenv("TOKEN_EXPIRY_HOURS", "1")

	token, err := GenerateToken(3, "carol")
	require.NoError(t, err)

	claims, err := Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hashed)

	assert.NoError(t, CheckPassword("secret123", hashed))
	assert.Error(t, CheckPassword("wrong", hashed))
}
