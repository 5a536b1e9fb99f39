package supabase

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateTestJWT(t *testing.T, userID, secret string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  userID,
		"aud":  "authenticated",
		"role": "authenticated",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestUserIDFromToken(t *testing.T) {
	token := generateTestJWT(t, "user-42", "s3cret")

	t.Run("verified", func(t *testing.T) {
		sub, err := UserIDFromToken("Bearer "+token, "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "user-42", sub)
	})

	t.Run("unverified when no secret", func(t *testing.T) {
		sub, err := UserIDFromToken("Bearer "+token, "")
		require.NoError(t, err)
		assert.Equal(t, "user-42", sub)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := UserIDFromToken("Bearer "+token, "other")
		assert.Error(t, err)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := UserIDFromToken("", "s3cret")
		assert.Error(t, err)
	})

	t.Run("missing sub", func(t *testing.T) {
		_, err := UserIDFromToken("Bearer "+generateTestJWT(t, "", "s3cret"), "s3cret")
		assert.Error(t, err)
	})
}
