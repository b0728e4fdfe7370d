package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken("secret", time.Hour, userID, "user@example.com", "artist")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "artist", claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", time.Hour, uuid.New(), "user@example.com", "listener")
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken("secret", -time.Minute, uuid.New(), "user@example.com", "listener")
	require.NoError(t, err)

	_, err = ValidateToken(token, "secret")
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", "secret")
	assert.Error(t, err)
}
