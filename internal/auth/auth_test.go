package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collab-service/internal/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := auth.GenerateToken(userID, "test-secret", time.Hour)
	require.NoError(t, err)

	parsedID, err := auth.ParseToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := auth.GenerateToken(uuid.New(), "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = auth.ParseToken(token, "other-secret")
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := auth.GenerateToken(uuid.New(), "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = auth.ParseToken(token, "test-secret")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, auth.ComparePassword(hash, "correct horse battery staple"))
	assert.Error(t, auth.ComparePassword(hash, "wrong password"))
}
