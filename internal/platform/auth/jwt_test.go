package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_TokenPair(t *testing.T) {
	m := NewJWTManager("secret", time.Minute, time.Hour)
	userID := uuid.New()

	pair, err := m.GenerateTokenPair(userID, "a@b.com", RoleShelter)
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, RoleShelter, claims.Role)
	assert.Equal(t, "a@b.com", claims.Email)

	_, err = m.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "refresh tokens are not access tokens")

	claims, err = m.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("secret", time.Minute, time.Hour)
	pair, err := m.GenerateTokenPair(uuid.New(), "a@b.com", RoleUser)
	require.NoError(t, err)

	other := NewJWTManager("other-secret", time.Minute, time.Hour)
	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewJWTManager("secret", -time.Minute, time.Hour)
	old, err := expired.GenerateTokenPair(uuid.New(), "a@b.com", RoleUser)
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(old.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "battery staple"))
}
