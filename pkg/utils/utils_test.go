package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_AccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("quotation-api", "secret", time.Minute, time.Hour)
	id := uuid.New()

	token, err := m.GenerateAccessToken(id, "a@example.com", []string{"admin"}, []string{"manage-quotes"})
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, []string{"admin"}, claims.Roles)
	assert.Equal(t, []string{"manage-quotes"}, claims.Permissions)
	assert.Equal(t, "quotation-api", claims.Issuer)
}

func TestJWTManager_RejectsForeignIssuerAndSecret(t *testing.T) {
	m := NewJWTManager("quotation-api", "secret", time.Minute, time.Hour)
	other := NewJWTManager("someone-else", "secret", time.Minute, time.Hour)
	wrongKey := NewJWTManager("quotation-api", "other-secret", time.Minute, time.Hour)

	token, err := other.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)
	_, err = m.ValidateRefreshToken(token)
	assert.Error(t, err)

	token, err = wrongKey.GenerateAccessToken(uuid.New(), "a@example.com", nil, nil)
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	m := NewJWTManager("quotation-api", "secret", -time.Minute, time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), "a@example.com", nil, nil)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestRefreshToken_ReturnsSubject(t *testing.T) {
	m := NewJWTManager("quotation-api", "secret", time.Minute, time.Hour)
	id := uuid.New()

	token, err := m.GenerateRefreshToken(id)
	require.NoError(t, err)

	got, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
}

func TestJWTManager_ErrInvalidToken(t *testing.T) {
	require.Error(t, ErrInvalidToken)
	assert.Equal(t, "invalid token", ErrInvalidToken.Error())

	m := NewJWTManager("quotation-api", "secret", time.Minute, time.Hour)
	_, err := m.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}
