package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.GenerateAccessToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.UserID())
	require.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseAndValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", time.Hour).GenerateAccessToken("user-123")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Hour).ParseAndValidate(token)
	require.Error(t, err)
}

func TestParseAndValidateRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, err := m.GenerateAccessToken("user-123")
	require.NoError(t, err)

	_, err = m.ParseAndValidate(token)
	require.Error(t, err)
}
