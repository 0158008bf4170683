package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "admin", TokenTTL)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Subject)
	require.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "admin", TokenTTL)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrTokenExpired)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken(testSecret, "admin", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken(testSecret, "not.a.token")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrTokenExpired)
}
