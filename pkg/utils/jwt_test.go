package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	InitJWT("test-secret", time.Minute)

	token, err := GenerateSessionToken("押上クリニック")
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "押上クリニック", claims.FacilityName)
	assert.Equal(t, time.Minute, GetSessionExpiry())
}

func TestSessionToken_WrongSecret(t *testing.T) {
	InitJWT("secret-a", time.Minute)
	token, err := GenerateSessionToken("A")
	require.NoError(t, err)

	InitJWT("secret-b", time.Minute)
	_, err = ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestSessionToken_Expired(t *testing.T) {
	InitJWT("test-secret", -time.Minute)
	token, err := GenerateSessionToken("A")
	require.NoError(t, err)

	_, err = ValidateSessionToken(token)
	assert.Error(t, err)
}
