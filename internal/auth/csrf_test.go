package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRFTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := NewCSRFToken(secret, "user-1", time.Minute)
	require.NoError(t, err)

	userID, err := ParseCSRFToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestCSRFTokenExpired(t *testing.T) {
	secret := []byte("test-secret")

	token, err := NewCSRFToken(secret, "user-1", -time.Minute)
	require.NoError(t, err)

	_, err = ParseCSRFToken(secret, token)
	assert.ErrorIs(t, err, ErrCSRFTokenInvalid)
}

func TestCSRFTokenWrongSecret(t *testing.T) {
	token, err := NewCSRFToken([]byte("secret-a"), "user-1", time.Minute)
	require.NoError(t, err)

	_, err = ParseCSRFToken([]byte("secret-b"), token)
	assert.ErrorIs(t, err, ErrCSRFTokenInvalid)
}

func TestDeviceCookieRoundTrip(t *testing.T) {
	secret := []byte("device-secret")

	token, err := NewDeviceCookie(secret, "alice", "nonce-1")
	require.NoError(t, err)

	dc, err := ParseDeviceCookie(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", dc.Username)
	assert.Equal(t, "nonce-1", dc.Nonce)
	assert.Equal(t, "alice:nonce-1", dc.Key())
}

func TestDeviceCookieInvalid(t *testing.T) {
	_, err := ParseDeviceCookie([]byte("secret"), "garbage")
	assert.ErrorIs(t, err, ErrDeviceCookieInvalid)
}
