package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chat-relay/domain"
	"chat-relay/errors"
)

func TestTokenManager_AccessRoundTrip(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager("unit-test-secret", 15*time.Minute, 24*time.Hour)

	token, err := manager.GenerateAccessToken(42)
	req.NoError(err)
	req.NotEmpty(token)

	userID, err := manager.ParseAccessToken(token)
	req.NoError(err)
	req.Equal(domain.UserID(42), userID)
}

func TestTokenManager_RefreshRoundTrip(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager("unit-test-secret", 15*time.Minute, 24*time.Hour)

	token, err := manager.GenerateRefreshToken(42)
	req.NoError(err)

	userID, err := manager.ParseRefreshToken(token)
	req.NoError(err)
	req.Equal(domain.UserID(42), userID)
}

func TestTokenManager_KindsAreNotInterchangeable(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager("unit-test-secret", 15*time.Minute, 24*time.Hour)

	access, err := manager.GenerateAccessToken(42)
	req.NoError(err)
	refresh, err := manager.GenerateRefreshToken(42)
	req.NoError(err)

	// A refresh token must never authenticate as an access token
	_, err = manager.ParseAccessToken(refresh)
	req.ErrorIs(err, errors.ErrInvalidToken)

	// And the other way around
	_, err = manager.ParseRefreshToken(access)
	req.ErrorIs(err, errors.ErrInvalidRefresh)
}

func TestTokenManager_ExpiredTokenIsRejected(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager("unit-test-secret", -1*time.Minute, 24*time.Hour)

	token, err := manager.GenerateAccessToken(42)
	req.NoError(err)

	_, err = manager.ParseAccessToken(token)
	req.ErrorIs(err, errors.ErrInvalidToken)
}

func TestTokenManager_WrongSecretIsRejected(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager("unit-test-secret", 15*time.Minute, 24*time.Hour)
	other := NewTokenManager("another-secret", 15*time.Minute, 24*time.Hour)

	token, err := manager.GenerateAccessToken(42)
	req.NoError(err)

	_, err = other.ParseAccessToken(token)
	req.ErrorIs(err, errors.ErrInvalidToken)
}

func TestTokenManager_GarbageIsRejected(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager("unit-test-secret", 15*time.Minute, 24*time.Hour)

	_, err := manager.ParseAccessToken("definitely.not.a.jwt")
	req.ErrorIs(err, errors.ErrInvalidToken)
}
