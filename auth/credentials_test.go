package auth

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/mocks"
	"chat-relay/repositories"
)

func newValidator(t *testing.T) (*CredentialValidator, *TokenManager, *mocks.MockIUserRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	tokens := NewTokenManager("unit-test-secret", 15*time.Minute, 24*time.Hour)
	users := mocks.NewMockIUserRepository(ctrl)
	return NewCredentialValidator(tokens, users, slog.Default()), tokens, users
}

func TestCredentialValidator_ValidAccessTokenWins(t *testing.T) {
	req := require.New(t)
	validator, tokens, users := newValidator(t)

	access, err := tokens.GenerateAccessToken(42)
	req.NoError(err)
	users.EXPECT().GetByID(domain.UserID(42)).
		Return(repositories.User{ID: 42, DisplayName: "alice"}, nil)

	identity, keep, err := validator.Resolve(access, "irrelevant-refresh")

	req.NoError(err)
	req.Equal(domain.UserID(42), identity.ID)
	req.Equal("alice", identity.DisplayName)
	// The session keeps using the token it came with
	req.Equal(access, keep)
}

func TestCredentialValidator_FallsBackToRefresh(t *testing.T) {
	req := require.New(t)
	validator, tokens, users := newValidator(t)

	refresh, err := tokens.GenerateRefreshToken(42)
	req.NoError(err)
	users.EXPECT().GetByID(domain.UserID(42)).
		Return(repositories.User{ID: 42, DisplayName: "alice"}, nil)

	// Given a stale access token and a valid refresh token
	identity, fresh, err := validator.Resolve("stale-garbage", refresh)

	req.NoError(err)
	req.Equal("alice", identity.DisplayName)
	// A brand new access token was minted for the session
	req.NotEmpty(fresh)
	req.NotEqual(refresh, fresh)
	userID, err := tokens.ParseAccessToken(fresh)
	req.NoError(err)
	req.Equal(domain.UserID(42), userID)
}

func TestCredentialValidator_NoCredentialsAtAll(t *testing.T) {
	req := require.New(t)
	validator, _, _ := newValidator(t)

	_, _, err := validator.Resolve("", "")

	req.ErrorIs(err, errors.ErrMissingToken)
}

func TestCredentialValidator_LastFailureIsReported(t *testing.T) {
	req := require.New(t)
	validator, _, _ := newValidator(t)

	// Both tokens are garbage: the refresh failure is the one reported,
	// since it was the last chance to repair the session
	_, _, err := validator.Resolve("bad-access", "bad-refresh")

	req.ErrorIs(err, errors.ErrInvalidRefresh)
}

func TestCredentialValidator_InvalidAccessAlone(t *testing.T) {
	req := require.New(t)
	validator, _, _ := newValidator(t)

	_, _, err := validator.Resolve("bad-access", "")

	req.ErrorIs(err, errors.ErrInvalidToken)
}

func TestCredentialValidator_DeletedUserIsRefused(t *testing.T) {
	req := require.New(t)
	validator, tokens, users := newValidator(t)

	access, err := tokens.GenerateAccessToken(42)
	req.NoError(err)
	users.EXPECT().GetByID(domain.UserID(42)).
		Return(repositories.User{}, errors.ErrUserNotFound)

	_, _, err = validator.Resolve(access, "")

	req.ErrorIs(err, errors.ErrUserNotFound)
}
