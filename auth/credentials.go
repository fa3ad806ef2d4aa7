package auth

import (
	"fmt"
	"log/slog"

	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/repositories"
)

// CredentialValidator resolves an identity for a new session from the
// credentials the peer supplied at connection time.
//
// Validation walks an ordered list of credential sources: the access token
// first, then the refresh token. The first source that succeeds wins; when
// all fail the last failure is returned so the peer learns the most specific
// reason (an invalid refresh beats the stale access error it was meant to
// repair).
type CredentialValidator struct {
	tokens *TokenManager
	users  repositories.IUserRepository
	log    *slog.Logger
}

func NewCredentialValidator(tokens *TokenManager, users repositories.IUserRepository, log *slog.Logger) *CredentialValidator {
	return &CredentialValidator{tokens: tokens, users: users, log: log}
}

type credentialSource struct {
	name string
	try  func() (domain.Identity, string, error)
}

// Resolve returns the identity plus the access token the session keeps
// using: the original one when it verified, a freshly minted one when the
// refresh path was taken.
func (v *CredentialValidator) Resolve(accessToken, refreshToken string) (domain.Identity, string, error) {
	var sources []credentialSource
	if accessToken != "" {
		sources = append(sources, credentialSource{name: "access", try: func() (domain.Identity, string, error) {
			return v.fromAccess(accessToken)
		}})
	}
	if refreshToken != "" {
		sources = append(sources, credentialSource{name: "refresh", try: func() (domain.Identity, string, error) {
			return v.fromRefresh(refreshToken)
		}})
	}
	if len(sources) == 0 {
		return domain.Identity{}, "", errors.ErrMissingToken
	}

	var lastErr error
	for _, source := range sources {
		identity, token, err := source.try()
		if err == nil {
			return identity, token, nil
		}
		v.log.Debug("credential source rejected", "source", source.name, "error", err)
		lastErr = err
	}
	return domain.Identity{}, "", lastErr
}

func (v *CredentialValidator) fromAccess(token string) (domain.Identity, string, error) {
	userID, err := v.tokens.ParseAccessToken(token)
	if err != nil {
		return domain.Identity{}, "", err
	}
	identity, err := v.resolveIdentity(userID)
	if err != nil {
		return domain.Identity{}, "", err
	}
	return identity, token, nil
}

func (v *CredentialValidator) fromRefresh(token string) (domain.Identity, string, error) {
	userID, err := v.tokens.ParseRefreshToken(token)
	if err != nil {
		return domain.Identity{}, "", err
	}
	identity, err := v.resolveIdentity(userID)
	if err != nil {
		return domain.Identity{}, "", err
	}
	fresh, err := v.tokens.GenerateAccessToken(userID)
	if err != nil {
		return domain.Identity{}, "", err
	}
	return identity, fresh, nil
}

func (v *CredentialValidator) resolveIdentity(userID domain.UserID) (domain.Identity, error) {
	user, err := v.users.GetByID(userID)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: id %d", errors.ErrUserNotFound, userID)
	}
	return domain.Identity{ID: user.ID, DisplayName: user.DisplayName}, nil
}
