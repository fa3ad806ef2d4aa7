package services

import (
	"fmt"

	"chat-relay/auth"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/repositories"
)

type IAuthService interface {
	Register(email, displayName, password string) (domain.Identity, TokenPair, error)
	Login(email, password string) (domain.Identity, TokenPair, error)
	Refresh(refreshToken string) (string, error)
}

// TokenPair is the credential pair handed to clients: a short-lived access
// token and the refresh token used to renew it.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService struct {
	users  repositories.IUserRepository
	tokens *auth.TokenManager
}

func NewAuthService(users repositories.IUserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Register(email, displayName, password string) (domain.Identity, TokenPair, error) {
	valReq := auth.RegisterRequest{
		Email:       email,
		DisplayName: displayName,
		Password:    password,
	}

	// Validate business rules before any expensive cryptographic operation.
	if err := auth.ValidateRegister(valReq); err != nil {
		return domain.Identity{}, TokenPair{}, fmt.Errorf("%w: %v", errors.ErrInvalidPassword, err)
	}

	// Hashing happens in the service layer so the repository never sees a
	// plain password.
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return domain.Identity{}, TokenPair{}, fmt.Errorf("hashing failed: %w", err)
	}

	user, err := s.users.Create(email, displayName, hashedPassword)
	if err != nil {
		return domain.Identity{}, TokenPair{}, err // Propagates ErrUserAlreadyExists if the email is taken
	}

	identity := domain.Identity{ID: user.ID, DisplayName: user.DisplayName}
	pair, err := s.issuePair(user.ID)
	return identity, pair, err
}

func (s *AuthService) Login(email, password string) (domain.Identity, TokenPair, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		// Generic error to prevent user enumeration attacks
		return domain.Identity{}, TokenPair{}, errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return domain.Identity{}, TokenPair{}, errors.ErrInvalidCredentials
	}

	identity := domain.Identity{ID: user.ID, DisplayName: user.DisplayName}
	pair, err := s.issuePair(user.ID)
	return identity, pair, err
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	userID, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}
	if _, err := s.users.GetByID(userID); err != nil {
		return "", err
	}
	return s.tokens.GenerateAccessToken(userID)
}

func (s *AuthService) issuePair(userID domain.UserID) (TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		return TokenPair{}, errors.ErrTokenGeneration
	}
	refresh, err := s.tokens.GenerateRefreshToken(userID)
	if err != nil {
		return TokenPair{}, errors.ErrTokenGeneration
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
