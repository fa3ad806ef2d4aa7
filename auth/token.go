package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"chat-relay/domain"
	"chat-relay/errors"
)

const (
	issuer      = "chat-relay"
	kindAccess  = "access"
	kindRefresh = "refresh"
)

// CustomClaims defines the structure of the data stored inside the JWT.
// Kind separates short-lived access tokens from renewal tokens so one can
// never be replayed as the other.
type CustomClaims struct {
	UserID domain.UserID `json:"user_id"`
	Kind   string        `json:"token_kind"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies the credential pair.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// GenerateAccessToken creates a signed short-lived JWT for a user.
func (m *TokenManager) GenerateAccessToken(userID domain.UserID) (string, error) {
	return m.generate(userID, kindAccess, m.accessTTL)
}

// GenerateRefreshToken creates the longer-lived renewal credential.
func (m *TokenManager) GenerateRefreshToken(userID domain.UserID) (string, error) {
	return m.generate(userID, kindRefresh, m.refreshTTL)
}

func (m *TokenManager) generate(userID domain.UserID, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	// HS256: HMAC with SHA256, sign with the server's secret key.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrTokenGeneration, err)
	}
	return signed, nil
}

// ParseAccessToken validates signature, expiry and kind of an access token
// and returns the subject user id.
func (m *TokenManager) ParseAccessToken(tokenString string) (domain.UserID, error) {
	return m.parse(tokenString, kindAccess, errors.ErrInvalidToken)
}

// ParseRefreshToken validates a renewal token.
func (m *TokenManager) ParseRefreshToken(tokenString string) (domain.UserID, error) {
	return m.parse(tokenString, kindRefresh, errors.ErrInvalidRefresh)
}

func (m *TokenManager) parse(tokenString, kind string, sentinel error) (domain.UserID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", sentinel, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return 0, sentinel
	}
	if claims.Kind != kind || claims.UserID == 0 {
		return 0, sentinel
	}
	return claims.UserID, nil
}
