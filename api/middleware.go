package api

import (
	"context"
	"net/http"
	"strings"

	"chat-relay/auth"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/repositories"
)

type contextKey string

const identityKey contextKey = "identity"

// SessionAuth guards authenticated routes with a bearer access token.
type SessionAuth struct {
	Tokens *auth.TokenManager
	Users  repositories.IUserRepository
}

func (a SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			respondError(w, errors.ErrMissingToken)
			return
		}

		userID, err := a.Tokens.ParseAccessToken(token)
		if err != nil {
			respondError(w, err)
			return
		}
		user, err := a.Users.GetByID(userID)
		if err != nil {
			respondError(w, err)
			return
		}

		identity := domain.Identity{ID: user.ID, DisplayName: user.DisplayName}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, identity)))
	})
}

// IdentityFrom extracts the identity stored by the middleware. The boolean
// is false only on routes that forgot the middleware.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok
}
