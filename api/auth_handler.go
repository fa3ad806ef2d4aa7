package api

import (
	"net/http"

	"chat-relay/domain"
	"chat-relay/services"
)

// AuthHandler serves the account lifecycle: register, login, token refresh.
type AuthHandler struct {
	Auth services.IAuthService
}

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type sessionResponse struct {
	UserID       domain.UserID `json:"user_id"`
	DisplayName  string        `json:"display_name"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

func (h AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := decodeBody(r, &body); err != nil {
		respondBadRequest(w, "malformed body")
		return
	}

	identity, pair, err := h.Auth.Register(body.Email, body.DisplayName, body.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sessionResponse{
		UserID:       identity.ID,
		DisplayName:  identity.DisplayName,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := decodeBody(r, &body); err != nil {
		respondBadRequest(w, "malformed body")
		return
	}

	identity, pair, err := h.Auth.Login(body.Email, body.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{
		UserID:       identity.ID,
		DisplayName:  identity.DisplayName,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var body refreshRequest
	if err := decodeBody(r, &body); err != nil {
		respondBadRequest(w, "malformed body")
		return
	}

	access, err := h.Auth.Refresh(body.RefreshToken)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, refreshResponse{AccessToken: access})
}
