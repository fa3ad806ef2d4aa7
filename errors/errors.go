// Package errors centralizes the sentinel errors of the relay and their
// translation to wire-level reason codes and HTTP statuses.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Handshake failures. Fatal to the session: the peer receives exactly one
// error frame carrying Reason(err) before the transport is closed.
var (
	ErrMissingToken   = fmt.Errorf("no credential provided")
	ErrInvalidToken   = fmt.Errorf("invalid access token")
	ErrInvalidRefresh = fmt.Errorf("invalid refresh token")
	ErrUserNotFound   = fmt.Errorf("user not found")
	ErrRoomNotFound   = fmt.Errorf("room not found")
	ErrNotInRoom      = fmt.Errorf("user is not a room member")
)

// Recoverable failures. Reported to the originating sender only, the
// session stays active.
var (
	ErrStore = fmt.Errorf("message store failure")
)

// Account and room management failures, surfaced over the HTTP API.
var (
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity rules")
	ErrInvalidRoomName    = fmt.Errorf("invalid room name")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")
	ErrEmptyWords  = fmt.Errorf("no censored words have been found")
)

// Reason maps an error to the stable reason code sent to peers.
// Unrecognized errors collapse to "internal_error" so internals never leak.
func Reason(err error) string {
	switch {
	case stderrors.Is(err, ErrMissingToken):
		return "missing_token"
	case stderrors.Is(err, ErrInvalidToken):
		return "invalid_token"
	case stderrors.Is(err, ErrInvalidRefresh):
		return "invalid_refresh"
	case stderrors.Is(err, ErrUserNotFound):
		return "user_not_found"
	case stderrors.Is(err, ErrRoomNotFound):
		return "room_not_found"
	case stderrors.Is(err, ErrNotInRoom):
		return "not_in_room"
	case stderrors.Is(err, ErrStore):
		return "store_error"
	default:
		return "internal_error"
	}
}

// MapToHTTPStatus translates service errors for the REST handlers.
func MapToHTTPStatus(err error) int {
	switch {
	case stderrors.Is(err, ErrMissingToken),
		stderrors.Is(err, ErrInvalidToken),
		stderrors.Is(err, ErrInvalidRefresh),
		stderrors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case stderrors.Is(err, ErrNotInRoom):
		return http.StatusForbidden
	case stderrors.Is(err, ErrUserNotFound), stderrors.Is(err, ErrRoomNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, ErrUserAlreadyExists):
		return http.StatusConflict
	case stderrors.Is(err, ErrInvalidPassword), stderrors.Is(err, ErrInvalidRoomName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
