// Package api exposes the HTTP surface of the relay: account endpoints,
// room management, history pagination and search.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"chat-relay/observability"
	"chat-relay/ws"
)

// Handler groups the REST endpoints and their collaborators.
type Handler struct {
	auth    AuthHandler
	rooms   RoomHandler
	stats   StatsHandler
	session SessionAuth
}

func NewHandler(authH AuthHandler, roomH RoomHandler, monitor *observability.Monitor, session SessionAuth) *Handler {
	return &Handler{
		auth:    authH,
		rooms:   roomH,
		stats:   StatsHandler{Monitor: monitor},
		session: session,
	}
}

// Router assembles the full HTTP surface, the websocket endpoint included.
func (h *Handler) Router(log *slog.Logger, wsHandler *ws.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.auth.Register)
		r.Post("/auth/login", h.auth.Login)
		r.Post("/auth/refresh", h.auth.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(h.session.Middleware)
			r.Post("/rooms", h.rooms.Create)
			r.Get("/rooms", h.rooms.List)
			r.Post("/rooms/{roomID}/join", h.rooms.Join)
			r.Get("/rooms/{roomID}/messages", h.rooms.Messages)
			r.Get("/rooms/{roomID}/search", h.rooms.Search)
		})

		r.Get("/stats", h.stats.Snapshot)
	})

	wsHandler.Routes(r)
	return r
}

// requestLogger is a thin slog bridge; chi's stock logger writes to the
// standard logger which would bypass the configured handler.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(wrapped, r)
			log.Debug("Request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.Status(),
				"duration", time.Since(start).String(),
			)
		})
	}
}
