package ws

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"chat-relay/runtime"
)

// Handler upgrades HTTP requests into chat sessions.
type Handler struct {
	deps         runtime.SessionDeps
	log          *slog.Logger
	writeTimeout time.Duration
	upgrader     websocket.Upgrader
}

func NewHandler(deps runtime.SessionDeps, log *slog.Logger, writeTimeout time.Duration) *Handler {
	return &Handler{
		deps:         deps,
		log:          log,
		writeTimeout: writeTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Browsers and the terminal client connect from anywhere;
			// tokens carry the actual authentication.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/ws/chat/{roomID}", h.Serve)
}

// Serve upgrades the connection first, then validates. A peer with a bad
// room or bad credentials still gets one error frame over the socket before
// the close, instead of a bare HTTP status it cannot read mid-upgrade.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	socket, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("Websocket upgrade failed", "err", err)
		return
	}
	conn := NewConn(socket, h.writeTimeout)

	roomID, err := strconv.ParseInt(chi.URLParam(r, "roomID"), 10, 64)
	if err != nil {
		h.log.Debug("Rejecting connection, bad room id", "roomID", chi.URLParam(r, "roomID"))
		_ = conn.Send(event.NewError(errors.Reason(errors.ErrRoomNotFound)))
		_ = conn.Close()
		return
	}

	query := r.URL.Query()
	access := query.Get("token")
	if access == "" {
		access = query.Get("access")
	}
	refresh := query.Get("refresh")

	engine := runtime.NewEngine(h.deps, domain.RoomID(roomID), conn, access, refresh)
	engine.Run(r.Context())
}
