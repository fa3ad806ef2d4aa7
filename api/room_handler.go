package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/repositories"
	"chat-relay/services"
)

// RoomHandler serves room management, paginated history and search.
type RoomHandler struct {
	Rooms services.IRoomService
	Chat  *services.ChatService
}

type createRoomRequest struct {
	Name string `json:"name"`
}

type roomResponse struct {
	ID      domain.RoomID `json:"id"`
	Name    string        `json:"name"`
	Members int           `json:"members"`
}

type messageResponse struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type messagePageResponse struct {
	Messages []messageResponse `json:"messages"`
	Cursor   *string           `json:"cursor,omitempty"`
}

type searchResponse struct {
	Hits []repositories.SearchHit `json:"hits"`
}

func toRoomResponse(room domain.Room) roomResponse {
	return roomResponse{ID: room.ID, Name: room.Name, Members: len(room.Members)}
}

func toMessageResponse(m domain.Message) messageResponse {
	return messageResponse{
		ID:        m.ID.String(),
		Sender:    m.Sender,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.Format(time.RFC3339Nano),
	}
}

func (h RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		respondError(w, errors.ErrMissingToken)
		return
	}

	var body createRoomRequest
	if err := decodeBody(r, &body); err != nil {
		respondBadRequest(w, "malformed body")
		return
	}

	room, err := h.Rooms.Create(body.Name, identity)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toRoomResponse(room))
}

func (h RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Rooms.List()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lo.Map(rooms, func(room domain.Room, _ int) roomResponse {
		return toRoomResponse(room)
	}))
}

func (h RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		respondError(w, errors.ErrMissingToken)
		return
	}
	roomID, err := roomIDParam(r)
	if err != nil {
		respondError(w, errors.ErrRoomNotFound)
		return
	}

	room, err := h.Rooms.Join(roomID, identity.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toRoomResponse(room))
}

// Messages pages through a room's history, newest first. The cursor from
// the previous response fetches the next (older) page.
func (h RoomHandler) Messages(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		respondError(w, errors.ErrMissingToken)
		return
	}
	roomID, err := roomIDParam(r)
	if err != nil {
		respondError(w, errors.ErrRoomNotFound)
		return
	}
	if err := h.Rooms.Authorize(roomID, identity); err != nil {
		respondError(w, err)
		return
	}

	var cursor *string
	if c := r.URL.Query().Get("cursor"); c != "" {
		cursor = &c
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	messages, next, err := h.Chat.Page(roomID, cursor, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, messagePageResponse{
		Messages: lo.Map(messages, func(m domain.Message, _ int) messageResponse {
			return toMessageResponse(m)
		}),
		Cursor: next,
	})
}

func (h RoomHandler) Search(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		respondError(w, errors.ErrMissingToken)
		return
	}
	roomID, err := roomIDParam(r)
	if err != nil {
		respondError(w, errors.ErrRoomNotFound)
		return
	}
	if err := h.Rooms.Authorize(roomID, identity); err != nil {
		respondError(w, err)
		return
	}

	terms := r.URL.Query().Get("q")
	if terms == "" {
		respondBadRequest(w, "missing query")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	hits, err := h.Chat.Search(r.Context(), roomID, terms, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, searchResponse{Hits: hits})
}

func roomIDParam(r *http.Request) (domain.RoomID, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "roomID"), 10, 64)
	if err != nil {
		return 0, err
	}
	return domain.RoomID(id), nil
}
