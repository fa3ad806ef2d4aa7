package api

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"chat-relay/auth"
	"chat-relay/moderation"
	"chat-relay/observability"
	"chat-relay/repositories"
	"chat-relay/runtime"
	"chat-relay/services"
	"chat-relay/ws"
)

// testServer assembles the real stack on temporary storage, exactly as the
// binary wires it.
type testServer struct {
	*httptest.Server
	t *testing.T
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := slog.Default()

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	users, err := repositories.NewUserRepository(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = users.Close() })
	rooms, err := repositories.NewRoomRepository(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rooms.Close() })
	messages := repositories.NewMessageRepository(db, log)

	index, err := repositories.OpenMessageIndex(t.TempDir(), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	moderator, err := moderation.NewModerator([]string{"troll"}, '*')
	require.NoError(t, err)

	monitor := observability.NewMonitor()
	tokens := auth.NewTokenManager("integration-secret", 15*time.Minute, 24*time.Hour)
	credentials := auth.NewCredentialValidator(tokens, users, log)
	authService := services.NewAuthService(users, tokens)
	roomService := services.NewRoomService(rooms)
	chatService := services.NewChatService(messages, index, &moderator, monitor, log, 20)
	registry := runtime.NewRegistry(log, monitor)

	deps := runtime.SessionDeps{
		Credentials: credentials,
		Rooms:       roomService,
		Chat:        chatService,
		Registry:    registry,
		Monitor:     monitor,
		Log:         log,
	}
	handler := NewHandler(
		AuthHandler{Auth: authService},
		RoomHandler{Rooms: roomService, Chat: chatService},
		monitor,
		SessionAuth{Tokens: tokens, Users: users},
	)

	server := httptest.NewServer(handler.Router(log, ws.NewHandler(deps, log, 5*time.Second)))
	t.Cleanup(server.Close)
	return &testServer{Server: server, t: t}
}

func (s *testServer) postJSON(path, bearer string, body any, out any) int {
	s.t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(s.t, err)

	req, err := http.NewRequest(http.MethodPost, s.URL+path, bytes.NewReader(payload))
	require.NoError(s.t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := s.Client().Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(s.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (s *testServer) getJSON(path, bearer string, out any) int {
	s.t.Helper()
	req, err := http.NewRequest(http.MethodGet, s.URL+path, nil)
	require.NoError(s.t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := s.Client().Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(s.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (s *testServer) register(email, name string) sessionResponse {
	s.t.Helper()
	var session sessionResponse
	status := s.postJSON("/api/auth/register", "", registerRequest{
		Email:       email,
		DisplayName: name,
		Password:    "CorrectHorse1!",
	}, &session)
	require.Equal(s.t, http.StatusCreated, status)
	return session
}

func (s *testServer) dial(roomID int64, token string) *websocket.Conn {
	s.t.Helper()
	wsURL := "ws" + strings.TrimPrefix(s.URL, "http") +
		fmt.Sprintf("/ws/chat/%d?token=%s", roomID, token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(s.t, err)
	s.t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func (s *testServer) nextFrame(conn *websocket.Conn) map[string]any {
	s.t.Helper()
	require.NoError(s.t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(s.t, err)

	var frame map[string]any
	require.NoError(s.t, json.Unmarshal(payload, &frame))
	return frame
}

func TestIntegration_TwoPeersChat(t *testing.T) {
	req := require.New(t)
	server := newTestServer(t)

	// Accounts and room
	alice := server.register("alice@example.com", "alice")
	bob := server.register("bob@example.com", "bob")

	var r roomResponse
	status := server.postJSON("/api/rooms", alice.AccessToken, createRoomRequest{Name: "general"}, &r)
	req.Equal(http.StatusCreated, status)
	status = server.postJSON(fmt.Sprintf("/api/rooms/%d/join", r.ID), bob.AccessToken, struct{}{}, nil)
	req.Equal(http.StatusOK, status)

	// Alice connects and receives the empty replay
	aliceConn := server.dial(int64(r.ID), alice.AccessToken)
	frame := server.nextFrame(aliceConn)
	req.Equal("history", frame["type"])
	req.Empty(frame["messages"])

	// Bob connects; both peers observe the join and the presence list
	bobConn := server.dial(int64(r.ID), bob.AccessToken)
	frame = server.nextFrame(bobConn)
	req.Equal("history", frame["type"])

	frame = server.nextFrame(aliceConn)
	req.Equal("user.join", frame["type"])
	req.Equal("bob", frame["user"])
	frame = server.nextFrame(aliceConn)
	req.Equal("users.online", frame["type"])
	req.Equal([]any{"alice", "bob"}, frame["users"])

	frame = server.nextFrame(bobConn)
	req.Equal("user.join", frame["type"])
	frame = server.nextFrame(bobConn)
	req.Equal("users.online", frame["type"])

	// Alice talks, bob hears it
	payload, err := json.Marshal(map[string]string{"type": "message", "content": "what a troll move"})
	req.NoError(err)
	req.NoError(aliceConn.WriteMessage(websocket.TextMessage, payload))

	frame = server.nextFrame(bobConn)
	req.Equal("message", frame["type"])
	message := frame["message"].(map[string]any)
	req.Equal("alice", message["sender"])
	// The moderation pass ran before the broadcast
	req.Equal("what a ***** move", message["content"])

	// The message survived into the REST history
	var page messagePageResponse
	status = server.getJSON(fmt.Sprintf("/api/rooms/%d/messages", r.ID), bob.AccessToken, &page)
	req.Equal(http.StatusOK, status)
	req.Len(page.Messages, 1)
	req.Equal("what a ***** move", page.Messages[0].Content)

	// And into the search index
	var results searchResponse
	status = server.getJSON(fmt.Sprintf("/api/rooms/%d/search?q=move", r.ID), bob.AccessToken, &results)
	req.Equal(http.StatusOK, status)
	req.Len(results.Hits, 1)
}

func TestIntegration_NonMemberIsRefusedOverTheSocket(t *testing.T) {
	req := require.New(t)
	server := newTestServer(t)

	alice := server.register("alice@example.com", "alice")
	carol := server.register("carol@example.com", "carol")

	var r roomResponse
	status := server.postJSON("/api/rooms", alice.AccessToken, createRoomRequest{Name: "private"}, &r)
	req.Equal(http.StatusCreated, status)

	// Carol never joined: the upgrade succeeds, then one error frame
	carolConn := server.dial(int64(r.ID), carol.AccessToken)
	frame := server.nextFrame(carolConn)
	req.Equal("error", frame["type"])
	req.Equal("not_in_room", frame["error"])

	// The relay closes the session right after
	req.NoError(carolConn.SetReadDeadline(time.Now().Add(5 * time.Second)))
	_, _, err := carolConn.ReadMessage()
	req.Error(err)
}

func TestIntegration_ExpiredAccessFallsBackToRefresh(t *testing.T) {
	req := require.New(t)
	server := newTestServer(t)

	alice := server.register("alice@example.com", "alice")
	var r roomResponse
	status := server.postJSON("/api/rooms", alice.AccessToken, createRoomRequest{Name: "general"}, &r)
	req.Equal(http.StatusCreated, status)

	// Garbage access token, valid refresh token: the session still opens
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") +
		fmt.Sprintf("/ws/chat/%d?token=%s&refresh=%s", r.ID, "stale-garbage", alice.RefreshToken)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	req.NoError(err)
	defer conn.Close()

	frame := server.nextFrame(conn)
	req.Equal("history", frame["type"])
}

func TestIntegration_RestRequiresAuthentication(t *testing.T) {
	req := require.New(t)
	server := newTestServer(t)

	status := server.postJSON("/api/rooms", "", createRoomRequest{Name: "nope"}, nil)
	req.Equal(http.StatusUnauthorized, status)

	var stats observability.Stats
	req.Equal(http.StatusOK, server.getJSON("/api/stats", "", &stats))
}
