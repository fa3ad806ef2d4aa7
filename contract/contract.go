//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"time"

	"chat-relay/domain"
	"chat-relay/domain/event"
)

// Transport is one peer's send/receive handle. Implementations must allow
// Send and ReadMessage from different goroutines; Close must be idempotent.
type Transport interface {
	// Key is a stable identity used by the registry for O(1) removal.
	Key() string
	Send(e event.ChatEvent) error
	// ReadMessage blocks for the next inbound frame. It returns an error
	// when the peer disconnects; that error is the session's only
	// cancellation signal.
	ReadMessage() ([]byte, error)
	Close() error
}

// Connection ties an authenticated identity to its transport inside a room.
// The registry owns the lifetime of Connection values.
type Connection struct {
	Identity  domain.Identity
	Room      domain.RoomID
	Transport Transport
	JoinedAt  time.Time
}

// IRegistry is the process-wide table of live connections per room.
// All operations are safe under concurrent invocation.
type IRegistry interface {
	Register(roomID domain.RoomID, conn *Connection)
	Unregister(roomID domain.RoomID, transport Transport)
	ListPresence(roomID domain.RoomID) []string
	Broadcast(roomID domain.RoomID, e event.ChatEvent)
}

// ICredentialValidator resolves an identity from an access token, falling
// back to the refresh token. It returns the token the session should keep
// using (the original access token, or a freshly minted one).
type ICredentialValidator interface {
	Resolve(accessToken, refreshToken string) (domain.Identity, string, error)
}

// IRoomAuthorizer confirms room membership during the handshake.
type IRoomAuthorizer interface {
	Authorize(roomID domain.RoomID, identity domain.Identity) error
}

// IChatGateway is the persistence hand-off for accepted chat events.
type IChatGateway interface {
	Append(ctx context.Context, roomID domain.RoomID, sender domain.Identity, content string) (domain.Message, error)
	// RecentHistory returns the most recent messages oldest first.
	RecentHistory(roomID domain.RoomID) ([]domain.Message, error)
}

// Worker doesn't protect itself.
// Can be silly, focused.
type Worker interface {
	Run(ctx context.Context) error
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Stop()
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// Used for logging and supervision, avoiding manual naming in the Worker
// interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
