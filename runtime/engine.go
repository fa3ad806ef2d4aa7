package runtime

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"chat-relay/observability"
)

// State names one phase of a session's lifecycle, used for logging.
type State string

const (
	StateConnecting     State = "connecting"
	StateAuthenticating State = "authenticating"
	StateAuthorizing    State = "authorizing"
	StateRegistering    State = "registering"
	StateReplaying      State = "replaying"
	StateActive         State = "active"
	StateClosing        State = "closing"
	StateClosed         State = "closed"
)

// SessionDeps bundles the collaborators shared by every session.
type SessionDeps struct {
	Credentials contract.ICredentialValidator
	Rooms       contract.IRoomAuthorizer
	Chat        contract.IChatGateway
	Registry    contract.IRegistry
	Monitor     *observability.Monitor
	Log         *slog.Logger
}

// Engine drives a single connection from handshake to disconnect:
//
//	connecting → authenticating → authorizing → registering → replaying →
//	active → closing → closed
//
// The transport is accepted before the engine starts so a refused peer
// always receives one error frame explaining why. Engine is not reusable;
// one instance serves exactly one transport.
type Engine struct {
	deps      SessionDeps
	roomID    domain.RoomID
	transport contract.Transport
	access    string
	refresh   string

	state      State
	identity   domain.Identity
	registered bool
	closeOnce  sync.Once
}

func NewEngine(deps SessionDeps, roomID domain.RoomID, transport contract.Transport, accessToken, refreshToken string) *Engine {
	return &Engine{
		deps:      deps,
		roomID:    roomID,
		transport: transport,
		access:    accessToken,
		refresh:   refreshToken,
		state:     StateConnecting,
	}
}

// Run executes the session until the peer disconnects or the handshake is
// refused. It always leaves the registry clean and the transport closed.
func (e *Engine) Run(ctx context.Context) {
	e.deps.Monitor.ConnectionOpened()
	defer e.shutdown()

	if err := e.handshake(); err != nil {
		e.refuse(err)
		return
	}
	e.replay()
	e.loop(ctx)
}

// handshake covers authenticating and authorizing. Any failure is fatal to
// the session.
func (e *Engine) handshake() error {
	e.transition(StateAuthenticating)
	identity, _, err := e.deps.Credentials.Resolve(e.access, e.refresh)
	if err != nil {
		return err
	}
	e.identity = identity

	e.transition(StateAuthorizing)
	if err := e.deps.Rooms.Authorize(e.roomID, identity); err != nil {
		return err
	}

	e.transition(StateRegistering)
	e.deps.Registry.Register(e.roomID, &contract.Connection{
		Identity:  identity,
		Room:      e.roomID,
		Transport: e.transport,
		JoinedAt:  time.Now().UTC(),
	})
	e.registered = true
	return nil
}

// replay sends the history frame to the new peer, then announces it to the
// room. A history fetch failure is reported to the peer only; the session
// continues with an empty replay.
func (e *Engine) replay() {
	e.transition(StateReplaying)

	history, err := e.deps.Chat.RecentHistory(e.roomID)
	if err != nil {
		e.deps.Log.Error("history replay failed", "room_id", e.roomID, "error", err)
		e.send(event.NewError(errors.Reason(err)))
		history = nil
	}
	e.send(event.NewHistory(history))

	e.deps.Registry.Broadcast(e.roomID, event.NewUserJoin(e.identity.DisplayName))
	e.deps.Registry.Broadcast(e.roomID, event.NewUsersOnline(e.deps.Registry.ListPresence(e.roomID)))
}

// loop blocks on inbound frames until the transport reports a disconnect.
func (e *Engine) loop(ctx context.Context) {
	e.transition(StateActive)
	for {
		raw, err := e.transport.ReadMessage()
		if err != nil {
			e.deps.Log.Info("peer disconnected",
				"room_id", e.roomID, "user", e.identity.DisplayName, "reason", err)
			return
		}
		e.dispatch(ctx, event.DecodeInbound(raw))
	}
}

func (e *Engine) dispatch(ctx context.Context, in event.Inbound) {
	switch event.Type(in.Type) {
	case event.TypeMessage:
		content := strings.TrimSpace(in.Content)
		if content == "" {
			// Blank messages are ignored: no persistence, no broadcast.
			return
		}
		message, err := e.deps.Chat.Append(ctx, e.roomID, e.identity, content)
		if err != nil {
			// Persistence failure goes to the sender only; the room
			// never sees a message that was not stored.
			e.deps.Log.Error("message append failed",
				"room_id", e.roomID, "user_id", e.identity.ID, "error", err)
			e.send(event.NewError(errors.Reason(err)))
			return
		}
		e.deps.Registry.Broadcast(e.roomID, event.NewMessage(message))

	case event.TypeTyping:
		e.deps.Registry.Broadcast(e.roomID, event.NewTyping(e.identity.DisplayName))

	default:
		// Unrecognized types are relayed, not dropped, so newer clients
		// keep interoperating.
		e.deps.Registry.Broadcast(e.roomID, event.NewUnknown(in.Raw))
	}
}

// refuse sends the single error frame a rejected peer receives. The
// transport may already be gone; that send failure is irrelevant.
func (e *Engine) refuse(err error) {
	e.deps.Log.Warn("handshake refused",
		"room_id", e.roomID, "state", e.state, "reason", errors.Reason(err))
	e.send(event.NewError(errors.Reason(err)))
}

// shutdown is the closing phase, guarded to run exactly once. Leave and
// presence broadcasts happen only for sessions that registered; a refused
// handshake leaves the room unaware anything happened. Unregister stays
// idempotent either way.
func (e *Engine) shutdown() {
	e.closeOnce.Do(func() {
		e.transition(StateClosing)

		e.deps.Registry.Unregister(e.roomID, e.transport)
		if e.registered {
			e.deps.Registry.Broadcast(e.roomID, event.NewUserLeave(e.displayName()))
			e.deps.Registry.Broadcast(e.roomID, event.NewUsersOnline(e.deps.Registry.ListPresence(e.roomID)))
		}

		if err := e.transport.Close(); err != nil {
			e.deps.Log.Debug("transport close", "error", err)
		}
		e.deps.Monitor.ConnectionClosed()
		e.transition(StateClosed)
	})
}

// displayName tolerates a session whose identity never resolved.
func (e *Engine) displayName() string {
	if e.identity.DisplayName == "" {
		return "?"
	}
	return e.identity.DisplayName
}

func (e *Engine) transition(next State) {
	e.deps.Log.Debug("session state", "room_id", e.roomID, "from", e.state, "to", next)
	e.state = next
}

func (e *Engine) send(ev event.ChatEvent) {
	if err := e.transport.Send(ev); err != nil {
		e.deps.Log.Debug("direct send failed", "room_id", e.roomID, "error", err)
	}
}
