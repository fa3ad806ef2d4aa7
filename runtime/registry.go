// Package runtime hosts the live-connection registry and the per-session
// protocol engine. It orchestrates delivery without containing domain rules.
package runtime

import (
	"log/slog"
	"sync"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/observability"
)

// roomSession is one room's live connections. Connections are kept in
// registration order for presence listing and broadcast; the map gives the
// transport-keyed lookup used for removal.
type roomSession struct {
	order []string
	conns map[string]*contract.Connection
}

// Registry is the process-wide table of rooms with live connections.
//
// A single RWMutex serializes every mutation and every broadcast: events
// submitted to Broadcast for the same room reach all its connections in
// submission order. Presence snapshots only take the read lock.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[domain.RoomID]*roomSession
	log     *slog.Logger
	monitor *observability.Monitor
}

func NewRegistry(log *slog.Logger, monitor *observability.Monitor) *Registry {
	return &Registry{
		rooms:   make(map[domain.RoomID]*roomSession),
		log:     log,
		monitor: monitor,
	}
}

// Register inserts a connection into its room's session, creating the
// session lazily. One engine instance runs per transport, so a duplicate
// transport key is a caller bug; the registry keeps the first entry.
func (r *Registry) Register(roomID domain.RoomID, conn *contract.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.rooms[roomID]
	if !ok {
		session = &roomSession{conns: make(map[string]*contract.Connection)}
		r.rooms[roomID] = session
	}

	key := conn.Transport.Key()
	if _, exists := session.conns[key]; exists {
		r.log.Error("duplicate transport registration", "room_id", roomID, "key", key)
		return
	}
	session.conns[key] = conn
	session.order = append(session.order, key)
}

// Unregister removes the matching connection if present and deletes the
// room's session when it becomes empty, so presence queries never observe
// ghost rooms. Idempotent: disconnect cleanup may race a failure path.
func (r *Registry) Unregister(roomID domain.RoomID, transport contract.Transport) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.rooms[roomID]
	if !ok {
		return
	}

	key := transport.Key()
	if _, exists := session.conns[key]; !exists {
		return
	}
	delete(session.conns, key)
	for i, k := range session.order {
		if k == key {
			session.order = append(session.order[:i], session.order[i+1:]...)
			break
		}
	}

	if len(session.conns) == 0 {
		delete(r.rooms, roomID)
	}
}

// ListPresence snapshots the display names currently registered in a room,
// in registration order. Unknown rooms yield an empty slice, not an error.
func (r *Registry) ListPresence(roomID domain.RoomID) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.rooms[roomID]
	if !ok {
		return []string{}
	}
	names := make([]string, 0, len(session.order))
	for _, key := range session.order {
		names = append(names, session.conns[key].Identity.DisplayName)
	}
	return names
}

// Broadcast delivers an event to every connection of a room in registration
// order. A send failure on one transport is logged and counted but never
// interrupts delivery to the others and never reaches the caller: cleanup of
// a dead connection belongs to that connection's own disconnect path, which
// guards against racing its own unregister.
func (r *Registry) Broadcast(roomID domain.RoomID, e event.ChatEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.rooms[roomID]
	if !ok {
		return
	}
	r.monitor.BroadcastEvent()
	for _, key := range session.order {
		conn := session.conns[key]
		if err := conn.Transport.Send(e); err != nil {
			r.monitor.SendFailure()
			r.log.Warn("broadcast send failed",
				"room_id", roomID,
				"user_id", conn.Identity.ID,
				"event", e.EventType(),
				"error", err)
		}
	}
}
